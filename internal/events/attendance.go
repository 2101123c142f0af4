package events

import "time"

// Redis pub/sub channels for attendance events.
const (
	AttendanceCheckInChannel      = "attendance:checkin"
	AttendanceCheckOutChannel     = "attendance:checkout"
	AttendanceLateArrivalChannel  = "attendance:late-arrival"
	AttendanceEarlyLeavingChannel = "attendance:early-leaving"
	AttendanceOvertimeChannel     = "attendance:overtime"
)

type CheckInRecordedEvent struct {
	AttendanceID string    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	WorkDate     string    `json:"work_date"`
	CheckInTime  time.Time `json:"check_in_time"`
}

type CheckOutRecordedEvent struct {
	AttendanceID string    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	WorkDate     string    `json:"work_date"`
	CheckOutTime time.Time `json:"check_out_time"`
	WorkHours    float64   `json:"work_hours"`
}

type LateArrivalDetectedEvent struct {
	AttendanceID string    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	WorkDate     string    `json:"work_date"`
	CheckInTime  time.Time `json:"check_in_time"`
	LateMinutes  int       `json:"late_minutes"`
}

type EarlyLeavingDetectedEvent struct {
	AttendanceID string    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	WorkDate     string    `json:"work_date"`
	CheckInTime  time.Time `json:"check_in_time"`
	CheckOutTime time.Time `json:"check_out_time"`
	WorkHours    float64   `json:"work_hours"`
}

type OvertimeDetectedEvent struct {
	AttendanceID  string    `json:"attendance_id"`
	EmployeeID    string    `json:"employee_id"`
	WorkDate      string    `json:"work_date"`
	CheckInTime   time.Time `json:"check_in_time"`
	CheckOutTime  time.Time `json:"check_out_time"`
	WorkHours     float64   `json:"work_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
}
