package attendance

import "time"

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Type       string  `json:"type"`
	Notes      *string `json:"notes"`
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type CreateAttendanceRequest struct {
	EmployeeID   string     `json:"employee_id" binding:"required,uuid"`
	WorkDate     string     `json:"work_date" binding:"required"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Type         string     `json:"type"`
	Notes        *string    `json:"notes"`
}

type UpdateAttendanceRequest struct {
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Type         *string    `json:"type"`
	Notes        *string    `json:"notes"`
}

type AttendanceResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	WorkDate     string     `json:"work_date"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	WorkHours    *float64   `json:"work_hours,omitempty"`
	Type         string     `json:"type"`
	Notes        *string    `json:"notes,omitempty"`
}

type MonthlySummaryResponse struct {
	EmployeeID       string               `json:"employee_id"`
	Year             int                  `json:"year"`
	Month            int                  `json:"month"`
	TotalWorkDays    int                  `json:"total_work_days"`
	TotalWorkHours   float64              `json:"total_work_hours"`
	AverageWorkHours float64              `json:"average_work_hours"`
	LateDays         int                  `json:"late_days"`
	AbsentDays       int                  `json:"absent_days"`
	PaidLeaveDays    int                  `json:"paid_leave_days"`
	Records          []AttendanceResponse `json:"records"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID.String(),
		EmployeeID:   a.EmployeeID.String(),
		WorkDate:     a.WorkDate.Format("2006-01-02"),
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		WorkHours:    a.WorkHours(),
		Type:         a.Type,
		Notes:        a.Notes,
	}
}

func mapToSummaryResponse(s MonthlySummary) MonthlySummaryResponse {
	records := make([]AttendanceResponse, 0, len(s.Records))
	for _, rec := range s.Records {
		records = append(records, mapToResponse(rec))
	}
	return MonthlySummaryResponse{
		EmployeeID:       s.EmployeeID.String(),
		Year:             s.Year,
		Month:            s.Month,
		TotalWorkDays:    s.TotalWorkDays,
		TotalWorkHours:   s.TotalWorkHours,
		AverageWorkHours: s.AverageWorkHours,
		LateDays:         s.LateDays,
		AbsentDays:       s.AbsentDays,
		PaidLeaveDays:    s.PaidLeaveDays,
		Records:          records,
	}
}
