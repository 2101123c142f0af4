package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeNormal       = "NORMAL"
	TypeRemote       = "REMOTE"
	TypeBusinessTrip = "BUSINESS_TRIP"
	TypeHalfDay      = "HALF_DAY"
)

// Attendance is one employee's record for one work date. The record is
// created by the first check-in (or an explicit create) and closed by
// check-out. The unique index backs the one-record-per-day invariant.
type Attendance struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID   uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	WorkDate     time.Time  `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	CheckInTime  *time.Time `gorm:"column:check_in_time;type:timestamptz"`
	CheckOutTime *time.Time `gorm:"column:check_out_time;type:timestamptz"`
	Type         string     `gorm:"column:attendance_type;type:varchar(20);not null;default:'NORMAL'"`
	Notes        *string    `gorm:"column:notes;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// WorkHours returns the worked duration in hours, or nil while the record is
// still open.
func (a Attendance) WorkHours() *float64 {
	if a.CheckInTime == nil || a.CheckOutTime == nil {
		return nil
	}
	h := a.CheckOutTime.Sub(*a.CheckInTime).Hours()
	return &h
}

func IsValidType(t string) bool {
	switch t {
	case TypeNormal, TypeRemote, TypeBusinessTrip, TypeHalfDay:
		return true
	default:
		return false
	}
}
