package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypePaid    = "PAID"
	TypeSick    = "SICK"
	TypeSpecial = "SPECIAL"
	TypeUnpaid  = "UNPAID"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	Type      string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// TotalDays is the inclusive span of the request in calendar days.
func (l *LeaveRequest) TotalDays() int {
	start := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func IsValidType(t string) bool {
	switch t {
	case TypePaid, TypeSick, TypeSpecial, TypeUnpaid:
		return true
	}
	return false
}

// CanTransition reports whether a status change is allowed. Pending requests
// may be approved, rejected, or cancelled; approved requests may only be
// cancelled. Rejected and cancelled are terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected || to == StatusCancelled
	case StatusApproved:
		return to == StatusCancelled
	}
	return false
}

// BlocksOverlap reports whether an existing request in this status prevents
// a new request over the same dates.
func BlocksOverlap(status string) bool {
	return status == StatusPending || status == StatusApproved
}
