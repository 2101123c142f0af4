package events

import "time"

// Redis pub/sub channels for leave request events.
const (
	LeaveRequestCreatedChannel   = "leaverequest:created"
	LeaveRequestApprovedChannel  = "leaverequest:approved"
	LeaveRequestRejectedChannel  = "leaverequest:rejected"
	LeaveRequestCancelledChannel = "leaverequest:cancelled"
)

type LeaveRequestCreatedEvent struct {
	LeaveRequestID string    `json:"leave_request_id"`
	EmployeeID     string    `json:"employee_id"`
	LeaveType      string    `json:"leave_type"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
}

type LeaveRequestApprovedEvent struct {
	LeaveRequestID  string    `json:"leave_request_id"`
	EmployeeID      string    `json:"employee_id"`
	ApproverID      string    `json:"approver_id"`
	LeaveType       string    `json:"leave_type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	ApproverComment string    `json:"approver_comment,omitempty"`
	ApprovedAt      time.Time `json:"approved_at"`
}

type LeaveRequestRejectedEvent struct {
	LeaveRequestID  string    `json:"leave_request_id"`
	EmployeeID      string    `json:"employee_id"`
	ApproverID      string    `json:"approver_id"`
	LeaveType       string    `json:"leave_type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	ApproverComment string    `json:"approver_comment,omitempty"`
	RejectedAt      time.Time `json:"rejected_at"`
}

type LeaveRequestCancelledEvent struct {
	LeaveRequestID string    `json:"leave_request_id"`
	EmployeeID     string    `json:"employee_id"`
	LeaveType      string    `json:"leave_type"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	CancelledAt    time.Time `json:"cancelled_at"`
}
