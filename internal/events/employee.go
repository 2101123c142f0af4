package events

import "time"

// Employee lifecycle events travel over kafka through the outbox.
const EmployeeLifecycleTopic = "hrms.employee.lifecycle.v1"

const (
	EmployeeCreatedType = "employee_created"
	EmployeeUpdatedType = "employee_updated"
	EmployeeDeletedType = "employee_deleted"
)

type EmployeeLifecycleEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	EmployeeEmail string    `json:"employee_email"`
	OccurredAt    time.Time `json:"occurred_at"`
}
