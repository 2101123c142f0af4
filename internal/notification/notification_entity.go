package notification

import (
	"net/mail"
	"strings"
	"time"

	notificationerrors "go-hrms/internal/notification/errors"

	"github.com/google/uuid"
)

const (
	StatusPending = "PENDING"
	StatusSent    = "SENT"
	StatusFailed  = "FAILED"
)

const (
	TypeEmployeeCreated       = "EMPLOYEE_CREATED"
	TypeEmployeeUpdated       = "EMPLOYEE_UPDATED"
	TypeEmployeeDeleted       = "EMPLOYEE_DELETED"
	TypeLateArrival           = "LATE_ARRIVAL"
	TypeEarlyLeaving          = "EARLY_LEAVING"
	TypeOvertime              = "OVERTIME"
	TypeLeaveRequestCreated   = "LEAVE_REQUEST_CREATED"
	TypeLeaveRequestApproved  = "LEAVE_REQUEST_APPROVED"
	TypeLeaveRequestRejected  = "LEAVE_REQUEST_REJECTED"
	TypeLeaveRequestCancelled = "LEAVE_REQUEST_CANCELLED"
	TypeManual                = "MANUAL"
)

type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientEmail string    `gorm:"type:varchar(255);not null"`
	RecipientName  string    `gorm:"type:varchar(255);not null"`
	Type           string    `gorm:"column:notification_type;type:varchar(40);not null"`
	Subject        string    `gorm:"type:varchar(255);not null"`
	Message        string    `gorm:"type:text;not null"`

	Status       string  `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_notifications_status"`
	ErrorMessage *string `gorm:"type:text"`
	RetryCount   int     `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	SentAt    *time.Time
}

func (Notification) TableName() string {
	return "notifications"
}

// New builds a pending notification, rejecting blank fields and malformed
// recipient addresses up front so the dispatch loop only ever sees sendable
// rows.
func New(recipientEmail, recipientName, notificationType, subject, message string) (*Notification, error) {
	if strings.TrimSpace(recipientEmail) == "" || !isValidEmail(recipientEmail) {
		return nil, notificationerrors.ErrInvalidRecipientEmail
	}
	if strings.TrimSpace(recipientName) == "" {
		return nil, notificationerrors.ErrMissingRecipientName
	}
	if strings.TrimSpace(notificationType) == "" {
		return nil, notificationerrors.ErrMissingType
	}
	if strings.TrimSpace(subject) == "" {
		return nil, notificationerrors.ErrMissingSubject
	}
	if strings.TrimSpace(message) == "" {
		return nil, notificationerrors.ErrMissingMessage
	}

	return &Notification{
		ID:             uuid.New(),
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Type:           notificationType,
		Subject:        subject,
		Message:        message,
		Status:         StatusPending,
	}, nil
}

func (n *Notification) MarkSent(at time.Time) {
	n.Status = StatusSent
	n.SentAt = &at
}

// MarkFailed records the failure and counts the attempt.
func (n *Notification) MarkFailed(errorMessage string) {
	n.Status = StatusFailed
	n.ErrorMessage = &errorMessage
	n.RetryCount++
}

// ResetForRetry puts a failed notification back in the pending queue. The
// retry count is kept as an audit of past attempts.
func (n *Notification) ResetForRetry() {
	n.Status = StatusPending
	n.ErrorMessage = nil
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
