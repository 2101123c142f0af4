package redisbus

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	"go-hrms/internal/notification"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EmployeeDirectory resolves the recipient of a notification.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
}

// Subscriber listens on the attendance and leave channels and turns each
// event into a notification row for the dispatch worker to send.
type Subscriber struct {
	rdb           *redis.Client
	notifications notification.Repository
	employees     EmployeeDirectory
	logger        *zap.Logger
}

func NewSubscriber(
	rdb *redis.Client,
	notifications notification.Repository,
	employees EmployeeDirectory,
	logger ...*zap.Logger,
) *Subscriber {
	l := zap.L().Named("redisbus.subscriber")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("redisbus.subscriber")
	}
	return &Subscriber{
		rdb:           rdb,
		notifications: notifications,
		employees:     employees,
		logger:        l,
	}
}

func (s *Subscriber) Run(ctx context.Context) error {
	sub := s.rdb.Subscribe(ctx,
		events.AttendanceLateArrivalChannel,
		events.AttendanceEarlyLeavingChannel,
		events.AttendanceOvertimeChannel,
		events.LeaveRequestCreatedChannel,
		events.LeaveRequestApprovedChannel,
		events.LeaveRequestRejectedChannel,
		events.LeaveRequestCancelledChannel,
	)
	defer sub.Close()

	s.logger.Info("notification subscriber started")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notification subscriber stopped")
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.HandleMessage(ctx, msg.Channel, []byte(msg.Payload))
		}
	}
}

// HandleMessage dispatches one raw pub/sub message. Handler errors are logged
// and swallowed so one bad event cannot stop the loop.
func (s *Subscriber) HandleMessage(ctx context.Context, channel string, payload []byte) {
	var err error
	switch channel {
	case events.AttendanceLateArrivalChannel:
		err = s.handleLateArrival(ctx, payload)
	case events.AttendanceEarlyLeavingChannel:
		err = s.handleEarlyLeaving(ctx, payload)
	case events.AttendanceOvertimeChannel:
		err = s.handleOvertime(ctx, payload)
	case events.LeaveRequestCreatedChannel:
		err = s.handleLeaveCreated(ctx, payload)
	case events.LeaveRequestApprovedChannel:
		err = s.handleLeaveApproved(ctx, payload)
	case events.LeaveRequestRejectedChannel:
		err = s.handleLeaveRejected(ctx, payload)
	case events.LeaveRequestCancelledChannel:
		err = s.handleLeaveCancelled(ctx, payload)
	default:
		s.logger.Debug("ignoring event on unknown channel", zap.String("channel", channel))
		return
	}

	if err != nil {
		s.logger.Error("handle event failed",
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}

func (s *Subscriber) handleLateArrival(ctx context.Context, payload []byte) error {
	var event events.LateArrivalDetectedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	recipient, err := s.resolveRecipient(ctx, event.EmployeeID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Dear %s,\n\n"+
			"A late arrival was recorded for your shift on %s.\n\n"+
			"Check-in time: %s\n"+
			"Minutes late: %d\n\n"+
			"Please make sure to arrive on time. If there were unavoidable circumstances, contact your manager.",
		recipient.name, event.WorkDate, event.CheckInTime.Format("15:04"), event.LateMinutes,
	)

	return s.createNotification(ctx, recipient, notification.TypeLateArrival,
		"Late arrival recorded", message)
}

func (s *Subscriber) handleEarlyLeaving(ctx context.Context, payload []byte) error {
	var event events.EarlyLeavingDetectedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	recipient, err := s.resolveRecipient(ctx, event.EmployeeID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Dear %s,\n\n"+
			"An early leaving was recorded for your shift on %s.\n\n"+
			"Check-in time: %s\n"+
			"Check-out time: %s\n"+
			"Hours worked: %.1f\n\n"+
			"If you left early due to illness or another unavoidable reason, please report it to your manager.",
		recipient.name, event.WorkDate,
		event.CheckInTime.Format("15:04"), event.CheckOutTime.Format("15:04"), event.WorkHours,
	)

	return s.createNotification(ctx, recipient, notification.TypeEarlyLeaving,
		"Early leaving recorded", message)
}

func (s *Subscriber) handleOvertime(ctx context.Context, payload []byte) error {
	var event events.OvertimeDetectedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	recipient, err := s.resolveRecipient(ctx, event.EmployeeID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Long working hours were detected for your shift on %s.\n\n"+
			"Check-in time: %s\n"+
			"Check-out time: %s\n"+
			"Total hours: %.1f\n"+
			"Overtime hours: %.1f\n\n"+
			"Please take adequate rest. If your workload is too high, talk to your manager.",
		recipient.name, event.WorkDate,
		event.CheckInTime.Format("15:04"), event.CheckOutTime.Format("15:04"),
		event.WorkHours, event.OvertimeHours,
	)

	return s.createNotification(ctx, recipient, notification.TypeOvertime,
		"Long working hours detected", message)
}

func (s *Subscriber) handleLeaveCreated(ctx context.Context, payload []byte) error {
	var event events.LeaveRequestCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	recipient, err := s.resolveRecipient(ctx, event.EmployeeID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your leave request has been received.\n\n"+
			"Leave type: %s\n"+
			"Period: %s to %s\n"+
			"Reason: %s\n\n"+
			"You will be notified once it has been reviewed.",
		recipient.name, event.LeaveType, event.StartDate, event.EndDate, event.Reason,
	)

	return s.createNotification(ctx, recipient, notification.TypeLeaveRequestCreated,
		"Leave request received", message)
}

func (s *Subscriber) handleLeaveApproved(ctx context.Context, payload []byte) error {
	var event events.LeaveRequestApprovedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	recipient, err := s.resolveRecipient(ctx, event.EmployeeID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your leave request has been approved.\n\n"+
			"Leave type: %s\n"+
			"Period: %s to %s\n",
		recipient.name, event.LeaveType, event.StartDate, event.EndDate,
	)
	if event.ApproverComment != "" {
		message += fmt.Sprintf("Approver comment: %s\n", event.ApproverComment)
	}
	message += "\nEnjoy your time off."

	return s.createNotification(ctx, recipient, notification.TypeLeaveRequestApproved,
		"Leave request approved", message)
}

func (s *Subscriber) handleLeaveRejected(ctx context.Context, payload []byte) error {
	var event events.LeaveRequestRejectedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	recipient, err := s.resolveRecipient(ctx, event.EmployeeID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your leave request has been rejected.\n\n"+
			"Leave type: %s\n"+
			"Period: %s to %s\n",
		recipient.name, event.LeaveType, event.StartDate, event.EndDate,
	)
	if event.ApproverComment != "" {
		message += fmt.Sprintf("Rejection reason: %s\n", event.ApproverComment)
	}
	message += "\nPlease contact your manager for details."

	return s.createNotification(ctx, recipient, notification.TypeLeaveRequestRejected,
		"Leave request rejected", message)
}

func (s *Subscriber) handleLeaveCancelled(ctx context.Context, payload []byte) error {
	var event events.LeaveRequestCancelledEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	recipient, err := s.resolveRecipient(ctx, event.EmployeeID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your leave request has been cancelled.\n\n"+
			"Leave type: %s\n"+
			"Period: %s to %s\n\n"+
			"If you did not request this cancellation, contact your manager.",
		recipient.name, event.LeaveType, event.StartDate, event.EndDate,
	)

	return s.createNotification(ctx, recipient, notification.TypeLeaveRequestCancelled,
		"Leave request cancelled", message)
}

type recipient struct {
	email string
	name  string
}

func (s *Subscriber) resolveRecipient(ctx context.Context, employeeID string) (recipient, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return recipient{}, fmt.Errorf("parse employee id %q: %w", employeeID, err)
	}

	empl, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return recipient{}, fmt.Errorf("resolve employee %s: %w", employeeID, err)
	}

	return recipient{email: empl.Email, name: empl.FullName()}, nil
}

func (s *Subscriber) createNotification(
	ctx context.Context,
	to recipient,
	notificationType, subject, message string,
) error {
	n, err := notification.New(to.email, to.name, notificationType, subject, message)
	if err != nil {
		return err
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	s.logger.Info("notification queued",
		zap.String("notification_id", n.ID.String()),
		zap.String("type", notificationType),
		zap.String("recipient", to.email),
	)
	return nil
}
