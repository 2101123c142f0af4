package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrms/internal/events"
	"go-hrms/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle reads employee lifecycle events from kafka and
// creates the onboarding, profile-change, and offboarding notifications.
// Decode failures are committed and skipped; transient persistence failures
// leave the message uncommitted so it is retried.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Repository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		n, err := buildLifecycleNotification(event)
		if err != nil {
			log.Warn("skipping unusable lifecycle event",
				zap.String("event_type", event.EventType),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifications.Create(ctx, n); err != nil {
			log.Error("create lifecycle notification failed",
				zap.String("event_type", event.EventType),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("lifecycle notification queued",
			zap.String("event_type", event.EventType),
			zap.String("employee_id", event.EmployeeID),
			zap.String("notification_id", n.ID.String()),
		)
	}
}

func buildLifecycleNotification(event events.EmployeeLifecycleEvent) (*notification.Notification, error) {
	switch event.EventType {
	case events.EmployeeCreatedType:
		return notification.New(
			event.EmployeeEmail,
			event.EmployeeName,
			notification.TypeEmployeeCreated,
			"Welcome aboard",
			fmt.Sprintf(
				"Dear %s,\n\n"+
					"Your employee record has been created.\n\n"+
					"Name: %s\n"+
					"Email: %s\n"+
					"Registered at: %s\n\n"+
					"Welcome to the team.",
				event.EmployeeName, event.EmployeeName, event.EmployeeEmail,
				event.OccurredAt.Format("2006-01-02 15:04"),
			),
		)
	case events.EmployeeUpdatedType:
		return notification.New(
			event.EmployeeEmail,
			event.EmployeeName,
			notification.TypeEmployeeUpdated,
			"Your employee record was updated",
			fmt.Sprintf(
				"Dear %s,\n\n"+
					"Your employee record was updated at %s.\n\n"+
					"If you did not expect this change, contact HR.",
				event.EmployeeName, event.OccurredAt.Format("2006-01-02 15:04"),
			),
		)
	case events.EmployeeDeletedType:
		return notification.New(
			event.EmployeeEmail,
			event.EmployeeName,
			notification.TypeEmployeeDeleted,
			"Your employee record was removed",
			fmt.Sprintf(
				"Dear %s,\n\n"+
					"Your employee record was removed from the system at %s.\n\n"+
					"Thank you for your time with us.",
				event.EmployeeName, event.OccurredAt.Format("2006-01-02 15:04"),
			),
		)
	default:
		return nil, fmt.Errorf("unknown lifecycle event type: %s", event.EventType)
	}
}
