package notification

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers one notification to its recipient. Implementations must be
// safe for concurrent use.
//
//go:generate mockgen -source=sender.go -destination=mock/sender_mock.go -package=mock
type Sender interface {
	Send(ctx context.Context, n *Notification) error
}

// ConsoleSender writes the notification to the log instead of an external
// mail gateway. Used in development and as the default wiring.
type ConsoleSender struct {
	logger *zap.Logger
}

func NewConsoleSender(logger ...*zap.Logger) *ConsoleSender {
	l := zap.L().Named("notification.console_sender")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.console_sender")
	}
	return &ConsoleSender{logger: l}
}

func (s *ConsoleSender) Send(_ context.Context, n *Notification) error {
	s.logger.Info("notification delivered",
		zap.String("notification_id", n.ID.String()),
		zap.String("recipient", n.RecipientEmail),
		zap.String("type", n.Type),
		zap.String("subject", n.Subject),
	)
	return nil
}
