package notification

import (
	"context"
	"errors"

	notificationerrors "go-hrms/internal/notification/errors"
	"go-hrms/internal/notification/metrics"
	"go-hrms/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)
	GetByID(ctx context.Context, id string) (NotificationResponse, error)
	GetAll(ctx context.Context) ([]NotificationResponse, error)
	GetRecent(ctx context.Context, limit int) ([]NotificationResponse, error)
	ResetForRetry(ctx context.Context, id string) (NotificationResponse, error)
	// ProcessPending drains the pending queue once. A failing notification is
	// marked failed and never blocks the rest of the batch.
	ProcessPending(ctx context.Context) error
}

type service struct {
	repo    Repository
	sender  Sender
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewService(repo Repository, sender Sender, clk clock.Clock, m *metrics.Metrics, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, sender: sender, clock: clk, metrics: m, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error) {
	notificationType := req.Type
	if notificationType == "" {
		notificationType = TypeManual
	}

	n, err := New(req.RecipientEmail, req.RecipientName, notificationType, req.Subject, req.Message)
	if err != nil {
		return NotificationResponse{}, err
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return NotificationResponse{}, err
	}

	s.logger.Info("notification queued",
		zap.String("notification_id", n.ID.String()),
		zap.String("type", n.Type),
	)
	return mapToResponse(*n), nil
}

func (s *service) GetByID(ctx context.Context, id string) (NotificationResponse, error) {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidNotificationID
	}
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) GetAll(ctx context.Context) ([]NotificationResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAllToResponse(rows), nil
}

func (s *service) GetRecent(ctx context.Context, limit int) ([]NotificationResponse, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return mapAllToResponse(rows), nil
}

func (s *service) ResetForRetry(ctx context.Context, id string) (NotificationResponse, error) {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidNotificationID
	}
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}
	if n.Status != StatusFailed {
		return NotificationResponse{}, notificationerrors.ErrNotFailed
	}

	n.ResetForRetry()
	if err := s.repo.Update(ctx, n); err != nil {
		return NotificationResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) ProcessPending(ctx context.Context) error {
	pending, err := s.repo.FindPending(ctx)
	if err != nil {
		return err
	}
	s.metrics.SetQueueDepth(len(pending))
	if len(pending) == 0 {
		return nil
	}

	s.logger.Debug("processing pending notifications", zap.Int("count", len(pending)))

	for i := range pending {
		n := &pending[i]

		start := s.clock.Now()
		sendErr := s.sender.Send(ctx, n)
		s.metrics.ObserveSendLatency(s.clock.Now().Sub(start))

		if sendErr != nil {
			n.MarkFailed(sendErr.Error())
			s.metrics.IncrementDispatched(StatusFailed, n.Type)
			s.logger.Warn("notification send failed",
				zap.String("notification_id", n.ID.String()),
				zap.Int("retry_count", n.RetryCount),
				zap.Error(sendErr),
			)
		} else {
			n.MarkSent(s.clock.Now().UTC())
			s.metrics.IncrementDispatched(StatusSent, n.Type)
		}

		if err := s.repo.Update(ctx, n); err != nil {
			s.logger.Error("notification status update failed",
				zap.String("notification_id", n.ID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}
