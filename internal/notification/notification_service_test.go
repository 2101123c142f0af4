package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/notification"
	notificationerrors "go-hrms/internal/notification/errors"
	notificationMock "go-hrms/internal/notification/mock"
	"go-hrms/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type flakySender struct {
	failOn map[string]error
	sent   []string
}

func (s *flakySender) Send(_ context.Context, n *notification.Notification) error {
	if err, ok := s.failOn[n.RecipientEmail]; ok {
		return err
	}
	s.sent = append(s.sent, n.RecipientEmail)
	return nil
}

func pendingNotification(email string) notification.Notification {
	n, _ := notification.New(email, "Recipient", notification.TypeManual, "Subject", "Message")
	return *n
}

func TestNotificationService_ProcessPending(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	t.Run("one failure does not block the rest of the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMock.NewMockRepository(ctrl)
		sender := &flakySender{failOn: map[string]error{
			"second@example.com": errors.New("smtp timeout"),
		}}
		svc := notification.NewService(repo, sender, clock.Fixed(now), nil)

		batch := []notification.Notification{
			pendingNotification("first@example.com"),
			pendingNotification("second@example.com"),
			pendingNotification("third@example.com"),
		}

		repo.EXPECT().FindPending(gomock.Any()).Return(batch, nil)

		var updated []notification.Notification
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n *notification.Notification) error {
				updated = append(updated, *n)
				return nil
			}).
			Times(3)

		err := svc.ProcessPending(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"first@example.com", "third@example.com"}, sender.sent)
		require.Len(t, updated, 3)

		assert.Equal(t, notification.StatusSent, updated[0].Status)
		assert.Equal(t, now, *updated[0].SentAt)

		assert.Equal(t, notification.StatusFailed, updated[1].Status)
		assert.Equal(t, 1, updated[1].RetryCount)
		assert.Equal(t, "smtp timeout", *updated[1].ErrorMessage)

		assert.Equal(t, notification.StatusSent, updated[2].Status)
	})

	t.Run("empty queue is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMock.NewMockRepository(ctrl)
		svc := notification.NewService(repo, &flakySender{}, clock.Fixed(now), nil)

		repo.EXPECT().FindPending(gomock.Any()).Return(nil, nil)

		assert.NoError(t, svc.ProcessPending(ctx))
	})

	t.Run("a failed status update is logged but does not stop the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMock.NewMockRepository(ctrl)
		sender := &flakySender{}
		svc := notification.NewService(repo, sender, clock.Fixed(now), nil)

		batch := []notification.Notification{
			pendingNotification("a@example.com"),
			pendingNotification("b@example.com"),
		}

		repo.EXPECT().FindPending(gomock.Any()).Return(batch, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.ProcessPending(ctx)

		require.NoError(t, err)
		assert.Len(t, sender.sent, 2)
	})
}

func TestNotificationService_ResetForRetry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	t.Run("failed notification goes back to pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMock.NewMockRepository(ctrl)
		svc := notification.NewService(repo, &flakySender{}, clock.Fixed(now), nil)

		failed := pendingNotification("retry@example.com")
		failed.MarkFailed("smtp timeout")

		repo.EXPECT().FindByID(gomock.Any(), failed.ID).Return(&failed, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := svc.ResetForRetry(ctx, failed.ID.String())

		require.NoError(t, err)
		assert.Equal(t, notification.StatusPending, resp.Status)
		assert.Nil(t, resp.ErrorMessage)
		assert.Equal(t, 1, resp.RetryCount)
	})

	t.Run("pending notification cannot be reset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMock.NewMockRepository(ctrl)
		svc := notification.NewService(repo, &flakySender{}, clock.Fixed(now), nil)

		pending := pendingNotification("retry@example.com")
		repo.EXPECT().FindByID(gomock.Any(), pending.ID).Return(&pending, nil)

		_, err := svc.ResetForRetry(ctx, pending.ID.String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotFailed)
	})

	t.Run("unknown notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMock.NewMockRepository(ctrl)
		svc := notification.NewService(repo, &flakySender{}, clock.Fixed(now), nil)

		id := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.ResetForRetry(ctx, id.String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})
}

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := notificationMock.NewMockRepository(ctrl)
	svc := notification.NewService(repo, &flakySender{}, clock.System(), nil)

	t.Run("defaults to the manual type", func(t *testing.T) {
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n *notification.Notification) error {
				assert.Equal(t, notification.TypeManual, n.Type)
				return nil
			})

		resp, err := svc.Create(ctx, notification.CreateNotificationRequest{
			RecipientEmail: "jane@example.com",
			RecipientName:  "Jane Doe",
			Subject:        "Hello",
			Message:        "Manual message",
		})

		require.NoError(t, err)
		assert.Equal(t, notification.StatusPending, resp.Status)
	})

	t.Run("invalid recipient is rejected before persistence", func(t *testing.T) {
		_, err := svc.Create(ctx, notification.CreateNotificationRequest{
			RecipientEmail: "nope",
			RecipientName:  "Jane Doe",
			Subject:        "Hello",
			Message:        "Manual message",
		})

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidRecipientEmail)
	})
}
