package notification_test

import (
	"testing"
	"time"

	"go-hrms/internal/notification"
	notificationerrors "go-hrms/internal/notification/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	t.Run("valid input yields a pending notification", func(t *testing.T) {
		n, err := notification.New("jane@example.com", "Jane Doe", notification.TypeManual, "Welcome", "Hello Jane")

		require.NoError(t, err)
		assert.Equal(t, notification.StatusPending, n.Status)
		assert.Equal(t, 0, n.RetryCount)
		assert.Nil(t, n.SentAt)
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		_, err := notification.New("not-an-email", "Jane Doe", notification.TypeManual, "Welcome", "Hello")
		assert.ErrorIs(t, err, notificationerrors.ErrInvalidRecipientEmail)
	})

	t.Run("blank fields are rejected", func(t *testing.T) {
		_, err := notification.New("jane@example.com", "  ", notification.TypeManual, "Welcome", "Hello")
		assert.ErrorIs(t, err, notificationerrors.ErrMissingRecipientName)

		_, err = notification.New("jane@example.com", "Jane", notification.TypeManual, "", "Hello")
		assert.ErrorIs(t, err, notificationerrors.ErrMissingSubject)

		_, err = notification.New("jane@example.com", "Jane", notification.TypeManual, "Welcome", " ")
		assert.ErrorIs(t, err, notificationerrors.ErrMissingMessage)
	})
}

func TestNotificationLifecycle(t *testing.T) {
	n, err := notification.New("jane@example.com", "Jane Doe", notification.TypeLateArrival, "Late arrival", "You were late")
	require.NoError(t, err)

	sentAt := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	n.MarkSent(sentAt)
	assert.Equal(t, notification.StatusSent, n.Status)
	require.NotNil(t, n.SentAt)
	assert.Equal(t, sentAt, *n.SentAt)

	n.MarkFailed("smtp timeout")
	assert.Equal(t, notification.StatusFailed, n.Status)
	assert.Equal(t, 1, n.RetryCount)
	require.NotNil(t, n.ErrorMessage)
	assert.Equal(t, "smtp timeout", *n.ErrorMessage)

	n.MarkFailed("smtp timeout again")
	assert.Equal(t, 2, n.RetryCount, "every failed attempt counts")

	n.ResetForRetry()
	assert.Equal(t, notification.StatusPending, n.Status)
	assert.Nil(t, n.ErrorMessage)
	assert.Equal(t, 2, n.RetryCount, "reset keeps the attempt history")
}
