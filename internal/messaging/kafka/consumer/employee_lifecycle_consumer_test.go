package consumer

import (
	"testing"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lifecycleEvent(eventType string) events.EmployeeLifecycleEvent {
	return events.EmployeeLifecycleEvent{
		EventType:     eventType,
		EmployeeID:    uuid.NewString(),
		EmployeeName:  "Sanne Bakker",
		EmployeeEmail: "sanne.bakker@example.com",
		OccurredAt:    time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildLifecycleNotification(t *testing.T) {
	t.Run("created event becomes a welcome notification", func(t *testing.T) {
		n, err := buildLifecycleNotification(lifecycleEvent(events.EmployeeCreatedType))
		require.NoError(t, err)

		assert.Equal(t, notification.TypeEmployeeCreated, n.Type)
		assert.Equal(t, "sanne.bakker@example.com", n.RecipientEmail)
		assert.Equal(t, "Welcome aboard", n.Subject)
		assert.Contains(t, n.Message, "2026-03-02 10:30")
	})

	t.Run("updated event becomes a profile change notification", func(t *testing.T) {
		n, err := buildLifecycleNotification(lifecycleEvent(events.EmployeeUpdatedType))
		require.NoError(t, err)

		assert.Equal(t, notification.TypeEmployeeUpdated, n.Type)
		assert.Contains(t, n.Message, "contact HR")
	})

	t.Run("deleted event becomes an offboarding notification", func(t *testing.T) {
		n, err := buildLifecycleNotification(lifecycleEvent(events.EmployeeDeletedType))
		require.NoError(t, err)

		assert.Equal(t, notification.TypeEmployeeDeleted, n.Type)
	})

	t.Run("unknown event types are rejected", func(t *testing.T) {
		_, err := buildLifecycleNotification(lifecycleEvent("employee_archived"))
		assert.Error(t, err)
	})

	t.Run("events without a recipient are rejected", func(t *testing.T) {
		event := lifecycleEvent(events.EmployeeCreatedType)
		event.EmployeeEmail = ""

		_, err := buildLifecycleNotification(event)
		assert.Error(t, err)
	})
}
