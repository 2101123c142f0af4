package redisbus_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/redisbus"
	"go-hrms/internal/notification"
	notificationMock "go-hrms/internal/notification/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type staticDirectory struct {
	employees map[uuid.UUID]*employee.Employee
}

func (d *staticDirectory) FindByID(_ context.Context, id uuid.UUID) (*employee.Employee, error) {
	if empl, ok := d.employees[id]; ok {
		return empl, nil
	}
	return nil, assert.AnError
}

func setupSubscriberTest(t *testing.T) (*redisbus.Subscriber, *notificationMock.MockRepository, *employee.Employee) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := notificationMock.NewMockRepository(ctrl)

	empl := &employee.Employee{
		ID:        uuid.New(),
		FirstName: "Mika",
		LastName:  "Tanaka",
		Email:     "mika.tanaka@example.com",
	}
	directory := &staticDirectory{employees: map[uuid.UUID]*employee.Employee{empl.ID: empl}}

	sub := redisbus.NewSubscriber(nil, repo, directory)
	return sub, repo, empl
}

func TestSubscriber_HandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("late arrival becomes a pending notification", func(t *testing.T) {
		sub, repo, empl := setupSubscriberTest(t)

		var created *notification.Notification
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n *notification.Notification) error {
				created = n
				return nil
			})

		payload, err := json.Marshal(events.LateArrivalDetectedEvent{
			AttendanceID: uuid.NewString(),
			EmployeeID:   empl.ID.String(),
			WorkDate:     "2026-03-02",
			CheckInTime:  time.Date(2026, 3, 2, 9, 25, 0, 0, time.UTC),
			LateMinutes:  25,
		})
		require.NoError(t, err)

		sub.HandleMessage(ctx, events.AttendanceLateArrivalChannel, payload)

		require.NotNil(t, created)
		assert.Equal(t, notification.TypeLateArrival, created.Type)
		assert.Equal(t, notification.StatusPending, created.Status)
		assert.Equal(t, "mika.tanaka@example.com", created.RecipientEmail)
		assert.Equal(t, "Late arrival recorded", created.Subject)
		assert.Contains(t, created.Message, "Minutes late: 25")
		assert.Contains(t, created.Message, "09:25")
	})

	t.Run("approved leave includes the approver comment", func(t *testing.T) {
		sub, repo, empl := setupSubscriberTest(t)

		var created *notification.Notification
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n *notification.Notification) error {
				created = n
				return nil
			})

		payload, err := json.Marshal(events.LeaveRequestApprovedEvent{
			LeaveRequestID:  uuid.NewString(),
			EmployeeID:      empl.ID.String(),
			ApproverID:      uuid.NewString(),
			LeaveType:       "PAID",
			StartDate:       "2026-04-06",
			EndDate:         "2026-04-10",
			ApproverComment: "enjoy the trip",
			ApprovedAt:      time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		sub.HandleMessage(ctx, events.LeaveRequestApprovedChannel, payload)

		require.NotNil(t, created)
		assert.Equal(t, notification.TypeLeaveRequestApproved, created.Type)
		assert.Contains(t, created.Message, "2026-04-06 to 2026-04-10")
		assert.Contains(t, created.Message, "enjoy the trip")
	})

	t.Run("unknown channel is ignored", func(t *testing.T) {
		sub, _, _ := setupSubscriberTest(t)

		sub.HandleMessage(ctx, "attendance:unknown", []byte(`{}`))
	})

	t.Run("unresolvable employee creates nothing", func(t *testing.T) {
		sub, _, _ := setupSubscriberTest(t)

		payload, err := json.Marshal(events.OvertimeDetectedEvent{
			AttendanceID: uuid.NewString(),
			EmployeeID:   uuid.NewString(),
			WorkDate:     "2026-03-02",
		})
		require.NoError(t, err)

		sub.HandleMessage(ctx, events.AttendanceOvertimeChannel, payload)
	})

	t.Run("malformed payload creates nothing", func(t *testing.T) {
		sub, _, _ := setupSubscriberTest(t)

		sub.HandleMessage(ctx, events.AttendanceLateArrivalChannel, []byte("not json"))
	})
}
