package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"
	attendanceMock "go-hrms/internal/attendance/mock"
	"go-hrms/internal/events"
	eventsMock "go-hrms/internal/events/mock"
	"go-hrms/internal/leave"
	"go-hrms/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type leaveFinderStub struct {
	leaves []leave.LeaveRequest
	err    error
}

func (s *leaveFinderStub) FindByEmployeeAndDateRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]leave.LeaveRequest, error) {
	return s.leaves, s.err
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *attendanceMock.MockRepository
	publisher *eventsMock.MockPublisher
	leaves    *leaveFinderStub
	service   attendance.Service
	now       time.Time
}

func setupServiceTest(t *testing.T, now time.Time) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	repo := attendanceMock.NewMockRepository(ctrl)
	publisher := eventsMock.NewMockPublisher(ctrl)
	finder := &leaveFinderStub{}
	detector := attendance.NewDetector(attendance.DefaultPolicy())
	aggregator := attendance.NewAggregator(detector, clock.Fixed(now))

	svc := attendance.NewService(gdb, repo, finder, detector, aggregator, publisher, clock.Fixed(now))

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      repo,
		publisher: publisher,
		leaves:    finder,
		service:   svc,
		now:       now,
	}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	employeeID := uuid.New()
	ctx := context.Background()

	t.Run("on time check-in publishes only the check-in event", func(t *testing.T) {
		now := time.Date(2026, 3, 16, 8, 55, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), employeeID, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)).
			Return(nil, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.publisher.EXPECT().
			Publish(gomock.Any(), events.AttendanceCheckInChannel, gomock.Any()).
			Return(nil)

		resp, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: employeeID.String()})

		require.NoError(t, err)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
		assert.Equal(t, "2026-03-16", resp.WorkDate)
		assert.Equal(t, attendance.TypeNormal, resp.Type)
	})

	t.Run("late check-in also publishes a late arrival event", func(t *testing.T) {
		now := time.Date(2026, 3, 16, 9, 20, 30, 0, time.UTC)
		deps := setupServiceTest(t, now)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), employeeID, gomock.Any()).
			Return(nil, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.publisher.EXPECT().
			Publish(gomock.Any(), events.AttendanceCheckInChannel, gomock.Any()).
			Return(nil)

		var lateEvent events.LateArrivalDetectedEvent
		deps.publisher.EXPECT().
			Publish(gomock.Any(), events.AttendanceLateArrivalChannel, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, event any) error {
				lateEvent = event.(events.LateArrivalDetectedEvent)
				return nil
			})

		_, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: employeeID.String()})

		require.NoError(t, err)
		assert.Equal(t, 20, lateEvent.LateMinutes)
		assert.Equal(t, employeeID.String(), lateEvent.EmployeeID)
	})

	t.Run("second check-in on the same day is rejected", func(t *testing.T) {
		now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)

		checkIn := time.Date(2026, 3, 16, 8, 30, 0, 0, time.UTC)
		existing := &attendance.Attendance{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			WorkDate:    time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			CheckInTime: &checkIn,
			Type:        attendance.TypeNormal,
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), employeeID, gomock.Any()).
			Return(existing, nil)

		_, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: employeeID.String()})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})

	t.Run("publish failure does not fail the check-in", func(t *testing.T) {
		now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), employeeID, gomock.Any()).
			Return(nil, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.publisher.EXPECT().
			Publish(gomock.Any(), events.AttendanceCheckInChannel, gomock.Any()).
			Return(assert.AnError)

		_, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: employeeID.String()})

		assert.NoError(t, err)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now().UTC())

		_, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "not-a-uuid"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	employeeID := uuid.New()
	ctx := context.Background()

	t.Run("overtime day publishes check-out and overtime events", func(t *testing.T) {
		now := time.Date(2026, 3, 16, 19, 0, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)

		checkIn := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
		existing := &attendance.Attendance{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			WorkDate:    time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			CheckInTime: &checkIn,
			Type:        attendance.TypeNormal,
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), employeeID, gomock.Any()).
			Return(existing, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		deps.publisher.EXPECT().
			Publish(gomock.Any(), events.AttendanceCheckOutChannel, gomock.Any()).
			Return(nil)

		var overtimeEvent events.OvertimeDetectedEvent
		deps.publisher.EXPECT().
			Publish(gomock.Any(), events.AttendanceOvertimeChannel, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, event any) error {
				overtimeEvent = event.(events.OvertimeDetectedEvent)
				return nil
			})

		resp, err := deps.service.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: employeeID.String()})

		require.NoError(t, err)
		require.NotNil(t, resp.WorkHours)
		assert.InDelta(t, 11.0, *resp.WorkHours, 1e-9)
		assert.InDelta(t, 3.0, overtimeEvent.OvertimeHours, 1e-9)
	})

	t.Run("early leaving publishes an early leaving event", func(t *testing.T) {
		now := time.Date(2026, 3, 16, 15, 0, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)

		checkIn := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
		existing := &attendance.Attendance{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			WorkDate:    time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			CheckInTime: &checkIn,
			Type:        attendance.TypeNormal,
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), employeeID, gomock.Any()).
			Return(existing, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		deps.publisher.EXPECT().
			Publish(gomock.Any(), events.AttendanceCheckOutChannel, gomock.Any()).
			Return(nil)
		deps.publisher.EXPECT().
			Publish(gomock.Any(), events.AttendanceEarlyLeavingChannel, gomock.Any()).
			Return(nil)

		_, err := deps.service.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: employeeID.String()})

		assert.NoError(t, err)
	})

	t.Run("check-out without an open check-in is rejected", func(t *testing.T) {
		now := time.Date(2026, 3, 16, 17, 0, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), employeeID, gomock.Any()).
			Return(nil, nil)

		_, err := deps.service.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: employeeID.String()})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
	})

	t.Run("double check-out is rejected", func(t *testing.T) {
		now := time.Date(2026, 3, 16, 18, 0, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)

		checkIn := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
		checkOut := time.Date(2026, 3, 16, 17, 0, 0, 0, time.UTC)
		existing := &attendance.Attendance{
			ID:           uuid.New(),
			EmployeeID:   employeeID,
			WorkDate:     time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			CheckInTime:  &checkIn,
			CheckOutTime: &checkOut,
			Type:         attendance.TypeNormal,
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), employeeID, gomock.Any()).
			Return(existing, nil)

		_, err := deps.service.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: employeeID.String()})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})
}

func TestAttendanceService_GetMonthlySummary(t *testing.T) {
	employeeID := uuid.New()
	ctx := context.Background()

	t.Run("rejects an out of range period", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now().UTC())

		_, err := deps.service.GetMonthlySummary(ctx, employeeID.String(), 2026, 13)
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidSummaryPeriod)

		_, err = deps.service.GetMonthlySummary(ctx, employeeID.String(), 1999, 6)
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidSummaryPeriod)
	})

	t.Run("aggregates records and approved leave", func(t *testing.T) {
		now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)

		checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		checkOut := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
		records := []attendance.Attendance{{
			ID:           uuid.New(),
			EmployeeID:   employeeID,
			WorkDate:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			CheckInTime:  &checkIn,
			CheckOutTime: &checkOut,
			Type:         attendance.TypeNormal,
		}}
		deps.leaves.leaves = []leave.LeaveRequest{{
			EmployeeID: employeeID,
			Type:       leave.TypePaid,
			Status:     leave.StatusApproved,
			StartDate:  time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		}}

		deps.repo.EXPECT().
			FindByEmployeeAndDateRange(gomock.Any(), employeeID,
				time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)).
			Return(records, nil)

		resp, err := deps.service.GetMonthlySummary(ctx, employeeID.String(), 2026, 3)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.TotalWorkDays)
		assert.InDelta(t, 8.0, resp.TotalWorkHours, 1e-9)
		assert.Equal(t, 2, resp.PaidLeaveDays)
		// March has 31 elapsed days; 1 worked, 2 on approved leave.
		assert.Equal(t, 28, resp.AbsentDays)
		assert.Len(t, resp.Records, 1)
	})
}
