package attendance_test

import (
	"testing"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/leave"
	"go-hrms/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func record(employeeID uuid.UUID, day int, checkIn, checkOut *time.Time) attendance.Attendance {
	return attendance.Attendance{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		WorkDate:     time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		CheckInTime:  checkIn,
		CheckOutTime: checkOut,
		Type:         attendance.TypeNormal,
	}
}

func ts(day, hour, minute int) *time.Time {
	t := time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func newAggregator(now time.Time) *attendance.Aggregator {
	detector := attendance.NewDetector(attendance.DefaultPolicy())
	return attendance.NewAggregator(detector, clock.Fixed(now))
}

func TestAggregator_WorkDaysAndHours(t *testing.T) {
	employeeID := uuid.New()
	agg := newAggregator(time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC))

	records := []attendance.Attendance{
		record(employeeID, 2, ts(2, 9, 0), ts(2, 17, 0)),  // 8h
		record(employeeID, 3, ts(3, 9, 30), ts(3, 17, 30)), // 8h, late
		record(employeeID, 4, ts(4, 9, 0), nil),            // open, not a work day
	}

	summary := agg.Summarize(employeeID, 2026, 3, records, nil)

	assert.Equal(t, 2, summary.TotalWorkDays)
	assert.InDelta(t, 16.0, summary.TotalWorkHours, 1e-9)
	assert.InDelta(t, 8.0, summary.AverageWorkHours, 1e-9)
	assert.Equal(t, 1, summary.LateDays)
}

func TestAggregator_EmptyMonth(t *testing.T) {
	employeeID := uuid.New()
	agg := newAggregator(time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC))

	summary := agg.Summarize(employeeID, 2026, 3, nil, nil)

	assert.Equal(t, 0, summary.TotalWorkDays)
	assert.Equal(t, 0.0, summary.TotalWorkHours)
	assert.Equal(t, 0.0, summary.AverageWorkHours, "no division by zero on an empty month")
	assert.Equal(t, 31, summary.AbsentDays, "every elapsed day without a record counts absent")
}

func TestAggregator_AbsentDaysCappedAtToday(t *testing.T) {
	employeeID := uuid.New()
	// Mid-month: only days 1-10 have elapsed.
	agg := newAggregator(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))

	records := []attendance.Attendance{
		record(employeeID, 2, ts(2, 9, 0), ts(2, 17, 0)),
		record(employeeID, 5, ts(5, 9, 0), ts(5, 17, 0)),
	}

	summary := agg.Summarize(employeeID, 2026, 3, records, nil)

	// Days 1,3,4,6,7,8,9,10 have no record; 11-31 are in the future.
	assert.Equal(t, 8, summary.AbsentDays)
}

func TestAggregator_ApprovedLeaveExcusesAbsence(t *testing.T) {
	employeeID := uuid.New()
	agg := newAggregator(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))

	leaves := []leave.LeaveRequest{
		{
			EmployeeID: employeeID,
			Type:       leave.TypeSick,
			Status:     leave.StatusApproved,
			StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			// Pending leave does not excuse absence.
			EmployeeID: employeeID,
			Type:       leave.TypePaid,
			Status:     leave.StatusPending,
			StartDate:  time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	summary := agg.Summarize(employeeID, 2026, 3, nil, leaves)

	// Days 1-8 covered by approved leave; 9 and 10 remain absent.
	assert.Equal(t, 2, summary.AbsentDays)
}

func TestAggregator_PaidLeaveDaysClippedToMonth(t *testing.T) {
	employeeID := uuid.New()
	agg := newAggregator(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	leaves := []leave.LeaveRequest{
		{
			// Spans the month boundary; only the March part counts.
			EmployeeID: employeeID,
			Type:       leave.TypePaid,
			Status:     leave.StatusApproved,
			StartDate:  time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			// Sick leave never counts toward paid leave days.
			EmployeeID: employeeID,
			Type:       leave.TypeSick,
			Status:     leave.StatusApproved,
			StartDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		},
	}

	summary := agg.Summarize(employeeID, 2026, 3, nil, leaves)

	assert.Equal(t, 3, summary.PaidLeaveDays)
}
