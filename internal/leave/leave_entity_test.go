package leave_test

import (
	"testing"
	"time"

	"go-hrms/internal/leave"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{leave.StatusPending, leave.StatusApproved, true},
		{leave.StatusPending, leave.StatusRejected, true},
		{leave.StatusPending, leave.StatusCancelled, true},
		{leave.StatusApproved, leave.StatusCancelled, true},
		{leave.StatusApproved, leave.StatusRejected, false},
		{leave.StatusApproved, leave.StatusApproved, false},
		{leave.StatusRejected, leave.StatusCancelled, false},
		{leave.StatusRejected, leave.StatusApproved, false},
		{leave.StatusCancelled, leave.StatusCancelled, false},
		{leave.StatusCancelled, leave.StatusApproved, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+" to "+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, leave.CanTransition(tt.from, tt.to))
		})
	}
}

func TestBlocksOverlap(t *testing.T) {
	assert.True(t, leave.BlocksOverlap(leave.StatusPending))
	assert.True(t, leave.BlocksOverlap(leave.StatusApproved))
	assert.False(t, leave.BlocksOverlap(leave.StatusRejected))
	assert.False(t, leave.BlocksOverlap(leave.StatusCancelled))
}

func TestLeaveRequestTotalDays(t *testing.T) {
	l := leave.LeaveRequest{
		StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, l.TotalDays())

	single := leave.LeaveRequest{
		StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 1, single.TotalDays())
}
