package attendance_test

import (
	"testing"
	"time"

	"go-hrms/internal/attendance"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2026, 3, 16, hour, minute, second, 0, time.UTC)
}

func TestDetector_IsLateArrival(t *testing.T) {
	d := attendance.NewDetector(attendance.DefaultPolicy())

	tests := []struct {
		name    string
		checkIn time.Time
		want    bool
	}{
		{"exactly on standard start is on time", at(9, 0, 0), false},
		{"one second past start is late", at(9, 0, 1), true},
		{"one minute past start is late", at(9, 1, 0), true},
		{"before start is on time", at(8, 59, 59), false},
		{"midday arrival is late", at(13, 30, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsLateArrival(tt.checkIn))
		})
	}
}

func TestDetector_IsEarlyLeaving(t *testing.T) {
	d := attendance.NewDetector(attendance.DefaultPolicy())

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"exactly at standard end is not early", at(9, 0, 0), at(17, 0, 0), false},
		{"one minute before end is early", at(9, 0, 0), at(16, 59, 0), true},
		{"short day below minimum hours is not flagged", at(9, 0, 0), at(12, 59, 0), false},
		{"exactly minimum hours and before end is early", at(9, 0, 0), at(13, 0, 0), true},
		{"after standard end is not early", at(9, 0, 0), at(18, 30, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsEarlyLeaving(tt.checkIn, tt.checkOut))
		})
	}
}

func TestDetector_IsOvertime(t *testing.T) {
	d := attendance.NewDetector(attendance.DefaultPolicy())

	assert.True(t, d.IsOvertime(10.0), "threshold itself counts as overtime")
	assert.True(t, d.IsOvertime(12.5))
	assert.False(t, d.IsOvertime(9.99))
	assert.False(t, d.IsOvertime(8.0))
}

func TestDetector_CalculateLateMinutes(t *testing.T) {
	d := attendance.NewDetector(attendance.DefaultPolicy())

	tests := []struct {
		name    string
		checkIn time.Time
		want    int
	}{
		{"on time yields zero", at(9, 0, 0), 0},
		{"before start yields zero", at(8, 30, 0), 0},
		{"partial minute truncates down", at(9, 30, 45), 30},
		{"exact half hour", at(9, 30, 0), 30},
		{"one second late truncates to zero minutes", at(9, 0, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.CalculateLateMinutes(tt.checkIn))
		})
	}
}

func TestDetector_CalculateOvertimeHours(t *testing.T) {
	d := attendance.NewDetector(attendance.DefaultPolicy())

	assert.Equal(t, 0.0, d.CalculateOvertimeHours(9.5), "below the threshold no overtime accrues")
	assert.Equal(t, 2.0, d.CalculateOvertimeHours(10.0))
	assert.Equal(t, 2.13, d.CalculateOvertimeHours(10.125), "rounds half away from zero to two decimals")
	assert.Equal(t, 4.25, d.CalculateOvertimeHours(12.25))
}

func TestDetector_CustomPolicy(t *testing.T) {
	policy := attendance.Policy{
		StandardStart:          10 * time.Hour,
		StandardEnd:            18 * time.Hour,
		MinimumWorkHours:       3.0,
		StandardWorkHours:      7.0,
		OvertimeThresholdHours: 9.0,
	}
	d := attendance.NewDetector(policy)

	assert.False(t, d.IsLateArrival(at(9, 30, 0)))
	assert.True(t, d.IsLateArrival(at(10, 0, 1)))
	assert.True(t, d.IsOvertime(9.0))
	assert.Equal(t, 2.0, d.CalculateOvertimeHours(9.0))
}
