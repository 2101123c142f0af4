package attendance

import (
	"math"
	"time"
)

// Policy holds the working-time thresholds used for anomaly detection.
// Values are per-organization configuration, fixed for the lifetime of a
// Detector.
type Policy struct {
	// StandardStart and StandardEnd are time-of-day offsets from midnight.
	StandardStart time.Duration
	StandardEnd   time.Duration
	// MinimumWorkHours is the floor below which early leaving is never
	// flagged.
	MinimumWorkHours float64
	// StandardWorkHours is the baseline subtracted when computing overtime
	// hours.
	StandardWorkHours float64
	// OvertimeThresholdHours flags the day as overtime at or above this
	// worked total.
	OvertimeThresholdHours float64
}

// DefaultPolicy is the 09:00-17:00 schedule with a 4h early-leaving floor,
// an 8h baseline and a 10h overtime threshold.
func DefaultPolicy() Policy {
	return Policy{
		StandardStart:          9 * time.Hour,
		StandardEnd:            17 * time.Hour,
		MinimumWorkHours:       4.0,
		StandardWorkHours:      8.0,
		OvertimeThresholdHours: 10.0,
	}
}

// Detector classifies single attendance records as late, early-leaving or
// overtime. All methods are pure; inputs are assumed well formed (check-out
// not before check-in is the caller's invariant).
type Detector struct {
	policy Policy
}

func NewDetector(policy Policy) *Detector {
	return &Detector{policy: policy}
}

// IsLateArrival reports whether the check-in time-of-day is strictly after
// the standard start. Arriving exactly on the boundary is not late.
func (d *Detector) IsLateArrival(checkIn time.Time) bool {
	return timeOfDay(checkIn) > d.policy.StandardStart
}

// IsEarlyLeaving reports whether the check-out time-of-day is strictly before
// the standard end. Days shorter than the minimum work hours are never
// flagged; leaving exactly at the standard end is not early.
func (d *Detector) IsEarlyLeaving(checkIn, checkOut time.Time) bool {
	workHours := checkOut.Sub(checkIn).Hours()
	if workHours < d.policy.MinimumWorkHours {
		return false
	}
	return timeOfDay(checkOut) < d.policy.StandardEnd
}

// IsOvertime reports whether the worked hours reach the overtime threshold.
// The boundary itself counts as overtime.
func (d *Detector) IsOvertime(workHours float64) bool {
	return workHours >= d.policy.OvertimeThresholdHours
}

// CalculateLateMinutes returns the whole minutes past the standard start, or
// 0 when the arrival is on time.
func (d *Detector) CalculateLateMinutes(checkIn time.Time) int {
	if !d.IsLateArrival(checkIn) {
		return 0
	}
	late := timeOfDay(checkIn) - d.policy.StandardStart
	return int(late.Minutes())
}

// CalculateOvertimeHours returns worked hours beyond the standard baseline,
// rounded half away from zero to two decimals, or 0 when the day is not
// overtime.
func (d *Detector) CalculateOvertimeHours(workHours float64) float64 {
	if !d.IsOvertime(workHours) {
		return 0
	}
	return math.Round((workHours-d.policy.StandardWorkHours)*100) / 100
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}
