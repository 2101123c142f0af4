package clock

import "time"

// Clock abstracts wall-clock reads so date-sensitive logic (absent-day
// capping, check-in timestamps) stays deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func System() Clock {
	return systemClock{}
}

// Fixed returns a clock pinned to t. Test helper.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
