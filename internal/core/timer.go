package core

import "time"

// Throttle paces periodic work such as progress logging to at most once per
// interval. A zero interval lets every call through.
type Throttle struct {
	every time.Duration
	last  time.Time
	now   func() time.Time
}

// NewThrottle constructs a Throttle using the wall clock.
func NewThrottle(every time.Duration) *Throttle {
	return NewThrottleWithClock(every, time.Now)
}

// NewThrottleWithClock constructs a Throttle reading time from now.
func NewThrottleWithClock(every time.Duration, now func() time.Time) *Throttle {
	if every < 0 {
		every = 0
	}
	return &Throttle{every: every, now: now}
}

// Ready reports whether the interval has elapsed since the last accepted call.
// The first call is always accepted.
func (t *Throttle) Ready() bool {
	if t.every == 0 {
		return true
	}
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.every {
		return false
	}
	t.last = now
	return true
}
