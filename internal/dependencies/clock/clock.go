package clock

import "time"

// Clock supplies the current time. Session expiry and stored timestamps
// are computed from it so tests can move time forward.
type Clock interface {
	Now() time.Time
}

// UTCClock reads the system clock in UTC with the monotonic reading
// stripped, so values round-trip through SQL, Redis and JSON unchanged.
type UTCClock struct{}

// New creates a new UTCClock
func New() *UTCClock {
	return &UTCClock{}
}

// Now returns the current wall-clock time in UTC
func (UTCClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
