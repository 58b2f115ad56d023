package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Clock returns the current instant. Services hold one so tests can pin time.
type Clock func() time.Time

// FixedClock always reports ts.
func FixedClock(ts time.Time) Clock {
	return func() time.Time { return ts }
}
