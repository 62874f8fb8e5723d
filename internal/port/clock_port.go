package port

import "time"

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// UTCClock reads the wall clock in UTC, truncated to the microsecond precision
// Postgres keeps, so a value returned before a write equals the one read back.
func UTCClock() Clock {
	return ClockFunc(func() time.Time {
		return time.Now().UTC().Truncate(time.Microsecond)
	})
}
