package shared

import "time"

// Clock supplies the current time to the application layer. Domain
// aggregates take explicit timestamps on every mutating method, so the
// clock is only consulted at the command-handling boundary. This keeps
// every transition deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
