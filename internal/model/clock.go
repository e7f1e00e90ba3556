package model

import "time"

// Clock supplies the current time. Injected wherever "today" matters so
// tests can pin the date.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Today returns the calendar date of c.Now() in its own location.
func Today(c Clock) Date {
	return DateOf(c.Now())
}
