package testutil

import (
	"sync"
	"time"

	"github.com/roach88/beloved/internal/model"
)

// FixedClock is a model.Clock that only moves when told to.
//
// This pins "today" for tests: the default state, phase computation and
// suggestion dates all derive from it.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock stopped at noon UTC of the given ISO date.
//
// Noon keeps the calendar date stable in every time zone offset up to ±12h.
// Panics on a malformed date.
func NewFixedClock(date string) *FixedClock {
	d := model.MustParseDate(date)
	return &FixedClock{now: d.Time().Add(12 * time.Hour)}
}

// Now returns the current fixed time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Today returns the calendar date of Now.
func (c *FixedClock) Today() model.Date {
	return model.DateOf(c.Now())
}

// AdvanceDays moves the clock forward by n days (backward if n < 0).
func (c *FixedClock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}

// Advance moves the clock by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
