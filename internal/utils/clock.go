package utils

import (
	"sync"
	"time"

	"memberclub-rental/internal/domain"
)

// Clock supplies the current time to services
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Loc, or local time when Loc is nil
type SystemClock struct {
	Loc *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Loc == nil {
		return time.Now()
	}
	return time.Now().In(c.Loc)
}

// FixedClock returns a settable instant. Used by tests and the -as-of flag.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// AdvanceDays moves the clock forward n calendar days
func (c *FixedClock) AdvanceDays(n int) {
	c.mu.Lock()
	c.t = c.t.AddDate(0, 0, n)
	c.mu.Unlock()
}

// Today returns the calendar date of the clock's current instant
func Today(c Clock) domain.Date {
	return domain.DateOf(c.Now())
}
