// Package biztime centralises how the service reads and formats time.
// Everything is stored, compared and transported in UTC.
package biztime

import (
	"sync"
	"time"
)

// DateLayout is the calendar date format used in user facing messages.
const DateLayout = "2006-01-02"

// Clock is the single source of "now". Use cases read it once per call and
// pass the value down so every decision in a request shares one instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant until moved. Safe for
// concurrent use.
type FixedClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// NowUTC returns the current wall clock time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDate renders the UTC calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DaysUntil returns the number of started 24h periods between now and t.
// Anything already elapsed yields 0.
func DaysUntil(now, t time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}
