// Package testfixtures holds shared helpers for time-dependent tests.
package testfixtures

import (
	"sort"
	"sync"
	"time"

	"github.com/kzkiosk/kiosk-control/internal/core/ports"
)

// ReferenceTime is the default starting instant of a Clock.
func ReferenceTime() time.Time {
	return time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
}

// Clock provides a controllable time source for tests. Timers scheduled with
// AfterFunc fire synchronously from Advance once their deadline is reached.
type Clock struct {
	mu      sync.Mutex
	current time.Time
	timers  []*fakeTimer
}

var _ ports.Clock = (*Clock)(nil)

// NewClock returns a clock initialised to the supplied time. When start is the
// zero value, ReferenceTime is used.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.current.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, fires every timer due by then in
// deadline order and returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	now := c.current

	var due []*fakeTimer
	pending := c.timers[:0]
	for _, t := range c.timers {
		if !t.deadline.After(now) {
			due = append(due, t)
		} else {
			pending = append(pending, t)
		}
	}
	c.timers = pending
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	for _, t := range due {
		t.fn()
	}
	return now
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

type fakeTimer struct {
	clock    *Clock
	deadline time.Time
	fn       func()
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}
