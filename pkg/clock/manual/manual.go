package manual

import (
	"sync"
	"time"

	"payment-kiosk/pkg/clock"
)

// Clock is a clock.Clock whose time only moves when Advance is called.
// Due callbacks run on the goroutine calling Advance, in the order they
// were scheduled (earliest deadline first, ties by scheduling order).
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*timer
}

type timer struct {
	clock   *Clock
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

var _ clock.Clock = (*Clock)(nil)

// New creates a manual clock starting at the given instant.
func New(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current simulated time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules f to run once the clock has been advanced by d.
func (c *Clock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	t := &timer{clock: c, due: c.now.Add(d), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every callback that
// becomes due, including callbacks scheduled by other callbacks.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.popDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.due
		next.fired = true
		c.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of callbacks that have not fired or been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// popDue removes and returns the earliest timer due at or before target.
// Caller must hold c.mu.
func (c *Clock) popDue(target time.Time) *timer {
	idx := -1
	for i, t := range c.timers {
		if t.due.After(target) {
			continue
		}
		if idx == -1 || t.due.Before(c.timers[idx].due) ||
			(t.due.Equal(c.timers[idx].due) && t.seq < c.timers[idx].seq) {
			idx = i
		}
	}
	if idx == -1 {
		return nil
	}
	t := c.timers[idx]
	c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
	return t
}

// Stop removes the timer from the schedule.
func (t *timer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			break
		}
	}
	return true
}
