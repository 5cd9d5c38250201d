package scheduler

import (
	"sort"
	"sync"
	"time"
)

// ManualClock is a Clock that only moves when Advance is called. Due
// callbacks run synchronously on the goroutine calling Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Duration
	f       func()
	stopped bool
}

// NewManualClock returns a ManualClock at offset zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// AfterFunc registers f to run once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d and fires due timers in order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due, rest []*manualTimer
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case t.at <= c.now:
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Waiting returns the number of timers that have not fired or stopped.
func (c *ManualClock) Waiting() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped {
		return false
	}
	for _, pending := range t.clock.timers {
		if pending == t {
			t.stopped = true
			return true
		}
	}
	return false
}
