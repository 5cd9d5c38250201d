// Package scheduler runs deferred actions that belong to an owner with a
// lifetime. Closing the Scheduler cancels everything still pending.
package scheduler

import (
	"errors"
	"sync"
	"time"
)

// ErrSchedulerClosed is returned when scheduling on a closed Scheduler.
var ErrSchedulerClosed = errors.New("scheduler closed")

// Timer is a pending clock callback.
type Timer interface {
	Stop() bool
}

// Clock creates timers.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock is backed by time.AfterFunc.
var RealClock Clock = realClock{}

// Scheduler tracks deferred tasks for one owner.
type Scheduler struct {
	mu     sync.Mutex
	clock  Clock
	tasks  map[*Task]struct{}
	closed bool
}

// Task is a single deferred action.
type Task struct {
	s     *Scheduler
	timer Timer
	fn    func()
	done  bool
}

// New creates a Scheduler; a nil clock means RealClock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock
	}
	return &Scheduler{
		clock: clock,
		tasks: make(map[*Task]struct{}),
	}
}

// Schedule runs fn once after d unless the task is cancelled or the
// Scheduler is closed first.
func (s *Scheduler) Schedule(d time.Duration, fn func()) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSchedulerClosed
	}

	t := &Task{s: s, fn: fn}
	s.tasks[t] = struct{}{}
	t.timer = s.clock.AfterFunc(d, t.fire)
	return t, nil
}

func (t *Task) fire() {
	s := t.s
	s.mu.Lock()
	if t.done || s.closed {
		s.mu.Unlock()
		return
	}
	t.done = true
	delete(s.tasks, t)
	s.mu.Unlock()

	t.fn()
}

// Cancel stops the task. It reports whether the task was still pending.
func (t *Task) Cancel() bool {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	delete(s.tasks, t)
	t.timer.Stop()
	return true
}

// Pending returns the number of tasks that have neither fired nor been
// cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Close cancels all pending tasks. Further Schedule calls fail.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for t := range s.tasks {
		t.done = true
		t.timer.Stop()
	}
	s.tasks = map[*Task]struct{}{}
}
