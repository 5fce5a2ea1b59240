// Package repeating repeats an action a bounded number of times
package repeating

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// State is the scheduler lifecycle state
type State int32

// Scheduler states
const (
	Idle State = iota
	Running
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Scheduler runs an action every interval for at most MaxIterations ticks.
// Cancellation is cooperative: a running tick always finishes.
type Scheduler struct {
	Interval      time.Duration
	MaxIterations int

	cancelled atomic.Bool
	state     atomic.Int32
	ticks     atomic.Int64
	wake      chan struct{}
	wakeOnce  sync.Once
}

// NewScheduler creates an idle Scheduler
func NewScheduler(interval time.Duration, maxIterations int) *Scheduler {
	return &Scheduler{
		Interval:      interval,
		MaxIterations: maxIterations,
		wake:          make(chan struct{}),
	}
}

// Cancel asks the loop to stop. It never starts another tick or sleep afterwards.
func (s *Scheduler) Cancel() {
	s.cancelled.Store(true)
	s.wakeOnce.Do(func() { close(s.wake) })
}

// Cancelled reports whether Cancel has been called
func (s *Scheduler) Cancelled() bool {
	return s.cancelled.Load()
}

// State returns the current state
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Ticks returns the number of ticks performed so far
func (s *Scheduler) Ticks() int {
	return int(s.ticks.Load())
}

// Run calls action until MaxIterations ticks are done or the scheduler is cancelled.
// A done ctx is treated as cancellation. Run may only be called once.
func (s *Scheduler) Run(ctx context.Context, action func()) State {
	if !s.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return s.State()
	}
	stop := context.AfterFunc(ctx, s.Cancel)
	defer stop()

	for i := 0; i < s.MaxIterations; i++ {
		if s.Cancelled() {
			return s.finish(Cancelled)
		}
		action()
		s.ticks.Add(1)
		if i == s.MaxIterations-1 {
			break
		}
		if s.Cancelled() {
			return s.finish(Cancelled)
		}
		s.sleep()
	}
	return s.finish(Completed)
}

func (s *Scheduler) sleep() {
	timer := time.NewTimer(s.Interval)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.wake:
	}
}

func (s *Scheduler) finish(state State) State {
	s.state.Store(int32(state))
	return state
}
