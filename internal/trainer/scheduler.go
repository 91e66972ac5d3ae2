package trainer

import (
	"sync"
	"time"
)

// Scheduler runs a function once after a delay. The returned stop function
// cancels it and reports whether it was still pending.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// TimerScheduler schedules on the runtime timer.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// ManualScheduler holds scheduled functions until Fire is called. It lets tests
// control exactly when a paced advance lands.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualTask
}

type manualTask struct {
	f       func()
	stopped bool
	fired   bool
}

func (s *ManualScheduler) AfterFunc(_ time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &manualTask{f: f}
	s.pending = append(s.pending, task)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if task.fired || task.stopped {
			return false
		}
		task.stopped = true
		return true
	}
}

// Pending returns the number of scheduled functions not yet fired.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Fire runs every scheduled function, including stopped ones when force is
// set, which simulates a timer that raced its cancellation.
func (s *ManualScheduler) Fire(force bool) int {
	s.mu.Lock()
	tasks := s.pending
	s.pending = nil
	s.mu.Unlock()

	ran := 0
	for _, task := range tasks {
		s.mu.Lock()
		skip := task.stopped && !force
		task.fired = true
		s.mu.Unlock()
		if skip {
			continue
		}
		task.f()
		ran++
	}
	return ran
}
