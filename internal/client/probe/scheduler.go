package probe

import (
	"sync"
	"time"
)

// RetryScheduler owns at most one pending retry of an operation that failed
// against a cold backend. Scheduling while a retry is pending cancels and
// replaces it, so retries are debounced rather than queued.
type RetryScheduler struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewRetryScheduler(delay time.Duration) *RetryScheduler {
	return &RetryScheduler{delay: delay}
}

// Schedule arranges for fn to run once after the debounce delay, cancelling
// any previously scheduled retry first.
func (s *RetryScheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, fn)
}

// Cancel drops a pending retry, if any.
func (s *RetryScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
