package tripflow

import (
	"sync"
	"time"
)

// manualScheduler fires timers only when the test advances its clock
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	s       *manualScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{}
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) CancellableTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Pending counts timers that are neither fired nor stopped
func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in order.
// Timers scheduled by callbacks fire too if they fall inside the window.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()
	for {
		s.mu.Lock()
		var next *manualTimer
		for _, t := range s.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		next.fired = true
		s.now = next.at
		s.mu.Unlock()
		next.f()
	}
}

// Flush fires every pending timer, including ones scheduled while flushing
func (s *manualScheduler) Flush() {
	for i := 0; i < 1000 && s.Pending() > 0; i++ {
		s.Advance(time.Hour)
	}
}
