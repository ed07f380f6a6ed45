package tripflow

import (
	"math/rand"
	"time"
)

// CancellableTimer is a pending delayed callback. Stop reports whether it
// prevented the callback from running.
type CancellableTimer interface {
	Stop() bool
}

// Scheduler runs f after d. Tests replace it with a manual clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) CancellableTimer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) CancellableTimer {
	return time.AfterFunc(d, f)
}

// RealScheduler schedules on the runtime timer heap
func RealScheduler() Scheduler { return realScheduler{} }

// DelaySource returns the delay before the step after step starts
type DelaySource func(step int) time.Duration

// FixedDelay always waits d
func FixedDelay(d time.Duration) DelaySource {
	return func(int) time.Duration { return d }
}

// JitterDelay waits base plus a uniform random duration below jitter
func JitterDelay(base, jitter time.Duration) DelaySource {
	if jitter <= 0 {
		return FixedDelay(base)
	}
	return func(int) time.Duration {
		return base + time.Duration(rand.Int63n(int64(jitter)))
	}
}

// Delays configures the pacing of each sequence
type Delays struct {
	Thinking DelaySource
	Approval DelaySource
	Booking  DelaySource
}

// DefaultDelays paces sequences at 600-1000ms per step and waits 1.5s for
// the simulated approver
func DefaultDelays() Delays {
	return Delays{
		Thinking: JitterDelay(600*time.Millisecond, 400*time.Millisecond),
		Approval: FixedDelay(1500 * time.Millisecond),
		Booking:  JitterDelay(600*time.Millisecond, 400*time.Millisecond),
	}
}

func (d Delays) forKind(kind SequenceKind) DelaySource {
	var src DelaySource
	switch kind {
	case SequenceThinking:
		src = d.Thinking
	case SequenceApproval:
		src = d.Approval
	case SequenceBooking:
		src = d.Booking
	}
	if src == nil {
		return FixedDelay(0)
	}
	return src
}
