package tripflow

import (
	"context"
	"sync"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
)

// BookingRequest describes the trip being booked
type BookingRequest struct {
	SessionID   string
	ScenarioID  string
	Destination string
	Total       models.Money
}

// Sequence is a list of labelled steps paced by Delay
type Sequence struct {
	SessionID string
	Kind      SequenceKind
	Steps     []string
	Delay     DelaySource
	Booking   *BookingRequest
}

// Outcome is reported once when a sequence finishes. Confirmation is set
// only by runners that issue the booking themselves.
type Outcome struct {
	Confirmation *models.BookingConfirmation
	Err          error
}

// StepRunner drives a sequence. Step 0 is active as soon as Run is called;
// onStep(i) reports step i becoming active and onDone fires once after the
// last step. Callbacks must never run on the caller's goroutine before Run
// returns. The returned handle stops the sequence; after Stop no callback
// is delivered.
type StepRunner interface {
	Run(ctx context.Context, seq Sequence, onStep func(step int), onDone func(Outcome)) CancellableTimer
}

// LocalRunner paces sequences with in-process timers
type LocalRunner struct {
	sched Scheduler
}

func NewLocalRunner(sched Scheduler) *LocalRunner {
	if sched == nil {
		sched = RealScheduler()
	}
	return &LocalRunner{sched: sched}
}

func (r *LocalRunner) Run(ctx context.Context, seq Sequence, onStep func(int), onDone func(Outcome)) CancellableTimer {
	if seq.Delay == nil {
		seq.Delay = FixedDelay(0)
	}
	run := &localRun{
		sched:  r.sched,
		seq:    seq,
		onStep: onStep,
		onDone: onDone,
	}
	run.release = context.AfterFunc(ctx, func() { run.Stop() })
	run.schedule(0)
	return run
}

// localRun holds at most one pending timer: the one that ends the active step
type localRun struct {
	mu      sync.Mutex
	sched   Scheduler
	seq     Sequence
	onStep  func(int)
	onDone  func(Outcome)
	pending CancellableTimer
	stopped bool
	release func() bool
}

func (l *localRun) schedule(step int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.pending = l.sched.AfterFunc(l.seq.Delay(step), func() { l.fire(step) })
}

func (l *localRun) fire(step int) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.pending = nil
	next := step + 1
	finished := next >= len(l.seq.Steps)
	if finished {
		l.stopped = true
	}
	l.mu.Unlock()

	if finished {
		l.release()
		l.onDone(Outcome{})
		return
	}
	l.onStep(next)
	l.schedule(next)
}

// Stop cancels the pending timer. It reports whether the sequence was
// still running.
func (l *localRun) Stop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return false
	}
	l.stopped = true
	if l.pending != nil {
		l.pending.Stop()
		l.pending = nil
	}
	return true
}
