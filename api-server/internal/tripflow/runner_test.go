package tripflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	steps []int
	done  int
}

func (r *recorder) onStep(i int) {
	r.mu.Lock()
	r.steps = append(r.steps, i)
	r.mu.Unlock()
}

func (r *recorder) onDone(Outcome) {
	r.mu.Lock()
	r.done++
	r.mu.Unlock()
}

func (r *recorder) snapshot() ([]int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.steps...), r.done
}

func TestLocalRunner_StepsInOrder(t *testing.T) {
	sched := newManualScheduler()
	runner := NewLocalRunner(sched)
	rec := &recorder{}

	seq := Sequence{Kind: SequenceBooking, Steps: []string{"a", "b", "c"}, Delay: FixedDelay(100 * time.Millisecond)}
	runner.Run(context.Background(), seq, rec.onStep, rec.onDone)

	steps, done := rec.snapshot()
	assert.Empty(t, steps, "no callback before the first delay")
	assert.Equal(t, 0, done)

	sched.Advance(100 * time.Millisecond)
	steps, _ = rec.snapshot()
	assert.Equal(t, []int{1}, steps)

	sched.Advance(50 * time.Millisecond)
	steps, _ = rec.snapshot()
	assert.Equal(t, []int{1}, steps)

	sched.Advance(time.Second)
	steps, done = rec.snapshot()
	assert.Equal(t, []int{1, 2}, steps)
	assert.Equal(t, 1, done)
	assert.Equal(t, 0, sched.Pending())
}

func TestLocalRunner_UsesDelayPerStep(t *testing.T) {
	sched := newManualScheduler()
	runner := NewLocalRunner(sched)
	rec := &recorder{}

	delays := []time.Duration{10 * time.Millisecond, 30 * time.Millisecond}
	seq := Sequence{Steps: []string{"a", "b"}, Delay: func(step int) time.Duration { return delays[step] }}
	runner.Run(context.Background(), seq, rec.onStep, rec.onDone)

	sched.Advance(10 * time.Millisecond)
	steps, done := rec.snapshot()
	assert.Equal(t, []int{1}, steps)
	assert.Equal(t, 0, done)

	sched.Advance(29 * time.Millisecond)
	_, done = rec.snapshot()
	assert.Equal(t, 0, done)

	sched.Advance(time.Millisecond)
	_, done = rec.snapshot()
	assert.Equal(t, 1, done)
}

func TestLocalRunner_EmptySequenceCompletes(t *testing.T) {
	sched := newManualScheduler()
	rec := &recorder{}
	NewLocalRunner(sched).Run(context.Background(), Sequence{Delay: FixedDelay(0)}, rec.onStep, rec.onDone)

	sched.Flush()
	steps, done := rec.snapshot()
	assert.Empty(t, steps)
	assert.Equal(t, 1, done)
}

func TestLocalRunner_StopPreventsCallbacks(t *testing.T) {
	sched := newManualScheduler()
	rec := &recorder{}
	h := NewLocalRunner(sched).Run(context.Background(), Sequence{Steps: []string{"a", "b", "c"}, Delay: FixedDelay(time.Second)}, rec.onStep, rec.onDone)

	sched.Advance(time.Second)
	require.True(t, h.Stop())
	assert.False(t, h.Stop(), "second stop is a no-op")
	assert.Equal(t, 0, sched.Pending())

	sched.Flush()
	steps, done := rec.snapshot()
	assert.Equal(t, []int{1}, steps)
	assert.Equal(t, 0, done)
}

func TestLocalRunner_ContextCancelStopsTimers(t *testing.T) {
	sched := newManualScheduler()
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	NewLocalRunner(sched).Run(ctx, Sequence{Steps: []string{"a", "b"}, Delay: FixedDelay(time.Second)}, rec.onStep, rec.onDone)

	cancel()
	assert.Eventually(t, func() bool { return sched.Pending() == 0 }, time.Second, 5*time.Millisecond)

	sched.Flush()
	steps, done := rec.snapshot()
	assert.Empty(t, steps)
	assert.Equal(t, 0, done)
}

func TestLocalRunner_RealScheduler(t *testing.T) {
	rec := &recorder{}
	NewLocalRunner(nil).Run(context.Background(), Sequence{Steps: []string{"a", "b", "c"}, Delay: FixedDelay(time.Millisecond)}, rec.onStep, rec.onDone)

	assert.Eventually(t, func() bool {
		_, done := rec.snapshot()
		return done == 1
	}, time.Second, 5*time.Millisecond)
	steps, _ := rec.snapshot()
	assert.Equal(t, []int{1, 2}, steps)
}

func TestJitterDelay(t *testing.T) {
	src := JitterDelay(600*time.Millisecond, 400*time.Millisecond)
	for i := 0; i < 100; i++ {
		d := src(i)
		assert.GreaterOrEqual(t, d, 600*time.Millisecond)
		assert.Less(t, d, time.Second)
	}
	assert.Equal(t, 250*time.Millisecond, JitterDelay(250*time.Millisecond, 0)(3))
	assert.Equal(t, 1500*time.Millisecond, DefaultDelays().Approval(0))
}
