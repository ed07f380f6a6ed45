package tripflow

import (
	"context"
	"sync"
	"time"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"go.uber.org/zap"
)

// Resolver maps a free-text query to a scenario
type Resolver interface {
	Resolve(query string) models.TripScenario
}

// Options configure a Controller
type Options struct {
	SessionID    string
	Resolver     Resolver
	Disruption   models.DisruptionScenario
	Confirmation models.ConfirmationTemplate
	Labels       StepLabels
	Delays       Delays
	// Runner paces thinking and approval, and booking unless BookingRunner is set
	Runner        StepRunner
	BookingRunner StepRunner
	// OnChange is called with every accepted transition while the controller
	// lock is held. It must not block or call back into the controller.
	OnChange func(Snapshot)
	Logger   *zap.Logger
	Now      func() time.Time
}

// Controller owns the booking flow of one session. Every transition goes
// through Reduce; timer callbacks carry the epoch they were scheduled in and
// are dropped once a reset or Close has moved the epoch on.
type Controller struct {
	mu      sync.Mutex
	opts    Options
	logger  *zap.Logger
	state   State
	epoch   uint64
	version uint64
	handles []CancellableTimer
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
}

// NewController creates a controller in the search state. Cancelling parent
// stops every pending sequence.
func NewController(parent context.Context, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Runner == nil {
		opts.Runner = NewLocalRunner(nil)
	}
	if opts.BookingRunner == nil {
		opts.BookingRunner = opts.Runner
	}
	defaults := DefaultDelays()
	if opts.Delays.Thinking == nil {
		opts.Delays.Thinking = defaults.Thinking
	}
	if opts.Delays.Approval == nil {
		opts.Delays.Approval = defaults.Approval
	}
	if opts.Delays.Booking == nil {
		opts.Delays.Booking = defaults.Booking
	}
	ctx, cancel := context.WithCancel(parent)
	return &Controller{
		opts:   opts,
		logger: opts.Logger.With(zap.String("session_id", opts.SessionID)),
		state:  SearchState{},
		ctx:    ctx,
		cancel: cancel,
	}
}

// ID returns the session ID
func (c *Controller) ID() string {
	return c.opts.SessionID
}

// Snapshot renders the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns the current state variant
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies a client event. Events that are not valid in the current
// state leave it unchanged and return accepted=false.
func (c *Controller) Dispatch(ev Event) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.snapshotLocked(), false
	}
	return c.applyLocked(c.enrich(ev))
}

// Close cancels every pending sequence. No callback is applied afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelSequencesLocked()
	c.cancel()
	c.logger.Debug("controller closed")
}

func (c *Controller) enrich(ev Event) Event {
	switch e := ev.(type) {
	case Submit:
		if e.Scenario.ID == "" && c.opts.Resolver != nil {
			e.Scenario = c.opts.Resolver.Resolve(e.Query)
		}
		return e
	case Approve:
		e.Steps = len(c.opts.Labels.Booking)
		return e
	case TriggerDisruption:
		if len(e.Disruption.Alternatives) == 0 {
			e.Disruption = c.opts.Disruption
		}
		return e
	}
	return ev
}

func (c *Controller) applyLocked(ev Event) (Snapshot, bool) {
	from := c.state.Name()
	next, effects, ok := Reduce(c.state, ev)
	if !ok {
		c.logger.Debug("event rejected",
			zap.String("state", string(from)),
			zap.String("event", string(ev.Type())),
		)
		return c.snapshotLocked(), false
	}

	c.state = next
	c.version++
	for _, eff := range effects {
		switch e := eff.(type) {
		case CancelSequences:
			c.cancelSequencesLocked()
		case StartSequence:
			c.startSequenceLocked(e.Kind)
		}
	}

	if from != next.Name() {
		c.logger.Info("state changed",
			zap.String("from", string(from)),
			zap.String("to", string(next.Name())),
			zap.String("event", string(ev.Type())),
		)
	}

	snap := c.snapshotLocked()
	if c.opts.OnChange != nil {
		c.opts.OnChange(snap)
	}
	return snap, true
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := BuildSnapshot(c.state, c.opts.Labels)
	snap.SessionID = c.opts.SessionID
	snap.Version = c.version
	return snap
}

func (c *Controller) cancelSequencesLocked() {
	c.epoch++
	for _, h := range c.handles {
		h.Stop()
	}
	c.handles = nil
}

func (c *Controller) startSequenceLocked(kind SequenceKind) {
	sel, _ := selectionOf(c.state)
	seq := Sequence{
		SessionID: c.opts.SessionID,
		Kind:      kind,
		Delay:     c.opts.Delays.forKind(kind),
	}

	runner := c.opts.Runner
	switch kind {
	case SequenceThinking:
		seq.Steps = sel.Scenario.ThinkingSteps
	case SequenceApproval:
		seq.Steps = c.opts.Labels.Approval
	case SequenceBooking:
		seq.Steps = c.opts.Labels.Booking
		seq.Booking = &BookingRequest{
			SessionID:   c.opts.SessionID,
			ScenarioID:  sel.Scenario.ID,
			Destination: sel.Scenario.ParsedIntent.DestinationName,
			Total:       ComputeTotals(sel).Total,
		}
		runner = c.opts.BookingRunner
	}

	epoch := c.epoch
	h := runner.Run(c.ctx, seq,
		func(step int) { c.deliver(epoch, stepEvent(kind, step)) },
		func(out Outcome) { c.finish(epoch, kind, out) },
	)
	c.handles = append(c.handles, h)
}

// stepEvent returns nil for sequences whose steps are not tracked in state
func stepEvent(kind SequenceKind, step int) Event {
	switch kind {
	case SequenceThinking:
		return ThinkingStep{Index: step}
	case SequenceBooking:
		return BookingStep{Index: step}
	}
	return nil
}

// deliver applies a timer-driven event if it belongs to the current epoch
func (c *Controller) deliver(epoch uint64, ev Event) {
	if ev == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || epoch != c.epoch {
		c.logger.Debug("stale sequence event dropped", zap.String("event", string(ev.Type())))
		return
	}
	c.applyLocked(ev)
}

func (c *Controller) finish(epoch uint64, kind SequenceKind, out Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || epoch != c.epoch {
		c.logger.Debug("stale sequence completion dropped", zap.String("kind", string(kind)))
		return
	}

	var ev Event
	switch kind {
	case SequenceThinking:
		ev = ThinkingDone{}
	case SequenceApproval:
		ev = ApprovalReady{}
	case SequenceBooking:
		conf := out.Confirmation
		if out.Err != nil {
			c.logger.Warn("booking runner failed, issuing confirmation locally", zap.Error(out.Err))
			conf = nil
		}
		if conf == nil {
			sel, _ := selectionOf(c.state)
			issued := c.opts.Confirmation.Issue(
				sel.Scenario.ParsedIntent.DestinationName,
				ComputeTotals(sel).Total,
				c.opts.Now(),
			)
			conf = &issued
		}
		ev = BookingDone{Confirmation: *conf}
	default:
		return
	}
	c.applyLocked(ev)
}
