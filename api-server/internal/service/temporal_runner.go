package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/tripflow"
	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

// TemporalRunner runs the booking sequence as a workflow on the temporal
// worker. Progress is read through the workflow's state query.
type TemporalRunner struct {
	client       client.Client
	taskQueue    string
	pollInterval time.Duration
	template     models.ConfirmationTemplate
	logger       *zap.Logger
}

func NewTemporalRunner(c client.Client, taskQueue string, pollInterval time.Duration, template models.ConfirmationTemplate, logger *zap.Logger) *TemporalRunner {
	if taskQueue == "" {
		taskQueue = models.DefaultBookingTaskQueue
	}
	if pollInterval <= 0 {
		pollInterval = 200 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemporalRunner{
		client:       c,
		taskQueue:    taskQueue,
		pollInterval: pollInterval,
		template:     template,
		logger:       logger,
	}
}

type workflowHandle struct {
	cancel  context.CancelFunc
	stopped atomic.Bool
}

func (h *workflowHandle) Stop() bool {
	if h.stopped.Swap(true) {
		return false
	}
	h.cancel()
	return true
}

func (r *TemporalRunner) Run(ctx context.Context, seq tripflow.Sequence, onStep func(int), onDone func(tripflow.Outcome)) tripflow.CancellableTimer {
	runCtx, cancel := context.WithCancel(ctx)
	h := &workflowHandle{cancel: cancel}
	go r.run(runCtx, h, seq, onStep, onDone)
	return h
}

func (r *TemporalRunner) input(seq tripflow.Sequence) models.BookingWorkflowInput {
	delays := make([]time.Duration, len(seq.Steps))
	for i := range seq.Steps {
		if seq.Delay != nil {
			delays[i] = seq.Delay(i)
		}
	}
	in := models.BookingWorkflowInput{
		SessionID:  seq.SessionID,
		Steps:      seq.Steps,
		StepDelays: delays,
		Template:   r.template,
	}
	if seq.Booking != nil {
		in.ScenarioID = seq.Booking.ScenarioID
		in.Destination = seq.Booking.Destination
		in.Total = seq.Booking.Total
	}
	return in
}

func (r *TemporalRunner) run(ctx context.Context, h *workflowHandle, seq tripflow.Sequence, onStep func(int), onDone func(tripflow.Outcome)) {
	defer h.cancel()

	workflowID := fmt.Sprintf("trip-booking-%s-%s", seq.SessionID, uuid.New().String()[:8])
	logger := r.logger.With(zap.String("session_id", seq.SessionID), zap.String("workflow_id", workflowID))

	opts := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: r.taskQueue,
	}
	run, err := r.client.ExecuteWorkflow(ctx, opts, models.BookingWorkflowName, r.input(seq))
	if err != nil {
		if ctx.Err() == nil {
			onDone(tripflow.Outcome{Err: fmt.Errorf("failed to start workflow: %w", err)})
		}
		return
	}
	logger.Info("booking workflow started", zap.String("run_id", run.GetRunID()))

	type result struct {
		state models.BookingWorkflowState
		err   error
	}
	done := make(chan result, 1)
	go func() {
		var state models.BookingWorkflowState
		err := run.Get(ctx, &state)
		done <- result{state: state, err: err}
	}()

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	last := 0
	// advance reports steps one at a time up to target
	advance := func(target int) {
		for last < target && last+1 < len(seq.Steps) && ctx.Err() == nil {
			last++
			onStep(last)
		}
	}

	for {
		select {
		case <-ctx.Done():
			r.cancelWorkflow(logger, workflowID, run.GetRunID())
			return
		case res := <-done:
			if ctx.Err() != nil {
				r.cancelWorkflow(logger, workflowID, run.GetRunID())
				return
			}
			if res.err != nil {
				onDone(tripflow.Outcome{Err: fmt.Errorf("booking workflow failed: %w", res.err)})
				return
			}
			advance(len(seq.Steps) - 1)
			onDone(tripflow.Outcome{Confirmation: res.state.Confirmation})
			return
		case <-ticker.C:
			resp, err := r.client.QueryWorkflow(ctx, workflowID, run.GetRunID(), models.QueryGetState)
			if err != nil {
				logger.Debug("state query failed", zap.Error(err))
				continue
			}
			var state models.BookingWorkflowState
			if err := resp.Get(&state); err != nil {
				logger.Debug("failed to decode workflow state", zap.Error(err))
				continue
			}
			advance(state.ActiveStep)
		}
	}
}

func (r *TemporalRunner) cancelWorkflow(logger *zap.Logger, workflowID, runID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.client.CancelWorkflow(ctx, workflowID, runID); err != nil {
		logger.Warn("failed to cancel booking workflow", zap.Error(err))
		return
	}
	logger.Info("booking workflow cancelled")
}
