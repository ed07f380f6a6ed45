package workflows

import (
	"errors"
	"time"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// ConfirmationTimeout bounds a single IssueConfirmation attempt
	ConfirmationTimeout = 10 * time.Second
	// MaxConfirmationAttempts is the retry budget for IssueConfirmation
	MaxConfirmationAttempts = 3
)

// BookingWorkflow paces the booking steps with durable timers and then
// issues the confirmation. Progress is exposed through the get_state query.
func BookingWorkflow(ctx workflow.Context, input models.BookingWorkflowInput) (*models.BookingWorkflowState, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Booking workflow started", "sessionId", input.SessionID, "steps", len(input.Steps))

	state := models.BookingWorkflowState{
		SessionID:   input.SessionID,
		LastUpdated: workflow.Now(ctx),
	}

	err := workflow.SetQueryHandler(ctx, models.QueryGetState, func() (models.BookingWorkflowState, error) {
		return state, nil
	})
	if err != nil {
		return nil, err
	}

	if len(input.StepDelays) != 0 && len(input.StepDelays) != len(input.Steps) {
		return nil, temporal.NewNonRetryableApplicationError("step delays do not match steps", "InvalidInput", errors.New("length mismatch"))
	}

	for i, label := range input.Steps {
		state.ActiveStep = i
		state.LastUpdated = workflow.Now(ctx)
		logger.Info("Booking step active", "step", i, "label", label)

		if i < len(input.StepDelays) && input.StepDelays[i] > 0 {
			if err := workflow.Sleep(ctx, input.StepDelays[i]); err != nil {
				// cancelled by a reset or the session going away
				logger.Info("Booking workflow cancelled", "step", i)
				return nil, err
			}
		}
	}

	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: ConfirmationTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    MaxConfirmationAttempts,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	var confirmation models.BookingConfirmation
	err = workflow.ExecuteActivity(ctx, models.IssueConfirmationName, models.IssueConfirmationInput{
		RequestID:   workflow.GetInfo(ctx).WorkflowExecution.ID,
		SessionID:   input.SessionID,
		Destination: input.Destination,
		Total:       input.Total,
		Template:    input.Template,
	}).Get(ctx, &confirmation)
	if err != nil {
		logger.Error("Failed to issue confirmation", "error", err)
		return nil, err
	}

	state.Completed = true
	state.Confirmation = &confirmation
	state.LastUpdated = workflow.Now(ctx)
	logger.Info("Booking workflow completed", "reference", confirmation.Reference)

	return &state, nil
}
