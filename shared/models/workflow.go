package models

import "time"

// BookingWorkflowInput is the input for the booking step workflow
type BookingWorkflowInput struct {
	SessionID   string               `json:"sessionId"`
	ScenarioID  string               `json:"scenarioId"`
	Destination string               `json:"destination"`
	Steps       []string             `json:"steps"`
	StepDelays  []time.Duration      `json:"stepDelays"`
	Total       Money                `json:"total"`
	Template    ConfirmationTemplate `json:"template"`
}

// BookingWorkflowState is the queryable progress of the booking workflow
type BookingWorkflowState struct {
	SessionID    string               `json:"sessionId"`
	ActiveStep   int                  `json:"activeStep"`
	Completed    bool                 `json:"completed"`
	Confirmation *BookingConfirmation `json:"confirmation,omitempty"`
	LastUpdated  time.Time            `json:"lastUpdated"`
}

// Workflow and activity names shared by the api-server and the worker
const (
	BookingWorkflowName     = "BookingWorkflow"
	IssueConfirmationName   = "IssueConfirmation"
	DefaultBookingTaskQueue = "trip-booking-queue"
)

// Queries for workflow state
const (
	QueryGetState = "get_state"
)

// IssueConfirmationInput is the input of the confirmation activity.
// RequestID identifies one booking attempt; retries with the same ID get the
// same confirmation.
type IssueConfirmationInput struct {
	RequestID   string               `json:"requestId"`
	SessionID   string               `json:"sessionId"`
	Destination string               `json:"destination"`
	Total       Money                `json:"total"`
	Template    ConfirmationTemplate `json:"template"`
}
