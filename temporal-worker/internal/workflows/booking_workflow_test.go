package workflows

import (
	"testing"
	"time"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"github.com/ibenstewart/3-hr-demo-sub000/temporal-worker/internal/activities"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

type BookingWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
	env    *testsuite.TestWorkflowEnvironment
	ledger *activities.Ledger
}

func (s *BookingWorkflowTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.ledger = activities.NewLedger()
	acts := activities.NewActivities(s.ledger)
	s.env.RegisterActivityWithOptions(acts.IssueConfirmation, activity.RegisterOptions{Name: models.IssueConfirmationName})
}

func (s *BookingWorkflowTestSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func TestBookingWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(BookingWorkflowTestSuite))
}

func bookingInput() models.BookingWorkflowInput {
	return models.BookingWorkflowInput{
		SessionID:   "session-1",
		ScenarioID:  "berlin-client-visit",
		Destination: "Berlin",
		Steps:       []string{"Holding seats", "Confirming hotel", "Applying policy", "Charging card", "Sending confirmation"},
		StepDelays:  []time.Duration{time.Second, time.Second, time.Second, time.Second, time.Second},
		Total:       models.GBP(360),
		Template: models.ConfirmationTemplate{
			ReferencePrefix: "MC",
			To:              "alex.morgan@meridian-consulting.com",
			From:            "trips@meridian-consulting.com",
			SubjectFormat:   "Your trip to %s is booked (%s)",
			BodyFormat:      "Trip to %s, reference %s, total %s",
			Currency:        "GBP",
		},
	}
}

func (s *BookingWorkflowTestSuite) TestWorkflow_Constants() {
	s.Equal(10*time.Second, ConfirmationTimeout)
	s.Equal(3, MaxConfirmationAttempts)
}

func (s *BookingWorkflowTestSuite) TestWorkflow_CompletesWithConfirmation() {
	s.env.ExecuteWorkflow(BookingWorkflow, bookingInput())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var state models.BookingWorkflowState
	s.NoError(s.env.GetWorkflowResult(&state))
	s.True(state.Completed)
	s.Equal("session-1", state.SessionID)
	s.Equal(4, state.ActiveStep)
	s.Require().NotNil(state.Confirmation)
	s.Regexp(`^MC-[A-Z0-9]{8}$`, state.Confirmation.Reference)
	s.Equal("alex.morgan@meridian-consulting.com", state.Confirmation.Email.To)
	s.Equal(models.GBP(360), state.Confirmation.Total)
	s.Equal(1, s.ledger.Len())
}

func (s *BookingWorkflowTestSuite) TestWorkflow_StateQueryTracksSteps() {
	var seen []int
	for _, at := range []time.Duration{500 * time.Millisecond, 1500 * time.Millisecond, 3500 * time.Millisecond} {
		s.env.RegisterDelayedCallback(func() {
			val, err := s.env.QueryWorkflow(models.QueryGetState)
			s.Require().NoError(err)
			var state models.BookingWorkflowState
			s.Require().NoError(val.Get(&state))
			s.False(state.Completed)
			s.Nil(state.Confirmation)
			seen = append(seen, state.ActiveStep)
		}, at)
	}

	s.env.ExecuteWorkflow(BookingWorkflow, bookingInput())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	s.Equal([]int{0, 1, 3}, seen)
}

func (s *BookingWorkflowTestSuite) TestWorkflow_CancelledMidSequence() {
	s.env.RegisterDelayedCallback(func() {
		s.env.CancelWorkflow()
	}, 1500*time.Millisecond)

	s.env.ExecuteWorkflow(BookingWorkflow, bookingInput())

	s.True(s.env.IsWorkflowCompleted())
	err := s.env.GetWorkflowError()
	s.Require().Error(err)
	s.True(temporal.IsCanceledError(err))
	s.Equal(0, s.ledger.Len(), "no confirmation after cancellation")
}

func (s *BookingWorkflowTestSuite) TestWorkflow_ConfirmationFailure() {
	s.env.OnActivity(models.IssueConfirmationName, mock.Anything, mock.Anything).
		Return(nil, temporal.NewNonRetryableApplicationError("mail relay down", "ConfirmationFailed", nil))

	s.env.ExecuteWorkflow(BookingWorkflow, bookingInput())

	s.True(s.env.IsWorkflowCompleted())
	err := s.env.GetWorkflowError()
	s.Require().Error(err)
	s.Contains(err.Error(), "mail relay down")
}

func (s *BookingWorkflowTestSuite) TestWorkflow_ZeroDelays() {
	input := bookingInput()
	input.StepDelays = nil

	s.env.ExecuteWorkflow(BookingWorkflow, input)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *BookingWorkflowTestSuite) TestWorkflow_MismatchedDelays() {
	input := bookingInput()
	input.StepDelays = input.StepDelays[:2]

	s.env.ExecuteWorkflow(BookingWorkflow, input)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
	s.Equal(0, s.ledger.Len())
}
