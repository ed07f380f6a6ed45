package activities

import (
	"context"
	"sync"
	"time"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

// Ledger remembers issued confirmations per request so a retried activity
// hands back the same reference
type Ledger struct {
	mu     sync.RWMutex
	issued map[string]models.BookingConfirmation
}

func NewLedger() *Ledger {
	return &Ledger{issued: make(map[string]models.BookingConfirmation)}
}

// issueOnce runs issue unless requestID already has a confirmation
func (l *Ledger) issueOnce(requestID string, issue func() models.BookingConfirmation) (models.BookingConfirmation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.issued[requestID]; ok {
		return c, false
	}
	c := issue()
	l.issued[requestID] = c
	return c, true
}

// Len returns the number of issued confirmations
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.issued)
}

// Activities holds the booking activities and their dependencies
type Activities struct {
	ledger *Ledger
	now    func() time.Time
}

func NewActivities(ledger *Ledger) *Activities {
	if ledger == nil {
		ledger = NewLedger()
	}
	return &Activities{ledger: ledger, now: time.Now}
}

// IssueConfirmation activity - generates the booking reference and the
// confirmation email
func (a *Activities) IssueConfirmation(ctx context.Context, input models.IssueConfirmationInput) (*models.BookingConfirmation, error) {
	logger := activity.GetLogger(ctx)

	if input.RequestID == "" {
		return nil, temporal.NewNonRetryableApplicationError("request id is required", "InvalidInput", nil)
	}
	if input.Template.ReferencePrefix == "" {
		return nil, temporal.NewNonRetryableApplicationError("confirmation template has no reference prefix", "InvalidTemplate", nil)
	}

	conf, fresh := a.ledger.issueOnce(input.RequestID, func() models.BookingConfirmation {
		return input.Template.Issue(input.Destination, input.Total, a.now())
	})
	if fresh {
		logger.Info("Booking confirmation issued", "sessionID", input.SessionID, "reference", conf.Reference)
	} else {
		logger.Info("Booking confirmation already issued", "sessionID", input.SessionID, "reference", conf.Reference)
	}
	return &conf, nil
}
