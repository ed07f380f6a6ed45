package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ConfirmationEmail is the mock email shown after a booking completes
type ConfirmationEmail struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// BookingConfirmation is issued once every booking step has completed
type BookingConfirmation struct {
	Reference string            `json:"reference"`
	Email     ConfirmationEmail `json:"email"`
	Total     Money             `json:"total"`
	Currency  string            `json:"currency"`
	IssuedAt  time.Time         `json:"issuedAt"`
}

// ConfirmationTemplate holds the fixed parts of the confirmation email.
// SubjectFormat takes the destination and reference; BodyFormat takes the
// destination, reference and formatted total.
type ConfirmationTemplate struct {
	ReferencePrefix string `json:"referencePrefix"`
	To              string `json:"to"`
	From            string `json:"from"`
	SubjectFormat   string `json:"subjectFormat"`
	BodyFormat      string `json:"bodyFormat"`
	Currency        string `json:"currency"`
}

// Issue builds a confirmation for a trip to destination. References are the
// prefix followed by eight uppercase hex characters, e.g. "MC-3F9A1B2C".
func (t ConfirmationTemplate) Issue(destination string, total Money, now time.Time) BookingConfirmation {
	ref := t.ReferencePrefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return BookingConfirmation{
		Reference: ref,
		Email: ConfirmationEmail{
			To:      t.To,
			From:    t.From,
			Subject: fmt.Sprintf(t.SubjectFormat, destination, ref),
			Body:    fmt.Sprintf(t.BodyFormat, destination, ref, total.String()),
		},
		Total:    total,
		Currency: t.Currency,
		IssuedAt: now,
	}
}
