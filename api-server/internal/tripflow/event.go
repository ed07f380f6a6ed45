package tripflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
)

// EventType is the wire name of an event
type EventType string

const (
	EventSubmit            EventType = "submit"
	EventThinkingStep      EventType = "thinking_step"
	EventThinkingDone      EventType = "thinking_done"
	EventSelectFlight      EventType = "select_flight"
	EventSelectHotel       EventType = "select_hotel"
	EventSelectLegFlight   EventType = "select_leg_flight"
	EventFocusLeg          EventType = "focus_leg"
	EventContinue          EventType = "continue"
	EventBack              EventType = "back"
	EventRequestApproval   EventType = "request_approval"
	EventApprovalReady     EventType = "approval_ready"
	EventApprove           EventType = "approve"
	EventBookingStep       EventType = "booking_step"
	EventBookingDone       EventType = "booking_done"
	EventTriggerDisruption EventType = "trigger_disruption"
	EventSelectAlternative EventType = "select_alternative"
	EventRebook            EventType = "rebook"
	EventDismiss           EventType = "dismiss"
	EventReset             EventType = "reset"
)

// Event is an input to Reduce
type Event interface {
	Type() EventType
}

// Submit starts a search. Scenario is filled in by the controller before
// the event reaches the reducer.
type Submit struct {
	Query    string
	Scenario models.TripScenario
}

type ThinkingStep struct{ Index int }
type ThinkingDone struct{}
type SelectFlight struct{ FlightID string }
type SelectHotel struct{ HotelID string }
type SelectLegFlight struct{ LegID, FlightID string }
type FocusLeg struct{ Index int }
type Continue struct{}
type Back struct{}
type RequestApproval struct{}
type ApprovalReady struct{}

// Approve carries the number of booking steps, set by the controller
type Approve struct{ Steps int }

type BookingStep struct{ Index int }
type BookingDone struct{ Confirmation models.BookingConfirmation }

// TriggerDisruption carries the fixed disruption narrative, set by the controller
type TriggerDisruption struct{ Disruption models.DisruptionScenario }

type SelectAlternative struct{ AlternativeID string }
type Rebook struct{}
type Dismiss struct{}
type Reset struct{}

func (Submit) Type() EventType            { return EventSubmit }
func (ThinkingStep) Type() EventType      { return EventThinkingStep }
func (ThinkingDone) Type() EventType      { return EventThinkingDone }
func (SelectFlight) Type() EventType      { return EventSelectFlight }
func (SelectHotel) Type() EventType       { return EventSelectHotel }
func (SelectLegFlight) Type() EventType   { return EventSelectLegFlight }
func (FocusLeg) Type() EventType          { return EventFocusLeg }
func (Continue) Type() EventType          { return EventContinue }
func (Back) Type() EventType              { return EventBack }
func (RequestApproval) Type() EventType   { return EventRequestApproval }
func (ApprovalReady) Type() EventType     { return EventApprovalReady }
func (Approve) Type() EventType           { return EventApprove }
func (BookingStep) Type() EventType       { return EventBookingStep }
func (BookingDone) Type() EventType       { return EventBookingDone }
func (TriggerDisruption) Type() EventType { return EventTriggerDisruption }
func (SelectAlternative) Type() EventType { return EventSelectAlternative }
func (Rebook) Type() EventType            { return EventRebook }
func (Dismiss) Type() EventType           { return EventDismiss }
func (Reset) Type() EventType             { return EventReset }

// EventRequest is the JSON body clients post to drive a session
type EventRequest struct {
	Type          EventType `json:"type"`
	Query         string    `json:"query,omitempty"`
	FlightID      string    `json:"flightId,omitempty"`
	LegID         string    `json:"legId,omitempty"`
	HotelID       string    `json:"hotelId,omitempty"`
	AlternativeID string    `json:"alternativeId,omitempty"`
	LegIndex      int       `json:"legIndex,omitempty"`
}

var (
	ErrUnknownEvent  = errors.New("unknown event type")
	ErrMissingField  = errors.New("missing required field")
	ErrInternalEvent = errors.New("event is raised by timers only")
)

// ParseEvent converts a client request into an Event. Timer-driven events
// are not accepted from clients.
func ParseEvent(req EventRequest) (Event, error) {
	switch req.Type {
	case EventSubmit:
		if strings.TrimSpace(req.Query) == "" {
			return nil, fmt.Errorf("%w: query", ErrMissingField)
		}
		return Submit{Query: req.Query}, nil
	case EventSelectFlight:
		if req.FlightID == "" {
			return nil, fmt.Errorf("%w: flightId", ErrMissingField)
		}
		return SelectFlight{FlightID: req.FlightID}, nil
	case EventSelectHotel:
		if req.HotelID == "" {
			return nil, fmt.Errorf("%w: hotelId", ErrMissingField)
		}
		return SelectHotel{HotelID: req.HotelID}, nil
	case EventSelectLegFlight:
		if req.LegID == "" || req.FlightID == "" {
			return nil, fmt.Errorf("%w: legId and flightId", ErrMissingField)
		}
		return SelectLegFlight{LegID: req.LegID, FlightID: req.FlightID}, nil
	case EventFocusLeg:
		return FocusLeg{Index: req.LegIndex}, nil
	case EventContinue:
		return Continue{}, nil
	case EventBack:
		return Back{}, nil
	case EventRequestApproval:
		return RequestApproval{}, nil
	case EventApprove:
		return Approve{}, nil
	case EventTriggerDisruption:
		return TriggerDisruption{}, nil
	case EventSelectAlternative:
		if req.AlternativeID == "" {
			return nil, fmt.Errorf("%w: alternativeId", ErrMissingField)
		}
		return SelectAlternative{AlternativeID: req.AlternativeID}, nil
	case EventRebook:
		return Rebook{}, nil
	case EventDismiss:
		return Dismiss{}, nil
	case EventReset:
		return Reset{}, nil
	case EventThinkingStep, EventThinkingDone, EventApprovalReady, EventBookingStep, EventBookingDone:
		return nil, fmt.Errorf("%w: %s", ErrInternalEvent, req.Type)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, req.Type)
}
