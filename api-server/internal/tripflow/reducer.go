package tripflow

import (
	"strings"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
)

// SequenceKind identifies one of the timed pseudo-progress sequences
type SequenceKind string

const (
	SequenceThinking SequenceKind = "thinking"
	SequenceApproval SequenceKind = "approval"
	SequenceBooking  SequenceKind = "booking"
)

// Effect is work the controller performs after a transition
type Effect interface {
	effect()
}

// StartSequence schedules the timed steps of a sequence
type StartSequence struct{ Kind SequenceKind }

// CancelSequences stops every pending delayed transition
type CancelSequences struct{}

func (StartSequence) effect()   {}
func (CancelSequences) effect() {}

// Reduce applies ev to s. It has no side effects: the returned effects
// describe timers to start or cancel. A false accepted means the event is
// not valid in s and the returned state is s unchanged.
func Reduce(s State, ev Event) (State, []Effect, bool) {
	if _, ok := ev.(Reset); ok {
		return SearchState{}, []Effect{CancelSequences{}}, true
	}

	switch st := s.(type) {
	case SearchState:
		return reduceSearch(st, ev)
	case ThinkingState:
		return reduceThinking(st, ev)
	case ResultsState:
		return reduceResults(st, ev)
	case SummaryState:
		return reduceSummary(st, ev)
	case ApprovalState:
		return reduceApproval(st, ev)
	case BookingState:
		return reduceBooking(st, ev)
	case ConfirmedState:
		return reduceConfirmed(st, ev)
	case DisruptionState:
		return reduceDisruption(st, ev)
	case RebookedState:
		return reduceRebooked(st, ev)
	}
	return s, nil, false
}

func reject(s State) (State, []Effect, bool) {
	return s, nil, false
}

func reduceSearch(s SearchState, ev Event) (State, []Effect, bool) {
	e, ok := ev.(Submit)
	if !ok || strings.TrimSpace(e.Query) == "" || e.Scenario.ID == "" {
		return reject(s)
	}
	next := ThinkingState{Selection: newSelection(e.Query, e.Scenario)}
	return next, []Effect{StartSequence{Kind: SequenceThinking}}, true
}

func reduceThinking(s ThinkingState, ev Event) (State, []Effect, bool) {
	switch e := ev.(type) {
	case ThinkingStep:
		// steps only ever move forward by one
		if e.Index != s.Step+1 || e.Index >= len(s.Scenario.ThinkingSteps) {
			return reject(s)
		}
		s.Step = e.Index
		return s, nil, true
	case ThinkingDone:
		return ResultsState{Selection: s.Selection}, nil, true
	}
	return reject(s)
}

func reduceResults(s ResultsState, ev Event) (State, []Effect, bool) {
	sc := s.Scenario
	switch e := ev.(type) {
	case SelectFlight:
		if sc.IsMultiCity {
			return reject(s)
		}
		f, ok := sc.FindFlight(e.FlightID)
		if !ok {
			return reject(s)
		}
		s.SelectedFlight = &f
		return s, nil, true
	case SelectHotel:
		if sc.IsMultiCity {
			return reject(s)
		}
		h, ok := sc.FindHotel(e.HotelID)
		if !ok {
			return reject(s)
		}
		s.SelectedHotel = &h
		return s, nil, true
	case SelectLegFlight:
		if !sc.IsMultiCity {
			return reject(s)
		}
		idx, leg, ok := sc.FindLeg(e.LegID)
		if !ok {
			return reject(s)
		}
		f, ok := leg.FindFlight(e.FlightID)
		if !ok {
			return reject(s)
		}
		s.Selection = s.withLeg(leg.ID, f)
		s.ActiveLeg = s.nextUnselectedLeg(idx)
		return s, nil, true
	case FocusLeg:
		if !sc.IsMultiCity || e.Index < 0 || e.Index >= len(sc.Legs) {
			return reject(s)
		}
		s.ActiveLeg = e.Index
		return s, nil, true
	case Continue:
		if !s.Complete() {
			return reject(s)
		}
		return SummaryState{Selection: s.Selection}, nil, true
	}
	return reject(s)
}

func reduceSummary(s SummaryState, ev Event) (State, []Effect, bool) {
	switch ev.(type) {
	case Back:
		return ResultsState{Selection: s.Selection}, nil, true
	case RequestApproval:
		return ApprovalState{Selection: s.Selection}, []Effect{StartSequence{Kind: SequenceApproval}}, true
	}
	return reject(s)
}

func reduceApproval(s ApprovalState, ev Event) (State, []Effect, bool) {
	switch e := ev.(type) {
	case ApprovalReady:
		if s.Ready {
			return reject(s)
		}
		s.Ready = true
		return s, nil, true
	case Approve:
		if !s.Ready {
			return reject(s)
		}
		return BookingState{Selection: s.Selection, Steps: e.Steps}, []Effect{StartSequence{Kind: SequenceBooking}}, true
	}
	return reject(s)
}

func reduceBooking(s BookingState, ev Event) (State, []Effect, bool) {
	switch e := ev.(type) {
	case BookingStep:
		if e.Index != s.Step+1 || e.Index >= s.Steps {
			return reject(s)
		}
		s.Step = e.Index
		return s, nil, true
	case BookingDone:
		if e.Confirmation.Reference == "" {
			return reject(s)
		}
		return ConfirmedState{Selection: s.Selection, Confirmation: e.Confirmation}, nil, true
	}
	return reject(s)
}

func reduceConfirmed(s ConfirmedState, ev Event) (State, []Effect, bool) {
	e, ok := ev.(TriggerDisruption)
	if !ok || len(e.Disruption.Alternatives) == 0 {
		return reject(s)
	}
	return DisruptionState{
		Selection:    s.Selection,
		Confirmation: s.Confirmation,
		Rebooked:     s.Rebooked,
		Disruption:   e.Disruption,
	}, nil, true
}

func reduceDisruption(s DisruptionState, ev Event) (State, []Effect, bool) {
	switch e := ev.(type) {
	case SelectAlternative:
		alt, ok := findAlternative(s.Disruption, e.AlternativeID)
		if !ok {
			return reject(s)
		}
		s.Alternative = &alt
		return s, nil, true
	case Rebook:
		if s.Alternative == nil {
			return reject(s)
		}
		return RebookedState{
			Selection:    s.Selection,
			Confirmation: s.Confirmation,
			Disruption:   s.Disruption,
			Alternative:  *s.Alternative,
		}, nil, true
	}
	return reject(s)
}

func reduceRebooked(s RebookedState, ev Event) (State, []Effect, bool) {
	if _, ok := ev.(Dismiss); !ok {
		return reject(s)
	}
	alt := s.Alternative
	return ConfirmedState{
		Selection:    s.Selection,
		Confirmation: s.Confirmation,
		Rebooked:     &alt,
	}, nil, true
}

func findAlternative(d models.DisruptionScenario, id string) (models.FlightOption, bool) {
	for _, alt := range d.Alternatives {
		if alt.ID == id {
			return alt, true
		}
	}
	return models.FlightOption{}, false
}
