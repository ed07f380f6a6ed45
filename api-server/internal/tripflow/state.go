package tripflow

import "github.com/ibenstewart/3-hr-demo-sub000/shared/models"

// AppState names a step of the booking flow
type AppState string

const (
	StateSearch     AppState = "search"
	StateThinking   AppState = "thinking"
	StateResults    AppState = "results"
	StateSummary    AppState = "summary"
	StateApproval   AppState = "approval"
	StateBooking    AppState = "booking"
	StateConfirmed  AppState = "confirmed"
	StateDisruption AppState = "disruption"
	StateRebooked   AppState = "rebooked"
)

// Selection is what the traveller has chosen so far for one scenario
type Selection struct {
	Query          string
	Scenario       models.TripScenario
	SelectedFlight *models.FlightOption
	SelectedHotel  *models.HotelOption
	LegSelections  map[string]models.FlightOption
	ActiveLeg      int
}

func newSelection(query string, sc models.TripScenario) Selection {
	sel := Selection{
		Query:         query,
		Scenario:      sc,
		LegSelections: map[string]models.FlightOption{},
	}
	if !sc.IsMultiCity && sc.Hotel != nil {
		h := *sc.Hotel
		sel.SelectedHotel = &h
	}
	return sel
}

// Complete reports whether the traveller may continue to the summary
func (s Selection) Complete() bool {
	if s.Scenario.IsMultiCity {
		if len(s.Scenario.Legs) == 0 {
			return false
		}
		for _, leg := range s.Scenario.Legs {
			if _, ok := s.LegSelections[leg.ID]; !ok {
				return false
			}
		}
		return true
	}
	return s.SelectedFlight != nil
}

// withLeg returns a copy with the leg selection set. The map is copied so
// earlier states stay untouched.
func (s Selection) withLeg(legID string, f models.FlightOption) Selection {
	legs := make(map[string]models.FlightOption, len(s.LegSelections)+1)
	for k, v := range s.LegSelections {
		legs[k] = v
	}
	legs[legID] = f
	s.LegSelections = legs
	return s
}

// nextUnselectedLeg returns the first leg after from that has no selection,
// wrapping around. It returns from when every leg is selected.
func (s Selection) nextUnselectedLeg(from int) int {
	n := len(s.Scenario.Legs)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if _, ok := s.LegSelections[s.Scenario.Legs[idx].ID]; !ok {
			return idx
		}
	}
	return from
}

// State is one variant of the booking flow. Each variant carries only the
// data that is valid while the flow is in that step.
type State interface {
	Name() AppState
}

type SearchState struct{}

type ThinkingState struct {
	Selection
	Step int
}

type ResultsState struct {
	Selection
}

type SummaryState struct {
	Selection
}

// ApprovalState waits for the simulated approver. Ready flips once the
// approval delay has elapsed and unlocks Approve.
type ApprovalState struct {
	Selection
	Ready bool
}

// BookingState tracks the running booking sequence. Step stays below Steps.
type BookingState struct {
	Selection
	Step  int
	Steps int
}

// ConfirmedState holds the issued booking. Rebooked is set after a
// disruption was resolved and only changes the displayed inbound leg.
type ConfirmedState struct {
	Selection
	Confirmation models.BookingConfirmation
	Rebooked     *models.FlightOption
}

type DisruptionState struct {
	Selection
	Confirmation models.BookingConfirmation
	Rebooked     *models.FlightOption
	Disruption   models.DisruptionScenario
	Alternative  *models.FlightOption
}

type RebookedState struct {
	Selection
	Confirmation models.BookingConfirmation
	Disruption   models.DisruptionScenario
	Alternative  models.FlightOption
}

func (SearchState) Name() AppState     { return StateSearch }
func (ThinkingState) Name() AppState   { return StateThinking }
func (ResultsState) Name() AppState    { return StateResults }
func (SummaryState) Name() AppState    { return StateSummary }
func (ApprovalState) Name() AppState   { return StateApproval }
func (BookingState) Name() AppState    { return StateBooking }
func (ConfirmedState) Name() AppState  { return StateConfirmed }
func (DisruptionState) Name() AppState { return StateDisruption }
func (RebookedState) Name() AppState   { return StateRebooked }

// selectionOf returns the selection carried by s. SearchState has none.
func selectionOf(s State) (Selection, bool) {
	switch st := s.(type) {
	case ThinkingState:
		return st.Selection, true
	case ResultsState:
		return st.Selection, true
	case SummaryState:
		return st.Selection, true
	case ApprovalState:
		return st.Selection, true
	case BookingState:
		return st.Selection, true
	case ConfirmedState:
		return st.Selection, true
	case DisruptionState:
		return st.Selection, true
	case RebookedState:
		return st.Selection, true
	}
	return Selection{}, false
}
