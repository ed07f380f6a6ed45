package tripflow

import "github.com/ibenstewart/3-hr-demo-sub000/shared/models"

// Progress is the visible state of a running timed sequence
type Progress struct {
	Kind   SequenceKind `json:"kind"`
	Steps  []string     `json:"steps"`
	Active int          `json:"active"`
	Done   bool         `json:"done"`
}

// Actions tells clients which controls are enabled. The reducer enforces
// the same rules; these flags are for rendering.
type Actions struct {
	CanSubmit            bool `json:"canSubmit"`
	CanSelectFlight      bool `json:"canSelectFlight"`
	CanSelectHotel       bool `json:"canSelectHotel"`
	CanSelectLegFlight   bool `json:"canSelectLegFlight"`
	CanContinue          bool `json:"canContinue"`
	CanGoBack            bool `json:"canGoBack"`
	CanRequestApproval   bool `json:"canRequestApproval"`
	CanApprove           bool `json:"canApprove"`
	CanTriggerDisruption bool `json:"canTriggerDisruption"`
	CanSelectAlternative bool `json:"canSelectAlternative"`
	CanRebook            bool `json:"canRebook"`
	CanDismiss           bool `json:"canDismiss"`
	CanReset             bool `json:"canReset"`
}

// Snapshot is everything a view needs to render the current state
type Snapshot struct {
	SessionID           string                         `json:"sessionId"`
	Version             uint64                         `json:"version"`
	State               AppState                       `json:"state"`
	Query               string                         `json:"query"`
	Scenario            *models.TripScenario           `json:"scenario"`
	SelectedFlight      *models.FlightOption           `json:"selectedFlight"`
	SelectedHotel       *models.HotelOption            `json:"selectedHotel"`
	LegSelections       map[string]models.FlightOption `json:"legSelections"`
	ActiveLeg           int                            `json:"activeLeg"`
	Totals              *Totals                        `json:"totals,omitempty"`
	Progress            *Progress                      `json:"progress,omitempty"`
	Confirmation        *models.BookingConfirmation    `json:"confirmation,omitempty"`
	Disruption          *models.DisruptionScenario     `json:"disruption,omitempty"`
	SelectedAlternative *models.FlightOption           `json:"selectedAlternative,omitempty"`
	Rebooked            *models.FlightOption           `json:"rebooked,omitempty"`
	DisplayedInbound    *models.FlightLeg              `json:"displayedInbound,omitempty"`
	Actions             Actions                        `json:"actions"`
}

// StepLabels are the fixed labels of the sequences that do not come from
// the scenario
type StepLabels struct {
	Approval []string
	Booking  []string
}

// BuildSnapshot renders s for clients
func BuildSnapshot(s State, labels StepLabels) Snapshot {
	snap := Snapshot{
		State:         s.Name(),
		LegSelections: map[string]models.FlightOption{},
		Actions:       Actions{CanReset: true},
	}

	sel, ok := selectionOf(s)
	if !ok {
		snap.Actions.CanSubmit = true
		return snap
	}

	sc := sel.Scenario
	snap.Query = sel.Query
	snap.Scenario = &sc
	snap.SelectedFlight = sel.SelectedFlight
	snap.SelectedHotel = sel.SelectedHotel
	for k, v := range sel.LegSelections {
		snap.LegSelections[k] = v
	}
	snap.ActiveLeg = sel.ActiveLeg

	if s.Name() != StateThinking {
		totals := ComputeTotals(sel)
		snap.Totals = &totals
	}

	switch st := s.(type) {
	case ThinkingState:
		snap.Progress = &Progress{Kind: SequenceThinking, Steps: sc.ThinkingSteps, Active: st.Step}
	case ResultsState:
		snap.Actions.CanSelectFlight = !sc.IsMultiCity
		snap.Actions.CanSelectHotel = !sc.IsMultiCity && sc.Hotel != nil
		snap.Actions.CanSelectLegFlight = sc.IsMultiCity
		snap.Actions.CanContinue = sel.Complete()
	case SummaryState:
		snap.Actions.CanGoBack = true
		snap.Actions.CanRequestApproval = true
	case ApprovalState:
		active := 0
		if st.Ready && len(labels.Approval) > 0 {
			active = len(labels.Approval) - 1
		}
		snap.Progress = &Progress{Kind: SequenceApproval, Steps: labels.Approval, Active: active, Done: st.Ready}
		snap.Actions.CanApprove = st.Ready
	case BookingState:
		snap.Progress = &Progress{Kind: SequenceBooking, Steps: labels.Booking, Active: st.Step}
	case ConfirmedState:
		conf := st.Confirmation
		snap.Confirmation = &conf
		snap.Rebooked = st.Rebooked
		snap.DisplayedInbound = displayedInbound(sel, st.Rebooked)
		snap.Actions.CanTriggerDisruption = true
	case DisruptionState:
		conf := st.Confirmation
		d := st.Disruption
		snap.Confirmation = &conf
		snap.Disruption = &d
		snap.SelectedAlternative = st.Alternative
		snap.Rebooked = st.Rebooked
		snap.DisplayedInbound = displayedInbound(sel, st.Rebooked)
		snap.Actions.CanSelectAlternative = true
		snap.Actions.CanRebook = st.Alternative != nil
	case RebookedState:
		conf := st.Confirmation
		d := st.Disruption
		alt := st.Alternative
		snap.Confirmation = &conf
		snap.Disruption = &d
		snap.SelectedAlternative = &alt
		snap.Rebooked = &alt
		snap.DisplayedInbound = alt.Inbound
		snap.Actions.CanDismiss = true
	}
	return snap
}

// displayedInbound is the return leg shown on the confirmation. A rebooked
// alternative replaces only the inbound leg; the selection is never touched.
func displayedInbound(sel Selection, rebooked *models.FlightOption) *models.FlightLeg {
	if rebooked != nil {
		return rebooked.Inbound
	}
	if sel.SelectedFlight != nil {
		return sel.SelectedFlight.Inbound
	}
	return nil
}
