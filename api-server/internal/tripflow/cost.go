package tripflow

import "github.com/ibenstewart/3-hr-demo-sub000/shared/models"

// Currency of every price in the catalog
const Currency = "GBP"

// Totals is the derived cost of a selection. It is recomputed on every
// snapshot and never stored.
type Totals struct {
	Flights  models.Money `json:"flights"`
	Hotels   models.Money `json:"hotels"`
	Total    models.Money `json:"total"`
	Currency string       `json:"currency"`
}

// ComputeTotals prices a selection.
//
// Multi-city: the selected flight of every leg plus every leg's fixed hotel.
// Single-city: the selected flight plus the selected hotel.
func ComputeTotals(sel Selection) Totals {
	t := Totals{Currency: Currency}
	if sel.Scenario.IsMultiCity {
		for _, leg := range sel.Scenario.Legs {
			if f, ok := sel.LegSelections[leg.ID]; ok {
				t.Flights += f.Price
			}
			if leg.Hotel != nil {
				t.Hotels += leg.Hotel.TotalPrice
			}
		}
	} else {
		if sel.SelectedFlight != nil {
			t.Flights = sel.SelectedFlight.Price
		}
		if sel.SelectedHotel != nil {
			t.Hotels = sel.SelectedHotel.TotalPrice
		}
	}
	t.Total = t.Flights + t.Hotels
	return t
}
