package tripflow

import (
	"testing"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	sc := twoLegScenario()
	a1 := sc.Legs[0].FlightOptions[0]
	b1 := sc.Legs[1].FlightOptions[0]
	fastest := models.FlightOption{ID: "f", Price: models.GBP(210)}
	hotel := models.HotelOption{ID: "h", TotalPrice: models.GBP(150)}

	tests := []struct {
		name     string
		sel      Selection
		expected Totals
	}{
		{
			name: "multi-city with every leg selected",
			sel: Selection{
				Scenario:      sc,
				LegSelections: map[string]models.FlightOption{"leg-a": a1, "leg-b": b1},
			},
			expected: Totals{Flights: models.GBP(215), Hotels: models.GBP(140), Total: models.GBP(355), Currency: Currency},
		},
		{
			name: "multi-city counts every leg hotel even before selection",
			sel: Selection{
				Scenario:      sc,
				LegSelections: map[string]models.FlightOption{"leg-a": a1},
			},
			expected: Totals{Flights: models.GBP(120), Hotels: models.GBP(140), Total: models.GBP(260), Currency: Currency},
		},
		{
			name:     "single-city flight and hotel",
			sel:      Selection{SelectedFlight: &fastest, SelectedHotel: &hotel},
			expected: Totals{Flights: models.GBP(210), Hotels: models.GBP(150), Total: models.GBP(360), Currency: Currency},
		},
		{
			name:     "single-city day trip without hotel",
			sel:      Selection{SelectedFlight: &fastest},
			expected: Totals{Flights: models.GBP(210), Total: models.GBP(210), Currency: Currency},
		},
		{
			name: "pence amounts add exactly",
			sel: Selection{
				SelectedFlight: &models.FlightOption{ID: "p", Price: models.Money(12010)},
				SelectedHotel:  &models.HotelOption{ID: "q", TotalPrice: models.Money(2020)},
			},
			expected: Totals{Flights: models.Money(12010), Hotels: models.Money(2020), Total: models.Money(14030), Currency: Currency},
		},
		{
			name:     "nothing selected",
			sel:      Selection{},
			expected: Totals{Currency: Currency},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeTotals(tt.sel))
		})
	}
}
