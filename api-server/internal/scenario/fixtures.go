package scenario

import "github.com/ibenstewart/3-hr-demo-sub000/shared/models"

// DemoCompany is the traveller's employer used throughout the demo
var DemoCompany = models.Company{
	Name:          "Meridian Consulting",
	TravelPolicy:  "Economy for flights under 6 hours, premium economy above. Hotels up to £120 per night in Europe.",
	NightlyCap:    models.GBP(120),
	Traveller:     "Alex Morgan",
	TravellerRole: "Senior Consultant",
	Email:         "alex.morgan@meridian-consulting.com",
}

// DemoApprover signs off trips in the simulated Slack card
var DemoApprover = models.Approver{
	Name:    "Priya Shah",
	Title:   "Head of Delivery",
	Channel: "#travel-approvals",
}

// BookingSteps are the labels shown while the booking sequence runs
var BookingSteps = []string{
	"Holding your seats",
	"Reserving the hotel room",
	"Applying the Meridian corporate rate",
	"Adding the trip to your calendar",
	"Sending confirmation",
}

// ApprovalSteps has a single step; the approve button unlocks when it completes
var ApprovalSteps = []string{
	"Waiting for Priya to open the request",
}

// Confirmation is the template used to build booking confirmations
var Confirmation = models.ConfirmationTemplate{
	ReferencePrefix: "MC",
	To:              DemoCompany.Email,
	From:            "trips@meridian-consulting.com",
	SubjectFormat:   "Your trip to %s is booked (%s)",
	BodyFormat:      "Hi Alex,\n\nYour trip to %s is confirmed under reference %s. Total charged to the Meridian card: %s.\n\nSafe travels.",
	Currency:        "GBP",
}

// Disruption returns the fixed delay narrative. It does not depend on the
// flight that was booked.
func Disruption() models.DisruptionScenario {
	return models.DisruptionScenario{
		ID:           "ber-return-delay",
		Headline:     "Your return flight BA 987 is delayed by 3 hours",
		Reason:       "Air traffic control restrictions over Frankfurt",
		DelayMinutes: 180,
		OriginalFlight: models.FlightOption{
			ID: "ber-fastest", Tag: models.FlightTagFastest, Price: models.GBP(210),
			Outbound: models.FlightLeg{
				Airline: "British Airways", FlightNumber: "BA 982", Origin: "LHR", Destination: "BER",
				Depart: "07:25", Arrive: "10:20", Duration: "1h 55m",
			},
			Inbound: &models.FlightLeg{
				Airline: "British Airways", FlightNumber: "BA 987", Origin: "BER", Destination: "LHR",
				Depart: "21:30", Arrive: "22:25", Duration: "1h 55m",
			},
			Comparison: models.ComparisonData{Risk: models.RiskHigh},
		},
		Alternatives: []models.FlightOption{
			{
				ID: "alt-ba-earlier", Tag: models.FlightTagFastest, Price: models.GBP(210), PriceDelta: models.GBP(0),
				Outbound: models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 982", Origin: "LHR", Destination: "BER",
					Depart: "07:25", Arrive: "10:20", Duration: "1h 55m",
				},
				Inbound: &models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 985", Origin: "BER", Destination: "LHR",
					Depart: "16:10", Arrive: "17:05", Duration: "1h 55m",
				},
				Reasoning:  []string{"Same airline, no change fee", "Leaves before the restrictions start"},
				Tradeoffs:  "You leave the client two hours earlier",
				Comparison: models.ComparisonData{Risk: models.RiskLow},
			},
			{
				ID: "alt-lh-later", Tag: models.FlightTagFlexible, Price: models.GBP(255), PriceDelta: models.GBP(45),
				Outbound: models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 982", Origin: "LHR", Destination: "BER",
					Depart: "07:25", Arrive: "10:20", Duration: "1h 55m",
				},
				Inbound: &models.FlightLeg{
					Airline: "Lufthansa", FlightNumber: "LH 2484", Origin: "BER", Destination: "LHR",
					Depart: "19:15", Arrive: "20:50", Duration: "2h 35m", Stops: 1,
				},
				Reasoning:  []string{"Keeps the full afternoon with the client"},
				Tradeoffs:  "£45 more and a connection in Munich",
				Comparison: models.ComparisonData{Risk: models.RiskMedium},
			},
			{
				ID: "alt-ez-gatwick", Tag: models.FlightTagBudget, Price: models.GBP(190), PriceDelta: models.GBP(-20),
				Outbound: models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 982", Origin: "LHR", Destination: "BER",
					Depart: "07:25", Arrive: "10:20", Duration: "1h 55m",
				},
				Inbound: &models.FlightLeg{
					Airline: "easyJet", FlightNumber: "U2 8626", Origin: "BER", Destination: "LGW",
					Depart: "18:50", Arrive: "19:45", Duration: "1h 55m",
				},
				Reasoning:  []string{"Refund of £20 on the fare difference"},
				Tradeoffs:  "Lands at Gatwick instead of Heathrow",
				Comparison: models.ComparisonData{Risk: models.RiskMedium},
			},
		},
	}
}
