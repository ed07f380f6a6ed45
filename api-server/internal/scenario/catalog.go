package scenario

import "github.com/ibenstewart/3-hr-demo-sub000/shared/models"

// Scenario IDs in the catalog
const (
	BerlinID     = "berlin-client-visit"
	MultiCityID  = "paris-amsterdam-roadshow"
	DayTripID    = "edinburgh-day-trip"
	NewYorkID    = "new-york-conference"
	DefaultID    = BerlinID
	catalogCount = 4
)

func berlinScenario() models.TripScenario {
	return models.TripScenario{
		ID:    BerlinID,
		Query: "Berlin next Tuesday, back Thursday",
		ParsedIntent: models.ParsedIntent{
			OriginCode:      "LHR",
			OriginName:      "London",
			DestinationCode: "BER",
			DestinationName: "Berlin",
			DepartDate:      "Tue 14 Oct",
			ReturnDate:      "Thu 16 Oct",
			BudgetBand:      "standard",
			Purpose:         "Client workshop",
		},
		ThinkingSteps: []string{
			"Reading your calendar for Tuesday and Thursday",
			"Checking Meridian travel policy",
			"Searching 47 flights between London and Berlin",
			"Comparing hotels near the Mitte office",
			"Ranking options by price, speed and flexibility",
		},
		FlightOptions: []models.FlightOption{
			{
				ID:    "ber-budget",
				Tag:   models.FlightTagBudget,
				Price: models.GBP(145),
				Outbound: models.FlightLeg{
					Airline: "easyJet", FlightNumber: "U2 8619", Origin: "LGW", Destination: "BER",
					Depart: "06:15", Arrive: "09:05", Duration: "1h 50m",
				},
				Inbound: &models.FlightLeg{
					Airline: "easyJet", FlightNumber: "U2 8624", Origin: "BER", Destination: "LGW",
					Depart: "20:40", Arrive: "21:35", Duration: "1h 55m",
				},
				Reasoning: []string{
					"Cheapest fare that still lands before your 11:00 workshop",
					"Gatwick adds about 40 minutes to your commute",
				},
				Tradeoffs:  "Early start and no free checked bag",
				Comparison: models.ComparisonData{PriceRank: 1, SpeedRank: 3, FlexibilityRank: 3, Risk: models.RiskMedium},
			},
			{
				ID:    "ber-fastest",
				Tag:   models.FlightTagFastest,
				Price: models.GBP(210),
				Outbound: models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 982", Origin: "LHR", Destination: "BER",
					Depart: "07:25", Arrive: "10:20", Duration: "1h 55m",
				},
				Inbound: &models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 987", Origin: "BER", Destination: "LHR",
					Depart: "18:30", Arrive: "19:25", Duration: "1h 55m",
				},
				Reasoning: []string{
					"Direct from Heathrow, 20 minutes from your home",
					"Back in time for Thursday's 20:00 dinner",
					"Within policy for client-facing travel",
				},
				Tradeoffs:  "£65 more than the budget option",
				Comparison: models.ComparisonData{PriceRank: 2, SpeedRank: 1, FlexibilityRank: 2, Risk: models.RiskLow},
			},
			{
				ID:    "ber-flexible",
				Tag:   models.FlightTagFlexible,
				Price: models.GBP(265),
				Outbound: models.FlightLeg{
					Airline: "Lufthansa", FlightNumber: "LH 2481", Origin: "LHR", Destination: "BER",
					Depart: "08:10", Arrive: "12:45", Duration: "3h 35m", Stops: 1,
				},
				Inbound: &models.FlightLeg{
					Airline: "Lufthansa", FlightNumber: "LH 2476", Origin: "BER", Destination: "LHR",
					Depart: "17:05", Arrive: "19:50", Duration: "3h 45m", Stops: 1,
				},
				Reasoning: []string{
					"Fully refundable and changeable until departure",
					"Useful if the workshop date might still move",
				},
				Tradeoffs:  "Connection in Frankfurt makes you miss the workshop start",
				Comparison: models.ComparisonData{PriceRank: 3, SpeedRank: 2, FlexibilityRank: 1, Risk: models.RiskLow},
			},
		},
		Hotel: &models.HotelOption{
			ID: "ber-motel-one", Name: "Motel One Berlin-Hackescher Markt", Chain: "Motel One", Stars: 3,
			NightlyPrice: models.GBP(75), TotalPrice: models.GBP(150), CheckIn: "Tue 14 Oct", CheckOut: "Thu 16 Oct",
			DistanceFromOffice: "6 min walk to the Mitte office",
			Reasoning: []string{
				"Walking distance to the client",
				"Under the £120 nightly cap",
			},
		},
		AlternativeHotels: []models.HotelOption{
			{
				ID: "ber-hilton", Name: "Hilton Berlin", Chain: "Hilton", Stars: 5,
				NightlyPrice: models.GBP(125), TotalPrice: models.GBP(250), CheckIn: "Tue 14 Oct", CheckOut: "Thu 16 Oct",
				DistanceFromOffice: "12 min by U-Bahn",
				Reasoning:          []string{"Earns Hilton Honors points", "Above nightly cap, needs approval"},
			},
			{
				ID: "ber-premier-inn", Name: "Premier Inn Berlin Alexanderplatz", Chain: "Premier Inn", Stars: 3,
				NightlyPrice: models.GBP(68), TotalPrice: models.GBP(136), CheckIn: "Tue 14 Oct", CheckOut: "Thu 16 Oct",
				DistanceFromOffice: "15 min walk",
				Reasoning:          []string{"Cheapest policy hotel", "Familiar UK chain"},
			},
		},
		CalendarContext: []models.CalendarConflict{
			{Title: "1:1 with Priya", When: "Tue 09:30", Severity: "low", Note: "Can move to a call from the airport"},
			{Title: "Team dinner", When: "Thu 20:00", Severity: "medium", Note: "Needs a return before 19:30"},
		},
	}
}

func multiCityScenario() models.TripScenario {
	return models.TripScenario{
		ID:    MultiCityID,
		Query: "Paris Monday, Amsterdam Wednesday, home Friday",
		ParsedIntent: models.ParsedIntent{
			OriginCode:      "LHR",
			OriginName:      "London",
			DestinationCode: "CDG/AMS",
			DestinationName: "Paris and Amsterdam",
			DepartDate:      "Mon 20 Oct",
			ReturnDate:      "Fri 24 Oct",
			BudgetBand:      "standard",
			Purpose:         "Investor roadshow",
		},
		ThinkingSteps: []string{
			"Splitting your trip into three legs",
			"Checking Meridian travel policy for each city",
			"Searching flights London to Paris",
			"Searching flights Paris to Amsterdam",
			"Searching flights Amsterdam to London",
			"Holding hotels near each meeting",
		},
		IsMultiCity: true,
		Legs: []models.MultiCityLeg{
			{
				ID: "leg-lon-par", Origin: "LHR", Destination: "CDG", Date: "Mon 20 Oct",
				FlightOptions: []models.FlightOption{
					{
						ID: "lon-par-budget", Tag: models.FlightTagBudget, Price: models.GBP(120),
						Outbound: models.FlightLeg{
							Airline: "Vueling", FlightNumber: "VY 6623", Origin: "LGW", Destination: "ORY",
							Depart: "07:00", Arrive: "09:15", Duration: "1h 15m",
						},
						Reasoning:  []string{"Lowest fare on the day"},
						Tradeoffs:  "Orly is further from La Défense",
						Comparison: models.ComparisonData{PriceRank: 1, SpeedRank: 2, Risk: models.RiskMedium},
					},
					{
						ID: "lon-par-fastest", Tag: models.FlightTagFastest, Price: models.GBP(185),
						Outbound: models.FlightLeg{
							Airline: "Air France", FlightNumber: "AF 1081", Origin: "LHR", Destination: "CDG",
							Depart: "07:35", Arrive: "09:50", Duration: "1h 15m",
						},
						Reasoning:  []string{"Direct into CDG with RER to La Défense"},
						Tradeoffs:  "£65 more than Vueling",
						Comparison: models.ComparisonData{PriceRank: 2, SpeedRank: 1, Risk: models.RiskLow},
					},
				},
				Hotel: &models.HotelOption{
					ID: "par-novotel", Name: "Novotel Paris La Défense", Chain: "Accor", Stars: 4,
					NightlyPrice: models.GBP(80), TotalPrice: models.GBP(80), CheckIn: "Mon 20 Oct", CheckOut: "Tue 21 Oct",
					DistanceFromOffice: "5 min walk", Reasoning: []string{"Next to the first investor meeting"},
				},
			},
			{
				ID: "leg-par-ams", Origin: "CDG", Destination: "AMS", Date: "Wed 22 Oct",
				FlightOptions: []models.FlightOption{
					{
						ID: "par-ams-budget", Tag: models.FlightTagBudget, Price: models.GBP(95),
						Outbound: models.FlightLeg{
							Airline: "Transavia", FlightNumber: "HV 5112", Origin: "ORY", Destination: "AMS",
							Depart: "08:20", Arrive: "09:40", Duration: "1h 20m",
						},
						Reasoning:  []string{"Cheapest option, cabin bag only"},
						Tradeoffs:  "Orly departure means an early taxi",
						Comparison: models.ComparisonData{PriceRank: 1, SpeedRank: 2, Risk: models.RiskMedium},
					},
					{
						ID: "par-ams-flexible", Tag: models.FlightTagFlexible, Price: models.GBP(160),
						Outbound: models.FlightLeg{
							Airline: "KLM", FlightNumber: "KL 1226", Origin: "CDG", Destination: "AMS",
							Depart: "10:05", Arrive: "11:20", Duration: "1h 15m",
						},
						Reasoning:  []string{"Free changes if the Paris meeting overruns"},
						Tradeoffs:  "£65 more than Transavia",
						Comparison: models.ComparisonData{PriceRank: 2, SpeedRank: 1, Risk: models.RiskLow},
					},
				},
				Hotel: &models.HotelOption{
					ID: "ams-pulitzer", Name: "Pulitzer Amsterdam", Chain: "Independent", Stars: 4,
					NightlyPrice: models.GBP(60), TotalPrice: models.GBP(60), CheckIn: "Wed 22 Oct", CheckOut: "Thu 23 Oct",
					DistanceFromOffice: "10 min by tram", Reasoning: []string{"Corporate rate agreed with Meridian"},
				},
			},
			{
				ID: "leg-ams-lon", Origin: "AMS", Destination: "LHR", Date: "Fri 24 Oct",
				FlightOptions: []models.FlightOption{
					{
						ID: "ams-lon-budget", Tag: models.FlightTagBudget, Price: models.GBP(88),
						Outbound: models.FlightLeg{
							Airline: "easyJet", FlightNumber: "U2 8860", Origin: "AMS", Destination: "LGW",
							Depart: "16:45", Arrive: "17:05", Duration: "1h 20m",
						},
						Reasoning:  []string{"Home before 18:00"},
						Tradeoffs:  "Gatwick arrival",
						Comparison: models.ComparisonData{PriceRank: 1, SpeedRank: 2, Risk: models.RiskMedium},
					},
					{
						ID: "ams-lon-fastest", Tag: models.FlightTagFastest, Price: models.GBP(142),
						Outbound: models.FlightLeg{
							Airline: "British Airways", FlightNumber: "BA 437", Origin: "AMS", Destination: "LHR",
							Depart: "15:50", Arrive: "16:05", Duration: "1h 15m",
						},
						Reasoning:  []string{"Earliest Heathrow arrival after the last meeting"},
						Tradeoffs:  "£54 more than easyJet",
						Comparison: models.ComparisonData{PriceRank: 2, SpeedRank: 1, Risk: models.RiskLow},
					},
				},
			},
		},
		CalendarContext: []models.CalendarConflict{
			{Title: "Board prep", When: "Tue 14:00", Severity: "medium", Note: "Join remotely from Paris"},
		},
	}
}

func dayTripScenario() models.TripScenario {
	return models.TripScenario{
		ID:    DayTripID,
		Query: "Edinburgh day trip Friday",
		ParsedIntent: models.ParsedIntent{
			OriginCode:      "LHR",
			OriginName:      "London",
			DestinationCode: "EDI",
			DestinationName: "Edinburgh",
			DepartDate:      "Fri 17 Oct",
			ReturnDate:      "Fri 17 Oct",
			BudgetBand:      "economy",
			Purpose:         "Site visit",
		},
		ThinkingSteps: []string{
			"Checking same-day return options",
			"Searching flights London to Edinburgh",
			"Comparing with the 4h20 LNER train",
		},
		FlightOptions: []models.FlightOption{
			{
				ID: "edi-budget", Tag: models.FlightTagBudget, Price: models.GBP(98),
				Outbound: models.FlightLeg{
					Airline: "easyJet", FlightNumber: "U2 803", Origin: "LGW", Destination: "EDI",
					Depart: "06:50", Arrive: "08:15", Duration: "1h 25m",
				},
				Inbound: &models.FlightLeg{
					Airline: "easyJet", FlightNumber: "U2 812", Origin: "EDI", Destination: "LGW",
					Depart: "19:30", Arrive: "21:00", Duration: "1h 30m",
				},
				Reasoning:  []string{"Cheapest same-day return"},
				Tradeoffs:  "Late return into Gatwick",
				Comparison: models.ComparisonData{PriceRank: 1, SpeedRank: 2, Risk: models.RiskMedium},
			},
			{
				ID: "edi-fastest", Tag: models.FlightTagFastest, Price: models.GBP(156),
				Outbound: models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 1432", Origin: "LHR", Destination: "EDI",
					Depart: "07:05", Arrive: "08:25", Duration: "1h 20m",
				},
				Inbound: &models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 1457", Origin: "EDI", Destination: "LHR",
					Depart: "17:40", Arrive: "19:05", Duration: "1h 25m",
				},
				Reasoning:  []string{"Heathrow both ways", "Home for dinner"},
				Tradeoffs:  "£58 more than easyJet",
				Comparison: models.ComparisonData{PriceRank: 2, SpeedRank: 1, Risk: models.RiskLow},
			},
		},
		CalendarContext: []models.CalendarConflict{},
	}
}

func newYorkScenario() models.TripScenario {
	return models.TripScenario{
		ID:    NewYorkID,
		Query: "New York for the fintech conference next month",
		ParsedIntent: models.ParsedIntent{
			OriginCode:      "LHR",
			OriginName:      "London",
			DestinationCode: "JFK",
			DestinationName: "New York",
			DepartDate:      "Mon 10 Nov",
			ReturnDate:      "Thu 13 Nov",
			BudgetBand:      "premium",
			Purpose:         "Conference",
		},
		ThinkingSteps: []string{
			"Checking long-haul cabin rules in policy",
			"Searching transatlantic flights",
			"Finding hotels near Javits Center",
			"Checking ESTA validity",
		},
		FlightOptions: []models.FlightOption{
			{
				ID: "nyc-budget", Tag: models.FlightTagBudget, Price: models.GBP(520),
				Outbound: models.FlightLeg{
					Airline: "Norse Atlantic", FlightNumber: "N0 701", Origin: "LGW", Destination: "JFK",
					Depart: "11:10", Arrive: "14:05", Duration: "7h 55m",
				},
				Inbound: &models.FlightLeg{
					Airline: "Norse Atlantic", FlightNumber: "N0 702", Origin: "JFK", Destination: "LGW",
					Depart: "20:15", Arrive: "08:20", Duration: "7h 05m",
				},
				Reasoning:  []string{"Lowest transatlantic fare"},
				Tradeoffs:  "No lounge access, overnight return in economy",
				Comparison: models.ComparisonData{PriceRank: 1, SpeedRank: 3, FlexibilityRank: 3, Risk: models.RiskMedium},
			},
			{
				ID: "nyc-fastest", Tag: models.FlightTagFastest, Price: models.GBP(1180),
				Outbound: models.FlightLeg{
					Airline: "Virgin Atlantic", FlightNumber: "VS 3", Origin: "LHR", Destination: "JFK",
					Depart: "08:00", Arrive: "10:45", Duration: "7h 45m",
				},
				Inbound: &models.FlightLeg{
					Airline: "Virgin Atlantic", FlightNumber: "VS 4", Origin: "JFK", Destination: "LHR",
					Depart: "18:30", Arrive: "06:30", Duration: "7h 00m",
				},
				Reasoning:  []string{"Premium economy allowed on flights over 6 hours"},
				Tradeoffs:  "Over twice the budget fare",
				Comparison: models.ComparisonData{PriceRank: 3, SpeedRank: 1, FlexibilityRank: 2, Risk: models.RiskLow},
			},
			{
				ID: "nyc-flexible", Tag: models.FlightTagFlexible, Price: models.GBP(890),
				Outbound: models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 117", Origin: "LHR", Destination: "JFK",
					Depart: "08:25", Arrive: "11:20", Duration: "7h 55m",
				},
				Inbound: &models.FlightLeg{
					Airline: "British Airways", FlightNumber: "BA 178", Origin: "JFK", Destination: "LHR",
					Depart: "19:25", Arrive: "07:30", Duration: "7h 05m",
				},
				Reasoning:  []string{"Flexible economy, changeable for free"},
				Tradeoffs:  "Economy cabin on the overnight return",
				Comparison: models.ComparisonData{PriceRank: 2, SpeedRank: 2, FlexibilityRank: 1, Risk: models.RiskLow},
			},
		},
		Hotel: &models.HotelOption{
			ID: "nyc-hudson", Name: "Hudson Yards Marriott", Chain: "Marriott", Stars: 4,
			NightlyPrice: models.GBP(240), TotalPrice: models.GBP(720), CheckIn: "Mon 10 Nov", CheckOut: "Thu 13 Nov",
			DistanceFromOffice: "8 min walk to Javits Center",
			Reasoning:          []string{"Conference partner rate"},
		},
		AlternativeHotels: []models.HotelOption{
			{
				ID: "nyc-pod", Name: "Pod Times Square", Chain: "Pod Hotels", Stars: 3,
				NightlyPrice: models.GBP(150), TotalPrice: models.GBP(450), CheckIn: "Mon 10 Nov", CheckOut: "Thu 13 Nov",
				DistanceFromOffice: "15 min walk", Reasoning: []string{"Cheapest central option"},
			},
		},
		CalendarContext: []models.CalendarConflict{
			{Title: "Quarterly review", When: "Wed 15:00 UK", Severity: "high", Note: "10:00 in New York, clashes with keynote"},
		},
	}
}

// Catalog returns every scenario in a fixed order
func Catalog() []models.TripScenario {
	return []models.TripScenario{
		berlinScenario(),
		multiCityScenario(),
		dayTripScenario(),
		newYorkScenario(),
	}
}
