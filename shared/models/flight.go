package models

// FlightTag classifies a flight option within a scenario
type FlightTag string

const (
	FlightTagBudget   FlightTag = "budget"
	FlightTagFastest  FlightTag = "fastest"
	FlightTagFlexible FlightTag = "flexible"
)

// RiskLevel is the qualitative disruption risk of a flight option
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// FlightLeg is one directional segment of a flight option
type FlightLeg struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flightNumber"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Depart       string `json:"depart"`
	Arrive       string `json:"arrive"`
	Duration     string `json:"duration"`
	Stops        int    `json:"stops"`
}

// ComparisonData ranks an option against the other options of the same scenario
type ComparisonData struct {
	PriceRank       int       `json:"priceRank,omitempty"`
	SpeedRank       int       `json:"speedRank,omitempty"`
	FlexibilityRank int       `json:"flexibilityRank,omitempty"`
	Risk            RiskLevel `json:"risk"`
}

// FlightOption is a bookable flight pairing offered for a trip or leg.
// Inbound is nil for one-way options.
type FlightOption struct {
	ID         string         `json:"id"`
	Tag        FlightTag      `json:"tag"`
	Price      Money          `json:"price"`
	PriceDelta Money          `json:"priceDelta,omitempty"`
	Outbound   FlightLeg      `json:"outbound"`
	Inbound    *FlightLeg     `json:"inbound,omitempty"`
	Reasoning  []string       `json:"reasoning"`
	Tradeoffs  string         `json:"tradeoffs"`
	Comparison ComparisonData `json:"comparisonData"`
}

// HotelOption is a hotel offered alongside a trip or leg
type HotelOption struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Chain              string   `json:"chain"`
	Stars              int      `json:"stars"`
	NightlyPrice       Money    `json:"nightlyPrice"`
	TotalPrice         Money    `json:"totalPrice"`
	CheckIn            string   `json:"checkIn"`
	CheckOut           string   `json:"checkOut"`
	DistanceFromOffice string   `json:"distanceFromOffice"`
	Reasoning          []string `json:"reasoning"`
}

// DisruptionScenario is the fixed delay narrative offered after confirmation
type DisruptionScenario struct {
	ID             string         `json:"id"`
	Headline       string         `json:"headline"`
	Reason         string         `json:"reason"`
	DelayMinutes   int            `json:"delayMinutes"`
	OriginalFlight FlightOption   `json:"originalFlight"`
	Alternatives   []FlightOption `json:"alternatives"`
}
