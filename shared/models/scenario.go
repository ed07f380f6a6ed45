package models

// ParsedIntent is the pre-computed reading of a demo query. Display only.
type ParsedIntent struct {
	OriginCode      string `json:"originCode"`
	OriginName      string `json:"originName"`
	DestinationCode string `json:"destinationCode"`
	DestinationName string `json:"destinationName"`
	DepartDate      string `json:"departDate"`
	ReturnDate      string `json:"returnDate,omitempty"`
	BudgetBand      string `json:"budgetBand"`
	Purpose         string `json:"purpose"`
}

// CalendarConflict is a fixed calendar entry shown next to the results
type CalendarConflict struct {
	Title    string `json:"title"`
	When     string `json:"when"`
	Severity string `json:"severity"`
	Note     string `json:"note,omitempty"`
}

// MultiCityLeg is one origin to destination segment of a multi-city trip
type MultiCityLeg struct {
	ID            string         `json:"id"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	Date          string         `json:"date"`
	FlightOptions []FlightOption `json:"flightOptions"`
	Hotel         *HotelOption   `json:"hotel,omitempty"`
}

// TripScenario is a pre-authored bundle of demo content matched from a query.
//
// When IsMultiCity is set, Legs is authoritative and FlightOptions, Hotel and
// AlternativeHotels are ignored.
type TripScenario struct {
	ID                string             `json:"id"`
	Query             string             `json:"query"`
	ParsedIntent      ParsedIntent       `json:"parsedIntent"`
	ThinkingSteps     []string           `json:"thinkingSteps"`
	FlightOptions     []FlightOption     `json:"flightOptions,omitempty"`
	Hotel             *HotelOption       `json:"hotel,omitempty"`
	AlternativeHotels []HotelOption      `json:"alternativeHotels,omitempty"`
	IsMultiCity       bool               `json:"isMultiCity"`
	Legs              []MultiCityLeg     `json:"legs,omitempty"`
	CalendarContext   []CalendarConflict `json:"calendarContext"`
	Company           *Company           `json:"company,omitempty"`
	Approver          *Approver          `json:"approver,omitempty"`
}

// FindFlight returns the single-city flight option with the given ID
func (s *TripScenario) FindFlight(id string) (FlightOption, bool) {
	for _, f := range s.FlightOptions {
		if f.ID == id {
			return f, true
		}
	}
	return FlightOption{}, false
}

// FindHotel looks up a hotel among the default hotel and its alternatives
func (s *TripScenario) FindHotel(id string) (HotelOption, bool) {
	if s.Hotel != nil && s.Hotel.ID == id {
		return *s.Hotel, true
	}
	for _, h := range s.AlternativeHotels {
		if h.ID == id {
			return h, true
		}
	}
	return HotelOption{}, false
}

// FindLeg returns the index and value of the leg with the given ID
func (s *TripScenario) FindLeg(id string) (int, MultiCityLeg, bool) {
	for i, l := range s.Legs {
		if l.ID == id {
			return i, l, true
		}
	}
	return -1, MultiCityLeg{}, false
}

// FindFlight returns the leg's flight option with the given ID
func (l *MultiCityLeg) FindFlight(id string) (FlightOption, bool) {
	for _, f := range l.FlightOptions {
		if f.ID == id {
			return f, true
		}
	}
	return FlightOption{}, false
}

// Company describes the demo traveller's employer
type Company struct {
	Name          string `json:"name"`
	TravelPolicy  string `json:"travelPolicy"`
	NightlyCap    Money  `json:"nightlyCap"`
	Traveller     string `json:"traveller"`
	TravellerRole string `json:"travellerRole"`
	Email         string `json:"email"`
}

// Approver is the person who signs off the trip in the simulated Slack card
type Approver struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Channel string `json:"channel"`
}
