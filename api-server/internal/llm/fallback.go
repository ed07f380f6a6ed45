package llm

// Canned responses served when live generation fails. They follow the same
// schemas the prompts ask the model for.

type TripSummary struct {
	Destination   string   `json:"destination"`
	Dates         string   `json:"dates"`
	Travellers    int      `json:"travellers"`
	EstimatedCost float64  `json:"estimatedCost"`
	Currency      string   `json:"currency"`
	Highlights    []string `json:"highlights"`
}

type ItineraryItem struct {
	Time   string `json:"time"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type ItineraryDay struct {
	Day   int             `json:"day"`
	Date  string          `json:"date"`
	Items []ItineraryItem `json:"items"`
}

type TripPlan struct {
	Summary   TripSummary    `json:"summary"`
	Itinerary []ItineraryDay `json:"itinerary"`
}

type CopyVariant struct {
	Channel  string `json:"channel"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
	CTA      string `json:"cta"`
}

type CalendarPost struct {
	Day     string `json:"day"`
	Channel string `json:"channel"`
	Content string `json:"content"`
}

type CalendarWeek struct {
	Week  int            `json:"week"`
	Theme string         `json:"theme"`
	Posts []CalendarPost `json:"posts"`
}

type ContentCalendar struct {
	Campaign string         `json:"campaign"`
	Weeks    []CalendarWeek `json:"weeks"`
}

type LaunchPhase struct {
	Name       string   `json:"name"`
	Timing     string   `json:"timing"`
	Activities []string `json:"activities"`
}

type LaunchPlan struct {
	ProductName    string        `json:"productName"`
	Tagline        string        `json:"tagline"`
	Positioning    string        `json:"positioning"`
	Audiences      []string      `json:"audiences"`
	Phases         []LaunchPhase `json:"phases"`
	SuccessMetrics []string      `json:"successMetrics"`
}

// DemoTripPlan is the canned plan-trip response
func DemoTripPlan() TripPlan {
	return TripPlan{
		Summary: TripSummary{
			Destination:   "Berlin",
			Dates:         "Tue 14 - Thu 16 Oct",
			Travellers:    1,
			EstimatedCost: 360,
			Currency:      "GBP",
			Highlights: []string{
				"Direct BA flights from Heathrow, under 2h each way",
				"Hotel 8 minutes' walk from the client office",
				"Back in London before 6pm Thursday",
			},
		},
		Itinerary: []ItineraryDay{
			{
				Day:  1,
				Date: "Tue 14 Oct",
				Items: []ItineraryItem{
					{Time: "07:15", Type: "flight", Title: "BA 982 LHR to BER", Detail: "Arrives 10:05, terminal 1"},
					{Time: "11:00", Type: "transfer", Title: "Taxi to Mitte", Detail: "About 35 minutes"},
					{Time: "13:00", Type: "meeting", Title: "Kick-off with client team", Detail: "Friedrichstrasse office"},
					{Time: "19:30", Type: "meal", Title: "Team dinner", Detail: "Booked for 6"},
				},
			},
			{
				Day:  2,
				Date: "Wed 15 Oct",
				Items: []ItineraryItem{
					{Time: "09:00", Type: "meeting", Title: "Workshop day", Detail: "Full day on site"},
					{Time: "18:00", Type: "hotel", Title: "Motel One Berlin-Mitte", Detail: "Second night"},
				},
			},
			{
				Day:  3,
				Date: "Thu 16 Oct",
				Items: []ItineraryItem{
					{Time: "10:00", Type: "meeting", Title: "Wrap-up and next steps", Detail: "Client office"},
					{Time: "15:40", Type: "flight", Title: "BA 987 BER to LHR", Detail: "Arrives 16:35"},
				},
			},
		},
	}
}

// DemoMarketing is the canned marketing response for t. Copy is an array,
// the others are objects.
func DemoMarketing(t MarketingType) (any, bool) {
	switch t {
	case MarketingCopy:
		return []CopyVariant{
			{Channel: "email", Headline: "Business travel that books itself", Body: "Describe the trip in one line. Get policy-compliant flights and hotels in seconds, with approval built in.", CTA: "Book a demo"},
			{Channel: "linkedin", Headline: "Your travel desk, minus the back-and-forth", Body: "From request to confirmed booking without a single email thread.", CTA: "See how it works"},
			{Channel: "landing", Headline: "Plan. Approve. Fly.", Body: "AI trip planning that knows your travel policy and your calendar.", CTA: "Start free trial"},
		}, true
	case MarketingCalendar:
		return ContentCalendar{
			Campaign: "Autumn launch",
			Weeks: []CalendarWeek{
				{Week: 1, Theme: "The problem with travel requests", Posts: []CalendarPost{
					{Day: "Mon", Channel: "linkedin", Content: "How many emails does it take to book one trip?"},
					{Day: "Thu", Channel: "email", Content: "Teaser: something new for travel managers"},
				}},
				{Week: 2, Theme: "Launch", Posts: []CalendarPost{
					{Day: "Tue", Channel: "landing", Content: "Launch page goes live"},
					{Day: "Wed", Channel: "linkedin", Content: "Demo video: Berlin trip booked in 40 seconds"},
				}},
				{Week: 3, Theme: "Proof", Posts: []CalendarPost{
					{Day: "Tue", Channel: "email", Content: "Customer story: 70% fewer approval chasers"},
				}},
			},
		}, true
	case MarketingLaunch:
		return LaunchPlan{
			ProductName: "Trip Assistant",
			Tagline:     "Business travel, sorted in one sentence",
			Positioning: "The travel assistant that plans within policy and gets approval for you",
			Audiences:   []string{"Travel managers", "Finance teams", "Frequent business travellers"},
			Phases: []LaunchPhase{
				{Name: "Pre-launch", Timing: "Weeks -4 to -1", Activities: []string{"Beta with three design partners", "Collect quotes and metrics"}},
				{Name: "Launch", Timing: "Week 0", Activities: []string{"Press release", "Live demo webinar", "Launch email to waitlist"}},
				{Name: "Post-launch", Timing: "Weeks 1 to 6", Activities: []string{"Case studies", "Partner integrations announcement"}},
			},
			SuccessMetrics: []string{"Demo requests", "Trips booked in first month", "Approval turnaround time"},
		}, true
	}
	return nil, false
}
