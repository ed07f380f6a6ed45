package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingQuery       = errors.New("query is required")
	ErrMissingProductName = errors.New("productName is required")
	ErrInvalidType        = errors.New("type must be one of copy, calendar, launch")
)

// MarketingType selects which marketing artefact is generated
type MarketingType string

const (
	MarketingCopy     MarketingType = "copy"
	MarketingCalendar MarketingType = "calendar"
	MarketingLaunch   MarketingType = "launch"
)

// Valid reports whether t is a known marketing type
func (t MarketingType) Valid() bool {
	switch t {
	case MarketingCopy, MarketingCalendar, MarketingLaunch:
		return true
	}
	return false
}

// PlanTripRequest is the body of POST /api/plan-trip
type PlanTripRequest struct {
	Query string `json:"query"`
}

func (r PlanTripRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrMissingQuery
	}
	return nil
}

// MarketingRequest is the body of POST /api/marketing-generate
type MarketingRequest struct {
	Type           MarketingType  `json:"type"`
	ProductName    string         `json:"productName"`
	ProductContext map[string]any `json:"productContext,omitempty"`
}

func (r MarketingRequest) Validate() error {
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(r.ProductName) == "" {
		return ErrMissingProductName
	}
	return nil
}

// Prompt is one upstream call: a system instruction plus the user turn
type Prompt struct {
	System string
	User   string
}

const planTripSystem = `You are a corporate travel planner for a business-travel product.
Reply with a single JSON object and nothing else. No markdown fences.
Schema:
{
  "summary": {
    "destination": string,
    "dates": string,
    "travellers": number,
    "estimatedCost": number,
    "currency": "GBP",
    "highlights": [string]
  },
  "itinerary": [
    {
      "day": number,
      "date": string,
      "items": [
        {"time": string, "type": "flight"|"hotel"|"meeting"|"meal"|"transfer"|"activity", "title": string, "detail": string}
      ]
    }
  ]
}
Respect typical corporate policy: economy for short-haul, hotels under the nightly cap, meetings inside working hours.`

const marketingSystemBase = `You write launch and marketing material for a travel technology product.
Reply with raw JSON only. No markdown fences, no commentary.
`

var marketingSchemas = map[MarketingType]string{
	MarketingCopy: `Return a JSON array of 3 to 5 variants:
[
  {"channel": "email"|"linkedin"|"twitter"|"landing", "headline": string, "body": string, "cta": string}
]`,
	MarketingCalendar: `Return a JSON object:
{
  "campaign": string,
  "weeks": [
    {"week": number, "theme": string, "posts": [{"day": string, "channel": string, "content": string}]}
  ]
}`,
	MarketingLaunch: `Return a JSON object:
{
  "productName": string,
  "tagline": string,
  "positioning": string,
  "audiences": [string],
  "phases": [{"name": string, "timing": string, "activities": [string]}],
  "successMetrics": [string]
}`,
}

// PlanTripPrompt builds the plan-trip call
func PlanTripPrompt(req PlanTripRequest) Prompt {
	return Prompt{
		System: planTripSystem,
		User:   fmt.Sprintf("Plan this business trip: %s", strings.TrimSpace(req.Query)),
	}
}

// MarketingPrompt builds the marketing call. The schema for req.Type is
// part of the system instruction.
func MarketingPrompt(req MarketingRequest) (Prompt, error) {
	schema, ok := marketingSchemas[req.Type]
	if !ok {
		return Prompt{}, ErrInvalidType
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Product: %s\n", strings.TrimSpace(req.ProductName))
	if len(req.ProductContext) > 0 {
		ctx, err := json.Marshal(req.ProductContext)
		if err != nil {
			return Prompt{}, fmt.Errorf("failed to encode product context: %w", err)
		}
		fmt.Fprintf(&user, "Context: %s\n", ctx)
	}
	fmt.Fprintf(&user, "Generate the %s.", req.Type)

	return Prompt{
		System: marketingSystemBase + schema,
		User:   user.String(),
	}, nil
}

// CheckPlanTrip reports whether text is a complete plan-trip document
func CheckPlanTrip(text string) error {
	var doc struct {
		Summary   json.RawMessage `json:"summary"`
		Itinerary []any           `json:"itinerary"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &doc); err != nil {
		return fmt.Errorf("model output is not valid JSON: %w", err)
	}
	if len(doc.Summary) == 0 || doc.Itinerary == nil {
		return errors.New("model output is missing summary or itinerary")
	}
	return nil
}

// CheckMarketing reports whether text has the top-level shape t expects:
// an array for copy, an object otherwise
func CheckMarketing(t MarketingType, text string) error {
	var v any
	if err := json.Unmarshal([]byte(stripFences(text)), &v); err != nil {
		return fmt.Errorf("model output is not valid JSON: %w", err)
	}
	switch v.(type) {
	case []any:
		if t != MarketingCopy {
			return fmt.Errorf("expected an object for %s, got an array", t)
		}
	case map[string]any:
		if t == MarketingCopy {
			return errors.New("expected an array for copy, got an object")
		}
	default:
		return errors.New("model output is not an object or array")
	}
	return nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
