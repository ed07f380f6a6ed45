package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTripRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, PlanTripRequest{}.Validate(), ErrMissingQuery)
	assert.ErrorIs(t, PlanTripRequest{Query: "   "}.Validate(), ErrMissingQuery)
	assert.NoError(t, PlanTripRequest{Query: "Berlin next week"}.Validate())
}

func TestMarketingRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  MarketingRequest
		err  error
	}{
		{"valid copy", MarketingRequest{Type: MarketingCopy, ProductName: "Trips"}, nil},
		{"valid launch", MarketingRequest{Type: MarketingLaunch, ProductName: "Trips"}, nil},
		{"unknown type", MarketingRequest{Type: "poster", ProductName: "Trips"}, ErrInvalidType},
		{"missing type", MarketingRequest{ProductName: "Trips"}, ErrInvalidType},
		{"missing product", MarketingRequest{Type: MarketingCalendar}, ErrMissingProductName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestMarketingPrompt(t *testing.T) {
	p, err := MarketingPrompt(MarketingRequest{
		Type:           MarketingCopy,
		ProductName:    "Trip Assistant",
		ProductContext: map[string]any{"audience": "travel managers"},
	})
	require.NoError(t, err)
	assert.Contains(t, p.System, "JSON array")
	assert.Contains(t, p.User, "Trip Assistant")
	assert.Contains(t, p.User, `"audience":"travel managers"`)

	p, err = MarketingPrompt(MarketingRequest{Type: MarketingLaunch, ProductName: "X"})
	require.NoError(t, err)
	assert.Contains(t, p.System, `"successMetrics"`)
	assert.NotContains(t, p.User, "Context:")

	_, err = MarketingPrompt(MarketingRequest{Type: "nope", ProductName: "X"})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestPlanTripPrompt(t *testing.T) {
	p := PlanTripPrompt(PlanTripRequest{Query: "  Berlin on Tuesday "})
	assert.Contains(t, p.System, `"itinerary"`)
	assert.Equal(t, "Plan this business trip: Berlin on Tuesday", p.User)
}

func TestCheckPlanTrip(t *testing.T) {
	assert.NoError(t, CheckPlanTrip(`{"summary":{"destination":"Berlin"},"itinerary":[]}`))
	assert.NoError(t, CheckPlanTrip("```json\n{\"summary\":{},\"itinerary\":[{}]}\n```"))
	assert.Error(t, CheckPlanTrip(`{"summary":{}}`))
	assert.Error(t, CheckPlanTrip(`Sure! Here is your trip`))
	assert.Error(t, CheckPlanTrip(`{"summary":{},"itinerary":[`))
}

func TestCheckMarketing(t *testing.T) {
	tests := []struct {
		name    string
		typ     MarketingType
		text    string
		wantErr bool
	}{
		{"copy array", MarketingCopy, `[{"headline":"a"}]`, false},
		{"copy object", MarketingCopy, `{"headline":"a"}`, true},
		{"calendar object", MarketingCalendar, `{"weeks":[]}`, false},
		{"launch array", MarketingLaunch, `[]`, true},
		{"not json", MarketingLaunch, `launch plan:`, true},
		{"scalar", MarketingCalendar, `42`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMarketing(tt.typ, tt.text)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDemoContentMatchesSchemas(t *testing.T) {
	data, err := json.Marshal(DemoTripPlan())
	require.NoError(t, err)
	assert.NoError(t, CheckPlanTrip(string(data)))

	for _, typ := range []MarketingType{MarketingCopy, MarketingCalendar, MarketingLaunch} {
		v, ok := DemoMarketing(typ)
		require.True(t, ok, typ)
		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NoError(t, CheckMarketing(typ, string(data)), typ)
	}

	_, ok := DemoMarketing("poster")
	assert.False(t, ok)
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "gemini-1.5-flash", nil)
	assert.Error(t, err)
}

type blockingGenerator struct{}

func (blockingGenerator) Stream(ctx context.Context, p Prompt, emit func(string) error) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	g := WithTimeout(blockingGenerator{}, 10*time.Millisecond)
	err := g.Stream(context.Background(), Prompt{}, func(string) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, Generator(blockingGenerator{}), WithTimeout(blockingGenerator{}, 0))
}
