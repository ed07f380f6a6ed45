package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/config"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/handlers"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/scenario"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/service"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/tripflow"
	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func testCORS() config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}
}

func setupRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	svc := service.NewTripService(context.Background(), scenario.NewStore(), service.Options{
		Delays: tripflow.Delays{
			Thinking: tripflow.FixedDelay(time.Millisecond),
			Approval: tripflow.FixedDelay(time.Millisecond),
			Booking:  tripflow.FixedDelay(time.Millisecond),
		},
		Logger: zap.NewNop(),
	})
	t.Cleanup(svc.Close)

	opts.CORS = testCORS()
	opts.Logger = zap.NewNop()
	return SetupRouter(handlers.NewHandler(svc, handlers.Options{}), opts)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_BerlinBookingOverHTTP(t *testing.T) {
	h := setupRouter(t, Options{})

	rec := do(t, h, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var snap tripflow.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	id := snap.SessionID

	send := func(body string) handlers.EventResponse {
		rec := do(t, h, http.MethodPost, "/api/sessions/"+id+"/events", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp handlers.EventResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return resp
	}
	current := func() tripflow.Snapshot {
		rec := do(t, h, http.MethodGet, "/api/sessions/"+id, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var s tripflow.Snapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
		return s
	}
	waitFor := func(cond func(tripflow.Snapshot) bool) tripflow.Snapshot {
		var s tripflow.Snapshot
		require.Eventually(t, func() bool {
			s = current()
			return cond(s)
		}, 2*time.Second, 5*time.Millisecond)
		return s
	}

	resp := send(`{"type":"submit","query":"Berlin next Tuesday, back Thursday"}`)
	require.True(t, resp.Accepted)
	assert.Equal(t, scenario.BerlinID, resp.Snapshot.Scenario.ID)

	waitFor(func(s tripflow.Snapshot) bool { return s.State == tripflow.StateResults })

	assert.False(t, send(`{"type":"continue"}`).Accepted)
	require.True(t, send(`{"type":"select_flight","flightId":"ber-fastest"}`).Accepted)

	resp = send(`{"type":"continue"}`)
	require.True(t, resp.Accepted)
	require.NotNil(t, resp.Snapshot.Totals)
	assert.Equal(t, models.GBP(360), resp.Snapshot.Totals.Total)

	require.True(t, send(`{"type":"request_approval"}`).Accepted)
	waitFor(func(s tripflow.Snapshot) bool { return s.Actions.CanApprove })
	require.True(t, send(`{"type":"approve"}`).Accepted)

	snap = waitFor(func(s tripflow.Snapshot) bool { return s.State == tripflow.StateConfirmed })
	require.NotNil(t, snap.Confirmation)
	assert.Regexp(t, `^[A-Z0-9-]+$`, snap.Confirmation.Reference)
	assert.Equal(t, scenario.DemoCompany.Email, snap.Confirmation.Email.To)

	rec = do(t, h, http.MethodDelete, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ScenarioPayloadCarriesCompanyAndApprover(t *testing.T) {
	h := setupRouter(t, Options{})

	for _, path := range []string{"/api/scenarios/resolve?q=Berlin", "/api/scenarios/" + scenario.BerlinID} {
		rec := do(t, h, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)

		var body struct {
			ID       string           `json:"id"`
			Company  *models.Company  `json:"company"`
			Approver *models.Approver `json:"approver"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body), path)
		assert.Equal(t, scenario.BerlinID, body.ID)
		require.NotNil(t, body.Company, path)
		assert.Equal(t, scenario.DemoCompany.TravelPolicy, body.Company.TravelPolicy)
		assert.Equal(t, scenario.DemoCompany.NightlyCap, body.Company.NightlyCap)
		require.NotNil(t, body.Approver, path)
		assert.Equal(t, scenario.DemoApprover, *body.Approver)
	}

	rec := do(t, h, http.MethodGet, "/api/scenarios/atlantis", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_HealthEndpoints(t *testing.T) {
	h := setupRouter(t, Options{})
	for _, path := range []string{"/health", "/livez", "/readyz"} {
		rec := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_ModelRoutesReturnJSON405(t *testing.T) {
	h := setupRouter(t, Options{})
	for _, path := range []string{"/api/plan-trip", "/api/marketing-generate"} {
		rec := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.NotEmpty(t, body["error"])
		assert.NotEmpty(t, body["fallback"])
	}
}

func TestRouter_RateLimitsModelRoutes(t *testing.T) {
	h := setupRouter(t, Options{LLMRequestsPerMinute: 1, LLMBurst: 2})

	// no api key configured, so allowed calls fail fast with 500
	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodPost, "/api/plan-trip", `{"query":"Berlin"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	}
	rec := do(t, h, http.MethodPost, "/api/plan-trip", `{"query":"Berlin"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// other routes are not limited
	rec = do(t, h, http.MethodGet, "/api/scenarios", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func postFrom(h http.Handler, remote, forwarded string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/plan-trip", strings.NewReader(`{"query":"Berlin"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remote
	req.Header.Set("X-Forwarded-For", forwarded)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRouter_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	h := setupRouter(t, Options{LLMRequestsPerMinute: 1, LLMBurst: 1})

	limited := 0
	for i := 0; i < 20; i++ {
		if postFrom(h, "192.0.2.10:4000", fmt.Sprintf("203.0.113.%d", i)) == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 19, limited)
}

func TestRouter_RateLimitTrustsProxyHeadersWhenEnabled(t *testing.T) {
	h := setupRouter(t, Options{LLMRequestsPerMinute: 1, LLMBurst: 1, TrustProxyHeaders: true})

	assert.Equal(t, http.StatusInternalServerError, postFrom(h, "10.0.0.1:80", "203.0.113.1"))
	assert.Equal(t, http.StatusInternalServerError, postFrom(h, "10.0.0.1:80", "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, postFrom(h, "10.0.0.1:80", "203.0.113.1"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := setupRouter(t, Options{})

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIPRateLimiter_EvictsIdleVisitors(t *testing.T) {
	l := newIPRateLimiter(rate.Every(time.Minute), 1, zap.NewNop())
	now := time.Now()
	l.now = func() time.Time { return now }

	a := l.getLimiter("10.0.0.1")
	assert.Same(t, a, l.getLimiter("10.0.0.1"))

	now = now.Add(limiterIdleTTL + time.Second)
	l.getLimiter("10.0.0.2")
	assert.Len(t, l.visitors, 1)
	assert.NotSame(t, a, l.getLimiter("10.0.0.1"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remote     string
		trustProxy bool
		want       string
	}{
		{"remote addr", nil, "192.0.2.1:5555", false, "192.0.2.1"},
		{"forwarded ignored by default", map[string]string{"X-Forwarded-For": "203.0.113.9"}, "10.0.0.1:80", false, "10.0.0.1"},
		{"real ip ignored by default", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.1:80", false, "10.0.0.1"},
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.1:80", true, "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.1:80", true, "198.51.100.4"},
		{"trusted without headers", nil, "10.0.0.1:80", true, "10.0.0.1"},
		{"no port", nil, "192.0.2.7", false, "192.0.2.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trustProxy))
		})
	}
}

func TestPerMinute(t *testing.T) {
	assert.Equal(t, rate.Inf, perMinute(0))
	assert.Equal(t, rate.Every(3*time.Second), perMinute(20))
}
