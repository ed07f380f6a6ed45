package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/config"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/handlers"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configure the middleware stack
type Options struct {
	CORS config.CORSConfig
	// LLMRequestsPerMinute and LLMBurst limit each client IP on the model routes
	LLMRequestsPerMinute int
	LLMBurst             int
	// TrustProxyHeaders takes the client IP from proxy headers instead of RemoteAddr
	TrustProxyHeaders bool
	Logger            *zap.Logger
}

// OptionsFromConfig maps the server config onto router options
func OptionsFromConfig(cfg *config.Config, logger *zap.Logger) Options {
	return Options{
		CORS:                 cfg.CORS,
		LLMRequestsPerMinute: cfg.LLM.RequestsPerMinute,
		LLMBurst:             cfg.LLM.Burst,
		TrustProxyHeaders:    cfg.Server.TrustProxyHeaders,
		Logger:               logger,
	}
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := mux.NewRouter()
	r.Use(requestLogger(opts.Logger))

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Sessions
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.DeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/events", h.DispatchEvent).Methods(http.MethodPost)

	// WebSocket for real-time updates
	api.HandleFunc("/sessions/{id}/ws", h.SessionStream).Methods(http.MethodGet)

	// Scenarios and branding
	api.HandleFunc("/scenarios", h.ListScenarios).Methods(http.MethodGet)
	api.HandleFunc("/scenarios/resolve", h.ResolveScenario).Methods(http.MethodGet)
	api.HandleFunc("/scenarios/{id}", h.GetScenario).Methods(http.MethodGet)
	api.HandleFunc("/brand", h.GetBrand).Methods(http.MethodGet)

	// Model proxies check the method themselves so a 405 still carries a JSON body
	limiter := newIPRateLimiter(perMinute(opts.LLMRequestsPerMinute), opts.LLMBurst, opts.Logger)
	limiter.trustProxy = opts.TrustProxyHeaders
	api.Handle("/plan-trip", limiter.Middleware(http.HandlerFunc(h.PlanTrip)))
	api.Handle("/marketing-generate", limiter.Middleware(http.HandlerFunc(h.MarketingGenerate)))

	// Canned fallbacks
	api.HandleFunc("/demo/plan-trip", h.DemoPlanTrip).Methods(http.MethodGet)
	api.HandleFunc("/demo/marketing/{type}", h.DemoMarketing).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.Livez).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.Readyz).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.CORS.AllowedOrigins,
		AllowedMethods: opts.CORS.AllowedMethods,
		AllowedHeaders: opts.CORS.AllowedHeaders,
		ExposedHeaders: []string{"X-Generation-Error", "X-Fallback"},
	})
	return c.Handler(r)
}

func perMinute(n int) rate.Limit {
	if n <= 0 {
		return rate.Inf
	}
	return rate.Every(time.Minute / time.Duration(n))
}
