package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/config"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/llm"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/service"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/tripflow"
	"go.uber.org/zap"
)

// SessionStreamer pushes a session's snapshots over a long-lived connection
type SessionStreamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial any) error
	CloseSession(sessionID string)
}

// Options carry the optional collaborators of a Handler
type Options struct {
	// Generator is nil when no model API key is configured
	Generator llm.Generator
	Streamer  SessionStreamer
	Brand     config.BrandConfig
	// Ready reports whether downstream dependencies are reachable
	Ready  func(ctx context.Context) error
	Logger *zap.Logger
}

// Handler contains HTTP handlers for the API
type Handler struct {
	tripService service.TripService
	generator   llm.Generator
	streamer    SessionStreamer
	brand       config.BrandConfig
	ready       func(ctx context.Context) error
	logger      *zap.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(tripService service.TripService, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Handler{
		tripService: tripService,
		generator:   opts.Generator,
		streamer:    opts.Streamer,
		brand:       opts.Brand,
		ready:       opts.Ready,
		logger:      opts.Logger,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// EventResponse is returned by POST /api/sessions/{id}/events
type EventResponse struct {
	Accepted bool              `json:"accepted"`
	Snapshot tripflow.Snapshot `json:"snapshot"`
}

// ScenarioSummary is one catalog entry in GET /api/scenarios
type ScenarioSummary struct {
	ID          string `json:"id"`
	Query       string `json:"query"`
	Destination string `json:"destination"`
	IsMultiCity bool   `json:"isMultiCity"`
	Legs        int    `json:"legs,omitempty"`
}

// CreateSession handles POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.tripService.CreateSession(r.Context())
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	respondJSON(w, http.StatusCreated, snap)
}

// GetSession handles GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	snap, err := h.tripService.GetSession(r.Context(), sessionID)
	if err != nil {
		h.sessionError(w, sessionID, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := h.tripService.DeleteSession(r.Context(), sessionID); err != nil {
		h.sessionError(w, sessionID, err)
		return
	}
	if h.streamer != nil {
		h.streamer.CloseSession(sessionID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// DispatchEvent handles POST /api/sessions/{id}/events
func (h *Handler) DispatchEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req tripflow.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ev, err := tripflow.ParseEvent(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, accepted, err := h.tripService.Dispatch(r.Context(), sessionID, ev)
	if err != nil {
		h.sessionError(w, sessionID, err)
		return
	}

	// a rejected event is not an error, the snapshot shows why
	respondJSON(w, http.StatusOK, EventResponse{Accepted: accepted, Snapshot: snap})
}

// SessionStream handles GET /api/sessions/{id}/ws
func (h *Handler) SessionStream(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if h.streamer == nil {
		respondError(w, http.StatusServiceUnavailable, "Live updates are not available")
		return
	}

	snap, err := h.tripService.GetSession(r.Context(), sessionID)
	if err != nil {
		h.sessionError(w, sessionID, err)
		return
	}

	// on failure the upgrader has already written the response
	if err := h.streamer.ServeWS(w, r, sessionID, snap); err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// ListScenarios handles GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := h.tripService.ListScenarios(r.Context())

	summaries := make([]ScenarioSummary, 0, len(scenarios))
	for _, sc := range scenarios {
		summaries = append(summaries, ScenarioSummary{
			ID:          sc.ID,
			Query:       sc.Query,
			Destination: sc.ParsedIntent.DestinationName,
			IsMultiCity: sc.IsMultiCity,
			Legs:        len(sc.Legs),
		})
	}
	respondJSON(w, http.StatusOK, summaries)
}

// ResolveScenario handles GET /api/scenarios/resolve?q=
func (h *Handler) ResolveScenario(w http.ResponseWriter, r *http.Request) {
	sc := h.tripService.ResolveScenario(r.Context(), r.URL.Query().Get("q"))
	respondJSON(w, http.StatusOK, sc)
}

// GetScenario handles GET /api/scenarios/{id}
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := h.tripService.GetScenario(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, service.ErrScenarioNotFound) {
		respondError(w, http.StatusNotFound, "Scenario not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get scenario", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to get scenario")
		return
	}
	respondJSON(w, http.StatusOK, sc)
}

// GetBrand handles GET /api/brand
func (h *Handler) GetBrand(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.brand)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Livez handles GET /livez
func (h *Handler) Livez(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readyz handles GET /readyz
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.Error(err))
			respondError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) sessionError(w http.ResponseWriter, sessionID string, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	h.logger.Error("session operation failed", zap.String("session_id", sessionID), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
