package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/llm"
	"go.uber.org/zap"
)

const (
	planTripFallback  = "/api/demo/plan-trip"
	marketingFallback = "/api/demo/marketing/"

	// set as trailers when the stream started but the output turned out unusable
	trailerGenerationError = "X-Generation-Error"
	trailerFallback        = "X-Fallback"
)

// GenerationError is the body of every failed LLM proxy call. Fallback
// points at deterministic canned content for the same request.
type GenerationError struct {
	Error    string `json:"error"`
	Fallback string `json:"fallback"`
}

func respondGenerationError(w http.ResponseWriter, status int, message, fallback string) {
	respondJSON(w, status, GenerationError{Error: message, Fallback: fallback})
}

func marketingFallbackFor(t llm.MarketingType) string {
	if !t.Valid() {
		t = llm.MarketingCopy
	}
	return marketingFallback + string(t)
}

// PlanTrip handles POST /api/plan-trip
func (h *Handler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respondGenerationError(w, http.StatusMethodNotAllowed, "Method not allowed", planTripFallback)
		return
	}
	if h.generator == nil {
		respondGenerationError(w, http.StatusInternalServerError, "GEMINI_API_KEY is not configured", planTripFallback)
		return
	}

	var req llm.PlanTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondGenerationError(w, http.StatusBadRequest, "Invalid request body", planTripFallback)
		return
	}
	if err := req.Validate(); err != nil {
		respondGenerationError(w, http.StatusBadRequest, err.Error(), planTripFallback)
		return
	}

	h.streamCompletion(w, r, "plan-trip", llm.PlanTripPrompt(req), planTripFallback, llm.CheckPlanTrip)
}

// MarketingGenerate handles POST /api/marketing-generate
func (h *Handler) MarketingGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respondGenerationError(w, http.StatusMethodNotAllowed, "Method not allowed", marketingFallbackFor(""))
		return
	}
	if h.generator == nil {
		respondGenerationError(w, http.StatusInternalServerError, "GEMINI_API_KEY is not configured", marketingFallbackFor(""))
		return
	}

	var req llm.MarketingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondGenerationError(w, http.StatusBadRequest, "Invalid request body", marketingFallbackFor(""))
		return
	}
	fallback := marketingFallbackFor(req.Type)
	if err := req.Validate(); err != nil {
		respondGenerationError(w, http.StatusBadRequest, err.Error(), fallback)
		return
	}

	prompt, err := llm.MarketingPrompt(req)
	if err != nil {
		respondGenerationError(w, http.StatusBadRequest, err.Error(), fallback)
		return
	}

	h.streamCompletion(w, r, "marketing-"+string(req.Type), prompt, fallback, func(text string) error {
		return llm.CheckMarketing(req.Type, text)
	})
}

// DemoPlanTrip handles GET /api/demo/plan-trip
func (h *Handler) DemoPlanTrip(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, llm.DemoTripPlan())
}

// DemoMarketing handles GET /api/demo/marketing/{type}
func (h *Handler) DemoMarketing(w http.ResponseWriter, r *http.Request) {
	content, ok := llm.DemoMarketing(llm.MarketingType(mux.Vars(r)["type"]))
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown marketing type")
		return
	}
	respondJSON(w, http.StatusOK, content)
}

// streamCompletion relays model chunks as text/plain. Until the first chunk
// arrives failures are reported as a JSON error; after that the status is
// already sent, so problems are reported in trailers.
func (h *Handler) streamCompletion(w http.ResponseWriter, r *http.Request, kind string, prompt llm.Prompt, fallback string, check func(string) error) {
	logger := h.logger.With(zap.String("generation", kind))
	rc := http.NewResponseController(w)

	var body strings.Builder
	started := false
	emit := func(chunk string) error {
		if !started {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Trailer", trailerGenerationError+", "+trailerFallback)
			w.WriteHeader(http.StatusOK)
			started = true
		}
		body.WriteString(chunk)
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
		return nil
	}

	err := h.generator.Stream(r.Context(), prompt, emit)
	if !started {
		if err == nil {
			err = errors.New("empty model output")
		}
		logger.Error("generation failed", zap.Error(err))
		respondGenerationError(w, http.StatusInternalServerError, "Failed to generate content", fallback)
		return
	}

	if err == nil {
		err = check(body.String())
	}
	if err != nil {
		logger.Warn("generation produced unusable output", zap.Error(err), zap.Int("bytes", body.Len()))
		w.Header().Set(trailerGenerationError, "Failed to generate content")
		w.Header().Set(trailerFallback, fallback)
		return
	}
	logger.Info("generation streamed", zap.Int("bytes", body.Len()))
}
