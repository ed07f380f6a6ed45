package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Generator streams one model completion. emit is called for every text
// chunk in order; an emit error aborts the stream and is returned.
type Generator interface {
	Stream(ctx context.Context, p Prompt, emit func(chunk string) error) error
}

// GeminiGenerator is a Generator backed by the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model, logger: logger}, nil
}

// Stream makes exactly one streaming call. There is no retry.
func (g *GeminiGenerator) Stream(ctx context.Context, p Prompt, emit func(chunk string) error) error {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"
	if p.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}
	}

	iter := model.GenerateContentStream(ctx, genai.Text(p.User))
	chunks := 0
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			g.logger.Debug("gemini stream finished", zap.String("model", g.model), zap.Int("chunks", chunks))
			return nil
		}
		if err != nil {
			return fmt.Errorf("gemini stream error: %w", err)
		}
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				text, ok := part.(genai.Text)
				if !ok || text == "" {
					continue
				}
				chunks++
				if err := emit(string(text)); err != nil {
					return err
				}
			}
		}
	}
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

type timeoutGenerator struct {
	next    Generator
	timeout time.Duration
}

// WithTimeout bounds every call to g by d. A non-positive d returns g as is.
func WithTimeout(g Generator, d time.Duration) Generator {
	if d <= 0 {
		return g
	}
	return timeoutGenerator{next: g, timeout: d}
}

func (g timeoutGenerator) Stream(ctx context.Context, p Prompt, emit func(string) error) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.next.Stream(ctx, p, emit)
}
