package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/juniorlingo/english-agent/internal/config"
	"google.golang.org/api/option"
)

// NewPrimaryGenerator builds the generator selected by cfg.Provider. It returns
// ErrMissingCredential when the provider has no API key, in which case the
// caller runs on fallback replies only.
func NewPrimaryGenerator(ctx context.Context, cfg config.ReplyConfig) (ReplyGenerator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		g, err := NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		g, err := NewGeminiGenerator(ctx, cfg.GoogleAPIKey, cfg.GeminiModel, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string, temperature float32) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingCredential)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Close() error {
	if err := g.client.Close(); err != nil {
		return fmt.Errorf("error closing GenAI client: %w", err)
	}
	slog.Info("GenAI client closed")
	return nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, text string) Reply {
	prompt, err := buildTeacherPrompt(text)
	if err != nil {
		return Failed(err)
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Failed(fmt.Errorf("gemini request failed: %w", err))
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Failed(fmt.Errorf("gemini returned no candidates"))
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			reply.WriteString(string(txt))
		} else {
			slog.Debug("gemini response part was not text", "type", fmt.Sprintf("%T", part))
		}
	}

	return Replied(strings.TrimSpace(reply.String()))
}
