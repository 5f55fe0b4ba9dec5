package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"
)

type OpenAIGenerator struct {
	client      openai.Client
	model       string
	temperature float64
}

func NewOpenAIGenerator(apiKey, model string, temperature float32) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingCredential)
	}

	return &OpenAIGenerator{
		client:      openai.NewClient(openaioption.WithAPIKey(apiKey)),
		model:       model,
		temperature: float64(temperature),
	}, nil
}

func (o *OpenAIGenerator) Generate(ctx context.Context, text string) Reply {
	prompt, err := buildTeacherPrompt(text)
	if err != nil {
		return Failed(err)
	}

	res, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       o.model,
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		return Failed(fmt.Errorf("openai request failed: %w", err))
	}

	if len(res.Choices) == 0 {
		return Failed(fmt.Errorf("openai returned no choices"))
	}

	return Replied(strings.TrimSpace(res.Choices[0].Message.Content))
}
