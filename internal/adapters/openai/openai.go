package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openaisdk "github.com/sashabaranov/go-openai"
)

// Adapter talks to any OpenAI-compatible chat completion endpoint. Gemini is
// served through the same adapter with Gemini's compatibility base URL.
type Adapter struct {
	client *openaisdk.Client
	model  string
	log    zerolog.Logger
}

// NewAdapter builds the client. baseURL may be empty for api.openai.com.
func NewAdapter(apiKey, baseURL, model string, log zerolog.Logger) *Adapter {
	cfg := openaisdk.DefaultConfig(apiKey)
	if baseURL != "" {
		// the client appends "/chat/completions" itself
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Adapter{
		client: openaisdk.NewClientWithConfig(cfg),
		model:  model,
		log:    log.With().Str("component", "openai").Str("model", model).Logger(),
	}
}

func (a *Adapter) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openaisdk.ChatCompletionRequest{
		Model: a.model,
		Messages: []openaisdk.ChatCompletionMessage{
			{Role: openaisdk.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
		ResponseFormat: &openaisdk.ChatCompletionResponseFormat{
			Type: openaisdk.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	a.log.Debug().
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("chat completion")

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return text, nil
}
