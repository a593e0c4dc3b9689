package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
)

const maxTokens = 1024

type Adapter struct {
	client anthropicsdk.Client
	model  string
	log    zerolog.Logger
}

// NewAdapter accepts extra request options so tests can point the client at a
// local server.
func NewAdapter(apiKey, model string, log zerolog.Logger, opts ...option.RequestOption) *Adapter {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Adapter{
		client: anthropicsdk.NewClient(opts...),
		model:  model,
		log:    log.With().Str("component", "anthropic").Str("model", model).Logger(),
	}
}

func (a *Adapter) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(a.model),
		MaxTokens: maxTokens,
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	a.log.Debug().
		Str("stop_reason", string(msg.StopReason)).
		Int64("output_tokens", msg.Usage.OutputTokens).
		Msg("anthropic message")

	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("anthropic returned no text")
	}
	return sb.String(), nil
}
