package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// OllamaAdapter generates text with a self-hosted Ollama model.
type OllamaAdapter struct {
	baseURL    string
	model      string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewOllamaAdapter expects a full base URL such as http://10.0.0.5:11434.
func NewOllamaAdapter(baseURL, model string, log zerolog.Logger) *OllamaAdapter {
	return &OllamaAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{},
		log:        log.With().Str("component", "ollama").Logger(),
	}
}

func (o *OllamaAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	// deadline comes from ctx; the caller owns the timeout
	raw, err := o.sendRequest(ctx, buildAIRequest(o.model, prompt))
	if err != nil {
		return "", err
	}
	defer raw.Body.Close()

	return o.parseNonStreamResponse(raw)
}

func (o *OllamaAdapter) sendRequest(ctx context.Context, payload AIRequest) (*http.Response, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal ollama request: %w", err)
	}

	url := o.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := o.httpClient.Do(req)
	if err != nil {
		o.log.Error().Err(err).Msg("Error connecting to Ollama API")
		return nil, fmt.Errorf("ollama API connection error: %w", err)
	}

	if raw.StatusCode != http.StatusOK {
		defer raw.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(raw.Body, 4096))
		return nil, fmt.Errorf("ollama API error: %d - %s", raw.StatusCode, string(body))
	}

	return raw, nil
}

func (o *OllamaAdapter) parseNonStreamResponse(resp *http.Response) (string, error) {
	var ollamaResp AIResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		o.log.Error().Err(err).Msg("failed to decode ollama response json")
		return "", fmt.Errorf("decode ollama response: %w", err)
	}

	o.log.Debug().
		Str("model", ollamaResp.Model).
		Int("response_len", len(ollamaResp.Response)).
		Msg("ollama response")

	if strings.TrimSpace(ollamaResp.Response) == "" {
		return "", errors.New("ollama returned empty response")
	}
	return ollamaResp.Response, nil
}

func buildAIRequest(model, prompt string) AIRequest {
	return AIRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
		Options: &AIOptions{
			NumPredict:  1024,
			Temperature: 0.4,
		},
	}
}
