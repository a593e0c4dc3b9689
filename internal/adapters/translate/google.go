package translate

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	translatev2 "google.golang.org/api/translate/v2"
)

// BatchClient translates a batch in one round trip. Unlike the translator
// port it reports failures, so callers can decide what to cache.
type BatchClient interface {
	TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error)
}

// GoogleClient calls Cloud Translation v2 with an API key.
type GoogleClient struct {
	svc *translatev2.Service
}

// NewGoogleClient builds the v2 service authenticated by apiKey. Extra
// options (for example option.WithEndpoint) are applied after the key.
func NewGoogleClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GoogleClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := translatev2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create translate service: %w", err)
	}
	return &GoogleClient{svc: svc}, nil
}

func (g *GoogleClient) TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error) {
	resp, err := g.svc.Translations.Translate(&translatev2.TranslateTextRequest{
		Q:      texts,
		Target: target,
		Format: "text",
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("translate request: %w", err)
	}
	if len(resp.Translations) != len(texts) {
		return nil, fmt.Errorf("translate API returned %d translations for %d texts", len(resp.Translations), len(texts))
	}
	out := make([]string, len(resp.Translations))
	for i, item := range resp.Translations {
		out[i] = item.TranslatedText
	}
	return out, nil
}
