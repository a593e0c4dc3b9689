package ports

import "context"

type TranslatorPort interface {
	// Translate returns one string per input, in order. It never fails: on any
	// error the input comes back unchanged.
	Translate(ctx context.Context, texts []string, target string) []string
}
