package ports

import "context"

type GeneratorPort interface {
	// Generate returns the model's raw text for a prompt. The text is untrusted
	// and may or may not contain JSON.
	Generate(ctx context.Context, prompt string) (string, error)
}
