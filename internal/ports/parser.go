package ports

import "github.com/finbridge-app/advisory-service/internal/domain"

type InsightParserPort interface {
	// Parse validates free-form model output. A non-nil error means the text
	// holds no usable insight and the caller keeps its baseline.
	Parse(raw string) (domain.Insight, error)
}
