package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/ports"
)

const (
	promptTransactionLimit = 6
	defaultGenerateTimeout = 20 * time.Second
)

// InsightInput is everything the merger needs for one request.
type InsightInput struct {
	Message         string
	Metrics         domain.Metrics
	Culture         domain.CultureProfile
	CultureName     string
	Language        domain.LanguageProfile
	Scenario        domain.Scenario
	BaselineSummary string
	BaselineActions []domain.Action
}

// InsightMerger asks the generative collaborator for a better narrative and
// lays whatever validates over the baseline.
type InsightMerger struct {
	generator ports.GeneratorPort
	parser    ports.InsightParserPort
	timeout   time.Duration
	sem       chan struct{} // limit concurrent model calls
	log       zerolog.Logger
}

func NewInsightMerger(gen ports.GeneratorPort, parser ports.InsightParserPort, timeout time.Duration, maxConcurrent int, log zerolog.Logger) *InsightMerger {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &InsightMerger{
		generator: gen,
		parser:    parser,
		timeout:   timeout,
		sem:       make(chan struct{}, maxConcurrent),
		log:       log,
	}
}

// Enabled is false when no generative collaborator is wired.
func (m *InsightMerger) Enabled() bool {
	return m != nil && m.generator != nil && m.parser != nil
}

// Merge never fails: every collaborator problem ends in the baseline.
func (m *InsightMerger) Merge(ctx context.Context, in InsightInput) (string, []domain.Action) {
	summary, actions := in.BaselineSummary, in.BaselineActions
	if !m.Enabled() {
		return summary, actions
	}

	raw, err := m.generate(ctx, buildPrompt(in))
	if err != nil {
		m.log.Warn().Err(err).Msg("generative insight unavailable, using baseline")
		return summary, actions
	}

	insight, err := m.parser.Parse(raw)
	if err != nil {
		m.log.Warn().Err(err).Int("raw_len", len(raw)).Msg("generative insight rejected, using baseline")
		return summary, actions
	}

	if insight.Summary != "" {
		summary = insight.Summary
	}
	if len(insight.Actions) > 0 {
		actions = insight.Actions
	}
	m.log.Debug().
		Bool("summary_replaced", insight.Summary != "").
		Int("ai_actions", len(insight.Actions)).
		Msg("generative insight merged")
	return summary, actions
}

func (m *InsightMerger) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	select {
	case m.sem <- struct{}{}:
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for model slot: %w", ctx.Err())
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		// the slot is held until the call returns, even after the caller gave up
		defer func() { <-m.sem }()
		text, err := m.generator.Generate(ctx, prompt)
		done <- result{text, err}
	}()

	// adapters should honour ctx, but a stuck one must not hold the request
	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("model call: %w", ctx.Err())
	}
}

func buildPrompt(in InsightInput) string {
	cultureLine := "Not specified"
	if in.CultureName != "" {
		notes, _ := json.Marshal(in.Culture)
		cultureLine = fmt.Sprintf("%s (notes: %s)", in.CultureName, notes)
	}
	language := in.Language.PromptName
	if language == "" {
		language = "English"
	}
	message := in.Message
	if message == "" {
		message = "No specific question provided."
	}
	largest := "n/a"
	if in.Metrics.LargestCategory != nil {
		largest = *in.Metrics.LargestCategory
	}

	recent := in.Scenario.Transactions
	if len(recent) > promptTransactionLimit {
		recent = recent[:promptTransactionLimit]
	}
	chartJSON, _ := json.Marshal(in.Metrics.Chart)
	recentJSON, _ := json.Marshal(recent)

	return fmt.Sprintf(`You are FinBridge, a multicultural financial advisor.

Ground your response in the data provided and produce JSON that follows this schema exactly:
{
  "summary": string,
  "actions": [
    { "label": string, "followUp": string, "intent": "save" | "plan" | "learn" }
  ]
}

- The summary must be 1-2 English sentences that reference the user's finances and offer a culturally aware recommendation.
- Provide 3 actionable chips that align with the financial situation. Each label should be concise. The followUp text should be a specific prompt we can send back to you for deeper guidance.
- Use the intents evenly when it makes sense (at least one of each where relevant).
- The followUp text should stay in English so the assistant can understand it, but labels can reference cultural concepts.
- Do not wrap the JSON in code fences, markdown, or additional commentary.

Conversation details:
- User message: %s
- User cultural background: %s
- Preferred language (for final localization): %s

Financial snapshot to reference:
- Currency: %s
- Income this period: %.2f
- Expenses this period: %.2f
- Savings delta: %.2f
- Largest expense category: %s
- Expense categories (top): %s
- Recent transactions: %s
`,
		message, cultureLine, language,
		in.Metrics.KPIs.Currency,
		in.Metrics.KPIs.Income, in.Metrics.KPIs.Expenses, in.Metrics.KPIs.Savings,
		largest, chartJSON, recentJSON,
	)
}
