package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/finbridge-app/advisory-service/internal/config"
	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/pkg/seededrand"
	"github.com/finbridge-app/advisory-service/internal/ports"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStoreUnavailable = errors.New("transaction store unavailable")
)

const defaultUserID = "default"

type Option func(*AIService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *AIService) { s.now = now }
}

// WithRandom replaces the seeded random source factory.
func WithRandom(newRandom func(seed string) RandomSource) Option {
	return func(s *AIService) { s.newRandom = newRandom }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *AIService) { s.log = log }
}

// AIService runs the advisory pipeline:
// store -> scenario -> metrics -> baseline -> insight merge -> localization.
type AIService struct {
	store      ports.TransactionStorePort
	users      ports.UserStorePort
	insights   *InsightMerger
	translator ports.TranslatorPort
	tables     *config.Tables

	now       func() time.Time
	newRandom func(seed string) RandomSource
	log       zerolog.Logger
}

// NewAIService wires the pipeline. insights and translator may be nil, which
// means "baseline only" and "no localization" respectively.
func NewAIService(store ports.TransactionStorePort, users ports.UserStorePort, insights *InsightMerger, translator ports.TranslatorPort, tables *config.Tables, opts ...Option) *AIService {
	s := &AIService{
		store:      store,
		users:      users,
		insights:   insights,
		translator: translator,
		tables:     tables,
		now:        time.Now,
		newRandom:  func(seed string) RandomSource { return seededrand.New(seed) },
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Advise produces the full advice response. Only store failures surface as
// errors; collaborator problems degrade to the baseline.
func (s *AIService) Advise(ctx context.Context, req domain.AdviceRequest) (*domain.AdviceResponse, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = defaultUserID
	}
	log := s.log.With().Str("user_id", userID).Logger()

	language, culture := s.preferences(ctx, userID, req.Language, req.Culture)
	lang := s.tables.Language(language)
	cultureName, cultureProfile := s.tables.Culture(culture)

	message := req.Message
	if lang.NeedsTranslation() && strings.TrimSpace(message) != "" && s.translator != nil {
		if out := s.translator.Translate(ctx, []string{message}, "en"); len(out) == 1 {
			message = out[0]
		}
	}

	ledger, err := s.ledgerWithFallback(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The timestamp makes each request unique; identical requests are not
	// meant to replay the same synthetic history.
	now := s.now()
	seed := fmt.Sprintf("%s-%d-%s", message, now.UnixMilli(), userID)
	scenario := GenerateScenario(ledger.Transactions, ledger.Currency, message, s.newRandom(seed), now)

	metrics := DeriveMetrics(scenario.Transactions, scenario.Currency, lang.Locale)
	summary, actions := ComposeBaseline(metrics, cultureProfile, cultureName, scenario.Currency, lang.Locale)

	summary, actions = s.insights.Merge(ctx, InsightInput{
		Message:         message,
		Metrics:         metrics,
		Culture:         cultureProfile,
		CultureName:     cultureName,
		Language:        lang,
		Scenario:        scenario,
		BaselineSummary: summary,
		BaselineActions: actions,
	})

	result := domain.AdviceResult{
		Summary: summary,
		KPIs:    metrics.KPIs,
		Chart:   metrics.Chart,
		Pie:     metrics.Pie,
		Table:   metrics.Table,
		Actions: actions,
	}
	localized := LocalizeResult(ctx, s.translator, result, lang)

	log.Info().
		Str("language", lang.Code).
		Str("culture", cultureName).
		Int("transactions", len(scenario.Transactions)).
		Int("actions", len(localized.Actions)).
		Msg("advice generated")

	return &domain.AdviceResponse{Reply: localized.Summary, UI: localized}, nil
}

// Transactions returns the user's base ledger, or the default one.
func (s *AIService) Transactions(ctx context.Context, userID string) (*domain.Ledger, error) {
	ledger, err := s.lookup(ctx, userID, defaultUserID)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger for %q: %w", userID, ErrNotFound)
	}
	return ledger, nil
}

// Translate exposes the translator directly; it falls back to identity.
func (s *AIService) Translate(ctx context.Context, texts []string, target string) ([]string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("target language is required: %w", ErrInvalidArgument)
	}
	if s.translator == nil {
		return append([]string{}, texts...), nil
	}
	return s.translator.Translate(ctx, texts, target), nil
}

func (s *AIService) User(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	if s.users == nil {
		return nil, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	prefs, err := s.users.User(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", userID, err)
	}
	if prefs == nil {
		return nil, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	return prefs, nil
}

func (s *AIService) SaveUser(ctx context.Context, prefs domain.UserPreferences) error {
	prefs.UserID = strings.TrimSpace(prefs.UserID)
	if prefs.UserID == "" {
		return fmt.Errorf("user id is required: %w", ErrInvalidArgument)
	}
	if s.users == nil {
		return errors.New("user preferences are not supported by this store")
	}
	if err := s.users.SaveUser(ctx, prefs); err != nil {
		return fmt.Errorf("save user %q: %w", prefs.UserID, err)
	}
	return nil
}

func (s *AIService) Check(ctx context.Context, name string) (bool, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "advisory"
	}
	if s.store == nil || s.tables == nil {
		return false, "DOWN: " + name + " (no transaction store)"
	}
	ai := "baseline-only"
	if s.insights.Enabled() {
		ai = "generative"
	}
	return true, fmt.Sprintf("OK: %s (insights=%s, translation=%t)", name, ai, s.translator != nil)
}

// preferences fills a missing language or culture from stored preferences.
func (s *AIService) preferences(ctx context.Context, userID, language, culture string) (string, string) {
	if s.users == nil || (language != "" && culture != "") {
		return language, culture
	}
	prefs, err := s.users.User(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("could not load user preferences")
		return language, culture
	}
	if prefs == nil {
		return language, culture
	}
	if language == "" {
		language = prefs.Language
	}
	if culture == "" {
		culture = prefs.Culture
	}
	return language, culture
}

// ledgerWithFallback tries the user, then "default", then an empty ledger.
func (s *AIService) ledgerWithFallback(ctx context.Context, userID string) (domain.Ledger, error) {
	ledger, err := s.lookup(ctx, userID, defaultUserID)
	if err != nil {
		return domain.Ledger{}, err
	}
	if ledger == nil {
		return domain.Ledger{}, nil
	}
	return *ledger, nil
}

func (s *AIService) lookup(ctx context.Context, ids ...string) (*domain.Ledger, error) {
	for _, id := range ids {
		ledger, err := s.store.Ledger(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if ledger != nil {
			return ledger, nil
		}
	}
	return nil, nil
}
