package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/finbridge-app/advisory-service/internal/adapters/anthropic"
	"github.com/finbridge-app/advisory-service/internal/adapters/breaker"
	"github.com/finbridge-app/advisory-service/internal/adapters/grpc"
	httpapi "github.com/finbridge-app/advisory-service/internal/adapters/http"
	"github.com/finbridge-app/advisory-service/internal/adapters/mockstore"
	"github.com/finbridge-app/advisory-service/internal/adapters/ollama"
	"github.com/finbridge-app/advisory-service/internal/adapters/openai"
	"github.com/finbridge-app/advisory-service/internal/adapters/parser"
	"github.com/finbridge-app/advisory-service/internal/adapters/sqlitestore"
	"github.com/finbridge-app/advisory-service/internal/adapters/translate"
	"github.com/finbridge-app/advisory-service/internal/config"
	"github.com/finbridge-app/advisory-service/internal/pkg/grpcserver"
	"github.com/finbridge-app/advisory-service/internal/pkg/logging"
	"github.com/finbridge-app/advisory-service/internal/ports"
	"github.com/finbridge-app/advisory-service/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	tables, err := config.DefaultTables()
	if err != nil {
		log.Fatal().Err(err).Msg("load culture and language tables")
	}

	// Adapters (infrastructure)
	store, users, closeStore := buildStores(cfg, log)
	defer closeStore()

	var insights *usecase.InsightMerger
	if gen := buildGenerator(cfg, log); gen != nil {
		guarded := breaker.Wrap(cfg.AIProvider, gen, breaker.DefaultSettings(), log)
		insights = usecase.NewInsightMerger(guarded, parser.NewInsightParser(), cfg.AITimeout, cfg.AIMaxConcurrency, log)
	}

	tr, closeTranslator := buildTranslator(context.Background(), cfg, log)
	defer closeTranslator()

	// Application service (use cases)
	svc := usecase.NewAIService(store, users, insights, tr, tables, usecase.WithLogger(log))

	// gRPC server (interface adapter)
	gs := grpcserver.New(cfg.GRPCAddr, log)
	grpc.RegisterAdvisoryServer(gs.Server, svc, log)
	healthy, msg := svc.Check(context.Background(), "")
	gs.SetServing(grpc.ServiceName, healthy)

	// HTTP server (interface adapter)
	hs := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewHandler(svc, log).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start
	go func() {
		log.Info().Str("addr", cfg.GRPCAddr).Msg("advisory gRPC listening")
		if err := gs.Start(); err != nil {
			log.Fatal().Err(err).Msg("gRPC serve error")
		}
	}()
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("status", msg).Msg("advisory HTTP listening")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP serve error")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := hs.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("HTTP shutdown")
	}
	gs.Stop()
}

func buildStores(cfg config.Config, log zerolog.Logger) (ports.TransactionStorePort, ports.UserStorePort, func()) {
	mock := mockstore.New()
	if cfg.StoreDriver != config.StoreSQLite {
		return mock, mockstore.NewUserStore(), func() {}
	}

	db, err := sqlitestore.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("open sqlite store")
	}
	seed, err := mock.All()
	if err != nil {
		log.Fatal().Err(err).Msg("load seed data")
	}
	added, err := db.Seed(context.Background(), seed)
	if err != nil {
		log.Fatal().Err(err).Msg("seed sqlite store")
	}
	log.Info().Str("path", cfg.SQLitePath).Int("seeded", added).Msg("sqlite store ready")
	return db, db, func() { _ = db.Close() }
}

func buildGenerator(cfg config.Config, log zerolog.Logger) ports.GeneratorPort {
	switch cfg.AIProvider {
	case config.ProviderGemini, config.ProviderOpenAI:
		return openai.NewAdapter(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, log)
	case config.ProviderAnthropic:
		return anthropic.NewAdapter(cfg.AIAPIKey, cfg.AIModel, log)
	case config.ProviderOllama:
		return ollama.NewOllamaAdapter(cfg.AIBaseURL, cfg.AIModel, log)
	}
	log.Warn().Msg("no generative provider configured; serving baseline advice only")
	return nil
}

// buildTranslator returns nil when no translation key is configured; the
// service then returns text untranslated.
func buildTranslator(ctx context.Context, cfg config.Config, log zerolog.Logger) (ports.TranslatorPort, func()) {
	if cfg.TranslateKey == "" {
		return nil, func() {}
	}
	client, err := translate.NewGoogleClient(ctx, cfg.TranslateKey)
	if err != nil {
		log.Fatal().Err(err).Msg("create translate client")
	}
	translator, err := translate.New(client, cfg.TranslateTimeout,
		translate.WithCache(cfg.TranslateCacheTTL),
		translate.WithLogger(log.With().Str("component", "translate").Logger()))
	if err != nil {
		log.Fatal().Err(err).Msg("create translator")
	}
	return translator, translator.Close
}
