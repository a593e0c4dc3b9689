package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"

	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	// GeminiOpenAIBaseURL is Gemini's OpenAI-compatible endpoint.
	GeminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

type Config struct {
	HTTPAddr  string
	GRPCAddr  string
	LogLevel  string
	LogPretty bool

	AIProvider       string
	AIAPIKey         string
	AIModel          string
	AIBaseURL        string
	AITimeout        time.Duration
	AIMaxConcurrency int

	TranslateKey      string
	TranslateTimeout  time.Duration
	TranslateCacheTTL time.Duration

	StoreDriver string
	SQLitePath  string
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, which keeps tests off the
// real process environment.
func FromEnv(getenv func(string) string) (Config, error) {
	env := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPAddr:     env("HTTP_ADDR", ":5001"),
		GRPCAddr:     env("GRPC_ADDR", ":50051"),
		LogLevel:     env("LOG_LEVEL", "info"),
		LogPretty:    env("LOG_PRETTY", "false") == "true",
		TranslateKey: env("GOOGLE_TRANSLATE_KEY", ""),
		StoreDriver:  strings.ToLower(env("STORE_DRIVER", StoreMemory)),
		SQLitePath:   env("SQLITE_PATH", "finbridge.db"),
	}

	var err error
	if cfg.AITimeout, err = duration(env("AI_TIMEOUT", "20s")); err != nil {
		return Config{}, fmt.Errorf("AI_TIMEOUT: %w", err)
	}
	if cfg.TranslateTimeout, err = duration(env("TRANSLATE_TIMEOUT", "8s")); err != nil {
		return Config{}, fmt.Errorf("TRANSLATE_TIMEOUT: %w", err)
	}
	if cfg.TranslateCacheTTL, err = duration(env("TRANSLATE_CACHE_TTL", "1h")); err != nil {
		return Config{}, fmt.Errorf("TRANSLATE_CACHE_TTL: %w", err)
	}
	if cfg.AIMaxConcurrency, err = strconv.Atoi(env("AI_MAX_CONCURRENCY", "4")); err != nil || cfg.AIMaxConcurrency < 1 {
		return Config{}, fmt.Errorf("AI_MAX_CONCURRENCY must be a positive integer")
	}

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	provider := strings.ToLower(env("AI_PROVIDER", ""))
	if provider == "" {
		provider = detectProvider(env)
	}
	switch provider {
	case "":
		// no generative collaborator; baseline advice only
	case ProviderGemini:
		cfg.AIAPIKey = env("GEMINI_API_KEY", "")
		cfg.AIModel = env("GEMINI_MODEL", "gemini-2.5-flash")
		cfg.AIBaseURL = env("GEMINI_BASE_URL", GeminiOpenAIBaseURL)
	case ProviderOpenAI:
		cfg.AIAPIKey = env("OPENAI_API_KEY", "")
		cfg.AIModel = env("OPENAI_MODEL", "gpt-4o-mini")
		cfg.AIBaseURL = env("OPENAI_BASE_URL", "")
	case ProviderAnthropic:
		cfg.AIAPIKey = env("ANTHROPIC_API_KEY", "")
		cfg.AIModel = env("ANTHROPIC_MODEL", "claude-sonnet-4-20250514")
	case ProviderOllama:
		host := env("OLLAMA_HOST", "")
		if host == "" {
			return Config{}, fmt.Errorf("AI_PROVIDER=ollama requires OLLAMA_HOST")
		}
		if !strings.Contains(host, "://") {
			if !strings.Contains(host, ":") {
				host += ":11434"
			}
			host = "http://" + host
		}
		cfg.AIBaseURL = host
		cfg.AIModel = env("OLLAMA_MODEL", "llama3.1")
	default:
		return Config{}, fmt.Errorf("unknown AI_PROVIDER %q", provider)
	}
	cfg.AIProvider = provider
	if provider != "" && provider != ProviderOllama && cfg.AIAPIKey == "" {
		// a provider without a key counts as unconfigured
		cfg.AIProvider = ""
	}

	return cfg, nil
}

// detectProvider follows key precedence: Gemini, OpenAI, Anthropic, Ollama.
func detectProvider(env func(k, def string) string) string {
	switch {
	case env("GEMINI_API_KEY", "") != "":
		return ProviderGemini
	case env("OPENAI_API_KEY", "") != "":
		return ProviderOpenAI
	case env("ANTHROPIC_API_KEY", "") != "":
		return ProviderAnthropic
	case env("OLLAMA_HOST", "") != "":
		return ProviderOllama
	}
	return ""
}

func duration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}
