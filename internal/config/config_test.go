package config_test

import (
	"testing"
	"time"

	"github.com/finbridge-app/advisory-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, ":5001", cfg.HTTPAddr)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, "", cfg.AIProvider)
	assert.Equal(t, 20*time.Second, cfg.AITimeout)
	assert.Equal(t, 8*time.Second, cfg.TranslateTimeout)
	assert.Equal(t, 4, cfg.AIMaxConcurrency)
	assert.Equal(t, config.StoreMemory, cfg.StoreDriver)
}

func TestFromEnv_DetectsGeminiFirst(t *testing.T) {
	cfg, err := config.FromEnv(lookup(map[string]string{
		"GEMINI_API_KEY": "g-key",
		"OPENAI_API_KEY": "o-key",
	}))
	require.NoError(t, err)

	assert.Equal(t, config.ProviderGemini, cfg.AIProvider)
	assert.Equal(t, "g-key", cfg.AIAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.AIModel)
	assert.Equal(t, config.GeminiOpenAIBaseURL, cfg.AIBaseURL)
}

func TestFromEnv_ProviderWithoutKeyIsUnconfigured(t *testing.T) {
	cfg, err := config.FromEnv(lookup(map[string]string{"AI_PROVIDER": "anthropic"}))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.AIProvider)
}

func TestFromEnv_OllamaHost(t *testing.T) {
	cfg, err := config.FromEnv(lookup(map[string]string{"OLLAMA_HOST": "10.0.0.5"}))
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOllama, cfg.AIProvider)
	assert.Equal(t, "http://10.0.0.5:11434", cfg.AIBaseURL)

	_, err = config.FromEnv(lookup(map[string]string{"AI_PROVIDER": "ollama"}))
	assert.Error(t, err)
}

func TestFromEnv_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"bad provider":    {"AI_PROVIDER": "watson"},
		"bad store":       {"STORE_DRIVER": "postgres"},
		"bad timeout":     {"AI_TIMEOUT": "soon"},
		"negative ttl":    {"TRANSLATE_CACHE_TTL": "-1m"},
		"bad concurrency": {"AI_MAX_CONCURRENCY": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromEnv(lookup(env))
			assert.Error(t, err)
		})
	}
}
