package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-test",
			"content": [{"type": "text", "text": "{\"summary\":"}, {"type": "text", "text": "\"ok\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 4}
		}`))
	}))
	defer srv.Close()

	a := NewAdapter("test-key", "claude-test", zerolog.Nop(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	out, err := a.Generate(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, `{"summary":"ok"}`, out)
	assert.Equal(t, "claude-test", body["model"])
	assert.EqualValues(t, maxTokens, body["max_tokens"])
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer srv.Close()

	a := NewAdapter("k", "m", zerolog.Nop(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	_, err := a.Generate(context.Background(), "hello")
	assert.Error(t, err)
}
