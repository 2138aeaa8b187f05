package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/life-wheel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenRouter(t *testing.T, handler http.HandlerFunc) *OpenRouterService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewOpenRouterService(&config.OpenRouterConfig{
		APIKey:  "test-key",
		Model:   "test/model",
		BaseURL: srv.URL,
	}, 2*time.Second)
	require.NoError(t, err)
	return svc
}

func TestOpenRouterGenerateText(t *testing.T) {
	var gotBody map[string]any
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  You are doing great.  "}}]}`))
	})

	text, err := svc.GenerateText(context.Background(), "rate me")

	require.NoError(t, err)
	assert.Equal(t, "You are doing great.", text)
	assert.Equal(t, "test/model", gotBody["model"])
	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "rate me", messages[1].(map[string]any)["content"])
}

func TestOpenRouterGenerateTextErrors(t *testing.T) {
	t.Run("api error status", func(t *testing.T) {
		svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
		})

		_, err := svc.GenerateText(context.Background(), "hi")
		assert.ErrorContains(t, err, "rate limited")
	})

	t.Run("no choices", func(t *testing.T) {
		svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		})

		_, err := svc.GenerateText(context.Background(), "hi")
		assert.ErrorContains(t, err, "no response")
	})

	t.Run("empty prompt never calls out", func(t *testing.T) {
		called := false
		svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := svc.GenerateText(context.Background(), "   ")
		assert.Error(t, err)
		assert.False(t, called)
	})
}

func TestNewOpenRouterServiceRequiresKey(t *testing.T) {
	_, err := NewOpenRouterService(&config.OpenRouterConfig{}, time.Second)
	assert.ErrorContains(t, err, "OPENROUTER_API_KEY")
}
