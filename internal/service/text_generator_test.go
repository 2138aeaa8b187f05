package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/life-wheel/internal/config"
	"github.com/fadilmartias/life-wheel/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubGenerator) GenerateText(context.Context, string) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *stubGenerator) Name() string { return s.name }

func TestNopGenerator(t *testing.T) {
	text, err := NopGenerator{}.GenerateText(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFallbackGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("first success wins", func(t *testing.T) {
		a := &stubGenerator{name: "a", text: "from a"}
		b := &stubGenerator{name: "b", text: "from b"}

		text, err := NewFallbackGenerator(logger.NewNop(), a, b).GenerateText(ctx, "p")

		require.NoError(t, err)
		assert.Equal(t, "from a", text)
		assert.Zero(t, b.calls)
	})

	t.Run("falls through on error and empty text", func(t *testing.T) {
		a := &stubGenerator{name: "a", err: errors.New("down")}
		b := &stubGenerator{name: "b"}
		c := &stubGenerator{name: "c", text: "from c"}

		text, err := NewFallbackGenerator(logger.NewNop(), a, b, c).GenerateText(ctx, "p")

		require.NoError(t, err)
		assert.Equal(t, "from c", text)
	})

	t.Run("joins errors when all fail", func(t *testing.T) {
		a := &stubGenerator{name: "a", err: errors.New("down")}
		b := &stubGenerator{name: "b", err: errors.New("timeout")}

		text, err := NewFallbackGenerator(logger.NewNop(), a, b).GenerateText(ctx, "p")

		assert.Empty(t, text)
		assert.ErrorContains(t, err, "a: down")
		assert.ErrorContains(t, err, "b: timeout")
	})
}

func TestNewTextGenerator(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()
	ai := func(p string) *config.AIConfig { return &config.AIConfig{Provider: p, Timeout: time.Second} }

	t.Run("none", func(t *testing.T) {
		gen := NewTextGenerator(ctx, log, ai(config.ProviderNone),
			&config.GeminiConfig{APIKey: "k"}, &config.OpenRouterConfig{APIKey: "k"})
		assert.IsType(t, NopGenerator{}, gen)
	})

	t.Run("auto without keys", func(t *testing.T) {
		gen := NewTextGenerator(ctx, log, ai(config.ProviderAuto),
			&config.GeminiConfig{}, &config.OpenRouterConfig{})
		assert.IsType(t, NopGenerator{}, gen)
	})

	t.Run("auto with openrouter key", func(t *testing.T) {
		gen := NewTextGenerator(ctx, log, ai(config.ProviderAuto),
			&config.GeminiConfig{}, &config.OpenRouterConfig{APIKey: "k", BaseURL: "http://localhost"})
		assert.IsType(t, &OpenRouterService{}, gen)
	})

	t.Run("explicit provider without key degrades to nop", func(t *testing.T) {
		gen := NewTextGenerator(ctx, log, ai(config.ProviderGemini),
			&config.GeminiConfig{}, &config.OpenRouterConfig{})
		assert.IsType(t, NopGenerator{}, gen)
	})
}
