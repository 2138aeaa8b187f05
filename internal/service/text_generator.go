package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/life-wheel/internal/config"
	"github.com/fadilmartias/life-wheel/internal/logger"
)

// TextGenerator is the single opaque AI call the assessment flow depends on.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NopGenerator is used when no provider is configured. It always returns "".
type NopGenerator struct{}

func (NopGenerator) GenerateText(context.Context, string) (string, error) { return "", nil }
func (NopGenerator) Name() string                                         { return config.ProviderNone }

// FallbackGenerator asks each generator in turn until one returns text.
type FallbackGenerator struct {
	generators []TextGenerator
	log        *logger.Logger
}

func NewFallbackGenerator(log *logger.Logger, generators ...TextGenerator) *FallbackGenerator {
	return &FallbackGenerator{generators: generators, log: log}
}

func (g *FallbackGenerator) Name() string {
	return "fallback"
}

func (g *FallbackGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	var errs []error
	for _, gen := range g.generators {
		text, err := gen.GenerateText(ctx, prompt)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			g.log.Warn("text generator failed, trying next", "provider", gen.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", gen.Name(), err))
		}
		if ctx.Err() != nil {
			break
		}
	}
	return "", errors.Join(errs...)
}

// NewTextGenerator builds the generator selected by aiConfig. Providers
// that cannot be constructed are logged and skipped, so the result is never nil.
func NewTextGenerator(ctx context.Context, log *logger.Logger, aiConfig *config.AIConfig, geminiConfig *config.GeminiConfig, orConfig *config.OpenRouterConfig) TextGenerator {
	var gens []TextGenerator

	wantGemini := aiConfig.Provider == config.ProviderGemini ||
		(aiConfig.Provider == config.ProviderAuto && geminiConfig.APIKey != "")
	wantOpenRouter := aiConfig.Provider == config.ProviderOpenRouter ||
		(aiConfig.Provider == config.ProviderAuto && orConfig.APIKey != "")

	if wantGemini {
		gemini, err := NewGeminiService(ctx, geminiConfig, aiConfig.Timeout)
		if err != nil {
			log.Warn("gemini provider unavailable", "error", err)
		} else {
			gens = append(gens, gemini)
		}
	}
	if wantOpenRouter {
		openRouter, err := NewOpenRouterService(orConfig, aiConfig.Timeout)
		if err != nil {
			log.Warn("openrouter provider unavailable", "error", err)
		} else {
			gens = append(gens, openRouter)
		}
	}

	switch len(gens) {
	case 0:
		log.Info("no AI provider configured, summaries will be empty")
		return NopGenerator{}
	case 1:
		log.Info("AI provider selected", "provider", gens[0].Name())
		return gens[0]
	default:
		log.Info("AI providers selected with fallback", "providers", len(gens))
		return NewFallbackGenerator(log, gens...)
	}
}
