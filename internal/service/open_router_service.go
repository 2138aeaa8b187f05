package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/life-wheel/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const coachSystemPrompt = "You are a friendly, supportive life coach for young people aged 12-14."

type OpenRouterService struct {
	client  *resty.Client
	model   string
	breaker *circuitBreaker
}

func NewOpenRouterService(orConfig *config.OpenRouterConfig, timeout time.Duration) (*OpenRouterService, error) {
	if orConfig.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(orConfig.BaseURL, "/")).
		SetAuthToken(orConfig.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &OpenRouterService{
		client:  client,
		model:   orConfig.Model,
		breaker: newCircuitBreaker(5, time.Minute),
	}, nil
}

func (s *OpenRouterService) Name() string {
	return config.ProviderOpenRouter
}

func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if err := s.breaker.allow(); err != nil {
		return "", err
	}
	text, err := s.complete(ctx, prompt)
	s.breaker.record(err)
	return text, err
}

func (s *OpenRouterService) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": coachSystemPrompt},
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode(), msg)
	}

	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("no response from LLM")
	}
	return strings.TrimSpace(content.String()), nil
}
