package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ProviderAuto       = "auto"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderNone       = "none"
)

type AIConfig struct {
	Provider string
	Timeout  time.Duration
}

var (
	aiConfig *AIConfig
	aiOnce   sync.Once
)

func LoadAIConfig() *AIConfig {
	aiOnce.Do(func() {
		provider, err := ParseProvider(os.Getenv("AI_PROVIDER"))
		if err != nil {
			log.Printf("Warning: %v, defaulting to %s", err, ProviderAuto)
			provider = ProviderAuto
		}
		timeout, err := ParseDuration(os.Getenv("AI_TIMEOUT"), 30*time.Second)
		if err != nil {
			log.Printf("Warning: %v, defaulting to 30s", err)
			timeout = 30 * time.Second
		}
		aiConfig = &AIConfig{
			Provider: provider,
			Timeout:  timeout,
		}
	})
	return aiConfig
}

func ParseProvider(raw string) (string, error) {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case "":
		return ProviderAuto, nil
	case ProviderAuto, ProviderGemini, ProviderOpenRouter, ProviderNone:
		return p, nil
	default:
		return "", fmt.Errorf("unknown AI_PROVIDER %q", raw)
	}
}

// ParseDuration accepts Go durations ("45s") or bare seconds ("45").
func ParseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("duration must be positive: %q", raw)
		}
		return d, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	if secs <= 0 {
		return 0, fmt.Errorf("duration must be positive: %q", raw)
	}
	return time.Duration(secs) * time.Second, nil
}
