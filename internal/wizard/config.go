package wizard

import (
	"strings"
	"time"

	"github.com/fadilmartias/life-wheel/internal/dto"
	"github.com/fadilmartias/life-wheel/internal/model"
)

const DefaultTimeout = 60 * time.Second

// Config is the client configuration served by GET /assessment/config.
type Config struct {
	SubmitURL   string
	StatusURL   string
	WheelURL    string
	CSRFToken   string
	User        string
	DisplayName string
	Categories  []string
}

// DefaultConfig derives endpoint URLs from the server base URL, for use
// before (or without) fetching the served configuration.
func DefaultConfig(baseURL string) Config {
	base := strings.TrimRight(baseURL, "/") + "/assessment"
	return Config{
		SubmitURL:  base + "/submit",
		StatusURL:  base + "/status",
		WheelURL:   base + "/wheel.png",
		Categories: model.Categories,
	}
}

func configFromResponse(r dto.ClientConfigResponse) Config {
	return Config{
		SubmitURL:   r.SubmitURL,
		StatusURL:   r.StatusURL,
		WheelURL:    r.WheelURL,
		CSRFToken:   r.CSRFToken,
		User:        r.User,
		DisplayName: r.DisplayName,
		Categories:  r.Categories,
	}
}
