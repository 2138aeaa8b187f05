package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/life-wheel/internal/dto"
	"github.com/fadilmartias/life-wheel/internal/middleware"
	"github.com/fadilmartias/life-wheel/internal/usecase"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// APIError is a non-2xx or ok:false response from the assessment API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return e.Message
}

type errorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Client talks to the assessment endpoints with a bearer session token.
type Client struct {
	http    *resty.Client
	baseURL string
	cfg     Config
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimRight(baseURL, "/")
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if token != "" {
		rc.SetAuthToken(token)
	}
	return &Client{http: rc, baseURL: baseURL, cfg: DefaultConfig(baseURL)}
}

func (c *Client) Config() Config {
	return c.cfg
}

// FetchConfig loads the served configuration and uses its URLs and
// anti-forgery token for later calls.
func (c *Client) FetchConfig(ctx context.Context) (Config, error) {
	var out dto.ClientConfigResponse
	if err := c.do(ctx, resty.MethodGet, c.baseURL+"/assessment/config", nil, &out); err != nil {
		return Config{}, err
	}
	cfg := configFromResponse(out)
	if cfg.SubmitURL == "" || cfg.StatusURL == "" {
		return Config{}, fmt.Errorf("config response missing endpoint urls")
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = c.cfg.Categories
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *Client) Status(ctx context.Context) (StatusSnapshot, error) {
	var out dto.StatusResponse
	if err := c.do(ctx, resty.MethodGet, c.cfg.StatusURL, nil, &out); err != nil {
		return StatusSnapshot{}, err
	}
	snap := StatusSnapshot{
		Status:            out.Status,
		Ratings:           out.Ratings,
		CategorySummaries: out.CategorySummaries,
	}
	if out.OverallSummary != nil {
		snap.OverallSummary = *out.OverallSummary
	}
	if out.CurrentCategory != nil {
		snap.CurrentCategory = *out.CurrentCategory
	}
	return snap, nil
}

func (c *Client) SaveRating(ctx context.Context, category, rating int) (dto.SaveRatingResponse, error) {
	var out dto.SaveRatingResponse
	err := c.do(ctx, resty.MethodPost, c.cfg.SubmitURL, dto.SubmitRequest{
		Step:          usecase.StepSaveRating,
		CategoryIndex: &category,
		Rating:        &rating,
	}, &out)
	return out, err
}

func (c *Client) GenerateSummary(ctx context.Context) (dto.OverallSummaryResponse, error) {
	var out dto.OverallSummaryResponse
	err := c.do(ctx, resty.MethodPost, c.cfg.SubmitURL, dto.SubmitRequest{
		Step: usecase.StepGenerateOverallSummary,
	}, &out)
	return out, err
}

func (c *Client) Reset(ctx context.Context) error {
	var out dto.ResetResponse
	return c.do(ctx, resty.MethodPost, c.cfg.SubmitURL, dto.SubmitRequest{Step: usecase.StepReset}, &out)
}

// Wheel downloads the server-rendered PNG of the stored ratings.
func (c *Client) Wheel(ctx context.Context) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).SetHeader("Accept", "image/png").Get(c.cfg.WheelURL)
	if err != nil {
		return nil, fmt.Errorf("fetch wheel: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	}
	return resp.Body(), nil
}

func (c *Client) do(ctx context.Context, method, url string, body, result any) error {
	var apiErr errorBody
	req := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if method == resty.MethodPost && c.cfg.CSRFToken != "" {
		req.SetHeader(middleware.CSRFHeader, c.cfg.CSRFToken)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}
	if ok := gjson.GetBytes(resp.Body(), "ok"); !ok.Bool() {
		msg := gjson.GetBytes(resp.Body(), "error").String()
		if msg == "" {
			msg = "Unknown error"
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}
