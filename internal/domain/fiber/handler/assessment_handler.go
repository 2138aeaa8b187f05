package handler

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/fadilmartias/life-wheel/internal/apperror"
	"github.com/fadilmartias/life-wheel/internal/dto"
	"github.com/fadilmartias/life-wheel/internal/metrics"
	"github.com/fadilmartias/life-wheel/internal/middleware"
	"github.com/fadilmartias/life-wheel/internal/model"
	"github.com/fadilmartias/life-wheel/internal/usecase"
	"github.com/fadilmartias/life-wheel/internal/util"
	"github.com/fadilmartias/life-wheel/internal/wheel"
	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	uc        *usecase.AssessmentUsecase
	publicURL string
}

// NewAssessmentHandler builds the handler. publicURL is the externally
// visible base used in the client config; empty means the request's own base.
func NewAssessmentHandler(uc *usecase.AssessmentUsecase, publicURL string) *AssessmentHandler {
	return &AssessmentHandler{uc: uc, publicURL: strings.TrimRight(publicURL, "/")}
}

// RegisterRoutes mounts the assessment endpoints behind auth. csrf, when
// non-nil, runs after auth on every route so unauthenticated calls get 401
// and reads still receive a token. submitGuards run on POST /submit only.
func (h *AssessmentHandler) RegisterRoutes(router fiber.Router, auth, csrf fiber.Handler, submitGuards ...fiber.Handler) {
	group := router.Group("/assessment", auth)
	if csrf != nil {
		group.Use(csrf)
	}
	group.Get("/config", h.Config)
	group.Get("/status", h.Status)
	group.Get("/wheel.png", h.Wheel)
	group.Post("/submit", append(submitGuards, h.Submit)...)
}

func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	viewer := middleware.ViewerFrom(c)

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		metrics.AssessmentSteps.WithLabelValues("unknown", metrics.OutcomeInvalid).Inc()
		return util.Error(c, apperror.NewValidationError("", "Invalid request body"))
	}

	var (
		payload any
		err     error
	)
	switch req.Step {
	case usecase.StepSaveRating:
		payload, err = h.saveRating(c, viewer, req)
	case usecase.StepGenerateOverallSummary:
		payload, err = h.generateOverallSummary(c, viewer)
	case usecase.StepReset:
		payload, err = h.reset(c, viewer)
	default:
		metrics.AssessmentSteps.WithLabelValues("unknown", metrics.OutcomeInvalid).Inc()
		return util.Error(c, apperror.NewValidationError("", "Invalid step: %s", req.Step))
	}
	if err != nil {
		outcome := metrics.OutcomeFailed
		if apperror.IsValidation(err) {
			outcome = metrics.OutcomeInvalid
		}
		metrics.AssessmentSteps.WithLabelValues(req.Step, outcome).Inc()
		return util.Error(c, err)
	}
	metrics.AssessmentSteps.WithLabelValues(req.Step, metrics.OutcomeOK).Inc()
	return util.SuccessResponse(c, payload)
}

func (h *AssessmentHandler) saveRating(c *fiber.Ctx, viewer usecase.Viewer, req dto.SubmitRequest) (any, error) {
	index := req.Index()
	if index == nil {
		return nil, apperror.NewValidationError("category_index", "is required")
	}
	if req.Rating == nil {
		return nil, apperror.NewValidationError("rating", "is required")
	}
	res, err := h.uc.SaveRating(c.UserContext(), viewer, *index, *req.Rating)
	if err != nil {
		return nil, err
	}
	return dto.SaveRatingResponse{
		OK:              true,
		Status:          string(res.Status),
		CategorySummary: res.CategorySummary,
		NextCategory:    res.NextCategory,
		IsComplete:      res.IsComplete,
	}, nil
}

func (h *AssessmentHandler) generateOverallSummary(c *fiber.Ctx, viewer usecase.Viewer) (any, error) {
	res, err := h.uc.GenerateOverallSummary(c.UserContext(), viewer)
	if err != nil {
		return nil, err
	}
	return dto.OverallSummaryResponse{
		OK:             true,
		Status:         string(res.Status),
		OverallSummary: res.OverallSummary,
	}, nil
}

func (h *AssessmentHandler) reset(c *fiber.Ctx, viewer usecase.Viewer) (any, error) {
	status, err := h.uc.Reset(c.UserContext(), viewer)
	if err != nil {
		return nil, err
	}
	return dto.ResetResponse{OK: true, Status: string(status)}, nil
}

func (h *AssessmentHandler) Status(c *fiber.Ctx) error {
	res, err := h.uc.Status(c.UserContext(), middleware.ViewerFrom(c))
	if err != nil {
		return util.Error(c, err)
	}
	// status is per-user and changes on every submit
	c.Set(fiber.HeaderCacheControl, "no-store")
	return util.SuccessResponse(c, toStatusResponse(res))
}

func toStatusResponse(res *usecase.StatusResult) dto.StatusResponse {
	out := dto.StatusResponse{OK: true, Status: string(res.Status)}
	switch res.Status {
	case model.StatusCompleted:
		summary := res.OverallSummary
		out.Ratings = res.Ratings
		out.CategorySummaries = res.CategorySummaries
		out.OverallSummary = &summary
	case model.StatusInProgress:
		current := res.CurrentCategory
		out.Ratings = res.Ratings
		out.CategorySummaries = res.CategorySummaries
		out.CurrentCategory = &current
	}
	return out
}

func (h *AssessmentHandler) Config(c *fiber.Ctx) error {
	viewer := middleware.ViewerFrom(c)
	base := h.publicURL
	if base == "" {
		base = c.BaseURL()
	}
	base += "/assessment"
	return util.SuccessResponse(c, dto.ClientConfigResponse{
		OK:          true,
		SubmitURL:   base + "/submit",
		StatusURL:   base + "/status",
		WheelURL:    base + "/wheel.png",
		CSRFToken:   middleware.CSRFTokenFrom(c),
		User:        viewer.UserID,
		DisplayName: viewer.DisplayName,
		Categories:  model.Categories,
	})
}

// Wheel renders the caller's stored ratings. highlight and value select the
// live-preview variant used while a category is being rated.
func (h *AssessmentHandler) Wheel(c *fiber.Ctx) error {
	res, err := h.uc.Status(c.UserContext(), middleware.ViewerFrom(c))
	if err != nil {
		return util.Error(c, err)
	}

	opts := wheel.Options{
		Categories: model.Categories,
		Ratings:    res.Ratings,
		Empty:      res.Status == model.StatusNotStarted,
	}
	if raw := c.Query("highlight"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil || index < 0 || index >= len(model.Categories) {
			return util.Error(c, apperror.NewValidationError("highlight", "must be a category index"))
		}
		value := c.QueryInt("value", res.Ratings[model.Categories[index]])
		if !model.ValidRating(value) {
			return util.Error(c, apperror.NewValidationError("value", "must be between %d and %d", model.MinRating, model.MaxRating))
		}
		opts.Live = &wheel.Live{Index: index, Value: value}
		opts.Empty = false
	}

	var buf bytes.Buffer
	if err := wheel.RenderPNG(&buf, wheel.Layout(opts), 0); err != nil {
		return util.Error(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "private, no-cache")
	return c.Send(buf.Bytes())
}
