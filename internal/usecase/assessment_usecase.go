package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/life-wheel/internal/apperror"
	"github.com/fadilmartias/life-wheel/internal/logger"
	"github.com/fadilmartias/life-wheel/internal/metrics"
	"github.com/fadilmartias/life-wheel/internal/model"
	"github.com/fadilmartias/life-wheel/internal/prompt"
	"github.com/fadilmartias/life-wheel/internal/repository"
	"github.com/fadilmartias/life-wheel/internal/service"
)

const (
	StepSaveRating             = "save_rating"
	StepGenerateOverallSummary = "generate_overall_summary"
	StepReset                  = "reset"
)

// AssessmentStore is the persistence the usecase needs.
type AssessmentStore interface {
	FindByUserID(ctx context.Context, userID string) (*model.AssessmentResult, error)
	Upsert(ctx context.Context, userID string, patch repository.AssessmentPatch) (*model.AssessmentResult, error)
	Update(ctx context.Context, userID string, patch repository.AssessmentPatch) (*model.AssessmentResult, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// Viewer is the authenticated caller, as resolved by the session layer.
type Viewer struct {
	UserID      string
	DisplayName string
}

type SaveRatingResult struct {
	Status          model.Status
	CategorySummary string
	NextCategory    int
	IsComplete      bool
}

type OverallSummaryResult struct {
	Status         model.Status
	OverallSummary string
}

// StatusResult is the client-facing projection. Status is only ever
// not_started, in_progress or completed.
type StatusResult struct {
	Status            model.Status
	Ratings           model.Ratings
	CategorySummaries model.CategorySummaries
	OverallSummary    string
	CurrentCategory   int
}

type AssessmentUsecase struct {
	store     AssessmentStore
	generator service.TextGenerator
	log       *logger.Logger
	aiTimeout time.Duration
}

type Option func(*AssessmentUsecase)

// WithAITimeout bounds each AI call made by the usecase.
func WithAITimeout(d time.Duration) Option {
	return func(uc *AssessmentUsecase) {
		uc.aiTimeout = d
	}
}

// NewAssessmentUsecase wires the flow. A nil generator behaves like
// service.NopGenerator.
func NewAssessmentUsecase(store AssessmentStore, generator service.TextGenerator, log *logger.Logger, opts ...Option) *AssessmentUsecase {
	if generator == nil {
		generator = service.NopGenerator{}
	}
	uc := &AssessmentUsecase{
		store:     store,
		generator: generator,
		log:       log.With("usecase", "assessment"),
		aiTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *AssessmentUsecase) SaveRating(ctx context.Context, viewer Viewer, categoryIndex, rating int) (*SaveRatingResult, error) {
	if viewer.UserID == "" {
		return nil, apperror.ErrUnauthorized
	}
	category, ok := model.CategoryAt(categoryIndex)
	if !ok {
		return nil, apperror.NewValidationError("category_index", "must be between 0 and %d", len(model.Categories)-1)
	}
	if !model.ValidRating(rating) {
		return nil, apperror.NewValidationError("rating", "must be between %d and %d", model.MinRating, model.MaxRating)
	}

	summary := uc.generate(ctx, "category",
		prompt.BuildCategoryPrompt(category, rating, viewer.DisplayName),
		"user_id", viewer.UserID, "category", category)

	next := categoryIndex + 1
	complete := next >= len(model.Categories)
	status := model.StatusInProgress
	if complete {
		status = model.StatusRatingsComplete
	}

	_, err := uc.store.Upsert(ctx, viewer.UserID, repository.AssessmentPatch{
		Ratings:           model.Ratings{category: rating},
		CategorySummaries: model.CategorySummaries{category: summary},
		Status:            &status,
		CurrentCategory:   &next,
	})
	if err != nil {
		uc.log.Error("save rating failed", "user_id", viewer.UserID, "category", category, "error", err)
		return nil, apperror.NewStorageError("save_rating", err)
	}

	return &SaveRatingResult{
		Status:          status,
		CategorySummary: summary,
		NextCategory:    next,
		IsComplete:      complete,
	}, nil
}

func (uc *AssessmentUsecase) GenerateOverallSummary(ctx context.Context, viewer Viewer) (*OverallSummaryResult, error) {
	if viewer.UserID == "" {
		return nil, apperror.ErrUnauthorized
	}
	rec, err := uc.store.FindByUserID(ctx, viewer.UserID)
	if err != nil {
		return nil, apperror.NewStorageError("find", err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound
	}

	var summary string
	if len(rec.Ratings) > 0 {
		summary = uc.generate(ctx, "overall",
			prompt.BuildOverallPrompt(rec.Ratings, viewer.DisplayName),
			"user_id", viewer.UserID)
	}

	// update only: a reset that lands during the AI call must not be undone
	status := model.StatusCompleted
	_, err = uc.store.Update(ctx, viewer.UserID, repository.AssessmentPatch{
		OverallSummary: &summary,
		Status:         &status,
	})
	if errors.Is(err, repository.ErrNoRecord) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		uc.log.Error("save overall summary failed", "user_id", viewer.UserID, "error", err)
		return nil, apperror.NewStorageError("generate_overall_summary", err)
	}
	return &OverallSummaryResult{Status: status, OverallSummary: summary}, nil
}

// Reset deletes the user's record. Resetting a user without one succeeds.
func (uc *AssessmentUsecase) Reset(ctx context.Context, viewer Viewer) (model.Status, error) {
	if viewer.UserID == "" {
		return "", apperror.ErrUnauthorized
	}
	if err := uc.store.DeleteByUserID(ctx, viewer.UserID); err != nil {
		uc.log.Error("reset failed", "user_id", viewer.UserID, "error", err)
		return "", apperror.NewStorageError("reset", err)
	}
	return model.StatusNotStarted, nil
}

func (uc *AssessmentUsecase) Status(ctx context.Context, viewer Viewer) (*StatusResult, error) {
	if viewer.UserID == "" {
		return nil, apperror.ErrUnauthorized
	}
	rec, err := uc.store.FindByUserID(ctx, viewer.UserID)
	if err != nil {
		uc.log.Error("status lookup failed", "user_id", viewer.UserID, "error", err)
		return nil, apperror.NewStorageError("find", err)
	}
	return Project(rec), nil
}

// Project maps a stored record (or nil) to what clients may observe.
// ratings_complete is internal and reads back as in_progress at the last index.
func Project(rec *model.AssessmentResult) *StatusResult {
	if rec == nil {
		return &StatusResult{Status: model.StatusNotStarted}
	}
	switch rec.Status {
	case model.StatusCompleted:
		return &StatusResult{
			Status:            model.StatusCompleted,
			Ratings:           orEmpty(rec.Ratings),
			CategorySummaries: orEmptySummaries(rec.CategorySummaries),
			OverallSummary:    rec.OverallSummary,
			CurrentCategory:   len(model.Categories),
		}
	case model.StatusInProgress, model.StatusRatingsComplete:
		current := rec.CurrentCategory
		if rec.Status == model.StatusRatingsComplete {
			current = len(model.Categories)
		}
		return &StatusResult{
			Status:            model.StatusInProgress,
			Ratings:           orEmpty(rec.Ratings),
			CategorySummaries: orEmptySummaries(rec.CategorySummaries),
			CurrentCategory:   current,
		}
	default:
		return &StatusResult{Status: model.StatusNotStarted}
	}
}

// generate makes one best-effort AI call. Errors, panics and timeouts all
// come back as "".
func (uc *AssessmentUsecase) generate(ctx context.Context, kind, text string, keysAndValues ...any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			uc.log.Warn("text generator panicked", append(keysAndValues, "kind", kind, "panic", fmt.Sprint(r))...)
			metrics.AIGenerations.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
			out = ""
		}
	}()

	aiCtx, cancel := context.WithTimeout(ctx, uc.aiTimeout)
	defer cancel()

	result, err := uc.generator.GenerateText(aiCtx, text)
	if err != nil {
		uc.log.Warn("AI summary failed", append(keysAndValues, "kind", kind, "provider", uc.generator.Name(), "error", err)...)
		metrics.AIGenerations.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
		return ""
	}
	if result == "" {
		metrics.AIGenerations.WithLabelValues(kind, metrics.OutcomeEmpty).Inc()
		return ""
	}
	metrics.AIGenerations.WithLabelValues(kind, metrics.OutcomeOK).Inc()
	return result
}

func orEmpty(r model.Ratings) model.Ratings {
	if r == nil {
		return model.Ratings{}
	}
	return r
}

func orEmptySummaries(s model.CategorySummaries) model.CategorySummaries {
	if s == nil {
		return model.CategorySummaries{}
	}
	return s
}
