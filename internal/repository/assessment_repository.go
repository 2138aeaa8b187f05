package repository

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/fadilmartias/life-wheel/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssessmentPatch carries the fields to change. Nil pointers keep the stored
// value; the two maps are merged key by key into the stored maps.
type AssessmentPatch struct {
	Ratings           model.Ratings
	CategorySummaries model.CategorySummaries
	OverallSummary    *string
	Status            *model.Status
	CurrentCategory   *int
}

func (p AssessmentPatch) Apply(rec model.AssessmentResult) model.AssessmentResult {
	ratings := make(model.Ratings, len(rec.Ratings)+len(p.Ratings))
	maps.Copy(ratings, rec.Ratings)
	maps.Copy(ratings, p.Ratings)
	rec.Ratings = ratings

	summaries := make(model.CategorySummaries, len(rec.CategorySummaries)+len(p.CategorySummaries))
	maps.Copy(summaries, rec.CategorySummaries)
	maps.Copy(summaries, p.CategorySummaries)
	rec.CategorySummaries = summaries

	if p.OverallSummary != nil {
		rec.OverallSummary = *p.OverallSummary
	}
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.CurrentCategory != nil {
		rec.CurrentCategory = *p.CurrentCategory
	}
	return rec
}

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db}
}

// ErrNoRecord is returned by Update when the user has no row.
var ErrNoRecord = errors.New("assessment record not found")

// FindByUserID returns nil, nil when the user has no record.
func (r *AssessmentRepository) FindByUserID(ctx context.Context, userID string) (*model.AssessmentResult, error) {
	return findByUserID(r.db.WithContext(ctx), userID)
}

// findByUserID uses Find rather than Take so an absent row, which is the
// normal case for a first rating, is not logged as an error.
func findByUserID(db *gorm.DB, userID string) (*model.AssessmentResult, error) {
	var rec model.AssessmentResult
	res := db.Where("user_id = ?", userID).Limit(1).Find(&rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &rec, nil
}

// Upsert merges patch into the user's row, creating it if needed. The row
// itself is written with a single INSERT .. ON CONFLICT (user_id) so racing
// writers never leave a partial row; the last writer wins.
func (r *AssessmentRepository) Upsert(ctx context.Context, userID string, patch AssessmentPatch) (*model.AssessmentResult, error) {
	var out model.AssessmentResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findByUserID(tx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			existing = &model.AssessmentResult{UserID: userID, Status: model.StatusNotStarted}
		}

		merged := patch.Apply(*existing)
		// fresh id for the insert attempt; on conflict the stored id is kept
		merged.ID = uuid.Nil
		merged.CreatedAt = time.Time{}
		merged.UpdatedAt = time.Now()

		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ratings",
				"category_summaries",
				"overall_summary",
				"status",
				"current_category",
				"updated_at",
			}),
		}).Create(&merged).Error
		if err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Take(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update merges patch into an existing row and never creates one. It
// returns ErrNoRecord when the row is missing, including when it was
// deleted after being read.
func (r *AssessmentRepository) Update(ctx context.Context, userID string, patch AssessmentPatch) (*model.AssessmentResult, error) {
	var out *model.AssessmentResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findByUserID(tx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNoRecord
		}

		merged := patch.Apply(*existing)
		merged.UpdatedAt = time.Now()
		res := tx.Model(&model.AssessmentResult{}).
			Where("user_id = ?", userID).
			Select("ratings", "category_summaries", "overall_summary", "status", "current_category", "updated_at").
			Updates(&merged)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRecord
		}
		out = &merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByUserID removes the user's row. Deleting a missing row is not an error.
func (r *AssessmentRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AssessmentResult{}).Error
}
