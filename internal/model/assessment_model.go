package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusNotStarted      Status = "not_started"
	StatusInProgress      Status = "in_progress"
	StatusRatingsComplete Status = "ratings_complete"
	StatusCompleted       Status = "completed"
)

// Ratings maps category name to a 0..10 score.
type Ratings map[string]int

// CategorySummaries maps category name to the AI reflection text.
type CategorySummaries map[string]string

type AssessmentResult struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string            `gorm:"type:varchar(191);not null;uniqueIndex:idx_life_wheel_user" json:"user_id"`
	Ratings           Ratings           `gorm:"type:text;serializer:json" json:"ratings"`
	CategorySummaries CategorySummaries `gorm:"type:text;serializer:json" json:"category_summaries"`
	OverallSummary    string            `gorm:"type:text" json:"overall_summary"`
	Status            Status            `gorm:"type:varchar(20);not null;index" json:"status"`
	CurrentCategory   int               `gorm:"not null" json:"current_category"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (AssessmentResult) TableName() string {
	return "life_wheel_results"
}

func (r *AssessmentResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ordered lists the rated categories in canonical order, skipping
// unrated ones.
func (r Ratings) Ordered() []CategoryRating {
	out := make([]CategoryRating, 0, len(r))
	for _, c := range Categories {
		if v, ok := r[c]; ok {
			out = append(out, CategoryRating{Category: c, Rating: v})
		}
	}
	return out
}

type CategoryRating struct {
	Category string
	Rating   int
}
