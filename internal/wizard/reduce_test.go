package wizard

import (
	"errors"
	"testing"

	"github.com/fadilmartias/life-wheel/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaded(t *testing.T, snap StatusSnapshot) (State, []Command) {
	t.Helper()
	s, cmds := Init(nil)
	require.Equal(t, []Command{FetchStatus{}}, cmds)
	return Reduce(s, StatusLoaded{Snapshot: snap})
}

func TestInit(t *testing.T) {
	s, _ := Init(nil)

	assert.Equal(t, StepLoading, s.Step)
	assert.True(t, s.Pending)
	assert.Equal(t, model.Categories, s.Categories)
}

func TestStatusLoaded(t *testing.T) {
	t.Run("not started goes to intro", func(t *testing.T) {
		s, cmds := loaded(t, StatusSnapshot{Status: "not_started"})
		assert.Equal(t, StepIntro, s.Step)
		assert.False(t, s.Pending)
		assert.Empty(t, cmds)
	})

	t.Run("unknown status goes to intro", func(t *testing.T) {
		s, _ := loaded(t, StatusSnapshot{Status: "ratings_complete"})
		assert.Equal(t, StepIntro, s.Step)
	})

	t.Run("in progress resumes rating with a spin", func(t *testing.T) {
		s, cmds := loaded(t, StatusSnapshot{
			Status:          "in_progress",
			Ratings:         map[string]int{"School life": 3, "Finances": 7},
			CurrentCategory: 2,
		})
		assert.Equal(t, StepRating, s.Step)
		assert.Equal(t, 2, s.CurrentCategory)
		assert.Equal(t, "Health", s.Category())
		assert.Equal(t, DefaultSlider, s.Slider)
		assert.True(t, s.Spinning)
		assert.Equal(t, []Command{StartSpin{Category: 2, Count: 8}}, cmds)
	})

	t.Run("all rated chains to overall summary", func(t *testing.T) {
		s, cmds := loaded(t, StatusSnapshot{Status: "in_progress", CurrentCategory: 8})
		assert.Equal(t, StepRating, s.Step)
		assert.True(t, s.Pending)
		assert.True(t, s.RatingsDone())
		assert.Equal(t, []Command{GenerateSummary{}}, cmds)
	})

	t.Run("completed shows summary", func(t *testing.T) {
		s, cmds := loaded(t, StatusSnapshot{
			Status:         "completed",
			Ratings:        map[string]int{"Health": 5},
			OverallSummary: "Nice balance.",
		})
		assert.Equal(t, StepSummary, s.Step)
		assert.Equal(t, "Nice balance.", s.OverallSummary)
		assert.Equal(t, 5, s.Ratings["Health"])
		assert.Empty(t, cmds)
	})

	t.Run("status failure falls back to intro", func(t *testing.T) {
		s, _ := Init(nil)
		s, cmds := Reduce(s, StatusFailed{Err: errors.New("offline")})
		assert.Equal(t, StepIntro, s.Step)
		assert.False(t, s.Pending)
		assert.Equal(t, "Error loading status: offline", s.Alert)
		assert.Equal(t, []Command{ShowAlert{Message: s.Alert}}, cmds)

		// starting clears the alert
		s, _ = Reduce(s, StartPressed{})
		assert.Empty(t, s.Alert)
	})
}

func TestRatingFlow(t *testing.T) {
	s, _ := loaded(t, StatusSnapshot{Status: "not_started"})

	s, cmds := Reduce(s, StartPressed{})
	require.Equal(t, StepRating, s.Step)
	require.Equal(t, []Command{StartSpin{Category: 0, Count: 8}}, cmds)

	// slider is locked until the spin lands
	s, _ = Reduce(s, SliderMoved{Value: 9})
	assert.Equal(t, DefaultSlider, s.Slider)
	s, cmds = Reduce(s, ConfirmPressed{})
	assert.Empty(t, cmds)

	s, _ = Reduce(s, SpinFinished{Category: 0})
	require.False(t, s.Spinning)

	s, _ = Reduce(s, SliderMoved{Value: 12})
	assert.Equal(t, 10, s.Slider)
	s, _ = Reduce(s, SliderMoved{Value: 3})

	s, cmds = Reduce(s, ConfirmPressed{})
	require.True(t, s.Pending)
	require.Equal(t, []Command{SaveRating{Category: 0, Rating: 3}}, cmds)

	before := s
	s, cmds = Reduce(s, RatingSaved{Category: 0, Rating: 3, Summary: "Keep going", NextCategory: 1})
	assert.False(t, s.Pending)
	assert.Equal(t, 1, s.CurrentCategory)
	assert.Equal(t, "Keep going", s.PreviousSummary())
	assert.Equal(t, map[string]int{"School life": 3}, s.Ratings)
	assert.Empty(t, before.Ratings, "reduce must not write to the previous state's maps")
	assert.Equal(t, []Command{StartSpin{Category: 1, Count: 8}}, cmds)
}

func TestPendingIgnoresTriggers(t *testing.T) {
	s, _ := loaded(t, StatusSnapshot{Status: "in_progress", CurrentCategory: 4})
	s, _ = Reduce(s, SpinFinished{Category: 4})
	s, _ = Reduce(s, ConfirmPressed{})
	require.True(t, s.Pending)

	for _, ev := range []Event{ConfirmPressed{}, SliderMoved{Value: 1}, StartPressed{}, ResetRequested{}} {
		next, cmds := Reduce(s, ev)
		assert.Equal(t, s, next, "%T", ev)
		assert.Empty(t, cmds, "%T", ev)
	}
}

func TestRequestFailedKeepsStep(t *testing.T) {
	s, _ := loaded(t, StatusSnapshot{Status: "in_progress", CurrentCategory: 4})
	s, _ = Reduce(s, SpinFinished{Category: 4})
	s, _ = Reduce(s, ConfirmPressed{})

	s, cmds := Reduce(s, RequestFailed{Action: SaveRating{Category: 4, Rating: 5}, Err: errors.New("database error")})

	assert.False(t, s.Pending)
	assert.Equal(t, StepRating, s.Step)
	assert.Equal(t, 4, s.CurrentCategory)
	assert.Equal(t, "Error saving rating: database error", s.Alert)
	assert.Equal(t, []Command{ShowAlert{Message: s.Alert}}, cmds)

	// retry clears the alert
	s, cmds = Reduce(s, ConfirmPressed{})
	assert.Empty(t, s.Alert)
	assert.Equal(t, []Command{SaveRating{Category: 4, Rating: 5}}, cmds)
}

func TestLastRatingGeneratesSummary(t *testing.T) {
	s, _ := loaded(t, StatusSnapshot{Status: "in_progress", CurrentCategory: 7})
	s, _ = Reduce(s, SpinFinished{Category: 7})
	s, _ = Reduce(s, SliderMoved{Value: 2})
	s, _ = Reduce(s, ConfirmPressed{})

	s, cmds := Reduce(s, RatingSaved{Category: 7, Rating: 2, NextCategory: 8, Complete: true})
	assert.True(t, s.Pending)
	assert.Equal(t, []Command{GenerateSummary{}}, cmds)
	assert.Equal(t, 2, s.Ratings["Physical Environment"])

	t.Run("failed summary can be retried", func(t *testing.T) {
		failed, _ := Reduce(s, RequestFailed{Action: GenerateSummary{}, Err: errors.New("boom")})
		assert.Equal(t, StepRating, failed.Step)
		_, cmds := Reduce(failed, ConfirmPressed{})
		assert.Equal(t, []Command{GenerateSummary{}}, cmds)
	})

	s, cmds = Reduce(s, SummaryGenerated{OverallSummary: "Well done."})
	assert.Equal(t, StepSummary, s.Step)
	assert.Equal(t, "Well done.", s.OverallSummary)
	assert.Empty(t, cmds)
}

func TestReset(t *testing.T) {
	s, _ := loaded(t, StatusSnapshot{
		Status:  "completed",
		Ratings: map[string]int{"Health": 5},
	})

	s, cmds := Reduce(s, ResetRequested{})
	require.Equal(t, []Command{Reset{}}, cmds)

	s, _ = Reduce(s, ResetDone{})
	assert.Equal(t, StepIntro, s.Step)
	assert.Empty(t, s.Ratings)
	assert.Empty(t, s.OverallSummary)
	assert.Equal(t, 0, s.CurrentCategory)
	assert.False(t, s.Pending)
}

func TestResetOnlyFromSummary(t *testing.T) {
	s, _ := loaded(t, StatusSnapshot{Status: "not_started"})

	next, cmds := Reduce(s, ResetRequested{})

	assert.Equal(t, s, next)
	assert.Empty(t, cmds)
}

func TestStaleSpinIgnored(t *testing.T) {
	s, _ := loaded(t, StatusSnapshot{Status: "in_progress", CurrentCategory: 3})

	s, _ = Reduce(s, SpinFinished{Category: 2})

	assert.True(t, s.Spinning)
}
