package wizard

import (
	"fmt"

	"github.com/fadilmartias/life-wheel/internal/model"
)

// Reduce is the wizard's only transition function. Triggers that make no
// sense in the current step, or that arrive while a request is pending,
// return the state unchanged and no commands.
func Reduce(s State, e Event) (State, []Command) {
	switch e := e.(type) {
	case StatusLoaded:
		return statusLoaded(s, e.Snapshot)
	case StatusFailed:
		if s.Step != StepLoading {
			return s, nil
		}
		s.Step = StepIntro
		s.Pending = false
		s.Alert = failureMessage(FetchStatus{}, e.Err)
		return s, []Command{ShowAlert{Message: s.Alert}}

	case StartPressed:
		if s.Pending || s.Step != StepIntro {
			return s, nil
		}
		s.Alert = ""
		return enterRating(s, 0)

	case SliderMoved:
		if s.Pending || s.Spinning || s.Step != StepRating || s.RatingsDone() {
			return s, nil
		}
		s.Slider = clampRating(e.Value)
		return s, nil

	case SpinFinished:
		if !s.Spinning || s.Step != StepRating || e.Category != s.CurrentCategory {
			return s, nil
		}
		s.Spinning = false
		return s, nil

	case ConfirmPressed:
		if s.Pending || s.Spinning || s.Step != StepRating {
			return s, nil
		}
		s.Alert = ""
		s.Pending = true
		// a failed overall summary leaves the wizard here; confirming retries it
		if s.RatingsDone() {
			return s, []Command{GenerateSummary{}}
		}
		return s, []Command{SaveRating{Category: s.CurrentCategory, Rating: s.Slider}}

	case ResetRequested:
		if s.Pending || s.Step != StepSummary {
			return s, nil
		}
		s.Alert = ""
		s.Pending = true
		return s, []Command{Reset{}}

	case RatingSaved:
		if !s.Pending || s.Step != StepRating {
			return s, nil
		}
		return ratingSaved(s, e)

	case SummaryGenerated:
		if !s.Pending {
			return s, nil
		}
		s.Pending = false
		s.OverallSummary = e.OverallSummary
		s.Step = StepSummary
		return s, nil

	case ResetDone:
		if !s.Pending {
			return s, nil
		}
		return State{
			Categories:        s.Categories,
			Step:              StepIntro,
			Ratings:           map[string]int{},
			CategorySummaries: map[string]string{},
		}, nil

	case RequestFailed:
		if !s.Pending {
			return s, nil
		}
		s.Pending = false
		s.Alert = failureMessage(e.Action, e.Err)
		return s, []Command{ShowAlert{Message: s.Alert}}
	}
	return s, nil
}

func statusLoaded(s State, snap StatusSnapshot) (State, []Command) {
	if s.Step != StepLoading {
		return s, nil
	}
	s.Pending = false
	switch model.Status(snap.Status) {
	case model.StatusCompleted:
		s.Ratings = copyRatings(snap.Ratings)
		s.CategorySummaries = copySummaries(snap.CategorySummaries)
		s.OverallSummary = snap.OverallSummary
		s.CurrentCategory = len(s.Categories)
		s.Step = StepSummary
		return s, nil
	case model.StatusInProgress:
		s.Ratings = copyRatings(snap.Ratings)
		s.CategorySummaries = copySummaries(snap.CategorySummaries)
		if snap.CurrentCategory >= len(s.Categories) {
			// every category is rated; only the overall summary is missing
			s.Step = StepRating
			s.CurrentCategory = len(s.Categories)
			s.Pending = true
			return s, []Command{GenerateSummary{}}
		}
		return enterRating(s, max(snap.CurrentCategory, 0))
	default:
		s.Step = StepIntro
		return s, nil
	}
}

func enterRating(s State, index int) (State, []Command) {
	s.Step = StepRating
	s.CurrentCategory = index
	s.Slider = s.sliderFor(index)
	s.Spinning = true
	return s, []Command{StartSpin{Category: index, Count: len(s.Categories)}}
}

func ratingSaved(s State, e RatingSaved) (State, []Command) {
	s.Pending = false
	if e.Category >= 0 && e.Category < len(s.Categories) {
		name := s.Categories[e.Category]
		s.Ratings = copyRatings(s.Ratings)
		s.Ratings[name] = e.Rating
		if e.Summary != "" {
			s.CategorySummaries = copySummaries(s.CategorySummaries)
			s.CategorySummaries[name] = e.Summary
		}
	}
	if e.Complete {
		s.CurrentCategory = len(s.Categories)
		s.Pending = true
		return s, []Command{GenerateSummary{}}
	}
	return enterRating(s, e.NextCategory)
}

func failureMessage(action Command, err error) string {
	what := "Request failed"
	switch action.(type) {
	case FetchStatus:
		what = "Error loading status"
	case SaveRating:
		what = "Error saving rating"
	case GenerateSummary:
		what = "Error generating summary"
	case Reset:
		what = "Error resetting"
	}
	if err == nil {
		return what + ". Please try again."
	}
	return fmt.Sprintf("%s: %v", what, err)
}

func clampRating(v int) int {
	return min(max(v, model.MinRating), model.MaxRating)
}
