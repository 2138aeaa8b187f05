// Package wizard is the guided rating client. State changes only through
// Reduce; side effects are returned as Commands for a Runner to execute.
package wizard

import "github.com/fadilmartias/life-wheel/internal/model"

type Step string

const (
	StepLoading Step = "loading"
	StepIntro   Step = "intro"
	StepRating  Step = "rating"
	StepSummary Step = "summary"
)

// DefaultSlider is where the slider starts for a category with no rating yet.
const DefaultSlider = 5

// State is treated as immutable: Reduce never writes to the maps of the
// state it was given.
type State struct {
	Categories        []string
	Step              Step
	Ratings           map[string]int
	CategorySummaries map[string]string
	OverallSummary    string
	CurrentCategory   int
	Slider            int
	Spinning          bool
	Pending           bool
	Alert             string
}

// Init returns the loading state and the status fetch that resolves it.
func Init(categories []string) (State, []Command) {
	if len(categories) == 0 {
		categories = model.Categories
	}
	s := State{
		Categories:        categories,
		Step:              StepLoading,
		Ratings:           map[string]int{},
		CategorySummaries: map[string]string{},
		Pending:           true,
	}
	return s, []Command{FetchStatus{}}
}

// Category is the name of the category being rated, or "" past the last one.
func (s State) Category() string {
	if s.CurrentCategory < 0 || s.CurrentCategory >= len(s.Categories) {
		return ""
	}
	return s.Categories[s.CurrentCategory]
}

// RatingsDone reports whether every category has been rated and only the
// overall summary is outstanding.
func (s State) RatingsDone() bool {
	return s.CurrentCategory >= len(s.Categories)
}

// PreviousSummary is the reflection for the category rated just before the
// current one, shown above the slider.
func (s State) PreviousSummary() string {
	i := s.CurrentCategory - 1
	if i < 0 || i >= len(s.Categories) {
		return ""
	}
	return s.CategorySummaries[s.Categories[i]]
}

func (s State) sliderFor(index int) int {
	if index >= 0 && index < len(s.Categories) {
		if v, ok := s.Ratings[s.Categories[index]]; ok {
			return v
		}
	}
	return DefaultSlider
}

func copyRatings(in map[string]int) map[string]int {
	out := make(map[string]int, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copySummaries(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
