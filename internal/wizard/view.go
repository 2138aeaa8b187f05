package wizard

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/life-wheel/internal/wheel"
	"github.com/fatih/color"
)

const barWidth = 20

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	focusColor   = color.New(color.FgYellow, color.Bold)
	dimColor     = color.New(color.Faint)
	alertColor   = color.New(color.FgRed, color.Bold)
	summaryColor = color.New(color.FgGreen)
)

// Render draws the whole screen for s. It depends on nothing but s.
func Render(s State) string {
	var b strings.Builder
	switch s.Step {
	case StepLoading:
		b.WriteString(dimColor.Sprint("Loading your Life Wheel...") + "\n")
	case StepIntro:
		renderIntro(&b, s)
	case StepRating:
		renderRating(&b, s)
	case StepSummary:
		renderSummary(&b, s)
	}
	if s.Pending && s.Step != StepLoading {
		b.WriteString(dimColor.Sprint(pendingMessage(s)) + "\n")
	}
	if s.Alert != "" {
		b.WriteString(alertColor.Sprint(s.Alert) + "\n")
	}
	return b.String()
}

func renderIntro(b *strings.Builder, s State) {
	b.WriteString(titleColor.Sprint("Welcome to Your Life Wheel") + "\n\n")
	fmt.Fprintf(b, "Where are you at? Grade yourself on the %d areas below, from 0 to 10.\n", len(s.Categories))
	b.WriteString("Your Life Wheel helps you see how balanced your life feels right now.\n\n")
	renderBars(b, s, -1)
	b.WriteString("\nPress Enter to start, q to quit.\n")
}

func renderRating(b *strings.Builder, s State) {
	if s.RatingsDone() {
		b.WriteString(titleColor.Sprint("All areas rated") + "\n\n")
		renderBars(b, s, -1)
		if !s.Pending {
			b.WriteString("\nPress Enter to generate your summary.\n")
		}
		return
	}

	fmt.Fprintf(b, "%s  %s\n\n",
		titleColor.Sprintf("Rate: %s", s.Category()),
		dimColor.Sprintf("%d of %d", s.CurrentCategory+1, len(s.Categories)))
	if prev := s.PreviousSummary(); prev != "" {
		b.WriteString(summaryColor.Sprint("Your Reflection") + "\n" + prev + "\n\n")
	}
	if s.Spinning {
		b.WriteString(dimColor.Sprint("Spinning the wheel...") + "\n")
		return
	}
	renderBars(b, s, s.CurrentCategory)
	fmt.Fprintf(b, "\nHow would you rate this area of your life? [%d]\n", s.Slider)
	b.WriteString("Type 0-10 to move the slider, Enter to confirm.\n")
}

func renderSummary(b *strings.Builder, s State) {
	b.WriteString(titleColor.Sprint("Your Life Wheel Summary") + "\n\n")
	renderBars(b, s, -1)
	if s.OverallSummary != "" {
		b.WriteString("\n" + summaryColor.Sprint("Your Personal Insights") + "\n" + s.OverallSummary + "\n")
	}
	b.WriteString("\nType reset to start over, q to quit.\n")
}

// renderBars prints one bar per category; focus is the live segment or -1.
func renderBars(b *strings.Builder, s State, focus int) {
	opts := WheelOptions(s)
	width := 0
	for _, name := range s.Categories {
		width = max(width, len(name))
	}
	for _, seg := range wheel.Layout(opts).Segments {
		filled := seg.Rating * barWidth / wheel.Rings
		if opts.Empty {
			filled = 0
		}
		line := fmt.Sprintf("%-*s %s%s %2d", width, seg.Category,
			strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), seg.Rating)
		if seg.Index == focus {
			line = focusColor.Sprint(line)
		}
		b.WriteString(line + "\n")
	}
}

// WheelOptions maps state to the wheel drawn for it: empty on the intro,
// a live preview of the slider while rating, the stored ratings otherwise.
func WheelOptions(s State) wheel.Options {
	opts := wheel.Options{Categories: s.Categories, Ratings: s.Ratings}
	switch s.Step {
	case StepLoading, StepIntro:
		opts.Empty = true
	case StepRating:
		if !s.Spinning && !s.RatingsDone() {
			opts.Live = &wheel.Live{Index: s.CurrentCategory, Value: s.Slider}
		}
	}
	return opts
}

func pendingMessage(s State) string {
	switch {
	case s.Step == StepSummary:
		return "Resetting..."
	case s.RatingsDone():
		return "Generating your Life Wheel summary..."
	default:
		return "Saving your rating..."
	}
}
