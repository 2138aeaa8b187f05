// Package wheel lays out and draws the radial life-wheel chart. Layout is a
// pure function of its options, so it is safe to call on every slider move.
package wheel

import (
	"math"
	"strings"
)

const (
	DefaultSize = 400
	// margin between the outer ring and the canvas edge, room for labels
	margin      = 60
	labelOffset = 30
	Rings       = 10
	maxRating   = 10
)

// Live marks the segment being rated and the value currently on the slider.
type Live struct {
	Index int
	Value int
}

type Options struct {
	Categories []string
	Ratings    map[string]int
	Live       *Live
	Empty      bool
	Width      int
	Height     int
}

type Segment struct {
	Index       int
	Category    string
	Rating      int
	StartAngle  float64
	EndAngle    float64
	FillRadius  float64
	Hue         float64
	Highlighted bool
	LabelX      float64
	LabelY      float64
	LabelLines  []string
}

type Wheel struct {
	Width     int
	Height    int
	CenterX   float64
	CenterY   float64
	Radius    float64
	Segments  []Segment
	RingRadii []float64
}

// Layout computes the wheel geometry. Angles are radians in screen space
// (y down), the first segment starting at 12 o'clock and running clockwise.
// Missing ratings count as 0 and values are clamped to 0..10.
func Layout(opts Options) Wheel {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultSize
	}
	if height <= 0 {
		height = DefaultSize
	}
	cx, cy := float64(width)/2, float64(height)/2
	radius := math.Max(math.Min(cx, cy)-margin, 0)

	n := len(opts.Categories)
	w := Wheel{
		Width:     width,
		Height:    height,
		CenterX:   cx,
		CenterY:   cy,
		Radius:    radius,
		Segments:  make([]Segment, 0, n),
		RingRadii: make([]float64, 0, Rings),
	}
	for i := 1; i <= Rings; i++ {
		w.RingRadii = append(w.RingRadii, float64(i)/Rings*radius)
	}
	if n == 0 {
		return w
	}

	step := 2 * math.Pi / float64(n)
	for i, category := range opts.Categories {
		start := float64(i)*step - math.Pi/2
		end := float64(i+1)*step - math.Pi/2

		rating := opts.Ratings[category]
		highlighted := opts.Live != nil && opts.Live.Index == i
		if highlighted {
			rating = opts.Live.Value
		}
		rating = clamp(rating)

		fill := float64(rating) / maxRating * radius
		if opts.Empty {
			fill = 0
		}

		mid := (start + end) / 2
		w.Segments = append(w.Segments, Segment{
			Index:       i,
			Category:    category,
			Rating:      rating,
			StartAngle:  start,
			EndAngle:    end,
			FillRadius:  fill,
			Hue:         float64(i) * 360 / float64(n),
			Highlighted: highlighted,
			LabelX:      cx + math.Cos(mid)*(radius+labelOffset),
			LabelY:      cy + math.Sin(mid)*(radius+labelOffset),
			LabelLines:  LabelLines(category),
		})
	}
	return w
}

// LabelLines wraps names of more than two words onto two lines: the first
// two words, then the rest.
func LabelLines(name string) []string {
	words := strings.Fields(name)
	if len(words) <= 2 {
		return []string{name}
	}
	return []string{strings.Join(words[:2], " "), strings.Join(words[2:], " ")}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxRating {
		return maxRating
	}
	return v
}
