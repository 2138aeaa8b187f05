package wheel

import (
	"math"
	"time"
)

const (
	SpinDuration = 2 * time.Second
	SpinTurns    = 2
)

// Spin describes the spin-then-reveal animation that lands the pointer on
// Target. It is presentation only.
type Spin struct {
	Target   int
	Count    int
	Duration time.Duration
}

func NewSpin(target, count int) Spin {
	return Spin{Target: target, Count: count, Duration: SpinDuration}
}

// TotalRotation is two full turns plus the offset of the target segment, in radians.
func (s Spin) TotalRotation() float64 {
	if s.Count <= 0 {
		return SpinTurns * 2 * math.Pi
	}
	return (SpinTurns*360 + float64(s.Target)*360/float64(s.Count)) * math.Pi / 180
}

// Progress returns the eased (cubic ease-out) progress in [0,1].
func (s Spin) Progress(elapsed time.Duration) float64 {
	if s.Duration <= 0 || elapsed >= s.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(s.Duration)
	return 1 - math.Pow(1-p, 3)
}

func (s Spin) Rotation(elapsed time.Duration) float64 {
	return s.TotalRotation() * s.Progress(elapsed)
}

func (s Spin) Done(elapsed time.Duration) bool {
	return elapsed >= s.Duration
}

// SegmentAt is the segment index under the pointer after elapsed.
func (s Spin) SegmentAt(elapsed time.Duration) int {
	if s.Count <= 0 {
		return 0
	}
	step := 2 * math.Pi / float64(s.Count)
	r := math.Mod(s.Rotation(elapsed), 2*math.Pi)
	return int(math.Floor(r/step+1e-9)) % s.Count
}
