package wheel

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
)

const (
	lineHeight  = 12.0
	centerDotR  = 5.0
	borderWidth = 2.0
	focusWidth  = 3.0
	ringWidth   = 1.0
)

var (
	inkColor   = color.RGBA{0x33, 0x33, 0x33, 0xff}
	ringEven   = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	ringOdd    = color.RGBA{0xee, 0xee, 0xee, 0xff}
	background = color.White
)

// RenderPNG draws w and encodes it as PNG. rotation (radians, clockwise)
// turns the whole wheel about its centre, used for spin frames.
func RenderPNG(out io.Writer, w Wheel, rotation float64) error {
	dc := gg.NewContext(w.Width, w.Height)
	dc.SetColor(background)
	dc.Clear()

	if rotation != 0 {
		dc.RotateAbout(rotation, w.CenterX, w.CenterY)
	}

	for _, seg := range w.Segments {
		if seg.FillRadius > 0 {
			dc.NewSubPath()
			dc.MoveTo(w.CenterX, w.CenterY)
			dc.DrawArc(w.CenterX, w.CenterY, seg.FillRadius, seg.StartAngle, seg.EndAngle)
			dc.ClosePath()
			if seg.Highlighted {
				dc.SetColor(hsl(seg.Hue, 0.9, 0.5))
			} else {
				dc.SetColor(hsl(seg.Hue, 0.7, 0.6))
			}
			dc.Fill()
		}

		dc.NewSubPath()
		dc.MoveTo(w.CenterX, w.CenterY)
		dc.DrawArc(w.CenterX, w.CenterY, w.Radius, seg.StartAngle, seg.EndAngle)
		dc.ClosePath()
		if seg.Highlighted {
			dc.SetColor(color.Black)
			dc.SetLineWidth(focusWidth)
		} else {
			dc.SetColor(inkColor)
			dc.SetLineWidth(borderWidth)
		}
		dc.Stroke()

		drawLabel(dc, seg)
	}

	dc.DrawCircle(w.CenterX, w.CenterY, centerDotR)
	dc.SetColor(inkColor)
	dc.Fill()

	for i, r := range w.RingRadii {
		dc.DrawCircle(w.CenterX, w.CenterY, r)
		if (i+1)%2 == 0 {
			dc.SetColor(ringEven)
		} else {
			dc.SetColor(ringOdd)
		}
		dc.SetLineWidth(ringWidth)
		dc.Stroke()
	}

	if err := dc.EncodePNG(out); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func drawLabel(dc *gg.Context, seg Segment) {
	if seg.Highlighted {
		dc.SetColor(color.Black)
	} else {
		dc.SetColor(inkColor)
	}
	top := seg.LabelY - lineHeight*float64(len(seg.LabelLines)-1)/2
	for i, line := range seg.LabelLines {
		dc.DrawStringAnchored(line, seg.LabelX, top+float64(i)*lineHeight, 0.5, 0.5)
	}
}

// hsl converts hue in degrees and saturation/lightness in [0,1] to RGB.
func hsl(h, s, l float64) color.Color {
	h = math.Mod(h, 360) / 360
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return color.RGBA{v, v, v, 0xff}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r := hueToRGB(p, q, h+1.0/3)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-1.0/3)
	return color.RGBA{
		uint8(math.Round(r * 255)),
		uint8(math.Round(g * 255)),
		uint8(math.Round(b * 255)),
		0xff,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
