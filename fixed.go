package stroker

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Device-space geometry is stored in 26.6 fixed point (fixed.Point26_6).
// Exact integer representation gives exact equality tests, which the
// drivers use for degenerate-segment detection. All trigonometry happens in
// float64; these helpers are the single conversion boundary between the two
// representations.

// FromFloat converts a float64 coordinate to 26.6 fixed point, rounding to
// the nearest representable value.
func FromFloat(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// ToFloat converts a 26.6 fixed-point coordinate to float64.
func ToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Pt builds a fixed-point device point from float64 coordinates.
func Pt(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: FromFloat(x), Y: FromFloat(y)}
}

// fixedOne is one device unit in 26.6 fixed point.
const fixedOne = fixed.Int26_6(1 << 6)

func fixedPoint(x, y fixed.Int26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: x, Y: y}
}

func translatePoint(p, offset fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: p.X + offset.X, Y: p.Y + offset.Y}
}
