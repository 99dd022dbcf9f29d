// Package spline flattens cubic Bezier curves into polylines.
//
// Decomposition is adaptive midpoint de Casteljau subdivision in fixed
// point: a segment of the curve is emitted once the squared distance of its
// two interior control points from the chord drops below the squared
// tolerance. Each emitted point carries the local tangent so the stroke
// drivers can offset and join the polyline exactly like hand-drawn lines.
package spline

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/stroker/internal/slope"
)

// AddPointFunc receives each decomposed polyline point together with the
// curve tangent at that point.
type AddPointFunc func(p fixed.Point26_6, tangent slope.Slope) error

type knots struct {
	a, b, c, d fixed.Point26_6
}

// Spline is a cubic Bezier prepared for decomposition.
type Spline struct {
	knots knots

	// InitialSlope and FinalSlope are the curve tangents at the two
	// endpoints, already skipping degenerate (coincident) control points.
	InitialSlope slope.Slope
	FinalSlope   slope.Slope

	add  AddPointFunc
	last fixed.Point26_6
}

// New prepares the cubic a-b-c-d. It returns ok == false when the curve has
// no usable tangents and should be treated as a straight line from a to d.
func New(a, b, c, d fixed.Point26_6, add AddPointFunc) (s Spline, ok bool) {
	// Both tangents zero: a straight line.
	if a == b && c == d {
		return Spline{}, false
	}

	s.knots = knots{a: a, b: b, c: c, d: d}
	s.add = add

	switch {
	case a != b:
		s.InitialSlope = slope.Between(a, b)
	case a != c:
		s.InitialSlope = slope.Between(a, c)
	case a != d:
		s.InitialSlope = slope.Between(a, d)
	default:
		return Spline{}, false
	}

	switch {
	case c != d:
		s.FinalSlope = slope.Between(c, d)
	case b != d:
		s.FinalSlope = slope.Between(b, d)
	default:
		return Spline{}, false
	}

	return s, true
}

// Decompose emits the polyline approximation of the spline within the given
// tolerance. The final knot is always emitted, with the final slope as its
// tangent.
func (s *Spline) Decompose(tolerance float64) error {
	k := s.knots
	s.last = k.a
	if err := s.decomposeInto(&k, tolerance*tolerance); err != nil {
		return err
	}
	return s.add(s.knots.d, s.FinalSlope)
}

func (s *Spline) decomposeInto(k1 *knots, tolSquared float64) error {
	if errorSquared(k1) < tolSquared {
		return s.addPoint(k1.a, k1.b)
	}

	var k2 knots
	deCasteljau(k1, &k2)

	if err := s.decomposeInto(k1, tolSquared); err != nil {
		return err
	}
	return s.decomposeInto(&k2, tolSquared)
}

func (s *Spline) addPoint(p, knot fixed.Point26_6) error {
	if s.last == p {
		return nil
	}
	s.last = p
	return s.add(p, slope.Between(p, knot))
}

func lerpHalf(a, b fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{
		X: a.X + (b.X-a.X)>>1,
		Y: a.Y + (b.Y-a.Y)>>1,
	}
}

// deCasteljau bisects k1 in place, leaving the first half in k1 and the
// second half in k2.
func deCasteljau(k1, k2 *knots) {
	ab := lerpHalf(k1.a, k1.b)
	bc := lerpHalf(k1.b, k1.c)
	cd := lerpHalf(k1.c, k1.d)
	abbc := lerpHalf(ab, bc)
	bccd := lerpHalf(bc, cd)
	final := lerpHalf(abbc, bccd)

	k2.a = final
	k2.b = bccd
	k2.c = cd
	k2.d = k1.d

	k1.b = ab
	k1.c = abbc
	k1.d = final
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// errorSquared bounds the squared error of approximating the spline by the
// chord a-d: the larger of the squared distances of the two interior
// control points from the chord. For a closed (a == d) segment the raw
// offsets are used instead of a projection.
func errorSquared(k *knots) float64 {
	bdx := toFloat(k.b.X - k.a.X)
	bdy := toFloat(k.b.Y - k.a.Y)
	cdx := toFloat(k.c.X - k.a.X)
	cdy := toFloat(k.c.Y - k.a.Y)

	if k.a != k.d {
		dx := toFloat(k.d.X - k.a.X)
		dy := toFloat(k.d.Y - k.a.Y)
		v := dx*dx + dy*dy

		u := bdx*dx + bdy*dy
		if u <= 0 {
			// b projects before a: keep the raw offset.
		} else if u >= v {
			bdx -= dx
			bdy -= dy
		} else {
			bdx -= u / v * dx
			bdy -= u / v * dy
		}

		u = cdx*dx + cdy*dy
		if u <= 0 {
			// likewise for c
		} else if u >= v {
			cdx -= dx
			cdy -= dy
		} else {
			cdx -= u / v * dx
			cdy -= u / v * dy
		}
	}

	berr := bdx*bdx + bdy*bdy
	cerr := cdx*cdx + cdy*cdy
	if berr > cerr {
		return berr
	}
	return cerr
}
