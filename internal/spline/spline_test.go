package spline

import (
	"math"
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/stroker/internal/slope"
)

func pt(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}

type collector struct {
	points   []fixed.Point26_6
	tangents []slope.Slope
}

func (c *collector) add(p fixed.Point26_6, tangent slope.Slope) error {
	c.points = append(c.points, p)
	c.tangents = append(c.tangents, tangent)
	return nil
}

func TestNewDegenerate(t *testing.T) {
	a := pt(0, 0)
	d := pt(10, 0)

	tests := []struct {
		name       string
		a, b, c, d fixed.Point26_6
		wantOK     bool
	}{
		{"control points on endpoints", a, a, d, d, false},
		{"single point", a, a, a, a, false},
		{"b on a", a, a, pt(5, 5), d, true},
		{"b and c on a", a, a, a, d, true},
		{"proper curve", a, pt(3, 5), pt(7, 5), d, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := New(tt.a, tt.b, tt.c, tt.d, (&collector{}).add)
			if ok != tt.wantOK {
				t.Errorf("New ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestNewTangentFallbacks(t *testing.T) {
	a, d := pt(0, 0), pt(30, 0)

	// a == b: initial tangent falls back to a -> c.
	s, ok := New(a, a, pt(10, 10), d, (&collector{}).add)
	if !ok {
		t.Fatal("New returned not ok")
	}
	if want := slope.Between(a, pt(10, 10)); s.InitialSlope != want {
		t.Errorf("InitialSlope = %v, want %v", s.InitialSlope, want)
	}

	// c == d: final tangent falls back to b -> d.
	s, ok = New(a, pt(10, 10), d, d, (&collector{}).add)
	if !ok {
		t.Fatal("New returned not ok")
	}
	if want := slope.Between(pt(10, 10), d); s.FinalSlope != want {
		t.Errorf("FinalSlope = %v, want %v", s.FinalSlope, want)
	}
}

func TestDecomposeEndsAtFinalKnot(t *testing.T) {
	a, b, c, d := pt(0, 0), pt(10, 20), pt(20, 20), pt(30, 0)

	var col collector
	s, ok := New(a, b, c, d, col.add)
	if !ok {
		t.Fatal("New returned not ok")
	}
	if err := s.Decompose(0.1); err != nil {
		t.Fatalf("Decompose() = %v", err)
	}

	if len(col.points) == 0 {
		t.Fatal("Decompose emitted no points")
	}
	last := col.points[len(col.points)-1]
	if last != d {
		t.Errorf("last point = %v, want final knot %v", last, d)
	}
	if got := col.tangents[len(col.tangents)-1]; got != s.FinalSlope {
		t.Errorf("last tangent = %v, want FinalSlope %v", got, s.FinalSlope)
	}
}

func TestDecomposeSkipsStartAndRepeats(t *testing.T) {
	a, b, c, d := pt(0, 0), pt(10, 20), pt(20, 20), pt(30, 0)

	var col collector
	s, _ := New(a, b, c, d, col.add)
	if err := s.Decompose(0.5); err != nil {
		t.Fatalf("Decompose() = %v", err)
	}

	prev := a
	for i, p := range col.points {
		if p == prev {
			t.Errorf("point %d repeats its predecessor %v", i, p)
		}
		prev = p
	}
}

func TestDecomposeRefinesWithTolerance(t *testing.T) {
	a, b, c, d := pt(0, 0), pt(0, 40), pt(40, 40), pt(40, 0)

	count := func(tol float64) int {
		var col collector
		s, _ := New(a, b, c, d, col.add)
		if err := s.Decompose(tol); err != nil {
			t.Fatalf("Decompose(%v) = %v", tol, err)
		}
		return len(col.points)
	}

	coarse := count(5.0)
	fine := count(0.05)
	if fine <= coarse {
		t.Errorf("fine tolerance emitted %d points, coarse %d; want more at fine",
			fine, coarse)
	}
}

func TestDecomposeWithinTolerance(t *testing.T) {
	// A quarter-circle-ish arc: every emitted point must stay near the
	// true curve. Checking against the convex hull of the control
	// points is a cheap sound bound.
	a, b, c, d := pt(0, 0), pt(0, 30), pt(30, 30), pt(30, 0)

	var col collector
	s, _ := New(a, b, c, d, col.add)
	if err := s.Decompose(0.1); err != nil {
		t.Fatalf("Decompose() = %v", err)
	}

	for _, p := range col.points {
		x := float64(p.X) / 64
		y := float64(p.Y) / 64
		if x < -0.1 || x > 30.1 || y < -0.1 || y > 30.1 {
			t.Errorf("point (%v, %v) escapes the control hull", x, y)
		}
	}
}

func TestDecomposeStraightLineIsCheap(t *testing.T) {
	// Control points on the chord: one subdivision level suffices.
	a, b, c, d := pt(0, 0), pt(10, 0), pt(20, 0), pt(30, 0)

	var col collector
	s, ok := New(a, b, c, d, col.add)
	if !ok {
		t.Fatal("New returned not ok")
	}
	if err := s.Decompose(0.1); err != nil {
		t.Fatalf("Decompose() = %v", err)
	}
	if len(col.points) > 2 {
		t.Errorf("straight spline emitted %d points, want <= 2", len(col.points))
	}
}
