package pen

import (
	"math"
	"testing"

	"github.com/gogpu/stroker/internal/slope"
)

type linearTransform struct {
	xx, xy, yx, yy float64
}

func (t linearTransform) Linear() (xx, xy, yx, yy float64) {
	return t.xx, t.xy, t.yx, t.yy
}

var identity = linearTransform{1, 0, 0, 1}

func TestVerticesNeeded(t *testing.T) {
	tests := []struct {
		name      string
		tolerance float64
		radius    float64
		want      int
	}{
		{"very coarse tolerance degenerates to a point", 4.0, 1.0, 1},
		{"coarse tolerance gives a square", 1.0, 1.0, 4},
		{"coarse tolerance above radius", 1.5, 1.0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerticesNeeded(tt.tolerance, tt.radius, identity)
			if got != tt.want {
				t.Errorf("VerticesNeeded(%v, %v) = %d, want %d",
					tt.tolerance, tt.radius, got, tt.want)
			}
		})
	}
}

func TestVerticesNeededEvenAndBounded(t *testing.T) {
	for _, tol := range []float64{0.01, 0.05, 0.1, 0.5} {
		n := VerticesNeeded(tol, 10, identity)
		if n < 4 {
			t.Errorf("VerticesNeeded(%v, 10) = %d, want >= 4", tol, n)
		}
		if n%2 != 0 {
			t.Errorf("VerticesNeeded(%v, 10) = %d, want even", tol, n)
		}
	}
}

func TestVerticesNeededMonotonicInTolerance(t *testing.T) {
	prev := math.MaxInt32
	for _, tol := range []float64{0.001, 0.01, 0.1, 1.0} {
		n := VerticesNeeded(tol, 5, identity)
		if n > prev {
			t.Errorf("vertex count grew from %d to %d as tolerance relaxed to %v",
				prev, n, tol)
		}
		prev = n
	}
}

func TestNewVerticesOnCircle(t *testing.T) {
	const radius = 8.0
	const tolerance = 0.1

	p := New(radius, tolerance, identity)
	if p.Count() < 4 {
		t.Fatalf("Count() = %d, want >= 4", p.Count())
	}

	for i := 0; i < p.Count(); i++ {
		v := p.Vertex(i)
		x := float64(v.Point.X) / 64
		y := float64(v.Point.Y) / 64
		r := math.Hypot(x, y)
		// Vertices lie on the circle up to fixed-point rounding.
		if math.Abs(r-radius) > 0.05 {
			t.Errorf("vertex %d at distance %v from center, want %v", i, r, radius)
		}
	}
}

func TestNewScaledPenUsesMajorAxis(t *testing.T) {
	// Under Scale(4, 1) the pen is an ellipse with major axis 4r; the
	// vertex count must match the major axis, not the user radius.
	scaled := New(2, 0.1, linearTransform{4, 0, 0, 1})
	plain := New(2, 0.1, identity)
	if scaled.Count() <= plain.Count() {
		t.Errorf("scaled pen has %d vertices, plain has %d; want more under magnification",
			scaled.Count(), plain.Count())
	}
}

func TestNewReflectionKeepsDeviceWinding(t *testing.T) {
	// Reflection flips the user-space angle direction, so the
	// device-space polygon winds the same way as without reflection.
	reflected := New(3, 0.1, linearTransform{1, 0, 0, -1})
	plain := New(3, 0.1, identity)

	if reflected.Count() != plain.Count() {
		t.Fatalf("vertex counts differ: %d vs %d", reflected.Count(), plain.Count())
	}
	for i := 0; i < plain.Count(); i++ {
		if *reflected.Vertex(i) != *plain.Vertex(i) {
			t.Fatalf("vertex %d differs under y-reflection: %+v vs %+v",
				i, reflected.Vertex(i), plain.Vertex(i))
		}
	}
}

func TestVertexSlopesChain(t *testing.T) {
	p := New(5, 0.1, identity)
	n := p.Count()
	for i := 0; i < n; i++ {
		v := p.Vertex(i)
		next := p.Vertex((i + 1) % n)
		// The ccw slope of one vertex is the cw slope of the next.
		if v.SlopeCCW != next.SlopeCW {
			t.Errorf("vertex %d: SlopeCCW %v != next SlopeCW %v",
				i, v.SlopeCCW, next.SlopeCW)
		}
	}
}

func TestFindActiveVertexIndexInRange(t *testing.T) {
	p := New(5, 0.1, identity)
	dirs := []slope.Slope{
		{DX: 64, DY: 0}, {DX: 0, DY: 64}, {DX: -64, DY: 0}, {DX: 0, DY: -64},
		{DX: 45, DY: 45}, {DX: -13, DY: 77},
	}
	for _, d := range dirs {
		cw := p.FindActiveCWVertexIndex(d)
		if cw < 0 || cw >= p.Count() {
			t.Errorf("FindActiveCWVertexIndex(%v) = %d, out of range", d, cw)
		}
		ccw := p.FindActiveCCWVertexIndex(d)
		if ccw < 0 || ccw >= p.Count() {
			t.Errorf("FindActiveCCWVertexIndex(%v) = %d, out of range", d, ccw)
		}
	}
}

func TestFindActiveCWVerticesQuarterTurn(t *testing.T) {
	p := New(5, 0.1, identity)

	in := slope.Slope{DX: 64, DY: 0}
	out := slope.Slope{DX: 0, DY: 64}

	start, stop := p.FindActiveCWVertices(in, out)
	if start < 0 || start >= p.Count() || stop < 0 || stop >= p.Count() {
		t.Fatalf("FindActiveCWVertices = (%d, %d), out of range for %d vertices",
			start, stop, p.Count())
	}

	// A quarter turn must activate roughly a quarter of the polygon.
	n := stop - start
	if n < 0 {
		n += p.Count()
	}
	quarter := p.Count() / 4
	if n < quarter-2 || n > quarter+2 {
		t.Errorf("active range %d vertices, want about %d", n, quarter)
	}
}

func TestFindActiveCCWVerticesQuarterTurn(t *testing.T) {
	p := New(5, 0.1, identity)

	in := slope.Slope{DX: 0, DY: 64}
	out := slope.Slope{DX: 64, DY: 0}

	start, stop := p.FindActiveCCWVertices(in, out)
	if start < 0 || start >= p.Count() || stop < 0 || stop >= p.Count() {
		t.Fatalf("FindActiveCCWVertices = (%d, %d), out of range for %d vertices",
			start, stop, p.Count())
	}

	n := start - stop
	if n < 0 {
		n += p.Count()
	}
	quarter := p.Count() / 4
	if n < quarter-2 || n > quarter+2 {
		t.Errorf("active range %d vertices, want about %d", n, quarter)
	}
}
