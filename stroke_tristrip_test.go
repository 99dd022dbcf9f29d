package stroker

import (
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/stroker/internal/slope"
)

func TestStrokeToStripSegment(t *testing.T) {
	var strip TriStrip
	style := DefaultStyle().WithWidth(2)
	if err := StrokeToStrip(linePath(0, 0, 10, 0), style, Identity(), 0, &strip); err != nil {
		t.Fatalf("StrokeToStrip() error: %v", err)
	}

	// Two rail points per face, then the butt caps terminate with the
	// trailing CW and leading (reversed) CW points.
	want := []fixed.Point26_6{
		{X: 0, Y: -64},
		{X: 0, Y: 64},
		{X: 640, Y: -64},
		{X: 640, Y: 64},
		{X: 640, Y: -64},
		{X: 0, Y: 64},
	}
	got := strip.Points()
	if len(got) != len(want) {
		t.Fatalf("strip = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("points[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStrokeToStripClosedSquare(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 10, 10)

	var strip TriStrip
	if err := StrokeToStrip(p, DefaultStyle().WithWidth(2), Identity(), 0, &strip); err != nil {
		t.Fatalf("StrokeToStrip() error: %v", err)
	}
	// Four sides at four points each, three corners at five (miter apex,
	// anchor, inner point, then the segment pair), and the closing join at
	// three.
	if strip.Len() != 22 {
		t.Errorf("strip has %d points, want 22: %v", strip.Len(), strip.Points())
	}
}

func TestStrokeToStripSubPathResync(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.MoveTo(0, 5)
	p.LineTo(10, 5)

	var strip TriStrip
	if err := StrokeToStrip(p, DefaultStyle().WithWidth(2), Identity(), 0, &strip); err != nil {
		t.Fatalf("StrokeToStrip() error: %v", err)
	}
	pts := strip.Points()
	if len(pts) != 14 {
		t.Fatalf("strip has %d points, want 14: %v", len(pts), pts)
	}
	// The restart repeats the last point so the connecting triangles are
	// degenerate.
	if pts[6] != pts[5] {
		t.Errorf("restart point %v does not repeat %v", pts[6], pts[5])
	}
	if pts[8] != pts[7] {
		t.Errorf("restart target %v not repeated: %v", pts[7], pts[8])
	}
}

func TestStrokeToStripRoundCaps(t *testing.T) {
	var strip TriStrip
	style := RoundStroke().WithWidth(2)
	if err := StrokeToStrip(linePath(0, 0, 10, 0), style, Identity(), 0, &strip); err != nil {
		t.Fatalf("StrokeToStrip() error: %v", err)
	}
	// Each round cap contributes its fan vertices on top of the rails.
	if strip.Len() < 10 {
		t.Errorf("strip has %d points, want the cap fans included", strip.Len())
	}
}

func TestStrokeToStripCurve(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.CurveTo(10, 0, 20, 10, 30, 10)

	var strip TriStrip
	if err := StrokeToStrip(p, DefaultStyle().WithWidth(2), Identity(), 0, &strip); err != nil {
		t.Fatalf("StrokeToStrip() error: %v", err)
	}
	if strip.Len() < 6 || strip.Len()%2 != 0 {
		t.Errorf("strip has %d points, want an even count covering the flattened curve", strip.Len())
	}
}

func TestStrokeToStripSplineReversal(t *testing.T) {
	var strip TriStrip
	s := &tristripStroker{
		strokeContext: newStrokeContext(DefaultStyle().WithWidth(2), Identity(), Identity(), DefaultTolerance),
		strip:         &strip,
	}
	s.currentFace = s.computeFace(Pt(10, 0), slope.Slope{DX: fixedOne, DY: 0})
	s.hasCurrentFace = true
	east := s.currentFace

	// A zero tangent from the flattener marks a cusp where the curve
	// direction reverses in place: the face must turn around and the
	// half-turn must be covered by a pen fan at the anchor.
	if err := s.splineTo(Pt(10, 0), slope.Slope{}); err != nil {
		t.Fatalf("splineTo() error: %v", err)
	}

	if got, want := s.currentFace.DevVector, (slope.Slope{DX: -fixedOne, DY: 0}); got != want {
		t.Errorf("DevVector = %v, want %v", got, want)
	}
	if s.currentFace.CW != east.CCW || s.currentFace.CCW != east.CW {
		t.Errorf("offsets CW %v CCW %v, want the sides of the east face swapped",
			s.currentFace.CW, s.currentFace.CCW)
	}

	pts := strip.Points()
	if len(pts) == 0 {
		t.Fatal("no fan points emitted for the reversal")
	}
	for i, p := range pts {
		dx := ToFloat(p.X - east.Point.X)
		dy := ToFloat(p.Y - east.Point.Y)
		if d := dx*dx + dy*dy; d < 0.9 || d > 1.1 {
			t.Errorf("fan point %d = %v is off the pen circle (r^2 = %.3f)", i, p, d)
		}
	}
}

func TestStrokeToStripUnsupportedAndDegenerate(t *testing.T) {
	var strip TriStrip

	err := StrokeToStrip(linePath(0, 0, 10, 0), DashedStroke(4, 1), Identity(), 0, &strip)
	if err != ErrUnsupported {
		t.Errorf("dashed error = %v, want ErrUnsupported", err)
	}

	if err := StrokeToStrip(lPath(), DefaultStyle().WithWidth(0), Identity(), 0, &strip); err != nil || strip.Len() != 0 {
		t.Errorf("zero width = %v with %d points, want no output", err, strip.Len())
	}

	err = StrokeToStrip(lPath(), DefaultStyle(), Scale(0, 0), 0, &strip)
	if err != ErrDegenerateMatrix {
		t.Errorf("singular matrix error = %v, want ErrDegenerateMatrix", err)
	}
}
