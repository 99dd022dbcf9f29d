package stroker

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

// walkRecorder captures Walk callbacks as a flat op list.
type walkRecorder struct {
	ops    []string
	points []fixed.Point26_6
}

func (r *walkRecorder) MoveTo(p fixed.Point26_6) error {
	r.ops = append(r.ops, "move")
	r.points = append(r.points, p)
	return nil
}

func (r *walkRecorder) LineTo(p fixed.Point26_6) error {
	r.ops = append(r.ops, "line")
	r.points = append(r.points, p)
	return nil
}

func (r *walkRecorder) CurveTo(p1, p2, p3 fixed.Point26_6) error {
	r.ops = append(r.ops, "curve")
	r.points = append(r.points, p3)
	return nil
}

func (r *walkRecorder) ClosePath() error {
	r.ops = append(r.ops, "close")
	return nil
}

func TestPathWalkOrder(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.CurveTo(12, 0, 14, 2, 14, 4)
	p.ClosePath()

	var rec walkRecorder
	if err := p.Walk(&rec); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	wantOps := []string{"move", "line", "curve", "close"}
	if len(rec.ops) != len(wantOps) {
		t.Fatalf("ops = %v, want %v", rec.ops, wantOps)
	}
	for i, op := range wantOps {
		if rec.ops[i] != op {
			t.Errorf("ops[%d] = %q, want %q", i, rec.ops[i], op)
		}
	}
	if rec.points[1] != Pt(10, 0) {
		t.Errorf("LineTo point = %v, want %v", rec.points[1], Pt(10, 0))
	}
}

type failingWalker struct {
	walkRecorder
	failAt string
	err    error
}

func (w *failingWalker) LineTo(p fixed.Point26_6) error {
	if w.failAt == "line" {
		return w.err
	}
	return w.walkRecorder.LineTo(p)
}

func TestPathWalkStopsOnError(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(1, 1)
	p.LineTo(2, 2)

	w := &failingWalker{failAt: "line", err: ErrUnsupported}
	if err := p.Walk(w); err != ErrUnsupported {
		t.Fatalf("Walk() error = %v, want ErrUnsupported", err)
	}
	// only the MoveTo made it through
	if len(w.ops) != 1 || w.ops[0] != "move" {
		t.Errorf("ops = %v, want [move]", w.ops)
	}
}

func TestPathCurrentPoint(t *testing.T) {
	p := NewPath()
	if _, ok := p.CurrentPoint(); ok {
		t.Error("empty path has a current point")
	}
	p.MoveTo(3, 4)
	p.LineTo(5, 6)
	if pt, ok := p.CurrentPoint(); !ok || pt != Pt(5, 6) {
		t.Errorf("CurrentPoint() = %v, %v", pt, ok)
	}
	p.ClosePath()
	if pt, _ := p.CurrentPoint(); pt != Pt(3, 4) {
		t.Errorf("CurrentPoint() after close = %v, want sub-path start", pt)
	}
	p.Clear()
	if _, ok := p.CurrentPoint(); ok || len(p.Elements()) != 0 {
		t.Error("Clear() did not reset the path")
	}
}

func TestPathRectangle(t *testing.T) {
	p := NewPath()
	p.Rectangle(10, 20, 30, 40)
	if len(p.Elements()) != 5 {
		t.Fatalf("Rectangle recorded %d elements, want 5", len(p.Elements()))
	}
	box, ok := p.strokeBox()
	if !ok {
		t.Fatal("Rectangle not detected as a stroke box")
	}
	if box.P1 != Pt(10, 20) || box.P2 != Pt(40, 60) {
		t.Errorf("box = %v-%v, want (10,20)-(40,60)", box.P1, box.P2)
	}
}

func TestStrokeBox(t *testing.T) {
	build := func(f func(*Path)) *Path {
		p := NewPath()
		f(p)
		return p
	}
	tests := []struct {
		name string
		path *Path
		want bool
	}{
		{"three lines closed", build(func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(10, 0)
			p.LineTo(10, 10)
			p.LineTo(0, 10)
			p.ClosePath()
		}), true},
		{"four lines back to start", build(func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(10, 0)
			p.LineTo(10, 10)
			p.LineTo(0, 10)
			p.LineTo(0, 0)
			p.ClosePath()
		}), true},
		{"vertical-first rectangle", build(func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(0, 10)
			p.LineTo(10, 10)
			p.LineTo(10, 0)
			p.ClosePath()
		}), true},
		{"open rectangle", build(func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(10, 0)
			p.LineTo(10, 10)
			p.LineTo(0, 10)
		}), false},
		{"diagonal edge", build(func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(10, 5)
			p.LineTo(10, 10)
			p.LineTo(0, 10)
			p.ClosePath()
		}), false},
		{"four lines not returning", build(func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(10, 0)
			p.LineTo(10, 10)
			p.LineTo(0, 10)
			p.LineTo(0, 5)
			p.ClosePath()
		}), false},
		{"degenerate edge", build(func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(0, 0)
			p.LineTo(10, 0)
			p.LineTo(10, 10)
			p.ClosePath()
		}), false},
		{"curve present", build(func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(10, 0)
			p.CurveTo(10, 5, 10, 8, 10, 10)
			p.LineTo(0, 10)
			p.ClosePath()
		}), false},
		{"just a line", build(func(p *Path) {
			p.MoveTo(0, 0)
			p.LineTo(10, 0)
		}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := tt.path.strokeBox(); got != tt.want {
				t.Errorf("strokeBox() = %v, want %v", got, tt.want)
			}
		})
	}
}
