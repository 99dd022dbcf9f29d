package stroker

import "golang.org/x/image/math/fixed"

// PathElement represents a single element in a recorded path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new sub-path at a point.
type MoveTo struct {
	Point fixed.Point26_6
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point fixed.Point26_6
}

func (LineTo) isPathElement() {}

// CurveTo draws a cubic Bezier curve to P3 with control points P1, P2.
type CurveTo struct {
	P1, P2, P3 fixed.Point26_6
}

func (CurveTo) isPathElement() {}

// Close closes the current sub-path, joining back to its starting point.
type Close struct{}

func (Close) isPathElement() {}

// PathWalker is the push interface a path is replayed through, in original
// recording order. ClosePath implies an implicit line back to the
// sub-path's starting point before the closing join.
type PathWalker interface {
	MoveTo(p fixed.Point26_6) error
	LineTo(p fixed.Point26_6) error
	CurveTo(p1, p2, p3 fixed.Point26_6) error
	ClosePath() error
}

// Path records move/line/curve/close commands in fixed-point device
// coordinates.
type Path struct {
	elements []PathElement
	start    fixed.Point26_6 // starting point of current sub-path
	current  fixed.Point26_6
	hasCur   bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo starts a new sub-path at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.hasCur = true
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	p.hasCur = true
}

// CurveTo draws a cubic Bezier curve to (x, y) with the two control
// points.
func (p *Path) CurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CurveTo{
		P1: Pt(c1x, c1y),
		P2: Pt(c2x, c2y),
		P3: pt,
	})
	p.current = pt
	p.hasCur = true
}

// ClosePath closes the current sub-path.
func (p *Path) ClosePath() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Rectangle adds a closed axis-aligned rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = fixed.Point26_6{}
	p.current = fixed.Point26_6{}
	p.hasCur = false
}

// Elements returns the recorded path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// CurrentPoint returns the current point and whether one exists.
func (p *Path) CurrentPoint() (fixed.Point26_6, bool) {
	return p.current, p.hasCur
}

// Walk replays the path through the walker in recording order. The first
// walker error aborts the replay and is returned.
func (p *Path) Walk(w PathWalker) error {
	for _, elem := range p.elements {
		var err error
		switch e := elem.(type) {
		case MoveTo:
			err = w.MoveTo(e.Point)
		case LineTo:
			err = w.LineTo(e.Point)
		case CurveTo:
			err = w.CurveTo(e.P1, e.P2, e.P3)
		case Close:
			err = w.ClosePath()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// strokeBox reports whether the path is a single closed axis-aligned
// rectangle, and returns its bounding box. The rectilinear fast path
// special-cases this shape into four non-overlapping boxes, skipping the
// tessellator.
func (p *Path) strokeBox() (Box, bool) {
	// move, 3 or 4 lines, close
	n := len(p.elements)
	if n < 5 || n > 6 {
		return Box{}, false
	}

	mv, ok := p.elements[0].(MoveTo)
	if !ok {
		return Box{}, false
	}
	if _, ok := p.elements[n-1].(Close); !ok {
		return Box{}, false
	}

	pts := make([]fixed.Point26_6, 0, 5)
	pts = append(pts, mv.Point)
	for _, elem := range p.elements[1 : n-1] {
		ln, ok := elem.(LineTo)
		if !ok {
			return Box{}, false
		}
		pts = append(pts, ln.Point)
	}

	// With 4 explicit lines the last must return to the start.
	if len(pts) == 5 {
		if pts[4] != pts[0] {
			return Box{}, false
		}
		pts = pts[:4]
	}

	// Corners must alternate horizontal/vertical around the loop.
	for i := range pts {
		a, b := pts[i], pts[(i+1)%4]
		if a.X != b.X && a.Y != b.Y {
			return Box{}, false
		}
		if a == b {
			return Box{}, false
		}
	}
	if pts[0].X == pts[1].X && pts[1].Y == pts[2].Y {
		// vertical first: fine, handled by the min/max below
	} else if pts[0].Y != pts[1].Y || pts[1].X != pts[2].X {
		return Box{}, false
	}

	box := Box{P1: pts[0], P2: pts[0]}
	for _, pt := range pts[1:] {
		if pt.X < box.P1.X {
			box.P1.X = pt.X
		}
		if pt.Y < box.P1.Y {
			box.P1.Y = pt.Y
		}
		if pt.X > box.P2.X {
			box.P2.X = pt.X
		}
		if pt.Y > box.P2.Y {
			box.P2.Y = pt.Y
		}
	}
	return box, true
}
