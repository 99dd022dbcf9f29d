package stroker

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/stroker/internal/dasher"
)

// Rectilinear fast path. Every segment of the stroke becomes an
// axis-aligned box, so the expensive polygon machinery is bypassed
// entirely. The driver refuses anything it cannot express this way and
// the caller falls back to the general driver on ErrUnsupported.

type rectSegment struct {
	p1, p2 fixed.Point26_6
	flags  uint8
}

const (
	segHorizontal uint8 = 0x1
	segForwards   uint8 = 0x2
	segJoin       uint8 = 0x4
)

var _ PathWalker = (*rectStroker)(nil)

type rectStroker struct {
	style Style
	ctm   Matrix

	halfLineX fixed.Int26_6
	halfLineY fixed.Int26_6

	currentPoint fixed.Point26_6
	firstPoint   fixed.Point26_6
	openSubPath  bool

	dash dasher.State

	segments []rectSegment
	boxes    []Box
}

// newRectStroker vets the stroke configuration. The fast path only
// supports miter joins that survive right angles (limit >= sqrt(2)), butt
// or square caps and a scale-only transform.
func newRectStroker(style Style, ctm Matrix) (*rectStroker, bool) {
	if style.Join != JoinMiter {
		return nil, false
	}
	if style.MiterLimit < math.Sqrt2 {
		return nil, false
	}
	if style.Cap != CapButt && style.Cap != CapSquare {
		return nil, false
	}
	if !ctm.IsScale() {
		return nil, false
	}

	s := &rectStroker{
		style:     style,
		ctm:       ctm,
		halfLineX: FromFloat(math.Abs(ctm.A) * style.Width / 2),
		halfLineY: FromFloat(math.Abs(ctm.E) * style.Width / 2),
		segments:  make([]rectSegment, 0, 8),
	}
	if style.IsDashed() {
		s.dash = dasher.New(style.Dash.Array, style.Dash.Offset)
	}
	return s, true
}

func (s *rectStroker) addSegment(p1, p2 fixed.Point26_6, flags uint8) {
	s.segments = append(s.segments, rectSegment{p1: p1, p2: p2, flags: flags})
}

func (s *rectStroker) addBox(a, b fixed.Point26_6) {
	var box Box
	if a.X < b.X {
		box.P1.X, box.P2.X = a.X, b.X
	} else {
		box.P1.X, box.P2.X = b.X, a.X
	}
	if a.Y < b.Y {
		box.P1.Y, box.P2.Y = a.Y, b.Y
	} else {
		box.P1.Y, box.P2.Y = b.Y, a.Y
	}
	s.boxes = append(s.boxes, box)
}

// emitSegments converts the pending undashed segments to boxes. Each
// endpoint is first lengthened to cover the neighboring join (when the
// neighbor runs along the other axis) or the cap, then the segment is
// expanded by the half line width perpendicular to its axis. Overlaps are
// left for the tessellation to remove.
func (s *rectStroker) emitSegments() {
	n := len(s.segments)
	for i := 0; i < n; i++ {
		a, b := s.segments[i].p1, s.segments[i].p2

		j := i - 1
		if i == 0 {
			j = n - 1
		}
		lengthenInitial := (s.segments[i].flags^s.segments[j].flags)&segHorizontal != 0
		j = i + 1
		if i == n-1 {
			j = 0
		}
		lengthenFinal := (s.segments[i].flags^s.segments[j].flags)&segHorizontal != 0
		if s.openSubPath {
			if i == 0 {
				lengthenInitial = s.style.Cap != CapButt
			}
			if i == n-1 {
				lengthenFinal = s.style.Cap != CapButt
			}
		}

		if lengthenInitial || lengthenFinal {
			if a.Y == b.Y {
				if a.X < b.X {
					if lengthenInitial {
						a.X -= s.halfLineX
					}
					if lengthenFinal {
						b.X += s.halfLineX
					}
				} else {
					if lengthenInitial {
						a.X += s.halfLineX
					}
					if lengthenFinal {
						b.X -= s.halfLineX
					}
				}
			} else {
				if a.Y < b.Y {
					if lengthenInitial {
						a.Y -= s.halfLineY
					}
					if lengthenFinal {
						b.Y += s.halfLineY
					}
				} else {
					if lengthenInitial {
						a.Y += s.halfLineY
					}
					if lengthenFinal {
						b.Y -= s.halfLineY
					}
				}
			}
		}

		if a.Y == b.Y {
			a.Y -= s.halfLineY
			b.Y += s.halfLineY
		} else {
			a.X -= s.halfLineX
			b.X += s.halfLineX
		}

		s.addBox(a, b)
	}
	s.segments = s.segments[:0]
}

// emitSegmentsDashed converts the pending dashed segments to boxes. Butt
// caps leave gaps at inner joins, so an explicit join box is added at each
// segment end that continues into the next one.
func (s *rectStroker) emitSegmentsDashed() {
	n := len(s.segments)
	for i := 0; i < n; i++ {
		a, b := s.segments[i].p1, s.segments[i].p2
		isHorizontal := s.segments[i].flags&segHorizontal != 0

		if s.style.Cap == CapButt &&
			s.segments[i].flags&segJoin != 0 &&
			(i != n-1 || (!s.openSubPath && s.dash.StartsOn)) {

			next := s.segments[(i+1)%n]
			outDX := next.p2.X - next.p1.X
			outDY := next.p2.Y - next.p1.Y
			forwards := s.segments[i].flags&segForwards != 0

			p1 := s.segments[i].p2
			p2 := p1
			if isHorizontal {
				if forwards {
					p2.X += s.halfLineX
				} else {
					p1.X -= s.halfLineX
				}
				if outDY > 0 {
					p1.Y -= s.halfLineY
				} else {
					p2.Y += s.halfLineY
				}
			} else {
				if forwards {
					p2.Y += s.halfLineY
				} else {
					p1.Y -= s.halfLineY
				}
				if outDX > 0 {
					p1.X -= s.halfLineX
				} else {
					p2.X += s.halfLineX
				}
			}
			s.addBox(p1, p2)
		}

		if isHorizontal {
			if s.style.Cap == CapSquare {
				if a.X <= b.X {
					a.X -= s.halfLineX
					b.X += s.halfLineX
				} else {
					a.X += s.halfLineX
					b.X -= s.halfLineX
				}
			}
			a.Y += s.halfLineY
			b.Y -= s.halfLineY
		} else {
			if s.style.Cap == CapSquare {
				if a.Y <= b.Y {
					a.Y -= s.halfLineY
					b.Y += s.halfLineY
				} else {
					a.Y += s.halfLineY
					b.Y -= s.halfLineY
				}
			}
			a.X += s.halfLineX
			b.X -= s.halfLineX
		}

		if a == b {
			continue
		}
		s.addBox(a, b)
	}
	s.segments = s.segments[:0]
}

// MoveTo implements PathWalker.
func (s *rectStroker) MoveTo(p fixed.Point26_6) error {
	if s.dash.Dashed {
		s.emitSegmentsDashed()
	} else {
		s.emitSegments()
	}

	s.dash.Start()

	s.currentPoint = p
	s.firstPoint = p
	return nil
}

// LineTo implements PathWalker. Only axis-aligned segments are accepted.
func (s *rectStroker) LineTo(p fixed.Point26_6) error {
	if s.dash.Dashed {
		return s.lineToDashed(p)
	}

	a, b := s.currentPoint, p

	if a.X != b.X && a.Y != b.Y {
		return ErrUnsupported
	}
	if a == b {
		return nil
	}

	flags := segJoin
	if a.Y == b.Y {
		flags |= segHorizontal
	}
	s.addSegment(a, b, flags)

	s.currentPoint = b
	s.openSubPath = true
	return nil
}

func (s *rectStroker) lineToDashed(p fixed.Point26_6) error {
	a, b := s.currentPoint, p

	if a == b {
		return nil
	}
	if a.X != b.X && a.Y != b.Y {
		return ErrUnsupported
	}

	var (
		mag   fixed.Int26_6
		sf    float64
		flags uint8
	)
	if a.Y == b.Y {
		mag = b.X - a.X
		sf = math.Abs(s.ctm.A)
		flags = segHorizontal
	} else {
		mag = b.Y - a.Y
		sf = math.Abs(s.ctm.E)
	}

	var remain, sign float64
	if mag < 0 {
		remain = ToFloat(-mag)
		sign = 1
	} else {
		remain = ToFloat(mag)
		flags |= segForwards
		sign = -1
	}

	segP1 := a
	segP2 := a
	dashOn := false
	for remain > 0 {
		step := math.Min(sf*s.dash.Remain, remain)
		remain -= step

		d := FromFloat(sign * remain)
		if flags&segHorizontal != 0 {
			segP2.X = b.X + d
		} else {
			segP2.Y = b.Y + d
		}

		if s.dash.On {
			f := flags
			if remain <= 0 {
				f |= segJoin
			}
			s.addSegment(segP1, segP2, f)
			dashOn = true
		} else {
			dashOn = false
		}

		s.dash.Step(step / sf)
		segP1 = segP2
	}

	if s.dash.On && !dashOn {
		// The segment ends exactly on a transition to on: record a
		// degenerate segment so the next dash is joined to it.
		s.addSegment(segP1, segP1, flags|segJoin)
	}

	s.currentPoint = p
	s.openSubPath = true
	return nil
}

// CurveTo implements PathWalker. Curves are never rectilinear.
func (s *rectStroker) CurveTo(b, c, d fixed.Point26_6) error {
	return ErrUnsupported
}

// ClosePath implements PathWalker.
func (s *rectStroker) ClosePath() error {
	if !s.openSubPath {
		return nil
	}

	var err error
	if s.dash.Dashed {
		err = s.lineToDashed(s.firstPoint)
	} else {
		err = s.LineTo(s.firstPoint)
	}
	if err != nil {
		return err
	}

	s.openSubPath = false

	if s.dash.Dashed {
		s.emitSegmentsDashed()
	} else {
		s.emitSegments()
	}
	return nil
}

// StrokeRectilinearToBoxes strokes an axis-aligned path into a set of
// non-overlapping boxes. It returns ErrUnsupported when the style or path
// does not fit the fast path; the caller should fall back to StrokeToTraps.
//
// A closed undashed rectangle wider than the line is special-cased into
// four boxes that cannot overlap, skipping the tessellation entirely.
func StrokeRectilinearToBoxes(path *Path, style Style, ctm Matrix, tolerance float64, tess Tessellator) ([]Box, error) {
	if style.Width <= 0 {
		return nil, nil
	}
	if err := checkMatrix(ctm); err != nil {
		return nil, err
	}

	s, ok := newRectStroker(style, ctm)
	if !ok {
		return nil, ErrUnsupported
	}

	if !s.dash.Dashed {
		if box, ok := path.strokeBox(); ok &&
			box.P2.X-box.P1.X > 2*s.halfLineX &&
			box.P2.Y-box.P1.Y > 2*s.halfLineY {

			return []Box{
				{ // top
					P1: fixedPoint(box.P1.X-s.halfLineX, box.P1.Y-s.halfLineY),
					P2: fixedPoint(box.P2.X+s.halfLineX, box.P1.Y+s.halfLineY),
				},
				{ // left, excluding the corners
					P1: fixedPoint(box.P1.X-s.halfLineX, box.P1.Y+s.halfLineY),
					P2: fixedPoint(box.P1.X+s.halfLineX, box.P2.Y-s.halfLineY),
				},
				{ // right, excluding the corners
					P1: fixedPoint(box.P2.X-s.halfLineX, box.P1.Y+s.halfLineY),
					P2: fixedPoint(box.P2.X+s.halfLineX, box.P2.Y-s.halfLineY),
				},
				{ // bottom
					P1: fixedPoint(box.P1.X-s.halfLineX, box.P2.Y-s.halfLineY),
					P2: fixedPoint(box.P2.X+s.halfLineX, box.P2.Y+s.halfLineY),
				},
			}, nil
		}
	}

	if err := path.Walk(s); err != nil {
		return nil, err
	}

	if s.dash.Dashed {
		s.emitSegmentsDashed()
	} else {
		s.emitSegments()
	}

	if len(s.boxes) == 0 {
		return nil, nil
	}

	// Boxes from adjacent segments overlap at the joins; the
	// tessellation removes the self-intersections.
	return tess.MergeBoxes(s.boxes, FillRuleWinding)
}

// StrokeRectilinear is StrokeRectilinearToBoxes writing into a BoxSink
// instead of returning a slice.
func StrokeRectilinear(path *Path, style Style, ctm Matrix, tolerance float64, tess Tessellator, sink BoxSink) error {
	boxes, err := StrokeRectilinearToBoxes(path, style, ctm, tolerance, tess)
	if err != nil {
		return err
	}
	for _, b := range boxes {
		if err := sink.AddBox(b); err != nil {
			return err
		}
	}
	return nil
}
