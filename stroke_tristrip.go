package stroker

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/stroker/internal/slope"
	"github.com/gogpu/stroker/internal/spline"
)

// Triangle-strip driver. It trades exactness for a renderer-friendly
// layout: both offset rails feed one strip of alternating points, and
// inner joins are collapsed to the anchor instead of being clipped. The
// overdraw near sharp inner corners is the accepted cost of this mode.

var _ PathWalker = (*tristripStroker)(nil)

type tristripStroker struct {
	strokeContext

	strip StripSink

	firstPoint fixed.Point26_6

	hasSubPath bool

	hasCurrentFace bool
	currentFace    Face

	hasFirstFace bool
	firstFace    Face

	hasLast bool
	last    fixed.Point26_6
}

func (s *tristripStroker) addPoint(p fixed.Point26_6) error {
	s.last = p
	s.hasLast = true
	return s.strip.AddPoint(p)
}

// moveToStrip restarts the strip at p. The previous point and p are
// repeated so the connecting triangles are degenerate and invisible.
func (s *tristripStroker) moveToStrip(p fixed.Point26_6) error {
	if !s.hasLast {
		return nil
	}
	if err := s.strip.AddPoint(s.last); err != nil {
		return err
	}
	return s.addPoint(p)
}

// turnIsClockwise is the strip driver's orientation test. It is the
// mirror of joinIsClockwise: this driver walks its fans and picks its
// join sides in the opposite vertex order from the polygon driver.
func turnIsClockwise(in, out Face) bool {
	return slope.Compare(in.DevVector, out.DevVector) < 0
}

func rangeStep(i, step, max int) int {
	i += step
	if i < 0 {
		i = max - 1
	}
	if i >= max {
		i = 0
	}
	return i
}

// addFan walks the pen vertices between the in and out directions,
// appending each to the strip. The active range endpoints are clamped so
// that only vertices strictly inside the wedge are used.
func (s *tristripStroker) addFan(inVec, outVec slope.Slope, mid fixed.Point26_6, clockwise bool) error {
	n := s.pen.Count()
	var start, stop, step, npoints int

	if clockwise {
		step = 1

		start = s.pen.FindActiveCWVertexIndex(inVec)
		if slope.Compare(s.pen.Vertex(start).SlopeCW, inVec) < 0 {
			start = rangeStep(start, 1, n)
		}

		stop = s.pen.FindActiveCWVertexIndex(outVec)
		if slope.Compare(s.pen.Vertex(stop).SlopeCCW, outVec) > 0 {
			stop = rangeStep(stop, -1, n)
			if slope.Compare(s.pen.Vertex(stop).SlopeCW, inVec) < 0 {
				return nil
			}
		}

		npoints = stop - start
	} else {
		step = -1

		start = s.pen.FindActiveCCWVertexIndex(inVec)
		if slope.Compare(s.pen.Vertex(start).SlopeCCW, inVec) < 0 {
			start = rangeStep(start, -1, n)
		}

		stop = s.pen.FindActiveCCWVertexIndex(outVec)
		if slope.Compare(s.pen.Vertex(stop).SlopeCW, outVec) > 0 {
			stop = rangeStep(stop, 1, n)
			if slope.Compare(s.pen.Vertex(stop).SlopeCCW, inVec) < 0 {
				return nil
			}
		}

		npoints = start - stop
	}
	stop = rangeStep(stop, step, n)
	if npoints < 0 {
		npoints += n
	}
	if npoints <= 1 {
		return nil
	}

	for i := start; i != stop; i = rangeStep(i, step, n) {
		if err := s.addPoint(translatePoint(mid, s.pen.Vertex(i).Point)); err != nil {
			return err
		}
	}
	return nil
}

// innerJoin collapses the inner side of a corner to the anchor point.
func (s *tristripStroker) innerJoin(in, out Face, clockwise bool) error {
	outpt := out.CW
	if clockwise {
		outpt = out.CCW
	}

	if err := s.addPoint(in.Point); err != nil {
		return err
	}
	return s.addPoint(outpt)
}

// outerJoin fills the outer side of a corner according to the join style.
func (s *tristripStroker) outerJoin(in, out Face, clockwise bool) error {
	if in.CW == out.CW && in.CCW == out.CCW {
		return nil
	}

	var outpt fixed.Point26_6
	if clockwise {
		outpt = out.CW
	} else {
		outpt = out.CCW
	}

	switch s.style.Join {
	case JoinRound:
		if err := s.addFan(in.DevVector, out.DevVector, in.Point, clockwise); err != nil {
			return err
		}

	case JoinMiter:
		var inpt fixed.Point26_6
		if clockwise {
			inpt = in.CW
		} else {
			inpt = in.CCW
		}
		if apex, ok := s.miterApex(in, out, inpt, outpt); ok {
			return s.addPoint(apex)
		}
	}

	return s.addPoint(outpt)
}

func (s *tristripStroker) addCap(f Face) error {
	switch s.style.Cap {
	case CapRound:
		if err := s.addFan(f.DevVector, f.DevVector.Negate(), f.Point, false); err != nil {
			return err
		}

	case CapSquare:
		dx := f.UsrVector.X * s.halfLineWidth
		dy := f.UsrVector.Y * s.halfLineWidth
		dx, dy = s.ctm.TransformDistance(dx, dy)
		fv := fixed.Point26_6{X: FromFloat(dx), Y: FromFloat(dy)}

		if err := s.addPoint(translatePoint(f.CCW, fv)); err != nil {
			return err
		}
		if err := s.addPoint(translatePoint(f.CW, fv)); err != nil {
			return err
		}
	}

	return s.addPoint(f.CW)
}

func (s *tristripStroker) addLeadingCap(f Face) error {
	return s.addCap(f.reversed())
}

func (s *tristripStroker) addTrailingCap(f Face) error {
	return s.addCap(f)
}

func (s *tristripStroker) addCaps() error {
	if s.hasSubPath &&
		!s.hasFirstFace && !s.hasCurrentFace &&
		s.style.Cap == CapRound {

		face := s.computeFace(s.firstPoint, slope.Slope{DX: fixedOne, DY: 0})

		if err := s.addLeadingCap(face); err != nil {
			return err
		}
		return s.addTrailingCap(face)
	}

	if s.hasCurrentFace {
		if err := s.addTrailingCap(s.currentFace); err != nil {
			return err
		}
	}
	if s.hasFirstFace {
		if err := s.addLeadingCap(s.firstFace); err != nil {
			return err
		}
	}
	return nil
}

// MoveTo implements PathWalker.
func (s *tristripStroker) MoveTo(p fixed.Point26_6) error {
	if err := s.addCaps(); err != nil {
		return err
	}

	s.hasFirstFace = false
	s.hasCurrentFace = false
	s.hasSubPath = false

	s.firstPoint = p
	s.currentFace.Point = p

	return nil
}

// LineTo implements PathWalker.
func (s *tristripStroker) LineTo(p fixed.Point26_6) error {
	s.hasSubPath = true

	p1 := s.currentFace.Point
	if p1 == p {
		return nil
	}

	devSlope := slope.Between(p1, p)
	start := s.computeFace(p1, devSlope)

	if s.hasCurrentFace {
		clockwise := turnIsClockwise(s.currentFace, start)
		if err := s.outerJoin(s.currentFace, start, clockwise); err != nil {
			return err
		}
		if err := s.innerJoin(s.currentFace, start, clockwise); err != nil {
			return err
		}
	} else {
		if !s.hasFirstFace {
			s.firstFace = start
			if err := s.moveToStrip(start.CW); err != nil {
				return err
			}
			s.hasFirstFace = true
		}
		s.hasCurrentFace = true

		if err := s.addPoint(start.CW); err != nil {
			return err
		}
		if err := s.addPoint(start.CCW); err != nil {
			return err
		}
	}

	d := fixed.Point26_6{X: devSlope.DX, Y: devSlope.DY}
	s.currentFace = start
	s.currentFace.Point = p
	s.currentFace.CCW = translatePoint(s.currentFace.CCW, d)
	s.currentFace.CW = translatePoint(s.currentFace.CW, d)

	if err := s.addPoint(s.currentFace.CW); err != nil {
		return err
	}
	return s.addPoint(s.currentFace.CCW)
}

func (s *tristripStroker) splineTo(p fixed.Point26_6, tangent slope.Slope) error {
	if tangent.IsZero() {
		// The decomposed point sits on its own knot: the tangent
		// reverses in place. Turn the current face around and cover
		// the turn with a fan; no new strip points are needed.
		face := s.currentFace.reversed()
		clockwise := turnIsClockwise(s.currentFace, face)
		if err := s.addFan(s.currentFace.DevVector, face.DevVector,
			s.currentFace.Point, clockwise); err != nil {
			return err
		}
		s.currentFace = face
		return nil
	}

	face := s.computeFace(p, tangent)

	// A direction reversal between consecutive spline segments is a
	// cusp; cover it with a fan before continuing.
	if face.DevSlope.Dot(s.currentFace.DevSlope) < 0 {
		clockwise := turnIsClockwise(s.currentFace, face)

		d := fixed.Point26_6{
			X: face.Point.X - s.currentFace.Point.X,
			Y: face.Point.Y - s.currentFace.Point.Y,
		}
		s.currentFace.CW = translatePoint(s.currentFace.CW, d)
		s.currentFace.CCW = translatePoint(s.currentFace.CCW, d)

		if err := s.addFan(s.currentFace.DevVector, face.DevVector,
			s.currentFace.Point, clockwise); err != nil {
			return err
		}
	}

	if err := s.addPoint(face.CW); err != nil {
		return err
	}
	if err := s.addPoint(face.CCW); err != nil {
		return err
	}

	s.currentFace = face
	return nil
}

// CurveTo implements PathWalker.
func (s *tristripStroker) CurveTo(b, c, d fixed.Point26_6) error {
	sp, ok := spline.New(s.currentFace.Point, b, c, d, s.splineTo)
	if !ok {
		return s.LineTo(d)
	}

	s.hasSubPath = true

	face := s.computeFace(s.currentFace.Point, sp.InitialSlope)

	if s.hasCurrentFace {
		clockwise := turnIsClockwise(s.currentFace, face)
		if err := s.outerJoin(s.currentFace, face, clockwise); err != nil {
			return err
		}
		if err := s.innerJoin(s.currentFace, face, clockwise); err != nil {
			return err
		}
	} else {
		if !s.hasFirstFace {
			s.firstFace = face
			if err := s.moveToStrip(face.CW); err != nil {
				return err
			}
			s.hasFirstFace = true
		}
		s.hasCurrentFace = true

		if err := s.addPoint(face.CW); err != nil {
			return err
		}
		if err := s.addPoint(face.CCW); err != nil {
			return err
		}
	}
	s.currentFace = face

	return sp.Decompose(s.tolerance)
}

// ClosePath implements PathWalker.
func (s *tristripStroker) ClosePath() error {
	if err := s.LineTo(s.firstPoint); err != nil {
		return err
	}

	if s.hasFirstFace && s.hasCurrentFace {
		clockwise := turnIsClockwise(s.currentFace, s.firstFace)
		if err := s.outerJoin(s.currentFace, s.firstFace, clockwise); err != nil {
			return err
		}
		if err := s.innerJoin(s.currentFace, s.firstFace, clockwise); err != nil {
			return err
		}
	} else {
		if err := s.addCaps(); err != nil {
			return err
		}
	}

	s.hasSubPath = false
	s.hasFirstFace = false
	s.hasCurrentFace = false

	return nil
}

// StrokeToStrip strokes path into a single triangle strip, the layout GPU
// renderers consume directly. Inner joins are collapsed to the path
// anchor, so self-overlap (and therefore overdraw) is possible near sharp
// corners; use StrokeToTraps when exact coverage matters.
//
// Dashed styles are not supported and return ErrUnsupported.
func StrokeToStrip(path *Path, style Style, ctm Matrix, tolerance float64, sink StripSink) error {
	if style.IsDashed() {
		return ErrUnsupported
	}
	if style.Width <= 0 {
		return nil
	}
	if err := checkMatrix(ctm); err != nil {
		return err
	}

	s := &tristripStroker{
		strokeContext: newStrokeContext(style, ctm, ctm.Invert(), tolerance),
		strip:         sink,
	}

	if s.pen.Count() <= 1 {
		return nil
	}

	if err := path.Walk(s); err != nil {
		return err
	}
	return s.addCaps()
}
