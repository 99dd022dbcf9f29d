package stroker

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/stroker/internal/dasher"
	"github.com/gogpu/stroker/internal/pen"
	"github.com/gogpu/stroker/internal/slope"
	"github.com/gogpu/stroker/internal/spline"
)

// DefaultTolerance is the flattening tolerance used when a caller passes a
// non-positive tolerance, in device units.
const DefaultTolerance = 0.1

// strokeContext holds the per-call derived constants shared by the general
// and triangle-strip drivers. It is exclusively owned by one stroke call
// and never shared across goroutines.
type strokeContext struct {
	style      Style
	ctm        Matrix
	ctmInverse Matrix
	tolerance  float64

	halfLineWidth       float64
	splineCuspTolerance float64
	ctmDetPositive      bool

	pen  *pen.Pen
	dash dasher.State
}

func newStrokeContext(style Style, ctm, ctmInverse Matrix, tolerance float64) strokeContext {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	hlw := style.Width / 2

	// To decide whether two spline segments need a round join, compare
	// the angle between them: when the chord distance (half width times
	// the cosine of the bisection angle) differs from the half width by
	// more than the tolerance, a fan must be injected.
	cusp := -1.0
	if hlw > 0 {
		v := 1 - tolerance/hlw
		cusp = 2*v*v - 1
	}

	c := strokeContext{
		style:               style,
		ctm:                 ctm,
		ctmInverse:          ctmInverse,
		tolerance:           tolerance,
		halfLineWidth:       hlw,
		splineCuspTolerance: cusp,
		ctmDetPositive:      ctm.Determinant() >= 0,
		pen:                 pen.New(hlw, tolerance, ctm),
	}

	if style.IsDashed() {
		c.dash = dasher.New(style.Dash.Array, style.Dash.Offset)
	}

	return c
}

// joinIsClockwise reports the turn direction from the incoming face to the
// outgoing one.
func joinIsClockwise(in, out Face) bool {
	return slope.Compare(out.DevVector, in.DevVector) < 0
}

// stroker is the general driver: it replays a path, computes faces, joins
// and caps, and writes into either a PolygonSink or an EdgeSink (selected
// once per call, never both).
var _ PathWalker = (*stroker)(nil)

type stroker struct {
	strokeContext

	poly  PolygonSink
	edges EdgeSink

	currentPoint fixed.Point26_6
	firstPoint   fixed.Point26_6

	hasInitialSubPath bool

	hasCurrentFace bool
	currentFace    Face

	hasFirstFace bool
	firstFace    Face
}

// tessellateFan constructs a fan around mid using the pen vertices lying
// between the in and out directions. An empty active range degrades to a
// single bevel triangle so the join is still closed.
func (s *stroker) tessellateFan(inVec, outVec slope.Slope, mid, inpt, outpt fixed.Point26_6, clockwise bool) error {
	if clockwise {
		start, stop := s.pen.FindActiveCCWVertices(inVec, outVec)
		if s.edges != nil {
			last := inpt
			for start != stop {
				p := translatePoint(mid, s.pen.Vertex(start).Point)
				if err := s.edges.AddEdge(last, p); err != nil {
					return err
				}
				last = p
				if start--; start < 0 {
					start += s.pen.Count()
				}
			}
			return s.edges.AddEdge(last, outpt)
		}

		if start == stop {
			return s.bevelFan(mid, inpt, outpt, clockwise)
		}
		points := make([]fixed.Point26_6, 0, s.pen.Count()+2)
		points = append(points, inpt)
		for start != stop {
			points = append(points, translatePoint(mid, s.pen.Vertex(start).Point))
			if start--; start < 0 {
				start += s.pen.Count()
			}
		}
		points = append(points, outpt)
		return s.poly.AddTriangleFan(mid, points)
	}

	start, stop := s.pen.FindActiveCWVertices(inVec, outVec)
	if s.edges != nil {
		last := inpt
		for start != stop {
			p := translatePoint(mid, s.pen.Vertex(start).Point)
			if err := s.edges.AddEdge(p, last); err != nil {
				return err
			}
			last = p
			if start++; start == s.pen.Count() {
				start = 0
			}
		}
		return s.edges.AddEdge(outpt, last)
	}

	if start == stop {
		return s.bevelFan(mid, inpt, outpt, clockwise)
	}
	points := make([]fixed.Point26_6, 0, s.pen.Count()+2)
	points = append(points, inpt)
	for start != stop {
		points = append(points, translatePoint(mid, s.pen.Vertex(start).Point))
		if start++; start == s.pen.Count() {
			start = 0
		}
	}
	points = append(points, outpt)
	return s.poly.AddTriangleFan(mid, points)
}

// bevelFan guarantees a leak-free connection when the pen has no active
// vertices between the two directions.
func (s *stroker) bevelFan(mid, inpt, outpt fixed.Point26_6, clockwise bool) error {
	if s.edges != nil {
		if clockwise {
			return s.edges.AddEdge(inpt, outpt)
		}
		return s.edges.AddEdge(outpt, inpt)
	}
	return s.poly.AddTriangle(mid, inpt, outpt)
}

// join fills the wedge between the incoming face and the outgoing one. A
// join where both offset point pairs coincide is invisible and skipped.
func (s *stroker) join(in, out Face) error {
	if in.CW == out.CW && in.CCW == out.CCW {
		return nil
	}

	clockwise := joinIsClockwise(in, out)

	var inpt, outpt fixed.Point26_6
	if clockwise {
		if s.edges != nil {
			if err := s.edges.AddEdge(out.CW, in.Point); err != nil {
				return err
			}
			if err := s.edges.AddEdge(in.Point, in.CW); err != nil {
				return err
			}
		}
		inpt, outpt = in.CCW, out.CCW
	} else {
		if s.edges != nil {
			if err := s.edges.AddEdge(in.CCW, in.Point); err != nil {
				return err
			}
			if err := s.edges.AddEdge(in.Point, out.CCW); err != nil {
				return err
			}
		}
		inpt, outpt = in.CW, out.CW
	}

	switch s.style.Join {
	case JoinRound:
		return s.tessellateFan(in.DevVector, out.DevVector, in.Point, inpt, outpt, clockwise)

	case JoinMiter:
		if apex, ok := s.miterApex(in, out, inpt, outpt); ok {
			if s.edges != nil {
				if clockwise {
					if err := s.edges.AddEdge(inpt, apex); err != nil {
						return err
					}
					return s.edges.AddEdge(apex, outpt)
				}
				if err := s.edges.AddEdge(outpt, apex); err != nil {
					return err
				}
				return s.edges.AddEdge(apex, inpt)
			}
			return s.poly.AddConvexQuad([4]fixed.Point26_6{in.Point, inpt, apex, outpt})
		}
	}

	// Bevel, and the miter fallback.
	if s.edges != nil {
		if clockwise {
			return s.edges.AddEdge(inpt, outpt)
		}
		return s.edges.AddEdge(outpt, inpt)
	}
	return s.poly.AddTriangle(in.Point, inpt, outpt)
}

// miterApex computes the outer corner of a miter join, the intersection of
// the two outer face edges. ok is false when the miter limit rejects the
// join or when fixed-point perturbation pushed the intersection outside
// the wedge between the faces, in which case the caller bevels.
func (s *strokeContext) miterApex(in, out Face, inpt, outpt fixed.Point26_6) (fixed.Point26_6, bool) {
	// The join angle psi satisfies 1/sin(psi/2) = miterLength/width, and
	// with unit direction vectors in.dot(out) = cos(psi), so the limit
	// check 1/sin(psi/2) <= ml reduces to 2 <= ml^2 * (1 - in.dot(out)).
	inDotOut := -in.UsrVector.X*out.UsrVector.X - in.UsrVector.Y*out.UsrVector.Y
	ml := s.style.MiterLimit
	if 2 > ml*ml*(1-inDotOut) {
		return fixed.Point26_6{}, false
	}

	// Work in floating point: the offset points are device fixed point,
	// the directions come from user space through the transform.
	x1, y1 := ToFloat(inpt.X), ToFloat(inpt.Y)
	dx1, dy1 := s.ctm.TransformDistance(in.UsrVector.X, in.UsrVector.Y)

	x2, y2 := ToFloat(outpt.X), ToFloat(outpt.Y)
	dx2, dy2 := s.ctm.TransformDistance(out.UsrVector.X, out.UsrVector.Y)

	// Solve my directly from the two point-slope forms, then mx from the
	// edge with the larger |dy| to avoid dividing by a value near zero.
	my := ((x2-x1)*dy1*dy2 - y2*dx2*dy1 + y1*dx1*dy2) /
		(dx1*dy2 - dx2*dy1)
	var mx float64
	if math.Abs(dy1) >= math.Abs(dy2) {
		mx = (my-y1)*dx1/dy1 + x1
	} else {
		mx = (my-y2)*dx2/dy2 + x2
	}

	// When the outer edges are nearly parallel the intersection can move
	// far under fixed-point perturbation. Accept the apex only if it
	// lies between the two faces, by comparing cross-product signs
	// against each face edge.
	ix, iy := ToFloat(in.Point.X), ToFloat(in.Point.Y)

	fdx1, fdy1 := x1-ix, y1-iy
	fdx2, fdy2 := x2-ix, y2-iy
	mdx, mdy := mx-ix, my-iy

	if crossSign(fdx1, fdy1, mdx, mdy) == crossSign(fdx2, fdy2, mdx, mdy) {
		return fixed.Point26_6{}, false
	}

	return Pt(mx, my), true
}

func crossSign(dx1, dy1, dx2, dy2 float64) int {
	c := dx1*dy2 - dx2*dy1
	switch {
	case c > 0:
		return 1
	case c < 0:
		return -1
	default:
		return 0
	}
}

// addCap terminates an outward-facing face according to the cap style.
func (s *stroker) addCap(f Face) error {
	switch s.style.Cap {
	case CapRound:
		return s.tessellateFan(f.DevVector, f.DevVector.Negate(),
			f.Point, f.CW, f.CCW, false)

	case CapSquare:
		dx := f.UsrVector.X * s.halfLineWidth
		dy := f.UsrVector.Y * s.halfLineWidth
		dx, dy = s.ctm.TransformDistance(dx, dy)
		fv := fixed.Point26_6{X: FromFloat(dx), Y: FromFloat(dy)}

		quad := [4]fixed.Point26_6{
			f.CCW,
			translatePoint(f.CCW, fv),
			translatePoint(f.CW, fv),
			f.CW,
		}
		if s.edges != nil {
			for i := 0; i < 3; i++ {
				if err := s.edges.AddEdge(quad[i], quad[i+1]); err != nil {
					return err
				}
			}
			return nil
		}
		return s.poly.AddConvexQuad(quad)

	default: // CapButt
		if s.edges != nil {
			return s.edges.AddEdge(f.CCW, f.CW)
		}
		return nil
	}
}

func (s *stroker) addLeadingCap(f Face) error {
	return s.addCap(f.reversed())
}

func (s *stroker) addTrailingCap(f Face) error {
	return s.addCap(f)
}

// addCaps closes the open ends of the sub-path finished so far.
func (s *stroker) addCaps() error {
	// A fully degenerate sub-path still draws a round dot: synthesize a
	// face from an arbitrary direction and cap it on both sides.
	if s.hasInitialSubPath &&
		!s.hasFirstFace && !s.hasCurrentFace &&
		s.style.Cap == CapRound {

		face := s.computeFace(s.firstPoint, slope.Slope{DX: fixedOne, DY: 0})

		if err := s.addLeadingCap(face); err != nil {
			return err
		}
		if err := s.addTrailingCap(face); err != nil {
			return err
		}
	}

	if s.hasFirstFace {
		if err := s.addLeadingCap(s.firstFace); err != nil {
			return err
		}
	}

	if s.hasCurrentFace {
		if err := s.addTrailingCap(s.currentFace); err != nil {
			return err
		}
	}

	return nil
}

// addSubEdge emits the two offset rails of the segment p1 -> p2 and
// returns its starting and ending faces. A zero-length segment yields two
// identical faces and no geometry.
func (s *stroker) addSubEdge(p1, p2 fixed.Point26_6, devSlope slope.Slope) (start, end Face, err error) {
	start = s.computeFace(p1, devSlope)
	end = start

	if p1 == p2 {
		return start, end, nil
	}

	d := fixed.Point26_6{X: p2.X - p1.X, Y: p2.Y - p1.Y}
	end.Point = p2
	end.CCW = translatePoint(end.CCW, d)
	end.CW = translatePoint(end.CW, d)

	if s.edges != nil {
		if err := s.edges.AddEdge(end.CW, start.CW); err != nil {
			return start, end, err
		}
		if err := s.edges.AddEdge(start.CCW, end.CCW); err != nil {
			return start, end, err
		}
		return start, end, nil
	}

	err = s.poly.AddConvexQuad([4]fixed.Point26_6{start.CW, end.CW, end.CCW, start.CCW})
	return start, end, err
}

// MoveTo implements PathWalker. It finishes the previous sub-path with
// caps and restarts the dash pattern.
func (s *stroker) MoveTo(p fixed.Point26_6) error {
	s.dash.Start()

	if err := s.addCaps(); err != nil {
		return err
	}

	s.firstPoint = p
	s.currentPoint = p

	s.hasFirstFace = false
	s.hasCurrentFace = false
	s.hasInitialSubPath = false

	return nil
}

// LineTo implements PathWalker.
func (s *stroker) LineTo(p fixed.Point26_6) error {
	if s.dash.Dashed {
		return s.lineToDashed(p)
	}

	s.hasInitialSubPath = true

	p1 := s.currentPoint
	if p1 == p {
		return nil
	}

	devSlope := slope.Between(p1, p)

	start, end, err := s.addSubEdge(p1, p, devSlope)
	if err != nil {
		return err
	}

	if s.hasCurrentFace {
		// Join with the final face of the previous segment.
		if err := s.join(s.currentFace, start); err != nil {
			return err
		}
	} else if !s.hasFirstFace {
		// Save the sub-path's first face for the closing join.
		s.firstFace = start
		s.hasFirstFace = true
	}
	s.currentFace = end
	s.hasCurrentFace = true

	s.currentPoint = p
	return nil
}

// lineToDashed walks a segment in dash steps, capping each transition.
func (s *stroker) lineToDashed(p2 fixed.Point26_6) error {
	p1 := s.currentPoint

	s.hasInitialSubPath = s.dash.StartsOn

	if p1 == p2 {
		return nil
	}

	devSlope := slope.Between(p1, p2)

	nx, ny, mag, ok := s.normalizedDeviceSlope(ToFloat(devSlope.DX), ToFloat(devSlope.DY))
	if !ok {
		return nil
	}

	remain := mag
	segP1 := p1
	for remain > 0 {
		step := math.Min(s.dash.Remain, remain)
		remain -= step

		dx := nx * (mag - remain)
		dy := ny * (mag - remain)
		dx, dy = s.ctm.TransformDistance(dx, dy)
		segP2 := fixed.Point26_6{
			X: p1.X + FromFloat(dx),
			Y: p1.Y + FromFloat(dy),
		}

		if s.dash.On {
			subStart, subEnd, err := s.addSubEdge(segP1, segP2, devSlope)
			if err != nil {
				return err
			}

			switch {
			case s.hasCurrentFace:
				// Join with the final face from the previous segment.
				if err := s.join(s.currentFace, subStart); err != nil {
					return err
				}
				s.hasCurrentFace = false
			case !s.hasFirstFace && s.dash.StartsOn:
				// Save the sub-path's first face for the closing join.
				s.firstFace = subStart
				s.hasFirstFace = true
			default:
				// Cap the dash start: it does not connect backwards.
				if err := s.addLeadingCap(subStart); err != nil {
					return err
				}
			}

			if remain > 0 {
				// Cap the dash end inside the segment.
				if err := s.addTrailingCap(subEnd); err != nil {
					return err
				}
			} else {
				s.currentFace = subEnd
				s.hasCurrentFace = true
			}
		} else if s.hasCurrentFace {
			// Cap the final face from the previous on-run.
			if err := s.addTrailingCap(s.currentFace); err != nil {
				return err
			}
			s.hasCurrentFace = false
		}

		s.dash.Step(step)
		segP1 = segP2
	}

	if s.dash.On && !s.hasCurrentFace {
		// The segment ends exactly on a transition to on: cap the
		// beginning of the next dash here.
		s.currentFace = s.computeFace(p2, devSlope)
		if err := s.addLeadingCap(s.currentFace); err != nil {
			return err
		}
		s.hasCurrentFace = true
	}

	s.currentPoint = p2
	return nil
}

// splineTo consumes one decomposed spline point in polygon-sink mode: the
// cross-section quad is emitted directly, with a cusp fan injected when
// consecutive tangents turn too sharply for the tolerance.
func (s *stroker) splineTo(p fixed.Point26_6, tangent slope.Slope) error {
	s.hasInitialSubPath = true

	if s.currentPoint == p {
		return nil
	}

	if _, _, _, ok := s.normalizedDeviceSlope(ToFloat(tangent.DX), ToFloat(tangent.DY)); !ok {
		return nil
	}

	newFace := s.computeFace(p, tangent)

	if newFace.DevSlope.Dot(s.currentFace.DevSlope) < s.splineCuspTolerance {
		clockwise := joinIsClockwise(s.currentFace, newFace)

		var inpt, outpt fixed.Point26_6
		if clockwise {
			inpt, outpt = s.currentFace.CW, newFace.CW
		} else {
			inpt, outpt = s.currentFace.CCW, newFace.CCW
		}

		if err := s.tessellateFan(s.currentFace.DevVector, newFace.DevVector,
			s.currentFace.Point, inpt, outpt, clockwise); err != nil {
			return err
		}
	}

	if ip, ok := segmentIntersection(s.currentFace.CW, s.currentFace.CCW, newFace.CW, newFace.CCW); ok {
		if err := s.poly.AddTriangle(s.currentFace.CCW, newFace.CCW, ip); err != nil {
			return err
		}
		if err := s.poly.AddTriangle(s.currentFace.CW, newFace.CW, ip); err != nil {
			return err
		}
	} else {
		if err := s.poly.AddTriangle(s.currentFace.CCW, s.currentFace.CW, newFace.CW); err != nil {
			return err
		}
		if err := s.poly.AddTriangle(s.currentFace.CCW, newFace.CW, newFace.CCW); err != nil {
			return err
		}
	}

	s.currentFace = newFace
	s.hasCurrentFace = true
	s.currentPoint = p

	return nil
}

// segmentIntersection intersects two bounded segments, reporting the
// intersection point when they actually cross.
func segmentIntersection(a1, a2, b1, b2 fixed.Point26_6) (fixed.Point26_6, bool) {
	ax1, ay1 := ToFloat(a1.X), ToFloat(a1.Y)
	ax2, ay2 := ToFloat(a2.X), ToFloat(a2.Y)
	bx1, by1 := ToFloat(b1.X), ToFloat(b1.Y)
	bx2, by2 := ToFloat(b2.X), ToFloat(b2.Y)

	denom := (ax2-ax1)*(by2-by1) - (ay2-ay1)*(bx2-bx1)
	if denom == 0 {
		return fixed.Point26_6{}, false
	}

	u := ((bx1-ax1)*(by2-by1) - (by1-ay1)*(bx2-bx1)) / denom
	v := ((bx1-ax1)*(ay2-ay1) - (by1-ay1)*(ax2-ax1)) / denom
	if u <= 0 || u >= 1 || v <= 0 || v >= 1 {
		return fixed.Point26_6{}, false
	}

	return Pt(ax1+u*(ax2-ax1), ay1+u*(ay2-ay1)), true
}

// CurveTo implements PathWalker: the cubic is adaptively flattened and the
// resulting polyline is stroked with round joins (the style's join is
// restored afterwards, so curve interiors never facet with miters).
func (s *stroker) CurveTo(b, c, d fixed.Point26_6) error {
	var addPoint spline.AddPointFunc
	switch {
	case s.dash.Dashed:
		addPoint = func(p fixed.Point26_6, _ slope.Slope) error {
			return s.lineToDashed(p)
		}
	case s.edges != nil:
		addPoint = func(p fixed.Point26_6, _ slope.Slope) error {
			return s.LineTo(p)
		}
	default:
		addPoint = s.splineTo
	}

	sp, ok := spline.New(s.currentPoint, b, c, d, addPoint)
	if !ok {
		// A fully degenerate spline is a straight line to d.
		if s.dash.Dashed {
			return s.lineToDashed(d)
		}
		return s.LineTo(d)
	}

	// A pen reduced to a single point draws nothing.
	if s.pen.Count() <= 1 {
		return nil
	}

	if !s.dash.Dashed || s.dash.On {
		if _, _, _, ok := s.normalizedDeviceSlope(
			ToFloat(sp.InitialSlope.DX), ToFloat(sp.InitialSlope.DY)); ok {

			face := s.computeFace(s.currentPoint, sp.InitialSlope)
			if s.hasCurrentFace {
				if err := s.join(s.currentFace, face); err != nil {
					return err
				}
			} else if !s.hasFirstFace {
				s.firstFace = face
				s.hasFirstFace = true
			}
			s.currentFace = face
			s.hasCurrentFace = true
		}
	}

	joinSave := s.style.Join
	s.style.Join = JoinRound

	err := sp.Decompose(s.tolerance)

	s.style.Join = joinSave
	if err != nil {
		return err
	}

	if !s.dash.Dashed || s.dash.On {
		if _, _, _, ok := s.normalizedDeviceSlope(
			ToFloat(sp.FinalSlope.DX), ToFloat(sp.FinalSlope.DY)); ok {

			face := s.computeFace(s.currentPoint, sp.FinalSlope)
			if err := s.join(s.currentFace, face); err != nil {
				return err
			}
			s.currentFace = face
		}
	}

	return nil
}

// ClosePath implements PathWalker: an implicit line back to the sub-path
// start, then a join between the last and first faces. Closed sub-paths
// never get caps.
func (s *stroker) ClosePath() error {
	var err error
	if s.dash.Dashed {
		err = s.lineToDashed(s.firstPoint)
	} else {
		err = s.LineTo(s.firstPoint)
	}
	if err != nil {
		return err
	}

	if s.hasFirstFace && s.hasCurrentFace {
		err = s.join(s.currentFace, s.firstFace)
	} else {
		err = s.addCaps()
	}
	if err != nil {
		return err
	}

	s.hasInitialSubPath = false
	s.hasFirstFace = false
	s.hasCurrentFace = false

	return nil
}
