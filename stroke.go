package stroker

import (
	"errors"
	"math"
)

// StrokeToShaper replays path through the general stroke driver and emits
// the resulting geometry into sink as triangles, triangle fans and convex
// quads. The caller owns the sink; the driver never retains it.
//
// A non-positive tolerance falls back to DefaultTolerance.
func StrokeToShaper(path *Path, style Style, ctm Matrix, tolerance float64, sink PolygonSink) error {
	if style.Width <= 0 {
		return nil
	}
	if err := checkMatrix(ctm); err != nil {
		return err
	}

	s := &stroker{
		strokeContext: newStrokeContext(style, ctm, ctm.Invert(), tolerance),
		poly:          sink,
	}

	if err := path.Walk(s); err != nil {
		return err
	}
	return s.addCaps()
}

// StrokeToEdges replays path through the general stroke driver in edge
// mode: the stroke outline is emitted as directed edges whose winding
// encloses the stroked region exactly once. Feed the edges to a
// Tessellator, or use StrokeToTraps which does so directly.
func StrokeToEdges(path *Path, style Style, ctm Matrix, tolerance float64, sink EdgeSink) error {
	if style.Width <= 0 {
		return nil
	}
	if err := checkMatrix(ctm); err != nil {
		return err
	}

	s := &stroker{
		strokeContext: newStrokeContext(style, ctm, ctm.Invert(), tolerance),
		edges:         sink,
	}

	if err := path.Walk(s); err != nil {
		return err
	}
	return s.addCaps()
}

// StrokeToTraps strokes path into a set of trapezoids: the stroke outline
// is emitted as directed edges and handed to tess with the winding fill
// rule.
func StrokeToTraps(path *Path, style Style, ctm Matrix, tolerance float64, tess Tessellator) ([]Trapezoid, error) {
	var poly Polygon
	if err := StrokeToEdges(path, style, ctm, tolerance, &poly); err != nil {
		return nil, err
	}
	if poly.Len() == 0 {
		return nil, nil
	}
	return tess.TessellateEdges(poly.Edges(), FillRuleWinding)
}

// Stroke is the driver routing entry point: rectilinear strokes take the
// boxes fast path and everything else goes through the general driver.
// The result is always trapezoids; boxes are widened trivially.
func Stroke(path *Path, style Style, ctm Matrix, tolerance float64, tess Tessellator) ([]Trapezoid, error) {
	boxes, err := StrokeRectilinearToBoxes(path, style, ctm, tolerance, tess)
	if err == nil {
		Logger().Debug("stroke: rectilinear fast path", "boxes", len(boxes))
		return boxesToTraps(boxes), nil
	}
	if !errors.Is(err, ErrUnsupported) {
		return nil, err
	}

	Logger().Debug("stroke: general driver",
		"cap", style.Cap.String(),
		"join", style.Join.String(),
		"dashed", style.IsDashed())
	return StrokeToTraps(path, style, ctm, tolerance, tess)
}

func boxesToTraps(boxes []Box) []Trapezoid {
	traps := make([]Trapezoid, len(boxes))
	for i, b := range boxes {
		traps[i] = Trapezoid{
			Top:    b.P1.Y,
			Bottom: b.P2.Y,
			Left: Edge{
				P1: b.P1,
				P2: fixedPoint(b.P1.X, b.P2.Y),
			},
			Right: Edge{
				P1: fixedPoint(b.P2.X, b.P1.Y),
				P2: b.P2,
			},
		}
	}
	return traps
}

func checkMatrix(m Matrix) error {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return ErrDegenerateMatrix
	}
	return nil
}
