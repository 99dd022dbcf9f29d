package stroker

import "golang.org/x/image/math/fixed"

// The three stroke drivers differ only in the sink they write into. Each
// sink is a small capability interface, selected once per stroke call; a
// driver never mixes sinks mid-path.

// Box is an axis-aligned rectangle. P1 is the top-left (minimum) corner,
// P2 the bottom-right (maximum) corner.
type Box struct {
	P1, P2 fixed.Point26_6
}

// Edge is a directed line segment. Direction carries the winding sign used
// by the tessellator's fill rule.
type Edge struct {
	P1, P2 fixed.Point26_6
}

// Trapezoid is a horizontal-edge-bounded quadrilateral, the canonical fill
// primitive for the scan converter. Left and Right are the supporting
// lines of the two slanted sides; Top and Bottom clip them.
type Trapezoid struct {
	Top, Bottom fixed.Int26_6
	Left, Right Edge
}

// BoxSink consumes axis-aligned boxes from the rectilinear fast path.
type BoxSink interface {
	AddBox(b Box) error
}

// PolygonSink consumes filled primitives from the general driver.
type PolygonSink interface {
	AddTriangle(a, b, c fixed.Point26_6) error
	AddTriangleFan(center fixed.Point26_6, points []fixed.Point26_6) error
	AddConvexQuad(q [4]fixed.Point26_6) error
}

// EdgeSink consumes chained directed edges from the general driver. It is
// the leaner alternative to PolygonSink for tessellators that build their
// own polygon: no triangles are materialized.
type EdgeSink interface {
	AddEdge(p1, p2 fixed.Point26_6) error
}

// StripSink consumes the points of a triangle strip in order.
type StripSink interface {
	AddPoint(p fixed.Point26_6) error
}

// FillRule selects how a tessellator decides interior regions.
type FillRule int

const (
	// FillRuleWinding fills regions with non-zero winding number.
	FillRuleWinding FillRule = iota
	// FillRuleEvenOdd fills regions crossed an odd number of times.
	FillRuleEvenOdd
)

// Tessellator resolves self-intersecting geometry. It is an external
// collaborator: the boxes driver uses MergeBoxes to union overlapping
// boxes, and StrokeToTraps uses TessellateEdges to turn the stroke outline
// into non-overlapping trapezoids.
type Tessellator interface {
	MergeBoxes(boxes []Box, rule FillRule) ([]Box, error)
	TessellateEdges(edges []Edge, rule FillRule) ([]Trapezoid, error)
}
