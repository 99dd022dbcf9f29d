package stroker

import "golang.org/x/image/math/fixed"

// Polygon accumulates directed edges, implementing EdgeSink. It is the
// bridge between the general driver's edge-emission mode and a
// Tessellator: the stroke outline is recorded as a soup of directed edges
// and resolved into trapezoids in one pass at the end.
type Polygon struct {
	edges []Edge
}

var _ EdgeSink = (*Polygon)(nil)

// AddEdge appends the directed edge p1 -> p2. Horizontal-degenerate edges
// (p1 == p2) are dropped; they carry no winding.
func (p *Polygon) AddEdge(p1, p2 fixed.Point26_6) error {
	if p1 == p2 {
		return nil
	}
	p.edges = append(p.edges, Edge{P1: p1, P2: p2})
	return nil
}

// Edges returns the accumulated edges. The slice is owned by the
// accumulator and is invalidated by further Add calls.
func (p *Polygon) Edges() []Edge {
	return p.edges
}

// Len returns the number of accumulated edges.
func (p *Polygon) Len() int { return len(p.edges) }

// Clear discards all accumulated edges, retaining capacity.
func (p *Polygon) Clear() { p.edges = p.edges[:0] }
