package stroker

import "golang.org/x/image/math/fixed"

// TriStrip accumulates triangle strip points, implementing StripSink.
// Every point after the second forms a triangle with its two predecessors;
// the strip driver re-synchronizes at sub-path boundaries by repeating
// points, which produces zero-area triangles the rasterizer ignores.
type TriStrip struct {
	points []fixed.Point26_6
}

var _ StripSink = (*TriStrip)(nil)

// AddPoint appends a strip point.
func (t *TriStrip) AddPoint(p fixed.Point26_6) error {
	t.points = append(t.points, p)
	return nil
}

// Points returns the accumulated strip. The slice is owned by the
// accumulator and is invalidated by further Add calls.
func (t *TriStrip) Points() []fixed.Point26_6 {
	return t.points
}

// Len returns the number of accumulated points.
func (t *TriStrip) Len() int { return len(t.points) }

// Clear discards all accumulated points, retaining capacity.
func (t *TriStrip) Clear() { t.points = t.points[:0] }
