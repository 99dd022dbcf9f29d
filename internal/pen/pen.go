// Package pen builds the polygonal stroke profile.
//
// A Pen approximates a disc of radius half-line-width, transformed into
// device space, by an even-length cyclic polygon. The vertex count is chosen
// so the polygon deviates from the true ellipse by less than the flattening
// tolerance. Every vertex carries the slopes of its two incident edges,
// which lets the stroke drivers binary-search for the arc of vertices that
// lies between two direction vectors when fanning out round joins and caps.
package pen

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/stroker/internal/slope"
)

// Transform exposes the linear part of the device transform. The pen only
// needs the 2x2 block: translation does not affect a distance vector.
type Transform interface {
	// Linear returns the matrix entries (xx, xy, yx, yy) such that a
	// distance (dx, dy) maps to (xx*dx + xy*dy, yx*dx + yy*dy).
	Linear() (xx, xy, yx, yy float64)
}

// Vertex is one corner of the pen polygon. Point is the offset from the pen
// center in device space. SlopeCW and SlopeCCW are the slopes of the edges
// arriving from the previous vertex and leaving toward the next one.
type Vertex struct {
	Point    fixed.Point26_6
	SlopeCW  slope.Slope
	SlopeCCW slope.Slope
}

// Pen is the transformed polygonal profile. Immutable once built; rebuild
// when the radius, tolerance or transform changes.
type Pen struct {
	vertices []Vertex
}

// New constructs a pen for the given radius and flattening tolerance under
// the transform's linear part.
func New(radius, tolerance float64, ctm Transform) *Pen {
	xx, xy, yx, yy := ctm.Linear()
	reflect := xx*yy-xy*yx < 0

	n := VerticesNeeded(tolerance, radius, ctm)

	p := &Pen{vertices: make([]Vertex, n)}

	// Compute points around a circle in user space and transform them to
	// device space. Flip the angle direction under a reflecting transform
	// so the device-space winding stays consistent.
	for i := range p.vertices {
		theta := 2 * math.Pi * float64(i) / float64(n)
		if reflect {
			theta = -theta
		}
		dx := radius * math.Cos(theta)
		dy := radius * math.Sin(theta)
		tdx := xx*dx + xy*dy
		tdy := yx*dx + yy*dy
		p.vertices[i].Point = fixed.Point26_6{
			X: fixedFromFloat(tdx),
			Y: fixedFromFloat(tdy),
		}
	}

	p.computeSlopes()
	return p
}

func fixedFromFloat(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// VerticesNeeded returns the polygon vertex count required to keep the
// deviation from the transformed disc under tolerance.
//
// The circular pen becomes an ellipse in device space, and the polygonal
// approximation has its maximum error M*(1-cos(d)) on the major axis, where
// M is the major axis length and 2d the angle between vertices. Solving for
// the error to stay under tolerance gives d = acos(1 - tolerance/M) and a
// vertex count of ceil(2pi/2d).
func VerticesNeeded(tolerance, radius float64, ctm Transform) int {
	major := transformedCircleMajorAxis(ctm, radius)

	switch {
	case tolerance >= 4*major:
		return 1
	case tolerance >= major:
		return 4
	}

	n := int(math.Ceil(2 * math.Pi / math.Acos(1-tolerance/major)))
	if n%2 == 1 {
		n++
	}
	if n < 4 {
		n = 4
	}
	return n
}

// transformedCircleMajorAxis returns the length of the major axis of the
// ellipse that a circle of the given radius maps to. Derived from the
// singular values of the 2x2 linear block.
func transformedCircleMajorAxis(ctm Transform, radius float64) float64 {
	a, b, c, d := ctm.Linear()

	if b == 0 && c == 0 {
		// Pure scale.
		return radius * math.Max(math.Abs(a), math.Abs(d))
	}

	f := (a*a + b*b + c*c + d*d) / 2
	g := (a*a + b*b - c*c - d*d) / 2
	h := a*c + b*d

	return radius * math.Sqrt(f+math.Hypot(g, h))
}

func (p *Pen) computeSlopes() {
	n := len(p.vertices)
	for i, iPrev := 0, n-1; i < n; iPrev, i = i, i+1 {
		prev := &p.vertices[iPrev]
		v := &p.vertices[i]
		next := &p.vertices[(i+1)%n]

		v.SlopeCW = slope.Between(prev.Point, v.Point)
		v.SlopeCCW = slope.Between(v.Point, next.Point)
	}
}

// Count returns the number of vertices. Always even and >= 4, except for
// the single-vertex degenerate pen produced by a very coarse tolerance.
func (p *Pen) Count() int { return len(p.vertices) }

// Vertex returns the i'th vertex of the cyclic polygon.
func (p *Pen) Vertex(i int) *Vertex { return &p.vertices[i] }

// FindActiveCWVertexIndex returns the index of the vertex active for the
// clockwise edge of a stroke in the given direction.
//
// The strictness of the inequalities is delicate: the ccw slope of one
// vertex equals the cw slope of the next, and the caller cares which of the
// two is returned when a spline's boundary slope lands exactly on an edge.
func (p *Pen) FindActiveCWVertexIndex(s slope.Slope) int {
	n := len(p.vertices)
	for i := 0; i < n; i++ {
		if slope.Compare(s, p.vertices[i].SlopeCCW) < 0 &&
			slope.Compare(s, p.vertices[i].SlopeCW) >= 0 {
			return i
		}
	}
	// Degenerate pen (e.g. transformed into a line): fall back to the
	// first vertex.
	return 0
}

// FindActiveCCWVertexIndex is the counter-clockwise counterpart of
// FindActiveCWVertexIndex.
func (p *Pen) FindActiveCCWVertexIndex(s slope.Slope) int {
	rev := s.Negate()
	for i := len(p.vertices) - 1; i >= 0; i-- {
		if slope.Compare(p.vertices[i].SlopeCCW, rev) >= 0 &&
			slope.Compare(p.vertices[i].SlopeCW, rev) < 0 {
			return i
		}
	}
	return len(p.vertices) - 1
}

// FindActiveCWVertices returns the half-open range [start, stop) of vertices
// whose edges lie between the in and out slopes, walking clockwise. An empty
// range (start == stop) means the caller should bevel instead of fanning.
func (p *Pen) FindActiveCWVertices(in, out slope.Slope) (start, stop int) {
	n := len(p.vertices)
	lo, hi := 0, n

	i := (lo + hi) >> 1
	for hi-lo > 1 {
		if slope.Compare(p.vertices[i].SlopeCW, in) < 0 {
			lo = i
		} else {
			hi = i
		}
		i = (lo + hi) >> 1
	}
	if slope.Compare(p.vertices[i].SlopeCW, in) < 0 {
		if i++; i == n {
			i = 0
		}
	}
	start = i

	if slope.Compare(out, p.vertices[i].SlopeCCW) >= 0 {
		lo, hi = i, i+n
		i = (lo + hi) >> 1
		for hi-lo > 1 {
			j := i
			if j >= n {
				j -= n
			}
			if slope.Compare(p.vertices[j].SlopeCW, out) > 0 {
				hi = i
			} else {
				lo = i
			}
			i = (lo + hi) >> 1
		}
		if i >= n {
			i -= n
		}
	}
	stop = i
	return start, stop
}

// FindActiveCCWVertices is the counter-clockwise counterpart of
// FindActiveCWVertices.
func (p *Pen) FindActiveCCWVertices(in, out slope.Slope) (start, stop int) {
	n := len(p.vertices)
	lo, hi := 0, n

	i := (lo + hi) >> 1
	for hi-lo > 1 {
		if slope.Compare(in, p.vertices[i].SlopeCCW) < 0 {
			lo = i
		} else {
			hi = i
		}
		i = (lo + hi) >> 1
	}
	if slope.Compare(in, p.vertices[i].SlopeCCW) < 0 {
		if i++; i == n {
			i = 0
		}
	}
	start = i

	if slope.Compare(p.vertices[i].SlopeCW, out) <= 0 {
		lo, hi = i, i+n
		i = (lo + hi) >> 1
		for hi-lo > 1 {
			j := i
			if j >= n {
				j -= n
			}
			if slope.Compare(out, p.vertices[j].SlopeCCW) > 0 {
				hi = i
			} else {
				lo = i
			}
			i = (lo + hi) >> 1
		}
		if i >= n {
			i -= n
		}
	}
	stop = i
	return start, stop
}
