// Package slope provides exact direction-vector comparison in fixed point.
//
// A Slope is a direction expressed as a (dx, dy) pair of 26.6 fixed-point
// deltas. Comparison is done via the sign of the cross product computed in
// int64, so two slopes can be ordered without normalization and without any
// floating-point error. The comparison forms a strict total order, which the
// pen vertex search and the join orientation test both rely on.
package slope

import "golang.org/x/image/math/fixed"

// Slope is a direction vector in device space.
type Slope struct {
	DX, DY fixed.Int26_6
}

// Between returns the slope of the directed segment a -> b.
func Between(a, b fixed.Point26_6) Slope {
	return Slope{DX: b.X - a.X, DY: b.Y - a.Y}
}

// Negate returns the slope rotated by pi.
func (s Slope) Negate() Slope {
	return Slope{DX: -s.DX, DY: -s.DY}
}

// IsZero reports whether the slope has no direction.
func (s Slope) IsZero() bool {
	return s.DX == 0 && s.DY == 0
}

// Compare orders two slopes by angle.
//
// It returns the sign of a.DY*b.DX - a.DX*b.DY, computed in int64 so the
// multiplication cannot overflow. Two special cases make the order total:
//
//   - Zero vectors compare equal to each other and larger than any non-zero
//     vector.
//   - Vectors that differ by exactly pi (detected by a sign change in DX or
//     DY) are disambiguated by nudging b an infinitesimal angle backwards,
//     so the vector with DX > 0 (or DX == 0 and DY > 0) sorts larger.
func Compare(a, b Slope) int {
	adybdx := int64(a.DY) * int64(b.DX)
	bdyadx := int64(b.DY) * int64(a.DX)

	if adybdx > bdyadx {
		return 1
	}
	if adybdx < bdyadx {
		return -1
	}

	if a.DX == 0 && a.DY == 0 && b.DX == 0 && b.DY == 0 {
		return 0
	}
	if a.DX == 0 && a.DY == 0 {
		return 1
	}
	if b.DX == 0 && b.DY == 0 {
		return -1
	}

	// Equal cross products leave two cases: identical direction, or a
	// difference of exactly pi. The latter flips the sign of dx or dy.
	if (a.DX^b.DX) < 0 || (a.DY^b.DY) < 0 {
		if a.DX > 0 || (a.DX == 0 && a.DY > 0) {
			return 1
		}
		return -1
	}

	return 0
}
