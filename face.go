package stroker

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/stroker/internal/slope"
)

// Vector is a direction in float64, used for the trigonometry that fixed
// point cannot express. Conversion between the two representations happens
// on read; a Face never stores a mixed value.
type Vector struct {
	X, Y float64
}

// Dot returns the dot product of two vectors.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Face is the two-sided offset of a point where a segment meets a join or
// cap: the anchor point on the path, the clockwise and counter-clockwise
// offset points at distance half-line-width on either side, and the
// segment direction in both spaces.
//
// A face is produced per segment and consumed immediately by the previous
// face's join; the sub-path's first face is retained so a closing join can
// connect back to it.
type Face struct {
	CCW   fixed.Point26_6
	Point fixed.Point26_6
	CW    fixed.Point26_6

	// UsrVector is the unit segment direction in user space.
	UsrVector Vector
	// DevVector is the segment direction in device space, fixed point.
	DevVector slope.Slope
	// DevSlope is the unit segment direction in device space.
	DevSlope Vector
	// Length is the segment length in device space.
	Length float64
}

// reversed returns the face turned to point outward, for a leading cap:
// direction negated and the cw/ccw points swapped.
func (f Face) reversed() Face {
	r := f
	r.UsrVector.X = -r.UsrVector.X
	r.UsrVector.Y = -r.UsrVector.Y
	r.DevVector = r.DevVector.Negate()
	r.DevSlope.X = -r.DevSlope.X
	r.DevSlope.Y = -r.DevSlope.Y
	r.CW, r.CCW = r.CCW, r.CW
	return r
}

// normalizedDeviceSlope maps a device-space direction to a unit user-space
// direction via the inverse transform, returning the user-space magnitude
// alongside. ok is false for a direction that degenerates to zero.
// Axis-aligned directions avoid the hypot and stay exact.
func (c *strokeContext) normalizedDeviceSlope(dx, dy float64) (nx, ny, mag float64, ok bool) {
	dx0, dy0 := c.ctmInverse.TransformDistance(dx, dy)

	if dx0 == 0 && dy0 == 0 {
		return 0, 0, 0, false
	}

	switch {
	case dx0 == 0:
		nx = 0
		if dy0 > 0 {
			mag, ny = dy0, 1
		} else {
			mag, ny = -dy0, -1
		}
	case dy0 == 0:
		ny = 0
		if dx0 > 0 {
			mag, nx = dx0, 1
		} else {
			mag, nx = -dx0, -1
		}
	default:
		mag = math.Hypot(dx0, dy0)
		nx = dx0 / mag
		ny = dy0 / mag
	}

	return nx, ny, mag, true
}

// computeFace builds the face at point for a segment with the given
// device-space direction. The caller must reject zero slopes first.
//
// The half-line-width offset vector is the user-space direction rotated by
// 90 degrees; the rotation direction in device space must stay fixed, so
// under a reflecting transform (negative determinant) the rotation flips.
// The offset is transformed back to device space and rounded to fixed
// point exactly once.
func (c *strokeContext) computeFace(point fixed.Point26_6, devSlope slope.Slope) Face {
	dx := ToFloat(devSlope.DX)
	dy := ToFloat(devSlope.DY)
	length := math.Hypot(dx, dy)

	var devUnit Vector
	if length > 0 {
		devUnit = Vector{X: dx / length, Y: dy / length}
	}

	nx, ny, _, _ := c.normalizedDeviceSlope(dx, dy)

	var faceDX, faceDY float64
	if c.ctmDetPositive {
		faceDX = -ny * c.halfLineWidth
		faceDY = nx * c.halfLineWidth
	} else {
		faceDX = ny * c.halfLineWidth
		faceDY = -nx * c.halfLineWidth
	}

	faceDX, faceDY = c.ctm.TransformDistance(faceDX, faceDY)

	offCCW := fixed.Point26_6{X: FromFloat(faceDX), Y: FromFloat(faceDY)}
	offCW := fixed.Point26_6{X: -offCCW.X, Y: -offCCW.Y}

	return Face{
		CCW:       translatePoint(point, offCCW),
		Point:     point,
		CW:        translatePoint(point, offCW),
		UsrVector: Vector{X: nx, Y: ny},
		DevVector: devSlope,
		DevSlope:  devUnit,
		Length:    length,
	}
}
