// Package stroker converts stroked vector paths into fillable geometry.
//
// # Overview
//
// stroker is a Pure Go stroke tessellation core designed to integrate with
// the GoGPU ecosystem. Given a path, a stroke style (width, caps, joins,
// miter limit, dashes) and a device transform, it produces the geometry a
// rasterizer or GPU renderer fills: boxes, trapezoids, triangle primitives
// or a single triangle strip.
//
// # Quick Start
//
//	import "github.com/gogpu/stroker"
//
//	// Record a path
//	var p stroker.Path
//	p.MoveTo(10, 10)
//	p.LineTo(100, 10)
//	p.LineTo(100, 80)
//
//	// Stroke it into triangles
//	var tris stroker.TriStrip
//	style := stroker.DefaultStyle().WithWidth(4).WithJoin(stroker.JoinRound)
//	err := stroker.StrokeToStrip(&p, style, stroker.Identity(), 0.1, &tris)
//
// # Drivers
//
// Three drivers trade generality for output shape:
//   - General (StrokeToShaper, StrokeToEdges, StrokeToTraps): any style and
//     transform; emits triangles/fans/quads or directed outline edges.
//   - Rectilinear (StrokeRectilinearToBoxes): axis-aligned paths under a
//     scale-only transform with miter joins; emits boxes. Returns
//     ErrUnsupported otherwise, and Stroke packages the fallback.
//   - Triangle strip (StrokeToStrip): one GPU-ready strip, with inner
//     joins collapsed to the path anchor.
//
// # Coordinate System
//
// Device coordinates are 26.6 fixed point (golang.org/x/image/math/fixed):
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Stroke width and dash lengths are user-space values; the transform
// passed to each driver maps user space to device space.
//
// # Scan Conversion
//
// stroker stops at geometry. Removing self-intersections from boxes and
// outline edges is delegated to a caller-supplied Tessellator; filling
// pixels is the renderer's job.
package stroker

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
