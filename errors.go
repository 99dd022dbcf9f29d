package stroker

import "errors"

// ErrUnsupported is returned by the rectilinear boxes fast path when the
// stroke configuration or path cannot be handled: a non-scale transform, a
// non-miter join, a round cap, or any non-axis-aligned segment. It is a
// routing signal, not a failure; the caller should retry with the general
// driver. Any geometry emitted before the failover must be discarded.
var ErrUnsupported = errors.New("stroker: unsupported by rectilinear fast path")

// ErrDegenerateMatrix is returned when the device transform is singular or
// non-finite; no stroke geometry can be produced under such a transform.
var ErrDegenerateMatrix = errors.New("stroker: degenerate transformation matrix")
