package stroker

import "math"

// Cap specifies the shape of open sub-path endpoints.
type Cap int

const (
	// CapButt ends the stroke flat, exactly at the endpoint.
	CapButt Cap = iota
	// CapRound ends the stroke with a semicircle of radius width/2.
	CapRound
	// CapSquare ends the stroke with a square extending width/2 beyond
	// the endpoint.
	CapSquare
)

// String returns the name of the cap style.
func (c Cap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "unknown"
	}
}

// Join specifies how consecutive segments connect at a path vertex.
type Join int

const (
	// JoinMiter extends the outer edges to a sharp corner, limited by
	// the miter limit.
	JoinMiter Join = iota
	// JoinRound fills the corner with a circular fan.
	JoinRound
	// JoinBevel cuts the corner with a straight edge.
	JoinBevel
)

// String returns the name of the join style.
func (j Join) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "unknown"
	}
}

// Style defines how a path is stroked.
// It encapsulates all stroke-related properties in a single struct.
type Style struct {
	// Width is the line width in user-space units. Default: 1.0
	Width float64

	// Cap is the shape of line endpoints. Default: CapButt
	Cap Cap

	// Join is the shape of line joins. Default: JoinMiter
	Join Join

	// MiterLimit is the limit for miter joins before they become
	// bevels, expressed as the maximum ratio of miter length to line
	// width. Default: 10.0 (the PostScript/cairo default)
	MiterLimit float64

	// Dash is the dash pattern for the stroke.
	// nil means a solid line (no dashing).
	Dash *Dash
}

// DefaultStyle returns a Style with default settings:
// a solid 1-unit line with butt caps and miter joins.
func DefaultStyle() Style {
	return Style{
		Width:      1.0,
		Cap:        CapButt,
		Join:       JoinMiter,
		MiterLimit: 10.0,
		Dash:       nil,
	}
}

// WithWidth returns a copy of the Style with the given line width.
func (s Style) WithWidth(w float64) Style {
	s.Width = w
	return s
}

// WithCap returns a copy of the Style with the given line cap.
func (s Style) WithCap(c Cap) Style {
	s.Cap = c
	return s
}

// WithJoin returns a copy of the Style with the given line join.
func (s Style) WithJoin(j Join) Style {
	s.Join = j
	return s
}

// WithMiterLimit returns a copy of the Style with the given miter limit.
// A value of 1.0 effectively disables miter joins.
func (s Style) WithMiterLimit(limit float64) Style {
	s.MiterLimit = limit
	return s
}

// WithDash returns a copy of the Style with the given dash pattern.
// Pass nil to remove dashing and return to solid lines.
func (s Style) WithDash(dash *Dash) Style {
	s.Dash = dash.Clone()
	return s
}

// WithDashPattern returns a copy of the Style with a dash pattern created
// from the given lengths.
func (s Style) WithDashPattern(lengths ...float64) Style {
	s.Dash = NewDash(lengths...)
	return s
}

// WithDashOffset returns a copy of the Style with the dash phase offset
// set. If there is no dash pattern, this has no effect.
func (s Style) WithDashOffset(offset float64) Style {
	if s.Dash != nil {
		s.Dash = s.Dash.WithOffset(offset)
	}
	return s
}

// IsDashed returns true if this style has an effective dash pattern.
func (s Style) IsDashed() bool {
	return s.Dash.IsDashed()
}

// Clone creates a deep copy of the Style.
func (s Style) Clone() Style {
	result := s
	result.Dash = s.Dash.Clone()
	return result
}

// MaxDistanceFromPath returns the maximum distance, along each device axis,
// that stroked geometry can extend beyond the path itself: the transformed
// half width, plus the square-cap extension, plus the worst-case miter
// reach. Callers use it to pre-size clip regions.
func (s Style) MaxDistanceFromPath(ctm Matrix) (dx, dy float64) {
	styleExpansion := 0.5
	if s.Cap == CapSquare {
		styleExpansion = math.Sqrt2 / 2
	}
	if s.Join == JoinMiter && styleExpansion < math.Sqrt2*s.MiterLimit {
		styleExpansion = math.Sqrt2 * s.MiterLimit
	}
	styleExpansion *= s.Width

	dx = styleExpansion * math.Hypot(ctm.A, ctm.B)
	dy = styleExpansion * math.Hypot(ctm.E, ctm.D)
	return dx, dy
}

// RoundStroke returns a style with round caps and joins.
func RoundStroke() Style {
	return DefaultStyle().WithCap(CapRound).WithJoin(JoinRound)
}

// SquareStroke returns a style with square caps.
func SquareStroke() Style {
	return DefaultStyle().WithCap(CapSquare)
}

// DashedStroke returns a dashed style with the given pattern.
func DashedStroke(lengths ...float64) Style {
	return DefaultStyle().WithDashPattern(lengths...)
}
