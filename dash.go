package stroker

import "math"

// Dash defines a dash pattern for stroking.
// A dash pattern consists of alternating on and off lengths in user-space
// units. For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type Dash struct {
	// Array contains alternating dash/gap lengths.
	Array []float64

	// Offset is the starting phase offset into the pattern. Every
	// sub-path restarts the pattern at this offset.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Negative lengths are normalized to their absolute values.
//
// Examples:
//
//	NewDash(5, 3)        // 5 units dash, 3 units gap
//	NewDash(10, 5, 2, 5) // 10 dash, 5 gap, 2 dash, 5 gap
//
// Returns nil if no lengths are provided or all lengths are zero.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}

	allZero := true
	for _, l := range lengths {
		if l != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil
	}

	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}

	return &Dash{Array: normalized}
}

// WithOffset returns a new Dash with the given phase offset.
func (d *Dash) WithOffset(offset float64) *Dash {
	result := d.Clone()
	result.Offset = offset
	return result
}

// IsDashed returns true if the pattern produces a dashed line, i.e. it has
// at least one entry and a positive total length.
func (d *Dash) IsDashed() bool {
	if d == nil || len(d.Array) == 0 {
		return false
	}
	for _, l := range d.Array {
		if l > 0 {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the Dash.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}
	result := &Dash{
		Array:  make([]float64, len(d.Array)),
		Offset: d.Offset,
	}
	copy(result.Array, d.Array)
	return result
}
