// Package dasher tracks on/off dash phase along a stroked path.
package dasher

// epsilon is the fixed-point error bound: half of one 26.6 unit. A dash
// entry whose remainder falls below it is considered exhausted, so a dash
// that shrinks to sub-representable length cannot stall the walk.
const epsilon = 1.0 / 128

// State is the dash state machine. The zero value is an undashed state.
//
// Remain is always > 0 while walking within one entry. StartsOn records
// whether the sub-path began inside an "on" entry, which the drivers need
// when deciding between a join and a cap at a closing point.
type State struct {
	Dashed bool

	dashes []float64
	offset float64

	Index    int
	On       bool
	StartsOn bool
	Remain   float64
}

// New builds a dash state for the given pattern. An empty pattern yields an
// undashed state. The pattern is assumed normalized: all entries positive.
func New(dashes []float64, offset float64) State {
	d := State{
		Dashed: len(dashes) > 0,
		dashes: dashes,
		offset: offset,
	}
	d.Start()
	return d
}

// Start resets the machine to the pattern's phase offset. Called at every
// move-to: each sub-path restarts the pattern from the style's offset, not
// from wherever the previous sub-path ended.
func (d *State) Start() {
	if !d.Dashed {
		return
	}

	on := true
	i := 0

	// Stop as soon as the offset reaches zero, otherwise an initial dash
	// entry that shrinks to zero would be skipped over.
	offset := d.offset
	for offset > 0 && offset >= d.dashes[i] {
		offset -= d.dashes[i]
		on = !on
		if i++; i == len(d.dashes) {
			i = 0
		}
	}

	d.Index = i
	d.On = on
	d.StartsOn = on
	d.Remain = d.dashes[i] - offset
}

// Step consumes the given arc length. When the current entry underflows the
// fixed-point epsilon the machine advances cyclically to the next entry and
// toggles on/off.
func (d *State) Step(step float64) {
	d.Remain -= step
	if d.Remain < epsilon {
		if d.Index++; d.Index == len(d.dashes) {
			d.Index = 0
		}
		d.On = !d.On
		d.Remain += d.dashes[d.Index]
	}
}
