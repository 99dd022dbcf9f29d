package stroker

// Boxes is a growable list of axis-aligned boxes implementing BoxSink.
// The zero value is ready to use. Append growth is geometric, so the
// amortized cost of accumulating output stays linear in its size.
type Boxes struct {
	boxes []Box
}

var _ BoxSink = (*Boxes)(nil)

// AddBox appends a box.
func (b *Boxes) AddBox(box Box) error {
	b.boxes = append(b.boxes, box)
	return nil
}

// Boxes returns the accumulated boxes. The slice is owned by the
// accumulator and is invalidated by further Add calls.
func (b *Boxes) Boxes() []Box {
	return b.boxes
}

// Len returns the number of accumulated boxes.
func (b *Boxes) Len() int { return len(b.boxes) }

// Clear discards all accumulated boxes, retaining capacity.
func (b *Boxes) Clear() { b.boxes = b.boxes[:0] }

// Extents returns the bounding box of all accumulated boxes, and false
// when empty.
func (b *Boxes) Extents() (Box, bool) {
	if len(b.boxes) == 0 {
		return Box{}, false
	}
	ext := b.boxes[0]
	for _, box := range b.boxes[1:] {
		if box.P1.X < ext.P1.X {
			ext.P1.X = box.P1.X
		}
		if box.P1.Y < ext.P1.Y {
			ext.P1.Y = box.P1.Y
		}
		if box.P2.X > ext.P2.X {
			ext.P2.X = box.P2.X
		}
		if box.P2.Y > ext.P2.Y {
			ext.P2.Y = box.P2.Y
		}
	}
	return ext, true
}
