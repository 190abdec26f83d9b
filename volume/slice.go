package volume

// Slice is a 2D cross-section of a volume, cut perpendicular to one
// axis. Cell coordinates (u, v) map to the remaining axes in X, Y, Z
// order: an X slice is indexed (y, z), a Y slice (x, z), a Z slice
// (x, y).
type Slice struct {
	Axis  Axis
	Index int
	W, H  int
	cells []uint8
}

// At returns the palette index at slice cell (u, v), zero outside the
// slice
func (s Slice) At(u, v int) uint8 {
	if u < 0 || u >= s.W || v < 0 || v >= s.H {
		return 0
	}
	return s.cells[u+v*s.W]
}

// SliceCount returns how many slices the volume holds along an axis
func (d *Dense) SliceCount(axis Axis) int {
	switch axis {
	case AxisX:
		return d.size.X
	case AxisY:
		return d.size.Y
	}
	return d.size.Z
}

// Slice extracts the cross-section at index along the given axis.
// Indices outside the volume yield an all-empty slice of the same
// shape.
func (d *Dense) Slice(axis Axis, index int) Slice {
	var w, h int
	switch axis {
	case AxisX:
		w, h = d.size.Y, d.size.Z
	case AxisY:
		w, h = d.size.X, d.size.Z
	default:
		w, h = d.size.X, d.size.Y
	}

	s := Slice{Axis: axis, Index: index, W: w, H: h, cells: make([]uint8, w*h)}
	for v := 0; v < h; v++ {
		for u := 0; u < w; u++ {
			var idx uint8
			switch axis {
			case AxisX:
				idx = d.Get(index, u, v)
			case AxisY:
				idx = d.Get(u, index, v)
			default:
				idx = d.Get(u, v, index)
			}
			s.cells[u+v*w] = idx
		}
	}
	return s
}
