package volume

import (
	"github.com/CanisArtorus/Voreeal/vmath"
	"github.com/CanisArtorus/Voreeal/voxel"
)

// Axis selects the slicing direction through a volume
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// Dense is a palette-indexed voxel grid backed by a flat array.
// Index 0 marks empty space. Cells are laid out x-fastest:
// data[x + y*w + z*w*h].
type Dense struct {
	size    vmath.Vec3
	data    []uint8
	Palette voxel.Palette
}

// New creates an empty volume of the given size. Negative components
// are treated as zero.
func New(size vmath.Vec3) *Dense {
	size = vmath.V3Max(size, vmath.Vec3{})
	return &Dense{
		size: size,
		data: make([]uint8, size.X*size.Y*size.Z),
	}
}

// Size returns the volume dimensions in voxels
func (d *Dense) Size() vmath.Vec3 {
	return d.size
}

// Region returns the zero-origin region covering the volume
func (d *Dense) Region() voxel.Region {
	return voxel.RegionFromSize(d.size)
}

// Bounds returns the storage bounds covering the volume
func (d *Dense) Bounds() Bounds {
	return BoundsOf(d.Region())
}

func (d *Dense) index(x, y, z int) int {
	return x + y*d.size.X + z*d.size.X*d.size.Y
}

func (d *Dense) inBounds(x, y, z int) bool {
	return x >= 0 && x < d.size.X &&
		y >= 0 && y < d.size.Y &&
		z >= 0 && z < d.size.Z
}

// Get returns the palette index at the given cell, zero outside the
// volume
func (d *Dense) Get(x, y, z int) uint8 {
	if !d.inBounds(x, y, z) {
		return 0
	}
	return d.data[d.index(x, y, z)]
}

// Set stores a palette index at the given cell, reporting whether the
// cell lies inside the volume
func (d *Dense) Set(x, y, z int, index uint8) bool {
	if !d.inBounds(x, y, z) {
		return false
	}
	d.data[d.index(x, y, z)] = index
	return true
}

// SetColor quantizes c against the palette and stores the nearest
// entry's index
func (d *Dense) SetColor(x, y, z int, c voxel.Color) bool {
	return d.Set(x, y, z, d.Palette.NearestIndex(c))
}

// ColorAt resolves the palette color at the given cell; ok is false
// for empty or out-of-bounds cells
func (d *Dense) ColorAt(x, y, z int) (voxel.Color, bool) {
	idx := d.Get(x, y, z)
	if idx == 0 {
		return voxel.Color{}, false
	}
	return d.Palette[idx], true
}

// VoxelCount returns the number of non-empty cells
func (d *Dense) VoxelCount() int {
	n := 0
	for _, v := range d.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// ContentRegion returns the tight region around the non-empty cells,
// which can be smaller than the full extent. An empty volume yields
// the zero region.
func (d *Dense) ContentRegion() voxel.Region {
	lower := d.size
	upper := vmath.Vec3{X: -1, Y: -1, Z: -1}

	i := 0
	for z := 0; z < d.size.Z; z++ {
		for y := 0; y < d.size.Y; y++ {
			for x := 0; x < d.size.X; x++ {
				if d.data[i] != 0 {
					p := vmath.Vec3{X: x, Y: y, Z: z}
					lower = vmath.V3Min(lower, p)
					upper = vmath.V3Max(upper, p)
				}
				i++
			}
		}
	}

	if upper.X < 0 {
		return voxel.Region{}
	}
	return voxel.RegionFromCorners(lower, vmath.V3Add(upper, vmath.Vec3{X: 1, Y: 1, Z: 1}))
}

// Resize regrows the volume to the given size, preserving cells in the
// overlapping extent
func (d *Dense) Resize(size vmath.Vec3) {
	size = vmath.V3Max(size, vmath.Vec3{})
	next := make([]uint8, size.X*size.Y*size.Z)

	keep := vmath.V3Min(size, d.size)
	for z := 0; z < keep.Z; z++ {
		for y := 0; y < keep.Y; y++ {
			src := d.index(0, y, z)
			dst := 0 + y*size.X + z*size.X*size.Y
			copy(next[dst:dst+keep.X], d.data[src:src+keep.X])
		}
	}

	d.size = size
	d.data = next
}
