package vox

import (
	"errors"

	"github.com/CanisArtorus/Voreeal/vmath"
	"github.com/CanisArtorus/Voreeal/voxel"
)

// Version is the only MagicaVoxel format revision this codec speaks
const Version = 150

// MaxVoxels bounds one model: coordinates are bytes, so a model can
// never address more than 256^3 distinct cells
const MaxVoxels = 256 * 256 * 256

var (
	ErrMagic   = errors.New("vox: not a vox file")
	ErrVersion = errors.New("vox: unsupported version")
	ErrCorrupt = errors.New("vox: corrupt chunk structure")
)

// Chunk identifiers are four ASCII bytes packed little-endian
func chunkID(s string) uint32 {
	return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
}

var (
	idVox  = chunkID("VOX ")
	idMain = chunkID("MAIN")
	idSize = chunkID("SIZE")
	idXYZI = chunkID("XYZI")
	idRGBA = chunkID("RGBA")
)

// Voxel is one model cell: byte coordinates plus a palette index
type Voxel struct {
	X, Y, Z    uint8
	ColorIndex uint8
}

// Model is a decoded MagicaVoxel model
type Model struct {
	Size          vmath.Vec3
	Voxels        []Voxel
	Palette       voxel.Palette
	CustomPalette bool // False when Palette came from DefaultPalette
}

// Region returns the zero-origin region spanning the declared model
// size
func (m *Model) Region() voxel.Region {
	return voxel.RegionFromSize(m.Size)
}

// ContentRegion returns the tight region around the voxels actually
// present, which can be smaller than the declared size. An empty model
// yields the zero region.
func (m *Model) ContentRegion() voxel.Region {
	if len(m.Voxels) == 0 {
		return voxel.Region{}
	}

	first := vmath.Vec3{X: int(m.Voxels[0].X), Y: int(m.Voxels[0].Y), Z: int(m.Voxels[0].Z)}
	lower, upper := first, first
	for _, v := range m.Voxels[1:] {
		p := vmath.Vec3{X: int(v.X), Y: int(v.Y), Z: int(v.Z)}
		lower = vmath.V3Min(lower, p)
		upper = vmath.V3Max(upper, p)
	}
	return voxel.RegionFromCorners(lower, vmath.V3Add(upper, vmath.Vec3{X: 1, Y: 1, Z: 1}))
}
