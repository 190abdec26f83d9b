package volume

import (
	"github.com/CanisArtorus/Voreeal/vmath"
	"github.com/CanisArtorus/Voreeal/voxel"
)

// Bounds is the storage-side view of a region: an inclusive lower
// corner plus per-axis voxel counts. The upper bound sits at
// lower+count, outside the stored cells, matching the half-open cell
// convention of voxel.Region.
type Bounds struct {
	Lower vmath.Vec3 // Inclusive lower corner
	Count vmath.Vec3 // Voxels along each axis
}

// BoundsOf converts a region to its storage bounds
func BoundsOf(r voxel.Region) Bounds {
	return Bounds{Lower: r.Min(), Count: r.Size()}
}

// Region converts storage bounds back to a region
func (b Bounds) Region() voxel.Region {
	return voxel.Region{
		X:      b.Lower.X,
		Y:      b.Lower.Y,
		Z:      b.Lower.Z,
		Width:  b.Count.X,
		Height: b.Count.Y,
		Depth:  b.Count.Z,
	}
}

// Upper returns the exclusive upper corner
func (b Bounds) Upper() vmath.Vec3 {
	return vmath.V3Add(b.Lower, b.Count)
}
