package voxel

import (
	"fmt"

	"github.com/CanisArtorus/Voreeal/vmath"
)

// Region represents an axis-aligned box of voxels: an inclusive lower
// corner plus per-axis extents. The upper corner is derived, so the box
// can never desynchronize. No field combination is rejected; callers
// that construct inverted or empty extents get the arithmetic they
// asked for.
type Region struct {
	X, Y, Z int // Lower corner
	Width   int // Extent along X
	Height  int // Extent along Y
	Depth   int // Extent along Z
}

// ContainmentType classifies the spatial relation between two regions
type ContainmentType uint8

const (
	// Disjoint means the regions share no space
	Disjoint ContainmentType = iota
	// Contains means the first region fully encloses the second
	Contains
	// Intersects means the regions partially overlap
	Intersects
)

func (c ContainmentType) String() string {
	switch c {
	case Disjoint:
		return "Disjoint"
	case Contains:
		return "Contains"
	case Intersects:
		return "Intersects"
	}
	return "Unknown"
}

// RegionFromSize creates a region at the origin spanning size voxels
func RegionFromSize(size vmath.Vec3) Region {
	return Region{Width: size.X, Height: size.Y, Depth: size.Z}
}

// RegionFromCorners creates the region spanning lower (inclusive) to
// upper (exclusive)
func RegionFromCorners(lower, upper vmath.Vec3) Region {
	size := vmath.V3Sub(upper, lower)
	return Region{
		X:      lower.X,
		Y:      lower.Y,
		Z:      lower.Z,
		Width:  size.X,
		Height: size.Y,
		Depth:  size.Z,
	}
}

// Min returns the lower corner
func (r Region) Min() vmath.Vec3 {
	return vmath.Vec3{X: r.X, Y: r.Y, Z: r.Z}
}

// Max returns the upper corner, lower plus extents
func (r Region) Max() vmath.Vec3 {
	return vmath.Vec3{X: r.X + r.Width, Y: r.Y + r.Height, Z: r.Z + r.Depth}
}

// MinF returns the lower corner in float coordinates
func (r Region) MinF() vmath.Vec3F {
	return r.Min().Float()
}

// MaxF returns the upper corner in float coordinates
func (r Region) MaxF() vmath.Vec3F {
	return r.Max().Float()
}

// Size returns the per-axis extents
func (r Region) Size() vmath.Vec3 {
	return vmath.Vec3{X: r.Width, Y: r.Height, Z: r.Depth}
}

// Center returns the midpoint. Each component is lower plus half the
// extent in integer division, so odd extents land on the voxel below
// the geometric center.
func (r Region) Center() vmath.Vec3F {
	return vmath.Vec3F{
		X: float64(r.X + r.Width/2),
		Y: float64(r.Y + r.Height/2),
		Z: float64(r.Z + r.Depth/2),
	}
}

// Grow expands the region about its center: the lower corner retreats
// by the given amounts and each extent gains twice that
func (r *Region) Grow(width, height, depth int) {
	r.X -= width
	r.Y -= height
	r.Z -= depth
	r.Width += width * 2
	r.Height += height * 2
	r.Depth += depth * 2
}

// GrowUnified grows the region by the same amount on every axis
func (r *Region) GrowUnified(amount int) {
	r.Grow(amount, amount, amount)
}

// ShiftLower moves the lower corner by the given deltas while the upper
// corner stays fixed, shrinking the extents to compensate
func (r *Region) ShiftLower(x, y, z int) {
	r.X += x
	r.Y += y
	r.Z += z
	r.Width -= x
	r.Height -= y
	r.Depth -= z
}

// ShiftUpper moves the upper corner by the given deltas while the lower
// corner stays fixed, growing the extents
func (r *Region) ShiftUpper(x, y, z int) {
	r.Width += x
	r.Height += y
	r.Depth += z
}

// String formats the region by its corners
func (r Region) String() string {
	return fmt.Sprintf("Min=[%v] Max=[%v]", r.Min(), r.Max())
}

// Classify reports how b relates to a: Disjoint when some axis
// separates them, Contains when a fully encloses b, Intersects
// otherwise. Regions that merely touch at a shared boundary are not
// disjoint.
func Classify(a, b Region) ContainmentType {
	lowerA, upperA := a.Min(), a.Max()
	lowerB, upperB := b.Min(), b.Max()

	if upperB.X < lowerA.X || lowerB.X > upperA.X ||
		upperB.Y < lowerA.Y || lowerB.Y > upperA.Y ||
		upperB.Z < lowerA.Z || lowerB.Z > upperA.Z {
		return Disjoint
	}

	if lowerB.X >= lowerA.X && upperB.X <= upperA.X &&
		lowerB.Y >= lowerA.Y && upperB.Y <= upperA.Y &&
		lowerB.Z >= lowerA.Z && upperB.Z <= upperA.Z {
		return Contains
	}

	return Intersects
}

// ContainsPoint reports whether p falls inside r. The region is a set
// of unit cells, so each component must lie in [lower, upper-1].
func ContainsPoint(r Region, p vmath.Vec3) bool {
	lower, upper := r.Min(), r.Max()
	if p.X < lower.X || p.X > upper.X-1 ||
		p.Y < lower.Y || p.Y > upper.Y-1 ||
		p.Z < lower.Z || p.Z > upper.Z-1 {
		return false
	}
	return true
}

// ContainsPointF is ContainsPoint for fractional coordinates
func ContainsPointF(r Region, p vmath.Vec3F) bool {
	lower, upper := r.MinF(), r.MaxF()
	if p.X < lower.X || p.X > upper.X-1 ||
		p.Y < lower.Y || p.Y > upper.Y-1 ||
		p.Z < lower.Z || p.Z > upper.Z-1 {
		return false
	}
	return true
}

// Intersect reports strict partial overlap: false when the regions are
// disjoint, and also false when a fully encloses b. Callers that want
// any shared space should use Overlaps.
func Intersect(a, b Region) bool {
	return Classify(a, b) == Intersects
}

// Overlaps reports whether the regions share any space, counting
// containment as overlap
func Overlaps(a, b Region) bool {
	return Classify(a, b) != Disjoint
}
