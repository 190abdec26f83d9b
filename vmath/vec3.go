package vmath

import (
	"fmt"
)

// Vec3 is a 3D integer vector
// Used for voxel coordinates, region corners and extents
type Vec3 struct {
	X, Y, Z int
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Neg(v Vec3) Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func V3Scale(v Vec3, s int) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// V3Min returns the componentwise minimum of two vectors
func V3Min(a, b Vec3) Vec3 {
	return Vec3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

// V3Max returns the componentwise maximum of two vectors
func V3Max(a, b Vec3) Vec3 {
	return Vec3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}

// V3Clamp limits each component of v to the range [lo, hi]
func V3Clamp(v, lo, hi Vec3) Vec3 {
	return V3Min(V3Max(v, lo), hi)
}

// V3From2D creates Vec3 from separate x,y with specified z
func V3From2D(x, y, z int) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Float widens the vector to Vec3F
func (v Vec3) Float() Vec3F {
	return Vec3F{float64(v.X), float64(v.Y), float64(v.Z)}
}

// String formats the vector as "(x, y, z)"
func (v Vec3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}
