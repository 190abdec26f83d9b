package vmath

import (
	"fmt"
)

// Vec3F is a 3D float vector
// Used where voxel math leaves the integer lattice: centers, fractional sample points
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

// Int truncates each component toward zero
func (v Vec3F) Int() Vec3 {
	return Vec3{int(v.X), int(v.Y), int(v.Z)}
}

// String formats the vector as "(x, y, z)"
func (v Vec3F) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
