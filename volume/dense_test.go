package volume

import (
	"testing"

	"github.com/CanisArtorus/Voreeal/vmath"
	"github.com/CanisArtorus/Voreeal/voxel"
)

func TestNewDense(t *testing.T) {
	vol := New(vmath.Vec3{X: 4, Y: 5, Z: 6})

	if vol.Size() != (vmath.Vec3{X: 4, Y: 5, Z: 6}) {
		t.Errorf("Expected size (4, 5, 6), got %v", vol.Size())
	}

	// Every cell starts empty
	for z := 0; z < 6; z++ {
		for y := 0; y < 5; y++ {
			for x := 0; x < 4; x++ {
				if vol.Get(x, y, z) != 0 {
					t.Errorf("Expected cell (%d, %d, %d) to start empty", x, y, z)
				}
			}
		}
	}

	if vol.VoxelCount() != 0 {
		t.Errorf("Expected empty volume, got %d voxels", vol.VoxelCount())
	}
}

func TestNewDenseClampsNegative(t *testing.T) {
	vol := New(vmath.Vec3{X: -3, Y: 2, Z: 2})

	if vol.Size() != (vmath.Vec3{X: 0, Y: 2, Z: 2}) {
		t.Errorf("Expected negative component clamped to zero, got %v", vol.Size())
	}
}

func TestDenseGetSet(t *testing.T) {
	vol := New(vmath.Vec3{X: 10, Y: 10, Z: 10})

	if !vol.Set(5, 6, 7, 42) {
		t.Error("Expected Set to succeed inside the volume")
	}
	if vol.Get(5, 6, 7) != 42 {
		t.Errorf("Expected 42 at (5, 6, 7), got %d", vol.Get(5, 6, 7))
	}

	// Out of bounds
	if vol.Set(-1, 0, 0, 1) {
		t.Error("Expected Set to fail for negative x")
	}
	if vol.Set(0, 10, 0, 1) {
		t.Error("Expected Set to fail for y past the extent")
	}
	if vol.Get(-1, 0, 0) != 0 {
		t.Error("Expected Get to return 0 out of bounds")
	}
	if vol.Get(0, 0, 100) != 0 {
		t.Error("Expected Get to return 0 far out of bounds")
	}
}

func TestDenseRegionBounds(t *testing.T) {
	vol := New(vmath.Vec3{X: 3, Y: 4, Z: 5})

	r := vol.Region()
	if r != (voxel.Region{Width: 3, Height: 4, Depth: 5}) {
		t.Errorf("Expected zero-origin region, got %v", r)
	}

	b := vol.Bounds()
	if b.Lower != (vmath.Vec3{}) || b.Count != (vmath.Vec3{X: 3, Y: 4, Z: 5}) {
		t.Errorf("Expected bounds at origin with count (3, 4, 5), got %+v", b)
	}
}

func TestDenseSetColor(t *testing.T) {
	vol := New(vmath.Vec3{X: 2, Y: 2, Z: 2})
	vol.Palette[1] = voxel.Color{R: 255, A: 255}
	vol.Palette[2] = voxel.Color{B: 255, A: 255}

	if !vol.SetColor(0, 0, 0, voxel.Color{R: 250, G: 10, B: 10, A: 255}) {
		t.Error("Expected SetColor to succeed")
	}
	if vol.Get(0, 0, 0) != 1 {
		t.Errorf("Expected reddish color to quantize to entry 1, got %d", vol.Get(0, 0, 0))
	}

	c, ok := vol.ColorAt(0, 0, 0)
	if !ok {
		t.Fatal("Expected ColorAt to resolve a filled cell")
	}
	if c != (voxel.Color{R: 255, A: 255}) {
		t.Errorf("Expected palette entry 1, got %v", c)
	}

	if _, ok := vol.ColorAt(1, 1, 1); ok {
		t.Error("Expected ColorAt to report empty cell")
	}
	if _, ok := vol.ColorAt(5, 5, 5); ok {
		t.Error("Expected ColorAt to report out-of-bounds cell")
	}
}

func TestDenseVoxelCount(t *testing.T) {
	vol := New(vmath.Vec3{X: 4, Y: 4, Z: 4})

	vol.Set(0, 0, 0, 1)
	vol.Set(3, 3, 3, 2)
	vol.Set(1, 2, 3, 3)

	if vol.VoxelCount() != 3 {
		t.Errorf("Expected 3 voxels, got %d", vol.VoxelCount())
	}

	// Overwrite does not change the count
	vol.Set(0, 0, 0, 7)
	if vol.VoxelCount() != 3 {
		t.Errorf("Expected 3 voxels after overwrite, got %d", vol.VoxelCount())
	}

	// Clearing a cell does
	vol.Set(0, 0, 0, 0)
	if vol.VoxelCount() != 2 {
		t.Errorf("Expected 2 voxels after clear, got %d", vol.VoxelCount())
	}
}

func TestDenseContentRegion(t *testing.T) {
	vol := New(vmath.Vec3{X: 8, Y: 8, Z: 8})

	if vol.ContentRegion() != (voxel.Region{}) {
		t.Errorf("Expected zero region for empty volume, got %v", vol.ContentRegion())
	}

	vol.Set(2, 3, 1, 5)
	r := vol.ContentRegion()
	if r != (voxel.Region{X: 2, Y: 3, Z: 1, Width: 1, Height: 1, Depth: 1}) {
		t.Errorf("Expected single-cell region at (2, 3, 1), got %v", r)
	}

	vol.Set(6, 3, 4, 5)
	r = vol.ContentRegion()
	if r.Min() != (vmath.Vec3{X: 2, Y: 3, Z: 1}) {
		t.Errorf("Expected lower corner (2, 3, 1), got %v", r.Min())
	}
	if r.Max() != (vmath.Vec3{X: 7, Y: 4, Z: 5}) {
		t.Errorf("Expected upper corner (7, 4, 5), got %v", r.Max())
	}
}

func TestDenseResize(t *testing.T) {
	vol := New(vmath.Vec3{X: 10, Y: 10, Z: 10})
	vol.Set(2, 2, 2, 11)
	vol.Set(8, 8, 8, 22)

	// Grow
	vol.Resize(vmath.Vec3{X: 15, Y: 15, Z: 15})
	if vol.Size() != (vmath.Vec3{X: 15, Y: 15, Z: 15}) {
		t.Errorf("Expected size (15, 15, 15), got %v", vol.Size())
	}
	if vol.Get(2, 2, 2) != 11 || vol.Get(8, 8, 8) != 22 {
		t.Error("Expected content preserved after growing")
	}
	if vol.Get(12, 12, 12) != 0 {
		t.Error("Expected new cells to start empty")
	}

	// Shrink clips content outside the new extent
	vol.Resize(vmath.Vec3{X: 5, Y: 5, Z: 5})
	if vol.Get(2, 2, 2) != 11 {
		t.Error("Expected content inside the new extent to survive")
	}
	if vol.Get(8, 8, 8) != 0 {
		t.Error("Expected content outside the new extent to be dropped")
	}
	if vol.VoxelCount() != 1 {
		t.Errorf("Expected 1 voxel after shrink, got %d", vol.VoxelCount())
	}
}
