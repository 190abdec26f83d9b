package volume

import (
	"bytes"
	"errors"
	"testing"

	"github.com/CanisArtorus/Voreeal/vmath"
	"github.com/CanisArtorus/Voreeal/voxel"
)

func TestSnapshotRoundTrip(t *testing.T) {
	vol := New(vmath.Vec3{X: 8, Y: 4, Z: 2})
	vol.Palette[1] = voxel.Color{R: 255, A: 255}
	vol.Palette[200] = voxel.Color{R: 1, G: 2, B: 3, A: 4}
	vol.Set(0, 0, 0, 1)
	vol.Set(7, 3, 1, 200)
	vol.Set(3, 2, 1, 17)

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, vol); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}

	if got.Size() != vol.Size() {
		t.Errorf("Expected size %v, got %v", vol.Size(), got.Size())
	}
	if got.VoxelCount() != 3 {
		t.Errorf("Expected 3 voxels, got %d", got.VoxelCount())
	}
	if got.Get(7, 3, 1) != 200 {
		t.Errorf("Expected 200 at (7, 3, 1), got %d", got.Get(7, 3, 1))
	}
	if got.Palette != vol.Palette {
		t.Error("Expected palette to survive the round trip")
	}
}

func TestSnapshotEmptyVolume(t *testing.T) {
	vol := New(vmath.Vec3{})

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, vol); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if got.Size() != (vmath.Vec3{}) {
		t.Errorf("Expected empty volume, got size %v", got.Size())
	}
}

func TestReadSnapshotBadMagic(t *testing.T) {
	_, err := ReadSnapshot(bytes.NewReader([]byte("NOPE!")))
	if !errors.Is(err, ErrSnapshotMagic) {
		t.Errorf("Expected ErrSnapshotMagic, got %v", err)
	}
}

func TestReadSnapshotBadVersion(t *testing.T) {
	vol := New(vmath.Vec3{X: 1, Y: 1, Z: 1})

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, vol); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	raw := buf.Bytes()
	raw[4] = 99

	_, err := ReadSnapshot(bytes.NewReader(raw))
	if !errors.Is(err, ErrSnapshotVersion) {
		t.Errorf("Expected ErrSnapshotVersion, got %v", err)
	}
}

func TestReadSnapshotTruncated(t *testing.T) {
	vol := New(vmath.Vec3{X: 2, Y: 2, Z: 2})
	vol.Set(1, 1, 1, 5)

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, vol); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	raw := buf.Bytes()
	if _, err := ReadSnapshot(bytes.NewReader(raw[:20])); err == nil {
		t.Error("Expected an error for a truncated stream")
	}
}
