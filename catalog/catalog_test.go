package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/CanisArtorus/Voreeal/vmath"
	"github.com/CanisArtorus/Voreeal/vox"
)

func writeTestModel(t *testing.T, dir, name string, size vmath.Vec3, voxels []vox.Voxel) string {
	t.Helper()

	m := &vox.Model{Size: size, Voxels: voxels}
	var buf bytes.Buffer
	if err := vox.Encode(&buf, m); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalogAddGet(t *testing.T) {
	c := openTestCatalog(t)
	dir := t.TempDir()

	path := writeTestModel(t, dir, "tower.vox", vmath.Vec3{X: 4, Y: 4, Z: 8}, []vox.Voxel{
		{X: 0, Y: 0, Z: 0, ColorIndex: 1},
		{X: 1, Y: 1, Z: 7, ColorIndex: 2},
	})

	added, err := c.Add(path, "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.Name != "tower" {
		t.Errorf("Expected default name tower, got %s", added.Name)
	}
	if added.Size != (vmath.Vec3{X: 4, Y: 4, Z: 8}) {
		t.Errorf("Expected size (4, 4, 8), got %v", added.Size)
	}
	if added.VoxelCount != 2 {
		t.Errorf("Expected 2 voxels, got %d", added.VoxelCount)
	}
	if len(added.Digest) != 64 {
		t.Errorf("Expected 64 hex digest characters, got %d", len(added.Digest))
	}

	byID, err := c.Get(added.ID)
	if err != nil {
		t.Fatalf("Get by ID failed: %v", err)
	}
	if byID.Name != "tower" || byID.Path != path {
		t.Errorf("Get by ID: expected tower at %s, got %s at %s", path, byID.Name, byID.Path)
	}

	byName, err := c.Get("tower")
	if err != nil {
		t.Fatalf("Get by name failed: %v", err)
	}
	if byName.ID != added.ID {
		t.Errorf("Expected same asset by name, got ID %s", byName.ID)
	}
	if !byName.AddedAt.Equal(added.AddedAt) {
		t.Errorf("Expected timestamp to survive storage, got %v vs %v", byName.AddedAt, added.AddedAt)
	}
}

func TestCatalogGetMissing(t *testing.T) {
	c := openTestCatalog(t)

	if _, err := c.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCatalogList(t *testing.T) {
	c := openTestCatalog(t)
	dir := t.TempDir()

	a := writeTestModel(t, dir, "a.vox", vmath.Vec3{X: 1, Y: 1, Z: 1}, nil)
	b := writeTestModel(t, dir, "b.vox", vmath.Vec3{X: 2, Y: 2, Z: 2}, nil)

	if _, err := c.Add(a, ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := c.Add(b, ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	assets, err := c.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("Expected 2 assets, got %d", len(assets))
	}
	if assets[0].Name != "a" || assets[1].Name != "b" {
		t.Errorf("Expected a then b, got %s then %s", assets[0].Name, assets[1].Name)
	}
}

func TestCatalogDuplicateName(t *testing.T) {
	c := openTestCatalog(t)
	dir := t.TempDir()

	path := writeTestModel(t, dir, "dup.vox", vmath.Vec3{X: 1, Y: 1, Z: 1}, nil)

	if _, err := c.Add(path, "same"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := c.Add(path, "same"); err == nil {
		t.Error("Expected an error for a duplicate asset name")
	}
}

func TestCatalogRemove(t *testing.T) {
	c := openTestCatalog(t)
	dir := t.TempDir()

	path := writeTestModel(t, dir, "gone.vox", vmath.Vec3{X: 1, Y: 1, Z: 1}, nil)
	if _, err := c.Add(path, ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := c.Remove("gone"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := c.Get("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected asset to be gone, got %v", err)
	}
	if err := c.Remove("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second remove, got %v", err)
	}
}

func TestCatalogVerify(t *testing.T) {
	c := openTestCatalog(t)
	dir := t.TempDir()

	path := writeTestModel(t, dir, "check.vox", vmath.Vec3{X: 2, Y: 2, Z: 2}, []vox.Voxel{
		{X: 0, Y: 0, Z: 0, ColorIndex: 3},
	})
	if _, err := c.Add(path, ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ok, err := c.Verify("check")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Error("Expected untouched file to verify")
	}

	// Tamper with the file
	writeTestModel(t, dir, "check.vox", vmath.Vec3{X: 2, Y: 2, Z: 2}, []vox.Voxel{
		{X: 1, Y: 1, Z: 1, ColorIndex: 9},
	})

	ok, err = c.Verify("check")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Error("Expected modified file to fail verification")
	}
}

func TestCatalogAddRejectsGarbage(t *testing.T) {
	c := openTestCatalog(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "junk.bin")
	if err := os.WriteFile(path, []byte("certainly not a model"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := c.Add(path, ""); err == nil {
		t.Error("Expected an error for an unrecognized file")
	}
}
