package catalog

import (
	"bytes"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	"github.com/CanisArtorus/Voreeal/importer"
	"github.com/CanisArtorus/Voreeal/vmath"
)

// Asset is one cataloged model file
type Asset struct {
	ID         string
	Name       string
	Path       string
	Size       vmath.Vec3
	VoxelCount int
	Digest     string // BLAKE3-256 of the file content, hex encoded
	AddedAt    time.Time
}

// Catalog indexes model files in a SQLite database. Records carry the
// decoded dimensions and a content digest so collections can be listed
// and verified without re-reading every model.
type Catalog struct {
	db *sql.DB
}

var ErrNotFound = errors.New("catalog: asset not found")

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	path        TEXT NOT NULL,
	size_x      INTEGER NOT NULL,
	size_y      INTEGER NOT NULL,
	size_z      INTEGER NOT NULL,
	voxel_count INTEGER NOT NULL,
	digest      TEXT NOT NULL,
	added_at    TEXT NOT NULL
);`

// Open opens or creates a catalog database at path
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add ingests a model file: the content is decoded for its dimensions,
// hashed, and recorded. An empty name defaults to the file's base name
// without extension.
func (c *Catalog) Add(path, name string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	vol, err := importer.Import(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	sum := blake3.Sum256(data)
	a := &Asset{
		ID:         uuid.New().String(),
		Name:       name,
		Path:       path,
		Size:       vol.Size(),
		VoxelCount: vol.VoxelCount(),
		Digest:     hex.EncodeToString(sum[:]),
		AddedAt:    time.Now().UTC().Truncate(time.Second), // RFC3339 storage precision
	}

	_, err = c.db.Exec(
		`INSERT INTO assets (id, name, path, size_x, size_y, size_z, voxel_count, digest, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Path, a.Size.X, a.Size.Y, a.Size.Z, a.VoxelCount, a.Digest,
		a.AddedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert asset: %w", err)
	}
	return a, nil
}

// rowScanner covers both sql.Row and sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*Asset, error) {
	var a Asset
	var added string
	err := row.Scan(&a.ID, &a.Name, &a.Path, &a.Size.X, &a.Size.Y, &a.Size.Z,
		&a.VoxelCount, &a.Digest, &added)
	if err != nil {
		return nil, err
	}
	a.AddedAt, err = time.Parse(time.RFC3339, added)
	if err != nil {
		return nil, fmt.Errorf("failed to parse asset timestamp: %w", err)
	}
	return &a, nil
}

// Get looks an asset up by ID or by name
func (c *Catalog) Get(ref string) (*Asset, error) {
	row := c.db.QueryRow(
		`SELECT id, name, path, size_x, size_y, size_z, voxel_count, digest, added_at
		 FROM assets WHERE id = ? OR name = ?`, ref, ref)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// List returns every asset ordered by insertion time
func (c *Catalog) List() ([]Asset, error) {
	rows, err := c.db.Query(
		`SELECT id, name, path, size_x, size_y, size_z, voxel_count, digest, added_at
		 FROM assets ORDER BY added_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

// Remove deletes an asset record by ID or name
func (c *Catalog) Remove(ref string) error {
	res, err := c.db.Exec(`DELETE FROM assets WHERE id = ? OR name = ?`, ref, ref)
	if err != nil {
		return fmt.Errorf("failed to remove asset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Verify re-hashes the asset's file on disk and reports whether it
// still matches the recorded digest
func (c *Catalog) Verify(ref string) (bool, error) {
	a, err := c.Get(ref)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return false, fmt.Errorf("failed to read model file: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]) == a.Digest, nil
}
