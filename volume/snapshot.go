package volume

import (
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/CanisArtorus/Voreeal/voxel"
)

// Snapshot stream layout:
// [magic "VXSN":4][version:1][region:24][palette RGBA:1024][xz payload]
// The payload is the raw cell array, Width*Height*Depth bytes before
// compression.
const (
	snapshotMagic   = "VXSN"
	snapshotVersion = 1
)

var (
	ErrSnapshotMagic   = errors.New("volume: not a snapshot stream")
	ErrSnapshotVersion = errors.New("volume: unsupported snapshot version")
)

// WriteSnapshot writes the volume to w in the snapshot container
// format
func WriteSnapshot(w io.Writer, vol *Dense) error {
	header := make([]byte, 5)
	copy(header, snapshotMagic)
	header[4] = snapshotVersion
	if _, err := w.Write(header); err != nil {
		return err
	}

	if err := vol.Region().Encode(w); err != nil {
		return err
	}

	pal := make([]byte, len(vol.Palette)*4)
	for i, c := range vol.Palette {
		pal[i*4] = c.R
		pal[i*4+1] = c.G
		pal[i*4+2] = c.B
		pal[i*4+3] = c.A
	}
	if _, err := w.Write(pal); err != nil {
		return err
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := xw.Write(vol.data); err != nil {
		return err
	}
	return xw.Close()
}

// ReadSnapshot reads a volume written by WriteSnapshot
func ReadSnapshot(r io.Reader) (*Dense, error) {
	header := make([]byte, 5)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if string(header[:4]) != snapshotMagic {
		return nil, ErrSnapshotMagic
	}
	if header[4] != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, header[4])
	}

	region, err := voxel.DecodeRegion(r)
	if err != nil {
		return nil, err
	}
	if region.Width < 0 || region.Height < 0 || region.Depth < 0 {
		return nil, fmt.Errorf("volume: invalid snapshot extents %v", region.Size())
	}

	pal := make([]byte, 256*4)
	if _, err := io.ReadFull(r, pal); err != nil {
		return nil, err
	}

	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	data, err := io.ReadAll(xr)
	if err != nil {
		return nil, err
	}

	want := region.Width * region.Height * region.Depth
	if len(data) != want {
		return nil, fmt.Errorf("volume: snapshot payload is %d bytes, expected %d", len(data), want)
	}

	vol := &Dense{size: region.Size(), data: data}
	for i := range vol.Palette {
		vol.Palette[i] = voxel.Color{
			R: pal[i*4],
			G: pal[i*4+1],
			B: pal[i*4+2],
			A: pal[i*4+3],
		}
	}
	return vol, nil
}
