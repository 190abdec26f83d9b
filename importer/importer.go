package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/CanisArtorus/Voreeal/volume"
	"github.com/CanisArtorus/Voreeal/vox"
)

// Format identifies a recognized model stream format
type Format uint8

const (
	FormatUnknown Format = iota
	FormatVox
	FormatSnapshot
)

func (f Format) String() string {
	switch f {
	case FormatVox:
		return "MagicaVoxel"
	case FormatSnapshot:
		return "snapshot"
	}
	return "unknown"
}

var ErrUnknownFormat = errors.New("importer: unrecognized model format")

// Detect sniffs the format from the first bytes of a stream. Four
// bytes are enough for every supported format.
func Detect(head []byte) Format {
	if len(head) < 4 {
		return FormatUnknown
	}
	switch string(head[:4]) {
	case "VOX ":
		return FormatVox
	case "VXSN":
		return FormatSnapshot
	}
	return FormatUnknown
}

// Import sniffs the stream format and materializes it as a dense
// volume
func Import(r io.Reader) (*volume.Dense, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil {
		return nil, ErrUnknownFormat
	}

	switch Detect(head) {
	case FormatVox:
		m, err := vox.Decode(br)
		if err != nil {
			return nil, err
		}
		return FromModel(m), nil
	case FormatSnapshot:
		return volume.ReadSnapshot(br)
	}
	return nil, ErrUnknownFormat
}

// ImportFile opens and imports a model file
func ImportFile(path string) (*volume.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()
	return Import(f)
}

// FromModel materializes a decoded model as a volume sized to the
// model's declared dimensions. Voxels outside the declared size are
// dropped.
func FromModel(m *vox.Model) *volume.Dense {
	vol := volume.New(m.Size)
	vol.Palette = m.Palette
	for _, v := range m.Voxels {
		vol.Set(int(v.X), int(v.Y), int(v.Z), v.ColorIndex)
	}
	return vol
}

// ToModel converts a volume back to a model. Volumes wider than the
// format's byte coordinate space cannot be represented.
func ToModel(vol *volume.Dense) (*vox.Model, error) {
	size := vol.Size()
	if size.X > 256 || size.Y > 256 || size.Z > 256 {
		return nil, fmt.Errorf("importer: volume %v exceeds the 256 voxel model limit", size)
	}

	m := &vox.Model{
		Size:          size,
		Palette:       vol.Palette,
		CustomPalette: true,
	}
	for z := 0; z < size.Z; z++ {
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				if idx := vol.Get(x, y, z); idx != 0 {
					m.Voxels = append(m.Voxels, vox.Voxel{
						X:          uint8(x),
						Y:          uint8(y),
						Z:          uint8(z),
						ColorIndex: idx,
					})
				}
			}
		}
	}
	return m, nil
}
