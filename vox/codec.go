package vox

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/CanisArtorus/Voreeal/vmath"
	"github.com/CanisArtorus/Voreeal/voxel"
)

// Every chunk starts with a fixed 12-byte header
// [ID:4][ContentSize:4][ChildrenSize:4], all little-endian
type chunkHeader struct {
	id           uint32
	contentSize  int32
	childrenSize int32
}

func readChunkHeader(r io.Reader) (chunkHeader, error) {
	buf := make([]byte, 12)
	if _, err := io.ReadFull(r, buf); err != nil {
		return chunkHeader{}, err
	}
	return chunkHeader{
		id:           binary.LittleEndian.Uint32(buf[0:4]),
		contentSize:  int32(binary.LittleEndian.Uint32(buf[4:8])),
		childrenSize: int32(binary.LittleEndian.Uint32(buf[8:12])),
	}, nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("%w: truncated chunk", ErrCorrupt)
	}
	return nil
}

// Decode reads a MagicaVoxel stream. Unrecognized chunks are skipped
// by their declared size, so files from newer editors still load as
// long as the core SIZE/XYZI/RGBA chunks are intact.
func Decode(r io.Reader) (*Model, error) {
	head := make([]byte, 8)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, err
	}
	if binary.LittleEndian.Uint32(head[0:4]) != idVox {
		return nil, ErrMagic
	}
	if v := int32(binary.LittleEndian.Uint32(head[4:8])); v != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, v)
	}

	main, err := readChunkHeader(r)
	if err != nil {
		return nil, err
	}
	if main.id != idMain {
		return nil, fmt.Errorf("%w: missing MAIN chunk", ErrCorrupt)
	}
	if main.contentSize < 0 || main.childrenSize < 0 {
		return nil, fmt.Errorf("%w: negative chunk size", ErrCorrupt)
	}
	// MAIN's own content precedes its children, which are the chunks
	// the loop below consumes
	if err := skip(r, int64(main.contentSize)); err != nil {
		return nil, err
	}

	m := &Model{}
	for {
		sub, err := readChunkHeader(r)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrCorrupt)
		}
		if err != nil {
			return nil, err
		}
		if sub.contentSize < 0 || sub.childrenSize < 0 {
			return nil, fmt.Errorf("%w: negative chunk size", ErrCorrupt)
		}

		switch sub.id {
		case idSize:
			if sub.contentSize < 12 {
				return nil, fmt.Errorf("%w: SIZE chunk too small", ErrCorrupt)
			}
			buf := make([]byte, 12)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: truncated SIZE chunk", ErrCorrupt)
			}
			m.Size = vmath.Vec3{
				X: int(int32(binary.LittleEndian.Uint32(buf[0:4]))),
				Y: int(int32(binary.LittleEndian.Uint32(buf[4:8]))),
				Z: int(int32(binary.LittleEndian.Uint32(buf[8:12]))),
			}
			if err := skip(r, int64(sub.contentSize)-12+int64(sub.childrenSize)); err != nil {
				return nil, err
			}

		case idXYZI:
			if sub.contentSize < 4 {
				return nil, fmt.Errorf("%w: XYZI chunk too small", ErrCorrupt)
			}
			var countBuf [4]byte
			if _, err := io.ReadFull(r, countBuf[:]); err != nil {
				return nil, fmt.Errorf("%w: truncated XYZI chunk", ErrCorrupt)
			}
			count := int32(binary.LittleEndian.Uint32(countBuf[:]))
			if count < 0 || count > MaxVoxels {
				return nil, fmt.Errorf("%w: voxel count %d out of range", ErrCorrupt, count)
			}
			if int64(count)*4 > int64(sub.contentSize)-4 {
				return nil, fmt.Errorf("%w: XYZI chunk shorter than voxel count", ErrCorrupt)
			}

			raw := make([]byte, int(count)*4)
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, fmt.Errorf("%w: truncated XYZI chunk", ErrCorrupt)
			}
			m.Voxels = make([]Voxel, count)
			for i := range m.Voxels {
				m.Voxels[i] = Voxel{
					X:          raw[i*4],
					Y:          raw[i*4+1],
					Z:          raw[i*4+2],
					ColorIndex: raw[i*4+3],
				}
			}
			if err := skip(r, int64(sub.contentSize)-4-int64(count)*4+int64(sub.childrenSize)); err != nil {
				return nil, err
			}

		case idRGBA:
			if sub.contentSize < 1024 {
				return nil, fmt.Errorf("%w: RGBA chunk too small", ErrCorrupt)
			}
			raw := make([]byte, 1024)
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, fmt.Errorf("%w: truncated RGBA chunk", ErrCorrupt)
			}
			// On disk the table is shifted: color i maps to palette
			// index i+1, and the 256th entry is reserved
			m.CustomPalette = true
			for i := 0; i < 255; i++ {
				m.Palette[i+1] = voxel.Color{
					R: raw[i*4],
					G: raw[i*4+1],
					B: raw[i*4+2],
					A: raw[i*4+3],
				}
			}
			if err := skip(r, int64(sub.contentSize)-1024+int64(sub.childrenSize)); err != nil {
				return nil, err
			}

		default:
			if err := skip(r, int64(sub.contentSize)+int64(sub.childrenSize)); err != nil {
				return nil, err
			}
		}
	}

	if !m.CustomPalette {
		m.Palette = DefaultPalette()
	}
	return m, nil
}

// Encode writes the model as a MagicaVoxel stream readable by Decode.
// The palette chunk is only emitted for models carrying a custom
// palette.
func Encode(w io.Writer, m *Model) error {
	if len(m.Voxels) > MaxVoxels {
		return fmt.Errorf("vox: %d voxels exceeds the format limit", len(m.Voxels))
	}

	xyziContent := 4 + 4*len(m.Voxels)
	children := (12 + 12) + (12 + xyziContent)
	if m.CustomPalette {
		children += 12 + 1024
	}

	head := make([]byte, 8+12)
	binary.LittleEndian.PutUint32(head[0:4], idVox)
	binary.LittleEndian.PutUint32(head[4:8], Version)
	binary.LittleEndian.PutUint32(head[8:12], idMain)
	binary.LittleEndian.PutUint32(head[12:16], 0)
	binary.LittleEndian.PutUint32(head[16:20], uint32(children))
	if _, err := w.Write(head); err != nil {
		return err
	}

	size := make([]byte, 12+12)
	binary.LittleEndian.PutUint32(size[0:4], idSize)
	binary.LittleEndian.PutUint32(size[4:8], 12)
	binary.LittleEndian.PutUint32(size[8:12], 0)
	binary.LittleEndian.PutUint32(size[12:16], uint32(int32(m.Size.X)))
	binary.LittleEndian.PutUint32(size[16:20], uint32(int32(m.Size.Y)))
	binary.LittleEndian.PutUint32(size[20:24], uint32(int32(m.Size.Z)))
	if _, err := w.Write(size); err != nil {
		return err
	}

	xyzi := make([]byte, 12+xyziContent)
	binary.LittleEndian.PutUint32(xyzi[0:4], idXYZI)
	binary.LittleEndian.PutUint32(xyzi[4:8], uint32(xyziContent))
	binary.LittleEndian.PutUint32(xyzi[8:12], 0)
	binary.LittleEndian.PutUint32(xyzi[12:16], uint32(len(m.Voxels)))
	for i, v := range m.Voxels {
		off := 16 + i*4
		xyzi[off] = v.X
		xyzi[off+1] = v.Y
		xyzi[off+2] = v.Z
		xyzi[off+3] = v.ColorIndex
	}
	if _, err := w.Write(xyzi); err != nil {
		return err
	}

	if m.CustomPalette {
		rgba := make([]byte, 12+1024)
		binary.LittleEndian.PutUint32(rgba[0:4], idRGBA)
		binary.LittleEndian.PutUint32(rgba[4:8], 1024)
		binary.LittleEndian.PutUint32(rgba[8:12], 0)
		for i := 0; i < 255; i++ {
			c := m.Palette[i+1]
			off := 12 + i*4
			rgba[off] = c.R
			rgba[off+1] = c.G
			rgba[off+2] = c.B
			rgba[off+3] = c.A
		}
		// Reserved trailing entry stays zero
		if _, err := w.Write(rgba); err != nil {
			return err
		}
	}

	return nil
}
