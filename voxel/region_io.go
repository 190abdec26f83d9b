package voxel

import (
	"encoding/binary"
	"io"
)

// Regions travel as a fixed 24-byte record
// Little-endian int32 fields in order: [X][Y][Z][Width][Height][Depth]
const RegionWireSize = 24

// Encode writes the region's six fields to a writer
func (r Region) Encode(w io.Writer) error {
	buf := make([]byte, RegionWireSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(r.X)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(r.Y)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(int32(r.Z)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(int32(r.Width)))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(int32(r.Height)))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(int32(r.Depth)))

	_, err := w.Write(buf)
	return err
}

// DecodeRegion reads a region written by Encode
func DecodeRegion(r io.Reader) (Region, error) {
	buf := make([]byte, RegionWireSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Region{}, err
	}

	return Region{
		X:      int(int32(binary.LittleEndian.Uint32(buf[0:4]))),
		Y:      int(int32(binary.LittleEndian.Uint32(buf[4:8]))),
		Z:      int(int32(binary.LittleEndian.Uint32(buf[8:12]))),
		Width:  int(int32(binary.LittleEndian.Uint32(buf[12:16]))),
		Height: int(int32(binary.LittleEndian.Uint32(buf[16:20]))),
		Depth:  int(int32(binary.LittleEndian.Uint32(buf[20:24]))),
	}, nil
}
