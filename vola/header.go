package vola

import (
	"encoding/binary"
	"math"
)

// HeaderSize is the fixed on-disk size of a VOLA header in bytes
// (spec.md §3).
const HeaderSize = 80

// Version is the only container version this package writes and reads.
const Version = 1

// Header is the fixed 80-byte prologue of a VOLA file. Field offsets follow
// spec.md §3 exactly; Encode/Decode are the sole authority on layout.
type Header struct {
	HeaderSize uint32
	Version    uint16
	Mode       Mode
	Depth      uint8
	NBits      uint32
	CRS        int32
	Lat        float64
	Lon        float64
	BBox       BBox
}

// Encode writes h's 80-byte little-endian representation into buf, which
// must be at least HeaderSize bytes long.
func (h Header) Encode(buf []byte) {
	_ = buf[HeaderSize-1] // bounds check hint, mirrors teacher's explicit slice-length assertions
	binary.LittleEndian.PutUint32(buf[0:4], h.HeaderSize)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	buf[6] = byte(h.Mode)
	buf[7] = h.Depth
	binary.LittleEndian.PutUint32(buf[8:12], h.NBits)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(h.CRS))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(h.Lat))
	binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(h.Lon))
	off := 32
	for _, v := range []float64{
		h.BBox.Min[0], h.BBox.Min[1], h.BBox.Min[2],
		h.BBox.Max[0], h.BBox.Max[1], h.BBox.Max[2],
	} {
		binary.LittleEndian.PutUint64(buf[off:off+8], math.Float64bits(v))
		off += 8
	}
}

// DecodeHeader parses buf (at least HeaderSize bytes) into a Header,
// validating header_size, version, mode, depth and nbits per spec.md §4.5
// step 1. nbits is checked against MaxNBits here because the on-disk field
// is wider than the in-memory invariant allows.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrCorrupt
	}
	var h Header
	h.HeaderSize = binary.LittleEndian.Uint32(buf[0:4])
	if h.HeaderSize != HeaderSize {
		return Header{}, ErrBadHeaderSize
	}
	h.Version = binary.LittleEndian.Uint16(buf[4:6])
	if h.Version != Version {
		return Header{}, ErrBadVersion
	}
	h.Mode = Mode(buf[6])
	if h.Mode != ModeSparse && h.Mode != ModeDense {
		return Header{}, ErrBadMode
	}
	h.Depth = buf[7]
	if int(h.Depth) < MinDepth || int(h.Depth) > MaxDepth {
		return Header{}, ErrBadDepth
	}
	h.NBits = binary.LittleEndian.Uint32(buf[8:12])
	if h.NBits > MaxNBits {
		return Header{}, ErrBadNBits
	}
	h.CRS = int32(binary.LittleEndian.Uint32(buf[12:16]))
	h.Lat = math.Float64frombits(binary.LittleEndian.Uint64(buf[16:24]))
	h.Lon = math.Float64frombits(binary.LittleEndian.Uint64(buf[24:32]))

	vals := make([]float64, 6)
	off := 32
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[off : off+8]))
		off += 8
	}
	h.BBox = BBox{
		Min: [3]float64{vals[0], vals[1], vals[2]},
		Max: [3]float64{vals[3], vals[4], vals[5]},
	}
	return h, nil
}
