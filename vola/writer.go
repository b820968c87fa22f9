package vola

import (
	"encoding/binary"
	"io"

	"github.com/dsnet/golib/errs"
)

// WriteTo serializes t to w following spec.md §4.4: header, then per-level
// occupancy words (and payload words, if any), level 0 first. The root
// occupancy word is always emitted even when it is the only word at level 0;
// an entirely empty tree is rejected before any byte is written.
//
// Grounded on the teacher's xflate/meta writer, which also drives its output
// through a fixed header struct followed by length-prefixed blocks; here the
// "length prefix" is implicit popcount propagation instead, per spec.md
// §4.5.
func (t *Tree) WriteTo(w io.Writer) (n int64, err error) {
	defer errs.Recover(&err)

	if t.IsEmpty() {
		return 0, ErrEmptyInput
	}

	lat, lon := centroidLatLon(t.bbox, t.crs, t.reprojector)
	mode := ModeSparse
	if !t.sparse {
		mode = ModeDense
	}
	hdr := Header{
		HeaderSize: HeaderSize,
		Version:    Version,
		Mode:       mode,
		Depth:      uint8(t.depth),
		NBits:      uint32(t.nbits),
		CRS:        int32(t.crs),
		Lat:        lat,
		Lon:        lon,
		BBox:       t.bbox,
	}
	buf := make([]byte, HeaderSize)
	hdr.Encode(buf)
	wn, err := w.Write(buf)
	n += int64(wn)
	errs.Panic(err)

	wordBuf := make([]byte, 8)
	writeWord := func(word uint64) {
		binary.LittleEndian.PutUint64(wordBuf, word)
		wn, err := w.Write(wordBuf)
		n += int64(wn)
		errs.Panic(err)
	}

	for d := 0; d < t.depth; d++ {
		offs := t.occ[d].offsets()
		for _, off := range offs {
			writeWord(t.occ[d].get(off))
		}
		if t.nbits > 0 {
			for _, off := range offs {
				writeWord(t.pay[d].get(off))
			}
		}
	}
	return n, nil
}
