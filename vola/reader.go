package vola

import (
	"encoding/binary"
	"io"

	"github.com/dsnet/golib/errs"

	"github.com/movidius/vola/internal/bitword"
)

// ReadHeaderFrom reads and validates just the 80-byte header from r, without
// decoding the body. Used by volaindex to summarize a folder of files
// without materializing each tree.
func ReadHeaderFrom(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, asCorrupt(err)
	}
	return DecodeHeader(buf)
}

// ReadFrom decodes a VOLA stream from r, inverting WriteTo (spec.md §4.5).
// The returned Tree is immutable: further Insert/Cubify calls are not
// supported on a decoded tree (spec.md §3 Lifecycle).
func ReadFrom(r io.Reader) (t *Tree, err error) {
	defer errs.Recover(&err)

	hdrBuf := make([]byte, HeaderSize)
	if _, err = io.ReadFull(r, hdrBuf); err != nil {
		return nil, asCorrupt(err)
	}
	hdr, err := DecodeHeader(hdrBuf)
	errs.Panic(err)

	t = &Tree{
		depth:  int(hdr.Depth),
		bbox:   hdr.BBox,
		crs:    int(hdr.CRS),
		sparse: hdr.Mode == ModeSparse,
		nbits:  int(hdr.NBits),
		side:   1 << uint(2*hdr.Depth),
	}
	t.extent = t.bbox.extent()
	if t.extent == 0 {
		t.extent = 1
	}
	t.occ = make([]*levelWords, t.depth)
	if t.nbits > 0 {
		t.pay = make([]*levelWords, t.depth)
	}

	wordBuf := make([]byte, 8)
	readWord := func() uint64 {
		_, err := io.ReadFull(r, wordBuf)
		errs.Panic(asCorrupt(err))
		return binary.LittleEndian.Uint64(wordBuf)
	}

	// Level 0 always holds exactly the root word, at address 0.
	t.occ[0] = newLevelWords(t.sparse, 1)
	t.occ[0].set(0, readWord())
	if t.nbits > 0 {
		t.pay[0] = newLevelWords(t.sparse, 1)
		t.pay[0].set(0, readWord())
	}

	parentAddrs := []uint64{0}
	for d := 1; d < t.depth; d++ {
		addrs := childAddresses(t.sparse, d, parentAddrs, t.occ[d-1])

		t.occ[d] = newLevelWords(t.sparse, len(addrs))
		for _, addr := range addrs {
			t.occ[d].set(addr, readWord())
		}
		if t.nbits > 0 {
			t.pay[d] = newLevelWords(t.sparse, len(addrs))
			for _, addr := range addrs {
				t.pay[d].set(addr, readWord())
			}
		}
		parentAddrs = addrs
	}

	t.nonEmpty = t.occ[0].get(0) != 0
	if !t.nonEmpty {
		return nil, ErrCorrupt
	}
	return t, nil
}

// childAddresses enumerates, in ascending order, the addresses a reader must
// expect at level d given the already-decoded words at level d-1, mirroring
// the writer's emission order (spec.md §3 Layout invariants, §4.5 step 2c).
// In dense mode every address in range is expected regardless of occupancy;
// in sparse mode only children of set parent bits are expected.
func childAddresses(sparse bool, d int, parentAddrs []uint64, parentLevel *levelWords) []uint64 {
	if !sparse {
		count := 1 << uint(6*d)
		addrs := make([]uint64, count)
		for i := range addrs {
			addrs[i] = uint64(i)
		}
		return addrs
	}
	var addrs []uint64
	for _, pa := range parentAddrs {
		pw := parentLevel.get(pa)
		for _, bit := range bitword.Indices(pw) {
			addrs = append(addrs, pa*64+uint64(bit))
		}
	}
	return addrs
}

// asCorrupt maps the two I/O errors that indicate a truncated stream onto
// ErrCorrupt; any other error (including a genuine device error) passes
// through unchanged, matching the teacher convention of leaving I/O errors
// unwrapped.
func asCorrupt(err error) error {
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return ErrCorrupt
	}
	return err
}
