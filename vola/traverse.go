package vola

import "github.com/movidius/vola/internal/bitword"

// Voxel is one occupied cell yielded by Enumerate: its integer coordinate
// and, if the tree carries a payload, its payload bytes.
type Voxel struct {
	Coord   Coord
	Payload []byte
}

// Lookup reports whether coord is occupied and, if so, its payload bytes
// (nil when the tree carries no payload). In sparse mode the tree addresses
// nodes by path-prefix (the same scheme Insert uses to place them), which
// spec.md §4.3's rationale explicitly allows as an alternative to
// popcount-compacted array offsets, provided the serialized bytes match; in
// dense mode each level's address is computed independently via
// denseAddress (tree.go), matching Insert's raster placement.
func (t *Tree) Lookup(c Coord) (present bool, payload []byte, err error) {
	if c.X < 0 || c.X >= t.side || c.Y < 0 || c.Y >= t.side || c.Z < 0 || c.Z >= t.side {
		return false, nil, ErrCoordOutOfRange
	}
	var path []int
	if t.sparse {
		path = Path(c, t.depth)
	}
	var off uint64
	for d := 0; d < t.depth; d++ {
		var addr uint64
		var bit int
		if t.sparse {
			addr, bit = off, path[d]
		} else {
			addr, bit = denseAddress(c, t.depth, d)
		}
		w := t.occ[d].get(addr)
		if bitword.Read(w, bit) == 0 {
			return false, nil, nil
		}
		if d == t.depth-1 {
			if t.nbits > 0 {
				payload = unpackPayload(t.pay[d].get(addr), t.nbits)
			}
			return true, payload, nil
		}
		if t.sparse {
			off = off*64 + uint64(path[d])
		}
	}
	return true, nil, nil
}

// LookupTraceStep describes one level of a Lookup walk: the parent word's
// sequential position on disk (as popcount-offset arithmetic would compute
// it, per spec.md §4.6), the bit index tested, and whether it was set.
// Supplemented from original_source/volareader.py's get_binary_indexes
// debug helper.
type LookupTraceStep struct {
	LevelSeq int // sequential index of the parent word within its level
	Bit      int
	Occupied bool
}

// LookupTrace walks coord's path like Lookup but returns one step per level
// visited instead of a present/payload result, for debugging and
// documentation. The walk ends at the first unset bit: that level's step is
// the last one in the trace.
func (t *Tree) LookupTrace(c Coord) ([]LookupTraceStep, error) {
	if c.X < 0 || c.X >= t.side || c.Y < 0 || c.Y >= t.side || c.Z < 0 || c.Z >= t.side {
		return nil, ErrCoordOutOfRange
	}
	var path []int
	if t.sparse {
		path = Path(c, t.depth)
	}
	steps := make([]LookupTraceStep, 0, t.depth)
	var off uint64
	for d := 0; d < t.depth; d++ {
		var addr uint64
		var bit int
		if t.sparse {
			addr, bit = off, path[d]
		} else {
			addr, bit = denseAddress(c, t.depth, d)
		}
		w := t.occ[d].get(addr)
		occupied := bitword.Read(w, bit) == 1
		steps = append(steps, LookupTraceStep{
			LevelSeq: sequentialPosition(t.occ[d], addr),
			Bit:      bit,
			Occupied: occupied,
		})
		if !occupied {
			break
		}
		if t.sparse {
			off = off*64 + uint64(bit)
		}
	}
	return steps, nil
}

// sequentialPosition returns addr's rank among this level's ascending
// addresses, i.e. the word index it occupies on disk.
func sequentialPosition(lw *levelWords, addr uint64) int {
	if lw.sparse == nil {
		return int(addr)
	}
	for i, off := range lw.offsets() {
		if off == addr {
			return i
		}
	}
	return -1
}

// Enumerate visits every occupied voxel, in the same order the container
// writer emits level words, yielding each to fn. fn's error, if non-nil,
// aborts the walk and is returned unchanged.
//
// In sparse mode this is a depth-first walk of the path-prefix tree. In
// dense mode occupancy at the terminal level already encodes the full-
// resolution grid directly (denseAddress at d=depth-1 is the identity raster
// index, delta=1), so presence is read straight off that level instead of
// descending level by level.
func (t *Tree) Enumerate(fn func(Voxel) error) error {
	if t.IsEmpty() {
		return nil
	}
	if !t.sparse {
		return t.enumerateDense(fn)
	}
	return t.enumerateNode(0, 0, nil, fn)
}

func (t *Tree) enumerateNode(d int, addr uint64, prefix []int, fn func(Voxel) error) error {
	w := t.occ[d].get(addr)
	for _, bit := range bitword.Indices(w) {
		path := append(append([]int{}, prefix...), bit)
		childAddr := addr*64 + uint64(bit)
		if d == t.depth-1 {
			v := Voxel{Coord: FromPath(path)}
			if t.nbits > 0 {
				// Payload is addressed the same way as the occupancy word
				// it rides alongside: by the parent's own address, not the
				// child bit being visited (spec.md §4.3; mirrors
				// original_source/volatree.py's set_sparse).
				v.Payload = unpackPayload(t.pay[d].get(addr), t.nbits)
			}
			if err := fn(v); err != nil {
				return err
			}
			continue
		}
		if err := t.enumerateNode(d+1, childAddr, path, fn); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) enumerateDense(fn func(Voxel) error) error {
	d := t.depth - 1
	lw := t.occ[d]
	for _, addr := range lw.offsets() {
		w := lw.get(addr)
		for _, bit := range bitword.Indices(w) {
			v := Voxel{Coord: denseCoordFromTerminal(addr, bit, t.side)}
			if t.nbits > 0 {
				v.Payload = unpackPayload(t.pay[d].get(addr), t.nbits)
			}
			if err := fn(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetCRSCoords maps an occupied voxel coordinate into real-space using the
// tree's bounding box and extent. When the tree's CRS is UnsetCRS, the voxel
// coordinate is returned unchanged (spec.md §4.6).
func (t *Tree) GetCRSCoords(c Coord) [3]float64 {
	if t.crs == UnsetCRS {
		return [3]float64{float64(c.X), float64(c.Y), float64(c.Z)}
	}
	scale := t.extent / float64(t.side)
	return [3]float64{
		float64(c.X)*scale + t.bbox.Min[0],
		float64(c.Y)*scale + t.bbox.Min[1],
		float64(c.Z)*scale + t.bbox.Min[2],
	}
}

func unpackPayload(w uint64, nbits int) []byte {
	p := make([]byte, nbits)
	for i := range p {
		p[i] = byte(w >> uint(8*i))
	}
	return p
}
