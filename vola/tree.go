package vola

import (
	"sort"

	"github.com/movidius/vola/internal/bitword"
)

// Config parametrizes a new Tree (spec.md §3 Lifecycle).
type Config struct {
	Depth  int  // 1..5
	BBox   BBox // voxelisation bounding box, in the producer's CRS
	CRS    int  // EPSG code, or UnsetCRS
	Sparse bool // false selects dense layout
	NBits  int  // payload bytes per voxel, 0..8

	// Reprojector computes the centroid lat/lon written to the header.
	// Nil degrades to 0,0, matching NopReprojector (spec.md §4.4 step 1).
	Reprojector Reprojector
}

// levelWords stores one tree level's words, either as a fully-allocated
// dense slice indexed directly by a node's linear address, or as a sparse
// map keyed by the same address. Per spec.md §9, the sparse form avoids the
// O(64^D) scratch allocation a naive port of the original builder would
// require.
type levelWords struct {
	dense  []uint64
	sparse map[uint64]uint64
}

func newLevelWords(sparse bool, count int) *levelWords {
	if sparse {
		return &levelWords{sparse: make(map[uint64]uint64)}
	}
	return &levelWords{dense: make([]uint64, count)}
}

func (lw *levelWords) get(off uint64) uint64 {
	if lw.sparse != nil {
		return lw.sparse[off]
	}
	return lw.dense[off]
}

func (lw *levelWords) set(off uint64, w uint64) {
	if lw.sparse != nil {
		lw.sparse[off] = w
	} else {
		lw.dense[off] = w
	}
}

// offsets returns, in ascending order, the addresses that must be emitted
// for this level. For dense storage that is every address in range; for
// sparse storage it is exactly the touched addresses. Since every address is
// a base-64 numeral formed from the path digits above this level (see
// Insert), ascending numeric order is identical to depth-first-by-parent,
// breadth-within-a-parent's-set-bits order, which is what spec.md §3
// requires on disk.
func (lw *levelWords) offsets() []uint64 {
	if lw.sparse == nil {
		offs := make([]uint64, len(lw.dense))
		for i := range offs {
			offs[i] = uint64(i)
		}
		return offs
	}
	offs := make([]uint64, 0, len(lw.sparse))
	for off := range lw.sparse {
		offs = append(offs, off)
	}
	return sortedUint64s(offs)
}

func (lw *levelWords) len() int {
	if lw.sparse != nil {
		return len(lw.sparse)
	}
	return len(lw.dense)
}

// Tree is a VOLA tree under construction. It is owned exclusively by its
// builder: mutate it only through Insert/Cubify, call WriteTo once, then
// discard it (spec.md §3 Lifecycle, §5 Concurrency).
type Tree struct {
	depth  int
	bbox   BBox
	crs    int
	sparse bool
	nbits  int
	side   int
	extent float64

	occ []*levelWords
	pay []*levelWords // nil when nbits == 0

	reprojector Reprojector
	nonEmpty    bool
}

// New validates cfg and allocates an empty Tree.
func New(cfg Config) (*Tree, error) {
	if cfg.Depth < MinDepth || cfg.Depth > MaxDepth {
		return nil, ErrBadDepth
	}
	if cfg.NBits < 0 || cfg.NBits > MaxNBits {
		return nil, ErrBadNBits
	}

	t := &Tree{
		depth:       cfg.Depth,
		bbox:        cfg.BBox,
		crs:         cfg.CRS,
		sparse:      cfg.Sparse,
		nbits:       cfg.NBits,
		side:        1 << uint(2*cfg.Depth),
		reprojector: cfg.Reprojector,
	}
	t.extent = t.bbox.extent()
	if t.extent == 0 {
		// Degenerate bbox (all points collapse to one voxel): scale is
		// irrelevant since every point normalises to the same value, but
		// must not divide by zero (spec.md §8 Boundary behaviours).
		t.extent = 1
	}

	t.occ = make([]*levelWords, t.depth)
	if t.nbits > 0 {
		t.pay = make([]*levelWords, t.depth)
	}
	for d := 0; d < t.depth; d++ {
		count := 1 << uint(6*d) // 64^d
		t.occ[d] = newLevelWords(t.sparse, count)
		if t.nbits > 0 {
			t.pay[d] = newLevelWords(t.sparse, count)
		}
	}
	return t, nil
}

// Depth reports the tree depth D.
func (t *Tree) Depth() int { return t.depth }

// Side reports the voxel grid side length S = 4^D.
func (t *Tree) Side() int { return t.side }

// NBits reports the configured payload width.
func (t *Tree) NBits() int { return t.nbits }

// Sparse reports whether the tree uses sparse on-disk layout.
func (t *Tree) Sparse() bool { return t.sparse }

// BBox reports the voxelisation bounding box.
func (t *Tree) BBox() BBox { return t.bbox }

// CRS reports the configured EPSG code.
func (t *Tree) CRS() int { return t.crs }

// denseAddress computes the raster word offset and bit index addressing
// coord at level d of a depth-D dense tree: word offset
// (x/delta + y/delta*s + z/delta*s^2) / 64, bit the same quantity mod 64,
// with s = 4^(d+1) and delta = 4^(depth-d-1) (spec.md §3 dense bullet).
// Grounded on original_source/volatree.py's setlevel, which computes this
// exact linear index per level rather than the path-prefix numeral sparse
// mode uses.
func denseAddress(c Coord, depth, d int) (addr uint64, bit int) {
	side := 1 << uint(2*(d+1))
	delta := 1 << uint(2*(depth-d-1))
	x := c.X / delta
	y := c.Y / delta
	z := c.Z / delta
	index := x + y*side + z*side*side
	return uint64(index / bitword.NumBits), index % bitword.NumBits
}

// denseCoordFromTerminal inverts denseAddress at the terminal level
// (delta=1, s=side), recovering the full-resolution voxel coordinate from
// its word offset and bit index.
func denseCoordFromTerminal(addr uint64, bit int, side int) Coord {
	index := int(addr)*bitword.NumBits + bit
	s2 := side * side
	z := index / s2
	rem := index % s2
	y := rem / side
	x := rem % side
	return Coord{X: x, Y: y, Z: z}
}

// Insert sets the occupancy bit along coord's path and, when the tree
// carries a payload, stores payload at the terminal node. Re-inserting an
// already-occupied coordinate overwrites its payload: last insert wins
// (spec.md §8).
func (t *Tree) Insert(coord Coord, payload []byte) error {
	if t.nbits > 0 && len(payload) > t.nbits {
		return ErrPayloadTooWide
	}
	if coord.X < 0 || coord.X >= t.side ||
		coord.Y < 0 || coord.Y >= t.side ||
		coord.Z < 0 || coord.Z >= t.side {
		return ErrCoordOutOfRange
	}

	var payWord uint64
	for i, b := range payload {
		payWord |= uint64(b) << uint(8*i)
	}

	var path []int
	if t.sparse {
		path = Path(coord, t.depth)
	}
	var off uint64
	for d := 0; d < t.depth; d++ {
		var addr uint64
		var bit int
		if t.sparse {
			addr, bit = off, path[d]
		} else {
			addr, bit = denseAddress(coord, t.depth, d)
		}
		w := t.occ[d].get(addr)
		w = bitword.Set(w, bit)
		t.occ[d].set(addr, w)
		if t.nbits > 0 && d == t.depth-1 {
			// Payload is only meaningful at the terminal level; per
			// spec.md §9, intermediate-level payload words stay zero and
			// are ignored on read, but still occupy a slot in lockstep
			// with their level's occupancy words (allocated by New, never
			// written to here).
			t.pay[d].set(addr, payWord)
		}
		if t.sparse {
			off = off*64 + uint64(path[d])
		}
	}
	t.nonEmpty = true
	return nil
}

// Cubify normalises a batch of points into integer voxel coordinates and
// inserts them. When several points quantise to the same voxel, the last
// one (in points order) wins; voxels are then inserted in ascending
// coordinate order. Occupancy bits do not depend on that order, but all
// voxels under one terminal occupancy word share a single payload word, so
// the voxel inserted last among them (the highest in (x, y, z) order)
// decides that word's payload. Mirrors original_source/volatree.py's cubify.
func (t *Tree) Cubify(points [][3]float64, payloads [][]byte) error {
	if len(points) == 0 {
		return ErrEmptyInput
	}
	if payloads != nil && len(payloads) != len(points) {
		return ErrShapeMismatch
	}

	last := make(map[Coord][]byte, len(points))
	order := make([]Coord, 0, len(points))
	for i, p := range points {
		c := t.quantizePoint(p)
		if _, ok := last[c]; !ok {
			order = append(order, c)
		}
		if payloads != nil {
			last[c] = payloads[i]
		} else {
			last[c] = nil
		}
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})

	for _, c := range order {
		if err := t.Insert(c, last[c]); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) quantizePoint(p [3]float64) Coord {
	scale := float64(t.side - 1)
	return Coord{
		X: clampIndex(int(round(Normalize(p[0], t.bbox.Min[0], t.bbox.Min[0]+t.extent)*scale)), t.side),
		Y: clampIndex(int(round(Normalize(p[1], t.bbox.Min[1], t.bbox.Min[1]+t.extent)*scale)), t.side),
		Z: clampIndex(int(round(Normalize(p[2], t.bbox.Min[2], t.bbox.Min[2]+t.extent)*scale)), t.side),
	}
}

// clampIndex guards against floating-point round-off pushing an
// already-clamped normalised value's rounded product one unit past the
// valid range.
func clampIndex(i, side int) int {
	if i < 0 {
		return 0
	}
	if i >= side {
		return side - 1
	}
	return i
}

// IsEmpty reports whether any voxel has been inserted.
func (t *Tree) IsEmpty() bool { return !t.nonEmpty }
