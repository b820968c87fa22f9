package vola

// Plane is a square binary image: Plane[row][col] is 1 where occupied.
type Plane [][]byte

// SlicePlanes returns, for each level d in [1,D], one 4^d x 4^d binary image
// per z in [0, 4^d) — the full stack of per-z slices at that level's
// resolution, not a single z-collapsed projection (spec.md §4.7). Coarser
// levels summarize whole subtrees as a single occupied cell in each slice.
//
// Grounded on original_source/volareader.py's slice_layers, which allocates
// a side x side x side array per depth and writes one PGM per z index
// rather than flattening z away.
func (t *Tree) SlicePlanes() map[int][]Plane {
	out := make(map[int][]Plane, t.depth)
	for d := 1; d <= t.depth; d++ {
		side := 1 << uint(2*d)
		slices := make([]Plane, side)
		for z := range slices {
			plane := make(Plane, side)
			for i := range plane {
				plane[i] = make([]byte, side)
			}
			slices[z] = plane
		}
		out[d] = slices
	}

	if t.IsEmpty() {
		return out
	}
	t.Enumerate(func(v Voxel) error {
		for d := 1; d <= t.depth; d++ {
			shift := uint(2 * (t.depth - d))
			x := v.Coord.X >> shift
			y := v.Coord.Y >> shift
			z := v.Coord.Z >> shift
			out[d][z][y][x] = 1
		}
		return nil
	})
	return out
}

// GroundProjection returns an S x S binary image where pixel[y][x] = 1 iff
// any voxel (x,y,z) with z >= hMin is occupied (spec.md §4.7).
func (t *Tree) GroundProjection(hMin int) [][]byte {
	img := make([][]byte, t.side)
	for i := range img {
		img[i] = make([]byte, t.side)
	}
	if t.IsEmpty() {
		return img
	}
	t.Enumerate(func(v Voxel) error {
		if v.Coord.Z >= hMin {
			img[v.Coord.Y][v.Coord.X] = 1
		}
		return nil
	})
	return img
}

// DenseGrid materializes the full S^3 occupancy grid as a flat byte array
// indexed by x + y*S + z*S^2, 1 at occupied voxels (spec.md §4.7). This
// defeats the sparse representation's memory savings and is intended for
// small trees or debugging.
func (t *Tree) DenseGrid() []byte {
	grid := make([]byte, t.side*t.side*t.side)
	if t.IsEmpty() {
		return grid
	}
	t.Enumerate(func(v Voxel) error {
		idx := v.Coord.X + v.Coord.Y*t.side + v.Coord.Z*t.side*t.side
		grid[idx] = 1
		return nil
	})
	return grid
}
