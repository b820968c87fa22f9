package vola

import "github.com/movidius/vola/internal/bitword"

// LevelStats summarizes one level's word occupancy, grounded on
// original_source/volatree.py's countlevels.
type LevelStats struct {
	Level      int
	Words      int // number of stored (nonzero, for sparse) occupancy words
	Occupied   int // total set bits across this level's occupancy words
	Unoccupied int // total clear bits across the same words
}

// Stats reports per-level occupancy statistics for t.
func (t *Tree) Stats() []LevelStats {
	out := make([]LevelStats, t.depth)
	for d := 0; d < t.depth; d++ {
		offs := t.occ[d].offsets()
		var occupied int
		for _, off := range offs {
			occupied += bitword.Popcount(t.occ[d].get(off))
		}
		out[d] = LevelStats{
			Level:      d,
			Words:      len(offs),
			Occupied:   occupied,
			Unoccupied: len(offs)*bitword.NumBits - occupied,
		}
	}
	return out
}
