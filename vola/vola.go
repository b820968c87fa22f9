// Package vola implements the VOLA sparse volumetric occupancy format: a
// fixed-depth 64-ary tree of 64-bit occupancy words, optionally annotated
// with per-voxel payload bytes, serialized to a compact binary container.
//
// A Tree is built by repeated calls to Insert or Cubify, serialized once
// with WriteTo, and then discarded; a decoded tree produced by ReadFrom is
// immutable and safe for concurrent traversal.
package vola

import "sort"

// Depth and payload-width bounds (spec.md §4.3).
const (
	MinDepth = 1
	MaxDepth = 5
	MaxNBits = 8
)

// UnsetCRS is the sentinel EPSG code meaning "coordinate reference system
// unknown" (spec.md §3, §9).
const UnsetCRS = 2000

// Mode selects between sparse and dense on-disk layout (spec.md §3).
type Mode uint8

const (
	ModeSparse Mode = 0
	ModeDense  Mode = 1
)

func (m Mode) String() string {
	if m == ModeDense {
		return "dense"
	}
	return "sparse"
}

// BBox is an axis-aligned bounding box in the producer's coordinate
// reference system.
type BBox struct {
	Min, Max [3]float64
}

// extent returns the length of the longest axis. A VOLA tree is always a
// cube: voxelisation scales every axis by this single value (spec.md §4.3).
func (b BBox) extent() float64 {
	e := b.Max[0] - b.Min[0]
	if d := b.Max[1] - b.Min[1]; d > e {
		e = d
	}
	if d := b.Max[2] - b.Min[2]; d > e {
		e = d
	}
	return e
}

// Coord is an integer voxel coordinate (x, y, z), each in [0, Side).
type Coord struct {
	X, Y, Z int
}

// Path returns the depth-digit sparse index path addressing c at the given
// tree depth: path[0] is derived from the most significant 2 bits of each
// axis, path[depth-1] from the least significant 2 bits (spec.md §2, §4.2).
//
// Grounded on original_source/binutils.py's sparse_indexes.
func Path(c Coord, depth int) []int {
	path := make([]int, depth)
	x, y, z := c.X, c.Y, c.Z
	for i := 0; i < depth; i++ {
		level := depth - i - 1
		path[level] = (x & 3) + 4*(y&3) + 16*(z&3)
		x >>= 2
		y >>= 2
		z >>= 2
	}
	return path
}

// FromPath inverts Path, reconstructing the integer coordinate it encodes.
//
// Grounded on original_source/binutils.py's xyz_from_sparse_index.
func FromPath(path []int) Coord {
	var c Coord
	depth := len(path)
	for level, idx := range path {
		mult := 1 << uint(2*(depth-1-level))
		c.X += (idx & 3) * mult
		c.Y += ((idx >> 2) & 3) * mult
		c.Z += (idx >> 4) * mult
	}
	return c
}

// sortedUint64s returns s sorted ascending; s is modified in place.
func sortedUint64s(s []uint64) []uint64 {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s
}
