// Package bitword implements bit-level operations on 64-bit occupancy and
// payload words.
//
// Operations mirror the original movidius/volumetric_accelerator_toolkit
// binutils helpers (set_bit, unset_bit, flip_bit, read_bit, count_bits,
// get_indexes) adapted to operate directly on uint64 words instead of numpy
// scalars.
package bitword

import (
	"encoding/binary"

	"github.com/dsnet/golib/bits"
)

// NumBits is the number of addressable bits (and thus children) per word.
const NumBits = 64

// Set returns w with bit i set to one.
func Set(w uint64, i int) uint64 {
	checkIndex(i)
	return w | (uint64(1) << uint(i))
}

// Clear returns w with bit i set to zero.
func Clear(w uint64, i int) uint64 {
	checkIndex(i)
	return w &^ (uint64(1) << uint(i))
}

// Flip returns w with bit i inverted.
func Flip(w uint64, i int) uint64 {
	checkIndex(i)
	return w ^ (uint64(1) << uint(i))
}

// Read returns the value of bit i: 0 or 1.
func Read(w uint64, i int) int {
	checkIndex(i)
	return int((w >> uint(i)) & 1)
}

// Popcount returns the number of set bits in w.
//
// The word is laid out little-endian into a scratch byte array and counted
// with dsnet/golib/bits.Count, the same byte-slice bit counter the XFLATE
// meta encoder uses to compute zero/one balance (xflate/meta/writer.go).
func Popcount(w uint64) int {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], w)
	return bits.Count(buf[:])
}

// Indices returns the ascending list of bit positions set in w.
func Indices(w uint64) []int {
	var idx []int
	for i := 0; i < NumBits; i++ {
		if w&(uint64(1)<<uint(i)) != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// PopcountBelow returns the number of set bits in w with index strictly less
// than i: the offset arithmetic for locating a child word's position among
// its siblings in a popcount-compacted level (spec §4.6). vola's Lookup
// addresses words by path prefix and does not call it.
func PopcountBelow(w uint64, i int) int {
	checkIndex(i)
	if i == 0 {
		return 0
	}
	mask := uint64(1)<<uint(i) - 1
	return Popcount(w & mask)
}

func checkIndex(i int) {
	if i < 0 || i >= NumBits {
		panic("bitword: index out of range [0, 64)")
	}
}
