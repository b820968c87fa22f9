package bitword

import (
	"reflect"
	"testing"
)

func TestSetClearFlipRead(t *testing.T) {
	var w uint64
	for i := 0; i < NumBits; i++ {
		w = Set(w, i)
		if Read(w, i) != 1 {
			t.Fatalf("Read(%d) after Set = 0, want 1", i)
		}
		w = Flip(w, i)
		if Read(w, i) != 0 {
			t.Fatalf("Read(%d) after Flip = 1, want 0", i)
		}
		w = Flip(w, i)
		w = Clear(w, i)
		if Read(w, i) != 0 {
			t.Fatalf("Read(%d) after Clear = 1, want 0", i)
		}
	}
}

func TestOutOfRangePanics(t *testing.T) {
	tests := []func(){
		func() { Set(0, -1) },
		func() { Set(0, 64) },
		func() { Clear(0, 64) },
		func() { Flip(0, -1) },
		func() { Read(0, 64) },
	}
	for i, fn := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("test %d: expected panic", i)
				}
			}()
			fn()
		}()
	}
}

func TestPopcount(t *testing.T) {
	vectors := []struct {
		w    uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{0x8000000000000001, 2},
		{^uint64(0), 64},
		{0x0200000000000000, 1},
	}
	for _, v := range vectors {
		if got := Popcount(v.w); got != v.want {
			t.Errorf("Popcount(%#x) = %d, want %d", v.w, got, v.want)
		}
	}
}

func TestIndices(t *testing.T) {
	w := Set(Set(uint64(0), 0), 63)
	got := Indices(w)
	want := []int{0, 63}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Indices = %v, want %v", got, want)
	}
}

func TestPopcountBelow(t *testing.T) {
	w := Set(Set(Set(uint64(0), 1), 3), 5)
	vectors := []struct {
		i    int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{4, 2},
		{6, 3},
	}
	for _, v := range vectors {
		if got := PopcountBelow(w, v.i); got != v.want {
			t.Errorf("PopcountBelow(i=%d) = %d, want %d", v.i, got, v.want)
		}
	}
}
