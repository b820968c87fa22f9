package vola

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildRoundTripTree(t *testing.T, sparse bool, nbits int) (*Tree, [][3]float64, [][]byte) {
	t.Helper()
	tr, err := New(Config{
		Depth:  2,
		BBox:   BBox{Min: [3]float64{0, 0, 0}, Max: [3]float64{16, 16, 16}},
		Sparse: sparse,
		NBits:  nbits,
		CRS:    UnsetCRS,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	points := [][3]float64{
		{0, 0, 0},
		{15, 15, 15},
		{1, 2, 3},
		{8, 8, 8},
	}
	var payloads [][]byte
	if nbits > 0 {
		payloads = [][]byte{{1}, {2}, {3}, {4}}
	}
	if err := tr.Cubify(points, payloads); err != nil {
		t.Fatalf("Cubify: %v", err)
	}
	return tr, points, payloads
}

func TestWriteReadRoundTripSparseNoPayload(t *testing.T) {
	tr, points, _ := buildRoundTripTree(t, true, 0)
	var buf bytes.Buffer
	if _, err := tr.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	for _, p := range points {
		c := tr.quantizePoint(p)
		present, _, err := got.Lookup(c)
		if err != nil {
			t.Fatalf("Lookup(%v): %v", c, err)
		}
		if !present {
			t.Errorf("Lookup(%v) = not present, want present", c)
		}
	}
}

func TestWriteReadRoundTripDenseWithPayload(t *testing.T) {
	tr, points, payloads := buildRoundTripTree(t, false, 1)
	var buf bytes.Buffer
	if _, err := tr.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	for i, p := range points {
		c := tr.quantizePoint(p)
		present, payload, err := got.Lookup(c)
		if err != nil {
			t.Fatalf("Lookup(%v): %v", c, err)
		}
		if !present {
			t.Errorf("Lookup(%v) = not present, want present", c)
			continue
		}
		if diff := cmp.Diff(payloads[i], payload); diff != "" {
			t.Errorf("Lookup(%v) payload mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestReadFromRejectsTruncatedStream(t *testing.T) {
	tr, _, _ := buildRoundTripTree(t, true, 0)
	var buf bytes.Buffer
	if _, err := tr.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-1])
	if _, err := ReadFrom(truncated); err != ErrCorrupt {
		t.Errorf("err = %v, want ErrCorrupt", err)
	}
}

func TestReadFromRejectsBadHeader(t *testing.T) {
	buf := make([]byte, HeaderSize)
	if _, err := ReadFrom(bytes.NewReader(buf)); err != ErrBadHeaderSize {
		t.Errorf("err = %v, want ErrBadHeaderSize", err)
	}
}
