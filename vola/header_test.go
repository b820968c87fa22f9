package vola

import "testing"

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{
		HeaderSize: HeaderSize,
		Version:    Version,
		Mode:       ModeDense,
		Depth:      3,
		NBits:      2,
		CRS:        4326,
		Lat:        12.5,
		Lon:        -71.25,
		BBox: BBox{
			Min: [3]float64{-1, -2, -3},
			Max: [3]float64{4, 5, 6},
		},
	}
	buf := make([]byte, HeaderSize)
	h.Encode(buf)

	got, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if got != h {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, h)
	}
}

func TestDecodeHeaderRejectsBadFields(t *testing.T) {
	base := Header{
		HeaderSize: HeaderSize,
		Version:    Version,
		Mode:       ModeSparse,
		Depth:      2,
	}
	buf := make([]byte, HeaderSize)

	base.Encode(buf)
	buf[0] = 0
	if _, err := DecodeHeader(buf); err != ErrBadHeaderSize {
		t.Errorf("bad header_size: err = %v, want ErrBadHeaderSize", err)
	}

	base.Encode(buf)
	buf[4] = 9
	if _, err := DecodeHeader(buf); err != ErrBadVersion {
		t.Errorf("bad version: err = %v, want ErrBadVersion", err)
	}

	base.Encode(buf)
	buf[6] = 5
	if _, err := DecodeHeader(buf); err != ErrBadMode {
		t.Errorf("bad mode: err = %v, want ErrBadMode", err)
	}

	base.Encode(buf)
	buf[7] = 0
	if _, err := DecodeHeader(buf); err != ErrBadDepth {
		t.Errorf("bad depth (0): err = %v, want ErrBadDepth", err)
	}

	base.Encode(buf)
	buf[7] = 6
	if _, err := DecodeHeader(buf); err != ErrBadDepth {
		t.Errorf("bad depth (6): err = %v, want ErrBadDepth", err)
	}

	if _, err := DecodeHeader(buf[:HeaderSize-1]); err != ErrCorrupt {
		t.Errorf("truncated buffer: err = %v, want ErrCorrupt", err)
	}
}
