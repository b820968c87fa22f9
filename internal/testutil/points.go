package testutil

// RandomPoints generates n deterministic pseudo-random 3D points inside
// [0,side)^3 using r, for exercising Tree.Cubify without depending on any
// external point-cloud fixture.
func RandomPoints(r *Rand, n int, side float64) [][3]float64 {
	pts := make([][3]float64, n)
	for i := range pts {
		pts[i] = [3]float64{
			float64(r.Intn(int(side))),
			float64(r.Intn(int(side))),
			float64(r.Intn(int(side))),
		}
	}
	return pts
}

// RandomPayloads generates n deterministic byte slices of width nbits,
// paired positionally with RandomPoints output.
func RandomPayloads(r *Rand, n, nbits int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = r.Bytes(nbits)
	}
	return out
}
