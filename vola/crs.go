package vola

// Reprojector converts a point in one coordinate reference system (EPSG
// code) into another. It is the pure-function seam spec.md §1 carves CRS
// reprojection out behind: this package never performs the reprojection
// math itself, only calls out to one.
type Reprojector interface {
	Reproject(epsgSrc, epsgDst int, x, y float64) (lat, lon float64, err error)
}

// NopReprojector always reports failure, causing callers to fall back to
// the zero centroid (spec.md §4.4 step 1). It is the default used when no
// Reprojector is supplied.
type NopReprojector struct{}

// Reproject implements Reprojector by always failing.
func (NopReprojector) Reproject(epsgSrc, epsgDst int, x, y float64) (float64, float64, error) {
	return 0, 0, ErrNoReprojector
}

// ErrNoReprojector is returned by NopReprojector.Reproject. Writers treat it
// the same as any other reprojection failure: lat/lon degrade to 0.0 without
// aborting the write.
var ErrNoReprojector error = Error("no CRS reprojector configured")

// centroidLatLon computes the bbox centroid and reprojects it to lat/lon,
// degrading to (0,0) on any failure or when crs is UnsetCRS, per spec.md
// §4.4 step 1.
func centroidLatLon(b BBox, crs int, rp Reprojector) (lat, lon float64) {
	if crs == UnsetCRS || rp == nil {
		return 0, 0
	}
	cx := (b.Min[0] + b.Max[0]) / 2
	cy := (b.Min[1] + b.Max[1]) / 2
	lat, lon, err := rp.Reproject(crs, 4326, cx, cy)
	if err != nil {
		return 0, 0
	}
	return lat, lon
}
