// Package volaindex builds a JSON summary over a folder of VOLA files:
// per-file bounding boxes and centroids, plus a dataset-wide bounding box.
// Grounded on original_source/datasetparser.py.
package volaindex

import (
	"encoding/json"
	"io"
	"math"

	"github.com/movidius/vola/vola"
)

// FileInfo summarizes a single VOLA file's header.
type FileInfo struct {
	Filename string     `json:"filename"`
	BBox     [6]float64 `json:"bbox"`
	Centroid [3]float64 `json:"centroid"`
	Sides    [3]float64 `json:"sides"`
	CRS      int32      `json:"crs"`
	Lat      float64    `json:"lat"`
	Lon      float64    `json:"lon"`
}

// Dataset is the JSON-serializable summary of a folder of VOLA files.
type Dataset struct {
	Files    []FileInfo `json:"files"`
	Depth    uint8      `json:"depth"`
	NBits    uint32     `json:"nbits"`
	CRS      int32      `json:"crs"`
	Mode     string     `json:"mode"`
	BBox     [6]float64 `json:"bbox"`
	Sides    [3]float64 `json:"sides"`
	Centroid [3]float64 `json:"centroid"`
}

// fileInfoFromHeader converts a decoded header, paired with its source
// filename, into a FileInfo.
func fileInfoFromHeader(filename string, h vola.Header) FileInfo {
	bbox := [6]float64{
		h.BBox.Min[0], h.BBox.Min[1], h.BBox.Min[2],
		h.BBox.Max[0], h.BBox.Max[1], h.BBox.Max[2],
	}
	sides := [3]float64{
		h.BBox.Max[0] - h.BBox.Min[0],
		h.BBox.Max[1] - h.BBox.Min[1],
		h.BBox.Max[2] - h.BBox.Min[2],
	}
	centroid := [3]float64{
		(h.BBox.Min[0] + h.BBox.Max[0]) / 2,
		(h.BBox.Min[1] + h.BBox.Max[1]) / 2,
		(h.BBox.Min[2] + h.BBox.Max[2]) / 2,
	}
	return FileInfo{
		Filename: filename,
		BBox:     bbox,
		Centroid: centroid,
		Sides:    sides,
		CRS:      h.CRS,
		Lat:      h.Lat,
		Lon:      h.Lon,
	}
}

// Source pairs a display name with an opened VOLA file's header stream.
type Source struct {
	Name   string
	Reader io.Reader
}

// Build reads each source's header and aggregates them into a Dataset. The
// last source's depth/nbits/crs/mode are used for the dataset-wide fields,
// matching datasetparser.py's behavior of keeping whichever header was last
// read in the loop.
func Build(sources []Source) (Dataset, error) {
	var ds Dataset
	tminx, tminy, tminz := math.Inf(1), math.Inf(1), math.Inf(1)
	tmaxx, tmaxy, tmaxz := math.Inf(-1), math.Inf(-1), math.Inf(-1)

	for _, src := range sources {
		hdr, err := vola.ReadHeaderFrom(src.Reader)
		if err != nil {
			return Dataset{}, err
		}
		fi := fileInfoFromHeader(src.Name, hdr)
		ds.Files = append(ds.Files, fi)

		if hdr.BBox.Min[0] < tminx {
			tminx = hdr.BBox.Min[0]
		}
		if hdr.BBox.Min[1] < tminy {
			tminy = hdr.BBox.Min[1]
		}
		if hdr.BBox.Min[2] < tminz {
			tminz = hdr.BBox.Min[2]
		}
		if hdr.BBox.Max[0] > tmaxx {
			tmaxx = hdr.BBox.Max[0]
		}
		if hdr.BBox.Max[1] > tmaxy {
			tmaxy = hdr.BBox.Max[1]
		}
		if hdr.BBox.Max[2] > tmaxz {
			tmaxz = hdr.BBox.Max[2]
		}

		ds.Depth = hdr.Depth
		ds.NBits = hdr.NBits
		ds.CRS = hdr.CRS
		ds.Mode = hdr.Mode.String()
	}

	ds.BBox = [6]float64{tminx, tminy, tminz, tmaxx, tmaxy, tmaxz}
	ds.Sides = [3]float64{tmaxx - tminx, tmaxy - tminy, tmaxz - tminz}
	ds.Centroid = [3]float64{(tminx + tmaxx) / 2, (tminy + tmaxy) / 2, (tminz + tmaxz) / 2}
	return ds, nil
}

// JSON renders ds with two-space indentation. Keys appear in struct field
// declaration order; they are not sorted.
func (d Dataset) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
