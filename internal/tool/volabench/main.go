// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command volabench compares the on-disk size of a VOLA-encoded point cloud
// against the same dense voxel grid run through general-purpose compressors,
// to quantify how much of VOLA's size advantage comes from sparse bitmap
// addressing versus generic entropy coding.
//
// Example usage:
//	$ go run . -depth 5 -points 200000 -nbits 1
package main

import (
	"bytes"
	"flag"
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/cpuid/v2"
	"github.com/ulikunitz/xz"

	"github.com/movidius/vola/internal/testutil"
	"github.com/movidius/vola/vola"
)

func main() {
	depth := flag.Int("depth", 4, "tree depth, 1..5")
	numPoints := flag.Int("points", 50000, "number of random points to voxelise")
	nbits := flag.Int("nbits", 0, "payload bytes per voxel, 0..8")
	seed := flag.Int("seed", 1, "PRNG seed for reproducible point clouds")
	flag.Parse()

	fmt.Printf("cpu: %s (%d logical cores, AVX2=%v)\n", cpuid.CPU.BrandName, cpuid.CPU.LogicalCores, cpuid.CPU.Supports(cpuid.AVX2))

	side := float64(int(1) << uint(2*(*depth)))
	tr, err := vola.New(vola.Config{
		Depth:  *depth,
		BBox:   vola.BBox{Max: [3]float64{side, side, side}},
		Sparse: true,
		NBits:  *nbits,
		CRS:    vola.UnsetCRS,
	})
	if err != nil {
		panic(err)
	}

	r := testutil.NewRand(*seed)
	points := testutil.RandomPoints(r, *numPoints, side)
	var payloads [][]byte
	if *nbits > 0 {
		payloads = testutil.RandomPayloads(r, *numPoints, *nbits)
	}
	if err := tr.Cubify(points, payloads); err != nil {
		panic(err)
	}

	var volaBuf bytes.Buffer
	volaSize, err := tr.WriteTo(&volaBuf)
	if err != nil {
		panic(err)
	}

	grid := tr.DenseGrid()

	flateSize := compressedSize(grid, flateCompressor)
	xzSize := compressedSize(grid, xzCompressor)

	fmt.Printf("dense grid:  %10d bytes (raw, S=%d)\n", len(grid), tr.Side())
	fmt.Printf("vola file:   %10d bytes\n", volaSize)
	fmt.Printf("flate(grid): %10d bytes\n", flateSize)
	fmt.Printf("xz(grid):    %10d bytes\n", xzSize)
}

func flateCompressor(dst *bytes.Buffer, src []byte) error {
	w, err := flate.NewWriter(dst, flate.DefaultCompression)
	if err != nil {
		return err
	}
	if _, err := w.Write(src); err != nil {
		return err
	}
	return w.Close()
}

func xzCompressor(dst *bytes.Buffer, src []byte) error {
	w, err := xz.NewWriter(dst)
	if err != nil {
		return err
	}
	if _, err := w.Write(src); err != nil {
		return err
	}
	return w.Close()
}

func compressedSize(data []byte, compress func(*bytes.Buffer, []byte) error) int {
	var buf bytes.Buffer
	if err := compress(&buf, data); err != nil {
		panic(err)
	}
	return buf.Len()
}
