// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import "math"

// ComputeBoundingBox returns the low/high corners of the axis-aligned
// bounding box of a flat dim-strided point array. It returns
// (+Inf, -Inf) low/high (componentwise) when points is empty, so a
// caller performing a global min/max reduction across ranks can feed
// an empty-rank contribution in harmlessly.
func ComputeBoundingBox(points []float64, dim int) (low, high []float64) {
	low = make([]float64, dim)
	high = make([]float64, dim)
	for j := 0; j < dim; j++ {
		low[j] = math.Inf(1)
		high[j] = math.Inf(-1)
	}
	n := len(points) / dim
	for i := 0; i < n; i++ {
		for j := 0; j < dim; j++ {
			v := points[dim*i+j]
			if v < low[j] {
				low[j] = v
			}
			if v > high[j] {
				high[j] = v
			}
		}
	}
	return
}

// PLCBoundingBox returns the bounding box of the points referenced by
// a PLC's facets (matching the original's choice to bound only on
// points actually used by a facet, not every entry of plcPoints).
func PLCBoundingBox(plcPoints []float64, plc *PLC) (low, high []float64) {
	dim := plc.Dim
	low = make([]float64, dim)
	high = make([]float64, dim)
	for j := 0; j < dim; j++ {
		low[j] = math.Inf(1)
		high[j] = math.Inf(-1)
	}
	for _, facet := range plc.Facets {
		for _, i := range facet {
			for j := 0; j < dim; j++ {
				v := plcPoints[dim*i+j]
				if v < low[j] {
					low[j] = v
				}
				if v > high[j] {
					high[j] = v
				}
			}
		}
	}
	return
}

// MergeBoundingBox widens (low, high) in place to also cover (olow, ohigh).
func MergeBoundingBox(low, high, olow, ohigh []float64) {
	for j := range low {
		if olow[j] < low[j] {
			low[j] = olow[j]
		}
		if ohigh[j] > high[j] {
			high[j] = ohigh[j]
		}
	}
}
