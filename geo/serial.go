// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

// SerialTessellator is the black-box serial Voronoi/Delaunay kernel
// the distributed driver (package dvt) is built on. Implementations
// are reentrant from a single rank's point of view — dvt never calls
// one concurrently — and are injected, never looked up from
// process-wide storage (see SPEC_FULL.md §11 "Global mutable state").
//
// points is a flat Dim-strided real array of length Dim*N.
type SerialTessellator interface {
	// Tessellate computes the unbounded tessellation of points.
	Tessellate(points []float64) (*Tessellation, error)

	// TessellateBox computes the tessellation of points clipped to
	// the axis-aligned box [low, high].
	TessellateBox(points, low, high []float64) (*Tessellation, error)

	// TessellatePLC computes the tessellation of points clipped to
	// the given piecewise linear complex.
	TessellatePLC(points []float64, plcPoints []float64, plc *PLC) (*Tessellation, error)

	// Degeneracy returns the minimum coordinate separation this
	// kernel can resolve; used as the lattice spacing for
	// deterministic shared-element ordering (SPEC_FULL.md §6).
	Degeneracy() float64

	// Dim returns 2 or 3.
	Dim() int
}
