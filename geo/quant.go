// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import "math"

// Normalizer maps real-valued coordinates to lattice integers with a
// fixed grid origin and spacing, and supplies a deterministic ordering
// key — the black-box collaborator SPEC_FULL.md §4 lists third.
// dvt uses it exclusively to build ordering keys for shared nodes and
// faces (SPEC_FULL.md §6); it is never used to move real coordinates,
// which always stay at full floating-point precision.
type Normalizer interface {
	// Quantize maps a real point (relative to origin, in units of
	// spacing) to an integer lattice point of the same dimension.
	Quantize(point, origin []float64, spacing float64) []int64
}

// LatticeQuantizer is the reference Normalizer: componentwise
// floor((p-origin)/spacing).
type LatticeQuantizer struct{}

// Quantize implements Normalizer.
func (LatticeQuantizer) Quantize(point, origin []float64, spacing float64) []int64 {
	out := make([]int64, len(point))
	for j := range point {
		out[j] = int64(math.Floor((point[j] - origin[j]) / spacing))
	}
	return out
}

// TaggedKey pairs a sortable lattice key with the original node or
// face index it was computed for (SPEC_FULL.md §6: "attach the
// original node index as a tag").
type TaggedKey struct {
	Key   []int64
	Index int
}

// LessLattice orders two lattice keys lexicographically — integer
// comparison only, per the design note that a 1-ulp difference in a
// floating centroid computed on two ranks must never flip the order.
func LessLattice(a, b []int64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// SortTaggedKeys sorts a slice of TaggedKey in place by lattice key.
func SortTaggedKeys(keys []TaggedKey) {
	// insertion sort is adequate here: shared-element counts per
	// neighbor are small relative to global mesh size, and determinism
	// (not asymptotic speed) is what the protocol depends on.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && LessLattice(keys[j].Key, keys[j-1].Key); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

// FaceCentroid computes a face's centroid: the plain average of its
// node coordinates in 2D, and an area-weighted centroid (fan
// triangulation about the first node) in 3D, exactly the distinction
// SPEC_FULL.md §6 calls out.
func FaceCentroid(mesh *Tessellation, iface int) []float64 {
	nodes := mesh.Faces[iface]
	dim := mesh.Dim
	c := make([]float64, dim)
	if dim == 2 || len(nodes) < 3 {
		for _, inode := range nodes {
			p := mesh.Node(inode)
			for j := 0; j < dim; j++ {
				c[j] += p[j]
			}
		}
		for j := 0; j < dim; j++ {
			c[j] /= float64(len(nodes))
		}
		return c
	}

	// 3D: area-weighted centroid via fan triangulation from nodes[0].
	p0 := mesh.Node(nodes[0])
	var totalArea float64
	for i := 1; i+1 < len(nodes); i++ {
		p1 := mesh.Node(nodes[i])
		p2 := mesh.Node(nodes[i+1])
		u := sub3(p1, p0)
		v := sub3(p2, p0)
		n := cross3(u, v)
		area := 0.5 * math.Sqrt(n[0]*n[0]+n[1]*n[1]+n[2]*n[2])
		if area == 0 {
			continue
		}
		for j := 0; j < 3; j++ {
			c[j] += area * (p0[j] + p1[j] + p2[j]) / 3.0
		}
		totalArea += area
	}
	if totalArea == 0 {
		// degenerate (zero-area) face: fall back to the plain average.
		for _, inode := range nodes {
			p := mesh.Node(inode)
			for j := 0; j < dim; j++ {
				c[j] += p[j]
			}
		}
		for j := 0; j < dim; j++ {
			c[j] /= float64(len(nodes))
		}
		return c
	}
	for j := 0; j < 3; j++ {
		c[j] /= totalArea
	}
	return c
}
