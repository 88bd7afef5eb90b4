// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geo holds the data model and external-collaborator
// interfaces the distributed tessellator (package dvt) is built on:
// generators, the tessellation output mesh, PLC boundaries, and the
// black-box serial tessellator / convex-hull / normalization
// collaborators. None of the geometric kernels here are meant to be
// production-grade; dvt depends on the interfaces, and callers are
// expected to inject their own robust implementations.
package geo

// Mode selects how a tessellation is bounded. It is a tagged sum, not
// a set of nullable pointers: each variant only carries the data it
// needs, passed as arguments to the matching SerialTessellator method
// (low/high for TessellateBox, plcPoints/plc for TessellatePLC).
type Mode int

// tessellation modes
const (
	Unbounded Mode = iota
	Box
	PLCBounded
)

// String implements fmt.Stringer
func (o Mode) String() string {
	switch o {
	case Unbounded:
		return "unbounded"
	case Box:
		return "box"
	case PLCBounded:
		return "plc"
	}
	return "unknown"
}

// PLC is a piecewise linear complex: a boundary described by straight
// facets (segments in 2D, planar polygons in 3D) and, optionally,
// interior holes. Points is a flat Dim-strided coordinate array;
// Facets and Holes index into Points.
type PLC struct {
	Dim    int
	Points []float64
	Facets [][]int
	Holes  [][][]int // hole loops (2D) or hole polyhedra facet lists (3D); dropped for hull meshes
}

// NumPoints returns the number of points held by the PLC.
func (o *PLC) NumPoints() int {
	if o.Dim == 0 {
		return 0
	}
	return len(o.Points) / o.Dim
}

// Point returns the i-th point of the PLC.
func (o *PLC) Point(i int) []float64 {
	return o.Points[o.Dim*i : o.Dim*(i+1)]
}

// Tessellation is the mesh produced by a serial or distributed
// tessellation call. Faces are node-index sequences; Cells hold a
// signed face-index list per cell where the sign bit encodes face
// orientation relative to the cell (negative, bitwise-complemented,
// means the face's stored node ordering runs opposite to the cell's
// outward sense) — this mirrors how the original polytope kernel
// packs face/cell incidence into flat index arrays instead of a
// pointer graph.
type Tessellation struct {
	Dim   int
	Nodes []float64 // flat Dim-strided node coordinates
	Faces [][]int   // each face is a node-index sequence

	// Cells[i] lists the faces bounding cell i; negative (bitwise
	// complemented) entries mean the face is traversed in reverse.
	Cells [][]int32

	// FaceCells[i] lists the (one or two) cells incident on face i,
	// same sign convention as Cells.
	FaceCells [][]int32

	InfNodes []bool // node i lies on the artificial inf-sphere/box
	InfFaces []bool // face i closes an unbounded cell

	// Parallel communication info, populated by dvt when
	// BuildCommunicationInfo is set. NeighborDomains[i] is a peer
	// rank; SharedNodes[i]/SharedFaces[i] are the (deterministically
	// ordered) node/face indices shared with that peer.
	NeighborDomains []int
	SharedNodes     [][]int
	SharedFaces     [][]int
}

// FaceIndex strips the orientation sign from a signed face/cell entry.
func FaceIndex(v int32) int {
	if v < 0 {
		return int(^v)
	}
	return int(v)
}

// NumCells returns len(Cells).
func (o *Tessellation) NumCells() int { return len(o.Cells) }

// NumNodes returns the number of nodes (Dim-strided).
func (o *Tessellation) NumNodes() int {
	if o.Dim == 0 {
		return 0
	}
	return len(o.Nodes) / o.Dim
}

// Node returns the i-th node's coordinates.
func (o *Tessellation) Node(i int) []float64 {
	return o.Nodes[o.Dim*i : o.Dim*(i+1)]
}

// SetNode overwrites the i-th node's coordinates in place.
func (o *Tessellation) SetNode(i int, c []float64) {
	copy(o.Nodes[o.Dim*i:o.Dim*(i+1)], c)
}

// ComputeNodeCells returns, for every node index, the set of cells
// touching it (as a map used as a set, matching the "cyclic graph as
// flat index arrays" design note rather than building a pointer mesh).
func (o *Tessellation) ComputeNodeCells() []map[int]bool {
	nn := o.NumNodes()
	out := make([]map[int]bool, nn)
	for i := range out {
		out[i] = map[int]bool{}
	}
	for icell, faces := range o.Cells {
		for _, signedFace := range faces {
			iface := FaceIndex(signedFace)
			for _, inode := range o.Faces[iface] {
				out[inode][icell] = true
			}
		}
	}
	return out
}

// ComputeCellToNodes returns, for every cell, the set of nodes it touches.
func (o *Tessellation) ComputeCellToNodes() []map[int]bool {
	out := make([]map[int]bool, len(o.Cells))
	for icell, faces := range o.Cells {
		set := map[int]bool{}
		for _, signedFace := range faces {
			iface := FaceIndex(signedFace)
			for _, inode := range o.Faces[iface] {
				set[inode] = true
			}
		}
		out[icell] = set
	}
	return out
}
