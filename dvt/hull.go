// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import (
	"sort"

	"github.com/cpmech/vorodd/geo"
	"github.com/cpmech/vorodd/wire"
)

// buildLocalHull implements §4.1 step 1: compute the convex hull of
// own generators; if it has full dimension, find "exterior cells" (not
// fully contained inside the hull) by tessellating locally and testing
// each cell against the hull, then fold their generators' coordinates
// into the hull's point set. A lower-dimensional hull (collinear in
// 2D, coplanar in 3D) makes every local generator visible as-is.
func (d *Driver) buildLocalHull(c *ctx) error {
	if c.nLocal == 0 {
		c.hull = geo.PLC{Dim: c.dim}
		return nil
	}
	hull, err := d.opts.huller().ConvexHull(c.ownGenerators, c.dim)
	if err != nil {
		return err
	}
	if geo.HullDimension(hull) < c.dim {
		c.hull = geo.PLC{Dim: c.dim, Points: append([]float64{}, c.ownGenerators...)}
		return nil
	}

	local, err := d.tessellateMode(c, c.ownGenerators)
	if err != nil {
		return err
	}
	exterior := exteriorCellsByHullTest(local, c.dim, hull)

	augmented := append([]float64{}, hull.Points...)
	for _, icell := range exterior {
		augmented = append(augmented, c.ownGenerators[c.dim*icell:c.dim*icell+c.dim]...)
	}
	c.hull = geo.PLC{Dim: c.dim, Points: augmented}
	return nil
}

// exteriorCellsByHullTest is the primary exterior-cell-detection
// mechanism (matches the original's cell-in-hull #if true branch): a
// local cell is exterior when not every one of its nodes lies inside
// the local hull.
func exteriorCellsByHullTest(mesh *geo.Tessellation, dim int, hull geo.PLC) []int {
	cellNodes := mesh.ComputeCellToNodes()
	var out []int
	for icell, nodeSet := range cellNodes {
		nodeIdx := make([]int, 0, len(nodeSet))
		for n := range nodeSet {
			nodeIdx = append(nodeIdx, n)
		}
		sort.Ints(nodeIdx)
		pts := make([]float64, 0, len(nodeIdx)*dim)
		for _, n := range nodeIdx {
			pts = append(pts, mesh.Node(n)...)
		}
		if !geo.ConvexWithin(pts, dim, hull) {
			out = append(out, icell)
		}
	}
	return out
}

// ExteriorCellsByFaceTest is the alternative mechanism kept for parity
// with the original's second (#else) code path: a cell is exterior
// when one of its faces is incident on only a single cell (a true
// boundary face of the local tessellation), i.e. the face lies on the
// mesh's outer boundary (box, PLC or synthetic inf-box) rather than
// between two local cells.
func ExteriorCellsByFaceTest(mesh *geo.Tessellation) []int {
	var out []int
	for icell, faces := range mesh.Cells {
		boundary := false
		for _, sf := range faces {
			iface := geo.FaceIndex(sf)
			if len(mesh.FaceCells[iface]) < 2 {
				boundary = true
				break
			}
		}
		if boundary {
			out = append(out, icell)
		}
	}
	return out
}

// broadcastHulls implements §4.1 step 2: round-robin broadcast of
// every rank's (possibly augmented) hull, executed in strict rank
// order so every process enters the same Pth collective call.
func (d *Driver) broadcastHulls(c *ctx) error {
	P := c.nproc
	c.domainHulls = make([]geo.PLC, P)
	c.offsets = make([]int, P+1)
	for r := 0; r < P; r++ {
		var payload []byte
		if r == c.rank {
			payload = wire.EncodePLC(&c.hull)
		}
		recv := d.opts.Communicator.Bcast(payload, r)
		c.domainHulls[r] = *wire.DecodePLC(recv)
		c.offsets[r+1] = c.offsets[r] + c.domainHulls[r].NumPoints()
	}
	return nil
}

// buildHullMesh implements §4.1 step 3: concatenate hull vertices
// across ranks in rank order and tessellate once, in the same mode,
// purely to derive adjacency for neighbor discovery. PLC holes are
// dropped for this mesh (only the outer boundary matters here).
func (d *Driver) buildHullMesh(c *ctx) error {
	var allPoints []float64
	for _, h := range c.domainHulls {
		allPoints = append(allPoints, h.Points...)
	}
	if len(allPoints) == 0 {
		c.hullMesh = &geo.Tessellation{Dim: c.dim}
		return nil
	}

	// the hull mesh only needs the outer boundary: PLC holes are
	// dropped for this call (they would otherwise carve pieces out of
	// a mesh used only for rank adjacency, not the real tessellation).
	hullCtx := *c
	if c.mode == geo.PLCBounded && c.plc != nil {
		outer := *c.plc
		outer.Holes = nil
		hullCtx.plc = &outer
	}
	mesh, err := d.tessellateMode(&hullCtx, allPoints)
	if err != nil {
		return err
	}
	c.hullMesh = mesh
	return nil
}

// ownerOfHullPoint maps a hull-mesh point index back to its owning
// rank via binary search on offsets (§4.1 step 4).
func ownerOfHullPoint(offsets []int, pointIdx int) int {
	return sort.Search(len(offsets)-1, func(r int) bool { return offsets[r+1] > pointIdx })
}

// discoverNeighbors implements §4.1 step 4: the neighbor set of this
// rank is the union of every rank whose hull intersects this rank's
// hull, and every rank owning a hull-mesh cell that shares a node with
// a cell owned by this rank's hull-point range.
func (d *Driver) discoverNeighbors(c *ctx) error {
	set := map[int]bool{}
	P := c.nproc
	for r := 0; r < P; r++ {
		if r == c.rank {
			continue
		}
		if geo.ConvexIntersects(c.hull, c.domainHulls[r]) {
			set[r] = true
		}
	}

	if c.hullMesh != nil {
		nodeCells := c.hullMesh.ComputeNodeCells()
		ownRange := [2]int{c.offsets[c.rank], c.offsets[c.rank+1]}
		for icell := ownRange[0]; icell < ownRange[1]; icell++ {
			if icell >= len(c.hullMesh.Cells) {
				continue
			}
			for inode := range cellNodes(c.hullMesh, icell) {
				for other := range nodeCells[inode] {
					// other is a hull-mesh cell index, which maps 1:1 to
					// its generating hull point index (the serial
					// tessellator's cell i always corresponds to
					// generator i), so offsets resolves it directly.
					if other < ownRange[0] || other >= ownRange[1] {
						r := ownerOfHullPoint(c.offsets, other)
						if r != c.rank {
							set[r] = true
						}
					}
				}
			}
		}
	}

	neighbors := make([]int, 0, len(set))
	for r := range set {
		neighbors = append(neighbors, r)
	}
	sort.Ints(neighbors)
	c.neighbors = neighbors
	return nil
}

func cellNodes(mesh *geo.Tessellation, icell int) map[int]bool {
	out := map[int]bool{}
	for _, sf := range mesh.Cells[icell] {
		iface := geo.FaceIndex(sf)
		for _, n := range mesh.Faces[iface] {
			out[n] = true
		}
	}
	return out
}

// checkNeighborSymmetry implements §4.1 step 5 (debug): each rank
// broadcasts its neighbor-set size and list; every pair must agree
// reciprocally. Gated by verifyConsistency's build-tag split so it is
// silent in release builds, matching "ConsistencyViolation ... in
// release builds it is silent".
func (d *Driver) checkNeighborSymmetry(c *ctx) error {
	return checkSymmetryIfDebug(d, c)
}
