// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import "github.com/cpmech/vorodd/geo"

// identifySharedElements implements §4.3: for every local cell, a face
// with two incident cells where the partner is a ghost cell (owned by
// a peer rank) is shared with that peer; a node is shared with peer p
// if any cell touching it (in the pre-trim mesh) is owned by p.
func (d *Driver) identifySharedElements(c *ctx) error {
	sharedFaces := map[int]map[int]bool{} // rank -> set of new face idx
	sharedNodes := map[int]map[int]bool{} // rank -> set of new node idx
	ensure := func(m map[int]map[int]bool, r int) map[int]bool {
		s, ok := m[r]
		if !ok {
			s = map[int]bool{}
			m[r] = s
		}
		return s
	}

	full := c.fullMesh
	for icell := 0; icell < c.nLocal; icell++ {
		for _, sf := range full.Cells[icell] {
			iface := geo.FaceIndex(sf)
			incident := full.FaceCells[iface]
			if len(incident) < 2 {
				continue
			}
			for _, other := range incident {
				j := int(geo.FaceIndex(other))
				if j == icell {
					continue
				}
				if j >= c.nLocal {
					p := c.genToDomain[j]
					nf := c.faceRemap[iface]
					ensure(sharedFaces, p)[nf] = true
				}
			}
		}
	}

	nodeCells := full.ComputeNodeCells()
	for oldNode, nn := range c.nodeRemap {
		for cellIdx := range nodeCells[oldNode] {
			if cellIdx >= c.nLocal {
				p := c.genToDomain[cellIdx]
				ensure(sharedNodes, p)[nn] = true
			}
		}
	}

	c.sharedFaces = map[int][]int{}
	for p, set := range sharedFaces {
		c.sharedFaces[p] = setToSlice(set)
	}
	c.sharedNodes = map[int][]int{}
	for p, set := range sharedNodes {
		c.sharedNodes[p] = setToSlice(set)
	}
	return nil
}

func setToSlice(s map[int]bool) []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}
