// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import "github.com/cpmech/vorodd/geo"

// overTessellateAndTrim implements §4.2: run the serial tessellator
// over generators_extended, then discard every cell beyond index
// N_local (deleteCells), renumbering faces and nodes and compacting
// face->cells incidence. Cell i of the compacted mesh corresponds 1:1
// to own generator i, per "local indices ascend in the order the
// owning process supplied its generators".
func (d *Driver) overTessellateAndTrim(c *ctx) error {
	full, err := d.tessellateMode(c, c.genExtended)
	if err != nil {
		return err
	}
	c.fullMesh = full

	// faces referenced by a kept (own) cell, in first-seen order, for
	// a deterministic (if arbitrary) renumbering.
	faceRemap := map[int]int{}
	var newFaces [][]int
	var newFaceInf []bool
	nodeRemap := map[int]int{}
	var newNodes []float64

	remapNode := func(old int) int {
		if nn, ok := nodeRemap[old]; ok {
			return nn
		}
		nn := len(newNodes) / c.dim
		nodeRemap[old] = nn
		newNodes = append(newNodes, full.Node(old)...)
		return nn
	}

	newCells := make([][]int32, c.nLocal)
	for icell := 0; icell < c.nLocal; icell++ {
		var cellFaces []int32
		for _, sf := range full.Cells[icell] {
			iface := geo.FaceIndex(sf)
			reversed := sf < 0

			nf, exists := faceRemap[iface]
			if !exists {
				nf = len(newFaces)
				faceRemap[iface] = nf
				oldNodes := full.Faces[iface]
				translated := make([]int, len(oldNodes))
				for i, n := range oldNodes {
					translated[i] = remapNode(n)
				}
				newFaces = append(newFaces, translated)
				newFaceInf = append(newFaceInf, full.InfFaces[iface])
			}
			signed := int32(nf)
			if reversed {
				signed = ^signed
			}
			cellFaces = append(cellFaces, signed)
		}
		newCells[icell] = cellFaces
	}

	newFaceCells := make([][]int32, len(newFaces))
	for icell, faces := range newCells {
		for _, sf := range faces {
			nf := geo.FaceIndex(sf)
			newFaceCells[nf] = append(newFaceCells[nf], int32(icell))
		}
	}

	newInfNodes := make([]bool, len(newNodes)/c.dim)
	for nf, inf := range newFaceInf {
		if inf {
			for _, n := range newFaces[nf] {
				newInfNodes[n] = true
			}
		}
	}

	c.mesh = &geo.Tessellation{
		Dim:       c.dim,
		Nodes:     newNodes,
		Faces:     newFaces,
		Cells:     newCells,
		FaceCells: newFaceCells,
		InfNodes:  newInfNodes,
		InfFaces:  newFaceInf,
	}
	c.faceRemap = faceRemap
	c.nodeRemap = nodeRemap
	return nil
}
