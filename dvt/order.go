// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import "github.com/cpmech/vorodd/geo"

// orderSharedElements implements §4.4: for each peer separately, sort
// shared nodes and faces by an integer lattice key (never raw
// floating-point comparison) so both sides of the peer pair arrive at
// the same sequence with no further communication.
func (d *Driver) orderSharedElements(c *ctx) error {
	quant := geo.LatticeQuantizer{}
	spacing := d.opts.degeneracy()

	for _, p := range c.neighbors {
		nodes := c.sharedNodes[p]
		keys := make([]geo.TaggedKey, len(nodes))
		for i, n := range nodes {
			keys[i] = geo.TaggedKey{
				Key:   quant.Quantize(c.mesh.Node(n), c.low, spacing),
				Index: n,
			}
		}
		geo.SortTaggedKeys(keys)
		ordered := make([]int, len(keys))
		for i, k := range keys {
			ordered[i] = k.Index
		}
		c.sharedNodes[p] = ordered

		faces := c.sharedFaces[p]
		fkeys := make([]geo.TaggedKey, len(faces))
		for i, f := range faces {
			centroid := geo.FaceCentroid(c.mesh, f)
			fkeys[i] = geo.TaggedKey{
				Key:   quant.Quantize(centroid, c.low, spacing),
				Index: f,
			}
		}
		geo.SortTaggedKeys(fkeys)
		fordered := make([]int, len(fkeys))
		for i, k := range fkeys {
			fordered[i] = k.Index
		}
		c.sharedFaces[p] = fordered
	}
	return nil
}
