// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import "sort"

// pruneEmptyNeighbors implements §4.6: after coordinate reconciliation,
// any neighbor with zero shared nodes and zero shared faces is removed
// from neighborDomains and its parallel arrays.
func (d *Driver) pruneEmptyNeighbors(c *ctx) error {
	var kept []int
	for _, p := range c.neighbors {
		if len(c.sharedNodes[p]) == 0 && len(c.sharedFaces[p]) == 0 {
			delete(c.sharedNodes, p)
			delete(c.sharedFaces, p)
			continue
		}
		kept = append(kept, p)
	}
	sort.Ints(kept)
	c.neighbors = kept
	return nil
}
