// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import "github.com/cpmech/vorodd/wire"

const (
	tagNodeCountDebug = 9
	tagNodeCoords     = 10
)

// buildOwnerMap implements §4.5 step 1: every own node starts owned by
// self; for every peer p and every node shared with p, the owner is
// lowered to min(owner, p).
func (d *Driver) buildOwnerMap(c *ctx) {
	owner := make([]int, c.mesh.NumNodes())
	for i := range owner {
		owner[i] = c.rank
	}
	for _, p := range c.neighbors {
		for _, n := range c.sharedNodes[p] {
			if p < owner[n] {
				owner[n] = p
			}
		}
	}
	c.ownerMap = owner
}

// reconcileCoordinates implements §4.5 steps 2-4: split each peer's
// shared-node list into the subset this rank owns (sent) and the
// subset the peer owns (received, overwriting local coordinates).
// Nodes owned by a third rank are skipped here — they travel through
// that rank's own peer exchange instead.
func (d *Driver) reconcileCoordinates(c *ctx) error {
	d.buildOwnerMap(c)

	type pending struct {
		peer  int
		nodes []int
	}
	var sendReqs []*sentRequest
	var recvPlan []pending

	for _, p := range c.neighbors {
		var sendNodes, recvNodes []int
		for _, n := range c.sharedNodes[p] {
			switch c.ownerMap[n] {
			case c.rank:
				sendNodes = append(sendNodes, n)
			case p:
				recvNodes = append(recvNodes, n)
			}
		}

		if len(sendNodes) > 0 {
			coords := make([]float64, 0, len(sendNodes)*c.dim)
			for _, n := range sendNodes {
				coords = append(coords, c.mesh.Node(n)...)
			}
			payload := wire.EncodeCoords(coords)
			sendReqs = append(sendReqs, &sentRequest{
				buf: payload,
				req: d.opts.Communicator.ISend(payload, p, tagNodeCoords),
			})
		}
		if err := debugSendCount(d, p, len(sendNodes)); err != nil {
			return err
		}
		recvPlan = append(recvPlan, pending{peer: p, nodes: recvNodes})
	}

	for _, pl := range recvPlan {
		if len(pl.nodes) == 0 {
			if err := debugRecvCount(d, pl.peer, 0); err != nil {
				return err
			}
			continue
		}
		if err := debugRecvCount(d, pl.peer, len(pl.nodes)); err != nil {
			return err
		}
		n := 4 + len(pl.nodes)*c.dim*8
		raw := d.opts.Communicator.Recv(pl.peer, tagNodeCoords, n)
		coords := wire.DecodeCoords(raw)
		for i, node := range pl.nodes {
			c.mesh.SetNode(node, coords[i*c.dim:i*c.dim+c.dim])
		}
	}

	for _, sr := range sendReqs {
		if err := sr.req.Wait(); err != nil {
			return ErrCommunication("node coordinate send: %v", err)
		}
	}
	return nil
}

// debugSendCount/debugRecvCount post the tag-9 debug element count
// exchange; the dvtdebug build (verify_debug.go) also asserts it
// matches the locally computed expectation. The default build
// (verify_release.go) is a no-op, matching "in release builds it is
// silent".

