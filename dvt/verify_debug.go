// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build dvtdebug

package dvt

import (
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/vorodd/wire"
)

// checkSymmetryIfDebug implements §4.1 step 5 under the dvtdebug
// build: every rank broadcasts its neighbor-set size and list, in
// strict rank order, so every rank ends up with the same `all` table
// and independently derives the same asymmetry verdict from it —
// no further communication is needed to agree on whether to panic.
// Panicking together (PanicOrNot, mirroring fem/dyncoefs.go's
// collectively-agreed invariant checks) beats returning an error here:
// an asymmetric neighbor set means the protocol itself is broken, not
// a per-rank condition one peer could route around.
func checkSymmetryIfDebug(d *Driver, c *ctx) error {
	P := c.nproc
	all := make([][]int, P)
	for r := 0; r < P; r++ {
		var payload []byte
		if r == c.rank {
			w := wire.NewWriter()
			w.PutI32Slice(int32SliceOf(c.neighbors))
			payload = w.Bytes()
		}
		recv := d.opts.Communicator.Bcast(payload, r)
		all[r] = intSliceOf(wire.NewReader(recv).GetI32Slice())
	}
	violated := false
	msg := "neighbor set asymmetry"
	for r := 0; r < P; r++ {
		for _, s := range all[r] {
			if !containsInt(all[s], r) {
				violated = true
				msg = utl.Sf("dvt: consistency violation: neighbor set asymmetry: rank %d lists %d but not vice versa", r, s)
			}
		}
	}
	PanicOrNot(d.opts.Communicator, violated, msg)
	return nil
}

const tagConsistencyDebug = 99

// verifyConsistency is the post-conditions verifier (global step 9):
// it exchanges each peer's own shared-node/shared-face counts and
// checks the shared-count law (testable property 4) directly, beyond
// the neighbor-set symmetry already checked in checkSymmetryIfDebug.
func (d *Driver) verifyConsistency(c *ctx) error {
	var reqs []*sentRequest
	for _, p := range c.neighbors {
		w := wire.NewWriter()
		w.PutU32(uint32(len(c.sharedNodes[p])))
		w.PutU32(uint32(len(c.sharedFaces[p])))
		reqs = append(reqs, &sentRequest{
			buf: w.Bytes(),
			req: d.opts.Communicator.ISend(w.Bytes(), p, tagConsistencyDebug),
		})
	}
	for _, p := range c.neighbors {
		raw := d.opts.Communicator.Recv(p, tagConsistencyDebug, 8)
		r := wire.NewReader(raw)
		otherNodes := int(r.GetU32())
		otherFaces := int(r.GetU32())
		if otherNodes != len(c.sharedNodes[p]) {
			return ErrConsistencyViolation("shared-node count with rank %d: self has %d, peer has %d", p, len(c.sharedNodes[p]), otherNodes)
		}
		if otherFaces != len(c.sharedFaces[p]) {
			return ErrConsistencyViolation("shared-face count with rank %d: self has %d, peer has %d", p, len(c.sharedFaces[p]), otherFaces)
		}
	}
	for _, r := range reqs {
		if err := r.req.Wait(); err != nil {
			return ErrCommunication("consistency check send: %v", err)
		}
	}
	return nil
}

func int32SliceOf(v []int) []int32 {
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = int32(x)
	}
	return out
}

func intSliceOf(v []int32) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func debugSendCount(d *Driver, peer, n int) error {
	w := wire.NewWriter()
	w.PutU32(uint32(n))
	req := d.opts.Communicator.ISend(w.Bytes(), peer, tagNodeCountDebug)
	return req.Wait()
}

func debugRecvCount(d *Driver, peer, n int) error {
	raw := d.opts.Communicator.Recv(peer, tagNodeCountDebug, 4)
	got := int(wire.NewReader(raw).GetU32())
	if got != n {
		return ErrConsistencyViolation("shared-node count mismatch with rank %d: expected %d, got %d", peer, n, got)
	}
	return nil
}
