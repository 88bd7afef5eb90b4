// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dvt is the distributed Voronoi tessellation driver: ghost
// generator exchange, neighbor discovery, local over-tessellation,
// shared-element identification, deterministic ordering, and
// coordinate reconciliation across ranks. It consumes the black-box
// collaborators in package geo (serial tessellator, convex hull,
// lattice quantizer) and the message-passing surface in package comm;
// it never constructs either on its own.
package dvt

import (
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/vorodd/comm"
)

// Start and End bracket a run the way gofem's fem.Start/fem.End do.
// Rank/process-count bookkeeping does NOT live here as process-global
// state: a single process can host more than one simulated rank in
// tests (comm.LocalWorld), so every value that varies by rank is
// carried on the per-call ctx instead, derived from the Communicator
// each Driver already holds as an explicit field. Start/End are kept
// only as the symmetric lifecycle hook gofem's callers expect; today
// neither has anything process-wide left to record.
func Start(c comm.Communicator, verbose bool) {}

func End() {}

// logf prints a rank-tagged progress line when verbose is true and
// rank is the root (0), mirroring fem's root-only console chatter.
func logf(rank int, verbose bool, format string, prm ...interface{}) {
	if verbose && rank == 0 {
		utl.Pforan("[rank %d] "+format, append([]interface{}{rank}, prm...)...)
	}
}
