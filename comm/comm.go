// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comm is the SPMD message-passing surface the distributed
// tessellator (package dvt) is built on: one OS process per rank,
// collective broadcast/allreduce/barrier, and point-to-point tagged
// send/recv (SPEC_FULL.md §7). It follows the same "thin wrapper
// around gosl/mpi, exposed as package-level/interface functions"
// convention gofem's own fem.Start/fem.Stop use, extended with the
// tagged, non-blocking-send primitives this spec needs that gofem's
// FEM solver never exercised directly (see DESIGN.md).
package comm

import "github.com/cpmech/gosl/mpi"

// Communicator is the message-passing surface dvt depends on. The
// production implementation (MPIComm) wraps gosl/mpi; LocalComm (in
// this package, see local.go) is an in-process fake used by tests to
// exercise the multi-rank protocol deterministically without actually
// spawning MPI ranks.
type Communicator interface {
	Rank() int
	Size() int

	// Barrier is a global rendezvous point (SPEC_FULL.md §7). Nothing
	// in package dvt calls it.
	Barrier()

	// Bcast broadcasts buf from root to every rank (including root,
	// which must pass the buffer it is sending) and returns the
	// received bytes on every rank.
	Bcast(buf []byte, root int) []byte

	// AllReduceMin/AllReduceMax reduce a single scalar across all ranks.
	AllReduceMin(v float64) float64
	AllReduceMax(v float64) float64

	// ISend posts a non-blocking send and returns immediately; the
	// caller must not reuse buf until Request.Wait returns.
	ISend(buf []byte, dest, tag int) *Request

	// Recv blocks until n bytes have arrived from src on tag.
	Recv(src, tag, n int) []byte
}

// IsOn reports whether the process is running under MPI at all
// (mirrors gosl/mpi.IsOn).
func IsOn() bool { return mpi.IsOn() }

// Start initializes the MPI runtime (mirrors gosl/mpi.Start / fem.Start).
func Start() { mpi.Start(false) }

// Stop tears down the MPI runtime (mirrors gosl/mpi.Stop / fem.End).
func Stop() { mpi.Stop(false) }
