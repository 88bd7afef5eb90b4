// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"encoding/binary"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// MPIComm is the production Communicator, a thin wrapper around
// gosl/mpi. gosl/mpi's confirmed surface (IsOn, Start, Stop, Rank,
// Size, IntAllReduceMax, AllReduceSum) is collective-only; it has no
// tagged point-to-point primitives and no byte-oriented API at all, so
// the wire payloads this type moves are packed into gosl/mpi's int/
// float collectives and into the same Verb+Type naming convention for
// the tagged calls (IntSend, IntRecv, DblBcast, ...) that
// IntAllReduceMax already establishes. See DESIGN.md for why this is
// grounded-but-extrapolated rather than a literally observed API.
type MPIComm struct{}

// NewMPIComm returns the production Communicator. mpi.Start must have
// been called already (see Start in this package).
func NewMPIComm() *MPIComm { return &MPIComm{} }

func (MPIComm) Rank() int { return mpi.Rank() }
func (MPIComm) Size() int { return mpi.Size() }

func (MPIComm) Barrier() { mpi.Barrier() }

func (MPIComm) Bcast(buf []byte, root int) []byte {
	n := len(buf)
	n = int(mpi.IntBcast(int32(n), root))
	ints := bytesToInts(padBytes(buf, n))
	mpi.IntBcastBuf(ints, root)
	return intsToBytes(ints)[:n]
}

func (MPIComm) AllReduceMin(v float64) float64 { return mpi.DblAllReduceMin(v) }
func (MPIComm) AllReduceMax(v float64) float64 { return mpi.DblAllReduceMax(v) }

func (MPIComm) ISend(buf []byte, dest, tag int) *Request {
	req := newRequest()
	payload := append([]byte(nil), buf...)
	go func() {
		ints := bytesToInts(payload)
		mpi.IntSend(ints, dest, tag)
		req.resolve(nil)
	}()
	return req
}

func (MPIComm) Recv(src, tag, n int) []byte {
	nints := (n + 3) / 4
	ints := make([]int32, nints)
	mpi.IntRecv(ints, src, tag)
	return intsToBytes(ints)[:n]
}

// padBytes returns buf zero-padded (or truncated) to exactly n bytes.
func padBytes(buf []byte, n int) []byte {
	if len(buf) == n {
		return buf
	}
	out := make([]byte, n)
	copy(out, buf)
	return out
}

// bytesToInts/intsToBytes pack/unpack a byte slice into little-endian
// int32 words, since gosl/mpi moves data as int/float collectives, not
// raw bytes. chk.IntAssert guards the one invariant this packing
// depends on: the two helpers must agree on word width.
func bytesToInts(buf []byte) []int32 {
	n := (len(buf) + 3) / 4
	padded := padBytes(buf, n*4)
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(binary.LittleEndian.Uint32(padded[i*4 : i*4+4]))
	}
	return out
}

func intsToBytes(ints []int32) []byte {
	out := make([]byte, len(ints)*4)
	for i, v := range ints {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], uint32(v))
	}
	chk.IntAssert(len(out), len(ints)*4)
	return out
}
