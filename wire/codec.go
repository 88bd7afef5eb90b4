// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire implements the binary serialization SPEC_FULL.md §6
// requires for hull broadcasts, generator exchange, and shared-node
// coordinate reconciliation: little-endian, u32 length prefixes,
// IEEE-754 f64 reals, recursive length-prefix-then-bytes for
// composite structures. No library in the retrieval pack carries a
// bespoke wire codec of this shape, so this one renders on
// encoding/binary directly (see DESIGN.md).
package wire

import (
	"encoding/binary"
	"math"

	"github.com/cpmech/vorodd/geo"
)

// Writer accumulates a length-prefixed binary payload.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated payload.
func (w *Writer) Bytes() []byte { return w.buf }

// PutU32 appends a little-endian uint32.
func (w *Writer) PutU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// PutF64 appends a little-endian IEEE-754 double.
func (w *Writer) PutF64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf = append(w.buf, b[:]...)
}

// PutF64Slice appends a u32 element count followed by that many f64s.
func (w *Writer) PutF64Slice(v []float64) {
	w.PutU32(uint32(len(v)))
	for _, x := range v {
		w.PutF64(x)
	}
}

// PutI32Slice appends a u32 element count followed by that many
// little-endian int32s.
func (w *Writer) PutI32Slice(v []int32) {
	w.PutU32(uint32(len(v)))
	for _, x := range v {
		w.PutU32(uint32(x))
	}
}

// PutBytes appends a u32 length prefix followed by raw bytes — the
// "length-prefix-then-bytes" convention SPEC_FULL.md §6 calls out for
// heterogeneous containers.
func (w *Writer) PutBytes(v []byte) {
	w.PutU32(uint32(len(v)))
	w.buf = append(w.buf, v...)
}

// Reader walks a buffer built by Writer.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential reads.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Remaining reports how many bytes are left unread.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// GetU32 reads a little-endian uint32.
func (r *Reader) GetU32() uint32 {
	v := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v
}

// GetF64 reads a little-endian IEEE-754 double.
func (r *Reader) GetF64() float64 {
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+8]))
	r.pos += 8
	return v
}

// GetF64Slice reads a u32 count followed by that many f64s.
func (r *Reader) GetF64Slice() []float64 {
	n := int(r.GetU32())
	out := make([]float64, n)
	for i := range out {
		out[i] = r.GetF64()
	}
	return out
}

// GetI32Slice reads a u32 count followed by that many int32s.
func (r *Reader) GetI32Slice() []int32 {
	n := int(r.GetU32())
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(r.GetU32())
	}
	return out
}

// GetBytes reads a u32 length prefix followed by that many raw bytes.
func (r *Reader) GetBytes() []byte {
	n := int(r.GetU32())
	out := append([]byte(nil), r.buf[r.pos:r.pos+n]...)
	r.pos += n
	return out
}

// EncodeGenerators serializes a flat D-strided real point array for
// the generator-exchange payload (tag 2, SPEC_FULL.md §6).
func EncodeGenerators(points []float64) []byte {
	w := NewWriter()
	w.PutF64Slice(points)
	return w.Bytes()
}

// DecodeGenerators reverses EncodeGenerators.
func DecodeGenerators(buf []byte) []float64 {
	return NewReader(buf).GetF64Slice()
}

// EncodeCoords serializes D-per-node real coordinates in sorted order
// for node reconciliation (tag 10).
func EncodeCoords(coords []float64) []byte {
	w := NewWriter()
	w.PutF64Slice(coords)
	return w.Bytes()
}

// DecodeCoords reverses EncodeCoords.
func DecodeCoords(buf []byte) []float64 {
	return NewReader(buf).GetF64Slice()
}

// EncodePLC serializes a geo.PLC (hull broadcast payload, and PLC
// bound input) recursively: point count + points, then facet list,
// then hole list. Holes is one level deeper than Facets (a list of
// loops/polyhedra, each itself a list of facets), so it gets its own
// length-prefix-of-length-prefixes helper.
func EncodePLC(p *geo.PLC) []byte {
	w := NewWriter()
	w.PutU32(uint32(p.Dim))
	w.PutF64Slice(p.Points)
	putIndexLists(w, p.Facets)
	w.PutU32(uint32(len(p.Holes)))
	for _, h := range p.Holes {
		putIndexLists(w, h)
	}
	return w.Bytes()
}

// DecodePLC reverses EncodePLC.
func DecodePLC(buf []byte) *geo.PLC {
	r := NewReader(buf)
	dim := int(r.GetU32())
	pts := r.GetF64Slice()
	facets := getIndexLists(r)
	nh := int(r.GetU32())
	holes := make([][][]int, nh)
	for i := range holes {
		holes[i] = getIndexLists(r)
	}
	return &geo.PLC{Dim: dim, Points: pts, Facets: facets, Holes: holes}
}

func putIndexLists(w *Writer, lists [][]int) {
	w.PutU32(uint32(len(lists)))
	for _, l := range lists {
		w.PutI32Slice(int32Slice(l))
	}
}

func getIndexLists(r *Reader) [][]int {
	n := int(r.GetU32())
	out := make([][]int, n)
	for i := range out {
		out[i] = intSlice(r.GetI32Slice())
	}
	return out
}

func int32Slice(v []int) []int32 {
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = int32(x)
	}
	return out
}

func intSlice(v []int32) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}
