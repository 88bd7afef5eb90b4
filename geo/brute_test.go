// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"testing"

	"github.com/cpmech/gosl/utl"
)

func Test_brute01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("brute01: unbounded tessellation of four 2D points closes every cell on the synthetic inf-box")

	bt := NewBruteTessellator(2)
	points := []float64{0, 0, 2, 0, 2, 2, 0, 2}
	mesh, err := bt.Tessellate(points)
	if err != nil {
		tst.Fatalf("Tessellate failed: %v", err)
	}
	if mesh.NumCells() != 4 {
		tst.Fatalf("got %d cells, want 4", mesh.NumCells())
	}
	sawInf := false
	for _, inf := range mesh.InfFaces {
		if inf {
			sawInf = true
		}
	}
	if !sawInf {
		tst.Errorf("expected at least one inf-face closing an unbounded cell")
	}
}

func Test_brute02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("brute02: box-bounded tessellation never reports an inf-face")

	bt := NewBruteTessellator(2)
	points := []float64{2, 2, 8, 2, 8, 8, 2, 8}
	mesh, err := bt.TessellateBox(points, []float64{0, 0}, []float64{10, 10})
	if err != nil {
		tst.Fatalf("TessellateBox failed: %v", err)
	}
	if mesh.NumCells() != 4 {
		tst.Fatalf("got %d cells, want 4", mesh.NumCells())
	}
	for _, inf := range mesh.InfFaces {
		if inf {
			tst.Errorf("a box-bounded tessellation must never report an inf-face")
		}
	}
}

func Test_brute03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("brute03: PLC-bounded tessellation clips to a convex quadrilateral")

	bt := NewBruteTessellator(2)
	plc := &PLC{
		Dim:    2,
		Points: []float64{0, 0, 10, 0, 10, 10, 0, 10},
		Facets: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	}
	points := []float64{3, 3, 7, 7}
	mesh, err := bt.TessellatePLC(points, plc.Points, plc)
	if err != nil {
		tst.Fatalf("TessellatePLC failed: %v", err)
	}
	if mesh.NumCells() != 2 {
		tst.Fatalf("got %d cells, want 2", mesh.NumCells())
	}
}

func Test_brute04(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("brute04: an empty point set is rejected in unbounded and box mode")

	bt := NewBruteTessellator(2)
	if _, err := bt.Tessellate(nil); err == nil {
		tst.Errorf("expected an error for an empty point set in unbounded mode")
	}
	if _, err := bt.TessellateBox(nil, []float64{0, 0}, []float64{1, 1}); err == nil {
		tst.Errorf("expected an error for an empty point set in box mode")
	}
}

func Test_brute05(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("brute05: 3D box tessellation of eight corner points produces eight cells")

	bt := NewBruteTessellator(3)
	points := []float64{
		2, 2, 2, 8, 2, 2, 8, 8, 2, 2, 8, 2,
		2, 2, 8, 8, 2, 8, 8, 8, 8, 2, 8, 8,
	}
	mesh, err := bt.TessellateBox(points, []float64{0, 0, 0}, []float64{10, 10, 10})
	if err != nil {
		tst.Fatalf("TessellateBox failed: %v", err)
	}
	if mesh.NumCells() != 8 {
		tst.Errorf("got %d cells, want 8", mesh.NumCells())
	}
}
