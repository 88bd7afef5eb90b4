// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"testing"

	"github.com/cpmech/gosl/utl"
)

func Test_hull01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("hull01: 2D gift-wrap hull of a unit square with an interior point")

	huller := GiftWrapHuller{}
	pts := []float64{0, 0, 2, 0, 2, 2, 0, 2, 1, 1}
	h, err := huller.ConvexHull(pts, 2)
	if err != nil {
		tst.Errorf("ConvexHull failed: %v", err)
	}
	if HullDimension(h) != 2 {
		tst.Errorf("expected full-dimensional hull, got dimension %d", HullDimension(h))
	}
	if h.NumPoints() != 4 {
		tst.Errorf("expected the interior point to be excluded from the hull: got %d hull points, want 4", h.NumPoints())
	}
}

func Test_hull02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("hull02: collinear 2D input is reported as dimension 1")

	huller := GiftWrapHuller{}
	pts := []float64{0, 0, 1, 0, 2, 0, 3, 0}
	h, err := huller.ConvexHull(pts, 2)
	if err != nil {
		tst.Errorf("ConvexHull failed: %v", err)
	}
	if HullDimension(h) >= 2 {
		tst.Errorf("collinear input must report dimension < 2, got %d", HullDimension(h))
	}
}

func Test_hull03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("hull03: disjoint squares do not intersect, overlapping ones do")

	a := PLC{Dim: 2, Points: []float64{0, 0, 1, 0, 1, 1, 0, 1}, Facets: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}}
	b := PLC{Dim: 2, Points: []float64{5, 5, 6, 5, 6, 6, 5, 6}, Facets: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}}
	if ConvexIntersects(a, b) {
		tst.Errorf("disjoint squares must not intersect")
	}

	c := PLC{Dim: 2, Points: []float64{0.5, 0.5, 1.5, 0.5, 1.5, 1.5, 0.5, 1.5}, Facets: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}}
	if !ConvexIntersects(a, c) {
		tst.Errorf("overlapping squares must intersect")
	}
}

func Test_hull04(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("hull04: ConvexWithin accepts interior points and rejects exterior ones")

	square := PLC{Dim: 2, Points: []float64{0, 0, 2, 0, 2, 2, 0, 2}, Facets: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}}
	inside := []float64{1, 1, 0.5, 0.5}
	if !ConvexWithin(inside, 2, square) {
		tst.Errorf("points strictly inside the square must pass ConvexWithin")
	}
	outside := []float64{1, 1, 5, 5}
	if ConvexWithin(outside, 2, square) {
		tst.Errorf("a point outside the square must fail ConvexWithin")
	}
}

func Test_hull05(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("hull05: 3D gift-wrap hull of a cube with an interior point")

	huller := GiftWrapHuller{}
	pts := []float64{
		0, 0, 0, 2, 0, 0, 2, 2, 0, 0, 2, 0,
		0, 0, 2, 2, 0, 2, 2, 2, 2, 0, 2, 2,
		1, 1, 1,
	}
	h, err := huller.ConvexHull(pts, 3)
	if err != nil {
		tst.Errorf("ConvexHull failed: %v", err)
	}
	if HullDimension(h) != 3 {
		tst.Errorf("expected full-dimensional hull, got dimension %d", HullDimension(h))
	}
	if len(h.Facets) == 0 {
		tst.Errorf("expected a non-empty facet list for a full-dimensional cube hull")
	}
}
