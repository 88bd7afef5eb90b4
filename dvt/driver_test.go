// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dvt

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/vorodd/comm"
	"github.com/cpmech/vorodd/geo"
)

// runMultiRank drives n simulated ranks concurrently over a
// comm.NewLocalWorld(n), one goroutine per rank, the same pattern
// comm/local_test.go uses to exercise LocalWorld's collectives. Every
// collective call inside fn blocks until all n ranks have reached it,
// so fn must not return early on one rank without every other rank
// also reaching its own matching collective calls.
func runMultiRank(n int, fn func(rank int, c comm.Communicator) (*geo.Tessellation, error)) ([]*geo.Tessellation, []error) {
	world := comm.NewLocalWorld(n)
	meshes := make([]*geo.Tessellation, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for r := 0; r < n; r++ {
		go func(r int) {
			defer wg.Done()
			meshes[r], errs[r] = fn(r, world[r])
		}(r)
	}
	wg.Wait()
	return meshes, errs
}

func hasRank(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func rankIndex(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func newTestDriver(tst *testing.T, c comm.Communicator, dim int, buildComm bool) *Driver {
	Start(c, false)
	d, err := NewDriver(Options{
		SerialTessellator:      geo.NewBruteTessellator(dim),
		Communicator:           c,
		BuildCommunicationInfo: buildComm,
	})
	if err != nil {
		tst.Fatalf("NewDriver failed: %v", err)
	}
	return d
}

func Test_driver01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("driver01: single-rank unbounded tessellation produces one cell per generator")

	world := comm.NewLocalWorld(1)
	d := newTestDriver(tst, world[0], 2, true)

	points := []float64{0, 0, 2, 0, 2, 2, 0, 2}
	mesh, err := d.Tessellate(points)
	if err != nil {
		tst.Fatalf("Tessellate failed: %v", err)
	}
	if mesh.NumCells() != 4 {
		tst.Errorf("got %d cells, want 4", mesh.NumCells())
	}
	if len(mesh.NeighborDomains) != 0 {
		tst.Errorf("a single rank must have no neighbors, got %v", mesh.NeighborDomains)
	}
}

func Test_driver02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("driver02: box-bounded and PLC-bounded calls succeed without communication info")

	world := comm.NewLocalWorld(1)
	d := newTestDriver(tst, world[0], 2, false)

	points := []float64{2, 2, 8, 2, 8, 8, 2, 8}
	mesh, err := d.TessellateBox(points, []float64{0, 0}, []float64{10, 10})
	if err != nil {
		tst.Fatalf("TessellateBox failed: %v", err)
	}
	if mesh.NumCells() != 4 {
		tst.Errorf("got %d cells, want 4", mesh.NumCells())
	}
	for _, inf := range mesh.InfFaces {
		if inf {
			tst.Errorf("a box-bounded tessellation must never report an inf-face")
		}
	}

	plc := &geo.PLC{Dim: 2, Points: []float64{0, 0, 10, 0, 10, 10, 0, 10}, Facets: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}}
	mesh2, err := d.TessellatePLC(points, plc.Points, plc)
	if err != nil {
		tst.Fatalf("TessellatePLC failed: %v", err)
	}
	if mesh2.NumCells() != 4 {
		tst.Errorf("got %d cells, want 4", mesh2.NumCells())
	}
}

func Test_driver03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("driver03: an empty global point set is an InvalidInput error")

	world := comm.NewLocalWorld(1)
	d := newTestDriver(tst, world[0], 2, true)

	_, err := d.Tessellate(nil)
	if err == nil {
		tst.Errorf("expected an error for an empty point set, got nil")
	}
}

func Test_driver04(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("driver04: a point array length not a multiple of dim is an InvalidInput error")

	world := comm.NewLocalWorld(1)
	d := newTestDriver(tst, world[0], 2, true)

	_, err := d.Tessellate([]float64{0, 0, 1})
	if err == nil {
		tst.Errorf("expected an error for a misaligned point array, got nil")
	}
}

func Test_driver05(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("driver05: NewDriver rejects missing required options")

	world := comm.NewLocalWorld(1)
	if _, err := NewDriver(Options{Communicator: world[0]}); err == nil {
		tst.Errorf("expected an error for a missing serial tessellator")
	}
	if _, err := NewDriver(Options{SerialTessellator: geo.NewBruteTessellator(2)}); err == nil {
		tst.Errorf("expected an error for a missing communicator")
	}
}

func Test_driver06(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("driver06: single-rank 3D box tessellation wires the reference kernel's cube cells")

	world := comm.NewLocalWorld(1)
	d := newTestDriver(tst, world[0], 3, true)

	points := []float64{
		2, 2, 2, 8, 2, 2, 8, 8, 2, 2, 8, 2,
		2, 2, 8, 8, 2, 8, 8, 8, 8, 2, 8, 8,
	}
	mesh, err := d.TessellateBox(points, []float64{0, 0, 0}, []float64{10, 10, 10})
	if err != nil {
		tst.Fatalf("TessellateBox failed: %v", err)
	}
	if mesh.NumCells() != 8 {
		tst.Errorf("got %d cells, want 8", mesh.NumCells())
	}
	if len(mesh.NeighborDomains) != 0 {
		tst.Errorf("a single rank must have no neighbors, got %v", mesh.NeighborDomains)
	}
}

// twoColumnPoints returns, for a given assignment of a left column
// (x=0) and a right column (x=4) to two ranks, the per-rank local
// generator arrays. Swapping which rank gets which column is what
// Test_driver09 uses to check the rank-permutation invariant.
func twoColumnPoints(leftRank int) [][]float64 {
	left := []float64{0, 0, 0, 4}
	right := []float64{4, 0, 4, 4}
	out := make([][]float64, 2)
	out[leftRank] = left
	out[1-leftRank] = right
	return out
}

// runTwoColumnCase drives the two-rank box-mode split across ranks
// and returns the resulting meshes, fatal-ing the test if either rank
// failed.
func runTwoColumnCase(tst *testing.T, localPoints [][]float64) []*geo.Tessellation {
	low := []float64{-4, -4}
	high := []float64{8, 8}
	meshes, errs := runMultiRank(2, func(r int, c comm.Communicator) (*geo.Tessellation, error) {
		Start(c, false)
		d, err := NewDriver(Options{
			SerialTessellator:      geo.NewBruteTessellator(2),
			Communicator:           c,
			BuildCommunicationInfo: true,
		})
		if err != nil {
			return nil, err
		}
		return d.TessellateBox(localPoints[r], low, high)
	})
	for r, err := range errs {
		if err != nil {
			tst.Fatalf("rank %d: Tessellate failed: %v", r, err)
		}
	}
	return meshes
}

// checkTwoColumnInvariants asserts testable properties 3 (neighbor
// symmetry), 4 (shared-count law) and 5 (coordinate identity) across
// the two ranks, independent of which physical column each rank owns
// — used by both Test_driver07 and the permuted Test_driver09.
func checkTwoColumnInvariants(tst *testing.T, meshes []*geo.Tessellation, leftRank int) {
	rightRank := 1 - leftRank

	for r, mesh := range meshes {
		if mesh.NumCells() != 2 {
			tst.Errorf("rank %d: got %d cells, want 2 (one per local generator)", r, mesh.NumCells())
		}
	}

	// property 3: neighbor discovery is symmetric.
	if !hasRank(meshes[leftRank].NeighborDomains, rightRank) || !hasRank(meshes[rightRank].NeighborDomains, leftRank) {
		tst.Fatalf("neighbor discovery is not symmetric: left=%v right=%v", meshes[leftRank].NeighborDomains, meshes[rightRank].NeighborDomains)
	}

	iLeft := rankIndex(meshes[leftRank].NeighborDomains, rightRank)
	iRight := rankIndex(meshes[rightRank].NeighborDomains, leftRank)

	// property 4: the shared-node/shared-face counts the two sides of
	// a rank pair each record for each other must agree.
	nLeft, nRight := len(meshes[leftRank].SharedNodes[iLeft]), len(meshes[rightRank].SharedNodes[iRight])
	if nLeft != nRight {
		tst.Errorf("shared-node count mismatch: left has %d, right has %d", nLeft, nRight)
	}
	if nLeft == 0 {
		tst.Fatalf("expected at least one shared node between two adjacent box-mode columns, got none")
	}
	fLeft, fRight := len(meshes[leftRank].SharedFaces[iLeft]), len(meshes[rightRank].SharedFaces[iRight])
	if fLeft != fRight {
		tst.Errorf("shared-face count mismatch: left has %d, right has %d", fLeft, fRight)
	}

	// property 5: corresponding shared-node indices (matched by the
	// deterministic per-peer ordering, property 6) hold bit-identical
	// coordinates after reconciliation.
	for k := 0; k < nLeft; k++ {
		pl := meshes[leftRank].Node(meshes[leftRank].SharedNodes[iLeft][k])
		pr := meshes[rightRank].Node(meshes[rightRank].SharedNodes[iRight][k])
		for j := range pl {
			if pl[j] != pr[j] {
				tst.Errorf("shared node %d coordinate %d diverges: left=%v right=%v", k, j, pl, pr)
			}
		}
	}
}

func Test_driver07(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("driver07: two ranks discover each other, agree on shared counts, and reconcile shared-node coordinates bit-for-bit")

	meshes := runTwoColumnCase(tst, twoColumnPoints(0))
	checkTwoColumnInvariants(tst, meshes, 0)
}

func Test_driver08(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("driver08: three-rank topology gives the middle rank two neighbors and the outer ranks one each, symmetrically")

	localPoints := [][]float64{
		{0, 0, 0, 4},
		{4, 0, 4, 4},
		{8, 0, 8, 4},
	}
	low := []float64{-4, -4}
	high := []float64{12, 8}

	meshes, errs := runMultiRank(3, func(r int, c comm.Communicator) (*geo.Tessellation, error) {
		Start(c, false)
		d, err := NewDriver(Options{
			SerialTessellator:      geo.NewBruteTessellator(2),
			Communicator:           c,
			BuildCommunicationInfo: true,
		})
		if err != nil {
			return nil, err
		}
		return d.TessellateBox(localPoints[r], low, high)
	})
	for r, err := range errs {
		if err != nil {
			tst.Fatalf("rank %d: Tessellate failed: %v", r, err)
		}
	}

	if len(meshes[0].NeighborDomains) != 1 || !hasRank(meshes[0].NeighborDomains, 1) {
		tst.Errorf("rank 0 (left column): want neighbors [1], got %v", meshes[0].NeighborDomains)
	}
	if len(meshes[2].NeighborDomains) != 1 || !hasRank(meshes[2].NeighborDomains, 1) {
		tst.Errorf("rank 2 (right column): want neighbors [1], got %v", meshes[2].NeighborDomains)
	}
	if !hasRank(meshes[1].NeighborDomains, 0) || !hasRank(meshes[1].NeighborDomains, 2) {
		tst.Errorf("rank 1 (middle column): want neighbors containing both 0 and 2, got %v", meshes[1].NeighborDomains)
	}

	// property 3 again, pairwise, across every rank pair the union
	// above claims is a neighbor relationship.
	for r := 0; r < 3; r++ {
		for _, p := range meshes[r].NeighborDomains {
			if !hasRank(meshes[p].NeighborDomains, r) {
				tst.Errorf("neighbor discovery is not symmetric: rank %d lists %d but rank %d does not list %d", r, p, p, r)
			}
		}
	}
}

func Test_driver09(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	utl.TTitle("driver09: with the rank-to-column assignment swapped, the two-column invariants (properties 3-5) still hold")

	meshes := runTwoColumnCase(tst, twoColumnPoints(1))
	checkTwoColumnInvariants(tst, meshes, 1)
}
