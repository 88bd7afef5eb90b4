// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"fmt"
	"math"
	"sort"
)

// BruteTessellator is a reference SerialTessellator good enough to
// drive dvt's own tests deterministically. It is a half-space
// vertex-enumeration kernel (O(n^2) candidate vertices per cell in
// 2D, O(n^3) in 3D) — adequate for the small generator counts used in
// the test suite, not a substitute for the production Delaunay/Voronoi
// kernel this module treats as an external collaborator.
type BruteTessellator struct {
	dim        int
	degeneracy float64
}

// NewBruteTessellator returns a reference kernel for the given dimension (2 or 3).
func NewBruteTessellator(dim int) *BruteTessellator {
	return &BruteTessellator{dim: dim, degeneracy: 1.0e-9}
}

// Dim implements SerialTessellator.
func (o *BruteTessellator) Dim() int { return o.dim }

// Degeneracy implements SerialTessellator.
func (o *BruteTessellator) Degeneracy() float64 { return o.degeneracy }

// halfspace represents the inequality normal·x <= offset.
type halfspace struct {
	normal   []float64
	offset   float64
	neighbor int // index of the generator this bisector separates from (-1 for a boundary constraint)
	boundary bool
	infinite bool // synthetic "inf sphere" boundary (unbounded mode only)
}

func bisector(pOwn, pOther []float64, dim, neighbor int) halfspace {
	n := make([]float64, dim)
	var d float64
	for j := 0; j < dim; j++ {
		n[j] = pOther[j] - pOwn[j]
		d += n[j] * (pOwn[j] + pOther[j]) / 2.0
	}
	return halfspace{normal: n, offset: d, neighbor: neighbor}
}

func boxConstraints(low, high []float64, dim int) []halfspace {
	var out []halfspace
	for j := 0; j < dim; j++ {
		nplus := make([]float64, dim)
		nplus[j] = 1
		out = append(out, halfspace{normal: nplus, offset: high[j], neighbor: -1, boundary: true})
		nminus := make([]float64, dim)
		nminus[j] = -1
		out = append(out, halfspace{normal: nminus, offset: -low[j], neighbor: -1, boundary: true})
	}
	return out
}

// Tessellate implements SerialTessellator (unbounded mode). A
// synthetic bounding box, padded by 1000x the data span on every side
// of the data's own bounding box, is used to close every
// cell; vertices/faces lying on that synthetic boundary are reported
// as inf-nodes/inf-faces (SPEC_FULL.md glossary).
func (o *BruteTessellator) Tessellate(points []float64) (*Tessellation, error) {
	n := len(points) / o.dim
	if n == 0 {
		return nil, ErrInvalidInput("empty point set")
	}
	low, high := ComputeBoundingBox(points, o.dim)
	span := 0.0
	for j := 0; j < o.dim; j++ {
		if high[j]-low[j] > span {
			span = high[j] - low[j]
		}
	}
	if span == 0 {
		span = 1
	}
	pad := span * 1000
	for j := 0; j < o.dim; j++ {
		low[j] -= pad
		high[j] += pad
	}
	cs := boxConstraints(low, high, o.dim)
	for i := range cs {
		cs[i].infinite = true
	}
	return o.tessellate(points, cs)
}

// TessellateBox implements SerialTessellator.
func (o *BruteTessellator) TessellateBox(points, low, high []float64) (*Tessellation, error) {
	if len(points)/o.dim == 0 {
		return nil, ErrInvalidInput("empty point set")
	}
	return o.tessellate(points, boxConstraints(low, high, o.dim))
}

// TessellatePLC implements SerialTessellator for a convex PLC without
// holes (a rectangle in 2D, a convex polyhedron in 3D): holes and
// non-convex boundaries are outside this reference kernel's scope.
func (o *BruteTessellator) TessellatePLC(points []float64, plcPoints []float64, plc *PLC) (*Tessellation, error) {
	if len(points)/o.dim == 0 {
		return nil, ErrInvalidInput("empty point set")
	}
	cs, err := plcConstraints(plcPoints, plc)
	if err != nil {
		return nil, err
	}
	return o.tessellate(points, cs)
}

// plcConstraints turns a convex PLC's facets into inward half-spaces.
func plcConstraints(plcPoints []float64, plc *PLC) ([]halfspace, error) {
	dim := plc.Dim
	// centroid of the PLC's own points, used to orient facets inward.
	n := plc.NumPoints()
	c := make([]float64, dim)
	for i := 0; i < n; i++ {
		p := plcPoints[dim*i : dim*i+dim]
		for j := 0; j < dim; j++ {
			c[j] += p[j]
		}
	}
	for j := range c {
		c[j] /= float64(n)
	}
	var out []halfspace
	for _, f := range plc.Facets {
		if len(f) < dim {
			continue
		}
		var nrm []float64
		var origin []float64
		switch dim {
		case 2:
			p0 := plcPoints[dim*f[0] : dim*f[0]+dim]
			p1 := plcPoints[dim*f[1] : dim*f[1]+dim]
			nrm = []float64{-(p1[1] - p0[1]), p1[0] - p0[0]}
			origin = p0
		case 3:
			p0 := plcPoints[dim*f[0] : dim*f[0]+dim]
			p1 := plcPoints[dim*f[1] : dim*f[1]+dim]
			p2 := plcPoints[dim*f[2] : dim*f[2]+dim]
			nrm = cross3(sub3(p1, p0), sub3(p2, p0))
			origin = p0
		default:
			return nil, ErrInvalidInput("unsupported dimension %d", dim)
		}
		var dOut float64
		for j := range nrm {
			dOut += nrm[j] * (c[j] - origin[j])
		}
		if dOut > 0 {
			for j := range nrm {
				nrm[j] = -nrm[j]
			}
		}
		var offset float64
		for j := range nrm {
			offset += nrm[j] * origin[j]
		}
		out = append(out, halfspace{normal: nrm, offset: offset, neighbor: -1, boundary: true})
	}
	return out, nil
}

type vertexRec struct {
	point  []float64
	active []int // indices into the per-cell constraint list
}

func dedupeVertex(verts []vertexRec, p []float64, eps float64, active []int) []vertexRec {
	for i := range verts {
		d := 0.0
		for j := range p {
			diff := verts[i].point[j] - p[j]
			d += diff * diff
		}
		if math.Sqrt(d) < eps {
			for _, a := range active {
				found := false
				for _, b := range verts[i].active {
					if a == b {
						found = true
						break
					}
				}
				if !found {
					verts[i].active = append(verts[i].active, a)
				}
			}
			return verts
		}
	}
	return append(verts, vertexRec{point: append([]float64{}, p...), active: append([]int{}, active...)})
}

// solve2 solves [[a00,a01],[a10,a11]] x = [b0,b1]; returns ok=false if singular.
func solve2(a00, a01, a10, a11, b0, b1 float64) (x0, x1 float64, ok bool) {
	det := a00*a11 - a01*a10
	if math.Abs(det) < 1e-13 {
		return 0, 0, false
	}
	x0 = (b0*a11 - a01*b1) / det
	x1 = (a00*b1 - b0*a10) / det
	return x0, x1, true
}

// solve3 solves a 3x3 linear system via Cramer's rule.
func solve3(a [3][3]float64, b [3]float64) (x [3]float64, ok bool) {
	det := det3(a)
	if math.Abs(det) < 1e-12 {
		return x, false
	}
	for col := 0; col < 3; col++ {
		m := a
		for row := 0; row < 3; row++ {
			m[row][col] = b[row]
		}
		x[col] = det3(m) / det
	}
	return x, true
}

func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// vertexEnumerate finds the vertices of the bounded polytope defined
// by cs (the intersection of all half-spaces), tagging each vertex
// with the indices of the constraints it lies on.
func vertexEnumerate(dim int, cs []halfspace, eps float64) ([]vertexRec, error) {
	var verts []vertexRec
	satisfies := func(p []float64, skip ...int) bool {
		for k, h := range cs {
			s := false
			for _, sk := range skip {
				if sk == k {
					s = true
					break
				}
			}
			if s {
				continue
			}
			var d float64
			for j := range p {
				d += h.normal[j] * p[j]
			}
			if d > h.offset+1e-7 {
				return false
			}
		}
		return true
	}
	switch dim {
	case 2:
		for i := 0; i < len(cs); i++ {
			for j := i + 1; j < len(cs); j++ {
				x0, x1, ok := solve2(cs[i].normal[0], cs[i].normal[1], cs[j].normal[0], cs[j].normal[1], cs[i].offset, cs[j].offset)
				if !ok {
					continue
				}
				p := []float64{x0, x1}
				if satisfies(p, i, j) {
					verts = dedupeVertex(verts, p, eps, []int{i, j})
				}
			}
		}
	case 3:
		for i := 0; i < len(cs); i++ {
			for j := i + 1; j < len(cs); j++ {
				for k := j + 1; k < len(cs); k++ {
					a := [3][3]float64{
						{cs[i].normal[0], cs[i].normal[1], cs[i].normal[2]},
						{cs[j].normal[0], cs[j].normal[1], cs[j].normal[2]},
						{cs[k].normal[0], cs[k].normal[1], cs[k].normal[2]},
					}
					b := [3]float64{cs[i].offset, cs[j].offset, cs[k].offset}
					x, ok := solve3(a, b)
					if !ok {
						continue
					}
					p := x[:]
					if satisfies(p, i, j, k) {
						verts = dedupeVertex(verts, p, eps, []int{i, j, k})
					}
				}
			}
		}
	default:
		return nil, ErrInvalidInput("unsupported dimension %d", dim)
	}
	if len(verts) < dim+1 {
		return nil, fmt.Errorf("degenerate cell: only %d vertices found", len(verts))
	}
	return verts, nil
}

// orderedFaceLoop orders the vertices incident on a 2D face (an edge,
// i.e. exactly two points) or a 3D polygon face (>=3 points, ordered
// by angle around the face's own in-plane basis).
func orderedFaceLoop(dim int, nrm []float64, pts [][]float64, idx []int) []int {
	if len(idx) < 2 {
		return nil
	}
	if dim == 2 {
		return idx
	}
	// build an orthonormal in-plane basis (u, v) for the 3D face.
	c := make([]float64, 3)
	for _, i := range idx {
		for j := 0; j < 3; j++ {
			c[j] += pts[i][j]
		}
	}
	for j := range c {
		c[j] /= float64(len(idx))
	}
	u := sub3(pts[idx[0]], c)
	un := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
	if un < 1e-12 {
		return idx
	}
	for j := range u {
		u[j] /= un
	}
	v := cross3(nrm, u)
	vn := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if vn < 1e-12 {
		return idx
	}
	for j := range v {
		v[j] /= vn
	}
	type ang struct {
		i int
		a float64
	}
	angles := make([]ang, len(idx))
	for n, i := range idx {
		d := sub3(pts[i], c)
		x := d[0]*u[0] + d[1]*u[1] + d[2]*u[2]
		y := d[0]*v[0] + d[1]*v[1] + d[2]*v[2]
		angles[n] = ang{i, math.Atan2(y, x)}
	}
	sort.Slice(angles, func(a, b int) bool { return angles[a].a < angles[b].a })
	out := make([]int, len(idx))
	for n, a := range angles {
		out[n] = a.i
	}
	return out
}

// tessellate is the shared implementation behind Tessellate/TessellateBox/TessellatePLC.
func (o *BruteTessellator) tessellate(points []float64, boundary []halfspace) (*Tessellation, error) {
	dim := o.dim
	n := len(points) / dim

	// global (deduped) node table, shared across all cells.
	var nodes []float64
	nodeKey := func(p []float64) int {
		for i := 0; i*dim < len(nodes); i++ {
			d := 0.0
			for j := 0; j < dim; j++ {
				diff := nodes[dim*i+j] - p[j]
				d += diff * diff
			}
			if math.Sqrt(d) < o.degeneracy*10 {
				return i
			}
		}
		nodes = append(nodes, p...)
		return len(nodes)/dim - 1
	}

	faceIndex := map[string]int{}
	var faces [][]int
	var faceCells [][]int32
	var faceInf []bool

	mesh := &Tessellation{Dim: dim}
	cells := make([][]int32, n)

	for i := 0; i < n; i++ {
		pi := points[dim*i : dim*i+dim]
		cs := append([]halfspace{}, boundary...)
		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			pk := points[dim*k : dim*k+dim]
			cs = append(cs, bisector(pi, pk, dim, k))
		}
		verts, err := vertexEnumerate(dim, cs, o.degeneracy*10)
		if err != nil {
			return nil, ErrSerialTessellator(fmt.Errorf("cell %d: %w", i, err))
		}

		globalIdx := make([]int, len(verts))
		for vi, v := range verts {
			globalIdx[vi] = nodeKey(v.point)
		}

		// group vertices per constraint -> one face per constraint that
		// actually bounds this cell.
		byConstraint := map[int][]int{} // constraint index -> local vertex indices
		for vi, v := range verts {
			for _, c := range v.active {
				byConstraint[c] = append(byConstraint[c], vi)
			}
		}
		var cellFaces []int32
		for c, localIdx := range byConstraint {
			if len(localIdx) < dim {
				continue
			}
			h := cs[c]
			gidx := make([]int, len(localIdx))
			pts := make([][]float64, 0)
			ptsByGlobal := map[int][]float64{}
			for li, idx := range localIdx {
				gidx[li] = globalIdx[idx]
				ptsByGlobal[globalIdx[idx]] = verts[idx].point
			}
			// unique global ids only (two local vertices can map to the same global node)
			seen := map[int]bool{}
			var uniq []int
			for _, g := range gidx {
				if !seen[g] {
					seen[g] = true
					uniq = append(uniq, g)
				}
			}
			if len(uniq) < dim {
				continue
			}
			for _, g := range uniq {
				pts = append(pts, ptsByGlobal[g])
			}
			loop := orderedFaceLoop(dim, h.normal, append([][]float64{}, pts...), rangeInts(len(uniq)))
			faceNodes := make([]int, len(loop))
			for li, l := range loop {
				faceNodes[li] = uniq[l]
			}

			key := faceKeyOf(faceNodes)
			fi, exists := faceIndex[key]
			if !exists {
				fi = len(faces)
				faceIndex[key] = fi
				faces = append(faces, faceNodes)
				faceCells = append(faceCells, nil)
				faceInf = append(faceInf, h.infinite)
			}
			// orient this cell's reference to the face: positive if this
			// cell is the first one to register it.
			signed := int32(fi)
			if len(faceCells[fi]) > 0 {
				signed = ^int32(fi)
			}
			faceCells[fi] = append(faceCells[fi], int32(i))
			cellFaces = append(cellFaces, signed)
		}
		cells[i] = cellFaces
	}

	mesh.Nodes = nodes
	mesh.Faces = faces
	mesh.FaceCells = faceCells
	mesh.Cells = cells
	mesh.InfFaces = faceInf
	mesh.InfNodes = make([]bool, len(nodes)/dim)
	for fi, inf := range faceInf {
		if inf {
			for _, nd := range faces[fi] {
				mesh.InfNodes[nd] = true
			}
		}
	}
	return mesh, nil
}

func rangeInts(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func faceKeyOf(nodes []int) string {
	s := append([]int{}, nodes...)
	sort.Ints(s)
	return fmt.Sprint(s)
}
