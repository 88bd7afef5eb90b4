// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"
	"sort"
)

// ConvexHuller is the black-box convex-hull collaborator (SPEC_FULL.md
// §1): given a point cloud it produces the dimension-appropriate
// convex hull expressed as a PLC. dvt only ever calls this once per
// local generator set per tessellate() call.
type ConvexHuller interface {
	ConvexHull(points []float64, dim int) (PLC, error)
}

// GiftWrapHuller is a reference ConvexHuller good enough to drive the
// distributed protocol's tests; it is not a substitute for a robust,
// degeneracy-aware production hull kernel (the original polytope
// library's convexHull_2d/3d.hh, which is outside this module's
// scope).
type GiftWrapHuller struct{}

// ConvexHull implements ConvexHuller.
func (GiftWrapHuller) ConvexHull(points []float64, dim int) (PLC, error) {
	switch dim {
	case 2:
		return convexHull2D(points)
	case 3:
		return convexHull3D(points)
	}
	return PLC{}, ErrInvalidInput("unsupported dimension %d", dim)
}

type pt2 struct {
	x, y float64
	idx  int
}

func cross2(o, a, b pt2) float64 {
	return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
}

// convexHull2D computes the 2D convex hull via Andrew's monotone chain.
// Degenerate (collinear or coincident) inputs yield a hull whose
// facet list traces the extreme points in order, or, when every point
// is collinear, an empty Facets list (HullDimension below reports < 2
// in that case).
func convexHull2D(points []float64) (PLC, error) {
	n := len(points) / 2
	if n == 0 {
		return PLC{}, ErrInvalidInput("empty point set")
	}
	pts := make([]pt2, n)
	for i := 0; i < n; i++ {
		pts[i] = pt2{points[2*i], points[2*i+1], i}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].x != pts[j].x {
			return pts[i].x < pts[j].x
		}
		return pts[i].y < pts[j].y
	})

	build := func(pts []pt2) []pt2 {
		var hull []pt2
		for _, p := range pts {
			for len(hull) >= 2 && cross2(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		return hull
	}
	lower := build(pts)
	upperIn := make([]pt2, len(pts))
	for i, p := range pts {
		upperIn[len(pts)-1-i] = p
	}
	upper := build(upperIn)

	// degenerate (all collinear): lower == upper after stripping endpoints.
	hull := append(lower[:len(lower)-1:len(lower)-1], upper[:len(upper)-1]...)

	out := PLC{Dim: 2}
	if isCollinear(pts) {
		// lower-dimensional hull: every generator is "visible"; all
		// points are reported and the facet list stays empty.
		for _, p := range pts {
			out.Points = append(out.Points, p.x, p.y)
		}
		return out, nil
	}
	for _, p := range hull {
		out.Points = append(out.Points, p.x, p.y)
	}
	nf := len(hull)
	for i := 0; i < nf; i++ {
		out.Facets = append(out.Facets, []int{i, (i + 1) % nf})
	}
	return out, nil
}

func isCollinear(pts []pt2) bool {
	if len(pts) < 3 {
		return true
	}
	for i := 2; i < len(pts); i++ {
		if math.Abs(cross2(pts[0], pts[1], pts[i])) > 1e-12 {
			return false
		}
	}
	return true
}

// convexHull3D computes a 3D convex hull by brute-force enumeration of
// point triples (a triangle is kept when every other point lies on one
// side of its plane), sufficient for the distributed protocol's
// reference tests. Points holds every input point, not only hull
// vertices. Degenerate (coplanar) inputs fall back
// to reporting the raw point set with no facets, which HullDimension
// reports as dimension < 3.
func convexHull3D(points []float64) (PLC, error) {
	n := len(points) / 3
	if n == 0 {
		return PLC{}, ErrInvalidInput("empty point set")
	}
	if n < 4 || coplanar(points, n) {
		out := PLC{Dim: 3, Points: append([]float64{}, points...)}
		return out, nil
	}

	type v3 = [3]float64
	pt := func(i int) v3 { return v3{points[3*i], points[3*i+1], points[3*i+2]} }
	sub := func(a, b v3) v3 { return v3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
	cr := func(a, b v3) v3 {
		return v3{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
	}
	dot := func(a, b v3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

	// centroid, used to orient facets outward.
	var c v3
	for i := 0; i < n; i++ {
		p := pt(i)
		c[0] += p[0]
		c[1] += p[1]
		c[2] += p[2]
	}
	c[0] /= float64(n)
	c[1] /= float64(n)
	c[2] /= float64(n)

	type tri [3]int
	var faces []tri
	seen := map[tri]bool{}
	addFace := func(a, b, cc int) {
		n := cr(sub(pt(b), pt(a)), sub(pt(cc), pt(a)))
		// orient outward from centroid
		if dot(n, sub(pt(a), c)) < 0 {
			a, b = b, a
		}
		key := tri{a, b, cc}
		if !seen[key] {
			seen[key] = true
			faces = append(faces, tri{a, b, cc})
		}
	}

	// brute-force: a triangle (i,j,k) is a hull facet iff all other
	// points lie on one side of its plane.
	const eps = 1e-9
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				nrm := cr(sub(pt(j), pt(i)), sub(pt(k), pt(i)))
				if dot(nrm, nrm) < eps {
					continue // degenerate triangle
				}
				var pos, neg bool
				for m := 0; m < n; m++ {
					if m == i || m == j || m == k {
						continue
					}
					d := dot(nrm, sub(pt(m), pt(i)))
					if d > eps {
						pos = true
					} else if d < -eps {
						neg = true
					}
					if pos && neg {
						break
					}
				}
				if !(pos && neg) {
					addFace(i, j, k)
				}
			}
		}
	}

	out := PLC{Dim: 3, Points: append([]float64{}, points...)}
	for _, f := range faces {
		out.Facets = append(out.Facets, []int{f[0], f[1], f[2]})
	}
	return out, nil
}

func coplanar(points []float64, n int) bool {
	if n < 4 {
		return true
	}
	p0 := [3]float64{points[0], points[1], points[2]}
	p1 := [3]float64{points[3], points[4], points[5]}
	p2 := [3]float64{points[6], points[7], points[8]}
	u := [3]float64{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	v := [3]float64{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	nrm := [3]float64{u[1]*v[2] - u[2]*v[1], u[2]*v[0] - u[0]*v[2], u[0]*v[1] - u[1]*v[0]}
	if nrm[0]*nrm[0]+nrm[1]*nrm[1]+nrm[2]*nrm[2] < 1e-18 {
		return true
	}
	for i := 3; i < n; i++ {
		p := [3]float64{points[3*i], points[3*i+1], points[3*i+2]}
		d := nrm[0]*(p[0]-p0[0]) + nrm[1]*(p[1]-p0[1]) + nrm[2]*(p[2]-p0[2])
		if math.Abs(d) > 1e-9 {
			return false
		}
	}
	return true
}

// HullDimension reports the geometric dimension actually spanned by a
// hull's point set: < Dim for degenerate (e.g. collinear in 2D,
// coplanar in 3D) inputs. Ghost exchange (SPEC_FULL.md §6, step 1)
// treats every local generator as visible whenever this is below Dim.
func HullDimension(h PLC) int {
	if len(h.Facets) > 0 {
		return h.Dim
	}
	n := h.NumPoints()
	switch h.Dim {
	case 2:
		pts := make([]pt2, n)
		for i := 0; i < n; i++ {
			pts[i] = pt2{h.Points[2*i], h.Points[2*i+1], i}
		}
		if n < 3 || isCollinear(pts) {
			return 1
		}
		return 2
	case 3:
		if coplanar(h.Points, n) {
			return 2
		}
		return 3
	}
	return 0
}

// ConvexIntersects reports whether two convex hulls (each a PLC whose
// facets bound a convex region) overlap. It uses the separating-axis
// test over each hull's facet normals — a standard, if not maximally
// robust, criterion for convex-convex intersection.
func ConvexIntersects(a, b PLC) bool {
	if a.Dim != b.Dim {
		return false
	}
	axes := facetNormals(a)
	axes = append(axes, facetNormals(b)...)
	if len(axes) == 0 {
		// degenerate hulls (points only): fall back to bounding-box overlap.
		return bboxOverlap(a, b)
	}
	for _, axis := range axes {
		aMin, aMax := projectExtent(a, axis)
		bMin, bMax := projectExtent(b, axis)
		if aMax < bMin || bMax < aMin {
			return false
		}
	}
	return true
}

func bboxOverlap(a, b PLC) bool {
	alow, ahigh := ComputeBoundingBox(a.Points, a.Dim)
	blow, bhigh := ComputeBoundingBox(b.Points, b.Dim)
	for j := 0; j < a.Dim; j++ {
		if ahigh[j] < blow[j] || bhigh[j] < alow[j] {
			return false
		}
	}
	return true
}

func facetNormals(h PLC) [][]float64 {
	var out [][]float64
	dim := h.Dim
	for _, f := range h.Facets {
		if len(f) < dim {
			continue
		}
		switch dim {
		case 2:
			p0, p1 := h.Point(f[0]), h.Point(f[1])
			out = append(out, []float64{-(p1[1] - p0[1]), p1[0] - p0[0]})
		case 3:
			p0, p1, p2 := h.Point(f[0]), h.Point(f[1]), h.Point(f[2])
			u := sub3(p1, p0)
			v := sub3(p2, p0)
			out = append(out, cross3(u, v))
		}
	}
	return out
}

func sub3(a, b []float64) []float64 { return []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func cross3(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func projectExtent(h PLC, axis []float64) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	n := h.NumPoints()
	for i := 0; i < n; i++ {
		p := h.Point(i)
		var d float64
		for j := range axis {
			d += axis[j] * p[j]
		}
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return
}

// ConvexWithin reports whether every point of cell lies within (on or
// inside) the convex region bounded by hull. Used to find "exterior
// cells" in ghost exchange (SPEC_FULL.md §6 step 1): a cell fails this
// test when at least one of its points lies strictly outside hull.
func ConvexWithin(cellPoints []float64, dim int, hull PLC) bool {
	if len(hull.Facets) == 0 {
		// degenerate hull: treat every point as exterior so callers
		// fall through to the "every generator visible" branch.
		return false
	}
	n := len(cellPoints) / dim
	for i := 0; i < n; i++ {
		p := cellPoints[dim*i : dim*i+dim]
		if !pointWithin(p, hull) {
			return false
		}
	}
	return true
}

func pointWithin(p []float64, hull PLC) bool {
	const eps = 1e-9
	// outward-orientation reference: centroid of hull points.
	c := make([]float64, hull.Dim)
	n := hull.NumPoints()
	for i := 0; i < n; i++ {
		q := hull.Point(i)
		for j := range c {
			c[j] += q[j]
		}
	}
	for j := range c {
		c[j] /= float64(n)
	}
	for _, f := range hull.Facets {
		if len(f) < hull.Dim {
			continue
		}
		var nrm []float64
		var origin []float64
		switch hull.Dim {
		case 2:
			p0, p1 := hull.Point(f[0]), hull.Point(f[1])
			nrm = []float64{-(p1[1] - p0[1]), p1[0] - p0[0]}
			origin = p0
		case 3:
			p0, p1, p2 := hull.Point(f[0]), hull.Point(f[1]), hull.Point(f[2])
			nrm = cross3(sub3(p1, p0), sub3(p2, p0))
			origin = p0
		}
		// orient normal outward (away from centroid)
		var dc float64
		for j := range nrm {
			dc += nrm[j] * (c[j] - origin[j])
		}
		if dc > 0 {
			for j := range nrm {
				nrm[j] = -nrm[j]
			}
		}
		var d float64
		for j := range nrm {
			d += nrm[j] * (p[j] - origin[j])
		}
		if d > eps {
			return false
		}
	}
	return true
}
