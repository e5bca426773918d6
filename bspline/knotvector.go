package bspline

import (
	"fmt"
	"sort"
)

// KnotVector is an open (clamped) B-spline knot vector of degree P over a
// 1D parameter interval. Knots are non-decreasing; the first and last knot
// each appear P+1 times for a clamped basis.
type KnotVector struct {
	Knots []float64
	P     int
}

func NewKnotVector(knots []float64, p int) (kv KnotVector) {
	if len(knots) < 2*(p+1) {
		panic(fmt.Errorf("need at least %d knots for degree %d, have %d",
			2*(p+1), p, len(knots)))
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			panic("knots must be non-decreasing")
		}
	}
	kv = KnotVector{Knots: knots, P: p}
	return
}

// UniformKnots builds the open uniform knot vector of degree p with nspans
// equal mesh elements on [0,1].
func UniformKnots(p, nspans int) (kv KnotVector) {
	if nspans < 1 {
		panic("need at least one span")
	}
	knots := make([]float64, 0, nspans+1+2*p)
	for i := 0; i < p; i++ {
		knots = append(knots, 0)
	}
	for i := 0; i <= nspans; i++ {
		knots = append(knots, float64(i)/float64(nspans))
	}
	for i := 0; i < p; i++ {
		knots = append(knots, 1)
	}
	return NewKnotVector(knots, p)
}

func (kv KnotVector) NumDofs() int {
	return len(kv.Knots) - kv.P - 1
}

// Mesh returns the unique knot values, i.e. the breakpoints of the mesh.
func (kv KnotVector) Mesh() (mesh []float64) {
	mesh = make([]float64, 0, len(kv.Knots))
	for i, t := range kv.Knots {
		if i == 0 || t != kv.Knots[i-1] {
			mesh = append(mesh, t)
		}
	}
	return
}

func (kv KnotVector) NumSpans() int {
	return len(kv.Mesh()) - 1
}

// MeshSupport returns the half-open interval [a,b) of mesh-element indices
// over which basis function i is nonzero.
func (kv KnotVector) MeshSupport(i int) (supp [2]int) {
	var (
		mesh = kv.Mesh()
	)
	supp[0] = sort.SearchFloat64s(mesh, kv.Knots[i])
	supp[1] = sort.SearchFloat64s(mesh, kv.Knots[i+kv.P+1])
	return
}

// MeshSupportAll returns MeshSupport for every basis function. The intervals
// are non-decreasing in both endpoints, which the assembly kernels rely on
// when they walk neighboring supports.
func (kv KnotVector) MeshSupportAll() (supp [][2]int) {
	var (
		nd   = kv.NumDofs()
		mesh = kv.Mesh()
	)
	supp = make([][2]int, nd)
	for i := 0; i < nd; i++ {
		supp[i][0] = sort.SearchFloat64s(mesh, kv.Knots[i])
		supp[i][1] = sort.SearchFloat64s(mesh, kv.Knots[i+kv.P+1])
	}
	return
}

// FindSpan locates the knot span index s such that Knots[s] <= t < Knots[s+1],
// with t equal to the last knot mapped into the final nonempty span.
func (kv KnotVector) FindSpan(t float64) (span int) {
	var (
		p    = kv.P
		n    = kv.NumDofs()
		low  = p
		high = n
	)
	if t >= kv.Knots[n] {
		span = n - 1
		for kv.Knots[span] == kv.Knots[span+1] {
			span--
		}
		return
	}
	if t <= kv.Knots[p] {
		span = p
		for kv.Knots[span] == kv.Knots[span+1] {
			span++
		}
		return
	}
	// binary search over [Knots[p], Knots[n])
	span = (low + high) / 2
	for t < kv.Knots[span] || t >= kv.Knots[span+1] {
		if t < kv.Knots[span] {
			high = span
		} else {
			low = span
		}
		span = (low + high) / 2
	}
	return
}
