package assemble

import (
	"github.com/gdrealm/goiga/bspline"
	"github.com/gdrealm/goiga/quadrature"
)

type intInterval struct {
	a, b int
}

func intersectIntervals(x, y intInterval) (r intInterval) {
	r.a = max(x.a, y.a)
	r.b = min(x.b, y.b)
	return
}

// findJointSupportFunctions returns the contiguous dof interval [a,b) of
// basis functions whose mesh supports intersect that of function i. Relies
// on the support table being non-decreasing in both endpoints.
func findJointSupportFunctions(meshsupp [][2]int, i int) (r intInterval) {
	r.a = i
	for r.a > 0 && meshsupp[r.a-1][1] > meshsupp[i][0] {
		r.a--
	}
	r.b = i + 1
	for r.b < len(meshsupp) && meshsupp[r.b][0] < meshsupp[i][1] {
		r.b++
	}
	return
}

// axisData is the immutable per-axis state shared by all evaluator clones:
// dof count, total quadrature point count, mesh supports and the collocated
// basis table at the iterated Gauss grid.
type axisData struct {
	ndofs    int
	nqpTot   int
	meshsupp [][2]int
	tab      bspline.BasisTable
}

// newAxisData builds the per-axis tables for one knot vector at the nqp-point
// iterated Gauss rule over its mesh, returning the quadrature grid and
// weights alongside for the geometry-tensor construction.
func newAxisData(kv bspline.KnotVector, nqp, derivs int) (ax axisData, grid, wts []float64) {
	grid, wts = quadrature.Iterated(kv.Mesh(), nqp)
	ax = axisData{
		ndofs:    kv.NumDofs(),
		nqpTot:   len(grid),
		meshsupp: kv.MeshSupportAll(),
		tab:      kv.CollocationDerivs(grid, derivs),
	}
	return
}
