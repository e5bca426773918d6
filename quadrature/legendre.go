package quadrature

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Legendre computes the n-point Gauss-Legendre rule on [-1,1] by the
// Golub-Welsch method: the nodes are the eigenvalues of the symmetric
// tridiagonal Jacobi matrix and the weights follow from the first
// components of its eigenvectors. Weights sum to 2.
func Legendre(n int) (x, w []float64) {
	if n < 1 {
		panic("quadrature rule needs at least one point")
	}
	if n == 1 {
		x = []float64{0}
		w = []float64{2}
		return
	}
	JJ := mat.NewSymDense(n, nil)
	for k := 1; k < n; k++ {
		fk := float64(k)
		b := fk / math.Sqrt(4*fk*fk-1)
		JJ.SetSym(k-1, k, b)
	}
	var eig mat.EigenSym
	ok := eig.Factorize(JJ, true)
	if !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(nil)
	VVr := mat.NewDense(n, n, nil)
	eig.VectorsTo(VVr)
	w = make([]float64, n)
	for i := 0; i < n; i++ {
		v0 := VVr.At(0, i)
		w[i] = 2 * v0 * v0
	}
	return
}

// Iterated maps the n-point Legendre rule onto every interval of the mesh
// and concatenates the results, yielding nqp*(len(mesh)-1) nodes in
// ascending order with their weights.
func Iterated(mesh []float64, nqp int) (x, w []float64) {
	if len(mesh) < 2 {
		panic("mesh needs at least two breakpoints")
	}
	xr, wr := Legendre(nqp)
	var (
		nel = len(mesh) - 1
	)
	x = make([]float64, 0, nel*nqp)
	w = make([]float64, 0, nel*nqp)
	for e := 0; e < nel; e++ {
		a, b := mesh[e], mesh[e+1]
		h := 0.5 * (b - a)
		c := 0.5 * (b + a)
		for q := 0; q < nqp; q++ {
			x = append(x, c+h*xr[q])
			w = append(w, h*wr[q])
		}
	}
	return
}
