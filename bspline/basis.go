package bspline

import "fmt"

// BasisTable holds collocated basis values for one parametric axis: for each
// basis function and evaluation point, the function value and its first
// NumDerivs-1 derivatives. Storage is flat row-major with the derivative
// index fastest, so the values of function i form the contiguous block
// Data[i*NumPoints*NumDerivs : (i+1)*NumPoints*NumDerivs].
type BasisTable struct {
	NumDofs   int
	NumPoints int
	NumDerivs int // 1 for values only, 2 for values + first derivative
	Data      []float64
}

// Row returns the (points x derivs) block for basis function i.
func (bt BasisTable) Row(i int) []float64 {
	var (
		stride = bt.NumPoints * bt.NumDerivs
	)
	return bt.Data[i*stride : (i+1)*stride]
}

// SubRange returns the view of basis function i restricted to evaluation
// points [qa,qb). Bounds are checked so that callers can rely on the
// support-intersection arithmetic upstream being valid.
func (bt BasisTable) SubRange(i, qa, qb int) []float64 {
	if qa < 0 || qb > bt.NumPoints || qa > qb {
		panic(fmt.Errorf("basis table sub-range [%d,%d) out of bounds, have %d points",
			qa, qb, bt.NumPoints))
	}
	row := bt.Row(i)
	return row[qa*bt.NumDerivs : qb*bt.NumDerivs]
}

// DersBasisFuns evaluates the P+1 basis functions that are nonzero on the
// knot span containing t, together with their derivatives up to order n.
// ders[d][j] is the d-th derivative of basis function (span-P+j) at t.
// This is the standard Cox-de Boor recursion with the derivative triangle
// (Piegl & Tiller A2.3).
func (kv KnotVector) DersBasisFuns(span int, t float64, n int) (ders [][]float64) {
	var (
		p     = kv.P
		U     = kv.Knots
		ndu   = make([][]float64, p+1)
		a     = [2][]float64{make([]float64, p+1), make([]float64, p+1)}
		left  = make([]float64, p+1)
		right = make([]float64, p+1)
	)
	for i := range ndu {
		ndu[i] = make([]float64, p+1)
	}
	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = t - U[span+1-j]
		right[j] = U[span+j] - t
		var saved float64
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r] // knot difference denominator
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}
	ders = make([][]float64, n+1)
	for d := range ders {
		ders[d] = make([]float64, p+1)
	}
	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}
	for r := 0; r <= p; r++ {
		var s1, s2 = 0, 1
		a[0][0] = 1
		for k := 1; k <= n; k++ {
			var (
				d          float64
				rk, pk     = r - k, p - k
				j1, j2, jj int
			)
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}
			if r-1 <= pk {
				j2 = k - 1
			} else {
				j2 = p - r
			}
			for jj = j1; jj <= j2; jj++ {
				a[s2][jj] = (a[s1][jj] - a[s1][jj-1]) / ndu[pk+1][rk+jj]
				d += a[s2][jj] * ndu[rk+jj][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			ders[k][r] = d
			s1, s2 = s2, s1
		}
	}
	// multiply through by the degree factors
	fac := float64(p)
	for k := 1; k <= n; k++ {
		for j := 0; j <= p; j++ {
			ders[k][j] *= fac
		}
		fac *= float64(p - k)
	}
	return
}

// CollocationDerivs evaluates all basis functions and their derivatives up
// to order derivs at the points xs, returning the assembled table. Entries
// for (function, point) combinations outside the function's support are
// left at zero.
func (kv KnotVector) CollocationDerivs(xs []float64, derivs int) (bt BasisTable) {
	var (
		p  = kv.P
		nd = kv.NumDofs()
		nv = derivs + 1
	)
	bt = BasisTable{
		NumDofs:   nd,
		NumPoints: len(xs),
		NumDerivs: nv,
		Data:      make([]float64, nd*len(xs)*nv),
	}
	stride := len(xs) * nv
	for q, t := range xs {
		span := kv.FindSpan(t)
		ders := kv.DersBasisFuns(span, t, derivs)
		for j := 0; j <= p; j++ {
			i := span - p + j
			for d := 0; d < nv; d++ {
				bt.Data[i*stride+q*nv+d] = ders[d][j]
			}
		}
	}
	return
}
