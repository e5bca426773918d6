package quadrature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegendre(t *testing.T) {
	{ // Weights sum to the interval measure, nodes inside (-1,1) and ascending
		for n := 1; n <= 10; n++ {
			x, w := Legendre(n)
			assert.Equal(t, n, len(x))
			assert.Equal(t, n, len(w))
			var sum float64
			for q := range w {
				sum += w[q]
				assert.True(t, x[q] > -1 && x[q] < 1)
				if q > 0 {
					assert.True(t, x[q] > x[q-1])
				}
			}
			assert.True(t, near(2, sum, 1.e-12))
		}
	}
	{ // n-point rule integrates monomials up to degree 2n-1 exactly
		for n := 1; n <= 6; n++ {
			x, w := Legendre(n)
			for deg := 0; deg <= 2*n-1; deg++ {
				var got float64
				for q := range x {
					got += w[q] * math.Pow(x[q], float64(deg))
				}
				var want float64
				if deg%2 == 0 {
					want = 2 / float64(deg+1)
				}
				assert.InDeltaf(t, want, got, 1.e-12, "n = %d, degree = %d", n, deg)
			}
		}
	}
	assert.Panics(t, func() { Legendre(0) })
}

func TestIterated(t *testing.T) {
	mesh := []float64{0, 0.25, 0.5, 0.75, 1}
	for nqp := 1; nqp <= 4; nqp++ {
		x, w := Iterated(mesh, nqp)
		assert.Equal(t, nqp*4, len(x))
		var sum float64
		for q := range w {
			sum += w[q]
			assert.True(t, x[q] >= 0 && x[q] <= 1)
			if q > 0 {
				assert.True(t, x[q] > x[q-1]) // ascending across element boundaries
			}
		}
		assert.True(t, near(1, sum, 1.e-12))
		// exact for polynomials of degree 2*nqp-1 on each element
		deg := 2*nqp - 1
		var got float64
		for q := range x {
			got += w[q] * math.Pow(x[q], float64(deg))
		}
		assert.InDeltaf(t, 1/float64(deg+1), got, 1.e-12, "nqp = %d", nqp)
	}
	assert.Panics(t, func() { Iterated([]float64{0}, 2) })
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
