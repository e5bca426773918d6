package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestMaps(t *testing.T) {
	{ // Identity maps
		assert.Equal(t, 2, UnitSquare{}.Dim())
		assert.Equal(t, 3, UnitCube{}.Dim())
		assert.InDelta(t, 1, mat.Det(UnitSquare{}.Jacobian([]float64{0.3, 0.7})), 1.e-15)
		assert.InDelta(t, 1, mat.Det(UnitCube{}.Jacobian([]float64{0.3, 0.7, 0.1})), 1.e-15)
	}
	{ // Stretch scales the volume element by the product of factors
		s := NewStretch(2, 3, 4)
		assert.Equal(t, 3, s.Dim())
		assert.InDelta(t, 24, mat.Det(s.Jacobian([]float64{0.5, 0.5, 0.5})), 1.e-12)
	}
	{ // Quarter annulus: det J = (Rout-Rin) * pi/2 * r
		g := QuarterAnnulus2D{Rin: 1, Rout: 2}
		for _, u := range [][]float64{{0, 0}, {0.5, 0.25}, {1, 1}, {0.3, 0.9}} {
			r := g.Rin + u[0]*(g.Rout-g.Rin)
			want := (g.Rout - g.Rin) * math.Pi / 2 * r
			assert.InDelta(t, want, mat.Det(g.Jacobian(u)), 1.e-12)
		}
	}
	{ // Twisted box shear has unit determinant everywhere
		g := TwistedBox3D{Amount: 0.8}
		for _, u := range [][]float64{{0, 0, 0}, {0.2, 0.9, 0.4}, {1, 1, 1}} {
			assert.InDelta(t, 1, mat.Det(g.Jacobian(u)), 1.e-14)
		}
	}
}

func TestTensorGrid(t *testing.T) {
	var (
		x0    = []float64{0, 1, 2}
		x1    = []float64{10, 20}
		flats []int
		pts   [][2]float64
	)
	TensorGrid(func(flat int, idx []int, u []float64) {
		flats = append(flats, flat)
		pts = append(pts, [2]float64{u[0], u[1]})
		assert.Equal(t, x0[idx[0]], u[0])
		assert.Equal(t, x1[idx[1]], u[1])
	}, x0, x1)
	assert.Equal(t, 6, len(flats))
	for k, f := range flats {
		assert.Equal(t, k, f) // row-major, axis 0 slowest
	}
	assert.Equal(t, [2]float64{0, 10}, pts[0])
	assert.Equal(t, [2]float64{0, 20}, pts[1])
	assert.Equal(t, [2]float64{2, 20}, pts[5])
}
