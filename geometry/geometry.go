package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Map is a geometry map from the d-dimensional reference domain [0,1]^d
// into physical space. Jacobian returns the d x d matrix dx_r/du_c at the
// reference point u. Maps must be safe for concurrent evaluation; all
// implementations here are stateless.
type Map interface {
	Dim() int
	Jacobian(u []float64) *mat.Dense
}

// UnitSquare is the identity map on [0,1]^2.
type UnitSquare struct{}

func (UnitSquare) Dim() int { return 2 }

func (UnitSquare) Jacobian(u []float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})
}

// UnitCube is the identity map on [0,1]^3.
type UnitCube struct{}

func (UnitCube) Dim() int { return 3 }

func (UnitCube) Jacobian(u []float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// Stretch scales each reference axis by a constant factor, mapping [0,1]^d
// onto an axis-aligned box.
type Stretch struct {
	Factors []float64
}

func NewStretch(factors ...float64) Stretch {
	return Stretch{Factors: factors}
}

func (s Stretch) Dim() int { return len(s.Factors) }

func (s Stretch) Jacobian(u []float64) *mat.Dense {
	d := len(s.Factors)
	J := mat.NewDense(d, d, nil)
	for k := 0; k < d; k++ {
		J.Set(k, k, s.Factors[k])
	}
	return J
}

// QuarterAnnulus2D maps [0,1]^2 onto the first-quadrant quarter of the
// annulus with radii [Rin,Rout]: axis 0 is radial, axis 1 sweeps the
// angle 0..pi/2.
type QuarterAnnulus2D struct {
	Rin, Rout float64
}

func (QuarterAnnulus2D) Dim() int { return 2 }

func (g QuarterAnnulus2D) Jacobian(u []float64) *mat.Dense {
	var (
		dr       = g.Rout - g.Rin
		r        = g.Rin + u[0]*dr
		th       = u[1] * math.Pi / 2
		sin, cos = math.Sin(th), math.Cos(th)
		half     = math.Pi / 2
	)
	return mat.NewDense(2, 2, []float64{
		dr * cos, -r * sin * half,
		dr * sin, r * cos * half,
	})
}

// TwistedBox3D shears the unit cube by Amount*u1*u2 along axis 0. The
// Jacobian varies over the domain but its determinant is identically 1,
// which makes the map handy for exercising curvilinear code paths with a
// known volume.
type TwistedBox3D struct {
	Amount float64
}

func (TwistedBox3D) Dim() int { return 3 }

func (g TwistedBox3D) Jacobian(u []float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, g.Amount * u[2], g.Amount * u[1],
		0, 1, 0,
		0, 0, 1,
	})
}

// TensorGrid calls visit for every point of the tensor-product grid spanned
// by the per-axis coordinate arrays, in row-major order (axis 0 slowest).
// flat is the row-major point index, idx the per-axis indices and u the
// coordinate tuple; idx and u are reused between calls.
func TensorGrid(visit func(flat int, idx []int, u []float64), axes ...[]float64) {
	var (
		d    = len(axes)
		idx  = make([]int, d)
		u    = make([]float64, d)
		flat = 0
	)
	for {
		for k := 0; k < d; k++ {
			u[k] = axes[k][idx[k]]
		}
		visit(flat, idx, u)
		flat++
		k := d - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < len(axes[k]) {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			return
		}
	}
}
