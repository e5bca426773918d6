package bspline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnotVector(t *testing.T) {
	{ // Uniform open knot vectors: dof and span counts
		for p := 1; p <= 4; p++ {
			for nspans := 1; nspans <= 6; nspans++ {
				kv := UniformKnots(p, nspans)
				assert.Equal(t, nspans+p, kv.NumDofs())
				assert.Equal(t, nspans, kv.NumSpans())
				assert.Equal(t, nspans+1, len(kv.Mesh()))
			}
		}
	}
	{ // Mesh supports: non-decreasing, bounded, width <= p+1 spans
		for p := 1; p <= 3; p++ {
			kv := UniformKnots(p, 5)
			supp := kv.MeshSupportAll()
			assert.Equal(t, kv.NumDofs(), len(supp))
			prev := [2]int{0, 0}
			for i, s := range supp {
				assert.True(t, s[0] < s[1])
				assert.True(t, s[0] >= prev[0] && s[1] >= prev[1])
				assert.True(t, s[1] <= kv.NumSpans())
				assert.True(t, s[1]-s[0] <= p+1)
				assert.Equal(t, s, kv.MeshSupport(i))
				prev = s
			}
			// end functions are interpolatory, supported on a single span
			assert.Equal(t, [2]int{0, 1}, supp[0])
			assert.Equal(t, [2]int{4, 5}, supp[kv.NumDofs()-1])
		}
	}
	{ // Repeated interior knot reduces support width
		knots := []float64{0, 0, 0, 0.5, 0.5, 1, 1, 1}
		kv := NewKnotVector(knots, 2)
		assert.Equal(t, 5, kv.NumDofs())
		assert.Equal(t, 2, kv.NumSpans())
		// the middle function straddles the repeated knot with C^0 continuity
		assert.Equal(t, [2]int{0, 1}, kv.MeshSupport(0))
		assert.Equal(t, [2]int{1, 2}, kv.MeshSupport(4))
	}
	{ // FindSpan brackets its argument
		kv := UniformKnots(3, 7)
		for _, tv := range []float64{0, 0.1, 0.25, 0.5, 0.99, 1} {
			s := kv.FindSpan(tv)
			assert.True(t, kv.Knots[s] <= tv || tv == 1)
			assert.True(t, kv.Knots[s] < kv.Knots[s+1])
		}
	}
}

func TestCollocationDerivs(t *testing.T) {
	{ // Partition of unity and zero derivative sum at interior points
		for p := 1; p <= 4; p++ {
			kv := UniformKnots(p, 4)
			xs := []float64{0.05, 0.3, 0.5, 0.77, 0.95}
			bt := kv.CollocationDerivs(xs, 1)
			assert.Equal(t, kv.NumDofs(), bt.NumDofs)
			assert.Equal(t, len(xs), bt.NumPoints)
			assert.Equal(t, 2, bt.NumDerivs)
			for q := range xs {
				var sum, dsum float64
				for i := 0; i < bt.NumDofs; i++ {
					row := bt.Row(i)
					sum += row[2*q]
					dsum += row[2*q+1]
				}
				assert.True(t, near(1, sum, 1.e-12))
				assert.True(t, math.Abs(dsum) < 1.e-10)
			}
		}
	}
	{ // Values vanish outside the mesh support
		p := 2
		kv := UniformKnots(p, 5)
		mesh := kv.Mesh()
		// one point per element, strictly inside
		xs := make([]float64, len(mesh)-1)
		for e := range xs {
			xs[e] = 0.5 * (mesh[e] + mesh[e+1])
		}
		bt := kv.CollocationDerivs(xs, 0)
		for i := 0; i < bt.NumDofs; i++ {
			supp := kv.MeshSupport(i)
			row := bt.Row(i)
			for e := range xs {
				if e < supp[0] || e >= supp[1] {
					assert.Equal(t, 0.0, row[e])
				} else {
					assert.True(t, row[e] > 0)
				}
			}
		}
	}
	{ // Degree-1 hat function values at midpoints
		kv := UniformKnots(1, 2)
		bt := kv.CollocationDerivs([]float64{0.25, 0.75}, 1)
		// middle hat peaks at 0.5, is 0.5 at both midpoints with slopes +-2
		mid := bt.Row(1)
		assert.True(t, near(0.5, mid[0], 1.e-12))
		assert.True(t, near(2, mid[1], 1.e-12))
		assert.True(t, near(0.5, mid[2], 1.e-12))
		assert.True(t, near(-2, mid[3], 1.e-12))
	}
	{ // SubRange bounds are enforced
		kv := UniformKnots(2, 3)
		bt := kv.CollocationDerivs([]float64{0.1, 0.5, 0.9}, 0)
		assert.Panics(t, func() { bt.SubRange(0, 0, 4) })
		assert.Panics(t, func() { bt.SubRange(0, -1, 2) })
		assert.Equal(t, 2, len(bt.SubRange(0, 0, 2)))
	}
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
