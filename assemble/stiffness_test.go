package assemble

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdrealm/goiga/bspline"
	"github.com/gdrealm/goiga/geometry"
)

func TestStiffnessEvaluator(t *testing.T) {
	{ // Entries are symmetric in (i,j) to floating point accuracy
		kv := bspline.UniformKnots(2, 3)
		ev, err := NewStiffness2D([2]bspline.KnotVector{kv, kv},
			geometry.QuarterAnnulus2D{Rin: 1, Rout: 2})
		assert.Nil(t, err)
		nd := ev.Ndofs()
		for i0 := 0; i0 < nd[0]; i0++ {
			for j0 := 0; j0 < nd[0]; j0++ {
				for i1 := 0; i1 < nd[1]; i1++ {
					for j1 := 0; j1 < nd[1]; j1++ {
						i, j := [2]int{i0, i1}, [2]int{j0, j1}
						assert.True(t, near(ev.EntryAt(i, j), ev.EntryAt(j, i), 1.e-13))
					}
				}
			}
		}
	}
	{ // Disjoint supports give exactly 0.0
		kv := bspline.UniformKnots(1, 4)
		ev, err := NewStiffness2D([2]bspline.KnotVector{kv, kv}, geometry.UnitSquare{})
		assert.Nil(t, err)
		assert.Equal(t, 0.0, ev.EntryAt([2]int{0, 2}, [2]int{4, 2}))
	}
	{ // Wrong geometry dimension is rejected
		kv := bspline.UniformKnots(1, 2)
		_, err := NewStiffness2D([2]bspline.KnotVector{kv, kv}, geometry.UnitCube{})
		assert.NotNil(t, err)
		_, err3 := NewStiffness3D([3]bspline.KnotVector{kv, kv, kv}, geometry.UnitSquare{})
		assert.NotNil(t, err3)
	}
}

// Constant functions lie in the kernel of the stiffness form, so every row
// of the assembled matrix must sum to zero regardless of the geometry map.
func TestStiffnessRowSumsVanish(t *testing.T) {
	rowSums := func(kvs []bspline.KnotVector, geo geometry.Map) []float64 {
		A, err := Stiffness(kvs, geo, Options{Symmetric: true})
		assert.Nil(t, err)
		nr, _ := A.Dims()
		sums := make([]float64, nr)
		A.DoNonZero(func(i, j int, v float64) {
			sums[i] += v
		})
		return sums
	}
	kv2 := bspline.UniformKnots(2, 4)
	for _, geo := range []geometry.Map{
		geometry.UnitSquare{},
		geometry.NewStretch(2, 0.5),
		geometry.QuarterAnnulus2D{Rin: 1, Rout: 2},
	} {
		for _, sum := range rowSums([]bspline.KnotVector{kv2, kv2}, geo) {
			assert.True(t, math.Abs(sum) < 1.e-10)
		}
	}
	kv3 := bspline.UniformKnots(1, 3)
	for _, geo := range []geometry.Map{
		geometry.UnitCube{},
		geometry.TwistedBox3D{Amount: 0.5},
	} {
		for _, sum := range rowSums([]bspline.KnotVector{kv3, kv3, kv3}, geo) {
			assert.True(t, math.Abs(sum) < 1.e-10)
		}
	}
}

// On the identity map the 2D stiffness entry splits into the sum of two
// tensor products of 1D mass and 1D stiffness integrals; check degree 1 on
// one span against the hand-computed values.
func TestStiffnessLinearElements(t *testing.T) {
	kv := bspline.UniformKnots(1, 1)
	ev, err := NewStiffness2D([2]bspline.KnotVector{kv, kv}, geometry.UnitSquare{})
	assert.Nil(t, err)
	// 1D integrals on [0,1] for the two hat halves:
	// mass: m00 = 1/3, m01 = 1/6; stiffness: s00 = 1, s01 = -1
	assert.True(t, near(2./3., ev.EntryAt([2]int{0, 0}, [2]int{0, 0}), 1.e-12))  // s00*m00 + m00*s00
	assert.True(t, near(-1./3., ev.EntryAt([2]int{0, 0}, [2]int{1, 1}), 1.e-12)) // s01*m01 + m01*s01
	assert.True(t, near(-1./6., ev.EntryAt([2]int{0, 0}, [2]int{0, 1}), 1.e-12)) // s00*m01 + m00*s01
}
