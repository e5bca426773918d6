package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexLinearization(t *testing.T) {
	{ // 2D round trips, both directions
		nd := [2]int{5, 3}
		seen := make(map[int]bool)
		for i0 := 0; i0 < nd[0]; i0++ {
			for i1 := 0; i1 < nd[1]; i1++ {
				ii := [2]int{i0, i1}
				s := ToSeq2(ii, nd)
				assert.Equal(t, ii, FromSeq2(s, nd))
				seen[s] = true
			}
		}
		for s := 0; s < nd[0]*nd[1]; s++ {
			assert.True(t, seen[s])
			assert.Equal(t, s, ToSeq2(FromSeq2(s, nd), nd))
		}
		// axis 0 is the slowest-varying axis
		assert.Equal(t, 0, ToSeq2([2]int{0, 0}, nd))
		assert.Equal(t, 1, ToSeq2([2]int{0, 1}, nd))
		assert.Equal(t, nd[1], ToSeq2([2]int{1, 0}, nd))
	}
	{ // 3D round trips, both directions
		nd := [3]int{4, 3, 2}
		for s := 0; s < nd[0]*nd[1]*nd[2]; s++ {
			ii := FromSeq3(s, nd)
			assert.Equal(t, s, ToSeq3(ii, nd))
		}
		assert.Equal(t, [3]int{3, 2, 1}, FromSeq3(4*3*2-1, nd))
		assert.Equal(t, nd[1]*nd[2], ToSeq3([3]int{1, 0, 0}, nd))
	}
}

func TestNextLexicographic(t *testing.T) {
	{ // full 2D box traversal matches ToSeq2 order
		nd := [2]int{3, 4}
		start := [2]int{0, 0}
		ii := start
		count := 0
		for {
			assert.Equal(t, count, ToSeq2(ii, nd))
			count++
			if !nextLexicographic2(&ii, start, nd) {
				break
			}
		}
		assert.Equal(t, nd[0]*nd[1], count)
	}
	{ // sub-box traversal stays inside the box
		start := [3]int{1, 0, 2}
		end := [3]int{3, 2, 4}
		ii := start
		count := 0
		for {
			for k := 0; k < 3; k++ {
				assert.True(t, ii[k] >= start[k] && ii[k] < end[k])
			}
			count++
			if !nextLexicographic3(&ii, start, end) {
				break
			}
		}
		assert.Equal(t, 2*2*2, count)
	}
}

func TestFindJointSupportFunctions(t *testing.T) {
	// degree-2 uniform supports over 5 spans: the neighbor interval of i
	// contains exactly the functions whose supports intersect i's
	supp := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 4}, {2, 5}, {3, 5}, {4, 5}}
	for i := range supp {
		intv := findJointSupportFunctions(supp, i)
		for j := range supp {
			overlaps := supp[j][0] < supp[i][1] && supp[i][0] < supp[j][1]
			inside := j >= intv.a && j < intv.b
			assert.Equal(t, overlaps, inside)
		}
	}
}
