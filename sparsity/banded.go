package sparsity

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

// BandedPairs is the per-axis banded index set: the (row,col) dof pairs
// whose basis-function supports can overlap given the spline bandwidth.
// Rows and Cols are parallel arrays.
type BandedPairs struct {
	Rows, Cols []int
}

// NewBandedPairs enumerates all pairs with |row-col| <= bw over ndofs dofs,
// row-major (row outer, col inner).
func NewBandedPairs(ndofs, bw int) (bp BandedPairs) {
	if ndofs < 1 || bw < 0 {
		panic(fmt.Errorf("invalid banded pair set: ndofs = %d, bw = %d", ndofs, bw))
	}
	for i := 0; i < ndofs; i++ {
		jmin, jmax := i-bw, i+bw
		if jmin < 0 {
			jmin = 0
		}
		if jmax > ndofs-1 {
			jmax = ndofs - 1
		}
		for j := jmin; j <= jmax; j++ {
			bp.Rows = append(bp.Rows, i)
			bp.Cols = append(bp.Cols, j)
		}
	}
	return
}

func (bp BandedPairs) Len() int {
	return len(bp.Rows)
}

// Transpose returns the permutation mapping each pair index to the index of
// its transposed pair within the same set. The banded set is symmetric
// under transposition, so every pair has exactly one partner (diagonal
// pairs map to themselves).
func (bp BandedPairs) Transpose() (perm []int) {
	lookup := make(map[[2]int]int, bp.Len())
	for mu := range bp.Rows {
		lookup[[2]int{bp.Rows[mu], bp.Cols[mu]}] = mu
	}
	perm = make([]int, bp.Len())
	for mu := range bp.Rows {
		nu, ok := lookup[[2]int{bp.Cols[mu], bp.Rows[mu]}]
		if !ok {
			panic(fmt.Errorf("banded pair set is not symmetric: no transpose for (%d,%d)",
				bp.Rows[mu], bp.Cols[mu]))
		}
		perm[mu] = nu
	}
	return
}

// COOBuilder accumulates (row,col,value) triplets and converts them to a
// CSR matrix. Duplicate entries are summed by the conversion, matching the
// usual COO semantics.
type COOBuilder struct {
	NumRows, NumCols int
	rows, cols       []int
	vals             []float64
}

func NewCOOBuilder(nr, nc int) *COOBuilder {
	return &COOBuilder{NumRows: nr, NumCols: nc}
}

func (b *COOBuilder) Add(i, j int, val float64) {
	b.rows = append(b.rows, i)
	b.cols = append(b.cols, j)
	b.vals = append(b.vals, val)
}

// Append bulk-appends another builder's triplets, preserving their order.
// Used to concatenate per-worker buffers after a parallel assembly pass.
func (b *COOBuilder) Append(other *COOBuilder) {
	b.rows = append(b.rows, other.rows...)
	b.cols = append(b.cols, other.cols...)
	b.vals = append(b.vals, other.vals...)
}

func (b *COOBuilder) NNZ() int {
	return len(b.vals)
}

func (b *COOBuilder) ToCSR() *sparse.CSR {
	coo := sparse.NewCOO(b.NumRows, b.NumCols, b.rows, b.cols, b.vals)
	return coo.ToCSR()
}
