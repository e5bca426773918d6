package assemble

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/gdrealm/goiga/bspline"
	"github.com/gdrealm/goiga/geometry"
	"github.com/gdrealm/goiga/sparsity"
)

// Options configures a top-level assembly call. ProcLimit of 0 uses all
// available cores; Symmetric enables lower-triangle pruning with mirror
// writes in the banded pass.
type Options struct {
	ProcLimit int
	Symmetric bool
}

// CSRFromBanded2D scatters the dense banded-entry array into a global
// sparse matrix: slot (mu0,mu1) lands at the flat dof pair obtained by
// linearizing the per-axis rows and cols. Exact zeros, produced by pairs
// inside the band whose supports nevertheless miss each other, are dropped.
func CSRFromBanded2D(ndofs [2]int, bidx [2]sparsity.BandedPairs, entries []float64) *sparse.CSR {
	var (
		N   = ndofs[0] * ndofs[1]
		MU1 = bidx[1].Len()
		b   = sparsity.NewCOOBuilder(N, N)
	)
	for mu0 := range bidx[0].Rows {
		for mu1 := range bidx[1].Rows {
			v := entries[mu0*MU1+mu1]
			if v == 0 {
				continue
			}
			I := ToSeq2([2]int{bidx[0].Rows[mu0], bidx[1].Rows[mu1]}, ndofs)
			J := ToSeq2([2]int{bidx[0].Cols[mu0], bidx[1].Cols[mu1]}, ndofs)
			b.Add(I, J, v)
		}
	}
	return b.ToCSR()
}

func CSRFromBanded3D(ndofs [3]int, bidx [3]sparsity.BandedPairs, entries []float64) *sparse.CSR {
	var (
		N   = ndofs[0] * ndofs[1] * ndofs[2]
		MU1 = bidx[1].Len()
		MU2 = bidx[2].Len()
		b   = sparsity.NewCOOBuilder(N, N)
	)
	for mu0 := range bidx[0].Rows {
		for mu1 := range bidx[1].Rows {
			for mu2 := range bidx[2].Rows {
				v := entries[(mu0*MU1+mu1)*MU2+mu2]
				if v == 0 {
					continue
				}
				I := ToSeq3([3]int{bidx[0].Rows[mu0], bidx[1].Rows[mu1], bidx[2].Rows[mu2]}, ndofs)
				J := ToSeq3([3]int{bidx[0].Cols[mu0], bidx[1].Cols[mu1], bidx[2].Cols[mu2]}, ndofs)
				b.Add(I, J, v)
			}
		}
	}
	return b.ToCSR()
}

// Mass assembles the full sparse mass matrix for the tensor-product space
// spanned by kvs over the geometry geo, via the banded assembler. The
// number of knot vectors must match the geometry dimension and be 2 or 3.
func Mass(kvs []bspline.KnotVector, geo geometry.Map, opt Options) (*sparse.CSR, error) {
	if err := checkDim(len(kvs), geo); err != nil {
		return nil, err
	}
	switch len(kvs) {
	case 2:
		ev, err := NewMass2D([2]bspline.KnotVector{kvs[0], kvs[1]}, geo)
		if err != nil {
			return nil, err
		}
		bidx := bandedPairs2(kvs, ev.Ndofs())
		entries := AssembleBanded2D(ev, bidx, opt.Symmetric, opt.ProcLimit)
		return CSRFromBanded2D(ev.Ndofs(), bidx, entries), nil
	default:
		ev, err := NewMass3D([3]bspline.KnotVector{kvs[0], kvs[1], kvs[2]}, geo)
		if err != nil {
			return nil, err
		}
		bidx := bandedPairs3(kvs, ev.Ndofs())
		entries := AssembleBanded3D(ev, bidx, opt.Symmetric, opt.ProcLimit)
		return CSRFromBanded3D(ev.Ndofs(), bidx, entries), nil
	}
}

// Stiffness assembles the full sparse stiffness matrix; see Mass.
func Stiffness(kvs []bspline.KnotVector, geo geometry.Map, opt Options) (*sparse.CSR, error) {
	if err := checkDim(len(kvs), geo); err != nil {
		return nil, err
	}
	switch len(kvs) {
	case 2:
		ev, err := NewStiffness2D([2]bspline.KnotVector{kvs[0], kvs[1]}, geo)
		if err != nil {
			return nil, err
		}
		bidx := bandedPairs2(kvs, ev.Ndofs())
		entries := AssembleBanded2D(ev, bidx, opt.Symmetric, opt.ProcLimit)
		return CSRFromBanded2D(ev.Ndofs(), bidx, entries), nil
	default:
		ev, err := NewStiffness3D([3]bspline.KnotVector{kvs[0], kvs[1], kvs[2]}, geo)
		if err != nil {
			return nil, err
		}
		bidx := bandedPairs3(kvs, ev.Ndofs())
		entries := AssembleBanded3D(ev, bidx, opt.Symmetric, opt.ProcLimit)
		return CSRFromBanded3D(ev.Ndofs(), bidx, entries), nil
	}
}

func checkDim(nkvs int, geo geometry.Map) error {
	if nkvs != 2 && nkvs != 3 {
		return fmt.Errorf("assembly supports 2 or 3 axes, got %d knot vectors", nkvs)
	}
	if geo.Dim() != nkvs {
		return fmt.Errorf("got %d knot vectors but geometry has dimension %d",
			nkvs, geo.Dim())
	}
	return nil
}

// bandwidth is the spline degree: supports of dofs further apart than p
// along an axis cannot overlap.
func bandedPairs2(kvs []bspline.KnotVector, ndofs [2]int) (bidx [2]sparsity.BandedPairs) {
	for k := 0; k < 2; k++ {
		bidx[k] = sparsity.NewBandedPairs(ndofs[k], kvs[k].P)
	}
	return
}

func bandedPairs3(kvs []bspline.KnotVector, ndofs [3]int) (bidx [3]sparsity.BandedPairs) {
	for k := 0; k < 3; k++ {
		bidx[k] = sparsity.NewBandedPairs(ndofs[k], kvs[k].P)
	}
	return
}
