package assemble

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gdrealm/goiga/bspline"
	"github.com/gdrealm/goiga/geometry"
)

// Stiffness2D evaluates entries of the 2D stiffness matrix, the bilinear
// form grad(u) . B grad(v) with B the per-quadrature-point symmetric matrix
// w_q * |det J| * J^-1 J^-T that pulls reference-space gradients back to
// physical space. Basis tables carry value and first derivative per point.
type Stiffness2D struct {
	nqp     int
	degrees [2]int
	ax      [2]axisData
	B       []float64 // 2x2 symmetric matrix per quadrature point, row-major
}

func NewStiffness2D(kvs [2]bspline.KnotVector, geo geometry.Map) (st *Stiffness2D, err error) {
	if geo.Dim() != 2 {
		err = fmt.Errorf("geometry has dimension %d, stiffness assembler requires 2", geo.Dim())
		return
	}
	st = &Stiffness2D{nqp: max(kvs[0].P, kvs[1].P) + 1}
	var (
		grids, wts [2][]float64
	)
	for k := range kvs {
		st.degrees[k] = kvs[k].P
		st.ax[k], grids[k], wts[k] = newAxisData(kvs[k], st.nqp, 1)
	}
	st.B = make([]float64, st.ax[0].nqpTot*st.ax[1].nqpTot*4)
	geometry.TensorGrid(func(flat int, idx []int, u []float64) {
		b := weightedGramInverse(geo.Jacobian(u), wts[0][idx[0]]*wts[1][idx[1]])
		copy(st.B[flat*4:], b)
	}, grids[0], grids[1])
	return
}

// weightedGramInverse computes w * |det J| * J^-1 J^-T as a flat row-major
// d x d block. Singular Jacobians are the geometry map's problem and
// surface as Inverse errors here.
func weightedGramInverse(J *mat.Dense, w float64) []float64 {
	var (
		d, _ = J.Dims()
		inv  mat.Dense
		g    mat.Dense
	)
	det := mat.Det(J)
	if err := inv.Inverse(J); err != nil {
		panic(fmt.Errorf("geometry Jacobian is singular: %v", err))
	}
	g.Mul(&inv, inv.T())
	out := make([]float64, d*d)
	scale := w * math.Abs(det)
	for r := 0; r < d; r++ {
		for c := 0; c < d; c++ {
			out[r*d+c] = scale * g.At(r, c)
		}
	}
	return out
}

func (st *Stiffness2D) Ndofs() (nd [2]int) {
	nd[0], nd[1] = st.ax[0].ndofs, st.ax[1].ndofs
	return
}

func (st *Stiffness2D) Degrees() [2]int { return st.degrees }

func (st *Stiffness2D) MeshSupports() (supp [2][][2]int) {
	supp[0], supp[1] = st.ax[0].meshsupp, st.ax[1].meshsupp
	return
}

func (st *Stiffness2D) SharedClone() Evaluator2D { return st }

func (st *Stiffness2D) EntryAt(i, j [2]int) (entry float64) {
	var (
		gsta   [2]int
		vi, vj [2][]float64 // value/derivative interleaved, 2 per point
	)
	for k := 0; k < 2; k++ {
		ms := st.ax[k].meshsupp
		intv := intersectIntervals(
			intInterval{ms[i[k]][0], ms[i[k]][1]},
			intInterval{ms[j[k]][0], ms[j[k]][1]})
		if intv.a >= intv.b {
			return 0.0 // no intersection of support
		}
		gsta[k] = st.nqp * intv.a
		gend := st.nqp * intv.b
		vi[k] = st.ax[k].tab.SubRange(i[k], gsta[k], gend)
		vj[k] = st.ax[k].tab.SubRange(j[k], gsta[k], gend)
	}
	var (
		n0     = len(vi[0]) / 2
		n1     = len(vi[1]) / 2
		stride = st.ax[1].nqpTot
	)
	for i0 := 0; i0 < n0; i0++ {
		for i1 := 0; i1 < n1; i1++ {
			b := st.B[((gsta[0]+i0)*stride+gsta[1]+i1)*4:]
			// gradient component k carries the derivative along axis k
			gu0 := vi[0][2*i0+1] * vi[1][2*i1]
			gu1 := vi[0][2*i0] * vi[1][2*i1+1]
			gv0 := vj[0][2*i0+1] * vj[1][2*i1]
			gv1 := vj[0][2*i0] * vj[1][2*i1+1]
			entry += (b[0]*gu0+b[1]*gu1)*gv0 + (b[2]*gu0+b[3]*gu1)*gv1
		}
	}
	return
}

// Stiffness3D is the 3D counterpart of Stiffness2D.
type Stiffness3D struct {
	nqp     int
	degrees [3]int
	ax      [3]axisData
	B       []float64 // 3x3 symmetric matrix per quadrature point, row-major
}

func NewStiffness3D(kvs [3]bspline.KnotVector, geo geometry.Map) (st *Stiffness3D, err error) {
	if geo.Dim() != 3 {
		err = fmt.Errorf("geometry has dimension %d, stiffness assembler requires 3", geo.Dim())
		return
	}
	st = &Stiffness3D{nqp: max(kvs[0].P, kvs[1].P, kvs[2].P) + 1}
	var (
		grids, wts [3][]float64
	)
	for k := range kvs {
		st.degrees[k] = kvs[k].P
		st.ax[k], grids[k], wts[k] = newAxisData(kvs[k], st.nqp, 1)
	}
	st.B = make([]float64, st.ax[0].nqpTot*st.ax[1].nqpTot*st.ax[2].nqpTot*9)
	geometry.TensorGrid(func(flat int, idx []int, u []float64) {
		b := weightedGramInverse(geo.Jacobian(u), wts[0][idx[0]]*wts[1][idx[1]]*wts[2][idx[2]])
		copy(st.B[flat*9:], b)
	}, grids[0], grids[1], grids[2])
	return
}

func (st *Stiffness3D) Ndofs() (nd [3]int) {
	nd[0], nd[1], nd[2] = st.ax[0].ndofs, st.ax[1].ndofs, st.ax[2].ndofs
	return
}

func (st *Stiffness3D) Degrees() [3]int { return st.degrees }

func (st *Stiffness3D) MeshSupports() (supp [3][][2]int) {
	supp[0], supp[1], supp[2] = st.ax[0].meshsupp, st.ax[1].meshsupp, st.ax[2].meshsupp
	return
}

func (st *Stiffness3D) SharedClone() Evaluator3D { return st }

func (st *Stiffness3D) EntryAt(i, j [3]int) (entry float64) {
	var (
		gsta   [3]int
		vi, vj [3][]float64
	)
	for k := 0; k < 3; k++ {
		ms := st.ax[k].meshsupp
		intv := intersectIntervals(
			intInterval{ms[i[k]][0], ms[i[k]][1]},
			intInterval{ms[j[k]][0], ms[j[k]][1]})
		if intv.a >= intv.b {
			return 0.0
		}
		gsta[k] = st.nqp * intv.a
		gend := st.nqp * intv.b
		vi[k] = st.ax[k].tab.SubRange(i[k], gsta[k], gend)
		vj[k] = st.ax[k].tab.SubRange(j[k], gsta[k], gend)
	}
	var (
		n0      = len(vi[0]) / 2
		n1      = len(vi[1]) / 2
		n2      = len(vi[2]) / 2
		stride1 = st.ax[2].nqpTot
		stride0 = st.ax[1].nqpTot * stride1
	)
	for i0 := 0; i0 < n0; i0++ {
		for i1 := 0; i1 < n1; i1++ {
			for i2 := 0; i2 < n2; i2++ {
				b := st.B[((gsta[0]+i0)*stride0+(gsta[1]+i1)*stride1+gsta[2]+i2)*9:]
				gu0 := vi[0][2*i0+1] * vi[1][2*i1] * vi[2][2*i2]
				gu1 := vi[0][2*i0] * vi[1][2*i1+1] * vi[2][2*i2]
				gu2 := vi[0][2*i0] * vi[1][2*i1] * vi[2][2*i2+1]
				gv0 := vj[0][2*i0+1] * vj[1][2*i1] * vj[2][2*i2]
				gv1 := vj[0][2*i0] * vj[1][2*i1+1] * vj[2][2*i2]
				gv2 := vj[0][2*i0] * vj[1][2*i1] * vj[2][2*i2+1]
				entry += (b[0]*gu0+b[1]*gu1+b[2]*gu2)*gv0 +
					(b[3]*gu0+b[4]*gu1+b[5]*gu2)*gv1 +
					(b[6]*gu0+b[7]*gu1+b[8]*gu2)*gv2
			}
		}
	}
	return
}
