package assemble

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gdrealm/goiga/bspline"
	"github.com/gdrealm/goiga/geometry"
)

// Mass2D evaluates entries of the 2D mass matrix: the L2 inner product of
// two tensor-product basis functions against the geometry-weighted measure.
type Mass2D struct {
	nqp     int
	degrees [2]int
	ax      [2]axisData
	weights []float64 // w_q * |det J| per quadrature point, row-major
}

func NewMass2D(kvs [2]bspline.KnotVector, geo geometry.Map) (m *Mass2D, err error) {
	if geo.Dim() != 2 {
		err = fmt.Errorf("geometry has dimension %d, mass assembler requires 2", geo.Dim())
		return
	}
	m = &Mass2D{nqp: max(kvs[0].P, kvs[1].P) + 1}
	var (
		grids, wts [2][]float64
	)
	for k := range kvs {
		m.degrees[k] = kvs[k].P
		m.ax[k], grids[k], wts[k] = newAxisData(kvs[k], m.nqp, 0)
	}
	m.weights = make([]float64, m.ax[0].nqpTot*m.ax[1].nqpTot)
	geometry.TensorGrid(func(flat int, idx []int, u []float64) {
		det := mat.Det(geo.Jacobian(u))
		m.weights[flat] = wts[0][idx[0]] * wts[1][idx[1]] * math.Abs(det)
	}, grids[0], grids[1])
	return
}

func (m *Mass2D) Ndofs() (nd [2]int) {
	nd[0], nd[1] = m.ax[0].ndofs, m.ax[1].ndofs
	return
}

func (m *Mass2D) Degrees() [2]int { return m.degrees }

func (m *Mass2D) MeshSupports() (supp [2][][2]int) {
	supp[0], supp[1] = m.ax[0].meshsupp, m.ax[1].meshsupp
	return
}

func (m *Mass2D) SharedClone() Evaluator2D { return m }

func (m *Mass2D) EntryAt(i, j [2]int) (entry float64) {
	var (
		gsta   [2]int
		vi, vj [2][]float64
	)
	for k := 0; k < 2; k++ {
		ms := m.ax[k].meshsupp
		intv := intersectIntervals(
			intInterval{ms[i[k]][0], ms[i[k]][1]},
			intInterval{ms[j[k]][0], ms[j[k]][1]})
		if intv.a >= intv.b {
			return 0.0 // no intersection of support
		}
		gsta[k] = m.nqp * intv.a
		gend := m.nqp * intv.b
		vi[k] = m.ax[k].tab.SubRange(i[k], gsta[k], gend)
		vj[k] = m.ax[k].tab.SubRange(j[k], gsta[k], gend)
	}
	stride := m.ax[1].nqpTot
	for i0 := range vi[0] {
		wrow := m.weights[(gsta[0]+i0)*stride+gsta[1]:]
		for i1 := range vi[1] {
			vu := vi[0][i0] * vi[1][i1]
			vv := vj[0][i0] * vj[1][i1]
			entry += vu * vv * wrow[i1]
		}
	}
	return
}

// Mass3D is the 3D counterpart of Mass2D.
type Mass3D struct {
	nqp     int
	degrees [3]int
	ax      [3]axisData
	weights []float64
}

func NewMass3D(kvs [3]bspline.KnotVector, geo geometry.Map) (m *Mass3D, err error) {
	if geo.Dim() != 3 {
		err = fmt.Errorf("geometry has dimension %d, mass assembler requires 3", geo.Dim())
		return
	}
	m = &Mass3D{nqp: max(kvs[0].P, kvs[1].P, kvs[2].P) + 1}
	var (
		grids, wts [3][]float64
	)
	for k := range kvs {
		m.degrees[k] = kvs[k].P
		m.ax[k], grids[k], wts[k] = newAxisData(kvs[k], m.nqp, 0)
	}
	m.weights = make([]float64, m.ax[0].nqpTot*m.ax[1].nqpTot*m.ax[2].nqpTot)
	geometry.TensorGrid(func(flat int, idx []int, u []float64) {
		det := mat.Det(geo.Jacobian(u))
		m.weights[flat] = wts[0][idx[0]] * wts[1][idx[1]] * wts[2][idx[2]] * math.Abs(det)
	}, grids[0], grids[1], grids[2])
	return
}

func (m *Mass3D) Ndofs() (nd [3]int) {
	nd[0], nd[1], nd[2] = m.ax[0].ndofs, m.ax[1].ndofs, m.ax[2].ndofs
	return
}

func (m *Mass3D) Degrees() [3]int { return m.degrees }

func (m *Mass3D) MeshSupports() (supp [3][][2]int) {
	supp[0], supp[1], supp[2] = m.ax[0].meshsupp, m.ax[1].meshsupp, m.ax[2].meshsupp
	return
}

func (m *Mass3D) SharedClone() Evaluator3D { return m }

func (m *Mass3D) EntryAt(i, j [3]int) (entry float64) {
	var (
		gsta   [3]int
		vi, vj [3][]float64
	)
	for k := 0; k < 3; k++ {
		ms := m.ax[k].meshsupp
		intv := intersectIntervals(
			intInterval{ms[i[k]][0], ms[i[k]][1]},
			intInterval{ms[j[k]][0], ms[j[k]][1]})
		if intv.a >= intv.b {
			return 0.0
		}
		gsta[k] = m.nqp * intv.a
		gend := m.nqp * intv.b
		vi[k] = m.ax[k].tab.SubRange(i[k], gsta[k], gend)
		vj[k] = m.ax[k].tab.SubRange(j[k], gsta[k], gend)
	}
	var (
		stride1 = m.ax[2].nqpTot
		stride0 = m.ax[1].nqpTot * stride1
	)
	for i0 := range vi[0] {
		for i1 := range vi[1] {
			wrow := m.weights[(gsta[0]+i0)*stride0+(gsta[1]+i1)*stride1+gsta[2]:]
			v01u := vi[0][i0] * vi[1][i1]
			v01v := vj[0][i0] * vj[1][i1]
			for i2 := range vi[2] {
				vu := v01u * vi[2][i2]
				vv := v01v * vj[2][i2]
				entry += vu * vv * wrow[i2]
			}
		}
	}
	return
}
