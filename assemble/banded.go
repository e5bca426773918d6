package assemble

import (
	"github.com/gdrealm/goiga/sparsity"
	"github.com/gdrealm/goiga/utils"
)

// upperTriangle reports whether the concatenated per-axis diagonal-offset
// tuple addresses a strictly upper-triangular combination under the
// lexicographic ordering: the first nonzero offset is positive. Shared by
// the 2D and 3D assemblers; combinations for which it returns true are
// skipped and recovered as mirrors of their lower-triangle partners.
func upperTriangle(offsets ...int) bool {
	for _, d := range offsets {
		if d != 0 {
			return d > 0
		}
	}
	return false
}

// AssembleBanded2D fills the dense banded-entry array for the outer product
// of the per-axis banded pair sets: slot mu0*MU1+mu1 holds the entry for
// the dof pair (rows0[mu0],rows1[mu1]) x (cols0[mu0],cols1[mu1]). With
// symmetric set, strictly upper-triangular combinations are skipped and
// their slots filled by mirroring the transposed lower-triangle entry
// through the per-axis transpose permutations; the result is identical to
// the full enumeration. The outermost pair range is split across workers.
func AssembleBanded2D(ev Evaluator2D, bidx [2]sparsity.BandedPairs,
	symmetric bool, ProcLimit int) (entries []float64) {
	var (
		MU0, MU1 = bidx[0].Len(), bidx[1].Len()
		transp   [2][]int
	)
	if symmetric {
		for k := range bidx {
			transp[k] = bidx[k].Transpose()
		}
	}
	entries = make([]float64, MU0*MU1)
	NP := utils.ResolveParallelDegree(ProcLimit, MU0)
	if NP <= 1 {
		bandedChunk2D(ev, bidx, transp, symmetric, entries, 0, MU0)
		return
	}
	pm := utils.NewPartitionMap(NP, MU0)
	forkJoin(pm, func(np, kMin, kMax int) {
		bandedChunk2D(ev.SharedClone(), bidx, transp, symmetric, entries, kMin, kMax)
	})
	return
}

// bandedChunk2D enumerates the outer-axis pair range [mu0Min,mu0Max). All
// writes from one chunk land either in the chunk's own mu0 rows or, via the
// mirror write, in rows whose direct computation is skipped by the
// upper-triangle rule, so chunks never write the same slot.
func bandedChunk2D(ev Evaluator2D, bidx [2]sparsity.BandedPairs, transp [2][]int,
	symmetric bool, entries []float64, mu0Min, mu0Max int) {
	var (
		MU1  = bidx[1].Len()
		i, j [2]int
	)
	for mu0 := mu0Min; mu0 < mu0Max; mu0++ {
		i[0], j[0] = bidx[0].Rows[mu0], bidx[0].Cols[mu0]
		diag0 := j[0] - i[0]
		if symmetric && upperTriangle(diag0) {
			continue
		}
		for mu1 := 0; mu1 < MU1; mu1++ {
			i[1], j[1] = bidx[1].Rows[mu1], bidx[1].Cols[mu1]
			diag1 := j[1] - i[1]
			if symmetric && upperTriangle(diag0, diag1) {
				continue
			}
			entry := ev.EntryAt(i, j)
			entries[mu0*MU1+mu1] = entry
			if symmetric && (diag0 != 0 || diag1 != 0) {
				entries[transp[0][mu0]*MU1+transp[1][mu1]] = entry
			}
		}
	}
}

// AssembleBanded3D is the 3D counterpart of AssembleBanded2D; the dense
// output is row-major over (MU0, MU1, MU2).
func AssembleBanded3D(ev Evaluator3D, bidx [3]sparsity.BandedPairs,
	symmetric bool, ProcLimit int) (entries []float64) {
	var (
		MU0    = bidx[0].Len()
		MU1    = bidx[1].Len()
		MU2    = bidx[2].Len()
		transp [3][]int
	)
	if symmetric {
		for k := range bidx {
			transp[k] = bidx[k].Transpose()
		}
	}
	entries = make([]float64, MU0*MU1*MU2)
	NP := utils.ResolveParallelDegree(ProcLimit, MU0)
	if NP <= 1 {
		bandedChunk3D(ev, bidx, transp, symmetric, entries, 0, MU0)
		return
	}
	pm := utils.NewPartitionMap(NP, MU0)
	forkJoin(pm, func(np, kMin, kMax int) {
		bandedChunk3D(ev.SharedClone(), bidx, transp, symmetric, entries, kMin, kMax)
	})
	return
}

func bandedChunk3D(ev Evaluator3D, bidx [3]sparsity.BandedPairs, transp [3][]int,
	symmetric bool, entries []float64, mu0Min, mu0Max int) {
	var (
		MU1  = bidx[1].Len()
		MU2  = bidx[2].Len()
		i, j [3]int
	)
	for mu0 := mu0Min; mu0 < mu0Max; mu0++ {
		i[0], j[0] = bidx[0].Rows[mu0], bidx[0].Cols[mu0]
		diag0 := j[0] - i[0]
		if symmetric && upperTriangle(diag0) {
			continue
		}
		for mu1 := 0; mu1 < MU1; mu1++ {
			i[1], j[1] = bidx[1].Rows[mu1], bidx[1].Cols[mu1]
			diag1 := j[1] - i[1]
			if symmetric && upperTriangle(diag0, diag1) {
				continue
			}
			for mu2 := 0; mu2 < MU2; mu2++ {
				i[2], j[2] = bidx[2].Rows[mu2], bidx[2].Cols[mu2]
				diag2 := j[2] - i[2]
				if symmetric && upperTriangle(diag0, diag1, diag2) {
					continue
				}
				entry := ev.EntryAt(i, j)
				entries[(mu0*MU1+mu1)*MU2+mu2] = entry
				if symmetric && (diag0 != 0 || diag1 != 0 || diag2 != 0) {
					entries[(transp[0][mu0]*MU1+transp[1][mu1])*MU2+transp[2][mu2]] = entry
				}
			}
		}
	}
}
