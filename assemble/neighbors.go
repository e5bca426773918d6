package assemble

import (
	"github.com/james-bowman/sparse"

	"github.com/gdrealm/goiga/sparsity"
	"github.com/gdrealm/goiga/utils"
)

// AssembleCSR2D assembles the sparse matrix by walking every row dof,
// enumerating only its support neighbors, and evaluating the lower triangle
// once: entries with jj >= ii are computed and emitted together with their
// (jj,ii) mirror. Worker chunks split the axis-0 dof range; their triplet
// buffers are concatenated in worker order so the result does not depend on
// scheduling.
func AssembleCSR2D(ev Evaluator2D, ProcLimit int) *sparse.CSR {
	var (
		nd   = ev.Ndofs()
		N    = nd[0] * nd[1]
		supp = ev.MeshSupports()
	)
	NP := utils.ResolveParallelDegree(ProcLimit, nd[0])
	if NP <= 1 {
		b := sparsity.NewCOOBuilder(N, N)
		neighborChunk2D(ev, supp, 0, nd[0], b)
		return b.ToCSR()
	}
	var (
		pm   = utils.NewPartitionMap(NP, nd[0])
		bufs = make([]*sparsity.COOBuilder, NP)
	)
	forkJoin(pm, func(np, kMin, kMax int) {
		bufs[np] = sparsity.NewCOOBuilder(N, N)
		neighborChunk2D(ev.SharedClone(), supp, kMin, kMax, bufs[np])
	})
	all := sparsity.NewCOOBuilder(N, N)
	for _, b := range bufs {
		all.Append(b)
	}
	return all.ToCSR()
}

func neighborChunk2D(ev Evaluator2D, supp [2][][2]int, row0Min, row0Max int,
	out *sparsity.COOBuilder) {
	var (
		nd    = ev.Ndofs()
		start = [2]int{row0Min, 0}
		end   = [2]int{row0Max, nd[1]}
		i     = start
	)
	for {
		ii := ToSeq2(i, nd)
		var jStart, jEnd [2]int
		for k := 0; k < 2; k++ {
			intv := findJointSupportFunctions(supp[k], i[k])
			jStart[k], jEnd[k] = intv.a, intv.b
		}
		j := jStart
		for {
			jj := ToSeq2(j, nd)
			if jj >= ii {
				entry := ev.EntryAt(i, j)
				out.Add(ii, jj, entry)
				if ii != jj {
					out.Add(jj, ii, entry)
				}
			}
			if !nextLexicographic2(&j, jStart, jEnd) {
				break
			}
		}
		if !nextLexicographic2(&i, start, end) {
			break
		}
	}
}

// AssembleCSR3D is the 3D counterpart of AssembleCSR2D.
func AssembleCSR3D(ev Evaluator3D, ProcLimit int) *sparse.CSR {
	var (
		nd   = ev.Ndofs()
		N    = nd[0] * nd[1] * nd[2]
		supp = ev.MeshSupports()
	)
	NP := utils.ResolveParallelDegree(ProcLimit, nd[0])
	if NP <= 1 {
		b := sparsity.NewCOOBuilder(N, N)
		neighborChunk3D(ev, supp, 0, nd[0], b)
		return b.ToCSR()
	}
	var (
		pm   = utils.NewPartitionMap(NP, nd[0])
		bufs = make([]*sparsity.COOBuilder, NP)
	)
	forkJoin(pm, func(np, kMin, kMax int) {
		bufs[np] = sparsity.NewCOOBuilder(N, N)
		neighborChunk3D(ev.SharedClone(), supp, kMin, kMax, bufs[np])
	})
	all := sparsity.NewCOOBuilder(N, N)
	for _, b := range bufs {
		all.Append(b)
	}
	return all.ToCSR()
}

func neighborChunk3D(ev Evaluator3D, supp [3][][2]int, row0Min, row0Max int,
	out *sparsity.COOBuilder) {
	var (
		nd    = ev.Ndofs()
		start = [3]int{row0Min, 0, 0}
		end   = [3]int{row0Max, nd[1], nd[2]}
		i     = start
	)
	for {
		ii := ToSeq3(i, nd)
		var jStart, jEnd [3]int
		for k := 0; k < 3; k++ {
			intv := findJointSupportFunctions(supp[k], i[k])
			jStart[k], jEnd[k] = intv.a, intv.b
		}
		j := jStart
		for {
			jj := ToSeq3(j, nd)
			if jj >= ii {
				entry := ev.EntryAt(i, j)
				out.Add(ii, jj, entry)
				if ii != jj {
					out.Add(jj, ii, entry)
				}
			}
			if !nextLexicographic3(&j, jStart, jEnd) {
				break
			}
		}
		if !nextLexicographic3(&i, start, end) {
			break
		}
	}
}
