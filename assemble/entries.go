package assemble

import "github.com/gdrealm/goiga/utils"

// Entry2D computes the single matrix entry for a pair of flat dof indices.
func Entry2D(ev Evaluator2D, i, j int) float64 {
	nd := ev.Ndofs()
	return ev.EntryAt(FromSeq2(i, nd), FromSeq2(j, nd))
}

func Entry3D(ev Evaluator3D, i, j int) float64 {
	nd := ev.Ndofs()
	return ev.EntryAt(FromSeq3(i, nd), FromSeq3(j, nd))
}

func multiEntriesChunk2D(ev Evaluator2D, pairs [][2]int, out []float64) {
	nd := ev.Ndofs()
	for k, pair := range pairs {
		out[k] = ev.EntryAt(FromSeq2(pair[0], nd), FromSeq2(pair[1], nd))
	}
}

func multiEntriesChunk3D(ev Evaluator3D, pairs [][2]int, out []float64) {
	nd := ev.Ndofs()
	for k, pair := range pairs {
		out[k] = ev.EntryAt(FromSeq3(pair[0], nd), FromSeq3(pair[1], nd))
	}
}

// MultiEntries2D computes the entries for an arbitrary list of flat (i,j)
// index pairs, preserving input order. The list is split into contiguous
// near-equal chunks, one worker per chunk; a ProcLimit of 0 means all
// available cores and a workload smaller than the worker count runs
// single-threaded.
func MultiEntries2D(ev Evaluator2D, pairs [][2]int, ProcLimit int) (result []float64) {
	result = make([]float64, len(pairs))
	NP := utils.ResolveParallelDegree(ProcLimit, len(pairs))
	if NP <= 1 {
		multiEntriesChunk2D(ev, pairs, result)
		return
	}
	pm := utils.NewPartitionMap(NP, len(pairs))
	forkJoin(pm, func(np, kMin, kMax int) {
		multiEntriesChunk2D(ev.SharedClone(), pairs[kMin:kMax], result[kMin:kMax])
	})
	return
}

func MultiEntries3D(ev Evaluator3D, pairs [][2]int, ProcLimit int) (result []float64) {
	result = make([]float64, len(pairs))
	NP := utils.ResolveParallelDegree(ProcLimit, len(pairs))
	if NP <= 1 {
		multiEntriesChunk3D(ev, pairs, result)
		return
	}
	pm := utils.NewPartitionMap(NP, len(pairs))
	forkJoin(pm, func(np, kMin, kMax int) {
		multiEntriesChunk3D(ev.SharedClone(), pairs[kMin:kMax], result[kMin:kMax])
	})
	return
}
