package assemble

import (
	"sync"

	"github.com/gdrealm/goiga/utils"
)

// forkJoin runs one worker goroutine per partition and blocks until all
// have finished. A panicking worker does not take down the others: every
// worker is joined first, then the first captured panic is re-raised in the
// caller so a failed assembly call never returns partial results.
func forkJoin(pm *utils.PartitionMap, work func(np, kMin, kMax int)) {
	var (
		wg     = sync.WaitGroup{}
		panics = make([]any, pm.ParallelDegree)
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			defer func() {
				panics[np] = recover()
			}()
			kMin, kMax := pm.GetBucketRange(np)
			work(np, kMin, kMax)
		}(np)
	}
	wg.Wait()
	for _, r := range panics {
		if r != nil {
			panic(r)
		}
	}
}
