package assemble

// Evaluator2D computes one matrix entry for a pair of 2D tensor-product
// basis functions identified by their per-axis multi-indices. Implementations
// are immutable after construction and safe for concurrent use; SharedClone
// is the escape hatch for variants carrying per-call scratch state and
// returns the receiver itself for the stateless evaluators here.
type Evaluator2D interface {
	Ndofs() [2]int
	Degrees() [2]int
	MeshSupports() [2][][2]int
	EntryAt(i, j [2]int) float64
	SharedClone() Evaluator2D
}

type Evaluator3D interface {
	Ndofs() [3]int
	Degrees() [3]int
	MeshSupports() [3][][2]int
	EntryAt(i, j [3]int) float64
	SharedClone() Evaluator3D
}
