package assemble

// Row-major linearization of multi-indices, axis 0 slowest. No bounds
// checking at this layer; callers guarantee validity.

func ToSeq2(ii, ndofs [2]int) int {
	return ii[0]*ndofs[1] + ii[1]
}

func FromSeq2(s int, ndofs [2]int) (ii [2]int) {
	ii[1] = s % ndofs[1]
	ii[0] = s / ndofs[1]
	return
}

func ToSeq3(ii, ndofs [3]int) int {
	return (ii[0]*ndofs[1]+ii[1])*ndofs[2] + ii[2]
}

func FromSeq3(s int, ndofs [3]int) (ii [3]int) {
	ii[2] = s % ndofs[2]
	s /= ndofs[2]
	ii[1] = s % ndofs[1]
	ii[0] = s / ndofs[1]
	return
}

// nextLexicographic2 advances ii to the next tuple of the box
// [start[k],end[k]) in lexicographic order, wrapping lower axes first.
// Returns false once ii has wrapped past the last tuple.
func nextLexicographic2(ii *[2]int, start, end [2]int) bool {
	for k := 1; k >= 0; k-- {
		ii[k]++
		if ii[k] < end[k] {
			return true
		}
		ii[k] = start[k]
	}
	return false
}

func nextLexicographic3(ii *[3]int, start, end [3]int) bool {
	for k := 2; k >= 0; k-- {
		ii[k]++
		if ii[k] < end[k] {
			return true
		}
		ii[k] = start[k]
	}
	return false
}
