package b3

import "math/bits"

// A cvStack holds the chaining values of completed subtrees that have not yet
// been merged, at most one per height. If a chaining value is added at a
// height already containing one, the two are merged into the next height, and
// so on until an open height is reached.
//
// The stack compresses the left edge of the tree to O(log2(n)) space at the
// cost of only being able to append chunks to the end.
type cvStack struct {
	// NOTE: 54 heights cover 2^54 chunks, i.e. 2^64 bytes of input, so we
	// don't need to worry about running out.
	cvs [54][8]uint32
	// number of chunks added; bit i is set iff height i is occupied
	n uint64
}

// addChunkChainingValue adds the chaining value of a completed chunk.
// totalChunks is the number of chunks completed so far, including this one;
// every trailing zero bit in totalChunks is a completed subtree that must be
// merged with its left sibling.
func (s *cvStack) addChunkChainingValue(cv [8]uint32, totalChunks uint64, key *[8]uint32, flags Flag) {
	if totalChunks != s.n+1 {
		panic("addChunkChainingValue: chunks added out of order")
	}
	i := 0
	for ; totalChunks&1 == 0; totalChunks >>= 1 {
		cv = parentCV(s.cvs[i], cv, key, flags)
		i++
	}
	s.cvs[i] = cv
	s.n++
}

// root folds the stack against the output of the final chunk, returning the
// root node of the tree. It does not modify the stack.
func (s *cvStack) root(last output, key *[8]uint32, flags Flag) output {
	o := last
	for i := bits.TrailingZeros64(s.n); i < bits.Len64(s.n); i++ {
		if s.n&(1<<uint(i)) != 0 {
			o = parentOutput(s.cvs[i], o.chainingValue(), key, flags)
		}
	}
	return o
}

// len returns the number of occupied heights.
func (s *cvStack) len() int {
	return bits.OnesCount64(s.n)
}

// reset clears the stack.
func (s *cvStack) reset() {
	s.n = 0
}
