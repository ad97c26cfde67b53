package b3

// A chunkState accumulates up to ChunkLen bytes of input, compressing each
// block once it is known not to be the last block of the chunk.
type chunkState struct {
	cv               [8]uint32
	counter          uint64 // index of this chunk within the input
	block            [BlockLen]byte
	blockLen         int
	blocksCompressed int
	flags            Flag
}

func newChunkState(key *[8]uint32, counter uint64, flags Flag) chunkState {
	return chunkState{
		cv:      *key,
		counter: counter,
		flags:   flags,
	}
}

// len returns the number of input bytes accepted by the chunk so far.
func (c *chunkState) len() int {
	return BlockLen*c.blocksCompressed + c.blockLen
}

func (c *chunkState) startFlag() Flag {
	if c.blocksCompressed == 0 {
		return FlagChunkStart
	}
	return 0
}

// update appends p to the chunk. The caller must not exceed ChunkLen.
func (c *chunkState) update(p []byte) {
	for len(p) > 0 {
		// a full block is only compressed once more input shows up; the final
		// block of the chunk needs FlagChunkEnd, which only output can add
		if c.blockLen == BlockLen {
			words := wordsFromBlock(&c.block)
			c.cv = first8Words(compress(&c.cv, &words, c.counter, BlockLen, c.flags|c.startFlag()))
			c.blocksCompressed++
			c.block = [BlockLen]byte{}
			c.blockLen = 0
		}
		n := copy(c.block[c.blockLen:], p)
		c.blockLen += n
		p = p[n:]
	}
}

// output returns the node for this chunk. It does not modify the chunk.
func (c *chunkState) output() output {
	return output{
		cv:       c.cv,
		block:    wordsFromBlock(&c.block),
		counter:  c.counter,
		blockLen: uint32(c.blockLen),
		flags:    c.flags | c.startFlag() | FlagChunkEnd,
	}
}
