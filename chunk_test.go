package b3

import (
	"testing"

	"lukechampine.com/frand"
)

func TestChunkState(t *testing.T) {
	key := iv
	c := newChunkState(&key, 7, FlagKeyedHash)
	if c.len() != 0 {
		t.Fatal("new chunk should be empty")
	}
	if o := c.output(); o.flags != FlagKeyedHash|FlagChunkStart|FlagChunkEnd || o.blockLen != 0 || o.counter != 7 {
		t.Error("wrong output for empty chunk:", o)
	}

	// a full block is not compressed until more input arrives
	c.update(frand.Bytes(BlockLen))
	if c.len() != BlockLen || c.blocksCompressed != 0 || c.cv != key {
		t.Error("full final block was compressed eagerly")
	}
	if o := c.output(); o.flags&FlagChunkStart == 0 || o.blockLen != BlockLen {
		t.Error("single-block chunk should be both start and end")
	}
	c.update([]byte{1})
	if c.len() != BlockLen+1 || c.blocksCompressed != 1 || c.cv == key {
		t.Error("block was not compressed when more input arrived")
	}
	if o := c.output(); o.flags != FlagKeyedHash|FlagChunkEnd || o.blockLen != 1 {
		t.Error("later blocks should not carry FlagChunkStart:", o)
	}

	// fill to the end of the chunk
	c.update(frand.Bytes(ChunkLen - c.len()))
	if c.len() != ChunkLen || c.blocksCompressed != 15 || c.blockLen != BlockLen {
		t.Error("wrong state for full chunk:", c.len(), c.blocksCompressed, c.blockLen)
	}
}

func TestChunkSplitUpdates(t *testing.T) {
	key := iv
	data := frand.Bytes(ChunkLen)
	whole := newChunkState(&key, 0, 0)
	whole.update(data)
	for _, split := range []int{0, 1, 63, 64, 65, 512, 1023} {
		c := newChunkState(&key, 0, 0)
		c.update(data[:split])
		c.update(data[split:])
		if c.output() != whole.output() {
			t.Errorf("chunk split at %v does not match whole chunk", split)
		}
	}
}
