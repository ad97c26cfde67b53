package b3

import (
	"encoding/binary"
	"encoding/hex"
	"testing"
)

func TestPermutation(t *testing.T) {
	var seen [16]bool
	for _, p := range msgPermutation {
		if seen[p] {
			t.Fatal("msgPermutation is not a permutation")
		}
		seen[p] = true
	}

	m := [16]uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	permute(&m)
	if m != [16]uint32{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8} {
		t.Error("wrong permutation:", m)
	}
}

func TestG(t *testing.T) {
	// with all-zero state and message, only the message words can introduce
	// nonzero bits
	var state [16]uint32
	g(&state, 0, 4, 8, 12, 0, 0)
	if state != ([16]uint32{}) {
		t.Error("g of zero state and message should be zero")
	}

	// a = 1; d = rotr(1, 16) = 1<<16; c = 1<<16; b = rotr(1<<16, 12) = 1<<4;
	// a = 1 + (1<<4) = 17; d = rotr(17 ^ 1<<16, 8); ...
	g(&state, 0, 4, 8, 12, 1, 0)
	a := uint32(17)
	d := rotr(uint32(1<<16)^a, 8)
	c := uint32(1<<16) + d
	b := rotr(uint32(1<<4)^c, 7)
	if state[0] != a || state[12] != d || state[8] != c || state[4] != b {
		t.Errorf("wrong g output: %x", state)
	}
}

func rotr(x uint32, n uint) uint32 {
	return x>>n | x<<(32-n)
}

func TestCompress(t *testing.T) {
	// a single-block input is the root node of its own tree
	var block [BlockLen]byte
	copy(block[:], "abc")
	words := wordsFromBlock(&block)
	out := compress(&iv, &words, 0, 3, FlagChunkStart|FlagChunkEnd|FlagRoot)
	var sum [OutLen]byte
	for i, w := range out[:8] {
		binary.LittleEndian.PutUint32(sum[4*i:], w)
	}
	if hex.EncodeToString(sum[:]) != "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85" {
		t.Errorf("wrong compression of \"abc\": %x", sum)
	}

	// compress is a pure function
	if compress(&iv, &words, 0, 3, 0) != compress(&iv, &words, 0, 3, 0) {
		t.Error("compress is not deterministic")
	}
	// the high half of the counter is used
	if compress(&iv, &words, 1, 3, 0) == compress(&iv, &words, 1|1<<32, 3, 0) {
		t.Error("compress ignored the high half of the counter")
	}
}

func TestWordsFromBlock(t *testing.T) {
	var block [BlockLen]byte
	copy(block[:], []byte{1, 2, 3, 4, 5, 6, 7})
	words := wordsFromBlock(&block)
	if words[0] != 0x04030201 || words[1] != 0x00070605 {
		t.Errorf("wrong little-endian words: %x %x", words[0], words[1])
	}
	for _, w := range words[2:] {
		if w != 0 {
			t.Fatal("expected trailing words to be zero")
		}
	}
}

func BenchmarkCompress(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(BlockLen)
	var words [16]uint32
	cv := iv
	for i := 0; i < b.N; i++ {
		cv = first8Words(compress(&cv, &words, uint64(i), BlockLen, 0))
	}
}
