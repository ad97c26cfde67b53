package b3

import (
	"encoding/binary"
	"math/bits"
)

// iv is the BLAKE3 initialization vector; it is also the key for unkeyed
// hashing.
var iv = [8]uint32{
	0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A,
	0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19,
}

// msgPermutation is applied to the message words between rounds.
var msgPermutation = [16]int{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8}

func g(state *[16]uint32, a, b, c, d int, mx, my uint32) {
	state[a] += state[b] + mx
	state[d] = bits.RotateLeft32(state[d]^state[a], -16)
	state[c] += state[d]
	state[b] = bits.RotateLeft32(state[b]^state[c], -12)
	state[a] += state[b] + my
	state[d] = bits.RotateLeft32(state[d]^state[a], -8)
	state[c] += state[d]
	state[b] = bits.RotateLeft32(state[b]^state[c], -7)
}

func round(state *[16]uint32, m *[16]uint32) {
	// columns
	g(state, 0, 4, 8, 12, m[0], m[1])
	g(state, 1, 5, 9, 13, m[2], m[3])
	g(state, 2, 6, 10, 14, m[4], m[5])
	g(state, 3, 7, 11, 15, m[6], m[7])
	// diagonals
	g(state, 0, 5, 10, 15, m[8], m[9])
	g(state, 1, 6, 11, 12, m[10], m[11])
	g(state, 2, 7, 8, 13, m[12], m[13])
	g(state, 3, 4, 9, 14, m[14], m[15])
}

func permute(m *[16]uint32) {
	var permuted [16]uint32
	for i := range permuted {
		permuted[i] = m[msgPermutation[i]]
	}
	*m = permuted
}

// compress runs the BLAKE3 compression function over a single block. The
// first 8 words of the result are the new chaining value; all 16 words are
// used when producing root output.
func compress(cv *[8]uint32, block *[16]uint32, counter uint64, blockLen uint32, flags Flag) [16]uint32 {
	state := [16]uint32{
		cv[0], cv[1], cv[2], cv[3],
		cv[4], cv[5], cv[6], cv[7],
		iv[0], iv[1], iv[2], iv[3],
		uint32(counter), uint32(counter >> 32), blockLen, uint32(flags),
	}
	m := *block
	for r := 0; r < 7; r++ {
		round(&state, &m)
		if r < 6 {
			permute(&m)
		}
	}
	for i := 0; i < 8; i++ {
		state[i] ^= state[i+8]
		state[i+8] ^= cv[i]
	}
	return state
}

func first8Words(words [16]uint32) (out [8]uint32) {
	copy(out[:], words[:8])
	return
}

// wordsFromBlock interprets a full block as 16 little-endian words. Callers
// keep the unused tail of a partial block zeroed, so a trailing partial word
// picks up zeros in its high bytes.
func wordsFromBlock(block *[BlockLen]byte) (words [16]uint32) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(block[4*i:])
	}
	return
}

func keyWords(key *[KeyLen]byte) (words [8]uint32) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	return
}
