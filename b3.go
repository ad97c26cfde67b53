// Package b3 implements the BLAKE3 cryptographic hash function.
//
// The implementation is scalar and sequential: input is split into 1024-byte
// chunks, each chunk is compressed one 64-byte block at a time, and the
// chaining values of completed chunks are merged into a binary Merkle tree as
// they arrive. Any amount of output may be requested from the root of the
// tree; shorter outputs are always prefixes of longer ones.
package b3 // import "lukechampine.com/b3"

import "hash"

// Various constants.
const (
	// OutLen is the default output length, in bytes.
	OutLen = 32
	// KeyLen is the length of a key for keyed hashing.
	KeyLen = 32
	// BlockLen is the number of bytes processed by one compression.
	BlockLen = 64
	// ChunkLen is the number of bytes in each leaf of the Merkle tree.
	ChunkLen = 1024
)

// A Flag tags a compression with the role of the node being compressed.
type Flag uint32

// Node flags.
const (
	FlagChunkStart Flag = 1 << iota
	FlagChunkEnd
	FlagParent
	FlagRoot
	FlagKeyedHash
	FlagDeriveKeyContext
	FlagDeriveKeyMaterial
)

// A Hasher incrementally computes a BLAKE3 hash. The zero value is not usable;
// construct Hashers with New, NewKeyed, or NewDeriveKey.
//
// A Hasher is not safe for concurrent use; distinct Hashers share no state.
type Hasher struct {
	chunk chunkState
	key   [8]uint32
	stack cvStack
	flags Flag
}

func newHasher(key [8]uint32, flags Flag) *Hasher {
	return &Hasher{
		chunk: newChunkState(&key, 0, flags),
		key:   key,
		flags: flags,
	}
}

// New returns a Hasher for the default (unkeyed) hash function.
func New() *Hasher {
	return newHasher(iv, 0)
}

// NewKeyed returns a Hasher for the keyed hash function. key must be exactly
// KeyLen bytes; otherwise, a *KeyLengthError is returned.
func NewKeyed(key []byte) (*Hasher, error) {
	if len(key) != KeyLen {
		return nil, &KeyLengthError{Expected: KeyLen, Actual: len(key)}
	}
	var k [KeyLen]byte
	copy(k[:], key)
	return newHasher(keyWords(&k), FlagKeyedHash), nil
}

// NewDeriveKey returns a Hasher for the key derivation function. The context
// string should be hardcoded, globally unique, and application-specific, e.g.
//
//	example.com 2019-12-25 16:18:03 session tokens v1
//
// Key material is then supplied via Update, and the derived key is read with
// Finalize.
func NewDeriveKey(context string) *Hasher {
	ch := newHasher(iv, FlagDeriveKeyContext)
	ch.Update([]byte(context))
	var contextKey [KeyLen]byte
	ch.Finalize(contextKey[:])
	return newHasher(keyWords(&contextKey), FlagDeriveKeyMaterial)
}

// Update adds p to the hash state. It never fails.
func (h *Hasher) Update(p []byte) {
	for len(p) > 0 {
		// the current chunk is only finished once more input shows up, so that
		// the final chunk of the input is never merged into the stack
		if h.chunk.len() == ChunkLen {
			cv := h.chunk.output()
			totalChunks := h.chunk.counter + 1
			h.stack.addChunkChainingValue(cv.chainingValue(), totalChunks, &h.key, h.flags)
			h.chunk = newChunkState(&h.key, totalChunks, h.flags)
		}
		n := ChunkLen - h.chunk.len()
		if n > len(p) {
			n = len(p)
		}
		h.chunk.update(p[:n])
		p = p[n:]
	}
}

// rootNode computes the root of the Merkle tree. It does not modify the
// Hasher.
func (h *Hasher) rootNode() output {
	return h.stack.root(h.chunk.output(), &h.key, h.flags)
}

// Finalize fills out with hash output. It does not modify the Hasher, so
// Finalize may be called any number of times, with any output length, and
// interleaved with calls to Update.
func (h *Hasher) Finalize(out []byte) {
	root := h.rootNode()
	root.rootBytes(out)
}

// XOF returns an OutputReader initialized with the current hash state.
func (h *Hasher) XOF() *OutputReader {
	return &OutputReader{root: h.rootNode()}
}

// Write implements io.Writer; it calls Update and never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	h.Update(p)
	return len(p), nil
}

// Sum implements hash.Hash, appending OutLen bytes of output to b.
func (h *Hasher) Sum(b []byte) []byte {
	var out [OutLen]byte
	h.Finalize(out[:])
	return append(b, out[:]...)
}

// Reset implements hash.Hash. The Hasher keeps its key and mode.
func (h *Hasher) Reset() {
	h.chunk = newChunkState(&h.key, 0, h.flags)
	h.stack.reset()
}

// Size implements hash.Hash.
func (h *Hasher) Size() int { return OutLen }

// BlockSize implements hash.Hash.
func (h *Hasher) BlockSize() int { return BlockLen }

// ensure that Hasher implements hash.Hash
var _ hash.Hash = (*Hasher)(nil)

// Sum256 returns the unkeyed BLAKE3 hash of b.
func Sum256(b []byte) (out [OutLen]byte) {
	h := New()
	h.Update(b)
	h.Finalize(out[:])
	return
}

// SumKeyed returns the keyed BLAKE3 hash of b.
func SumKeyed(key, b []byte) (out [OutLen]byte, err error) {
	h, err := NewKeyed(key)
	if err != nil {
		return out, err
	}
	h.Update(b)
	h.Finalize(out[:])
	return out, nil
}

// DeriveKey fills subKey with key material derived from context and
// material. See NewDeriveKey for guidance on choosing context strings.
func DeriveKey(subKey []byte, context string, material []byte) {
	h := NewDeriveKey(context)
	h.Update(material)
	h.Finalize(subKey)
}
