package b3

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// An output describes a node of the Merkle tree that has not yet been
// compressed. Interior nodes are collapsed with chainingValue; only the root
// node, as produced by (*Hasher).rootNode, may be expanded with rootBytes.
type output struct {
	cv       [8]uint32
	block    [16]uint32
	counter  uint64
	blockLen uint32
	flags    Flag
}

func (o *output) chainingValue() [8]uint32 {
	return first8Words(compress(&o.cv, &o.block, o.counter, o.blockLen, o.flags))
}

// rootBlock returns the 64-byte output block at the given position in the
// root output stream.
func (o *output) rootBlock(buf *[BlockLen]byte, blockCounter uint64) {
	words := compress(&o.cv, &o.block, blockCounter, o.blockLen, o.flags|FlagRoot)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
}

// rootBytes fills out with the root output stream, starting at offset 0.
func (o *output) rootBytes(out []byte) {
	var buf [BlockLen]byte
	for blockCounter := uint64(0); len(out) > 0; blockCounter++ {
		o.rootBlock(&buf, blockCounter)
		n := copy(out, buf[:])
		out = out[n:]
	}
}

func parentOutput(left, right [8]uint32, key *[8]uint32, flags Flag) output {
	o := output{
		cv:       *key,
		counter:  0,        // counter is always zero for parents
		blockLen: BlockLen, // block is always full
		flags:    flags | FlagParent,
	}
	copy(o.block[:8], left[:])
	copy(o.block[8:], right[:])
	return o
}

func parentCV(left, right [8]uint32, key *[8]uint32, flags Flag) [8]uint32 {
	o := parentOutput(left, right, key, flags)
	return o.chainingValue()
}

// An OutputReader produces a seekable stream of 2^64 - 1 output bytes from
// the root of a BLAKE3 tree.
type OutputReader struct {
	root output
	buf  [BlockLen]byte
	off  uint64
}

// Read implements io.Reader. Callers may assume that Read returns len(p), nil
// unless the read would extend beyond the end of the stream.
func (or *OutputReader) Read(p []byte) (int, error) {
	if or.off == math.MaxUint64 {
		return 0, io.EOF
	} else if rem := math.MaxUint64 - or.off; uint64(len(p)) > rem {
		p = p[:rem]
	}
	lenp := len(p)
	for len(p) > 0 {
		if or.off%BlockLen == 0 {
			or.root.rootBlock(&or.buf, or.off/BlockLen)
		}
		n := copy(p, or.buf[or.off%BlockLen:])
		p = p[n:]
		or.off += uint64(n)
	}
	return lenp, nil
}

// Seek implements io.Seeker. io.SeekEnd is not supported.
func (or *OutputReader) Seek(offset int64, whence int) (int64, error) {
	off := or.off
	switch whence {
	case io.SeekStart:
		if offset < 0 {
			return 0, errors.New("seek position cannot be negative")
		}
		off = uint64(offset)
	case io.SeekCurrent:
		if offset < 0 {
			if uint64(-offset) > off {
				return 0, errors.New("seek position cannot be negative")
			}
			off -= uint64(-offset)
		} else {
			off += uint64(offset)
		}
	default:
		return 0, errors.New("invalid whence")
	}
	or.off = off
	if or.off%BlockLen != 0 {
		or.root.rootBlock(&or.buf, or.off/BlockLen)
	}
	// NOTE: offsets >= 2^63 produce a negative return value
	return int64(or.off), nil
}
