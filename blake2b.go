package argon2

import (
	"hash"

	"github.com/dchest/blake2b"
)

// blake2bSum returns the size-byte Blake2b digest of in, keyed by key if
// key is non-empty.
func blake2bSum(in, key []byte, size int) ([]byte, error) {
	h, err := newKeyedBlake2b(size, key)
	if err != nil {
		return nil, err
	}
	h.Write(in)
	return h.Sum(nil), nil
}

// newKeyedBlake2b returns a Blake2b hash with a size-byte digest.
// An empty key gives the unkeyed hash.
func newKeyedBlake2b(size int, key []byte) (hash.Hash, error) {
	if size < 1 || size > blake2b.Size {
		return nil, ErrInvalidOutputLength
	}
	return blake2b.New(&blake2b.Config{Size: uint8(size), Key: key})
}

// blake2bLong is the variable-length hash H' from the Argon2 paper.
// It fills out with a hash of len(out) and in.
func blake2bLong(out, in []byte) {
	var n [4]byte
	put32(n[:], uint32(len(out)))

	if len(out) <= blake2b.Size {
		h := newBlake2b(len(out))
		h.Write(n[:])
		h.Write(in)
		h.Sum(out[:0])
		return
	}

	// V1 = H(LE32(T) || in), then Vi = H(Vi-1).
	// The first 32 bytes of every V are emitted except the last,
	// which is emitted whole and is only as long as needed.
	var buf [blake2b.Size]byte
	h := newBlake2b(blake2b.Size)
	h.Write(n[:])
	h.Write(in)
	h.Sum(buf[:0])
	copy(out, buf[:32])
	for out = out[32:]; len(out) > blake2b.Size; out = out[32:] {
		h.Reset()
		h.Write(buf[:])
		h.Sum(buf[:0])
		copy(out, buf[:32])
	}
	h = newBlake2b(len(out))
	h.Write(buf[:])
	h.Sum(out[:0])

	for i := range buf {
		buf[i] = 0
	}
}

// newBlake2b returns an unkeyed Blake2b hash with a size-byte digest.
// size must be between 1 and 64.
func newBlake2b(size int) hash.Hash {
	h, err := newKeyedBlake2b(size, nil)
	if err != nil {
		panic("argon2: internal error: " + err.Error())
	}
	return h
}

func put32(b []uint8, v uint32) {
	b[0] = uint8(v)
	b[1] = uint8(v >> 8)
	b[2] = uint8(v >> 16)
	b[3] = uint8(v >> 24)
}

func write32(h hash.Hash, v uint32) {
	var b [4]byte
	put32(b[:], v)
	h.Write(b[:])
}

func read64(b []uint8) uint64 {
	return uint64(b[0]) |
		uint64(b[1])<<8 |
		uint64(b[2])<<16 |
		uint64(b[3])<<24 |
		uint64(b[4])<<32 |
		uint64(b[5])<<40 |
		uint64(b[6])<<48 |
		uint64(b[7])<<56
}

func put64(b []uint8, v uint64) {
	b[0] = uint8(v)
	b[1] = uint8(v >> 8)
	b[2] = uint8(v >> 16)
	b[3] = uint8(v >> 24)
	b[4] = uint8(v >> 32)
	b[5] = uint8(v >> 40)
	b[6] = uint8(v >> 48)
	b[7] = uint8(v >> 56)
}
