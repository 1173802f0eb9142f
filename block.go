package argon2

import "math/bits"

const (
	blockSize   = 1024
	blockLength = blockSize / 8
)

// A block is one 1KiB cell of the memory matrix,
// viewed as 128 little-endian 64-bit words.
type block [blockLength]uint64

func (b *block) xor(other *block) {
	for i, v := range other {
		b[i] ^= v
	}
}

func (b *block) zero() {
	for i := range b {
		b[i] = 0
	}
}

func (b *block) load(src []byte) {
	for i := range b {
		b[i] = read64(src[i*8:])
	}
}

func (b *block) store(dst []byte) {
	for i, v := range b {
		put64(dst[i*8:], v)
	}
}

// compress is the Argon2 compression function G.
//
// R = X ^ Y is viewed as an 8x8 matrix of 16-byte registers.
// The permutation P is applied to each row and then to each column,
// and the result is XORed with R. If xor is set the output is folded
// into the existing contents of out instead of replacing them.
//
// out may alias x or y.
func compress(out, x, y *block, xor bool) {
	var r, q block
	for i := range r {
		r[i] = x[i] ^ y[i]
	}
	q = r

	var v [16]uint64
	for row := 0; row < 8; row++ {
		copy(v[:], q[row*16:row*16+16])
		permute(&v)
		copy(q[row*16:row*16+16], v[:])
	}
	for col := 0; col < 8; col++ {
		for k := 0; k < 8; k++ {
			v[2*k] = q[16*k+2*col]
			v[2*k+1] = q[16*k+2*col+1]
		}
		permute(&v)
		for k := 0; k < 8; k++ {
			q[16*k+2*col] = v[2*k]
			q[16*k+2*col+1] = v[2*k+1]
		}
	}

	if xor {
		for i := range out {
			out[i] ^= r[i] ^ q[i]
		}
	} else {
		for i := range out {
			out[i] = r[i] ^ q[i]
		}
	}
}

// permute is P: one Blake2b round over 16 words,
// with the additions replaced by fBlaMka.
func permute(v *[16]uint64) {
	mix(&v[0], &v[4], &v[8], &v[12])
	mix(&v[1], &v[5], &v[9], &v[13])
	mix(&v[2], &v[6], &v[10], &v[14])
	mix(&v[3], &v[7], &v[11], &v[15])

	mix(&v[0], &v[5], &v[10], &v[15])
	mix(&v[1], &v[6], &v[11], &v[12])
	mix(&v[2], &v[7], &v[8], &v[13])
	mix(&v[3], &v[4], &v[9], &v[14])
}

func mix(a, b, c, d *uint64) {
	*a = fBlaMka(*a, *b)
	*d = bits.RotateLeft64(*d^*a, -32)
	*c = fBlaMka(*c, *d)
	*b = bits.RotateLeft64(*b^*c, -24)

	*a = fBlaMka(*a, *b)
	*d = bits.RotateLeft64(*d^*a, -16)
	*c = fBlaMka(*c, *d)
	*b = bits.RotateLeft64(*b^*c, -63)
}

func fBlaMka(x, y uint64) uint64 {
	return x + y + 2*uint64(uint32(x))*uint64(uint32(y))
}
