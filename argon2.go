package argon2

import (
	"sync"

	"github.com/dchest/blake2b"
)

/*

inputs:

 P password
 S salt
 K secret (optional)
 X associated data (optional)

 p lanes
 m memory size in KiB
 t passes
 y variant

*/

// argon2 fills output with the Argon2 tag of P, S, K and X.
// The parameters must already be validated.
// If parallel is set, lanes are filled concurrently within each slice.
func argon2(output, P, S, K, X []byte, params Params, parallel bool, log tracer) error {
	p, m, t := params.Lanes, params.Memory, params.Time

	mem, err := newMatrix(m, p)
	if err != nil {
		return err
	}
	defer mem.release()

	var h0 [blake2b.Size + 8]byte
	initialHash(h0[:0], P, S, K, X, params, uint32(len(output)))

	if log != nil {
		log.Logf("Variant: %v, Iterations: %d, Memory: %d KiB (%d blocks), Parallelism: %d lanes, Tag length: %d bytes",
			params.Variant, t, m, len(mem.b), p, len(output))
		log.Logf("Password[%d]: % x", len(P), P)
		log.Logf("Salt[%d]: % x", len(S), S)
		log.Logf("Secret[%d]: % x", len(K), K)
		log.Logf("Associated data[%d]: % x", len(X), X)
		log.Logf("Pre-hashing digest: % x", h0[:blake2b.Size])
	}

	seedLanes(mem, &h0)
	for i := range h0 {
		h0[i] = 0
	}

	for pass := uint32(0); pass < t; pass++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			if parallel && p > 1 {
				var wg sync.WaitGroup
				wg.Add(int(p))
				for lane := uint32(0); lane < p; lane++ {
					go func(lane uint32) {
						defer wg.Done()
						fillSegment(mem, params, position{pass: pass, lane: lane, slice: slice}, nil)
					}(lane)
				}
				wg.Wait()
			} else {
				for lane := uint32(0); lane < p; lane++ {
					fillSegment(mem, params, position{pass: pass, lane: lane, slice: slice}, log)
				}
			}
		}
		if log != nil {
			log.Logf("")
			log.Logf(" After pass %d:", pass)
			for i := range mem.b {
				log.Logf("  Block %.4d [0]: %016x", i, mem.b[i][0])
			}
		}
	}

	finalize(output, mem, log)
	return nil
}

// initialHash appends H0 to dst.
func initialHash(dst, P, S, K, X []byte, params Params, tagLen uint32) []byte {
	h := newBlake2b(blake2b.Size)
	write32(h, params.Lanes)
	write32(h, tagLen)
	write32(h, params.Memory)
	write32(h, params.Time)
	write32(h, Version)
	write32(h, uint32(params.Variant))
	write32(h, uint32(len(P)))
	h.Write(P)
	write32(h, uint32(len(S)))
	h.Write(S)
	write32(h, uint32(len(K)))
	h.Write(K)
	write32(h, uint32(len(X)))
	h.Write(X)
	return h.Sum(dst)
}

// seedLanes fills the first two blocks of every lane from H0.
// h0[64:72] is scratch space for the block and lane numbers.
func seedLanes(mem *matrix, h0 *[blake2b.Size + 8]byte) {
	var buf [blockSize]byte
	for lane := uint32(0); lane < mem.lanes; lane++ {
		put32(h0[blake2b.Size+4:], lane)

		put32(h0[blake2b.Size:], 0)
		blake2bLong(buf[:], h0[:])
		mem.at(lane, 0).load(buf[:])

		put32(h0[blake2b.Size:], 1)
		blake2bLong(buf[:], h0[:])
		mem.at(lane, 1).load(buf[:])
	}
	for i := range buf {
		buf[i] = 0
	}
}

// fillSegment computes the blocks of one segment of one lane.
func fillSegment(mem *matrix, params Params, pos position, log tracer) {
	var addrs *addressGenerator
	if dataIndependent(params.Variant, pos) {
		addrs = newAddressGenerator(mem, params.Time, params.Variant, pos)
	}

	i := uint32(0)
	if pos.pass == 0 && pos.slice == 0 {
		// seeded from H0
		i = 2
	}

	j := pos.slice*mem.segLen + i
	for ; i < mem.segLen; i, j = i+1, j+1 {
		prev := j - 1
		if j == 0 {
			prev = mem.laneLen - 1
		}

		pos.index = i
		var rand uint64
		if addrs != nil {
			rand = addrs.next(i)
		} else {
			rand = mem.at(pos.lane, prev)[0]
		}
		refLane, refIndex := indexAlpha(rand, mem, pos)

		if log != nil {
			log.Logf("  pass %d lane %d slice %d index %d: rand = %016x, ref = (%d, %d)",
				pos.pass, pos.lane, pos.slice, i, rand, refLane, refIndex)
		}

		compress(mem.at(pos.lane, j), mem.at(pos.lane, prev), mem.at(refLane, refIndex), pos.pass != 0)
	}
}

// finalize XORs the last block of every lane together and hashes the
// result into output.
func finalize(output []byte, mem *matrix, log tracer) {
	var c block
	for lane := uint32(0); lane < mem.lanes; lane++ {
		c.xor(mem.last(lane))
	}

	var buf [blockSize]byte
	c.store(buf[:])
	if log != nil {
		log.Logf("Final block: %x", buf[:])
	}
	blake2bLong(output, buf[:])
	if log != nil {
		log.Logf("Tag: % X", output)
	}

	c.zero()
	for i := range buf {
		buf[i] = 0
	}
}
