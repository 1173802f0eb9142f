package argon2

// position identifies the block being computed.
type position struct {
	pass  uint32
	lane  uint32
	slice uint32
	index uint32 // within the segment
}

// indexAlpha maps the pseudo-random value rand to the reference block
// for the block at pos. It returns the lane and the index within that
// lane.
//
// The high 32 bits of rand pick the lane, the low 32 bits pick a block
// among those that are already finished and not in a segment another
// lane may be writing. In the first pass that is every block before the
// current slice (plus the blocks of the current segment if the lane is
// our own); in later passes it is the three other segments of the lane.
// The block immediately before the current one is never chosen, since
// it is already an input of G.
func indexAlpha(rand uint64, m *matrix, pos position) (refLane, refIndex uint32) {
	refLane = uint32(rand>>32) % m.lanes
	if pos.pass == 0 && pos.slice == 0 {
		refLane = pos.lane
	}
	sameLane := refLane == pos.lane

	var start, area uint32
	if pos.pass == 0 {
		start = 0
		area = pos.slice * m.segLen
		if sameLane {
			area += pos.index
		}
	} else {
		start = (pos.slice + 1) % syncPoints * m.segLen
		area = m.laneLen - m.segLen
		if sameLane {
			area += pos.index
		}
	}
	if pos.index == 0 || sameLane {
		area--
	}

	return refLane, uint32((uint64(start) + phi(rand, area)) % uint64(m.laneLen))
}

// phi maps the low 32 bits of rand onto [0, area), biased towards the
// end of the reference area (the most recently written blocks).
func phi(rand uint64, area uint32) uint64 {
	x := rand & 0xFFFFFFFF
	x = x * x >> 32
	y := uint64(area) * x >> 32
	return uint64(area) - 1 - y
}

// addressGenerator produces the data-independent pseudo-random values
// used by Argon2i, and by Argon2id in the first half of the first pass.
// Each address block is G(0, G(0, Z)) where Z holds the position, the
// matrix size, the pass count, the variant and a counter.
type addressGenerator struct {
	in, addr, zero block
}

func newAddressGenerator(m *matrix, passes uint32, mode Variant, pos position) *addressGenerator {
	a := new(addressGenerator)
	a.in[0] = uint64(pos.pass)
	a.in[1] = uint64(pos.lane)
	a.in[2] = uint64(pos.slice)
	a.in[3] = uint64(len(m.b))
	a.in[4] = uint64(passes)
	a.in[5] = uint64(mode)
	return a
}

// next returns the pseudo-random value for the block at index i of the
// segment.
func (a *addressGenerator) next(i uint32) uint64 {
	if i%blockLength == 0 || a.in[6] == 0 {
		a.in[6]++
		compress(&a.addr, &a.in, &a.zero, false)
		compress(&a.addr, &a.addr, &a.zero, false)
	}
	return a.addr[i%blockLength]
}

// dataIndependent reports whether the block at pos is addressed
// without looking at memory contents.
func dataIndependent(mode Variant, pos position) bool {
	switch mode {
	case Argon2i:
		return true
	case Argon2id:
		return pos.pass == 0 && pos.slice < syncPoints/2
	}
	return false
}
