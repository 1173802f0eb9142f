package argon2

import "math"

// A matrix is the working memory of one hashing run: lanes rows of
// laneLen blocks each, stored lane after lane. Each lane is split into
// syncPoints segments of segLen blocks.
type matrix struct {
	b       []block
	lanes   uint32
	laneLen uint32
	segLen  uint32

	free func() // returns b to the system, may be nil
}

// newMatrix allocates the memory for memory KiB over the given lanes,
// rounded down to a whole number of segments per lane.
// The caller must release it.
func newMatrix(memory, lanes uint32) (*matrix, error) {
	segLen := memory / (syncPoints * lanes)
	laneLen := segLen * syncPoints
	n := uint64(laneLen) * uint64(lanes)
	if n == 0 || n > uint64(math.MaxInt)/blockSize {
		return nil, ErrAllocationFailure
	}

	b, free, err := allocBlocks(int(n))
	if err != nil {
		return nil, err
	}
	return &matrix{
		b:       b,
		lanes:   lanes,
		laneLen: laneLen,
		segLen:  segLen,
		free:    free,
	}, nil
}

// at returns the block at index i of the given lane.
func (m *matrix) at(lane, i uint32) *block {
	return &m.b[lane*m.laneLen+i]
}

// last returns the last block of the given lane.
func (m *matrix) last(lane uint32) *block {
	return m.at(lane, m.laneLen-1)
}

// wipe zeroes every block.
func (m *matrix) wipe() {
	for i := range m.b {
		m.b[i].zero()
	}
}

// release wipes the matrix and gives its memory back.
// The matrix must not be used afterwards.
func (m *matrix) release() {
	m.wipe()
	if m.free != nil {
		m.free()
		m.free = nil
	}
	m.b = nil
}
