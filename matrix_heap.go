//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package argon2

// allocBlocks allocates n blocks on the Go heap. Only lengths the
// runtime rejects outright are reported; running out of memory is fatal.
func allocBlocks(n int) (b []block, free func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			b, free, err = nil, nil, ErrAllocationFailure
		}
	}()
	return make([]block, n), nil, nil
}
