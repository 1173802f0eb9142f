//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package argon2

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmap is replaced in tests.
var mmap = unix.Mmap

// allocBlocks maps n zeroed blocks outside the Go heap, so that a
// request the system cannot satisfy fails with ENOMEM instead of
// killing the process.
func allocBlocks(n int) ([]block, func(), error) {
	buf, err := mmap(-1, 0, n*blockSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrAllocationFailure, err)
	}
	b := unsafe.Slice((*block)(unsafe.Pointer(&buf[0])), n)
	return b, func() { unix.Munmap(buf) }, nil
}
