package argon2

import "errors"

var (
	ErrInvalidPassword       = errors.New("argon2: password too long")
	ErrInvalidSecret         = errors.New("argon2: secret too long")
	ErrInvalidAssociatedData = errors.New("argon2: associated data too long")
	ErrInvalidTCost          = errors.New("argon2: invalid t_cost")
	ErrInvalidMCost          = errors.New("argon2: invalid m_cost")
	ErrInvalidPCost          = errors.New("argon2: invalid p_cost")
	ErrInvalidSaltSize       = errors.New("argon2: invalid salt size")
	ErrInvalidOutputLength   = errors.New("argon2: invalid output length")
	ErrInvalidVariant        = errors.New("argon2: invalid variant")

	// ErrInvalidHash is returned when an encoded hash is not in the
	// $argon2<variant>$v=..$m=..,t=..,p=..$salt$hash format.
	ErrInvalidHash = errors.New("argon2: invalid hash")

	// ErrInvalidVersion is returned when the v= field of an encoded hash
	// is missing, not a number, or names a version other than 0x13.
	ErrInvalidVersion = errors.New("argon2: invalid version")

	// ErrAllocationFailure is returned when the memory matrix cannot be
	// allocated at the requested size.
	ErrAllocationFailure = errors.New("argon2: memory allocation failed")
)
