package argon2

import "fmt"

// Version is the Argon2 version implemented by this package.
const Version = 0x13

// Variant selects the addressing mode.
type Variant uint32

// The values are the type codes hashed into H0.
const (
	Argon2d  Variant = 0
	Argon2i  Variant = 1
	Argon2id Variant = 2
)

func (v Variant) String() string {
	switch v {
	case Argon2d:
		return "argon2d"
	case Argon2i:
		return "argon2i"
	case Argon2id:
		return "argon2id"
	default:
		return fmt.Sprintf("Variant(%d)", uint32(v))
	}
}

// ParseVariant returns the variant named by s ("argon2i", "argon2d" or "argon2id").
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "argon2d":
		return Argon2d, nil
	case "argon2i":
		return Argon2i, nil
	case "argon2id":
		return Argon2id, nil
	}
	return 0, ErrInvalidVariant
}

const (
	syncPoints = 4

	minKeyLen  = 4
	minSaltLen = 8
	maxLanes   = 1<<24 - 1
	maxInput   = 1<<32 - 1
)

// Params are the engine-level parameters of one hashing run.
type Params struct {
	Variant Variant

	// Time is the number of passes over memory.
	Time uint32

	// Memory is the memory size in KiB. It must be at least 8*Lanes and
	// is rounded down to a multiple of 4*Lanes.
	Memory uint32

	// Lanes is the degree of parallelism.
	Lanes uint32

	// KeyLen is the length of the derived key in bytes.
	KeyLen uint32
}

// Validate reports whether p can be used for hashing.
func (p Params) Validate() error {
	if p.Variant > Argon2id {
		return ErrInvalidVariant
	}
	if p.Time < 1 {
		return ErrInvalidTCost
	}
	if p.Lanes < 1 || p.Lanes > maxLanes {
		return ErrInvalidPCost
	}
	if uint64(p.Memory) < 8*uint64(p.Lanes) {
		return ErrInvalidMCost
	}
	if p.KeyLen < minKeyLen {
		return ErrInvalidOutputLength
	}
	return nil
}

// Policy limits on Costs.
const (
	MinTCost = 1
	MaxTCost = 750
	MinMCost = 3
	MaxMCost = 31
	MinPCost = 1
	MaxPCost = 8

	// SaltLen is the salt length required by Hash and HashEncode.
	SaltLen = 16

	// DefaultKeyLen is the checksum length produced by HashEncode.
	DefaultKeyLen = 32
)

// Costs is the caller-facing cost triple stored in an encoded hash.
// Memory is 2^MCost KiB.
type Costs struct {
	TCost uint32
	MCost uint32
	PCost uint32
}

// DefaultCosts returns t=2, 64MiB of memory, one lane.
func DefaultCosts() Costs {
	return Costs{TCost: 2, MCost: 16, PCost: 1}
}

// Validate checks c against the policy limits.
func (c Costs) Validate() error {
	if c.TCost < MinTCost || c.TCost > MaxTCost {
		return ErrInvalidTCost
	}
	if c.MCost < MinMCost || c.MCost > MaxMCost {
		return ErrInvalidMCost
	}
	if c.PCost < MinPCost || c.PCost > MaxPCost {
		return ErrInvalidPCost
	}
	return nil
}

// Memory returns the memory size in KiB.
func (c Costs) Memory() uint32 {
	return 1 << c.MCost
}

// Params returns the engine parameters for c.
func (c Costs) Params(v Variant, keyLen uint32) Params {
	return Params{
		Variant: v,
		Time:    c.TCost,
		Memory:  c.Memory(),
		Lanes:   c.PCost,
		KeyLen:  keyLen,
	}
}
