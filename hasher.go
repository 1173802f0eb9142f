package argon2

import (
	"crypto/rand"
	"fmt"
	"io"
)

// A Hasher hashes and verifies passwords with fixed costs and an
// optional secret. It draws a fresh salt for every hash.
//
// A Hasher is safe for concurrent use if Rand is.
type Hasher struct {
	Costs  Costs
	Secret []byte

	// Rand is the salt source. If nil, crypto/rand.Reader is used.
	Rand io.Reader
}

// NewHasher returns a Hasher for c, which must be within the policy limits.
func NewHasher(c Costs, secret []byte) (*Hasher, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.Params(Argon2id, DefaultKeyLen).Validate(); err != nil {
		return nil, err
	}
	if uint64(len(secret)) > maxInput {
		return nil, ErrInvalidSecret
	}
	return &Hasher{Costs: c, Secret: secret}, nil
}

// Hash returns the Argon2id PHC string of password under a random salt.
func (h *Hasher) Hash(password []byte) (string, error) {
	r := h.Rand
	if r == nil {
		r = rand.Reader
	}
	salt := make([]byte, SaltLen)
	if _, err := io.ReadFull(r, salt); err != nil {
		return "", fmt.Errorf("argon2: reading salt: %w", err)
	}
	return HashEncode(password, salt, h.Costs, h.Secret)
}

// Verify reports whether password matches encoded. See Verify.
func (h *Hasher) Verify(password []byte, encoded string) (bool, error) {
	return Verify(password, encoded, h.Secret)
}

// NeedsRehash reports whether encoded was produced with weaker costs
// than h, with another variant or version, or with a checksum length
// other than DefaultKeyLen.
func (h *Hasher) NeedsRehash(encoded string) (bool, error) {
	d, err := Decode(encoded)
	if err != nil {
		return false, err
	}
	switch {
	case d.Variant != Argon2id, d.Version != Version:
		return true, nil
	case d.Costs.TCost < h.Costs.TCost, d.Costs.MCost < h.Costs.MCost, d.Costs.PCost < h.Costs.PCost:
		return true, nil
	case len(d.Checksum) != DefaultKeyLen:
		return true, nil
	}
	return false, nil
}
