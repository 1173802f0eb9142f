package argon2

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/bits"
	"regexp"
	"strconv"
	"strings"
)

// A Digest is the decoded form of a PHC string:
//
//	$argon2id$v=19$m=65536,t=2,p=1$<salt>$<checksum>
//
// The m field of the string holds the memory in KiB, which is
// 2^Costs.MCost.
type Digest struct {
	Variant  Variant
	Version  uint32
	Costs    Costs
	Salt     []byte
	Checksum []byte
}

var b64 = base64.RawStdEncoding

// Encode returns the PHC string for d.
func Encode(d *Digest) string {
	var b strings.Builder
	b.WriteString("$")
	b.WriteString(d.Variant.String())
	b.WriteString("$v=")
	b.WriteString(strconv.FormatUint(uint64(d.Version), 10))
	b.WriteString("$m=")
	b.WriteString(strconv.FormatUint(uint64(1)<<d.Costs.MCost, 10))
	b.WriteString(",t=")
	b.WriteString(strconv.FormatUint(uint64(d.Costs.TCost), 10))
	b.WriteString(",p=")
	b.WriteString(strconv.FormatUint(uint64(d.Costs.PCost), 10))
	b.WriteString("$")
	b.WriteString(b64.EncodeToString(d.Salt))
	b.WriteString("$")
	b.WriteString(b64.EncodeToString(d.Checksum))
	return b.String()
}

// Decode parses a PHC string. The memory field must be a power of two.
func Decode(s string) (*Digest, error) {
	parts := strings.Split(s, "$")
	// "", variant, v=, m=,t=,p=, salt, checksum
	if len(parts) < 2 || parts[0] != "" {
		return nil, ErrInvalidHash
	}

	d := new(Digest)
	var err error
	if d.Variant, err = ParseVariant(parts[1]); err != nil {
		return nil, ErrInvalidHash
	}
	if len(parts) == 5 && strings.HasPrefix(parts[2], "m=") {
		return nil, ErrInvalidVersion
	}
	if len(parts) != 6 {
		return nil, ErrInvalidHash
	}

	v, ok := field(parts[2], "v")
	if !ok {
		return nil, ErrInvalidVersion
	}
	d.Version = v

	if err := decodeCosts(parts[3], &d.Costs); err != nil {
		return nil, err
	}

	if d.Salt, err = b64.DecodeString(parts[4]); err != nil || len(d.Salt) == 0 {
		return nil, fmt.Errorf("%w: bad salt", ErrInvalidHash)
	}
	if d.Checksum, err = b64.DecodeString(parts[5]); err != nil || len(d.Checksum) == 0 {
		return nil, fmt.Errorf("%w: bad checksum", ErrInvalidHash)
	}
	return d, nil
}

// decodeCosts parses "m=<kib>,t=<passes>,p=<lanes>".
func decodeCosts(s string, c *Costs) error {
	kv := strings.Split(s, ",")
	get := func(i int, key string) (uint32, bool) {
		if i >= len(kv) {
			return 0, false
		}
		return field(kv[i], key)
	}
	if len(kv) > 3 {
		return ErrInvalidHash
	}

	m, ok := get(0, "m")
	if !ok || m == 0 || m&(m-1) != 0 {
		return ErrInvalidMCost
	}
	c.MCost = uint32(bits.TrailingZeros32(m))

	if c.TCost, ok = get(1, "t"); !ok {
		return ErrInvalidTCost
	}
	if c.PCost, ok = get(2, "p"); !ok {
		return ErrInvalidPCost
	}
	return nil
}

// field parses "<key>=<decimal>".
func field(s, key string) (uint32, bool) {
	v, ok := strings.CutPrefix(s, key+"=")
	if !ok || v == "" || v[0] < '0' || v[0] > '9' {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

const (
	maxDigits      = 10 // a uint32 in decimal
	maxFormatBytes = 64 // longest salt or checksum accepted by IsValidFormat

	// maxEncodedLen is the longest string IsValidFormat accepts.
	maxEncodedLen = len("$argon2id") +
		len("$v=") + maxDigits +
		len("$m=") + maxDigits +
		len(",t=") + maxDigits +
		len(",p=") + maxDigits +
		2*(len("$")+(maxFormatBytes*8+5)/6)
)

var phcFormat = regexp.MustCompile(`^\$argon2(?:id|i|d)\$v=[0-9]{1,10}\$m=[0-9]{1,10},t=[0-9]{1,10},p=[0-9]{1,10}\$[A-Za-z0-9+/]+\$[A-Za-z0-9+/]+$`)

// IsValidFormat reports whether s looks like an encoded Argon2 hash.
// It checks the shape of the string only; Decode may still reject it.
func IsValidFormat(s string) bool {
	return len(s) <= maxEncodedLen && phcFormat.MatchString(s)
}

// HashEncode hashes password with Argon2id and returns the PHC string.
// The salt must be SaltLen bytes long; the checksum is DefaultKeyLen bytes.
func HashEncode(password, salt []byte, c Costs, secret []byte) (string, error) {
	sum, err := Hash(password, salt, c, secret, DefaultKeyLen, Argon2id)
	if err != nil {
		return "", err
	}
	return Encode(&Digest{
		Variant:  Argon2id,
		Version:  Version,
		Costs:    c,
		Salt:     salt,
		Checksum: sum,
	}), nil
}

// Verify reports whether password (and secret) hash to encoded.
//
// A string that is not in the PHC format yields false with a nil error.
// Strings that have the right shape but cannot be used, such as an
// unsupported version or more than MaxTCost passes, yield an error.
// The checksums are compared in constant time.
func Verify(password []byte, encoded string, secret []byte) (bool, error) {
	if !IsValidFormat(encoded) {
		return false, nil
	}
	d, err := Decode(encoded)
	if err != nil {
		return false, err
	}
	if d.Version != Version {
		return false, ErrInvalidVersion
	}
	if d.Costs.TCost > MaxTCost {
		return false, ErrInvalidTCost
	}

	sum, err := Derive(password, d.Salt, secret, nil, d.Costs.Params(d.Variant, uint32(len(d.Checksum))))
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(sum, d.Checksum) == 1, nil
}
