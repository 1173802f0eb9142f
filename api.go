package argon2

// Derive returns the Argon2 tag of password under the given salt,
// optional secret key and optional associated data.
//
// Memory in p is measured in KiB. The salt must be at least 8 bytes.
// All validation happens before any memory is allocated.
func Derive(password, salt, secret, data []byte, p Params) ([]byte, error) {
	if err := validateInputs(password, salt, secret, data); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return derive(password, salt, secret, data, p, true, nil)
}

func derive(password, salt, secret, data []byte, p Params, parallel bool, log tracer) ([]byte, error) {
	out := make([]byte, p.KeyLen)
	if err := argon2(out, password, salt, secret, data, p, parallel, log); err != nil {
		return nil, err
	}
	return out, nil
}

func validateInputs(password, salt, secret, data []byte) error {
	if uint64(len(password)) > maxInput {
		return ErrInvalidPassword
	}
	if len(salt) < minSaltLen || uint64(len(salt)) > maxInput {
		return ErrInvalidSaltSize
	}
	if uint64(len(secret)) > maxInput {
		return ErrInvalidSecret
	}
	if uint64(len(data)) > maxInput {
		return ErrInvalidAssociatedData
	}
	return nil
}

// Hash returns the raw keyLen-byte tag of password using variant v.
//
// Unlike Derive, Hash enforces the storage policy: the salt must be
// exactly SaltLen bytes and c must be within the policy limits, so the
// memory used is 2^c.MCost KiB.
func Hash(password, salt []byte, c Costs, secret []byte, keyLen uint32, v Variant) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(salt) != SaltLen {
		return nil, ErrInvalidSaltSize
	}
	return Derive(password, salt, secret, nil, c.Params(v, keyLen))
}

// Key derives a key from the password, salt, and cost parameters using
// Argon2i. It panics if the parameters are invalid.
//
// memory is in KiB. For example
//
//	key := argon2.Key([]byte("some password"), salt, 3, 32*1024, 4, 32)
func Key(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustDerive(Argon2i, password, salt, time, memory, threads, keyLen)
}

// IDKey is like Key but uses Argon2id.
func IDKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustDerive(Argon2id, password, salt, time, memory, threads, keyLen)
}

// DKey is like Key but uses Argon2d. Argon2d is not side-channel
// resistant and should not be used for password hashing.
func DKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustDerive(Argon2d, password, salt, time, memory, threads, keyLen)
}

func mustDerive(v Variant, password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	key, err := Derive(password, salt, nil, nil, Params{
		Variant: v,
		Time:    time,
		Memory:  memory,
		Lanes:   uint32(threads),
		KeyLen:  keyLen,
	})
	if err != nil {
		panic(err)
	}
	return key
}
