package argon2

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	xargon2 "golang.org/x/crypto/argon2"
	xblake2b "golang.org/x/crypto/blake2b"
)

// Test vectors from RFC 9106, section 5.
var rfcTests = []struct {
	mode Variant
	tag  string
}{
	{Argon2d, "512b391b6f1162975371d30919734294f868e3be3984f3c1a13a4db9fabe4acb"},
	{Argon2i, "c814d9d1dc7f37aa13f0d77f2494bda1c8de6b016dd388d29952a4c4672b6ce8"},
	{Argon2id, "0d640df58d78766c08c037a34a8b53c9d01ef0452d75b65eb52520e96b01e659"},
}

var (
	rfcPassword = bytes.Repeat([]byte{0x01}, 32)
	rfcSalt     = bytes.Repeat([]byte{0x02}, 16)
	rfcSecret   = bytes.Repeat([]byte{0x03}, 8)
	rfcData     = bytes.Repeat([]byte{0x04}, 12)
)

func rfcParams(mode Variant) Params {
	return Params{Variant: mode, Time: 3, Memory: 32, Lanes: 4, KeyLen: 32}
}

func TestRFC9106(t *testing.T) {
	for _, tt := range rfcTests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			tag, err := Derive(rfcPassword, rfcSalt, rfcSecret, rfcData, rfcParams(tt.mode))
			if err != nil {
				t.Fatal(err)
			}
			if got := hex.EncodeToString(tag); got != tt.tag {
				t.Errorf("got %s, expected %s", got, tt.tag)
			}
		})
	}
}

func TestRFC9106Sequential(t *testing.T) {
	for _, tt := range rfcTests {
		tag, err := derive(rfcPassword, rfcSalt, rfcSecret, rfcData, rfcParams(tt.mode), false, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := hex.EncodeToString(tag); got != tt.tag {
			t.Errorf("%v: got %s, expected %s", tt.mode, got, tt.tag)
		}
	}
}

func TestArgon2Trace(t *testing.T) {
	if testing.Short() {
		t.Skip("verbose")
	}
	tag, err := derive(rfcPassword, rfcSalt, rfcSecret, rfcData, rfcParams(Argon2id), false, t)
	if err != nil {
		t.Fatal(err)
	}
	if got := hex.EncodeToString(tag); got != rfcTests[2].tag {
		t.Errorf("got %s, expected %s", got, rfcTests[2].tag)
	}
}

func TestInitialHash(t *testing.T) {
	var buf []byte
	le := func(v uint32) { buf = binary.LittleEndian.AppendUint32(buf, v) }
	le(4)  // lanes
	le(32) // tag length
	le(32) // memory
	le(3)  // passes
	le(0x13)
	le(uint32(Argon2d))
	for _, field := range [][]byte{rfcPassword, rfcSalt, rfcSecret, rfcData} {
		le(uint32(len(field)))
		buf = append(buf, field...)
	}
	want := xblake2b.Sum512(buf)

	var h0 [64]byte
	initialHash(h0[:0], rfcPassword, rfcSalt, rfcSecret, rfcData, rfcParams(Argon2d), 32)
	if h0 != want {
		t.Errorf("got %x, expected %x", h0, want)
	}

	sum, err := blake2bSum(buf, nil, 64)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sum, h0[:]) {
		t.Errorf("blake2bSum: got %x, expected %x", sum, h0)
	}
}

func TestCompareXCrypto(t *testing.T) {
	tests := []struct {
		time, memory uint32
		threads      uint8
		keyLen       uint32
	}{
		{1, 8, 1, 32},
		{2, 64, 2, 16},
		{3, 100, 3, 100}, // memory rounded down to 96
		{1, 1030, 1, 4},  // more than 128 blocks per segment
		{2, 2048, 4, 64},
		{1, 512, 8, 1024},
	}
	pw := []byte("correct horse battery staple")
	salt := []byte("NaCl-and-more-salt")

	for _, tt := range tests {
		name := fmt.Sprintf("t=%d,m=%d,p=%d,T=%d", tt.time, tt.memory, tt.threads, tt.keyLen)
		t.Run(name, func(t *testing.T) {
			if got, want := Key(pw, salt, tt.time, tt.memory, tt.threads, tt.keyLen),
				xargon2.Key(pw, salt, tt.time, tt.memory, tt.threads, tt.keyLen); !bytes.Equal(got, want) {
				t.Errorf("argon2i: got %x, expected %x", got, want)
			}
			if got, want := IDKey(pw, salt, tt.time, tt.memory, tt.threads, tt.keyLen),
				xargon2.IDKey(pw, salt, tt.time, tt.memory, tt.threads, tt.keyLen); !bytes.Equal(got, want) {
				t.Errorf("argon2id: got %x, expected %x", got, want)
			}
		})
	}
}

func TestSequentialMatchesParallel(t *testing.T) {
	pw := []byte("password")
	salt := []byte("somesaltsomesalt")
	for _, mode := range []Variant{Argon2d, Argon2i, Argon2id} {
		p := Params{Variant: mode, Time: 2, Memory: 256, Lanes: 4, KeyLen: 32}
		par, err := derive(pw, salt, nil, nil, p, true, nil)
		if err != nil {
			t.Fatal(err)
		}
		seq, err := derive(pw, salt, nil, nil, p, false, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(par, seq) {
			t.Errorf("%v: parallel %x, sequential %x", mode, par, seq)
		}
	}
}

func TestDeterministic(t *testing.T) {
	p := Params{Variant: Argon2id, Time: 1, Memory: 64, Lanes: 2, KeyLen: 32}
	a, err := Derive([]byte("pw"), []byte("saltsalt"), []byte("pepper"), nil, p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		b, err := Derive([]byte("pw"), []byte("saltsalt"), []byte("pepper"), nil, p)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("run %d: got %x, expected %x", i, b, a)
		}
	}
}

func TestVariantsDiffer(t *testing.T) {
	seen := make(map[string]Variant)
	for _, mode := range []Variant{Argon2d, Argon2i, Argon2id} {
		p := Params{Variant: mode, Time: 2, Memory: 64, Lanes: 1, KeyLen: 32}
		tag, err := Derive([]byte("password"), []byte("somesalt"), nil, nil, p)
		if err != nil {
			t.Fatal(err)
		}
		if other, ok := seen[string(tag)]; ok {
			t.Errorf("%v and %v produced the same tag %x", mode, other, tag)
		}
		seen[string(tag)] = mode
	}
}

func TestInputsChangeOutput(t *testing.T) {
	base := Params{Variant: Argon2id, Time: 1, Memory: 32, Lanes: 1, KeyLen: 32}
	ref, _ := Derive([]byte("pw"), []byte("saltsalt"), nil, nil, base)

	withSecret, _ := Derive([]byte("pw"), []byte("saltsalt"), []byte("k"), nil, base)
	withData, _ := Derive([]byte("pw"), []byte("saltsalt"), nil, []byte("x"), base)
	moreTime := base
	moreTime.Time = 2
	withTime, _ := Derive([]byte("pw"), []byte("saltsalt"), nil, nil, moreTime)

	for name, tag := range map[string][]byte{"secret": withSecret, "data": withData, "time": withTime} {
		if bytes.Equal(tag, ref) {
			t.Errorf("changing the %s did not change the tag", name)
		}
	}
}

func TestDeriveErr(t *testing.T) {
	ok := Params{Variant: Argon2id, Time: 1, Memory: 32, Lanes: 4, KeyLen: 32}
	salt := []byte("saltsalt")

	tests := []struct {
		name   string
		salt   []byte
		modify func(*Params)
		want   error
	}{
		{"short salt", salt[:7], nil, ErrInvalidSaltSize},
		{"zero time", salt, func(p *Params) { p.Time = 0 }, ErrInvalidTCost},
		{"zero lanes", salt, func(p *Params) { p.Lanes = 0 }, ErrInvalidPCost},
		{"too many lanes", salt, func(p *Params) { p.Lanes = 1 << 24; p.Memory = 1 << 30 }, ErrInvalidPCost},
		{"memory below 8p", salt, func(p *Params) { p.Memory = 31 }, ErrInvalidMCost},
		{"short key", salt, func(p *Params) { p.KeyLen = 3 }, ErrInvalidOutputLength},
		{"unknown variant", salt, func(p *Params) { p.Variant = 3 }, ErrInvalidVariant},
	}
	for _, tt := range tests {
		p := ok
		if tt.modify != nil {
			tt.modify(&p)
		}
		_, err := Derive([]byte("pw"), tt.salt, nil, nil, p)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, expected %v", tt.name, err, tt.want)
		}
	}
}

func TestKeyPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Key did not panic with zero threads")
		}
	}()
	Key([]byte("pw"), []byte("saltsalt"), 1, 64, 0, 32)
}

func TestNewMatrix(t *testing.T) {
	mem, err := newMatrix(100, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(mem.b) != 96 || mem.laneLen != 32 || mem.segLen != 8 {
		t.Errorf("got %d blocks, lane %d, segment %d; expected 96, 32, 8", len(mem.b), mem.laneLen, mem.segLen)
	}

	mem.at(2, 5)[0] = 42
	if mem.b[2*32+5][0] != 42 {
		t.Error("at(2, 5) is not block 69")
	}
	mem.wipe()
	if mem.b[69][0] != 0 {
		t.Error("wipe left data behind")
	}
	mem.release()
	if mem.b != nil {
		t.Error("release kept the blocks")
	}

	if _, err := newMatrix(3, 1); !errors.Is(err, ErrAllocationFailure) {
		t.Errorf("got %v, expected %v", err, ErrAllocationFailure)
	}
}

func BenchmarkIDKey(b *testing.B) {
	pw := []byte("password")
	salt := []byte("somesaltsomesalt")
	for _, lanes := range []uint8{1, 4} {
		b.Run(fmt.Sprintf("m=16MiB,p=%d", lanes), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				IDKey(pw, salt, 1, 16*1024, lanes, 32)
			}
		})
	}
}

func BenchmarkCompress(b *testing.B) {
	x, y := testBlock(1), testBlock(2)
	var out block
	b.SetBytes(blockSize)
	for i := 0; i < b.N; i++ {
		compress(&out, x, y, true)
	}
}
