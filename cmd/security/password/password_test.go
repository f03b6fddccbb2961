package password

import (
	"strings"
	"testing"
)

// Fast params keep the test suite snappy; production cost is irrelevant to
// correctness of encode/verify.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Params.MemoryKiB = 8 * 1024
	cfg.Params.Iterations = 1
	cfg.Params.Parallelism = 1
	return cfg
}

func TestHashAndVerify_RoundTrip(t *testing.T) {
	cfg := testConfig()

	h, err := cfg.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(h, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash encoding: %q", h)
	}

	ok, err := cfg.Verify(h, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	cfg := testConfig()

	h, err := cfg.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := cfg.Verify(h, "incorrect horse")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	cfg := testConfig()

	a, err := cfg.Hash("secret123!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := cfg.Hash("secret123!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	cfg := testConfig()

	for _, bad := range []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2g",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2g",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2g",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaGhhc2g",
	} {
		ok, err := cfg.Verify(bad, "whatever")
		if err != ErrInvalidHash {
			t.Fatalf("Verify(%q): expected ErrInvalidHash, got %v", bad, err)
		}
		if ok {
			t.Fatalf("Verify(%q): expected false", bad)
		}
	}
}

func TestVerify_RejectsOversizedParams(t *testing.T) {
	big := DefaultConfig()
	big.Params.MemoryKiB = 512 * 1024
	big.Params.Iterations = 1
	big.Params.Parallelism = 1

	h, err := big.Hash("plenty long password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	small := testConfig()
	if _, err := small.Verify(h, "plenty long password"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash for oversized params, got %v", err)
	}
}

func TestValidate_Lengths(t *testing.T) {
	cfg := testConfig()
	cfg.MinLength = 8
	cfg.MaxLength = 16

	if err := cfg.Validate("short"); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := cfg.Validate("definitely far too long"); err != ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if err := cfg.Validate("just right"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}
