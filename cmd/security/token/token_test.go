package token

import (
	"testing"
	"time"

	paseto "aidanwoods.dev/go-paseto"
)

func testManager(t *testing.T, ttl, skew time.Duration) (Manager, Config) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.TTL = ttl
	cfg.ClockSkew = skew
	cfg.KeyHex = NewKeyHex()

	m, err := NewPasetoV4LocalManager(cfg)
	if err != nil {
		t.Fatalf("NewPasetoV4LocalManager: %v", err)
	}
	return m, cfg
}

func TestIssueAndVerify(t *testing.T) {
	m, _ := testManager(t, 24*time.Hour, 0)
	now := time.Now().UTC()

	tok, exp, err := m.Issue("user-123", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got, want := exp, now.Add(24*time.Hour); !got.Equal(want) {
		t.Fatalf("exp = %v, want %v", got, want)
	}

	claims, err := m.Verify(tok, now)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("UserID = %q, want user-123", claims.UserID)
	}
	if claims.Issuer != "habitd" {
		t.Fatalf("Issuer = %q", claims.Issuer)
	}
}

func TestVerify_ValidityWindow(t *testing.T) {
	m, _ := testManager(t, time.Hour, 0)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tok, _, err := m.Issue("user-123", issued)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, tc := range []struct {
		name string
		at   time.Time
		ok   bool
	}{
		{"at issuance", issued, true},
		{"mid window", issued.Add(30 * time.Minute), true},
		{"just inside", issued.Add(time.Hour - time.Second), true},
		{"at expiry", issued.Add(time.Hour), false},
		{"past expiry", issued.Add(2 * time.Hour), false},
	} {
		_, err := m.Verify(tok, tc.at)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err != ErrInvalidToken {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", tc.name, err)
		}
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	m, _ := testManager(t, time.Hour, 0)
	now := time.Now().UTC()

	tok, _, err := m.Issue("user-123", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flipping any single byte must invalidate the token.
	raw := []byte(tok)
	for i := range raw {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		mutated[i] ^= 0x01

		if string(mutated) == tok {
			continue
		}
		if _, err := m.Verify(string(mutated), now); err != ErrInvalidToken {
			t.Fatalf("byte %d: expected ErrInvalidToken, got %v", i, err)
		}
	}
}

func TestVerify_WrongKey(t *testing.T) {
	m1, _ := testManager(t, time.Hour, 0)
	m2, _ := testManager(t, time.Hour, 0)
	now := time.Now().UTC()

	tok, _, err := m1.Issue("user-123", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m2.Verify(tok, now); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken under a different key, got %v", err)
	}
}

func TestVerify_MissingIdentityClaim(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyHex = NewKeyHex()
	m, err := NewPasetoV4LocalManager(cfg)
	if err != nil {
		t.Fatalf("NewPasetoV4LocalManager: %v", err)
	}

	key, err := paseto.V4SymmetricKeyFromHex(cfg.KeyHex)
	if err != nil {
		t.Fatalf("key: %v", err)
	}

	now := time.Now().UTC()
	tok := paseto.NewToken()
	tok.SetIssuer(cfg.Issuer)
	tok.SetIssuedAt(now)
	tok.SetNotBefore(now)
	tok.SetExpiration(now.Add(time.Hour))
	// No "uid" claim.

	if _, err := m.Verify(tok.V4Encrypt(key, nil), now); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for missing uid, got %v", err)
	}
}

func TestVerify_GarbageInput(t *testing.T) {
	m, _ := testManager(t, time.Hour, 0)
	now := time.Now().UTC()

	for _, bad := range []string{"", "v4.local.", "not-a-token", "v2.local.abcdef"} {
		if _, err := m.Verify(bad, now); err != ErrInvalidToken {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", bad, err)
		}
	}
}

func TestNewManager_BadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyHex = "deadbeef" // too short
	if _, err := NewPasetoV4LocalManager(cfg); err != ErrConfig {
		t.Fatalf("expected ErrConfig for short key, got %v", err)
	}

	cfg.KeyHex = NewKeyHex()
	cfg.TTL = 0
	if _, err := NewPasetoV4LocalManager(cfg); err != ErrConfig {
		t.Fatalf("expected ErrConfig for zero TTL, got %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HABIT_TOKEN_KEY_HEX", NewKeyHex())
	t.Setenv("HABIT_TOKEN_TTL", "12h")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.TTL != 12*time.Hour {
		t.Fatalf("TTL = %v, want 12h", cfg.TTL)
	}

	t.Setenv("HABIT_TOKEN_KEY_HEX", "")
	if _, err := LoadConfigFromEnv(); err != ErrConfig {
		t.Fatalf("expected ErrConfig without key, got %v", err)
	}
}
