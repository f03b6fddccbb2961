package token

import (
	"time"

	paseto "aidanwoods.dev/go-paseto"
)

// Claims is the identity envelope recovered from a verified token.
type Claims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Issuer    string
}

// Manager issues and verifies bearer tokens.
type Manager interface {
	Issue(userID string, now time.Time) (token string, exp time.Time, err error)
	Verify(token string, now time.Time) (Claims, error)
}

type pasetoV4LocalManager struct {
	issuer    string
	ttl       time.Duration
	clockSkew time.Duration

	key paseto.V4SymmetricKey
}

// NewPasetoV4LocalManager builds a Manager over PASETO v4.local.
//
// The symmetric key comes from cfg.KeyHex and must decode to 32 bytes;
// anything else fails with ErrConfig.
func NewPasetoV4LocalManager(cfg Config) (Manager, error) {
	key, err := paseto.V4SymmetricKeyFromHex(cfg.KeyHex)
	if err != nil {
		return nil, ErrConfig
	}
	if cfg.TTL <= 0 || cfg.Issuer == "" {
		return nil, ErrConfig
	}

	return &pasetoV4LocalManager{
		issuer:    cfg.Issuer,
		ttl:       cfg.TTL,
		clockSkew: cfg.ClockSkew,
		key:       key,
	}, nil
}

// NewKeyHex generates a fresh random symmetric key, hex-encoded.
// Intended for provisioning and tests.
func NewKeyHex() string {
	return paseto.NewV4SymmetricKey().ExportHex()
}

func (m *pasetoV4LocalManager) Issue(userID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(m.ttl)

	tok := paseto.NewToken()
	tok.SetIssuer(m.issuer)
	tok.SetIssuedAt(now)
	tok.SetNotBefore(now)
	tok.SetExpiration(exp)
	_ = tok.Set("uid", userID)

	return tok.V4Encrypt(m.key, nil), exp, nil
}

func (m *pasetoV4LocalManager) Verify(token string, now time.Time) (Claims, error) {
	// Validate slightly in the future: tolerates "nbf" skew between hosts and
	// makes the expiry check marginally stricter, never looser.
	validNow := now.Add(m.clockSkew)

	// Fresh parser per call so rules never accumulate across verifies.
	p := paseto.NewParser()
	p.AddRule(paseto.IssuedBy(m.issuer))
	p.AddRule(paseto.ValidAt(validNow))

	parsed, err := p.ParseV4Local(m.key, token, nil)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	uid, err := parsed.GetString("uid")
	if err != nil || uid == "" {
		return Claims{}, ErrInvalidToken
	}

	iss, _ := parsed.GetIssuer()
	iat, _ := parsed.GetIssuedAt()
	exp, err := parsed.GetExpiration()
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	// The validity window is half-open: a token is already invalid at the
	// exact expiry instant, measured on the caller's clock.
	if !validNow.Before(exp) {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		UserID:    uid,
		IssuedAt:  iat,
		ExpiresAt: exp,
		Issuer:    iss,
	}, nil
}
