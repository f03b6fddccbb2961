package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"habitd/cmd/identity"
	"habitd/cmd/security/password"
	"habitd/cmd/security/token"
)

// Service implements registration, login, and per-request identity
// resolution over an identity.Store.
type Service struct {
	log    *slog.Logger
	users  identity.Store
	tokens token.Manager
	pw     password.Config

	// dummyHash is verified on the unknown-email login path so both login
	// failures take comparable time.
	dummyHash string
}

// NewService wires a Service. All dependencies are injected; nothing is
// read from ambient state after construction.
func NewService(log *slog.Logger, users identity.Store, tokens token.Manager, pw password.Config) *Service {
	if log == nil {
		log = slog.Default()
	}

	s := &Service{log: log, users: users, tokens: tokens, pw: pw}

	if hash, err := pw.Hash("dummy-password-for-timing-only"); err == nil {
		s.dummyHash = hash
	}
	return s
}

// Register creates a user. The password is policy-checked and hashed before
// any persistence write; the store's unique constraint is the final backstop
// against a concurrent duplicate, surfaced as ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, email, displayName, plaintext string, now time.Time) (identity.User, error) {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)

	if email == "" || !strings.Contains(email, "@") {
		return identity.User{}, identity.OpError{Op: "auth.Register", Kind: identity.ErrInvalidInput, Msg: "valid email is required"}
	}
	if displayName == "" {
		return identity.User{}, identity.OpError{Op: "auth.Register", Kind: identity.ErrInvalidInput, Msg: "display_name is required"}
	}

	hash, err := s.pw.Hash(plaintext)
	if err != nil {
		return identity.User{}, identity.OpError{Op: "auth.Register", Kind: identity.ErrInvalidInput, Msg: err.Error()}
	}

	u, err := s.users.CreateUser(ctx, identity.CreateUserInput{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		Now:          now,
	})
	if err != nil {
		if identity.IsConflict(err) {
			return identity.User{}, ErrDuplicateEmail
		}
		return identity.User{}, err
	}

	s.log.Info("auth.register", "user_id", u.ID)
	return u, nil
}

// Authenticated is the result of a successful login.
type Authenticated struct {
	User      identity.User
	Token     string
	ExpiresAt time.Time
}

// Authenticate verifies an email/password pair and issues a bearer token.
// Unknown email and wrong password both return ErrInvalidCredentials with
// no externally observable difference.
func (s *Service) Authenticate(ctx context.Context, email, plaintext string, now time.Time) (Authenticated, error) {
	ua, lookupErr := s.users.GetUserAuthByEmail(ctx, strings.TrimSpace(email))
	if lookupErr != nil {
		if identity.IsNotFound(lookupErr) {
			if s.dummyHash != "" {
				_, _ = s.pw.Verify(s.dummyHash, plaintext)
			}
			return Authenticated{}, ErrInvalidCredentials
		}
		return Authenticated{}, lookupErr
	}

	ok, err := s.pw.Verify(ua.PasswordHash, plaintext)
	if err != nil || !ok {
		return Authenticated{}, ErrInvalidCredentials
	}

	tok, exp, err := s.tokens.Issue(ua.User.ID, now)
	if err != nil {
		return Authenticated{}, err
	}

	s.log.Info("auth.login", "user_id", ua.User.ID)
	return Authenticated{User: ua.User, Token: tok, ExpiresAt: exp}, nil
}

// Resolve validates a bearer token and loads the user it claims.
// Any token failure, and a claim pointing at a user that no longer exists,
// surface uniformly as ErrUnauthenticated. Tokens do not self-invalidate on
// user deletion; that staleness window is bounded by the token TTL.
func (s *Service) Resolve(ctx context.Context, bearer string, now time.Time) (identity.User, error) {
	claims, err := s.tokens.Verify(bearer, now)
	if err != nil {
		return identity.User{}, ErrUnauthenticated
	}

	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if identity.IsNotFound(err) {
			return identity.User{}, ErrUnauthenticated
		}
		return identity.User{}, err
	}
	return u, nil
}
