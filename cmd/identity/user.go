package identity

import (
	"context"
	"time"
)

// User is the security principal every protected operation resolves to.
// It deliberately has no password field; credentials travel via UserAuth only.
type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}

// UserAuth bundles a user with its stored credential for login verification.
// It must never be serialized outward.
type UserAuth struct {
	User         User
	PasswordHash string
}

// CreateUserInput describes a registration. PasswordHash is the already
// computed Argon2id hash; stores never see a plaintext password.
type CreateUserInput struct {
	Email        string
	DisplayName  string
	PasswordHash string
	Now          time.Time
}

// Store is the identity persistence boundary.
//
// Email uniqueness is enforced at write time by the implementation; a
// violation surfaces as ConflictError with Field "email".
type Store interface {
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserAuthByEmail(ctx context.Context, email string) (UserAuth, error)
}
