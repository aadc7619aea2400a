package ports

import (
	"context"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

// SessionStarter logs a user in. The user registry calls it after a
// successful registration.
type SessionStarter interface {
	Login(ctx context.Context, creds domain.Credentials) error
}

// AuthSession owns the current login state.
type AuthSession interface {
	SessionStarter
	Restore(ctx context.Context) error
	Logout(ctx context.Context)
	CheckAuth(ctx context.Context) error
	IsAuthenticated() bool
	Token() string
	Snapshot() domain.Session
}

// TokenGenerator issues opaque session tokens.
type TokenGenerator interface {
	Generate(user *domain.User) (string, error)
}

// TokenParser is implemented by generators whose tokens name their owner.
// Parse returns the user id a valid token was issued for.
type TokenParser interface {
	Parse(token string) (userID string, err error)
}

// PasswordHasher hashes passwords at registration and checks them at login.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
