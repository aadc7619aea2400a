package ports

import (
	"context"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

// UserLookup is the read side of the user registry used by the auth session.
type UserLookup interface {
	FindByEmail(email string) (*domain.User, bool)
	FindByID(id string) (*domain.User, bool)
	Count() int
}

// UserRegistry owns the list of registered users.
type UserRegistry interface {
	UserLookup
	Initialize(ctx context.Context) error
	Register(ctx context.Context, data domain.RegisterData) error
	Users() []domain.User
	Status() domain.RegistryStatus
}
