package ports

import "context"

// Storage keys shared by the registries and the auth session.
const (
	KeyToken     = "token"
	KeySession   = "session"
	KeyUsers     = "users"
	KeyCustomers = "customers"
)

// KeyValueStore is the persistence adapter every registry writes through.
// Removing an absent key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MutationQueue runs fn after every previously submitted fn for the same key
// has finished. Do blocks until fn returns and yields its error.
type MutationQueue interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
