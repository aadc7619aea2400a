package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
)

// UserRegistry keeps the registered users in memory and re-serialises the
// whole list after every mutation.
type UserRegistry struct {
	store  ports.KeyValueStore
	queue  ports.MutationQueue
	hasher ports.PasswordHasher
	log    zerolog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	users   []domain.User
	session ports.SessionStarter

	state opState
}

func NewUserRegistry(store ports.KeyValueStore, queue ports.MutationQueue, hasher ports.PasswordHasher, log zerolog.Logger, opts ...Option) *UserRegistry {
	o := buildOptions(opts)
	return &UserRegistry{
		store:  store,
		queue:  queue,
		hasher: hasher,
		log:    log,
		now:    o.now,
		users:  []domain.User{},
	}
}

// BindSession sets the session used to log new users in after Register.
func (r *UserRegistry) BindSession(s ports.SessionStarter) {
	r.mu.Lock()
	r.session = s
	r.mu.Unlock()
}

// Initialize replaces the in-memory users with the stored list. Undecodable
// data is logged and replaced by an empty list; storage failures are returned.
func (r *UserRegistry) Initialize(ctx context.Context) error {
	return r.queue.Do(ctx, ports.KeyUsers, func(ctx context.Context) error {
		users, _, err := loadRecords[domain.User](ctx, r.store, ports.KeyUsers)
		switch {
		case errors.Is(err, errDecode):
			r.log.Error().Err(err).Msg("failed to parse stored users")
			users = []domain.User{}
		case err != nil:
			r.log.Error().Err(err).Msg("failed to load users")
			return err
		}
		if users == nil {
			users = []domain.User{}
		}

		r.mu.Lock()
		r.users = users
		r.mu.Unlock()

		r.log.Debug().Int("count", len(users)).Msg("users loaded")
		return nil
	})
}

// Register validates uniqueness, appends the new user, persists the list and
// logs the user in with the supplied credentials.
func (r *UserRegistry) Register(ctx context.Context, data domain.RegisterData) error {
	r.state.begin()

	err := r.queue.Do(ctx, ports.KeyUsers, func(ctx context.Context) error {
		return r.register(ctx, data)
	})
	if err == nil {
		r.mu.RLock()
		session := r.session
		r.mu.RUnlock()
		if session != nil {
			err = session.Login(ctx, data.Credentials)
		}
	}

	if err != nil {
		r.log.Error().Err(err).Str("email", data.Email).Msg("registration failed")
	}
	return r.state.end(err)
}

func (r *UserRegistry) register(ctx context.Context, data domain.RegisterData) error {
	r.mu.RLock()
	current := r.users
	r.mu.RUnlock()

	for _, u := range current {
		if u.Email == data.Email {
			return domain.ErrDuplicateEmail
		}
	}
	for _, u := range current {
		if u.Username == data.Username {
			return domain.ErrDuplicateUsername
		}
	}

	hash, err := r.hasher.Hash(data.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := r.now().UTC()
	user := domain.User{
		ID:           nextID(current, func(u domain.User) string { return u.ID }),
		Email:        data.Email,
		Username:     data.Username,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Role:         domain.RoleUser,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	next := append(slices.Clone(current), user)
	if err := saveRecords(ctx, r.store, ports.KeyUsers, next); err != nil {
		return err
	}

	r.mu.Lock()
	r.users = next
	r.mu.Unlock()

	r.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return nil
}

func (r *UserRegistry) FindByEmail(email string) (*domain.User, bool) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *UserRegistry) FindByID(id string) (*domain.User, bool) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *UserRegistry) find(match func(domain.User) bool) (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, true
		}
	}
	return nil, false
}

// Users returns a copy of the registered users in registration order.
func (r *UserRegistry) Users() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.users)
}

func (r *UserRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *UserRegistry) Status() domain.RegistryStatus {
	return r.state.snapshot()
}
