package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubStore struct {
	mu     sync.Mutex
	data   map[string]string
	sets   map[string]int
	setErr error
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string]string), sets: make(map[string]int)}
}

func (s *stubStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.sets[key]++
	return nil
}

func (s *stubStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *stubStore) setCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[key]
}

// unreachableStore serves nothing: every Get fails as a dropped connection
// would, while writes still land in the wrapped store.
type unreachableStore struct {
	*stubStore
}

var errUnreachable = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func (s unreachableStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errUnreachable
}

// inlineQueue runs jobs on the caller's goroutine, one at a time.
type inlineQueue struct {
	mu sync.Mutex
}

func (q *inlineQueue) Do(ctx context.Context, _ string, fn func(context.Context) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return fn(ctx)
}

type stubNavigator struct {
	visits []domain.RouteName
}

func (n *stubNavigator) NavigateTo(_ context.Context, name domain.RouteName, _ bool) (domain.Route, error) {
	n.visits = append(n.visits, name)
	return domain.Route{Name: name}, nil
}

func (n *stubNavigator) Current() domain.Route {
	if len(n.visits) == 0 {
		return domain.Route{}
	}
	return domain.Route{Name: n.visits[len(n.visits)-1]}
}

type counterTokens struct {
	n int
}

func (g *counterTokens) Generate(*domain.User) (string, error) {
	g.n++
	return fmt.Sprintf("token-%d", g.n), nil
}

// signedTokens embeds the user id in the token, the way JWTs do.
type signedTokens struct{}

func (signedTokens) Generate(u *domain.User) (string, error) { return "signed." + u.ID, nil }

func (signedTokens) Parse(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "signed.")
	if !ok || id == "" {
		return "", errors.New("bad signature")
	}
	return id, nil
}

// plainHasher stores the password prefixed; Compare fails on mismatch.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hash:" + p, nil }

func (plainHasher) Compare(hash, p string) error {
	if hash != "hash:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type noopHasher struct{}

func (noopHasher) Hash(string) (string, error)  { return "", nil }
func (noopHasher) Compare(string, string) error { return nil }

// fixedClock returns a clock that always reports t.
func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

type fixture struct {
	store   *stubStore
	nav     *stubNavigator
	users   *UserRegistry
	session *AuthSession
}

func newFixture(hasher ports.PasswordHasher) *fixture {
	store := newStubStore()
	nav := &stubNavigator{}
	users := NewUserRegistry(store, &inlineQueue{}, hasher, zerolog.Nop())
	session := NewAuthSession(users, store, nav, &counterTokens{}, hasher, zerolog.Nop())
	users.BindSession(session)
	return &fixture{store: store, nav: nav, users: users, session: session}
}

func registerData(email, username string) domain.RegisterData {
	return domain.RegisterData{
		Credentials: domain.Credentials{Email: email, Password: "pass123"},
		Username:    username,
	}
}
