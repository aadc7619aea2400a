package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
)

// AuthSession holds the single login state of the process. Only the token and
// a {userId, token} record are persisted.
type AuthSession struct {
	users  ports.UserLookup
	store  ports.KeyValueStore
	nav    ports.Navigator
	tokens ports.TokenGenerator
	hasher ports.PasswordHasher
	log    zerolog.Logger

	mu    sync.RWMutex
	user  *domain.User
	token string

	state opState
}

func NewAuthSession(
	users ports.UserLookup,
	store ports.KeyValueStore,
	nav ports.Navigator,
	tokens ports.TokenGenerator,
	hasher ports.PasswordHasher,
	log zerolog.Logger,
) *AuthSession {
	return &AuthSession{
		users:  users,
		store:  store,
		nav:    nav,
		tokens: tokens,
		hasher: hasher,
		log:    log,
	}
}

// Restore loads the persisted token and, when the stored session record
// belongs to it, the owning user. Call after the user registry is initialized.
func (s *AuthSession) Restore(ctx context.Context) error {
	token, found, err := s.store.Get(ctx, ports.KeyToken)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !found || token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.resolveUser(ctx, token)
	switch {
	case err != nil:
		s.clear(ctx)
		s.log.Warn().Err(err).Msg("stored token rejected")
	case user != nil:
		s.log.Info().Str("user_id", user.ID).Msg("session restored")
	default:
		s.log.Warn().Msg("session token restored without user")
	}
	return nil
}

// Login looks the user up by email and opens a session. The password is only
// checked when the configured hasher verifies it.
func (s *AuthSession) Login(ctx context.Context, creds domain.Credentials) error {
	s.state.begin()
	err := s.login(ctx, creds)
	if err != nil {
		s.log.Error().Err(err).Str("email", creds.Email).Msg("login failed")
	}
	return s.state.end(err)
}

func (s *AuthSession) login(ctx context.Context, creds domain.Credentials) error {
	user, ok := s.users.FindByEmail(creds.Email)
	if !ok {
		return domain.ErrUserNotFound
	}
	if err := s.hasher.Compare(user.PasswordHash, creds.Password); err != nil {
		return domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	if err := s.persist(ctx, user.ID, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	s.navigate(ctx, domain.RouteHome, true)
	return nil
}

func (s *AuthSession) persist(ctx context.Context, userID, token string) error {
	if err := s.store.Set(ctx, ports.KeyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	raw, err := json.Marshal(domain.SessionRecord{UserID: userID, Token: token})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, ports.KeySession, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Logout clears the session and its persisted keys. It never fails; storage
// errors are logged.
func (s *AuthSession) Logout(ctx context.Context) {
	s.clear(ctx)
	s.log.Info().Msg("user logged out")
	s.navigate(ctx, domain.RouteLogin, false)
}

// CheckAuth validates a token that has no user attached. An empty user
// registry or a signed token that fails verification expires the session;
// otherwise the user is re-resolved when possible.
func (s *AuthSession) CheckAuth(ctx context.Context) error {
	s.mu.RLock()
	token, user := s.token, s.user
	s.mu.RUnlock()

	if token == "" {
		return nil
	}

	s.state.begin()
	if user != nil {
		return s.state.end(nil)
	}

	if s.users.Count() == 0 {
		s.clear(ctx)
		s.log.Warn().Msg("auth check failed: no users found")
		return s.state.end(domain.ErrSessionExpired)
	}

	if _, err := s.resolveUser(ctx, token); err != nil {
		s.clear(ctx)
		s.log.Warn().Err(err).Msg("auth check failed: token rejected")
		return s.state.end(domain.ErrSessionExpired)
	}
	return s.state.end(nil)
}

// resolveUser attaches the user the token belongs to. It returns nil when the
// user cannot be resolved, and an error only when a signed token fails
// verification.
func (s *AuthSession) resolveUser(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.ownerOf(ctx, token)
	if err != nil || userID == "" {
		return nil, err
	}

	user, ok := s.users.FindByID(userID)
	if !ok {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		return nil, nil
	}
	s.user = user
	return user, nil
}

// ownerOf returns the id of the user token was issued for. Signed tokens
// carry it; opaque ones are matched against the stored session record.
func (s *AuthSession) ownerOf(ctx context.Context, token string) (string, error) {
	if p, ok := s.tokens.(ports.TokenParser); ok {
		userID, err := p.Parse(token)
		if err != nil {
			return "", fmt.Errorf("parse token: %w", err)
		}
		return userID, nil
	}

	raw, found, err := s.store.Get(ctx, ports.KeySession)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read session record")
		return "", nil
	}
	if !found {
		return "", nil
	}

	var rec domain.SessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.log.Warn().Err(err).Msg("failed to parse session record")
		return "", nil
	}
	if rec.Token != token {
		return "", nil
	}
	return rec.UserID, nil
}

func (s *AuthSession) clear(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	for _, key := range []string{ports.KeyToken, ports.KeySession} {
		if err := s.store.Remove(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to remove session key")
		}
	}
}

func (s *AuthSession) navigate(ctx context.Context, name domain.RouteName, authenticated bool) {
	if s.nav == nil {
		return
	}
	if _, err := s.nav.NavigateTo(ctx, name, authenticated); err != nil {
		s.log.Warn().Err(err).Str("route", string(name)).Msg("navigation failed")
	}
}

func (s *AuthSession) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *AuthSession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the logged-in user, or nil.
func (s *AuthSession) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthSession) Snapshot() domain.Session {
	st := s.state.snapshot()
	token := s.Token()
	return domain.Session{
		User:            s.User(),
		Token:           token,
		IsAuthenticated: token != "",
		IsLoading:       st.IsLoading,
		Error:           st.Error,
	}
}
