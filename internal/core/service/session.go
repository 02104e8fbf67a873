package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/storage"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
)

// UserKey is the storage key holding the logged-in user as JSON.
const UserKey = "user"

const storageTimeout = 5 * time.Second

// AuthClient is the part of the API client the session depends on.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	SetAuthToken(token string)
	HasToken() bool
}

// Session is a snapshot of the console state.
type Session struct {
	IsAuthenticated  bool         `json:"isAuthenticated" table:"AUTHENTICATED"`
	User             *domain.User `json:"user" table:"-"`
	DarkMode         bool         `json:"darkMode" table:"DARK MODE"`
	SidebarCollapsed bool         `json:"sidebarCollapsed" table:"SIDEBAR COLLAPSED"`
}

// ThemeApplier is called with the new dark-mode value after a toggle.
type ThemeApplier func(dark bool)

// SidebarApplier is called with the new collapsed value after a toggle.
type SidebarApplier func(collapsed bool)

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithThemeApplier registers the hook that applies dark mode.
func WithThemeApplier(fn ThemeApplier) SessionOption {
	return func(s *SessionStore) {
		s.applyTheme = fn
	}
}

// WithSidebarApplier registers the hook that applies the sidebar state.
func WithSidebarApplier(fn SidebarApplier) SessionOption {
	return func(s *SessionStore) {
		s.applySidebar = fn
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) SessionOption {
	return func(s *SessionStore) {
		s.logger = l
	}
}

// SessionStore is the authentication and preference state of one console
// process. All methods are safe for concurrent use.
type SessionStore struct {
	client       AuthClient
	store        storage.KV
	logger       logger.Logger
	applyTheme   ThemeApplier
	applySidebar SidebarApplier

	mu     sync.Mutex
	state  Session
	subs   map[int]chan Session
	nextID int
}

// NewSessionStore builds the store from the client's token and the
// persisted user. It performs no network call. A persisted user without
// a token is stale and is removed. kv may be nil for an ephemeral store.
func NewSessionStore(client AuthClient, kv storage.KV, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		client: client,
		store:  kv,
		logger: logger.Default(),
		subs:   make(map[int]chan Session),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state.IsAuthenticated = client.HasToken()
	if s.state.IsAuthenticated {
		s.state.User = s.loadUser()
	} else {
		s.deleteUser()
	}
	return s
}

func (s *SessionStore) loadUser() *domain.User {
	if s.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	raw, err := s.store.Get(ctx, []byte(UserKey))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("load persisted user failed", "error", err)
		return nil
	}

	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.Warn("discarding persisted user", "error", domain.ErrCorruptRecord.WithCause(err))
		return nil
	}
	return &u
}

func (s *SessionStore) saveUser(u domain.User) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		s.logger.Warn("encode user failed", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.store.Set(ctx, []byte(UserKey), data); err != nil {
		s.logger.Warn("persist user failed", "error", domain.ErrSessionStorage.WithCause(err))
	}
}

func (s *SessionStore) deleteUser() {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	err := s.store.Delete(ctx, []byte(UserKey))
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		s.logger.Warn("remove persisted user failed", "error", domain.ErrSessionStorage.WithCause(err))
	}
}

// State returns a snapshot of the current state.
func (s *SessionStore) State() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot must be called with mu held.
func (s *SessionStore) snapshot() Session {
	st := s.state
	st.IsAuthenticated = s.client.HasToken()
	if !st.IsAuthenticated || st.User == nil {
		st.User = nil
		return st
	}
	u := *st.User
	st.User = &u
	return st
}

// ToggleDarkMode flips dark mode and applies it.
func (s *SessionStore) ToggleDarkMode() bool {
	s.mu.Lock()
	s.state.DarkMode = !s.state.DarkMode
	dark := s.state.DarkMode
	s.publish()
	s.mu.Unlock()

	if s.applyTheme != nil {
		s.applyTheme(dark)
	}
	return dark
}

// ToggleSidebar flips the collapsed sidebar preference.
func (s *SessionStore) ToggleSidebar() bool {
	s.mu.Lock()
	s.state.SidebarCollapsed = !s.state.SidebarCollapsed
	collapsed := s.state.SidebarCollapsed
	s.publish()
	s.mu.Unlock()

	if s.applySidebar != nil {
		s.applySidebar(collapsed)
	}
	return collapsed
}

// Login authenticates through the client. On success the user is held in
// memory and persisted and true is returned. On any failure the state is
// unchanged and the cause is returned with false.
func (s *SessionStore) Login(ctx context.Context, email, password string) (bool, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.logger.Debug("login failed", "email", email, "error", err)
		return false, err
	}

	user := resp.User
	s.saveUser(user)

	s.mu.Lock()
	s.state.IsAuthenticated = true
	s.state.User = &user
	s.publish()
	s.mu.Unlock()

	s.logger.Info("logged in", "email", user.Email)
	return true, nil
}

// Logout clears the token, the held user and the persisted user. It is
// idempotent.
func (s *SessionStore) Logout() {
	s.client.SetAuthToken("")
	s.deleteUser()

	s.mu.Lock()
	s.state.IsAuthenticated = false
	s.state.User = nil
	s.publish()
	s.mu.Unlock()
}

// RequireAuth returns ErrNotLoggedIn unless a token is held.
func (s *SessionStore) RequireAuth() error {
	if !s.client.HasToken() {
		return domain.ErrNotLoggedIn
	}
	return nil
}

// Watch returns a channel receiving the current state and every later
// change. A slow reader sees only the latest state. The channel is closed
// when ctx ends.
func (s *SessionStore) Watch(ctx context.Context) <-chan Session {
	ch := make(chan Session, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.snapshot()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// publish must be called with mu held.
func (s *SessionStore) publish() {
	st := s.snapshot()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}
