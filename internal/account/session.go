// Package account хранит текущего пользователя между запусками.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"interview-practice/internal/api"
)

const storageKey = "user-storage"

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionExpired = errors.New("stored login is no longer valid, please log in again")
)

// Authenticator часть api.Client, нужная для входа
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (*api.User, error)
	Register(ctx context.Context, creds api.Credentials) (*api.User, error)
	Me(ctx context.Context) (*api.User, error)
	SetUserID(id string)
}

type persisted struct {
	User            *api.User `json:"user"`
	IsAuthenticated bool      `json:"isAuthenticated"`
}

// Session явный контекст пользователя: Load при старте, Logout очищает
type Session struct {
	store *Store
	auth  Authenticator

	mu   sync.RWMutex
	user *api.User
}

func NewSession(store *Store, auth Authenticator) *Session {
	return &Session{store: store, auth: auth}
}

// Load читает сохраненного пользователя и проверяет его на сервере.
// Если сервер его не признает, сохраненное состояние очищается.
func (s *Session) Load(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, storageKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var p persisted
	if err := json.Unmarshal([]byte(raw), &p); err != nil || p.User == nil || p.User.ID == "" || !p.IsAuthenticated {
		log.Printf("discarding unreadable %s entry", storageKey)
		return s.Logout(ctx)
	}

	s.auth.SetUserID(p.User.ID)
	user, err := s.auth.Me(ctx)
	if err != nil {
		log.Printf("refresh user %s: %v", p.User.ID, err)
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			return errors.Join(ErrSessionExpired, logoutErr)
		}
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	return s.SetUser(ctx, user)
}

func (s *Session) Login(ctx context.Context, creds api.Credentials) (*api.User, error) {
	user, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return user, s.SetUser(ctx, user)
}

func (s *Session) Register(ctx context.Context, creds api.Credentials) (*api.User, error) {
	user, err := s.auth.Register(ctx, creds)
	if err != nil {
		return nil, err
	}
	return user, s.SetUser(ctx, user)
}

// SetUser сохраняет пользователя и включает заголовок авторизации
func (s *Session) SetUser(ctx context.Context, user *api.User) error {
	if user == nil || user.ID == "" {
		return fmt.Errorf("user without id")
	}
	data, err := json.Marshal(persisted{User: user, IsAuthenticated: true})
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, storageKey, string(data)); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.auth.SetUserID(user.ID)
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.auth.SetUserID("")
	return s.store.Delete(ctx, storageKey)
}

func (s *Session) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

func (s *Session) UserID() string {
	if u := s.User(); u != nil {
		return u.ID
	}
	return ""
}

// Require возвращает пользователя или ErrNotLoggedIn
func (s *Session) Require() (*api.User, error) {
	if u := s.User(); u != nil {
		return u, nil
	}
	return nil, ErrNotLoggedIn
}
