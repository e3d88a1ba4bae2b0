// File: internal/services/authstore/store.go

// Package authstore owns the operator's auth session: one process-wide store
// with an explicit init/login/logout lifecycle. Every other component reads
// the token through it, and any 401 anywhere in the console funnels back into
// ForceLogout so the teardown path is always the same.
package authstore

import (
    "context"
    "sync"
    "time"

    "github.com/salucare/triage-console/internal/auth"
    "github.com/salucare/triage-console/internal/backend"
    "github.com/salucare/triage-console/internal/domain"
    authrepo "github.com/salucare/triage-console/internal/repository/auth"
    "github.com/salucare/triage-console/internal/logger"
)

// Backend is the slice of the API client the store needs.
type Backend interface {
    Login(ctx context.Context, email, password string) (*domain.AuthSession, error)
    Me(ctx context.Context) (*domain.AdminUser, error)
}

// Store holds the current operator session in memory, mirrored to the local
// repository so it survives console restarts.
type Store struct {
    backend Backend
    repo    authrepo.Repository
    log     logger.Logger
    now     func() time.Time

    mu      sync.RWMutex
    session *domain.AuthSession
    loading bool
}

func NewStore(backendClient Backend, repo authrepo.Repository, log logger.Logger) *Store {
    if log == nil {
        log = &logger.NoOpLogger{}
    }
    return &Store{
        backend: backendClient,
        repo:    repo,
        log:     log,
        now:     time.Now,
    }
}

// SetBackend wires the API client in after construction. The store feeds the
// client its token while the client's 401 hook calls back into the store, so
// one of the two has to be attached late. Must be called before Init.
func (s *Store) SetBackend(backendClient Backend) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.backend = backendClient
}

// Init restores a persisted session and verifies it against the backend.
// Called once at startup; IsLoading is true only inside this window. A token
// the backend rejects (or one whose exp claim has already passed) forces a
// logout, any other failure keeps the session and lets later calls decide.
func (s *Store) Init(ctx context.Context) {
    s.mu.Lock()
    s.loading = true
    s.mu.Unlock()

    defer func() {
        s.mu.Lock()
        s.loading = false
        s.mu.Unlock()
    }()

    stored, err := s.repo.Load(ctx)
    if err != nil {
        if err != authrepo.ErrNoSession {
            s.log.Warn("could not restore auth session", "error", err)
        }
        return
    }

    s.mu.Lock()
    s.session = stored
    s.mu.Unlock()

    if auth.IsExpired(stored.Token, s.now()) {
        s.log.Info("stored token already expired, logging out", "user", stored.User.Email)
        s.Logout(ctx)
        return
    }

    user, err := s.Verify(ctx)
    if err != nil {
        if backend.IsAuthError(err) {
            s.log.Info("stored token rejected by backend, logging out")
            s.Logout(ctx)
        } else {
            s.log.Warn("token verification unavailable, keeping stored session", "error", err)
        }
        return
    }
    s.log.Info("restored auth session", "user", user.Email)
}

// Login exchanges credentials for a session and persists it atomically. On
// failure any prior session is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
    session, err := s.backend.Login(ctx, email, password)
    if err != nil {
        return nil, err
    }

    if err := s.repo.Save(ctx, session); err != nil {
        // The backend accepted the credentials but the local store failed;
        // without persistence the session would silently vanish on restart.
        return nil, err
    }

    s.mu.Lock()
    s.session = session
    s.mu.Unlock()

    s.log.Info("operator logged in", "user", session.User.Email, "role", session.User.Role)
    return session, nil
}

// Logout clears the persisted and in-memory session. Idempotent.
func (s *Store) Logout(ctx context.Context) {
    s.mu.Lock()
    s.session = nil
    s.mu.Unlock()

    if err := s.repo.Clear(ctx); err != nil {
        s.log.Warn("could not clear persisted session", "error", err)
    }
}

// ForceLogout is the global 401 teardown hook. Registered with the backend
// client so an unauthorized response from any endpoint ends the session.
func (s *Store) ForceLogout() {
    s.log.Warn("session invalidated by backend response")
    s.Logout(context.Background())
}

// Verify asks the backend for the profile behind the current token and
// refreshes the stored copy of it.
func (s *Store) Verify(ctx context.Context) (*domain.AdminUser, error) {
    user, err := s.backend.Me(ctx)
    if err != nil {
        return nil, err
    }

    s.mu.Lock()
    if s.session != nil {
        s.session.User = *user
        refreshed := *s.session
        s.mu.Unlock()
        if err := s.repo.Save(ctx, &refreshed); err != nil {
            s.log.Warn("could not persist refreshed profile", "error", err)
        }
        return user, nil
    }
    s.mu.Unlock()
    return user, nil
}

// Token returns the current bearer token, or "" when logged out. This is the
// backend client's token source.
func (s *Store) Token() string {
    s.mu.RLock()
    defer s.mu.RUnlock()
    if s.session == nil {
        return ""
    }
    return s.session.Token
}

// User returns the current staff profile, or nil when logged out.
func (s *Store) User() *domain.AdminUser {
    s.mu.RLock()
    defer s.mu.RUnlock()
    if s.session == nil {
        return nil
    }
    user := s.session.User
    return &user
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
    return s.Token() != ""
}

// IsLoading reports whether the startup verification is still running.
func (s *Store) IsLoading() bool {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.loading
}
