// File: internal/services/authstore/store_test.go
package authstore

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/salucare/triage-console/internal/backend"
    "github.com/salucare/triage-console/internal/domain"
    "github.com/salucare/triage-console/internal/logger"
    authrepo "github.com/salucare/triage-console/internal/repository/auth"
)

type fakeBackend struct {
    mu         sync.Mutex
    session    *domain.AuthSession
    loginErr   error
    meUser     *domain.AdminUser
    meErr      error
    loginCalls int
    meCalls    int
}

func (b *fakeBackend) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.loginCalls++
    if b.loginErr != nil {
        return nil, b.loginErr
    }
    return b.session, nil
}

func (b *fakeBackend) Me(ctx context.Context) (*domain.AdminUser, error) {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.meCalls++
    if b.meErr != nil {
        return nil, b.meErr
    }
    return b.meUser, nil
}

type memoryRepo struct {
    mu      sync.Mutex
    session *domain.AuthSession
    saveErr error
}

func (r *memoryRepo) Save(ctx context.Context, session *domain.AuthSession) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    if r.saveErr != nil {
        return r.saveErr
    }
    copied := *session
    r.session = &copied
    return nil
}

func (r *memoryRepo) Load(ctx context.Context) (*domain.AuthSession, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    if r.session == nil {
        return nil, authrepo.ErrNoSession
    }
    copied := *r.session
    return &copied, nil
}

func (r *memoryRepo) Clear(ctx context.Context) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.session = nil
    return nil
}

func signedToken(t *testing.T, expiresAt time.Time) string {
    t.Helper()
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "sub": "op-1",
        "exp": expiresAt.Unix(),
    })
    signed, err := token.SignedString([]byte("test-secret"))
    require.NoError(t, err)
    return signed
}

func sampleSession(token string) *domain.AuthSession {
    return &domain.AuthSession{
        Token: token,
        User:  domain.AdminUser{ID: "op-1", Email: "ana@salucare.com", Name: "Ana", Role: "therapist"},
    }
}

func authError() error {
    return &backend.APIError{Type: backend.ErrTypeAuth, Operation: "me", StatusCode: 401, Message: "unauthorized"}
}

func TestLoginPersistsAndExposesSession(t *testing.T) {
    api := &fakeBackend{session: sampleSession("tok-1")}
    repo := &memoryRepo{}
    store := NewStore(api, repo, &logger.NoOpLogger{})

    session, err := store.Login(context.Background(), "ana@salucare.com", "secret")
    require.NoError(t, err)

    assert.Equal(t, "tok-1", store.Token())
    assert.True(t, store.IsAuthenticated())
    assert.Equal(t, "Ana", store.User().Name)
    require.NotNil(t, repo.session)
    assert.Equal(t, session.Token, repo.session.Token)
}

func TestLoginFailureLeavesPriorSessionUntouched(t *testing.T) {
    api := &fakeBackend{session: sampleSession("tok-1")}
    repo := &memoryRepo{}
    store := NewStore(api, repo, &logger.NoOpLogger{})
    _, err := store.Login(context.Background(), "ana@salucare.com", "secret")
    require.NoError(t, err)

    api.mu.Lock()
    api.loginErr = authError()
    api.mu.Unlock()

    _, err = store.Login(context.Background(), "ana@salucare.com", "wrong")
    require.Error(t, err)
    assert.Equal(t, "tok-1", store.Token(), "failed login must not clear the prior session")
    assert.Equal(t, "tok-1", repo.session.Token)
}

func TestLoginPersistFailureDoesNotInstallSession(t *testing.T) {
    api := &fakeBackend{session: sampleSession("tok-1")}
    repo := &memoryRepo{saveErr: errors.New("disk full")}
    store := NewStore(api, repo, &logger.NoOpLogger{})

    _, err := store.Login(context.Background(), "ana@salucare.com", "secret")
    require.Error(t, err)
    assert.False(t, store.IsAuthenticated())
}

func TestLogoutIsIdempotent(t *testing.T) {
    api := &fakeBackend{session: sampleSession("tok-1")}
    repo := &memoryRepo{}
    store := NewStore(api, repo, &logger.NoOpLogger{})
    _, err := store.Login(context.Background(), "ana@salucare.com", "secret")
    require.NoError(t, err)

    store.Logout(context.Background())
    store.Logout(context.Background())

    assert.False(t, store.IsAuthenticated())
    assert.Nil(t, store.User())
    assert.Nil(t, repo.session)
}

func TestInitRestoresPersistedSession(t *testing.T) {
    token := signedToken(t, time.Now().Add(time.Hour))
    repo := &memoryRepo{session: sampleSession(token)}
    api := &fakeBackend{meUser: &domain.AdminUser{ID: "op-1", Email: "ana@salucare.com", Name: "Ana Actualizada", Role: "admin"}}
    store := NewStore(api, repo, &logger.NoOpLogger{})

    store.Init(context.Background())

    assert.True(t, store.IsAuthenticated())
    assert.False(t, store.IsLoading())
    assert.Equal(t, "Ana Actualizada", store.User().Name, "verify refreshes the stored profile")
    assert.Equal(t, "admin", store.User().Role)
}

func TestInitDiscardsExpiredToken(t *testing.T) {
    token := signedToken(t, time.Now().Add(-time.Hour))
    repo := &memoryRepo{session: sampleSession(token)}
    api := &fakeBackend{}
    store := NewStore(api, repo, &logger.NoOpLogger{})

    store.Init(context.Background())

    assert.False(t, store.IsAuthenticated())
    assert.Nil(t, repo.session)
    assert.Zero(t, api.meCalls, "an expired token is dropped without a round-trip")
}

func TestInitLogsOutWhenBackendRejectsToken(t *testing.T) {
    token := signedToken(t, time.Now().Add(time.Hour))
    repo := &memoryRepo{session: sampleSession(token)}
    api := &fakeBackend{meErr: authError()}
    store := NewStore(api, repo, &logger.NoOpLogger{})

    store.Init(context.Background())

    assert.False(t, store.IsAuthenticated())
    assert.Nil(t, repo.session)
}

func TestInitKeepsSessionWhenBackendUnreachable(t *testing.T) {
    token := signedToken(t, time.Now().Add(time.Hour))
    repo := &memoryRepo{session: sampleSession(token)}
    api := &fakeBackend{meErr: &backend.APIError{Type: backend.ErrTypeNetwork, Operation: "me", Message: "timeout"}}
    store := NewStore(api, repo, &logger.NoOpLogger{})

    store.Init(context.Background())

    assert.True(t, store.IsAuthenticated(), "a network failure must not destroy the session")
    assert.NotNil(t, repo.session)
}

func TestInitWithNoPersistedSession(t *testing.T) {
    store := NewStore(&fakeBackend{}, &memoryRepo{}, &logger.NoOpLogger{})
    store.Init(context.Background())
    assert.False(t, store.IsAuthenticated())
    assert.False(t, store.IsLoading())
}

func TestForceLogoutTearsSessionDown(t *testing.T) {
    api := &fakeBackend{session: sampleSession("tok-1")}
    repo := &memoryRepo{}
    store := NewStore(api, repo, &logger.NoOpLogger{})
    _, err := store.Login(context.Background(), "ana@salucare.com", "secret")
    require.NoError(t, err)

    store.ForceLogout()

    assert.False(t, store.IsAuthenticated())
    assert.Empty(t, store.Token())
    assert.Nil(t, repo.session)
}
