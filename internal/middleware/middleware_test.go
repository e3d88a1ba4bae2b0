// File: internal/middleware/middleware_test.go
package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/salucare/triage-console/internal/logger"
)

func TestSessionGuardLifecycle(t *testing.T) {
    guard := NewSessionGuard()

    rec := httptest.NewRecorder()
    id := guard.Issue(rec)
    require.NotEmpty(t, id)

    cookies := rec.Result().Cookies()
    require.Len(t, cookies, 1)
    assert.Equal(t, SessionCookieName, cookies[0].Name)
    assert.Equal(t, id, cookies[0].Value)
    assert.True(t, cookies[0].HttpOnly)

    r := httptest.NewRequest("GET", "/dashboard", nil)
    r.AddCookie(cookies[0])
    assert.True(t, guard.Valid(r))

    guard.Revoke(httptest.NewRecorder(), r)
    assert.False(t, guard.Valid(r))
}

func TestSessionGuardRejectsUnknownCookie(t *testing.T) {
    guard := NewSessionGuard()

    r := httptest.NewRequest("GET", "/dashboard", nil)
    assert.False(t, guard.Valid(r), "no cookie")

    r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
    assert.False(t, guard.Valid(r), "cookie not issued by this guard")
}

func TestSessionGuardRevokeAll(t *testing.T) {
    guard := NewSessionGuard()

    rec1 := httptest.NewRecorder()
    guard.Issue(rec1)
    rec2 := httptest.NewRecorder()
    guard.Issue(rec2)

    guard.RevokeAll()

    for _, rec := range []*httptest.ResponseRecorder{rec1, rec2} {
        r := httptest.NewRequest("GET", "/", nil)
        r.AddCookie(rec.Result().Cookies()[0])
        assert.False(t, guard.Valid(r))
    }
}

func TestRecoverPanicReturns500(t *testing.T) {
    handler := RecoverPanic(&logger.NoOpLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        panic("boom")
    }))

    rec := httptest.NewRecorder()
    handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestLoggingPassesThrough(t *testing.T) {
    handler := RequestLogging(&logger.NoOpLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusTeapot)
    }))

    rec := httptest.NewRecorder()
    handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
    assert.Equal(t, http.StatusTeapot, rec.Code)
}
