// File: internal/middleware/session.go
package middleware

import (
    "net/http"
    "sync"
    "time"

    "github.com/google/uuid"
)

// SessionCookieName is the browser cookie that ties an operator's browser to
// the console's auth session.
const SessionCookieName = "console_session"

// SessionGuard issues and checks the operator's browser cookie. The backend
// token itself never leaves the server; the cookie only carries an opaque id
// minted at login and invalidated on logout or global teardown.
type SessionGuard struct {
    mu     sync.Mutex
    active map[string]struct{}
}

func NewSessionGuard() *SessionGuard {
    return &SessionGuard{active: make(map[string]struct{})}
}

// Issue mints a browser session id and sets the cookie.
func (g *SessionGuard) Issue(w http.ResponseWriter) string {
    id := uuid.NewString()
    g.mu.Lock()
    g.active[id] = struct{}{}
    g.mu.Unlock()

    http.SetCookie(w, &http.Cookie{
        Name:     SessionCookieName,
        Value:    id,
        Path:     "/",
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    })
    return id
}

// Valid reports whether the request carries a live browser session.
func (g *SessionGuard) Valid(r *http.Request) bool {
    cookie, err := r.Cookie(SessionCookieName)
    if err != nil {
        return false
    }
    g.mu.Lock()
    defer g.mu.Unlock()
    _, ok := g.active[cookie.Value]
    return ok
}

// Revoke invalidates one browser session and clears its cookie.
func (g *SessionGuard) Revoke(w http.ResponseWriter, r *http.Request) {
    if cookie, err := r.Cookie(SessionCookieName); err == nil {
        g.mu.Lock()
        delete(g.active, cookie.Value)
        g.mu.Unlock()
    }
    clearCookie(w)
}

// RevokeAll invalidates every browser session. Called when a 401 from the
// backend tears the whole auth state down.
func (g *SessionGuard) RevokeAll() {
    g.mu.Lock()
    defer g.mu.Unlock()
    g.active = make(map[string]struct{})
}

func clearCookie(w http.ResponseWriter) {
    http.SetCookie(w, &http.Cookie{
        Name:     SessionCookieName,
        Value:    "",
        Path:     "/",
        Expires:  time.Unix(0, 0),
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    })
}
