// File: internal/middleware/auth.go
package middleware

import (
    "net/http"

    "github.com/salucare/triage-console/internal/logger"
    "github.com/salucare/triage-console/internal/services/authstore"
)

// RequireAuth gates console routes behind the operator's login. A request
// passes only when the browser cookie is live and the auth store still holds
// a backend session; otherwise the browser is sent to the login page and a
// stale cookie is cleared.
func RequireAuth(store *authstore.Store, guard *SessionGuard, log logger.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if !guard.Valid(r) {
                log.Debug("no browser session", "path", r.URL.Path)
                clearCookie(w)
                http.Redirect(w, r, "/login", http.StatusSeeOther)
                return
            }
            if !store.IsAuthenticated() {
                log.Debug("auth store empty, redirecting", "path", r.URL.Path)
                guard.Revoke(w, r)
                http.Redirect(w, r, "/login", http.StatusSeeOther)
                return
            }
            next.ServeHTTP(w, r)
        })
    }
}

// RequireAdmin gates department administration. Must run after RequireAuth.
func RequireAdmin(store *authstore.Store, log logger.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            user := store.User()
            if user == nil || !user.IsAdmin() {
                name := "unknown"
                if user != nil {
                    name = user.Name
                }
                log.Warn("admin route denied", "user", name, "path", r.URL.Path)
                http.Error(w, "Forbidden: admin role required.", http.StatusForbidden)
                return
            }
            next.ServeHTTP(w, r)
        })
    }
}
