// File: internal/handlers/auth_handlers.go
package handlers

import (
    "net/http"
    "strings"

    "github.com/go-playground/validator/v10"

    "github.com/salucare/triage-console/internal/backend"
    "github.com/salucare/triage-console/internal/logger"
    "github.com/salucare/triage-console/internal/middleware"
    "github.com/salucare/triage-console/internal/ratelimit"
    "github.com/salucare/triage-console/internal/services/authstore"
    "github.com/salucare/triage-console/internal/services/watcher"
)

// AuthHandler holds the dependencies for the login and logout flows.
type AuthHandler struct {
    store    *authstore.Store
    guard    *middleware.SessionGuard
    limiter  *ratelimit.Limiter
    watchers *watcher.Manager
    validate *validator.Validate
    log      logger.Logger
}

func NewAuthHandler(store *authstore.Store, guard *middleware.SessionGuard, limiter *ratelimit.Limiter, watchers *watcher.Manager, log logger.Logger) *AuthHandler {
    return &AuthHandler{
        store:    store,
        guard:    guard,
        limiter:  limiter,
        watchers: watchers,
        validate: validator.New(),
        log:      log,
    }
}

type loginForm struct {
    Email    string `validate:"required,email"`
    Password string `validate:"required,min=6"`
}

// ShowLoginPage renders the login form. An already-authenticated browser is
// sent straight to the dashboard.
func (h *AuthHandler) ShowLoginPage(w http.ResponseWriter, r *http.Request) {
    if h.guard.Valid(r) && h.store.IsAuthenticated() {
        http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
        return
    }
    renderTemplate(w, "login.html", nil)
}

// Login validates the form, authenticates against the backend and issues
// the browser session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
    if err := r.ParseForm(); err != nil {
        http.Error(w, "Invalid form data", http.StatusBadRequest)
        return
    }

    form := loginForm{
        Email:    strings.TrimSpace(r.FormValue("email")),
        Password: r.FormValue("password"),
    }
    if err := h.validate.Struct(form); err != nil {
        renderTemplate(w, "login.html", map[string]interface{}{
            "Error": "Ingresá un email válido y una contraseña de al menos 6 caracteres.",
            "Email": form.Email,
        })
        return
    }

    session, err := h.store.Login(r.Context(), form.Email, form.Password)
    if err != nil {
        h.log.Warn("login rejected", "email", form.Email, "error", err)
        msg := "No se pudo iniciar sesión. Intentá de nuevo."
        if backend.IsAuthError(err) {
            msg = "Email o contraseña incorrectos."
        }
        renderTemplate(w, "login.html", map[string]interface{}{
            "Error": msg,
            "Email": form.Email,
        })
        return
    }

    h.limiter.Reset(ratelimit.ClientIP(r))
    h.guard.Issue(w)
    h.log.Info("operator logged in", "user", session.User.Name, "role", session.User.Role)
    http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout tears down the operator's session: watchers, auth store, cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
    h.watchers.CloseAll()
    h.store.Logout(r.Context())
    h.guard.Revoke(w, r)
    http.Redirect(w, r, "/login", http.StatusSeeOther)
}
