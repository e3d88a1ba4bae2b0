// File: internal/domain/user.go
package domain

// AdminUser is the staff profile the backend returns on login and verify.
// The console stores it verbatim next to the token; it never mints or
// mutates profiles itself.
type AdminUser struct {
    ID          string          `json:"id"`
    Email       string          `json:"email"`
    Name        string          `json:"name"`
    Role        string          `json:"role"` // "admin" | "therapist" | "supervisor"
    Status      string          `json:"status"`
    Permissions map[string][]string `json:"permissions,omitempty"`
}

// IsAdmin reports whether the user may manage departments.
func (u *AdminUser) IsAdmin() bool {
    return u.Role == "admin"
}

// AuthSession pairs the backend-issued bearer token with its user profile.
// Owned exclusively by the auth store; lives until logout or the first 401.
type AuthSession struct {
    Token string    `json:"token"`
    User  AdminUser `json:"user"`
}
