// File: internal/backend/auth.go
package backend

import (
    "context"

    "github.com/salucare/triage-console/internal/domain"
)

type loginRequest struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type loginResponse struct {
    Token string           `json:"token"`
    User  domain.AdminUser `json:"user"`
}

// Login exchanges credentials for a bearer token and the staff profile.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
    var data loginResponse
    if err := c.post(ctx, "login", "/admin/auth/login", loginRequest{Email: email, Password: password}, &data); err != nil {
        return nil, err
    }
    return &domain.AuthSession{Token: data.Token, User: data.User}, nil
}

// Me verifies the current token against the backend and returns the
// up-to-date profile for it.
func (c *Client) Me(ctx context.Context) (*domain.AdminUser, error) {
    var user domain.AdminUser
    if err := c.get(ctx, "me", "/admin/auth/me", nil, &user); err != nil {
        return nil, err
    }
    return &user, nil
}
