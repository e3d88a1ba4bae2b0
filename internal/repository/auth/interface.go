// File: internal/repository/auth/interface.go
package auth

import (
    "context"

    "github.com/salucare/triage-console/internal/domain"
)

// Repository persists the operator's auth session across console restarts.
type Repository interface {
    // Save replaces the stored session atomically.
    Save(ctx context.Context, session *domain.AuthSession) error
    // Load returns the stored session, or ErrNoSession when logged out.
    Load(ctx context.Context) (*domain.AuthSession, error)
    // Clear removes any stored session. Idempotent.
    Clear(ctx context.Context) error
}
