// File: internal/repository/analysis/interface.go
package analysis

import (
    "context"

    "github.com/salucare/triage-console/internal/domain"
)

// Repository is the persisted side of the AI-analysis cache, keyed by
// session id. Entries never expire on their own; writes are last-write-wins.
type Repository interface {
    Save(ctx context.Context, sessionID string, analysis *domain.AIAnalysis) error
    // Find returns the stored analysis, or ErrNotCached.
    Find(ctx context.Context, sessionID string) (*domain.AIAnalysis, error)
    Delete(ctx context.Context, sessionID string) error
}
