// File: internal/services/analysis/service.go
package analysis

import (
    "context"
    "errors"

    gocache "github.com/patrickmn/go-cache"

    "github.com/salucare/triage-console/internal/domain"
    "github.com/salucare/triage-console/internal/logger"
    analysisrepo "github.com/salucare/triage-console/internal/repository/analysis"
)

// Backend is the slice of the API client the analysis service needs.
type Backend interface {
    AnalyzeSession(ctx context.Context, sessionID string) (*domain.AIAnalysis, error)
    AnalyzeSessionAsNote(ctx context.Context, sessionID string) (*domain.AIAnalysis, error)
}

// Service caches AI analyses per session. The backend call is slow and
// billed, so a result is fetched once and then served from cache forever:
// entries never expire on their own and survive restarts through the
// repository. Only Invalidate removes an entry.
type Service struct {
    api  Backend
    repo analysisrepo.Repository
    hot  *gocache.Cache
    log  logger.Logger
}

func NewService(api Backend, repo analysisrepo.Repository, log logger.Logger) *Service {
    return &Service{
        api:  api,
        repo: repo,
        hot:  gocache.New(gocache.NoExpiration, 0),
        log:  log,
    }
}

// GetOrFetch returns the cached analysis for the session, fetching from the
// backend only on a miss. A fetch failure writes nothing, so a later retry
// starts clean and existing entries for other sessions are untouched.
func (s *Service) GetOrFetch(ctx context.Context, sessionID string) (*domain.AIAnalysis, error) {
    if hit, ok := s.hot.Get(sessionID); ok {
        return hit.(*domain.AIAnalysis), nil
    }

    stored, err := s.repo.Find(ctx, sessionID)
    if err == nil {
        s.hot.Set(sessionID, stored, gocache.NoExpiration)
        return stored, nil
    }
    if !errors.Is(err, analysisrepo.ErrNotCached) {
        s.log.Warn("analysis store read failed", "session_id", sessionID, "error", err)
    }

    fetched, err := s.api.AnalyzeSession(ctx, sessionID)
    if err != nil {
        return nil, err
    }

    s.hot.Set(sessionID, fetched, gocache.NoExpiration)
    if err := s.repo.Save(ctx, sessionID, fetched); err != nil {
        // The in-memory copy still serves this process; only restart
        // durability is lost.
        s.log.Warn("analysis store write failed", "session_id", sessionID, "error", err)
    }
    s.log.Info("analysis fetched", "session_id", sessionID, "urgency", fetched.UrgencyLevel)
    return fetched, nil
}

// Cached returns the analysis without ever calling the backend, or nil when
// the session has no cached entry.
func (s *Service) Cached(ctx context.Context, sessionID string) *domain.AIAnalysis {
    if hit, ok := s.hot.Get(sessionID); ok {
        return hit.(*domain.AIAnalysis)
    }
    stored, err := s.repo.Find(ctx, sessionID)
    if err != nil {
        return nil
    }
    s.hot.Set(sessionID, stored, gocache.NoExpiration)
    return stored
}

// SaveAsNote runs the analysis again with backend-side note persistence.
// It is a pass-through: the cache is not consulted and not modified, so the
// cached copy the operator was reading stays exactly as it was.
func (s *Service) SaveAsNote(ctx context.Context, sessionID string) (*domain.AIAnalysis, error) {
    saved, err := s.api.AnalyzeSessionAsNote(ctx, sessionID)
    if err != nil {
        return nil, err
    }
    s.log.Info("analysis saved as clinical note", "session_id", sessionID)
    return saved, nil
}

// Invalidate drops the entry for a session from both cache layers. The next
// GetOrFetch will hit the backend again.
func (s *Service) Invalidate(ctx context.Context, sessionID string) error {
    s.hot.Delete(sessionID)
    if err := s.repo.Delete(ctx, sessionID); err != nil {
        return err
    }
    s.log.Info("analysis invalidated", "session_id", sessionID)
    return nil
}
