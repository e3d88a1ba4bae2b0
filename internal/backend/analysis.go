// File: internal/backend/analysis.go
package backend

import (
    "context"
    "net/url"

    "github.com/salucare/triage-console/internal/domain"
)

// AnalyzeSession asks the backend model for an advisory analysis of the
// session. This is the expensive call the console caches aggressively.
func (c *Client) AnalyzeSession(ctx context.Context, sessionID string) (*domain.AIAnalysis, error) {
    var analysis domain.AIAnalysis
    if err := c.get(ctx, "analyze_session", "/admin/sessions/"+sessionID+"/analyze", nil, &analysis); err != nil {
        return nil, err
    }
    return &analysis, nil
}

// AnalyzeSessionAsNote is the side-effecting variant: the backend persists
// the analysis into the session's clinical-note history.
func (c *Client) AnalyzeSessionAsNote(ctx context.Context, sessionID string) (*domain.AIAnalysis, error) {
    query := url.Values{"saveAsNote": {"true"}}
    var analysis domain.AIAnalysis
    if err := c.get(ctx, "analyze_session_as_note", "/admin/sessions/"+sessionID+"/analyze", query, &analysis); err != nil {
        return nil, err
    }
    return &analysis, nil
}

// DashboardStats fetches the aggregated metrics for the dashboard page.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
    var stats domain.DashboardStats
    if err := c.get(ctx, "dashboard_stats", "/admin/dashboard/stats", nil, &stats); err != nil {
        return nil, err
    }
    return &stats, nil
}
