// File: internal/services/watcher/manager.go
package watcher

import (
    "context"
    "sync"

    "github.com/salucare/triage-console/internal/logger"
)

// Manager owns at most one watcher per session. Opening a session that is
// already watched closes the previous watcher first, so a conversation never
// has two competing poll cycles.
type Manager struct {
    api   Backend
    sched Scheduler
    cfg   Config
    log   logger.Logger

    mu       sync.Mutex
    watchers map[string]*Watcher
}

func NewManager(api Backend, sched Scheduler, cfg Config, log logger.Logger) (*Manager, error) {
    if err := cfg.Validate(); err != nil {
        return nil, err
    }
    return &Manager{
        api:      api,
        sched:    sched,
        cfg:      cfg,
        log:      log,
        watchers: make(map[string]*Watcher),
    }, nil
}

// Open selects a conversation: it builds a watcher, loads the session and
// starts polling. Any previous watcher for the same session is torn down.
func (m *Manager) Open(ctx context.Context, sessionID string) (*Watcher, error) {
    w, err := New(sessionID, m.api, m.sched, m.cfg, m.log)
    if err != nil {
        return nil, err
    }
    if err := w.Open(ctx); err != nil {
        return nil, err
    }

    m.mu.Lock()
    prev := m.watchers[sessionID]
    m.watchers[sessionID] = w
    m.mu.Unlock()

    if prev != nil {
        prev.Close()
    }
    return w, nil
}

// Get returns the watcher for a session, or nil when none is open.
func (m *Manager) Get(sessionID string) *Watcher {
    m.mu.Lock()
    defer m.mu.Unlock()
    return m.watchers[sessionID]
}

// Close deselects a conversation and cancels its timers.
func (m *Manager) Close(sessionID string) {
    m.mu.Lock()
    w := m.watchers[sessionID]
    delete(m.watchers, sessionID)
    m.mu.Unlock()
    if w != nil {
        w.Close()
    }
}

// CloseAll tears down every open watcher. Used on logout and shutdown.
func (m *Manager) CloseAll() {
    m.mu.Lock()
    all := m.watchers
    m.watchers = make(map[string]*Watcher)
    m.mu.Unlock()
    for _, w := range all {
        w.Close()
    }
}
