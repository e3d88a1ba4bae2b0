// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
    "net"
    "net/http"
    "strings"
    "sync"
    "time"
)

// Config bounds login attempts per client within a sliding window.
type Config struct {
    Window      time.Duration // counting window
    MaxAttempts int           // attempts allowed per window
    BanFor      time.Duration // lockout after the limit is exceeded
    Cleanup     time.Duration // sweep period for stale records
}

// LoginConfig is the limit applied to the console login form.
func LoginConfig() Config {
    return Config{
        Window:      15 * time.Minute,
        MaxAttempts: 5,
        BanFor:      30 * time.Minute,
        Cleanup:     30 * time.Minute,
    }
}

// Decision is the outcome of an Allow check.
type Decision struct {
    Allowed    bool
    Remaining  int
    RetryAfter time.Duration
    Banned     bool
}

type record struct {
    count     int
    windowAt  time.Time
    bannedAt  *time.Time
}

// Limiter is an in-memory per-identifier attempt limiter. A client that
// exceeds the window limit is banned for Config.BanFor; a successful login
// clears its record.
type Limiter struct {
    cfg Config
    now func() time.Time

    mu      sync.Mutex
    records map[string]*record
    stop    chan struct{}
}

func New(cfg Config) *Limiter {
    l := &Limiter{
        cfg:     cfg,
        now:     time.Now,
        records: make(map[string]*record),
        stop:    make(chan struct{}),
    }
    go l.sweepLoop()
    return l
}

// Allow reports whether the identifier may attempt a login now.
func (l *Limiter) Allow(identifier string) Decision {
    l.mu.Lock()
    defer l.mu.Unlock()

    now := l.now()
    rec, ok := l.records[identifier]
    if !ok {
        l.records[identifier] = &record{count: 1, windowAt: now}
        return Decision{Allowed: true, Remaining: l.cfg.MaxAttempts - 1}
    }

    if rec.bannedAt != nil {
        elapsed := now.Sub(*rec.bannedAt)
        if elapsed < l.cfg.BanFor {
            return Decision{Banned: true, RetryAfter: l.cfg.BanFor - elapsed}
        }
        rec.bannedAt = nil
        rec.count = 0
        rec.windowAt = now
    }

    if now.Sub(rec.windowAt) > l.cfg.Window {
        rec.count = 0
        rec.windowAt = now
    }

    rec.count++
    if rec.count > l.cfg.MaxAttempts {
        banned := now
        rec.bannedAt = &banned
        return Decision{Banned: true, RetryAfter: l.cfg.BanFor}
    }
    return Decision{Allowed: true, Remaining: l.cfg.MaxAttempts - rec.count}
}

// Reset clears the identifier's record after a successful login.
func (l *Limiter) Reset(identifier string) {
    l.mu.Lock()
    defer l.mu.Unlock()
    delete(l.records, identifier)
}

func (l *Limiter) sweepLoop() {
    ticker := time.NewTicker(l.cfg.Cleanup)
    defer ticker.Stop()
    for {
        select {
        case <-ticker.C:
            l.sweep()
        case <-l.stop:
            return
        }
    }
}

func (l *Limiter) sweep() {
    l.mu.Lock()
    defer l.mu.Unlock()
    now := l.now()
    for id, rec := range l.records {
        windowDone := rec.bannedAt == nil && now.Sub(rec.windowAt) > l.cfg.Window
        banDone := rec.bannedAt != nil && now.Sub(*rec.bannedAt) > l.cfg.BanFor
        if windowDone || banDone {
            delete(l.records, id)
        }
    }
}

// Close stops the sweep goroutine.
func (l *Limiter) Close() {
    close(l.stop)
}

// ClientIP extracts the caller's address, honoring proxy headers.
func ClientIP(r *http.Request) string {
    if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
        first, _, _ := strings.Cut(forwarded, ",")
        if ip := strings.TrimSpace(first); ip != "" {
            return ip
        }
    }
    if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
        return realIP
    }
    host, _, err := net.SplitHostPort(r.RemoteAddr)
    if err != nil {
        return r.RemoteAddr
    }
    return host
}
