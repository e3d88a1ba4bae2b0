// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func newTestLimiter(cfg Config) (*Limiter, *time.Time) {
    now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
    l := &Limiter{
        cfg:     cfg,
        now:     func() time.Time { return now },
        records: make(map[string]*record),
        stop:    make(chan struct{}),
    }
    return l, &now
}

func TestAllowUpToLimitThenBan(t *testing.T) {
    l, _ := newTestLimiter(Config{Window: time.Minute, MaxAttempts: 3, BanFor: time.Hour, Cleanup: time.Hour})

    for i := 0; i < 3; i++ {
        d := l.Allow("10.0.0.1")
        require.True(t, d.Allowed, "attempt %d should pass", i+1)
        assert.Equal(t, 2-i, d.Remaining)
    }

    d := l.Allow("10.0.0.1")
    assert.False(t, d.Allowed)
    assert.True(t, d.Banned)
    assert.Equal(t, time.Hour, d.RetryAfter)
}

func TestBanExpires(t *testing.T) {
    l, now := newTestLimiter(Config{Window: time.Minute, MaxAttempts: 1, BanFor: 10 * time.Minute, Cleanup: time.Hour})

    require.True(t, l.Allow("10.0.0.1").Allowed)
    require.True(t, l.Allow("10.0.0.1").Banned)

    *now = now.Add(11 * time.Minute)
    assert.True(t, l.Allow("10.0.0.1").Allowed)
}

func TestWindowResets(t *testing.T) {
    l, now := newTestLimiter(Config{Window: time.Minute, MaxAttempts: 2, BanFor: time.Hour, Cleanup: time.Hour})

    require.True(t, l.Allow("10.0.0.1").Allowed)
    require.True(t, l.Allow("10.0.0.1").Allowed)

    *now = now.Add(2 * time.Minute)
    d := l.Allow("10.0.0.1")
    assert.True(t, d.Allowed)
    assert.Equal(t, 1, d.Remaining)
}

func TestResetClearsRecord(t *testing.T) {
    l, _ := newTestLimiter(Config{Window: time.Minute, MaxAttempts: 2, BanFor: time.Hour, Cleanup: time.Hour})

    require.True(t, l.Allow("10.0.0.1").Allowed)
    require.True(t, l.Allow("10.0.0.1").Allowed)
    l.Reset("10.0.0.1")

    d := l.Allow("10.0.0.1")
    assert.True(t, d.Allowed)
    assert.Equal(t, 1, d.Remaining)
}

func TestIdentifiersAreIndependent(t *testing.T) {
    l, _ := newTestLimiter(Config{Window: time.Minute, MaxAttempts: 1, BanFor: time.Hour, Cleanup: time.Hour})

    require.True(t, l.Allow("10.0.0.1").Allowed)
    require.True(t, l.Allow("10.0.0.1").Banned)
    assert.True(t, l.Allow("10.0.0.2").Allowed)
}

func TestClientIP(t *testing.T) {
    r := httptest.NewRequest("GET", "/", nil)
    r.RemoteAddr = "192.0.2.1:5555"
    assert.Equal(t, "192.0.2.1", ClientIP(r))

    r.Header.Set("X-Real-IP", "198.51.100.7")
    assert.Equal(t, "198.51.100.7", ClientIP(r))

    r.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7")
    assert.Equal(t, "203.0.113.9", ClientIP(r))
}
