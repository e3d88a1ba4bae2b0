// File: internal/middleware/ratelimit.go
package middleware

import (
    "fmt"
    "net/http"

    "github.com/salucare/triage-console/internal/logger"
    "github.com/salucare/triage-console/internal/ratelimit"
)

// LoginRateLimit bounds attempts on the login endpoint per client address.
func LoginRateLimit(limiter *ratelimit.Limiter, log logger.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if r.Method != http.MethodPost {
                next.ServeHTTP(w, r)
                return
            }
            ip := ratelimit.ClientIP(r)
            decision := limiter.Allow(ip)
            if !decision.Allowed {
                log.Warn("login rate limited", "ip", ip, "banned", decision.Banned)
                w.Header().Set("Retry-After", fmt.Sprintf("%d", int(decision.RetryAfter.Seconds())))
                http.Error(w, "Too many login attempts. Try again later.", http.StatusTooManyRequests)
                return
            }
            next.ServeHTTP(w, r)
        })
    }
}
