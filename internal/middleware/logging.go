// File: internal/middleware/logging.go
package middleware

import (
    "net/http"
    "time"

    "github.com/salucare/triage-console/internal/logger"
)

type statusRecorder struct {
    http.ResponseWriter
    status int
}

func (r *statusRecorder) WriteHeader(code int) {
    r.status = code
    r.ResponseWriter.WriteHeader(code)
}

// RequestLogging logs every request with method, path, status and duration.
func RequestLogging(log logger.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            start := time.Now()
            rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
            next.ServeHTTP(rec, r)
            log.Info("request",
                "method", r.Method,
                "path", r.URL.Path,
                "status", rec.status,
                "remote", r.RemoteAddr,
                "duration", time.Since(start).String(),
            )
        })
    }
}

// RecoverPanic turns handler panics into a 500 instead of killing the
// connection.
func RecoverPanic(log logger.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            defer func() {
                if err := recover(); err != nil {
                    log.Error("panic recovered", "path", r.URL.Path, "panic", err)
                    w.Header().Set("Connection", "close")
                    http.Error(w, "Something went wrong on our end.", http.StatusInternalServerError)
                }
            }()
            next.ServeHTTP(w, r)
        })
    }
}
