// File: internal/backend/config.go
package backend

import (
    "fmt"
    "strings"
    "time"
)

type Config struct {
    BaseURL    string        // e.g. https://triage.example.com/api
    Timeout    time.Duration // per-request timeout
    MaxRetries int           // idempotent GETs only
    RetryDelay time.Duration
}

func (c *Config) Validate() error {
    if c.BaseURL == "" {
        return fmt.Errorf("BACKEND_BASE_URL is required")
    }
    if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
        return fmt.Errorf("BACKEND_BASE_URL must be an http(s) URL")
    }
    if c.Timeout <= 0 {
        return fmt.Errorf("timeout must be positive")
    }
    return nil
}

func DefaultConfig(baseURL string) *Config {
    return &Config{
        BaseURL:    strings.TrimRight(baseURL, "/"),
        Timeout:    15 * time.Second,
        MaxRetries: 3,
        RetryDelay: 500 * time.Millisecond,
    }
}
