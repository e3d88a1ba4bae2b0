// File: internal/services/watcher/config.go
package watcher

import (
    "fmt"
    "time"
)

type Config struct {
    // PollInterval is the pause between two message polls.
    PollInterval time.Duration
    // TypingDebounce is how long polling stays suspended after the last
    // typing signal.
    TypingDebounce time.Duration
}

func DefaultConfig() Config {
    return Config{
        PollInterval:   3 * time.Second,
        TypingDebounce: 2 * time.Second,
    }
}

func (c Config) Validate() error {
    if c.PollInterval <= 0 {
        return fmt.Errorf("watcher config: poll interval must be positive, got %v", c.PollInterval)
    }
    if c.TypingDebounce <= 0 {
        return fmt.Errorf("watcher config: typing debounce must be positive, got %v", c.TypingDebounce)
    }
    return nil
}
