// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	BackendBaseURL string
	BackendTimeout time.Duration
	// Polling cadence for an open conversation and the debounce window that
	// suppresses refreshes while the operator is typing.
	PollInterval   time.Duration
	TypingDebounce time.Duration
	// Path of the sqlite file holding the operator session and the
	// AI-analysis cache.
	StorePath   string
	LogFilePath string
	Environment string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8090"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:3000/api"),
		BackendTimeout: getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second),
		PollInterval:   getEnvAsDuration("POLL_INTERVAL", 3*time.Second),
		TypingDebounce: getEnvAsDuration("TYPING_DEBOUNCE", 2*time.Second),
		StorePath:      getEnv("STORE_PATH", "console.db"),
		LogFilePath:    getEnv("LOG_FILE_PATH", "logs/console.log"),
		Environment:    env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.BackendBaseURL == "" {
			missing = append(missing, "BACKEND_BASE_URL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// IsProduction reports whether the console runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsDuration gets an env var as seconds, with a fallback.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	secs, err := strconv.Atoi(strValue)
	if err != nil || secs <= 0 {
		log.Printf("Warning: could not parse env var %s as seconds. Using default value.", key)
		return defaultValue
	}
	return time.Duration(secs) * time.Second
}
