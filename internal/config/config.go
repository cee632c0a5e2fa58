package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"relevance-workbench/internal/knobs"
	"relevance-workbench/internal/tasks"
	"relevance-workbench/internal/window"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath    string
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	// ExecutorURL is the base URL of the execution service.
	ExecutorURL     string
	ExecutorTimeout time.Duration

	// RedisURL selects the Redis task channel. Empty keeps task tracking in memory.
	RedisURL      string
	RedisPassword string
	TaskChannel   string

	DefaultKnobValue float64
	WindowSize       int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	// Try to find project root by looking for go.mod
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:        getEnv("DB_PATH", "./data/relevance-workbench.db"),
		APIPort:       getEnv("API_PORT", "9000"),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
		ExecutorURL:   getEnv("EXECUTOR_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		TaskChannel:   getEnv("TASK_CHANNEL", tasks.DefaultChannel),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	// Validate required fields
	if cfg.ExecutorURL == "" {
		return nil, fmt.Errorf("EXECUTOR_URL is required")
	}
	if u, err := url.Parse(cfg.ExecutorURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("EXECUTOR_URL must be an absolute URL, got %q", cfg.ExecutorURL)
	}

	timeout, err := time.ParseDuration(getEnv("EXECUTOR_TIMEOUT", "5m"))
	if err != nil {
		return nil, fmt.Errorf("EXECUTOR_TIMEOUT must be a valid duration: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("EXECUTOR_TIMEOUT must be greater than 0")
	}
	cfg.ExecutorTimeout = timeout

	knobValue, err := strconv.ParseFloat(getEnv("DEFAULT_KNOB_VALUE", strconv.Itoa(knobs.DefaultValue)), 64)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_KNOB_VALUE must be a number: %w", err)
	}
	cfg.DefaultKnobValue = knobValue

	windowSize, err := strconv.Atoi(getEnv("WINDOW_SIZE", strconv.Itoa(window.DefaultSize)))
	if err != nil {
		return nil, fmt.Errorf("WINDOW_SIZE must be a valid integer: %w", err)
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("WINDOW_SIZE must be greater than 0")
	}
	cfg.WindowSize = windowSize

	// Create ./data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
