package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Roster configuration
	Directory DirectoryConfig

	// Import configuration
	Import ImportConfig

	// Notification fan-out configuration
	Notify NotifyConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DirectoryConfig holds roster settings
type DirectoryConfig struct {
	// SeedFile is a YAML roster loaded at startup; empty starts with no staff
	SeedFile string
	// MutationLatency is the simulated delay around each command
	MutationLatency time.Duration
	// Collation is the BCP-47 tag used to sort names
	Collation string
	// Timezone decides which calendar day "today" is for return dates
	Timezone string
}

// ImportConfig holds import settings
type ImportConfig struct {
	MaxUploadSize int64 // in bytes
	// LowConfidence is the threshold below which extraction carries a warning
	LowConfidence int
	MaxDrafts     int
}

// NotifyConfig holds the optional Redis publisher settings
type NotifyConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisChannel  string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables, after loading a .env
// file when one is present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Directory: DirectoryConfig{
			SeedFile:        getEnv("DIRECTORY_SEED_FILE", ""),
			MutationLatency: getDurationEnv("DIRECTORY_MUTATION_LATENCY", 0),
			Collation:       getEnv("DIRECTORY_COLLATION", "fr"),
			Timezone:        getEnv("DIRECTORY_TIMEZONE", "UTC"),
		},
		Import: ImportConfig{
			MaxUploadSize: getInt64Env("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
			LowConfidence: getIntEnv("IMPORT_LOW_CONFIDENCE", 60),
			MaxDrafts:     getIntEnv("IMPORT_MAX_DRAFTS", 5000),
		},
		Notify: NotifyConfig{
			RedisAddr:     getEnv("NOTIFY_REDIS_ADDR", ""),
			RedisPassword: getEnv("NOTIFY_REDIS_PASSWORD", ""),
			RedisChannel:  getEnv("NOTIFY_REDIS_CHANNEL", "staffdir:notifications"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Directory.MutationLatency < 0 {
		return fmt.Errorf("DIRECTORY_MUTATION_LATENCY must not be negative")
	}
	if _, err := language.Parse(c.Directory.Collation); err != nil {
		return fmt.Errorf("invalid DIRECTORY_COLLATION %q: %w", c.Directory.Collation, err)
	}
	if _, err := time.LoadLocation(c.Directory.Timezone); err != nil {
		return fmt.Errorf("invalid DIRECTORY_TIMEZONE %q: %w", c.Directory.Timezone, err)
	}
	if c.Import.LowConfidence < 0 || c.Import.LowConfidence > 100 {
		return fmt.Errorf("IMPORT_LOW_CONFIDENCE must be between 0 and 100")
	}
	if c.Import.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	return nil
}

// Location returns the configured timezone, UTC when it cannot be loaded
func (c *DirectoryConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
