package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Remote blog API
	API APIConfig

	// Session cookie and flag store
	Session SessionConfig

	// Database configuration (postgres session store only)
	Database DatabaseConfig

	// List and search view behaviour
	View ViewConfig

	// Create-post upload limits
	Upload UploadConfig

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

// APIConfig holds the remote blog API settings
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds session cookie and storage settings
type SessionConfig struct {
	Store        string // "memory" or "postgres"
	CookieName   string
	CookieSecure bool
	CookieMaxAge time.Duration
	FlashCookie  string
	FlashSecret  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// ViewConfig holds list, search and view-registry settings
type ViewConfig struct {
	PageSize       int
	SearchDebounce time.Duration
	IdleTTL        time.Duration
	SweepInterval  time.Duration
}

// UploadConfig holds create-post upload settings
type UploadConfig struct {
	MaxImageSize int64 // in bytes
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables, after loading an optional .env file
func Load() (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),
			Timeout: getDurationEnv("API_TIMEOUT", 15*time.Second),
		},
		Session: SessionConfig{
			Store:        getEnv("SESSION_STORE", StoreMemory),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "bloggify_sid"),
			CookieSecure: getBoolEnv("SESSION_COOKIE_SECURE", false),
			CookieMaxAge: getDurationEnv("SESSION_COOKIE_MAX_AGE", 30*24*time.Hour),
			FlashCookie:  getEnv("FLASH_COOKIE_NAME", "bloggify_flash"),
			FlashSecret:  getEnv("FLASH_SECRET", ""),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "bloggify"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		View: ViewConfig{
			PageSize:       getIntEnv("LIST_PAGE_SIZE", 9),
			SearchDebounce: getDurationEnv("SEARCH_DEBOUNCE", 500*time.Millisecond),
			IdleTTL:        getDurationEnv("VIEW_IDLE_TTL", 30*time.Minute),
			SweepInterval:  getDurationEnv("VIEW_SWEEP_INTERVAL", time.Minute),
		},
		Upload: UploadConfig{
			MaxImageSize: getInt64Env("MAX_IMAGE_SIZE", 5*1024*1024), // 5MB
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
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.Session.Store != StoreMemory && c.Session.Store != StorePostgres {
		return fmt.Errorf("SESSION_STORE must be one of: memory, postgres")
	}
	if c.Session.Store == StorePostgres {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	}
	if c.Session.FlashSecret == "" {
		return fmt.Errorf("FLASH_SECRET is required")
	}
	if c.View.PageSize < 1 {
		return fmt.Errorf("LIST_PAGE_SIZE must be at least 1")
	}
	if c.View.SearchDebounce <= 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE must be positive")
	}
	if c.Upload.MaxImageSize <= 0 {
		return fmt.Errorf("MAX_IMAGE_SIZE must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
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

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
