// Package config provides centralized configuration for the importer
// commands and server. Settings come from environment variables with
// defaults and are validated on startup.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Import   ImportConfig
	Database DatabaseConfig
	History  HistoryConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to.
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`

	Port int `env:"SERVER_PORT" envDefault:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"2m"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`

	// ShutdownTimeout bounds graceful shutdown, including waiting for
	// in-flight imports.
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// RequestTimeout is the middleware timeout for requests.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"2m"`
}

// ImportConfig holds defaults for import runs.
type ImportConfig struct {
	// PM3Path is the game installation directory.
	PM3Path string `env:"PM3_PATH"`

	// DefaultMaxPlayers is the squad limit for clubs without max_players.
	DefaultMaxPlayers int `env:"IMPORT_DEFAULT_MAX_PLAYERS" envDefault:"16"`

	// DefaultYear is used when neither the request nor the save has a year.
	DefaultYear int `env:"IMPORT_DEFAULT_YEAR" envDefault:"2025"`

	ImportLoans bool `env:"IMPORT_LOANS" envDefault:"false"`

	// Backup writes compressed copies of the target files before saving.
	Backup bool `env:"IMPORT_BACKUP" envDefault:"true"`

	// MaxUploadSize caps the multipart body of one import request.
	MaxUploadSize int64 `env:"IMPORT_MAX_UPLOAD_SIZE" envDefault:"33554432"`

	// MaxWaitTime is how long a request waits for the import slot.
	MaxWaitTime time.Duration `env:"IMPORT_WAIT_TIME" envDefault:"30s"`
}

// DatabaseConfig holds the optional PostgreSQL run ledger.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty disables the ledger.
	URL string `env:"DATABASE_URL"`

	MaxConns int `env:"DB_MAX_CONNS" envDefault:"4"`
	MinConns int `env:"DB_MIN_CONNS" envDefault:"0"`
}

// HistoryConfig selects the local run ledger used when no database is set.
type HistoryConfig struct {
	// SQLitePath is the ledger file. Empty disables it.
	SQLitePath string `env:"HISTORY_SQLITE_PATH"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// RequestsPerMinute is the default rate limit per IP.
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" envDefault:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies lists proxy CIDRs whose X-Real-IP and X-Forwarded-For
	// headers are honoured.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// RequireAPIKey enables X-API-Key checks on /api routes.
	RequireAPIKey bool `env:"REQUIRE_API_KEY" envDefault:"false"`

	APIKeys []string `env:"API_KEYS" envSeparator:","`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the log format: text or json.
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// HistoryEnabled reports whether any run ledger is configured.
func (c *Config) HistoryEnabled() bool {
	return c.Database.URL != "" || c.History.SQLitePath != ""
}
