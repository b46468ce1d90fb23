package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are grouped in DB so they can
// be handed to database.Open on their own.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	LogLevel       string        // zap level name (debug, info, warn, error)
	RequestTimeout time.Duration // upper bound for a single request
	DB             DBConfig      // relational store settings
	EditorSecret   string        // HS256 secret for editor tokens; empty disables write auth
	EditorTTLMin   int           // editor token time-to-live in minutes
}

// DBConfig describes how to reach the relational store.  Driver selects
// between "mysql" (host/port/user/name are required) and "sqlite" (Path is
// required; ":memory:" is accepted).
type DBConfig struct {
	Driver string // "mysql" or "sqlite"
	User   string // database username
	Pass   string // database password (optional)
	Host   string // database host address
	Port   string // database port number
	Name   string // database name
	Path   string // sqlite file path
}

// Load reads configuration values from environment variables.  Required
// variables that are missing or malformed are reported together in the
// returned error so the caller can decide whether to exit.
func Load() (Config, error) {
	var missing []string
	cfg := Config{
		Env:      getenv("APP_ENV", "dev"),
		Port:     getenv("APP_PORT", "3000"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Driver: strings.ToLower(getenv("DB_DRIVER", "mysql")),
			User:   os.Getenv("DB_USER"),
			Pass:   os.Getenv("DB_PASS"),
			Host:   getenv("DB_HOST", "localhost"),
			Port:   getenv("DB_PORT", "3306"),
			Name:   os.Getenv("DB_NAME"),
			Path:   getenv("DB_PATH", "fyyur.db"),
		},
	}

	timeout, err := time.ParseDuration(getenv("REQUEST_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("invalid REQUEST_TIMEOUT: %q", os.Getenv("REQUEST_TIMEOUT"))
	}
	cfg.RequestTimeout = timeout

	if cfg.EditorSecret, cfg.EditorTTLMin, err = LoadEditor(); err != nil {
		return Config{}, err
	}

	switch cfg.DB.Driver {
	case "mysql":
		if cfg.DB.User == "" {
			missing = append(missing, "DB_USER")
		}
		if cfg.DB.Name == "" {
			missing = append(missing, "DB_NAME")
		}
	case "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER: %q", cfg.DB.Driver)
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// LoadEditor reads EDITOR_JWT_SECRET and EDITOR_TOKEN_TTL_MIN on their own,
// for tools that mint tokens without touching the database.
func LoadEditor() (secret string, ttlMin int, err error) {
	ttl, err := strconv.Atoi(getenv("EDITOR_TOKEN_TTL_MIN", "60"))
	if err != nil || ttl <= 0 {
		return "", 0, fmt.Errorf("invalid EDITOR_TOKEN_TTL_MIN: %q", os.Getenv("EDITOR_TOKEN_TTL_MIN"))
	}
	return os.Getenv("EDITOR_JWT_SECRET"), ttl, nil
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}
