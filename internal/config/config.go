// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds every runtime setting of the service.
type Config struct {
	Port int `validate:"min=1,max=65535"`

	// DBDriver is sqlite, postgres or mysql.
	DBDriver       string `validate:"required,oneof=sqlite postgres mysql"`
	DatabaseURL    string `validate:"required_unless=DBDriver sqlite"`
	SQLitePath     string `validate:"required"`
	SQLiteFallback bool
	SeedSampleData bool

	LogLevel      string `validate:"oneof=debug info warn error"`
	LogFile       string
	LogMaxSizeMB  int `validate:"min=1,max=1024"`
	LogMaxBackups int `validate:"min=0,max=100"`
	LogMaxAgeDays int `validate:"min=0,max=3650"`

	CORSAllowedOrigins []string `validate:"min=1,dive,required"`

	// Editor auth is enabled only when both the secret and the hash are set.
	JWTSecret          string        `validate:"omitempty,min=16"`
	EditorPasswordHash string        `validate:"required_with=JWTSecret"`
	TokenTTL           time.Duration `validate:"min=1m"`

	GinMode string `validate:"oneof=debug release test"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SQLitePath:         getEnv("SQLITE_PATH", "./data/hospital_billing.db"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:            getEnv("LOG_FILE", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		EditorPasswordHash: getEnv("EDITOR_PASSWORD_HASH", ""),
		GinMode:            getEnv("GIN_MODE", "release"),
	}

	defaultDriver := "sqlite"
	if cfg.DatabaseURL != "" {
		defaultDriver = "postgres"
	}
	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", defaultDriver))

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.SQLiteFallback, err = getEnvBool("SQLITE_FALLBACK", true); err != nil {
		return nil, err
	}
	if cfg.SeedSampleData, err = getEnvBool("SEED_SAMPLE_DATA", true); err != nil {
		return nil, err
	}
	if cfg.LogMaxSizeMB, err = getEnvInt("LOG_MAX_SIZE_MB", 10); err != nil {
		return nil, err
	}
	if cfg.LogMaxBackups, err = getEnvInt("LOG_MAX_BACKUPS", 3); err != nil {
		return nil, err
	}
	if cfg.LogMaxAgeDays, err = getEnvInt("LOG_MAX_AGE_DAYS", 28); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getEnvDuration("TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all fields in Config are valid.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EditorAuthEnabled reports whether catalog writes require an editor token.
func (c *Config) EditorAuthEnabled() bool {
	return c.JWTSecret != "" && c.EditorPasswordHash != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
