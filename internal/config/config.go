package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "default-super-secret-key"

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort        string
	Environment     string
	JWTSecret       string
	TokenExpiration time.Duration
	BcryptCost      int

	// DatabaseURL selects the Postgres credential store when set.
	DatabaseURL string

	CorsAllowedOrigins []string
	LogFilePath        string
	SentryDSN          string

	LoginRateLimitMax    int
	LoginRateLimitWindow time.Duration

	// Optional account created at startup in addition to the demo user.
	BootstrapUsername string
	BootstrapPassword string
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	var errs []error

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		Environment:        getEnv("APP_ENV", "development"),
		JWTSecret:          getEnv("JWT_SECRET", defaultJWTSecret),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CorsAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogFilePath:        getEnv("LOG_FILE_PATH", ""),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		BootstrapUsername:  strings.TrimSpace(getEnv("BOOTSTRAP_USERNAME", "")),
		BootstrapPassword:  getEnv("BOOTSTRAP_PASSWORD", ""),
	}

	tokenMinutes, err := getEnvAsInt("JWT_EXPIRATION_MINUTES", 60)
	errs = append(errs, err)
	cfg.TokenExpiration = time.Duration(tokenMinutes) * time.Minute

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	errs = append(errs, err)

	cfg.LoginRateLimitMax, err = getEnvAsInt("LOGIN_RATE_LIMIT_MAX", 10)
	errs = append(errs, err)

	windowSeconds, err := getEnvAsInt("LOGIN_RATE_LIMIT_WINDOW_SECONDS", 60)
	errs = append(errs, err)
	cfg.LoginRateLimitWindow = time.Duration(windowSeconds) * time.Second

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.IsProduction() && cfg.JWTSecret == defaultJWTSecret {
		return nil, errors.New("JWT_SECRET must be set in production")
	}
	if (cfg.BootstrapUsername == "") != (cfg.BootstrapPassword == "") {
		return nil, errors.New("BOOTSTRAP_USERNAME and BOOTSTRAP_PASSWORD are required together")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt parses a positive integer variable, falling back when unset.
func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback, fmt.Errorf("invalid %s %q: must be a positive integer", key, value)
	}
	return parsed, nil
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
