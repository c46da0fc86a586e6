// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// GRPCAddr is the address the gRPC server listens on (e.g. :8080).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret signs access tokens (HS256). Required; the process must not serve without it.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTRefreshSecret signs refresh tokens (HS256). Required and must differ from JWT_SECRET
	// so a leaked access-signing secret cannot forge refresh tokens.
	JWTRefreshSecret string `mapstructure:"JWT_REFRESH_SECRET"`
	// JWTExpiresIn is the access token lifetime (e.g. "15m").
	JWTExpiresIn string `mapstructure:"JWT_EXPIRES_IN"`
	// JWTRefreshExpiresIn is the refresh token lifetime (e.g. "168h").
	JWTRefreshExpiresIn string `mapstructure:"JWT_REFRESH_EXPIRES_IN"`
	// JWTRefreshExpiresDays governs the server-side expiry stamp stored with the
	// refresh digest, independent of the token's own embedded TTL.
	JWTRefreshExpiresDays int `mapstructure:"JWT_REFRESH_EXPIRES_DAYS"`
	// BcryptSaltRounds is the bcrypt cost factor (4–31); default 12.
	BcryptSaltRounds int `mapstructure:"BCRYPT_SALT_ROUNDS"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required
// fields are missing or invalid; signing secrets are validated here so a misconfigured process
// fails at startup rather than per request.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("GRPC_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_REFRESH_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "168h") // 7d
	v.SetDefault("JWT_REFRESH_EXPIRES_DAYS", 7)
	v.SetDefault("BCRYPT_SALT_ROUNDS", 12)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.GRPCAddr == "" {
		return nil, errors.New("config: GRPC_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set")
	}
	if cfg.JWTRefreshSecret == "" {
		return nil, errors.New("config: JWT_REFRESH_SECRET must be set")
	}
	if cfg.JWTSecret == cfg.JWTRefreshSecret {
		return nil, errors.New("config: JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}

	if cfg.BcryptSaltRounds == 0 {
		cfg.BcryptSaltRounds = 12
	}
	if cfg.BcryptSaltRounds < 4 || cfg.BcryptSaltRounds > 31 {
		return nil, errors.New("config: BCRYPT_SALT_ROUNDS must be between 4 and 31")
	}

	if cfg.JWTRefreshExpiresDays <= 0 {
		cfg.JWTRefreshExpiresDays = 7
	}

	return &cfg, nil
}

// AccessTTL parses JWTExpiresIn as a time.Duration. Returns 15m if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTExpiresIn)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// RefreshTTL parses JWTRefreshExpiresIn as a time.Duration. Returns 168h if unset or invalid.
func (c *Config) RefreshTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTRefreshExpiresIn)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}
