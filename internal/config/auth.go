package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Authentication defaults.
const (
	DefaultJWTExpirationHours = 24 * 7
	DefaultBcryptCost         = 10
	MinBcryptCost             = 10
	MaxBcryptCost             = 14
)

// JWTConfig holds configuration for token signing.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// PasswordConfig holds configuration for password hashing.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// AuthConfig groups the token and password settings the server needs.
type AuthConfig struct {
	JWT      JWTConfig
	Password PasswordConfig
}

// NewAuthConfig reads JWT_SECRET (required), JWT_EXPIRATION_HOURS (default
// one week), BCRYPT_COST (default 10) and PASSWORD_PEPPER.
func NewAuthConfig() (*AuthConfig, error) {
	jwtCfg, err := NewJWTConfig()
	if err != nil {
		return nil, err
	}
	pwCfg, err := NewPasswordConfig()
	if err != nil {
		return nil, err
	}
	return &AuthConfig{JWT: *jwtCfg, Password: *pwCfg}, nil
}

// NewJWTConfig reads the token settings from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	hours, err := intEnv("JWT_EXPIRATION_HOURS", DefaultJWTExpirationHours)
	if err != nil {
		return nil, err
	}

	cfg := &JWTConfig{Secret: secret, ExpirationHours: hours}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the token settings.
func (c *JWTConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// NewPasswordConfig reads the hashing settings from the environment.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost, err := intEnv("BCRYPT_COST", DefaultBcryptCost)
	if err != nil {
		return nil, err
	}

	cfg := &PasswordConfig{BcryptCost: cost, Pepper: os.Getenv("PASSWORD_PEPPER")}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the bcrypt cost range.
func (c *PasswordConfig) Validate() error {
	if c.BcryptCost < MinBcryptCost || c.BcryptCost > MaxBcryptCost {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", c.BcryptCost, MinBcryptCost, MaxBcryptCost)
	}
	return nil
}

// HashPassword hashes pw with bcrypt. Passwords longer than 72 bytes
// (pepper included) are rejected by bcrypt.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+c.Pepper)) == nil
}

func intEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return v, nil
}
