// Package config reads the process configuration from the environment once at
// startup. Core packages take the resulting struct instead of calling
// os.Getenv themselves.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Auth method values for Config.AuthMethod.
const (
	AuthMethodOAuth          = "oauth"
	AuthMethodServiceAccount = "service_account"
)

// Config holds everything the server reads from the environment. It is built
// once in cmd and passed by reference; it never changes afterwards.
type Config struct {
	// AuthMethod selects the credential strategy: "oauth" (interactive,
	// persisted token) or "service_account" (application default credentials).
	AuthMethod string

	// OAuth client settings, required only for the oauth method.
	ClientID     string
	ClientSecret string
	ProjectID    string

	// TokenFile is where the oauth method persists its token.
	TokenFile string

	// AccountID restricts the server to a single GTM account when non-empty.
	AccountID string
}

// FromEnv builds a Config from the GTM_* environment variables.
func FromEnv() *Config {
	return &Config{
		AuthMethod:   strings.ToLower(getEnvOrDefault("GTM_AUTH_METHOD", AuthMethodOAuth)),
		ClientID:     os.Getenv("GTM_CLIENT_ID"),
		ClientSecret: os.Getenv("GTM_CLIENT_SECRET"),
		ProjectID:    os.Getenv("GTM_PROJECT_ID"),
		TokenFile:    getEnvOrDefault("GTM_TOKEN_FILE", defaultTokenFile()),
		AccountID:    os.Getenv("GTM_ACCOUNT_ID"),
	}
}

// Restricted reports whether the server is locked to a single account.
func (c *Config) Restricted() bool {
	return c.AccountID != ""
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gtm-mcp/token.json"
	}
	return filepath.Join(home, ".gtm-mcp", "token.json")
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
