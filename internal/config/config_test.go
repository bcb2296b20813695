package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"GTM_AUTH_METHOD", "GTM_CLIENT_ID", "GTM_CLIENT_SECRET", "GTM_PROJECT_ID", "GTM_TOKEN_FILE", "GTM_ACCOUNT_ID"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, AuthMethodOAuth, cfg.AuthMethod)
	assert.Empty(t, cfg.ClientID)
	assert.Empty(t, cfg.AccountID)
	assert.False(t, cfg.Restricted())
	assert.Equal(t, filepath.Join(".gtm-mcp", "token.json"), filepath.Join(filepath.Base(filepath.Dir(cfg.TokenFile)), filepath.Base(cfg.TokenFile)))
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("GTM_AUTH_METHOD", "Service_Account")
	t.Setenv("GTM_CLIENT_ID", "client-id")
	t.Setenv("GTM_CLIENT_SECRET", "client-secret")
	t.Setenv("GTM_PROJECT_ID", "project-id")
	t.Setenv("GTM_TOKEN_FILE", "/tmp/token.json")
	t.Setenv("GTM_ACCOUNT_ID", "6321366409")

	cfg := FromEnv()
	assert.Equal(t, AuthMethodServiceAccount, cfg.AuthMethod)
	assert.Equal(t, "client-id", cfg.ClientID)
	assert.Equal(t, "client-secret", cfg.ClientSecret)
	assert.Equal(t, "project-id", cfg.ProjectID)
	assert.Equal(t, "/tmp/token.json", cfg.TokenFile)
	assert.Equal(t, "6321366409", cfg.AccountID)
	assert.True(t, cfg.Restricted())
}
