package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/paolbtl/gtm-mcp/internal/config"
	"github.com/paolbtl/gtm-mcp/internal/gtm"
)

// NewTokenSource selects a credential strategy from the configuration and
// returns a token source valid for the process lifetime. The returned source
// is safe for concurrent use; refreshes are idempotent.
func NewTokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	switch cfg.AuthMethod {
	case config.AuthMethodServiceAccount:
		return adcTokenSource(ctx)
	case config.AuthMethodOAuth:
		return oauthTokenSource(ctx, cfg)
	default:
		return nil, &gtm.ConfigurationError{
			Setting: "GTM_AUTH_METHOD",
			Reason:  fmt.Sprintf("unknown auth method %q, expected %q or %q", cfg.AuthMethod, config.AuthMethodOAuth, config.AuthMethodServiceAccount),
		}
	}
}

// adcTokenSource resolves application default credentials. The error message
// enumerates the places ADC looks so a failed lookup is actionable.
func adcTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	creds, err := google.FindDefaultCredentials(ctx, Scopes()...)
	if err != nil {
		return nil, &gtm.ConfigurationError{
			Setting: "GTM_AUTH_METHOD",
			Reason: "no application default credentials found; provide one of: " +
				"GOOGLE_APPLICATION_CREDENTIALS pointing at a service account key file, " +
				"'gcloud auth application-default login', " +
				"or run on a platform with ambient credentials",
		}
	}
	return creds.TokenSource, nil
}

// oauthTokenSource loads the persisted interactive token and wraps it in a
// refreshing source that writes refreshed tokens back to disk.
func oauthTokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	conf, err := oauthConfig(cfg)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(cfg.TokenFile)
	if err != nil {
		return nil, &gtm.ConfigurationError{
			Setting: "GTM_TOKEN_FILE",
			Reason:  fmt.Sprintf("no stored OAuth token at %s; run 'gtm-mcp auth' first", cfg.TokenFile),
		}
	}
	persisting := &persistingTokenSource{
		inner: conf.TokenSource(ctx, tok),
		file:  cfg.TokenFile,
	}
	return oauth2.ReuseTokenSource(tok, persisting), nil
}

// oauthConfig assembles the OAuth client configuration for the interactive
// flow. Client ID and secret must come from the environment.
func oauthConfig(cfg *config.Config) (*oauth2.Config, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &gtm.ConfigurationError{
			Setting: "GTM_CLIENT_ID",
			Reason:  "the oauth method needs GTM_CLIENT_ID and GTM_CLIENT_SECRET set",
		}
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes(),
	}, nil
}

// persistingTokenSource refreshes through the wrapped source and writes every
// new token back to the token file. ReuseTokenSource serializes calls, so
// concurrent tool handlers trigger at most one refresh.
type persistingTokenSource struct {
	inner oauth2.TokenSource
	file  string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.inner.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh OAuth token: %w", err)
	}
	if err := SaveToken(s.file, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// LoadToken reads a persisted OAuth token from disk.
func LoadToken(file string) (*oauth2.Token, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", file, err)
	}
	return &tok, nil
}

// SaveToken writes a token to disk, creating the parent directory. The file
// holds a credential, hence the tight modes.
func SaveToken(file string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
