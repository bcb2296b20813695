package google

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/paolbtl/gtm-mcp/internal/config"
	"github.com/paolbtl/gtm-mcp/internal/gtm"
)

func TestScopes(t *testing.T) {
	scopes := Scopes()
	assert.Len(t, scopes, 7)
	assert.Contains(t, scopes, "https://www.googleapis.com/auth/tagmanager.readonly")
	assert.Contains(t, scopes, "https://www.googleapis.com/auth/tagmanager.publish")
}

func TestSaveAndLoadToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "token.json")
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}

	require.NoError(t, SaveToken(file, tok))

	loaded, err := LoadToken(file)
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, loaded.AccessToken)
	assert.Equal(t, tok.RefreshToken, loaded.RefreshToken)
	assert.Equal(t, tok.TokenType, loaded.TokenType)
	assert.True(t, tok.Expiry.Equal(loaded.Expiry))
}

func TestLoadTokenMissing(t *testing.T) {
	_, err := LoadToken(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestNewTokenSourceUnknownMethod(t *testing.T) {
	cfg := &config.Config{AuthMethod: "magic"}
	_, err := NewTokenSource(context.Background(), cfg)

	var cerr *gtm.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "GTM_AUTH_METHOD", cerr.Setting)
}

func TestNewTokenSourceOAuthMissingClient(t *testing.T) {
	cfg := &config.Config{AuthMethod: config.AuthMethodOAuth}
	_, err := NewTokenSource(context.Background(), cfg)

	var cerr *gtm.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, cerr.Reason, "GTM_CLIENT_ID")
}

func TestNewTokenSourceOAuthMissingToken(t *testing.T) {
	cfg := &config.Config{
		AuthMethod:   config.AuthMethodOAuth,
		ClientID:     "id",
		ClientSecret: "secret",
		TokenFile:    filepath.Join(t.TempDir(), "token.json"),
	}
	_, err := NewTokenSource(context.Background(), cfg)

	var cerr *gtm.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, cerr.Reason, "gtm-mcp auth")
}

type staticTokenSource struct {
	tok *oauth2.Token
	err error
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	return s.tok, s.err
}

func TestPersistingTokenSource(t *testing.T) {
	file := filepath.Join(t.TempDir(), "token.json")
	fresh := &oauth2.Token{AccessToken: "fresh", RefreshToken: "refresh"}
	src := &persistingTokenSource{inner: &staticTokenSource{tok: fresh}, file: file}

	got, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.AccessToken)

	persisted, err := LoadToken(file)
	require.NoError(t, err)
	assert.Equal(t, "fresh", persisted.AccessToken)
}

func TestPersistingTokenSourceRefreshError(t *testing.T) {
	src := &persistingTokenSource{
		inner: &staticTokenSource{err: errors.New("invalid_grant")},
		file:  filepath.Join(t.TempDir(), "token.json"),
	}
	_, err := src.Token()
	assert.ErrorContains(t, err, "invalid_grant")
}
