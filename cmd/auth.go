package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/paolbtl/gtm-mcp/internal/config"
	"github.com/paolbtl/gtm-mcp/internal/google"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Tag Manager",
		Long: `Run the OAuth authorization flow for the Google Tag Manager API.

Opens a browser for consent, receives the callback on a local port and
stores the refresh token on disk. The serve command reuses the stored
token, so this only needs to run once per machine.

Requires GTM_CLIENT_ID and GTM_CLIENT_SECRET to be set. The token is
written to GTM_TOKEN_FILE (default: ~/.gtm-mcp/token.json).

Not needed when GTM_AUTH_METHOD=service_account; in that mode the server
uses Application Default Credentials directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return google.RunAuthFlow(ctx, config.FromEnv())
		},
	}
}
