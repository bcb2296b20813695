// Package cmd implements the command-line interface for gtm-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Google Tag Manager tools
//   - auth: Run the OAuth authorization flow and store a token
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
