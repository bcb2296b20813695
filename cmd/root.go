package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gtm-mcp application
var rootCmd = &cobra.Command{
	Use:   "gtm-mcp",
	Short: "MCP server for Google Tag Manager",
	Long: `gtm-mcp is a Model Context Protocol (MCP) server that exposes Google Tag
Manager account, container, workspace, tag, trigger, variable and version
management as tools for AI assistants.

Run 'gtm-mcp auth' once to authorize access, then 'gtm-mcp serve' to start
the server.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gtm-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gtm-mcp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gtm-mcp version %s\n", version)
		},
	}
}
