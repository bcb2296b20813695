package gtm_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/paolbtl/gtm-mcp/internal/gtm"
	"github.com/paolbtl/gtm-mcp/internal/server"
)

// registerAccountTools registers account and container read tools.
func registerAccountTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listAccountsTool := mcp.NewTool("gtm_list_accounts",
		mcp.WithDescription("List all accessible Tag Manager accounts. When the server is restricted to a single account, only that account is returned."),
	)

	addTool(s, sc, listAccountsTool, "accounts.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		accounts, err := client.ListAccounts(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list accounts: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"accounts": accounts}), nil
	})

	listContainersTool := mcp.NewTool("gtm_list_containers",
		mcp.WithDescription("List all containers in a Tag Manager account"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Tag Manager account ID (numeric, e.g. '6321366409')"),
		),
	)

	addTool(s, sc, listContainersTool, "containers.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		accountID, err := requiredString(args, "account_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := gtm.ValidateAccountID(accountID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		containers, err := client.ListContainers(ctx, accountID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list containers: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"containers": containers}), nil
	})

	getContainerTool := mcp.NewTool("gtm_get_container",
		mcp.WithDescription("Get details of a specific container"),
		mcp.WithString("container_path",
			mcp.Required(),
			mcp.Description("Full container path (e.g. 'accounts/123/containers/456')"),
		),
	)

	addTool(s, sc, getContainerTool, "containers.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		containerPath, err := requiredString(args, "container_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := gtm.ValidateGTMPath(containerPath, "container"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		container, err := client.GetContainer(ctx, containerPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get container: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"container": container}), nil
	})

	return nil
}
