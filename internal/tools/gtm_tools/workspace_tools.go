package gtm_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"google.golang.org/api/tagmanager/v2"

	"github.com/paolbtl/gtm-mcp/internal/gtm"
	"github.com/paolbtl/gtm-mcp/internal/server"
)

// registerWorkspaceTools registers workspace tools. Workspace creation is a
// mutating operation and is skipped in read-only mode.
func registerWorkspaceTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listWorkspacesTool := mcp.NewTool("gtm_list_workspaces",
		mcp.WithDescription("List all workspaces in a container"),
		mcp.WithString("container_path",
			mcp.Required(),
			mcp.Description("Full container path (e.g. 'accounts/123/containers/456')"),
		),
	)

	addTool(s, sc, listWorkspacesTool, "workspaces.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

		workspaces, err := client.ListWorkspaces(ctx, containerPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list workspaces: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"workspaces": workspaces}), nil
	})

	getWorkspaceTool := mcp.NewTool("gtm_get_workspace",
		mcp.WithDescription("Get details of a specific workspace"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full workspace path (e.g. 'accounts/123/containers/456/workspaces/7')"),
		),
	)

	addTool(s, sc, getWorkspaceTool, "workspaces.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		path, err := requiredString(args, "path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := gtm.ValidateGTMPath(path, "workspace"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		workspace, err := client.GetWorkspace(ctx, path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get workspace: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"workspace": workspace}), nil
	})

	if !readOnly {
		createWorkspaceTool := mcp.NewTool("gtm_create_workspace",
			mcp.WithDescription("Create a new workspace in a container"),
			mcp.WithString("container_path",
				mcp.Required(),
				mcp.Description("Full container path (e.g. 'accounts/123/containers/456')"),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name for the new workspace"),
			),
			mcp.WithString("description",
				mcp.Description("Description of the workspace"),
			),
		)

		addTool(s, sc, createWorkspaceTool, "workspaces.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			containerPath, err := requiredString(args, "container_path")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := gtm.ValidateGTMPath(containerPath, "container"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			name, err := requiredString(args, "name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := gtm.ValidateName(name, "name", 0); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			workspace, err := client.CreateWorkspace(ctx, containerPath, &tagmanager.Workspace{
				Name:        name,
				Description: optionalString(args, "description"),
			})
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create workspace: %v", err)), nil
			}

			return jsonResult(map[string]interface{}{"success": true, "workspace": workspace}), nil
		})
	}

	return nil
}
