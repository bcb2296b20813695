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

// registerVersionTools registers container version tools. Everything except
// the read tools mutates remote state and is skipped in read-only mode.
func registerVersionTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listVersionsTool := mcp.NewTool("gtm_list_versions",
		mcp.WithDescription("List all versions of a container"),
		mcp.WithString("container_path",
			mcp.Required(),
			mcp.Description("Full container path (e.g. 'accounts/123/containers/456')"),
		),
		mcp.WithBoolean("include_deleted",
			mcp.Description("Include deleted versions (default false)"),
		),
	)

	addTool(s, sc, listVersionsTool, "versions.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		containerPath, err := validatedContainerPath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		versions, err := client.ListVersionHeaders(ctx, containerPath, optionalBool(args, "include_deleted"))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list versions: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"versions": versions}), nil
	})

	getVersionTool := mcp.NewTool("gtm_get_version",
		mcp.WithDescription("Get full details of a specific container version"),
		mcp.WithString("version_path",
			mcp.Required(),
			mcp.Description("Full version path (e.g. 'accounts/123/containers/456/versions/3')"),
		),
	)

	addTool(s, sc, getVersionTool, "versions.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		versionPath, err := validatedVersionPath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		version, err := client.GetVersion(ctx, versionPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get version: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"version": version}), nil
	})

	getLiveVersionTool := mcp.NewTool("gtm_get_live_version",
		mcp.WithDescription("Get the currently published (live) version of a container"),
		mcp.WithString("container_path",
			mcp.Required(),
			mcp.Description("Full container path"),
		),
	)

	addTool(s, sc, getLiveVersionTool, "versions.live", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		containerPath, err := validatedContainerPath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		version, err := client.GetLiveVersion(ctx, containerPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get live version: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"version": version}), nil
	})

	getLatestVersionTool := mcp.NewTool("gtm_get_latest_version",
		mcp.WithDescription("Get the latest version header of a container"),
		mcp.WithString("container_path",
			mcp.Required(),
			mcp.Description("Full container path"),
		),
	)

	addTool(s, sc, getLatestVersionTool, "versions.latest", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		containerPath, err := validatedContainerPath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		version, err := client.GetLatestVersionHeader(ctx, containerPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get latest version: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"version": version}), nil
	})

	if readOnly {
		return nil
	}

	createVersionTool := mcp.NewTool("gtm_create_version",
		mcp.WithDescription("Create a new container version from a workspace. The workspace is consumed by versioning; the response includes the new version with its fingerprint for publishing."),
		mcp.WithString("workspace_path",
			mcp.Required(),
			mcp.Description("Full workspace path"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name for the new version"),
		),
		mcp.WithString("notes",
			mcp.Description("Notes describing the changes in this version"),
		),
	)

	addTool(s, sc, createVersionTool, "versions.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		workspacePath, err := validatedWorkspacePath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		name, err := requiredString(args, "name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := gtm.ValidateName(name, "name", 0); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		notes := optionalString(args, "notes")
		if err := gtm.ValidateNotes(notes); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		response, err := client.CreateVersion(ctx, workspacePath, name, notes)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create version: %v", err)), nil
		}
		if response.CompilerError {
			return mcp.NewToolResultError("Version creation failed with compiler errors; inspect the workspace for invalid entities"), nil
		}

		return jsonResult(map[string]interface{}{"success": true, "version": response.ContainerVersion}), nil
	})

	publishVersionTool := mcp.NewTool("gtm_publish_version",
		mcp.WithDescription("Publish a container version, making it live. The fingerprint from the version is required to detect concurrent edits."),
		mcp.WithString("version_path",
			mcp.Required(),
			mcp.Description("Full version path (e.g. 'accounts/123/containers/456/versions/3')"),
		),
		mcp.WithString("fingerprint",
			mcp.Required(),
			mcp.Description("Fingerprint of the version as last read"),
		),
	)

	addTool(s, sc, publishVersionTool, "versions.publish", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		versionPath, err := validatedVersionPath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		fingerprint, err := requiredString(args, "fingerprint")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		response, err := client.PublishVersion(ctx, versionPath, fingerprint)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to publish version: %v", err)), nil
		}
		if response.CompilerError {
			return mcp.NewToolResultError("Publish failed with compiler errors; the version was not made live"), nil
		}

		return jsonResult(map[string]interface{}{"success": true, "version": response.ContainerVersion}), nil
	})

	deleteVersionTool := mcp.NewTool("gtm_delete_version",
		mcp.WithDescription("Delete (archive) a container version"),
		mcp.WithString("version_path",
			mcp.Required(),
			mcp.Description("Full version path"),
		),
	)

	addTool(s, sc, deleteVersionTool, "versions.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		versionPath, err := validatedVersionPath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.DeleteVersion(ctx, versionPath); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete version: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{
			"success": true,
			"message": fmt.Sprintf("Version deleted successfully: %s", versionPath),
		}), nil
	})

	undeleteVersionTool := mcp.NewTool("gtm_undelete_version",
		mcp.WithDescription("Restore a deleted container version"),
		mcp.WithString("version_path",
			mcp.Required(),
			mcp.Description("Full version path"),
		),
	)

	addTool(s, sc, undeleteVersionTool, "versions.undelete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		versionPath, err := validatedVersionPath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		version, err := client.UndeleteVersion(ctx, versionPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to undelete version: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"success": true, "version": version}), nil
	})

	updateVersionTool := mcp.NewTool("gtm_update_version",
		mcp.WithDescription("Update the name and notes of a container version. The fingerprint from the last read is required to detect concurrent edits."),
		mcp.WithString("version_path",
			mcp.Required(),
			mcp.Description("Full version path"),
		),
		mcp.WithString("name",
			mcp.Description("New name for the version"),
		),
		mcp.WithString("notes",
			mcp.Description("New notes for the version"),
		),
		mcp.WithString("fingerprint",
			mcp.Required(),
			mcp.Description("Fingerprint of the version as last read"),
		),
	)

	addTool(s, sc, updateVersionTool, "versions.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		versionPath, err := validatedVersionPath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		fingerprint, err := requiredString(args, "fingerprint")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		name := optionalString(args, "name")
		notes := optionalString(args, "notes")
		if name == "" && notes == "" {
			return mcp.NewToolResultError("at least one of name or notes is required"), nil
		}
		if name != "" {
			if err := gtm.ValidateName(name, "name", 0); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		if err := gtm.ValidateNotes(notes); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		updated, err := client.UpdateVersion(ctx, versionPath, &tagmanager.ContainerVersion{
			Name:        name,
			Description: notes,
		}, fingerprint)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update version: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"success": true, "version": updated}), nil
	})

	setLatestVersionTool := mcp.NewTool("gtm_set_latest_version",
		mcp.WithDescription("Set a container version as the latest version"),
		mcp.WithString("version_path",
			mcp.Required(),
			mcp.Description("Full version path"),
		),
	)

	addTool(s, sc, setLatestVersionTool, "versions.set_latest", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		versionPath, err := validatedVersionPath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		version, err := client.SetLatestVersion(ctx, versionPath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to set latest version: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"success": true, "version": version}), nil
	})

	return nil
}

func validatedContainerPath(args map[string]interface{}) (string, error) {
	containerPath, err := requiredString(args, "container_path")
	if err != nil {
		return "", err
	}
	if err := gtm.ValidateGTMPath(containerPath, "container"); err != nil {
		return "", err
	}
	return containerPath, nil
}

func validatedVersionPath(args map[string]interface{}) (string, error) {
	versionPath, err := requiredString(args, "version_path")
	if err != nil {
		return "", err
	}
	if err := gtm.ValidateGTMPath(versionPath, "version"); err != nil {
		return "", err
	}
	return versionPath, nil
}
