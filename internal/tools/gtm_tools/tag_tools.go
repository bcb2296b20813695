package gtm_tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"google.golang.org/api/tagmanager/v2"

	"github.com/paolbtl/gtm-mcp/internal/gtm"
	"github.com/paolbtl/gtm-mcp/internal/server"
	"github.com/paolbtl/gtm-mcp/internal/tools/batch"
)

// registerTagTools registers tag tools. Create, update and delete are
// mutating operations and are skipped in read-only mode.
func registerTagTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTagsTool := mcp.NewTool("gtm_list_tags",
		mcp.WithDescription("List all tags in a container workspace. Provide workspace_path, or container_path to use the container's first workspace."),
		mcp.WithString("workspace_path",
			mcp.Description("Full workspace path (e.g. 'accounts/123/containers/456/workspaces/7')"),
		),
		mcp.WithString("container_path",
			mcp.Description("Full container path; the first workspace is used when workspace_path is omitted"),
		),
	)

	addTool(s, sc, listTagsTool, "tags.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		workspacePath, err := resolveWorkspacePath(ctx, args, client)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tags, err := client.ListTags(ctx, workspacePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"tags": tags}), nil
	})

	getTagsTool := mcp.NewTool("gtm_get_tags",
		mcp.WithDescription("Get detailed configuration of one or more tags"),
		mcp.WithString("workspace_path",
			mcp.Required(),
			mcp.Description("Full workspace path (e.g. 'accounts/123/containers/456/workspaces/7')"),
		),
		mcp.WithString("tag_ids",
			mcp.Required(),
			mcp.Description("Tag ID (string) or array of tag IDs to retrieve"),
		),
	)

	addTool(s, sc, getTagsTool, "tags.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		workspacePath, err := validatedWorkspacePath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tagIDs, err := batch.ParseStringOrArray(args["tag_ids"], "tag_ids")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results := batch.ProcessBatch(tagIDs, func(tagID string) (string, error) {
			tag, err := client.GetTag(ctx, workspacePath+"/tags/"+tagID)
			if err != nil {
				return "", err
			}
			return marshalCompact(tag)
		})

		return mcp.NewToolResultText(batch.FormatResults(results)), nil
	})

	if !readOnly {
		createTagTool := mcp.NewTool("gtm_create_tag",
			mcp.WithDescription("Create a new tag in a workspace. GA4 configuration ('gaawc') and GA4 event ('gaawe') tags can be assembled from the dedicated arguments; other types take a flat config object."),
			mcp.WithString("workspace_path",
				mcp.Required(),
				mcp.Description("Full workspace path"),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name for the new tag"),
			),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("Tag type (e.g. 'gaawc', 'gaawe', 'html')"),
			),
			mcp.WithString("firing_trigger_ids",
				mcp.Description("Trigger ID (string) or array of trigger IDs that fire this tag"),
			),
			mcp.WithString("notes",
				mcp.Description("Notes attached to the tag"),
			),
			mcp.WithString("measurement_id",
				mcp.Description("GA4 measurement ID (for 'gaawc' tags, e.g. 'G-XXXXXXXXXX')"),
			),
			mcp.WithBoolean("send_page_view",
				mcp.Description("Whether a GA4 configuration tag sends an automatic page view (default true)"),
			),
			mcp.WithString("config_tag_name",
				mcp.Description("Name of the GA4 configuration tag to reference (for 'gaawe' tags)"),
			),
			mcp.WithString("event_name",
				mcp.Description("GA4 event name (for 'gaawe' tags, e.g. 'purchase')"),
			),
			mcp.WithObject("event_parameters",
				mcp.Description("GA4 event parameters as a name/value object (for 'gaawe' tags)"),
			),
			mcp.WithBoolean("send_ecommerce",
				mcp.Description("Whether a GA4 event tag sends ecommerce data from the data layer"),
			),
			mcp.WithObject("config",
				mcp.Description("Flat key/value configuration for non-GA4 tag types"),
			),
		)

		addTool(s, sc, createTagTool, "tags.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspacePath, err := validatedWorkspacePath(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			tag, err := buildTagFromArgs(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			created, err := client.CreateTag(ctx, workspacePath, tag)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create tag: %v", err)), nil
			}

			return jsonResult(map[string]interface{}{"success": true, "tag": created}), nil
		})

		updateTagTool := mcp.NewTool("gtm_update_tag",
			mcp.WithDescription("Update an existing tag. The fingerprint from the last read is required to detect concurrent edits."),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Full tag path (e.g. 'accounts/123/containers/456/workspaces/7/tags/8')"),
			),
			mcp.WithObject("tag",
				mcp.Required(),
				mcp.Description("Complete tag object in Tag Manager API shape"),
			),
			mcp.WithString("fingerprint",
				mcp.Required(),
				mcp.Description("Fingerprint of the tag as last read"),
			),
		)

		addTool(s, sc, updateTagTool, "tags.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			path, err := requiredString(args, "path")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := gtm.ValidateGTMPath(path, "tag"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			fingerprint, err := requiredString(args, "fingerprint")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var tag tagmanager.Tag
			if args["tag"] == nil {
				return mcp.NewToolResultError("tag is required"), nil
			}
			if err := decodeInto(args["tag"], &tag); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid tag object: %v", err)), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			updated, err := client.UpdateTag(ctx, path, &tag, fingerprint)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update tag: %v", err)), nil
			}

			return jsonResult(map[string]interface{}{"success": true, "tag": updated}), nil
		})

		deleteTagsTool := mcp.NewTool("gtm_delete_tags",
			mcp.WithDescription("Delete one or more tags from a workspace"),
			mcp.WithString("workspace_path",
				mcp.Required(),
				mcp.Description("Full workspace path"),
			),
			mcp.WithString("tag_ids",
				mcp.Required(),
				mcp.Description("Tag ID (string) or array of tag IDs to delete"),
			),
		)

		addTool(s, sc, deleteTagsTool, "tags.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspacePath, err := validatedWorkspacePath(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			tagIDs, err := batch.ParseStringOrArray(args["tag_ids"], "tag_ids")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results := batch.ProcessBatch(tagIDs, func(tagID string) (string, error) {
				if err := client.DeleteTag(ctx, workspacePath+"/tags/"+tagID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Tag %s deleted successfully", tagID), nil
			})

			return mcp.NewToolResultText(batch.FormatResults(results)), nil
		})
	}

	return nil
}

// resolveWorkspacePath returns the workspace path from the arguments, falling
// back to the container's first workspace when only container_path is given.
func resolveWorkspacePath(ctx context.Context, args map[string]interface{}, client *gtm.Client) (string, error) {
	if workspacePath := optionalString(args, "workspace_path"); workspacePath != "" {
		if err := gtm.ValidateGTMPath(workspacePath, "workspace"); err != nil {
			return "", err
		}
		return workspacePath, nil
	}

	containerPath := optionalString(args, "container_path")
	if containerPath == "" {
		return "", fmt.Errorf("either workspace_path or container_path is required")
	}
	if err := gtm.ValidateGTMPath(containerPath, "container"); err != nil {
		return "", err
	}

	workspaces, err := client.ListWorkspaces(ctx, containerPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve default workspace: %w", err)
	}
	if len(workspaces) == 0 {
		return "", fmt.Errorf("no workspaces found in container %s", containerPath)
	}
	return workspaces[0].Path, nil
}

// validatedWorkspacePath extracts and validates the required workspace_path argument.
func validatedWorkspacePath(args map[string]interface{}) (string, error) {
	workspacePath, err := requiredString(args, "workspace_path")
	if err != nil {
		return "", err
	}
	if err := gtm.ValidateGTMPath(workspacePath, "workspace"); err != nil {
		return "", err
	}
	return workspacePath, nil
}

// buildTagFromArgs assembles a tag from the create-tag arguments. GA4 types
// use the dedicated builders; everything else gets a flat parameter list.
func buildTagFromArgs(args map[string]interface{}) (*tagmanager.Tag, error) {
	name, err := requiredString(args, "name")
	if err != nil {
		return nil, err
	}
	if err := gtm.ValidateName(name, "name", 0); err != nil {
		return nil, err
	}

	tagType, err := requiredString(args, "type")
	if err != nil {
		return nil, err
	}

	notes := optionalString(args, "notes")
	if err := gtm.ValidateNotes(notes); err != nil {
		return nil, err
	}

	var tag *tagmanager.Tag

	switch {
	case tagType == gtm.TagGA4Config && optionalString(args, "measurement_id") != "":
		sendPageView := true
		if v, ok := args["send_page_view"].(bool); ok {
			sendPageView = v
		}
		tag = gtm.GA4ConfigTag(name, optionalString(args, "measurement_id"), sendPageView)

	case tagType == gtm.TagGA4Event && optionalString(args, "event_name") != "":
		eventName := optionalString(args, "event_name")
		if err := gtm.ValidateGA4EventName(eventName); err != nil {
			return nil, err
		}
		configTagName, err := requiredString(args, "config_tag_name")
		if err != nil {
			return nil, err
		}
		eventParams, err := eventParamsFromArgs(args)
		if err != nil {
			return nil, err
		}
		tag = gtm.GA4EventTag(name, configTagName, eventName, eventParams, optionalBool(args, "send_ecommerce"))

	default:
		tag = &tagmanager.Tag{Name: name, Type: tagType}
		if config, ok := args["config"].(map[string]interface{}); ok {
			tag.Parameter = buildParameters(config)
		}
	}

	tag.Notes = notes

	if args["firing_trigger_ids"] != nil {
		triggerIDs, err := batch.ParseStringOrArray(args["firing_trigger_ids"], "firing_trigger_ids")
		if err != nil {
			return nil, err
		}
		if err := gtm.ValidateTriggerIDs(triggerIDs); err != nil {
			return nil, err
		}
		tag.FiringTriggerId = triggerIDs
	}

	return tag, nil
}

// eventParamsFromArgs converts the event_parameters object into name/value pairs.
func eventParamsFromArgs(args map[string]interface{}) ([]gtm.EventParam, error) {
	raw, ok := args["event_parameters"]
	if !ok || raw == nil {
		return nil, nil
	}
	config, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("event_parameters must be an object of name/value pairs")
	}

	names := sortedKeys(config)
	params := make([]gtm.EventParam, 0, len(names))
	for _, name := range names {
		if err := gtm.ValidateGA4ParameterName(name); err != nil {
			return nil, err
		}
		params = append(params, gtm.EventParam{Name: name, Value: fmt.Sprint(config[name])})
	}
	return params, nil
}

// buildParameters converts a flat config object into the API's parameter
// tree. Lists of objects become LIST parameters of MAPs (lookup tables);
// scalar values become TEMPLATE parameters.
func buildParameters(config map[string]interface{}) []*tagmanager.Parameter {
	params := make([]*tagmanager.Parameter, 0, len(config))
	for _, key := range sortedKeys(config) {
		value := config[key]
		if items, ok := value.([]interface{}); ok {
			entries := make([]*tagmanager.Parameter, 0, len(items))
			for _, item := range items {
				entry, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				fields := make([]*tagmanager.Parameter, 0, len(entry))
				for _, k := range sortedKeys(entry) {
					fields = append(fields, gtm.TemplateParam(k, fmt.Sprint(entry[k])))
				}
				entries = append(entries, gtm.MapParam(fields...))
			}
			params = append(params, gtm.ListParam(key, entries...))
			continue
		}
		params = append(params, gtm.TemplateParam(key, fmt.Sprint(value)))
	}
	return params
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
