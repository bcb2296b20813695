package gtm_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"google.golang.org/api/tagmanager/v2"

	"github.com/paolbtl/gtm-mcp/internal/gtm"
	"github.com/paolbtl/gtm-mcp/internal/server"
	"github.com/paolbtl/gtm-mcp/internal/tools/batch"
)

// registerTriggerTools registers trigger tools. Create and delete are
// mutating operations and are skipped in read-only mode.
func registerTriggerTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTriggersTool := mcp.NewTool("gtm_list_triggers",
		mcp.WithDescription("List all triggers in a container workspace"),
		mcp.WithString("workspace_path",
			mcp.Required(),
			mcp.Description("Full workspace path (e.g. 'accounts/123/containers/456/workspaces/7')"),
		),
	)

	addTool(s, sc, listTriggersTool, "triggers.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		workspacePath, err := validatedWorkspacePath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		triggers, err := client.ListTriggers(ctx, workspacePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list triggers: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"triggers": triggers}), nil
	})

	getTriggerTool := mcp.NewTool("gtm_get_trigger",
		mcp.WithDescription("Get detailed configuration of a specific trigger"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full trigger path (e.g. 'accounts/123/containers/456/workspaces/7/triggers/8')"),
		),
	)

	addTool(s, sc, getTriggerTool, "triggers.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		path, err := requiredString(args, "path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := gtm.ValidateGTMPath(path, "trigger"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		trigger, err := client.GetTrigger(ctx, path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get trigger: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"trigger": trigger}), nil
	})

	if !readOnly {
		createTriggerTool := mcp.NewTool("gtm_create_trigger",
			mcp.WithDescription("Create a new trigger in a workspace. Custom event triggers take custom_event_name, scroll depth triggers take scroll_percentages, trigger groups take trigger_ids, and click triggers can take a URL filter."),
			mcp.WithString("workspace_path",
				mcp.Required(),
				mcp.Description("Full workspace path"),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name for the new trigger"),
			),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("Trigger type (e.g. 'pageview', 'customEvent', 'scrollDepth', 'linkClick', 'triggerGroup')"),
			),
			mcp.WithString("custom_event_name",
				mcp.Description("For custom event triggers: the data layer event name to match (e.g. 'purchase')"),
			),
			mcp.WithArray("scroll_percentages",
				mcp.Description("For scroll depth triggers: vertical scroll percentages to fire at (e.g. [25, 50, 75])"),
			),
			mcp.WithString("trigger_ids",
				mcp.Description("For trigger groups: array of trigger IDs the group waits for"),
			),
			mcp.WithString("filter_type",
				mcp.Description("For click/link click triggers: comparison operator for the URL filter (e.g. 'CONTAINS')"),
			),
			mcp.WithString("filter_pattern",
				mcp.Description("For click/link click triggers: pattern the click URL is compared against"),
			),
			mcp.WithString("notes",
				mcp.Description("Notes attached to the trigger"),
			),
		)

		addTool(s, sc, createTriggerTool, "triggers.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspacePath, err := validatedWorkspacePath(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			trigger, err := buildTriggerFromArgs(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			created, err := client.CreateTrigger(ctx, workspacePath, trigger)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create trigger: %v", err)), nil
			}

			return jsonResult(map[string]interface{}{"success": true, "trigger": created}), nil
		})

		deleteTriggersTool := mcp.NewTool("gtm_delete_triggers",
			mcp.WithDescription("Delete one or more triggers from a workspace"),
			mcp.WithString("workspace_path",
				mcp.Required(),
				mcp.Description("Full workspace path"),
			),
			mcp.WithString("trigger_ids",
				mcp.Required(),
				mcp.Description("Trigger ID (string) or array of trigger IDs to delete"),
			),
		)

		addTool(s, sc, deleteTriggersTool, "triggers.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspacePath, err := validatedWorkspacePath(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			triggerIDs, err := batch.ParseStringOrArray(args["trigger_ids"], "trigger_ids")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := gtm.ValidateTriggerIDs(triggerIDs); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results := batch.ProcessBatch(triggerIDs, func(triggerID string) (string, error) {
				if err := client.DeleteTrigger(ctx, workspacePath+"/triggers/"+triggerID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Trigger %s deleted successfully", triggerID), nil
			})

			return mcp.NewToolResultText(batch.FormatResults(results)), nil
		})
	}

	return nil
}

// buildTriggerFromArgs assembles a trigger from the create-trigger arguments.
func buildTriggerFromArgs(args map[string]interface{}) (*tagmanager.Trigger, error) {
	name, err := requiredString(args, "name")
	if err != nil {
		return nil, err
	}
	if err := gtm.ValidateName(name, "name", 0); err != nil {
		return nil, err
	}

	triggerType, err := requiredString(args, "type")
	if err != nil {
		return nil, err
	}
	if err := gtm.ValidateTriggerType(triggerType); err != nil {
		return nil, err
	}

	notes := optionalString(args, "notes")
	if err := gtm.ValidateNotes(notes); err != nil {
		return nil, err
	}

	trigger := &tagmanager.Trigger{Name: name, Type: triggerType, Notes: notes}

	switch triggerType {
	case gtm.TriggerCustomEvent:
		eventName := optionalString(args, "custom_event_name")
		filter, err := gtm.CustomEventFilter(eventName)
		if err != nil {
			return nil, fmt.Errorf("custom event triggers require custom_event_name: %w", err)
		}
		trigger.CustomEventFilter = filter

	case gtm.TriggerScrollDepth:
		percentages, err := scrollPercentagesFromArgs(args)
		if err != nil {
			return nil, err
		}
		param, err := gtm.ScrollPercentageList(percentages)
		if err != nil {
			return nil, err
		}
		trigger.Parameter = []*tagmanager.Parameter{
			gtm.BooleanParam("verticalThresholdOn", true),
			gtm.TemplateParam("verticalThresholdUnits", "PERCENT"),
			param,
		}

	case gtm.TriggerTriggerGroup:
		triggerIDs, err := batch.ParseStringOrArray(args["trigger_ids"], "trigger_ids")
		if err != nil {
			return nil, err
		}
		if err := gtm.ValidateTriggerIDs(triggerIDs); err != nil {
			return nil, err
		}
		refs := make([]*tagmanager.Parameter, 0, len(triggerIDs))
		for _, id := range triggerIDs {
			refs = append(refs, gtm.TriggerReferenceParam(id))
		}
		trigger.Parameter = []*tagmanager.Parameter{gtm.ListParam("triggerIds", refs...)}

	case gtm.TriggerClick, gtm.TriggerLinkClick:
		filterType := optionalString(args, "filter_type")
		filterPattern := optionalString(args, "filter_pattern")
		if filterType != "" || filterPattern != "" {
			filter, err := gtm.ClickFilter(filterType, filterPattern)
			if err != nil {
				return nil, err
			}
			trigger.Filter = filter
		}
	}

	return trigger, nil
}

// scrollPercentagesFromArgs converts the scroll_percentages array into ints.
// JSON numbers arrive as float64.
func scrollPercentagesFromArgs(args map[string]interface{}) ([]int, error) {
	raw, ok := args["scroll_percentages"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("scroll depth triggers require scroll_percentages")
	}
	percentages := make([]int, 0, len(raw))
	for _, item := range raw {
		value, ok := item.(float64)
		if !ok || value != float64(int(value)) {
			return nil, fmt.Errorf("scroll_percentages must be whole numbers, got %v", item)
		}
		percentages = append(percentages, int(value))
	}
	return percentages, nil
}
