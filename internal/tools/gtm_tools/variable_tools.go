package gtm_tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"google.golang.org/api/tagmanager/v2"

	"github.com/paolbtl/gtm-mcp/internal/gtm"
	"github.com/paolbtl/gtm-mcp/internal/server"
	"github.com/paolbtl/gtm-mcp/internal/tools/batch"
)

// registerVariableTools registers variable tools. Create, update and delete
// are mutating operations and are skipped in read-only mode.
func registerVariableTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listVariablesTool := mcp.NewTool("gtm_list_variables",
		mcp.WithDescription("List all variables in a container workspace"),
		mcp.WithString("workspace_path",
			mcp.Required(),
			mcp.Description("Full workspace path (e.g. 'accounts/123/containers/456/workspaces/7')"),
		),
	)

	addTool(s, sc, listVariablesTool, "variables.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		workspacePath, err := validatedWorkspacePath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		variables, err := client.ListVariables(ctx, workspacePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list variables: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{"variables": variables}), nil
	})

	getVariablesTool := mcp.NewTool("gtm_get_variables",
		mcp.WithDescription("Get detailed configuration of one or more variables"),
		mcp.WithString("workspace_path",
			mcp.Required(),
			mcp.Description("Full workspace path"),
		),
		mcp.WithString("variable_ids",
			mcp.Required(),
			mcp.Description("Variable ID (string) or array of variable IDs to retrieve"),
		),
	)

	addTool(s, sc, getVariablesTool, "variables.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		workspacePath, err := validatedWorkspacePath(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		variableIDs, err := batch.ParseStringOrArray(args["variable_ids"], "variable_ids")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := getClient(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results := batch.ProcessBatch(variableIDs, func(variableID string) (string, error) {
			variable, err := client.GetVariable(ctx, workspacePath+"/variables/"+variableID)
			if err != nil {
				return "", err
			}
			return marshalCompact(variable)
		})

		return mcp.NewToolResultText(batch.FormatResults(results)), nil
	})

	if !readOnly {
		createVariableTool := mcp.NewTool("gtm_create_variable",
			mcp.WithDescription("Create a new variable in a workspace. The config object is interpreted per variable type: constant {value}, data layer {data_layer_name, version}, javascript {javascript}, URL {component}, cookie {cookie_name}, user-provided data {email, phone_number, ...}."),
			mcp.WithString("workspace_path",
				mcp.Required(),
				mcp.Description("Full workspace path"),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name for the new variable"),
			),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("Variable type: 'c' (constant), 'v' (data layer), 'jsm' (custom JavaScript), 'u' (URL), 'k' (first-party cookie), 'awec' (user-provided data), or any Tag Manager type"),
			),
			mcp.WithObject("config",
				mcp.Description("Type-specific configuration object"),
			),
			mcp.WithString("notes",
				mcp.Description("Notes attached to the variable"),
			),
		)

		addTool(s, sc, createVariableTool, "variables.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspacePath, err := validatedWorkspacePath(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			variable, err := buildVariableFromArgs(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			created, err := client.CreateVariable(ctx, workspacePath, variable)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create variable: %v", err)), nil
			}

			return jsonResult(map[string]interface{}{"success": true, "variable": created}), nil
		})

		updateVariableTool := mcp.NewTool("gtm_update_variable",
			mcp.WithDescription("Update an existing variable. The fingerprint from the last read is required to detect concurrent edits."),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Full variable path (e.g. 'accounts/123/containers/456/workspaces/7/variables/8')"),
			),
			mcp.WithObject("variable",
				mcp.Required(),
				mcp.Description("Complete variable object in Tag Manager API shape"),
			),
			mcp.WithString("fingerprint",
				mcp.Required(),
				mcp.Description("Fingerprint of the variable as last read"),
			),
		)

		addTool(s, sc, updateVariableTool, "variables.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			path, err := requiredString(args, "path")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := gtm.ValidateGTMPath(path, "variable"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			fingerprint, err := requiredString(args, "fingerprint")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var variable tagmanager.Variable
			if args["variable"] == nil {
				return mcp.NewToolResultError("variable is required"), nil
			}
			if err := decodeInto(args["variable"], &variable); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid variable object: %v", err)), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			updated, err := client.UpdateVariable(ctx, path, &variable, fingerprint)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update variable: %v", err)), nil
			}

			return jsonResult(map[string]interface{}{"success": true, "variable": updated}), nil
		})

		deleteVariablesTool := mcp.NewTool("gtm_delete_variables",
			mcp.WithDescription("Delete one or more variables from a workspace"),
			mcp.WithString("workspace_path",
				mcp.Required(),
				mcp.Description("Full workspace path"),
			),
			mcp.WithString("variable_ids",
				mcp.Required(),
				mcp.Description("Variable ID (string) or array of variable IDs to delete"),
			),
		)

		addTool(s, sc, deleteVariablesTool, "variables.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspacePath, err := validatedWorkspacePath(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			variableIDs, err := batch.ParseStringOrArray(args["variable_ids"], "variable_ids")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results := batch.ProcessBatch(variableIDs, func(variableID string) (string, error) {
				if err := client.DeleteVariable(ctx, workspacePath+"/variables/"+variableID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Variable %s deleted successfully", variableID), nil
			})

			return mcp.NewToolResultText(batch.FormatResults(results)), nil
		})
	}

	return nil
}

// userDataFields are the user-provided data fields accepted for 'awec'
// variables, in the order they are emitted.
var userDataFields = []string{
	"email", "phone_number", "first_name", "last_name",
	"street", "city", "region", "postal_code", "country",
}

// buildVariableFromArgs assembles a variable from the create-variable
// arguments, mapping the flat config object to the parameter shape each
// variable type expects.
func buildVariableFromArgs(args map[string]interface{}) (*tagmanager.Variable, error) {
	name, err := requiredString(args, "name")
	if err != nil {
		return nil, err
	}
	if err := gtm.ValidateName(name, "name", 0); err != nil {
		return nil, err
	}

	variableType, err := requiredString(args, "type")
	if err != nil {
		return nil, err
	}

	notes := optionalString(args, "notes")
	if err := gtm.ValidateNotes(notes); err != nil {
		return nil, err
	}

	variable := &tagmanager.Variable{Name: name, Type: variableType, Notes: notes}

	config, ok := args["config"].(map[string]interface{})
	if !ok || len(config) == 0 {
		return variable, nil
	}

	switch variableType {
	case gtm.VariableConstant:
		variable.Parameter = []*tagmanager.Parameter{
			gtm.TemplateParam("value", configString(config, "value")),
		}
	case gtm.VariableJavaScript:
		variable.Parameter = []*tagmanager.Parameter{
			gtm.TemplateParam("javascript", configString(config, "javascript")),
		}
	case gtm.VariableURL:
		component := configString(config, "component")
		if component == "" {
			component = "URL"
		}
		variable.Parameter = []*tagmanager.Parameter{
			gtm.TemplateParam("component", component),
		}
	case gtm.VariableDataLayer:
		version := int64(2)
		if v, ok := config["version"].(float64); ok {
			version = int64(v)
		}
		variable.Parameter = []*tagmanager.Parameter{
			gtm.TemplateParam("name", configString(config, "data_layer_name")),
			gtm.IntegerParam("dataLayerVersion", version),
		}
	case gtm.VariableCookie:
		variable.Parameter = []*tagmanager.Parameter{
			gtm.TemplateParam("name", configString(config, "cookie_name")),
		}
	case "awec":
		params := []*tagmanager.Parameter{gtm.TemplateParam("mode", "MANUAL")}
		for _, field := range userDataFields {
			if value, ok := config[field]; ok {
				params = append(params, gtm.TemplateParam(field, fmt.Sprint(value)))
			}
		}
		variable.Parameter = params
	default:
		variable.Parameter = buildParameters(config)
	}

	return variable, nil
}

func configString(config map[string]interface{}, key string) string {
	switch v := config[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
