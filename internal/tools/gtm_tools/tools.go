package gtm_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/paolbtl/gtm-mcp/internal/gtm"
	"github.com/paolbtl/gtm-mcp/internal/server"
	"github.com/paolbtl/gtm-mcp/internal/tools/common"
)

type toolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// RegisterGTMTools registers all Tag Manager tools with the MCP server.
// Read tools are always available; mutating tools are skipped in read-only mode.
func RegisterGTMTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerAccountTools(s, sc); err != nil {
		return fmt.Errorf("failed to register account tools: %w", err)
	}
	if err := registerWorkspaceTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register workspace tools: %w", err)
	}
	if err := registerTagTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register tag tools: %w", err)
	}
	if err := registerTriggerTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register trigger tools: %w", err)
	}
	if err := registerVariableTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register variable tools: %w", err)
	}
	if err := registerVersionTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register version tools: %w", err)
	}
	return nil
}

// addTool registers a tool with the instrumentation wrapper applied, so every
// invocation is counted, timed and audit-logged under its API operation name.
func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler toolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation(tool.Name, operation, sc, handler))
}

// getClient returns the shared Tag Manager client, creating it on first use.
func getClient(sc *server.ServerContext) (*gtm.Client, error) {
	client, err := sc.Client()
	if err != nil {
		return nil, fmt.Errorf("failed to create Tag Manager client: %w", err)
	}
	return client, nil
}

// jsonResult marshals v as indented JSON into a text tool result.
func jsonResult(v interface{}) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data))
}

func requiredString(args map[string]interface{}, name string) (string, error) {
	value, ok := args[name].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}

func optionalString(args map[string]interface{}, name string) string {
	value, _ := args[name].(string)
	return value
}

func optionalBool(args map[string]interface{}, name string) bool {
	value, _ := args[name].(bool)
	return value
}

// marshalCompact marshals a value for embedding in a batch result entry.
func marshalCompact(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeInto round-trips an argument value through JSON into a typed struct.
// Tool arguments arrive as generic maps; the tagmanager structs carry the
// field names the API expects.
func decodeInto(v interface{}, dst interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
