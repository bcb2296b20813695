package gtm_tools

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paolbtl/gtm-mcp/internal/config"
	"github.com/paolbtl/gtm-mcp/internal/gtm"
	"github.com/paolbtl/gtm-mcp/internal/server"
)

const testWorkspacePath = "accounts/6321366409/containers/222222/workspaces/12"

func TestRegisterGTMTools(t *testing.T) {
	for _, readOnly := range []bool{true, false} {
		sc := server.NewServerContext(context.Background(), &config.Config{AccountID: "6321366409"}, readOnly)
		t.Cleanup(func() { _ = sc.Shutdown() })

		s := mcpserver.NewMCPServer("gtm-mcp-test", "0.0.0")
		require.NoError(t, RegisterGTMTools(s, sc, readOnly))
	}
}

func TestResolveWorkspacePath(t *testing.T) {
	ctx := context.Background()

	path, err := resolveWorkspacePath(ctx, map[string]interface{}{
		"workspace_path": testWorkspacePath,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, testWorkspacePath, path)

	_, err = resolveWorkspacePath(ctx, map[string]interface{}{
		"workspace_path": "containers/222222",
	}, nil)
	assert.Error(t, err)

	_, err = resolveWorkspacePath(ctx, map[string]interface{}{}, nil)
	assert.ErrorContains(t, err, "workspace_path or container_path")
}

func TestValidatedWorkspacePath(t *testing.T) {
	_, err := validatedWorkspacePath(map[string]interface{}{})
	assert.ErrorContains(t, err, "workspace_path is required")

	_, err = validatedWorkspacePath(map[string]interface{}{"workspace_path": "bogus"})
	assert.Error(t, err)

	path, err := validatedWorkspacePath(map[string]interface{}{"workspace_path": testWorkspacePath})
	require.NoError(t, err)
	assert.Equal(t, testWorkspacePath, path)
}

func TestBuildTagFromArgsGA4Config(t *testing.T) {
	tag, err := buildTagFromArgs(map[string]interface{}{
		"name":           "GA4 Configuration",
		"type":           "gaawc",
		"measurement_id": "G-ABC123XYZ",
		"send_page_view": false,
		"notes":          "base config",
	})
	require.NoError(t, err)

	assert.Equal(t, "GA4 Configuration", tag.Name)
	assert.Equal(t, gtm.TagGA4Config, tag.Type)
	assert.Equal(t, "base config", tag.Notes)

	params := map[string]string{}
	for _, p := range tag.Parameter {
		params[p.Key] = p.Value
	}
	assert.Equal(t, "G-ABC123XYZ", params["measurementId"])
	assert.Equal(t, "false", params["sendPageView"])
}

func TestBuildTagFromArgsGA4Event(t *testing.T) {
	tag, err := buildTagFromArgs(map[string]interface{}{
		"name":            "Purchase Event",
		"type":            "gaawe",
		"config_tag_name": "GA4 Configuration",
		"event_name":      "purchase",
		"event_parameters": map[string]interface{}{
			"currency": "EUR",
			"value":    99.9,
		},
		"send_ecommerce":     true,
		"firing_trigger_ids": []interface{}{"31", "32"},
	})
	require.NoError(t, err)

	assert.Equal(t, gtm.TagGA4Event, tag.Type)
	assert.Equal(t, []string{"31", "32"}, tag.FiringTriggerId)

	var keys []string
	for _, p := range tag.Parameter {
		keys = append(keys, p.Key)
	}
	assert.Contains(t, keys, "eventName")
	assert.Contains(t, keys, "eventParameters")
	assert.Contains(t, keys, "sendEcommerceData")
}

func TestBuildTagFromArgsGA4EventRequiresConfigTag(t *testing.T) {
	_, err := buildTagFromArgs(map[string]interface{}{
		"name":       "Purchase Event",
		"type":       "gaawe",
		"event_name": "purchase",
	})
	assert.ErrorContains(t, err, "config_tag_name")
}

func TestBuildTagFromArgsRejectsBadEventName(t *testing.T) {
	_, err := buildTagFromArgs(map[string]interface{}{
		"name":            "Bad Event",
		"type":            "gaawe",
		"config_tag_name": "GA4 Configuration",
		"event_name":      "123invalid",
	})
	assert.Error(t, err)
}

func TestBuildTagFromArgsGeneric(t *testing.T) {
	tag, err := buildTagFromArgs(map[string]interface{}{
		"name": "Custom HTML",
		"type": "html",
		"config": map[string]interface{}{
			"html": "<script>console.log('hi')</script>",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "html", tag.Type)
	require.Len(t, tag.Parameter, 1)
	assert.Equal(t, "html", tag.Parameter[0].Key)
	assert.Equal(t, gtm.ParamTypeTemplate, tag.Parameter[0].Type)
}

func TestBuildTagFromArgsMissingName(t *testing.T) {
	_, err := buildTagFromArgs(map[string]interface{}{"type": "html"})
	assert.ErrorContains(t, err, "name is required")
}

func TestBuildTriggerFromArgsCustomEvent(t *testing.T) {
	trigger, err := buildTriggerFromArgs(map[string]interface{}{
		"name":              "Purchase Trigger",
		"type":              "customEvent",
		"custom_event_name": "purchase",
	})
	require.NoError(t, err)

	require.Len(t, trigger.CustomEventFilter, 1)
	cond := trigger.CustomEventFilter[0]
	assert.Equal(t, gtm.FilterEquals, cond.Type)
	require.Len(t, cond.Parameter, 2)
	assert.Equal(t, "{{_event}}", cond.Parameter[0].Value)
	assert.Equal(t, "purchase", cond.Parameter[1].Value)
}

func TestBuildTriggerFromArgsCustomEventRequiresName(t *testing.T) {
	_, err := buildTriggerFromArgs(map[string]interface{}{
		"name": "Broken Trigger",
		"type": "customEvent",
	})
	assert.ErrorContains(t, err, "custom_event_name")
}

func TestBuildTriggerFromArgsScrollDepth(t *testing.T) {
	trigger, err := buildTriggerFromArgs(map[string]interface{}{
		"name":               "Scroll Tracking",
		"type":               "scrollDepth",
		"scroll_percentages": []interface{}{75.0, 25.0, 50.0},
	})
	require.NoError(t, err)

	require.Len(t, trigger.Parameter, 3)
	list := trigger.Parameter[2]
	assert.Equal(t, "verticalScrollPercentageList", list.Key)
	require.Len(t, list.List, 3)
	assert.Equal(t, "25", list.List[0].Value)
	assert.Equal(t, "50", list.List[1].Value)
	assert.Equal(t, "75", list.List[2].Value)
}

func TestBuildTriggerFromArgsScrollDepthRejectsFractions(t *testing.T) {
	_, err := buildTriggerFromArgs(map[string]interface{}{
		"name":               "Scroll Tracking",
		"type":               "scrollDepth",
		"scroll_percentages": []interface{}{25.5},
	})
	assert.ErrorContains(t, err, "whole numbers")
}

func TestBuildTriggerFromArgsTriggerGroup(t *testing.T) {
	trigger, err := buildTriggerFromArgs(map[string]interface{}{
		"name":        "Combined Trigger",
		"type":        "triggerGroup",
		"trigger_ids": []interface{}{"31", "32"},
	})
	require.NoError(t, err)

	require.Len(t, trigger.Parameter, 1)
	param := trigger.Parameter[0]
	assert.Equal(t, "triggerIds", param.Key)
	require.Len(t, param.List, 2)
	assert.Equal(t, gtm.ParamTypeTriggerReference, param.List[0].Type)
	assert.Equal(t, "31", param.List[0].Value)
}

func TestBuildTriggerFromArgsLinkClickFilter(t *testing.T) {
	trigger, err := buildTriggerFromArgs(map[string]interface{}{
		"name":           "Outbound Link Click",
		"type":           "linkClick",
		"filter_type":    "CONTAINS",
		"filter_pattern": "example.com",
	})
	require.NoError(t, err)

	require.Len(t, trigger.Filter, 1)
	assert.Equal(t, gtm.FilterContains, trigger.Filter[0].Type)
}

func TestBuildTriggerFromArgsRejectsUnknownType(t *testing.T) {
	_, err := buildTriggerFromArgs(map[string]interface{}{
		"name": "Broken Trigger",
		"type": "notARealType",
	})
	assert.Error(t, err)
}

func TestBuildVariableFromArgsConstant(t *testing.T) {
	variable, err := buildVariableFromArgs(map[string]interface{}{
		"name":   "Environment",
		"type":   "c",
		"config": map[string]interface{}{"value": "production"},
	})
	require.NoError(t, err)

	require.Len(t, variable.Parameter, 1)
	assert.Equal(t, "value", variable.Parameter[0].Key)
	assert.Equal(t, "production", variable.Parameter[0].Value)
}

func TestBuildVariableFromArgsDataLayer(t *testing.T) {
	variable, err := buildVariableFromArgs(map[string]interface{}{
		"name":   "Transaction ID",
		"type":   "v",
		"config": map[string]interface{}{"data_layer_name": "transactionId"},
	})
	require.NoError(t, err)

	require.Len(t, variable.Parameter, 2)
	assert.Equal(t, "transactionId", variable.Parameter[0].Value)
	assert.Equal(t, "dataLayerVersion", variable.Parameter[1].Key)
	assert.Equal(t, "2", variable.Parameter[1].Value)
}

func TestBuildVariableFromArgsCookie(t *testing.T) {
	variable, err := buildVariableFromArgs(map[string]interface{}{
		"name":   "Session Cookie",
		"type":   "k",
		"config": map[string]interface{}{"cookie_name": "session_id"},
	})
	require.NoError(t, err)

	require.Len(t, variable.Parameter, 1)
	assert.Equal(t, "session_id", variable.Parameter[0].Value)
}

func TestBuildVariableFromArgsUserProvidedData(t *testing.T) {
	variable, err := buildVariableFromArgs(map[string]interface{}{
		"name": "Enhanced Conversions",
		"type": "awec",
		"config": map[string]interface{}{
			"email":        "{{User Email}}",
			"phone_number": "{{User Phone}}",
		},
	})
	require.NoError(t, err)

	require.Len(t, variable.Parameter, 3)
	assert.Equal(t, "mode", variable.Parameter[0].Key)
	assert.Equal(t, "MANUAL", variable.Parameter[0].Value)
	assert.Equal(t, "email", variable.Parameter[1].Key)
	assert.Equal(t, "phone_number", variable.Parameter[2].Key)
}

func TestBuildVariableFromArgsNoConfig(t *testing.T) {
	variable, err := buildVariableFromArgs(map[string]interface{}{
		"name": "Page URL",
		"type": "u",
	})
	require.NoError(t, err)
	assert.Empty(t, variable.Parameter)
}

func TestBuildParametersLookupTable(t *testing.T) {
	params := buildParameters(map[string]interface{}{
		"defaultValue": "unknown",
		"map": []interface{}{
			map[string]interface{}{"key": "home", "value": "Homepage"},
			map[string]interface{}{"key": "checkout", "value": "Checkout"},
		},
	})

	require.Len(t, params, 2)
	assert.Equal(t, "defaultValue", params[0].Key)
	assert.Equal(t, gtm.ParamTypeTemplate, params[0].Type)
	assert.Equal(t, "map", params[1].Key)
	assert.Equal(t, gtm.ParamTypeList, params[1].Type)
	require.Len(t, params[1].List, 2)
	assert.Equal(t, gtm.ParamTypeMap, params[1].List[0].Type)
}

func TestEventParamsFromArgs(t *testing.T) {
	params, err := eventParamsFromArgs(map[string]interface{}{
		"event_parameters": map[string]interface{}{
			"currency": "EUR",
			"value":    42.0,
		},
	})
	require.NoError(t, err)

	require.Len(t, params, 2)
	assert.Equal(t, gtm.EventParam{Name: "currency", Value: "EUR"}, params[0])
	assert.Equal(t, gtm.EventParam{Name: "value", Value: "42"}, params[1])

	_, err = eventParamsFromArgs(map[string]interface{}{
		"event_parameters": "not an object",
	})
	assert.Error(t, err)

	params, err = eventParamsFromArgs(map[string]interface{}{})
	require.NoError(t, err)
	assert.Nil(t, params)
}

func TestValidatedVersionAndContainerPaths(t *testing.T) {
	_, err := validatedContainerPath(map[string]interface{}{"container_path": "accounts/6321366409/containers/222222"})
	assert.NoError(t, err)

	_, err = validatedContainerPath(map[string]interface{}{"container_path": "accounts/6321366409"})
	assert.Error(t, err)

	_, err = validatedVersionPath(map[string]interface{}{"version_path": "accounts/6321366409/containers/222222/versions/3"})
	assert.NoError(t, err)

	_, err = validatedVersionPath(map[string]interface{}{})
	assert.ErrorContains(t, err, "version_path is required")
}
