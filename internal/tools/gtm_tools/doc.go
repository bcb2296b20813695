// Package gtm_tools registers the Google Tag Manager MCP tools.
//
// One tool is exposed per Tag Manager operation, grouped by resource:
// accounts and containers, workspaces, tags, triggers, variables and
// container versions. Tools take flat snake_case arguments and return the
// raw Tag Manager API response as indented JSON.
//
// Read tools are always registered. Mutating tools (create, update, delete,
// publish) are only registered when the server runs without read-only mode.
// Every mutating tool that edits an existing resource requires the
// fingerprint from the last read, so concurrent edits fail instead of
// silently overwriting each other.
//
// Tools that accept multiple IDs (gtm_get_tags, gtm_delete_tags,
// gtm_get_variables, gtm_delete_variables, gtm_delete_triggers) process each
// ID independently and report per-item results.
package gtm_tools
