// Package batch provides common utilities for batch operations across the
// Tag Manager MCP tools.
//
// Several tools accept either a single resource ID or a list of IDs (get,
// delete). This package includes helpers for:
//   - Parsing parameters that accept both single values and arrays
//   - Formatting batch results in a consistent structure
//   - Processing batch operations with partial-failure reporting
package batch
