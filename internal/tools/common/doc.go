// Package common provides shared utilities for MCP tool implementations.
// It contains the instrumentation wrapper applied to every registered tool
// handler so metrics and audit logging stay consistent across tool packages.
package common
