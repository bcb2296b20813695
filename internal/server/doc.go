// Package server provides the MCP server context, health endpoints and the
// dedicated metrics server for gtm-mcp.
//
// # Key Components
//
// ServerContext holds the process configuration, the account guard and the
// shared Tag Manager client. The client is created lazily on first use and
// reused by every tool call; it authenticates with the single process-wide
// credential selected at startup.
//
// HealthChecker exposes /healthz, /readyz and /healthz/detailed for
// Kubernetes probes.
//
// MetricsServer serves the Prometheus /metrics endpoint on its own port so
// operational metrics never share the MCP transport port.
package server
