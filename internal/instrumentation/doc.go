// Package instrumentation provides OpenTelemetry metrics and tracing for
// gtm-mcp, plus audit logging of tool invocations.
//
// Metrics are exported via Prometheus (default), OTLP or stdout; traces via
// OTLP or stdout, disabled by default. Configuration comes from environment
// variables, see DefaultConfig.
//
// The typical wiring is:
//
//	cfg := instrumentation.DefaultConfig()
//	provider, err := instrumentation.NewProvider(ctx, cfg)
//	...
//	defer provider.Shutdown(ctx)
//
// Tool handlers are wrapped with the recorder via the tools/common package so
// every invocation produces a metric sample and an audit log line.
package instrumentation
