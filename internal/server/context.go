package server

import (
	"context"
	"sync"

	"github.com/paolbtl/gtm-mcp/internal/config"
	"github.com/paolbtl/gtm-mcp/internal/google"
	"github.com/paolbtl/gtm-mcp/internal/gtm"
	"github.com/paolbtl/gtm-mcp/internal/instrumentation"
)

// ServerContext holds the shared state for the MCP server: configuration,
// the account guard, the lazily created Tag Manager client and the
// instrumentation hooks.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	cfg         *config.Config
	guard       *gtm.AccountGuard
	client      *gtm.Client
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	readOnly    bool
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context. The Tag Manager client is
// not created here; the first tool call triggers it so the server can start
// without credentials and fail per-call with a clear error instead.
func NewServerContext(ctx context.Context, cfg *config.Config, readOnly bool) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		cfg:      cfg,
		guard:    gtm.NewAccountGuard(cfg.AccountID),
		readOnly: readOnly,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the process configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Guard returns the account guard.
func (sc *ServerContext) Guard() *gtm.AccountGuard {
	return sc.guard
}

// ReadOnly reports whether mutating tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// Client returns the shared Tag Manager client, creating it on first use.
// The client and its token source are safe for concurrent tool calls.
func (sc *ServerContext) Client() (*gtm.Client, error) {
	sc.mu.RLock()
	if sc.client != nil {
		defer sc.mu.RUnlock()
		return sc.client, nil
	}
	sc.mu.RUnlock()

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.client != nil {
		return sc.client, nil
	}

	ts, err := google.NewTokenSource(sc.ctx, sc.cfg)
	if err != nil {
		return nil, err
	}
	client, err := gtm.NewClient(sc.ctx, ts, sc.guard)
	if err != nil {
		return nil, err
	}
	sc.client = client
	return client, nil
}

// SetClient sets the Tag Manager client, mainly for tests.
func (sc *ServerContext) SetClient(client *gtm.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
}

// SetMetrics sets the metrics recorder.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, nil when audit logging is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
