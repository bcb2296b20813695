package logging

import (
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyTool      = "tool"
	KeyAccount   = "account_id"
	KeyDuration  = "duration"
	KeyError     = "error"
)

// Account returns a slog attribute for the GTM account ID.
func Account(accountID string) slog.Attr {
	return slog.String(KeyAccount, accountID)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
