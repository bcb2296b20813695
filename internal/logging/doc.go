// Package logging provides shared slog attribute keys and helpers so log
// output uses the same field names everywhere: the audit logger builds its
// attributes from the Key constants, and call sites attach errors and
// account IDs through Err and Account.
package logging
