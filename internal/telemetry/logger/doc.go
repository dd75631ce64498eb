// Package logger provides diagnostic logging for the ota CLI.
//
// It wraps log/slog. Diagnostics always go to stderr so that command
// results on stdout stay machine-readable:
//
//   - logger.go: handler construction and level control
//   - context.go: per-invocation request IDs carried on the context
//   - redact.go: masking of bearer tokens and client secrets
//
// The default level is warn; --verbose lowers it to debug.
package logger
