// Package logger provides structured logging for the WildWave console and
// the stub backend.
//
//   - logger.go: slog-backed Logger and level management
//   - context.go: context propagation of loggers and request IDs
//   - redact.go: masking of credentials and bearer tokens
//
// Records go to stderr so they never interleave with command output on
// stdout.
package logger
