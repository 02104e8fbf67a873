// Package command provides CLI command definitions for wildwave-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: App, global flags, shared helpers
//   - runtime.go: Runtime holding config, storage, client and session
//   - auth.go: login, logout, whoami
//   - dashboard.go, bookings.go, destinations.go, packages.go, blogs.go,
//     enquiries.go, promotions.go, contact.go, operations.go, admins.go:
//     one subcommand group per back-office page
//   - public.go: unauthenticated site endpoints
//   - prefs.go, config.go, shell.go, system.go: local commands
//
// Commands follow a consistent pattern of parsing flags, calling the
// API client under a per-command timeout, and formatting output.
package command
