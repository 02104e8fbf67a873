// Package main provides the entry point for wildwave-cli.
//
// wildwave-cli is the WildWave Safaris admin console. It covers the
// back-office pages as subcommands:
//
//   - dashboard, bookings, customers, payments, fleet
//   - destinations, packages, blogs, promotions, contact
//   - enquiries, support, admins
//   - public site reads and submissions
//
// Usage:
//
//	wildwave-cli login --email admin@wildwave.com
//	wildwave-cli bookings list --status pending
//	wildwave-cli -o json dashboard --trend
//	wildwave-cli shell
//
// The session token survives between invocations in a local key-value
// store. The shell subcommand runs the same commands interactively.
package main
