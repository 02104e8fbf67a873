// Package main provides the entry point for wildwave-mock.
//
// wildwave-mock is a stub of the WildWave Safaris REST backend. It serves
// every endpoint the admin console calls, backed by a key-value store
// seeded with demo data, so the console can be exercised without the
// production API.
//
// Usage:
//
//	wildwave-mock [flags]
//	wildwave-mock --config mock.yaml
//	wildwave-mock --addr :5000 --storage-engine badger --data-dir ./data
//
// Settings come from the defaults, then the optional YAML file, then
// WILDWAVE_MOCK_* environment variables, then flags.
package main
