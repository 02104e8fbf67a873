// Package config provides the wildwave-mock server configuration.
//
// This package defines the configuration structure and validation:
//
//   - spec.go: MockConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (addresses, TLS files, data dir)
//   - sanitize.go: Log sanitization (hide secrets)
//   - load.go: Layered loading through internal/infra/confloader
//
// Sources are applied in order: built-in defaults, an optional YAML
// file, WILDWAVE_MOCK_* environment variables, then flag overrides.
package config
