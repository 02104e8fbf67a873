// Package confloader layers configuration from a YAML file, environment
// variables and explicit overrides into a typed struct using koanf.
//
// Priority (highest to lowest):
//
//  1. Overrides (usually command-line flags)
//  2. Environment variables
//  3. Configuration file
//  4. Values already present in the target struct
//
// Environment variables carry a prefix and use underscores for nesting:
// WILDWAVE_API_BASE_URL sets api.base_url. Keys that themselves contain
// underscores are resolved against the koanf tags of the target struct.
package confloader
