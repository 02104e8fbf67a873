package config

import (
	"fmt"

	"github.com/wildwave/safari-admin/internal/infra/confloader"
)

// EnvPrefix is the prefix of mock server environment variables, e.g.
// WILDWAVE_MOCK_HTTP_ADDR.
const EnvPrefix = "WILDWAVE_MOCK_"

// Load reads the YAML file at path (skipped when empty) over the
// defaults, applies environment variables and overrides, then verifies
// the result.
func Load(path string, overrides map[string]any) (*MockConfig, error) {
	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithEnvPrefix(EnvPrefix),
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
