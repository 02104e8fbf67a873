package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wildwave/safari-admin/internal/apiclient"
	"github.com/wildwave/safari-admin/internal/infra/confloader"
	"github.com/wildwave/safari-admin/internal/storage"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "WILDWAVE_"

// Home returns the console's state directory (~/.wildwave).
func Home() string {
	if dir := os.Getenv("WILDWAVE_HOME"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".wildwave"
	}
	return filepath.Join(homeDir, ".wildwave")
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(Home(), "cli.yaml")
}

// Default returns the built-in configuration.
func Default() *CLIConfig {
	home := Home()
	return &CLIConfig{
		API: APIConfig{
			BaseURL:   apiclient.DefaultBaseURL,
			Timeout:   apiclient.DefaultTimeout,
			RateBurst: 1,
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
		Storage: StorageConfig{
			Engine: storage.EngineBadger,
			Dir:    filepath.Join(home, "session"),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		REPL: REPLConfig{
			HistoryFile:  filepath.Join(home, "history"),
			HistoryLimit: 1000,
		},
		Profiles: map[string]Profile{},
	}
}

// Load reads the configuration at path (the default path when empty)
// over the built-in defaults, then applies environment variables and
// overrides. A missing file is not an error.
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithEnvPrefix(EnvPrefix),
		confloader.WithConfigFile(path),
		confloader.WithOptionalFile(),
		confloader.WithOverrides(overrides),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *CLIConfig) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	switch strings.ToLower(c.Storage.Engine) {
	case storage.EngineBadger, storage.EngineBolt, storage.EngineMemory:
	default:
		return fmt.Errorf("storage.engine: unknown engine %q", c.Storage.Engine)
	}
	if c.API.Timeout < 0 || c.API.Timeout > 10*time.Minute {
		return fmt.Errorf("api.timeout: %v out of range", c.API.Timeout)
	}
	if c.API.CAFile != "" {
		if _, err := os.Stat(c.API.CAFile); err != nil {
			return fmt.Errorf("api.ca_file: %w", err)
		}
	}
	if c.Profile != "" {
		if _, ok := c.Profiles[c.Profile]; !ok {
			return fmt.Errorf("profile %q is not defined", c.Profile)
		}
	}
	return nil
}

// Save writes cfg to path as YAML with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c *CLIConfig) Redacted() *CLIConfig {
	out := *c
	if out.Storage.EncryptionKey != "" {
		out.Storage.EncryptionKey = "***REDACTED***"
	}
	return &out
}
