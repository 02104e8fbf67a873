package config

import (
	"time"

	"github.com/wildwave/safari-admin/internal/storage"
)

// CLIConfig is the configuration of wildwave-cli.
type CLIConfig struct {
	API     APIConfig     `yaml:"api" koanf:"api"`
	Output  OutputConfig  `yaml:"output" koanf:"output"`
	Storage StorageConfig `yaml:"storage" koanf:"storage"`
	Log     LogConfig     `yaml:"log" koanf:"log"`
	REPL    REPLConfig    `yaml:"repl" koanf:"repl"`

	// Profile selects an entry of Profiles. Empty uses API.BaseURL.
	Profile  string             `yaml:"profile,omitempty" koanf:"profile"`
	Profiles map[string]Profile `yaml:"profiles,omitempty" koanf:"profiles"`
}

// APIConfig configures the API client.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" koanf:"base_url"`
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`

	// RateLimit caps requests per second. Zero disables the cap.
	RateLimit float64 `yaml:"rate_limit" koanf:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" koanf:"rate_burst"`

	// CAFile is a PEM bundle trusted in addition to the system roots.
	CAFile string `yaml:"ca_file,omitempty" koanf:"ca_file"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	Format string `yaml:"format" koanf:"format"` // table, json, yaml
	Wide   bool   `yaml:"wide" koanf:"wide"`
	Color  bool   `yaml:"color" koanf:"color"`
}

// StorageConfig selects where the session is persisted.
type StorageConfig struct {
	Engine string `yaml:"engine" koanf:"engine"`
	Dir    string `yaml:"dir" koanf:"dir"`

	// EncryptionKey, when set, encrypts persisted values. It is a
	// passphrase stretched with argon2.
	EncryptionKey string `yaml:"encryption_key,omitempty" koanf:"encryption_key"`
}

// LogConfig configures diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// REPLConfig configures the interactive shell.
type REPLConfig struct {
	HistoryFile  string `yaml:"history_file" koanf:"history_file"`
	HistoryLimit int    `yaml:"history_limit" koanf:"history_limit"`
}

// Profile is a named backend.
type Profile struct {
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// KV returns the storage engine configuration.
func (s StorageConfig) KV() storage.KVConfig {
	kv := storage.DefaultKVConfig(s.Dir)
	if s.Engine != "" {
		kv.Engine = s.Engine
	}
	return kv
}

// BaseURL returns the server of the selected profile, falling back to
// API.BaseURL when no profile is selected or it is unknown.
func (c *CLIConfig) BaseURL() string {
	if p, ok := c.Profiles[c.Profile]; ok && p.BaseURL != "" {
		return p.BaseURL
	}
	return c.API.BaseURL
}
