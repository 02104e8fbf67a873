package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Setenv("WILDWAVE_HOME", "/tmp/ww-home")
	cfg := Default()

	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("Format = %q", cfg.Output.Format)
	}
	if cfg.Storage.Dir != filepath.Join("/tmp/ww-home", "session") {
		t.Errorf("Storage.Dir = %q", cfg.Storage.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("WILDWAVE_HOME", "")
	path := DefaultConfigPath()
	if !strings.HasSuffix(path, filepath.Join(".wildwave", "cli.yaml")) {
		t.Errorf("DefaultConfigPath() = %q", path)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cli.yaml")

	cfg := Default()
	cfg.API.BaseURL = "https://api.wildwave.test/api"
	cfg.API.Timeout = 12 * time.Second
	cfg.Output.Wide = true
	cfg.Storage.Engine = "bolt"
	cfg.Profiles["staging"] = Profile{BaseURL: "https://staging.wildwave.test/api"}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.API.BaseURL != cfg.API.BaseURL || got.API.Timeout != cfg.API.Timeout {
		t.Errorf("api = %+v", got.API)
	}
	if !got.Output.Wide || got.Storage.Engine != "bolt" {
		t.Errorf("output/storage = %+v %+v", got.Output, got.Storage)
	}
	if got.Profiles["staging"].BaseURL != "https://staging.wildwave.test/api" {
		t.Errorf("profiles = %+v", got.Profiles)
	}
}

func TestLoad_EnvAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	os.WriteFile(path, []byte("output:\n  format: yaml\n"), 0o600)

	t.Setenv("WILDWAVE_API_BASE_URL", "http://env:5000/api")
	cfg, err := Load(path, map[string]any{"output.format": "json"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://env:5000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want flag override", cfg.Output.Format)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"format":  "output:\n  format: xml\n",
		"engine":  "storage:\n  engine: sqlite\n",
		"profile": "profile: prod\n",
		"ca file": "api:\n  ca_file: /nonexistent/ca.pem\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cli.yaml")
			os.WriteFile(path, []byte(content), 0o600)
			if _, err := Load(path, nil); err == nil {
				t.Error("Load() should reject the file")
			}
		})
	}
}

func TestBaseURL_Profile(t *testing.T) {
	cfg := Default()
	cfg.Profiles["prod"] = Profile{BaseURL: "https://api.wildwave.com/api"}

	if cfg.BaseURL() != cfg.API.BaseURL {
		t.Errorf("BaseURL() without profile = %q", cfg.BaseURL())
	}
	cfg.Profile = "prod"
	if cfg.BaseURL() != "https://api.wildwave.com/api" {
		t.Errorf("BaseURL() = %q", cfg.BaseURL())
	}
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.Storage.EncryptionKey = "hunter2"
	if cfg.Redacted().Storage.EncryptionKey == "hunter2" {
		t.Error("key not redacted")
	}
	if cfg.Storage.EncryptionKey != "hunter2" {
		t.Error("Redacted() mutated the original")
	}
}
