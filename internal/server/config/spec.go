// Package config defines the mock server configuration structure.
package config

import (
	"time"

	"github.com/wildwave/safari-admin/internal/storage"
)

// MockConfig is the root configuration for wildwave-mock.
type MockConfig struct {
	HTTP    HTTPSection      `koanf:"http"`
	Auth    AuthSection      `koanf:"auth"`
	Storage storage.KVConfig `koanf:"storage"`
	Seed    bool             `koanf:"seed"`
	Log     LogSection       `koanf:"log"`
}

// HTTPSection configures the HTTP listener.
type HTTPSection struct {
	Addr        string `koanf:"addr"`
	BasePath    string `koanf:"base_path"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	// CORSOrigins lists the browser origins allowed to call the API.
	// "*" allows any origin.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is the per-client request rate in requests per second.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// AuthSection configures admin authentication.
type AuthSection struct {
	// JWTSecret signs issued tokens. A random secret is generated at
	// startup when empty, so tokens do not survive a restart.
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`

	// Seeded administrator.
	AdminEmail    string `koanf:"admin_email"`
	AdminPassword string `koanf:"admin_password"`
	AdminName     string `koanf:"admin_name"`

	// HashMemoryKiB sets the argon2id memory cost of stored passwords.
	HashMemoryKiB uint32 `koanf:"hash_memory_kib"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
