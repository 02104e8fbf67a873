package config

import (
	"time"

	"github.com/wildwave/safari-admin/internal/storage"
)

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:5000"
	DefaultBasePath        = "/api"
	DefaultRateLimit       = 50
	DefaultRateBurst       = 100
	DefaultShutdownTimeout = 10 * time.Second

	DefaultTokenTTL      = 24 * time.Hour
	DefaultAdminEmail    = "admin@wildwave.com"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Admin User"
	DefaultHashMemoryKiB = 64 * 1024

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default mock server configuration: an in-memory
// store seeded with demo data, listening where the console expects it.
func Default() *MockConfig {
	return &MockConfig{
		HTTP: HTTPSection{
			Addr:            DefaultHTTPAddr,
			BasePath:        DefaultBasePath,
			CORSOrigins:     []string{"*"},
			RateLimit:       DefaultRateLimit,
			RateBurst:       DefaultRateBurst,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Auth: AuthSection{
			TokenTTL:      DefaultTokenTTL,
			AdminEmail:    DefaultAdminEmail,
			AdminPassword: DefaultAdminPassword,
			AdminName:     DefaultAdminName,
			HashMemoryKiB: DefaultHashMemoryKiB,
		},
		Storage: storage.KVConfig{
			Engine: storage.EngineMemory,
		},
		Seed: true,
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
