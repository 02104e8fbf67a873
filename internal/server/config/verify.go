package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/wildwave/safari-admin/internal/storage"
)

// Verify validates the configuration.
func Verify(cfg *MockConfig) error {
	if err := verifyHTTP(&cfg.HTTP); err != nil {
		return err
	}
	if err := verifyAuth(&cfg.Auth); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	return nil
}

func verifyHTTP(cfg *HTTPSection) error {
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return fmt.Errorf("http.addr: %w", err)
	}
	if cfg.BasePath != "" && (!strings.HasPrefix(cfg.BasePath, "/") || strings.HasSuffix(cfg.BasePath, "/")) {
		return fmt.Errorf("http.base_path %q must start and not end with /", cfg.BasePath)
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return errors.New("http.tls_cert_file and http.tls_key_file must be set together")
	}
	for _, f := range []string{cfg.TLSCertFile, cfg.TLSKeyFile} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("http tls file: %w", err)
		}
	}
	if cfg.RateLimit < 0 {
		return errors.New("http.rate_limit must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		return errors.New("http.rate_burst must be at least 1 when rate limiting")
	}
	return nil
}

func verifyAuth(cfg *AuthSection) error {
	if cfg.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 16 {
		return errors.New("auth.jwt_secret must be at least 16 characters")
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return errors.New("auth.admin_email and auth.admin_password are required")
	}
	if cfg.HashMemoryKiB < 8 {
		return errors.New("auth.hash_memory_kib must be at least 8")
	}
	return nil
}

func verifyStorage(cfg *storage.KVConfig) error {
	switch cfg.Engine {
	case storage.EngineMemory:
		return nil
	case storage.EngineBadger, storage.EngineBolt:
	default:
		return fmt.Errorf("storage.engine: unknown engine %q", cfg.Engine)
	}
	if cfg.Dir == "" {
		return errors.New("storage.dir is required for on-disk engines")
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return errors.New("cannot create data directory: " + err.Error())
	}
	return nil
}
