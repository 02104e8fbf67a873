package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Common errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
)

// Engine names accepted by KVConfig.Engine.
const (
	EngineBadger = "badger"
	EngineBolt   = "bolt"
	EngineMemory = "memory"
)

// KV is an embedded key-value store.
//
// Implementations are safe for concurrent use. Get returns ErrKeyNotFound
// for missing keys; Delete of a missing key is not an error.
type KV interface {
	// Get retrieves a value by key.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores a key-value pair.
	Set(ctx context.Context, key, value []byte) error

	// Delete removes a key.
	Delete(ctx context.Context, key []byte) error

	// Scan iterates over keys with a given prefix in key order.
	// Callback returns false to stop iteration.
	Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error

	// Close releases the engine. Calls after Close fail with ErrClosed.
	Close() error
}

// KVConfig configures an embedded KV engine.
type KVConfig struct {
	// Engine is one of "badger", "bolt" or "memory". Default: "badger".
	Engine string `yaml:"engine" koanf:"engine"`

	// Dir is the storage directory (badger) or the directory holding the
	// database file (bolt).
	Dir string `yaml:"dir" koanf:"dir"`

	// Badger holds Badger tuning.
	Badger BadgerConfig `yaml:"badger" koanf:"badger"`
}

// BadgerConfig contains Badger tuning parameters sized for a small,
// mostly-idle store.
type BadgerConfig struct {
	// GCInterval is the interval between value log GC runs. Default: 10m.
	GCInterval string `yaml:"gc_interval" koanf:"gc_interval"`

	// GCThreshold is the discard ratio that triggers a rewrite. Default: 0.5.
	GCThreshold float64 `yaml:"gc_threshold" koanf:"gc_threshold"`

	// CacheSize is the block cache size in bytes. Default: 8MB.
	CacheSize int64 `yaml:"cache_size" koanf:"cache_size"`

	// ValueLogFileSize is the max value log file size in bytes. Default: 16MB.
	ValueLogFileSize int64 `yaml:"value_log_file_size" koanf:"value_log_file_size"`

	// SyncWrites fsyncs after each write. Default: true, since session
	// writes are rare and must survive a crash.
	SyncWrites bool `yaml:"sync_writes" koanf:"sync_writes"`
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Engine: EngineBadger,
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       "10m",
		GCThreshold:      0.5,
		CacheSize:        8 << 20,
		ValueLogFileSize: 16 << 20,
		SyncWrites:       true,
	}
}

// Open creates the engine named by cfg.Engine.
func Open(cfg KVConfig, logger *slog.Logger) (KV, error) {
	if logger == nil {
		logger = slog.Default()
	}

	engine := strings.ToLower(strings.TrimSpace(cfg.Engine))
	if engine != EngineMemory && cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	switch engine {
	case "", EngineBadger:
		return NewBadgerEngine(cfg, logger)
	case EngineBolt:
		return NewBoltEngine(cfg, logger)
	case EngineMemory:
		return NewMemoryEngine(), nil
	default:
		return nil, fmt.Errorf("unknown storage engine %q", cfg.Engine)
	}
}
