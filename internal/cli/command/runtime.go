package command

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/apiclient"
	"github.com/wildwave/safari-admin/internal/cli/config"
	"github.com/wildwave/safari-admin/internal/cli/output"
	"github.com/wildwave/safari-admin/internal/cli/repl"
	"github.com/wildwave/safari-admin/internal/core/service"
	"github.com/wildwave/safari-admin/internal/infra/tlsroots"
	"github.com/wildwave/safari-admin/internal/storage"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
	"github.com/wildwave/safari-admin/internal/telemetry/metric"
	"github.com/wildwave/safari-admin/pkg/crypto/adaptive"
)

const runtimeKey = "runtime"

// saltKey holds the random salt used to stretch storage.encryption_key.
// It is stored unencrypted next to the session.
const saltKey = "kdfSalt"

// Runtime is the state shared by every command of one process. In the
// shell it lives for the whole session, so the session store and its
// preference toggles survive between lines.
type Runtime struct {
	Config     *config.CLIConfig
	ConfigPath string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger  logger.Logger
	Metrics *metric.Registry

	// Interactive enables spinners and confirmation prompts.
	Interactive bool

	// Now is the clock used for report dates.
	Now func() time.Time

	// KVFactory opens the session storage. Tests inject a memory engine.
	KVFactory func(cfg *config.CLIConfig, l logger.Logger) (storage.KV, error)

	// LineReader replaces the terminal in the shell when set.
	LineReader repl.LineReader

	mu      sync.Mutex
	kv      storage.KV
	client  *apiclient.Client
	session *service.SessionStore
	format  output.Format
	wide    bool
	compact bool
	inShell bool
}

// NewRuntime creates a runtime bound to the process's standard streams.
func NewRuntime() *Runtime {
	return &Runtime{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()),
		Metrics:     metric.NewRegistry(false),
		Now:         time.Now,
		KVFactory:   openKV,
	}
}

// RuntimeFrom returns the runtime attached to the app.
func RuntimeFrom(c *cli.Context) *Runtime {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt
	}
	return nil
}

// configure loads the configuration once and resolves per-invocation
// flags. It runs before every command, including each shell line.
func (rt *Runtime) configure(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.Config == nil {
		cfg, err := config.Load(flags.Config, flags.overrides())
		if err != nil {
			return err
		}
		rt.Config = cfg
		rt.ConfigPath = flags.Config
		if rt.ConfigPath == "" {
			rt.ConfigPath = config.DefaultConfigPath()
		}
	} else if flags.Server != "" && rt.client == nil {
		rt.Config.API.BaseURL = flags.Server
		rt.Config.Profile = ""
	}

	if rt.Logger == nil {
		level := rt.Config.Log.Level
		if flags.Verbose {
			level = "debug"
		}
		l, err := logger.New(logger.Config{
			Level:  level,
			Format: rt.Config.Log.Format,
			Output: rt.Stderr,
		})
		if err != nil {
			return err
		}
		rt.Logger = l
		logger.SetDefault(l)
	} else if flags.LogLevel != "" {
		logger.SetLevel(flags.LogLevel)
	}

	output.SetColorEnabled(rt.Config.Output.Color && rt.Interactive)

	formatName := rt.Config.Output.Format
	if flags.Output != "" {
		formatName = flags.Output
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}
	rt.format = format
	rt.wide = (rt.Config.Output.Wide || flags.Wide) && !rt.compact
	return nil
}

// reloadOutput applies the output section of a changed config file.
func (rt *Runtime) reloadOutput(cfg *config.CLIConfig) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.Config.Output = cfg.Output
	if format, err := output.ParseFormat(cfg.Output.Format); err == nil {
		rt.format = format
	}
	rt.wide = cfg.Output.Wide && !rt.compact
	output.SetColorEnabled(cfg.Output.Color && rt.Interactive)
}

func (rt *Runtime) setCompact(compact bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.compact = compact
	if compact {
		rt.wide = false
	} else if rt.Config != nil {
		rt.wide = rt.Config.Output.Wide
	}
}

// Formatter returns the formatter selected by config and flags.
func (rt *Runtime) Formatter() output.Formatter {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return output.NewFormatter(rt.format, rt.wide)
}

// OutputFormat returns the selected output format.
func (rt *Runtime) OutputFormat() output.Format {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.format
}

// Print renders data with the selected formatter.
func (rt *Runtime) Print(data any) error {
	return rt.Formatter().Format(rt.Stdout, data)
}

// Timeout returns the per-command deadline.
func (rt *Runtime) Timeout() time.Duration {
	if rt.Config != nil && rt.Config.API.Timeout > 0 {
		return rt.Config.API.Timeout
	}
	return apiclient.DefaultTimeout
}

// KV opens the session storage on first use.
func (rt *Runtime) KV() (storage.KV, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.kvLocked()
}

func (rt *Runtime) kvLocked() (storage.KV, error) {
	if rt.kv != nil {
		return rt.kv, nil
	}
	factory := rt.KVFactory
	if factory == nil {
		factory = openKV
	}
	kv, err := factory(rt.Config, rt.Logger)
	if err != nil {
		return nil, err
	}
	rt.kv = kv
	return kv, nil
}

// Client returns the API client, creating it on first use.
func (rt *Runtime) Client() (*apiclient.Client, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.clientLocked()
}

func (rt *Runtime) clientLocked() (*apiclient.Client, error) {
	if rt.client != nil {
		return rt.client, nil
	}
	kv, err := rt.kvLocked()
	if err != nil {
		return nil, err
	}

	tlsConfig, err := tlsroots.ClientConfig(rt.Config.API.CAFile)
	if err != nil {
		return nil, err
	}

	opts := []apiclient.Option{
		apiclient.WithTLSConfig(tlsConfig),
		apiclient.WithStorage(kv),
		apiclient.WithTimeout(rt.Timeout()),
		apiclient.WithLogger(rt.Logger),
	}
	if rt.Metrics != nil {
		opts = append(opts, apiclient.WithMetrics(rt.Metrics))
	}
	if rt.Config.API.RateLimit > 0 {
		opts = append(opts, apiclient.WithRateLimit(rt.Config.API.RateLimit, rt.Config.API.RateBurst))
	}

	client, err := apiclient.New(rt.Config.BaseURL(), opts...)
	if err != nil {
		return nil, err
	}
	rt.client = client
	return client, nil
}

// Session returns the session store, creating it on first use.
func (rt *Runtime) Session() (*service.SessionStore, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.session != nil {
		return rt.session, nil
	}
	client, err := rt.clientLocked()
	if err != nil {
		return nil, err
	}
	rt.session = service.NewSessionStore(client, rt.kv,
		service.WithThemeApplier(output.ApplyDarkMode),
		service.WithSidebarApplier(rt.setCompact),
		service.WithLogger(rt.Logger),
	)
	return rt.session, nil
}

// AuthedClient returns the client after checking that a user is logged in.
func (rt *Runtime) AuthedClient() (*apiclient.Client, error) {
	session, err := rt.Session()
	if err != nil {
		return nil, err
	}
	if err := session.RequireAuth(); err != nil {
		return nil, err
	}
	return rt.Client()
}

// Context returns a context bounded by the per-command timeout.
func (rt *Runtime) Context(c *cli.Context) (context.Context, context.CancelFunc) {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, rt.Logger)
	ctx = logger.WithCommand(ctx, c.Command.FullName())
	return context.WithTimeout(ctx, rt.Timeout())
}

// Close releases the session storage.
func (rt *Runtime) Close() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.kv == nil {
		return nil
	}
	err := rt.kv.Close()
	rt.kv = nil
	rt.client = nil
	rt.session = nil
	return err
}

// openKV opens the configured engine, wrapping it in EncryptedKV when an
// encryption key is configured.
func openKV(cfg *config.CLIConfig, l logger.Logger) (storage.KV, error) {
	kv, err := storage.Open(cfg.Storage.KV(), logger.Slog(l))
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}
	if cfg.Storage.EncryptionKey == "" {
		return kv, nil
	}

	salt, err := loadSalt(kv)
	if err != nil {
		kv.Close()
		return nil, err
	}
	cipher, err := adaptive.New(adaptive.KeyFromPassphrase(cfg.Storage.EncryptionKey, salt))
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("session encryption: %w", err)
	}
	return storage.NewEncryptedKV(kv, cipher), nil
}

func loadSalt(kv storage.KV) ([]byte, error) {
	ctx := context.Background()
	salt, err := kv.Get(ctx, []byte(saltKey))
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, storage.ErrKeyNotFound) {
		return nil, fmt.Errorf("read salt: %w", err)
	}

	salt = make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	if err := kv.Set(ctx, []byte(saltKey), salt); err != nil {
		return nil, fmt.Errorf("store salt: %w", err)
	}
	return salt, nil
}
