package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/infra/buildinfo"
	"github.com/wildwave/safari-admin/internal/infra/shutdown"
	"github.com/wildwave/safari-admin/internal/infra/tlsroots"
	"github.com/wildwave/safari-admin/internal/server/auth"
	"github.com/wildwave/safari-admin/internal/server/config"
	"github.com/wildwave/safari-admin/internal/server/httpserver"
	"github.com/wildwave/safari-admin/internal/server/httpserver/handler"
	"github.com/wildwave/safari-admin/internal/server/store"
	"github.com/wildwave/safari-admin/internal/storage"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
	"github.com/wildwave/safari-admin/internal/telemetry/metric"
	"github.com/wildwave/safari-admin/pkg/token"
)

func main() {
	app := &cli.App{
		Name:    "wildwave-mock",
		Usage:   "stub WildWave Safaris REST backend",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to YAML configuration file"},
			&cli.StringFlag{Name: "addr", Usage: "listen address (host:port)"},
			&cli.StringFlag{Name: "storage-engine", Usage: "storage engine: memory, badger or bolt"},
			&cli.StringFlag{Name: "data-dir", Usage: "storage directory for badger or bolt"},
			&cli.BoolFlag{Name: "no-seed", Usage: "start without demo data"},
			&cli.StringFlag{Name: "log-level", Usage: "log level: debug, info, warn, error"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// overrides maps set flags onto configuration keys.
func overrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	for flag, key := range map[string]string{
		"addr":           "http.addr",
		"storage-engine": "storage.engine",
		"data-dir":       "storage.dir",
		"log-level":      "log.level",
	} {
		if c.IsSet(flag) {
			m[key] = c.String(flag)
		}
	}
	if c.Bool("no-seed") {
		m["seed"] = false
	}
	return m
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), overrides(c))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting wildwave-mock",
		"version", buildinfo.Get().Version,
		"config", config.Sanitize(cfg),
	)

	kv, err := storage.Open(cfg.Storage, logger.Slog(log))
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	st := store.New(kv)

	hasher := auth.NewHasher(cfg.Auth.HashMemoryKiB)
	if err := seed(c.Context, st, hasher, cfg); err != nil {
		kv.Close()
		return fmt.Errorf("seed store: %w", err)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		// Tokens do not survive a restart without a configured secret.
		if secret, err = token.Generate(); err != nil {
			kv.Close()
			return fmt.Errorf("generate jwt secret: %w", err)
		}
		log.Warn("no jwt secret configured, using a random one")
	}
	issuer := auth.NewIssuer(secret, cfg.Auth.TokenTTL)

	metrics := metric.NewRegistry(true)
	if err := metrics.Register(metric.NewCollector(st)); err != nil {
		kv.Close()
		return fmt.Errorf("register store metrics: %w", err)
	}
	if be, ok := kv.(*storage.BadgerEngine); ok {
		if err := be.RegisterMetrics(metrics.Registerer()); err != nil {
			kv.Close()
			return fmt.Errorf("register storage metrics: %w", err)
		}
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Handler: handler.New(handler.Config{
			Store:   st,
			Issuer:  issuer,
			Hasher:  hasher,
			Metrics: metrics,
		}),
		Verifier:    issuer,
		Logger:      log,
		Metrics:     metrics,
		BasePath:    cfg.HTTP.BasePath,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		RateLimit:   cfg.HTTP.RateLimit,
		RateBurst:   cfg.HTTP.RateBurst,
	})

	var certs *tlsroots.Watcher
	if cfg.HTTP.TLSCertFile != "" {
		certs, err = tlsroots.NewWatcher(cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile, tlsroots.WithLogger(log))
		if err != nil {
			kv.Close()
			return fmt.Errorf("load tls certificate: %w", err)
		}
	}

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		kv.Close()
		return fmt.Errorf("listen: %w", err)
	}
	srv := httpserver.New(ln.Addr().String(), router)

	// Hooks run in reverse order: the server stops before storage closes.
	sh := shutdown.NewHandler(cfg.HTTP.ShutdownTimeout)
	sh.SetLogger(log)
	sh.OnShutdown("storage", func(context.Context) error {
		return kv.Close()
	})
	sh.OnShutdown("http", srv.Shutdown)

	ctx, cancel := context.WithCancelCause(c.Context)
	defer cancel(nil)

	if certs != nil {
		go func() {
			if err := certs.Run(ctx); err != nil {
				log.Warn("certificate reload disabled", "error", err)
			}
		}()
	}

	go func() {
		var err error
		if certs != nil {
			log.Info("listening", "url", "https://"+ln.Addr().String()+cfg.HTTP.BasePath)
			err = srv.ServeTLS(ln, certs.ServerConfig())
		} else {
			log.Info("listening", "url", "http://"+ln.Addr().String()+cfg.HTTP.BasePath)
			err = srv.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			cancel(err)
		}
	}()

	start := time.Now()
	if err := sh.Wait(ctx); err != nil {
		return err
	}
	log.Info("server stopped", "uptime", time.Since(start).Round(time.Second).String())
	return context.Cause(ctx)
}

func seed(ctx context.Context, st *store.Store, hasher *auth.Hasher, cfg *config.MockConfig) error {
	hash, err := hasher.Hash(cfg.Auth.AdminPassword)
	if err != nil {
		return err
	}
	return st.Seed(ctx, store.SeedOptions{
		AdminEmail:   cfg.Auth.AdminEmail,
		AdminName:    cfg.Auth.AdminName,
		PasswordHash: hash,
		Demo:         cfg.Seed,
	})
}
