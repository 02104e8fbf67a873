package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/cli/config"
	"github.com/wildwave/safari-admin/internal/cli/repl"
	"github.com/wildwave/safari-admin/internal/infra/confloader"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:    "shell",
		Aliases: []string{"repl"},
		Usage:   "Start an interactive shell",
		Action:  shell,
	}
}

func shell(c *cli.Context) error {
	rt := RuntimeFrom(c)

	rt.mu.Lock()
	if rt.inShell {
		rt.mu.Unlock()
		return errors.New("already in the shell")
	}
	rt.inShell = true
	rt.mu.Unlock()
	defer func() {
		rt.mu.Lock()
		rt.inShell = false
		rt.mu.Unlock()
	}()

	// One session store for the whole shell.
	session, err := rt.Session()
	if err != nil {
		return err
	}

	app := c.App
	exec := func(ctx context.Context, args []string) error {
		return app.RunContext(ctx, append([]string{app.Name}, args...))
	}

	var r *repl.REPL
	if rt.LineReader != nil {
		r = repl.NewWithReader(rt.LineReader, rt.Stdout, rt.Stderr, exec)
	} else {
		var stdin io.ReadCloser
		if rc, ok := rt.Stdin.(io.ReadCloser); ok {
			stdin = rc
		} else if rt.Stdin != nil {
			stdin = io.NopCloser(rt.Stdin)
		}
		r, err = repl.New(repl.Config{
			Prompt:       "wildwave> ",
			HistoryFile:  rt.Config.REPL.HistoryFile,
			HistoryLimit: rt.Config.REPL.HistoryLimit,
			Completer:    repl.NewCompleter(app.Commands),
			Stdin:        stdin,
			Stdout:       rt.Stdout,
			Stderr:       rt.Stderr,
		}, exec)
		if err != nil {
			return err
		}
	}

	r.SetPromptFunc(func() string {
		if st := session.State(); st.IsAuthenticated && st.User != nil {
			return fmt.Sprintf("wildwave(%s)> ", st.User.Email)
		}
		return "wildwave> "
	})

	if stop := rt.watchConfig(); stop != nil {
		defer stop()
	}

	fmt.Fprintln(rt.Stdout, "WildWave admin shell. Type 'help' for commands, 'exit' to leave.")
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return r.Run(ctx)
}

// watchConfig reloads output defaults when the config file changes. It
// returns nil when the file cannot be watched.
func (rt *Runtime) watchConfig() func() {
	if _, err := os.Stat(rt.ConfigPath); err != nil {
		return nil
	}

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(rt.Logger))
	if err != nil {
		rt.Logger.Warn("config watcher unavailable", "error", err)
		return nil
	}
	if err := w.Watch(rt.ConfigPath); err != nil {
		rt.Logger.Warn("config watcher unavailable", "path", rt.ConfigPath, "error", err)
		w.Stop()
		return nil
	}

	w.OnChange(func(path string) {
		cfg, err := config.Load(path, nil)
		if err != nil {
			rt.Logger.Warn("config reload failed", "path", path, "error", err)
			return
		}
		rt.reloadOutput(cfg)
		rt.Logger.Info("config reloaded", "path", path)
	})
	w.Start()

	return func() {
		if err := w.Stop(); err != nil {
			rt.Logger.Debug("stop config watcher", "error", err)
		}
	}
}
