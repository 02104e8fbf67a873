package command

import (
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

func TestApp_Commands(t *testing.T) {
	app := App(NewRuntime())

	want := []string{
		"login", "logout", "whoami", "dashboard", "bookings", "destinations",
		"packages", "blogs", "enquiries", "support", "promotions", "contact",
		"customers", "payments", "fleet", "admins", "public", "prefs",
		"config", "shell", "version", "metrics",
	}
	for _, name := range want {
		if app.Command(name) == nil {
			t.Errorf("command %q not registered", name)
		}
	}

	subs := map[string][]string{
		"bookings":     {"list", "status", "assign-guide", "export"},
		"destinations": {"list", "create", "update", "delete", "sync-images"},
		"blogs":        {"list", "create", "update", "delete", "publish", "unpublish"},
		"admins":       {"list", "create", "suspend", "block", "activate"},
		"public":       {"destinations", "blogs", "contact", "promotion", "book", "enquire"},
		"prefs":        {"show", "dark-mode", "sidebar"},
		"config":       {"show", "path", "init"},
	}
	for parent, names := range subs {
		cmd := app.Command(parent)
		for _, name := range names {
			if subcommand(cmd, name) == nil {
				t.Errorf("%s %s not registered", parent, name)
			}
		}
	}
}

func subcommand(cmd *cli.Command, name string) *cli.Command {
	for _, sub := range cmd.Subcommands {
		if sub.HasName(name) {
			return sub
		}
	}
	return nil
}

func TestGlobalFlags(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range globalFlags() {
		if err := f.Apply(set); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
	}
	if err := set.Parse([]string{"--server", "http://api.test", "--output", "json", "--wide", "--log-level", "debug"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	c := cli.NewContext(&cli.App{}, set, nil)

	flags := ParseGlobalFlags(c)
	if flags.Server != "http://api.test" || flags.Output != "json" || !flags.Wide {
		t.Errorf("ParseGlobalFlags() = %+v", flags)
	}

	overrides := flags.overrides()
	if overrides["api.base_url"] != "http://api.test" {
		t.Errorf("api.base_url override = %v", overrides["api.base_url"])
	}
	if overrides["output.format"] != "json" || overrides["output.wide"] != true {
		t.Errorf("output overrides = %v", overrides)
	}
	if overrides["log.level"] != "debug" {
		t.Errorf("log.level override = %v", overrides["log.level"])
	}
	if _, ok := overrides["profile"]; ok {
		t.Error("unset profile should not be overridden")
	}
}

func TestAdminCommand_RequiresLogin(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.run(t, "bookings", "list")
	if !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("error = %v, want ErrNotLoggedIn", err)
	}
	if n := env.server.requestCount(); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

func TestOutputFlag_UnknownFormat(t *testing.T) {
	env := newTestEnv(t, true)

	_, err := env.run(t, "-o", "xml", "version")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("error = %v, want unknown output format", err)
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, false)

	out := env.mustRun(t, "-o", "json", "version")
	if !strings.Contains(out, `"version"`) || !strings.Contains(out, `"go_version"`) {
		t.Errorf("version output = %s", out)
	}
}

func TestMetrics_Disabled(t *testing.T) {
	env := newTestEnv(t, true)
	env.rt.Metrics = nil

	if _, err := env.run(t, "metrics"); err == nil {
		t.Error("metrics without a registry should fail")
	}
}

func TestPrintError(t *testing.T) {
	var b strings.Builder
	PrintError(&b, "%v", domain.ErrNotLoggedIn)
	if got := b.String(); got != "error: [WW-AUTH-4010] not logged in\n" {
		t.Errorf("PrintError() = %q", got)
	}
}
