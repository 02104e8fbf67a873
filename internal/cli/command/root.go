package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/cli/output"
	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/infra/buildinfo"
)

// App creates the CLI application around rt.
func App(rt *Runtime) *cli.App {
	app := &cli.App{
		Name:                 "wildwave-cli",
		Usage:                "WildWave Safaris admin console",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Reader:               rt.Stdin,
		Writer:               rt.Stdout,
		ErrWriter:            rt.Stderr,
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			DashboardCommand(),
			BookingsCommand(),
			DestinationsCommand(),
			PackagesCommand(),
			BlogsCommand(),
			EnquiriesCommand(),
			SupportCommand(),
			PromotionsCommand(),
			ContactCommand(),
			CustomersCommand(),
			PaymentsCommand(),
			FleetCommand(),
			AdminsCommand(),
			PublicCommand(),
			PrefsCommand(),
			ConfigCommand(),
			ShellCommand(),
			VersionCommand(),
			MetricsCommand(),
		},
		Metadata: map[string]any{
			runtimeKey: rt,
		},
		Before: func(c *cli.Context) error {
			return rt.configure(c)
		},
		// main decides the exit code.
		ExitErrHandler: func(*cli.Context, error) {},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.wildwave/cli.yaml)",
			EnvVars: []string{"WILDWAVE_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "API base URL (e.g., http://localhost:5000/api)",
			EnvVars: []string{"WILDWAVE_SERVER"},
		},
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "Named server profile from the config file",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config  string
	Server  string
	Profile string

	// Output format
	Output string // table, json, yaml
	Wide   bool

	Verbose  bool
	LogLevel string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:   c.String("config"),
		Server:   c.String("server"),
		Profile:  c.String("profile"),
		Output:   c.String("output"),
		Wide:     c.Bool("wide"),
		Verbose:  c.Bool("verbose"),
		LogLevel: c.String("log-level"),
	}
}

// overrides maps the flags onto configuration keys.
func (f *GlobalFlags) overrides() map[string]any {
	m := map[string]any{}
	if f.Server != "" {
		m["api.base_url"] = f.Server
	}
	if f.Profile != "" {
		m["profile"] = f.Profile
	}
	if f.Output != "" {
		m["output.format"] = f.Output
	}
	if f.Wide {
		m["output.wide"] = true
	}
	if f.LogLevel != "" {
		m["log.level"] = f.LogLevel
	}
	return m
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}

// forceFlag skips the confirmation prompt.
func forceFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "Skip confirmation",
	}
}

// confirm asks before a destructive action unless --force is set.
func confirm(c *cli.Context, prompt string) bool {
	if c.Bool("force") {
		return true
	}
	rt := RuntimeFrom(c)
	fmt.Fprintf(rt.Stdout, "%s [y/N]: ", prompt)
	var answer string
	fmt.Fscanln(rt.Stdin, &answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// idArg parses the first positional argument as a record ID.
func idArg(c *cli.Context) (domain.ID, error) {
	if c.NArg() < 1 {
		return "", domain.ErrMissingArgument.WithDetails("ID")
	}
	return domain.ParseID(c.Args().First())
}

// run wraps an API call with a spinner on interactive terminals.
func run[T any](rt *Runtime, message string, fn func() (T, error)) (T, error) {
	if !rt.Interactive {
		return fn()
	}
	sp := output.NewSpinner(rt.Stderr, message)
	sp.Start()
	v, err := fn()
	sp.Stop()
	return v, err
}

// printList renders items, or a short notice when a table would be empty.
func printList[T any](rt *Runtime, items []T, noun string) error {
	if len(items) == 0 {
		if rt.OutputFormat() == output.FormatTable {
			fmt.Fprintf(rt.Stdout, "No %s found\n", noun)
			return nil
		}
		items = []T{}
	}
	return rt.Print(items)
}
