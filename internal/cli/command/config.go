package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/wildwave/safari-admin/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: configPath,
			},
			{
				Name:  "init",
				Usage: "Write a config file with the current settings",
				Flags: []cli.Flag{
					forceFlag(),
				},
				Action: configInit,
			},
			{
				Name:   "validate",
				Usage:  "Validate the config file",
				Action: configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	rt := RuntimeFrom(c)
	fmt.Fprintf(rt.Stdout, "# %s\n", rt.ConfigPath)
	data, err := yaml.Marshal(rt.Config.Redacted())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = rt.Stdout.Write(data)
	return err
}

func configPath(c *cli.Context) error {
	rt := RuntimeFrom(c)
	fmt.Fprintln(rt.Stdout, rt.ConfigPath)
	return nil
}

func configInit(c *cli.Context) error {
	rt := RuntimeFrom(c)
	if _, err := os.Stat(rt.ConfigPath); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", rt.ConfigPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}

	if err := config.Save(rt.Config, rt.ConfigPath); err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Wrote %s\n", rt.ConfigPath)
	return nil
}

func configValidate(c *cli.Context) error {
	rt := RuntimeFrom(c)
	if _, err := os.Stat(rt.ConfigPath); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(rt.Stdout, "No configuration file found at %s\nUsing default settings.\n", rt.ConfigPath)
		return nil
	}

	if _, err := config.Load(rt.ConfigPath, nil); err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Configuration file is valid: %s\n", rt.ConfigPath)
	return nil
}
