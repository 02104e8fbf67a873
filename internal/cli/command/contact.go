package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

// ContactCommand returns the contact settings subcommand group.
func ContactCommand() *cli.Command {
	return &cli.Command{
		Name:  "contact",
		Usage: "Contact details shown on the public site",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show contact settings",
				Action: contactShow,
			},
			{
				Name:  "update",
				Usage: "Update contact settings; unset fields keep their value",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "email", Usage: "Contact email"},
					&cli.StringFlag{Name: "whatsapp", Usage: "WhatsApp number"},
					&cli.StringFlag{Name: "address", Usage: "Office address"},
					&cli.StringFlag{Name: "office-hours", Usage: "Office hours"},
					&cli.StringFlag{Name: "file", Usage: "Read settings from a YAML file"},
				},
				Action: contactUpdate,
			},
		},
	}
}

func contactShow(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	settings, err := run(rt, "Loading contact settings...", func() (*domain.ContactSettings, error) {
		return client.GetContactSettings(ctx)
	})
	if err != nil {
		return err
	}
	return rt.Print(settings)
}

func contactUpdate(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	current, err := run(rt, "Loading contact settings...", func() (*domain.ContactSettings, error) {
		return client.GetContactSettings(ctx)
	})
	if err != nil {
		return err
	}
	in := *current

	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("parse settings: %w", err)
		}
	}
	setString(c, "phone", &in.Phone)
	setString(c, "email", &in.Email)
	setString(c, "whatsapp", &in.WhatsApp)
	setString(c, "address", &in.Address)
	setString(c, "office-hours", &in.OfficeHours)

	if _, err := run(rt, "Saving contact settings...", func() (*domain.ContactSettings, error) {
		return client.UpdateContactSettings(ctx, in)
	}); err != nil {
		return err
	}
	fmt.Fprintln(rt.Stdout, "Contact settings saved")
	return nil
}
