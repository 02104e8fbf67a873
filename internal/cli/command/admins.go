package command

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

// AdminsCommand returns the administrator accounts subcommand group.
func AdminsCommand() *cli.Command {
	statusCommand := func(name, usage, status string) *cli.Command {
		return &cli.Command{
			Name:      name,
			Usage:     usage,
			ArgsUsage: "ID",
			Action: func(c *cli.Context) error {
				return adminsSetStatus(c, status)
			},
		}
	}

	return &cli.Command{
		Name:    "admins",
		Aliases: []string{"admin", "users"},
		Usage:   "Administrator accounts",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List administrators",
				Action:  adminsList,
			},
			{
				Name:  "create",
				Usage: "Create an administrator",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Full name", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Login email", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Initial password, at least 8 characters (prompted when omitted)"},
					&cli.StringFlag{Name: "role", Usage: "super-admin, admin or sub-admin", Value: domain.RoleAdmin},
				},
				Action: adminsCreate,
			},
			statusCommand("suspend", "Suspend an administrator", domain.AdminSuspended),
			statusCommand("block", "Block an administrator", domain.AdminBlocked),
			statusCommand("activate", "Reactivate an administrator", domain.AdminActive),
		},
	}
}

func adminsList(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading administrators...", func() ([]domain.AdminUser, error) {
		return client.GetAdmins(ctx)
	})
	if err != nil {
		return err
	}
	return printList(rt, items, "administrators")
}

func adminsCreate(c *cli.Context) error {
	rt := RuntimeFrom(c)
	in := domain.CreateAdminRequest{
		Name:     c.String("name"),
		Email:    c.String("email"),
		Password: c.String("password"),
		Role:     strings.ToLower(c.String("role")),
	}
	if in.Password == "" {
		if !rt.Interactive {
			return domain.ErrMissingArgument.WithDetails("password")
		}
		pw, err := readline.Password("Initial password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		in.Password = string(pw)
	}

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	created, err := run(rt, "Creating administrator...", func() (*domain.AdminUser, error) {
		return client.CreateAdmin(ctx, in)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Created %s %s (%s)\n", in.Role, created.ID, in.Email)
	return nil
}

func adminsSetStatus(c *cli.Context, status string) error {
	rt := RuntimeFrom(c)
	id, err := idArg(c)
	if err != nil {
		return err
	}

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	if _, err := run(rt, "Updating administrator...", func() (*domain.AdminUser, error) {
		return client.UpdateAdminStatus(ctx, id, status)
	}); err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Administrator %s is now %s\n", id, status)
	return nil
}
