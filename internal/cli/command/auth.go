package command

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "Sign in as an administrator",
		ArgsUsage: "[EMAIL]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Administrator email",
				EnvVars: []string{"WILDWAVE_EMAIL"},
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "Password (prompted when omitted)",
				EnvVars: []string{"WILDWAVE_PASSWORD"},
			},
		},
		Action: login,
	}
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out and forget the stored token",
		Action: logout,
	}
}

// WhoamiCommand returns the whoami command.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the signed-in administrator",
		Action: whoami,
	}
}

func login(c *cli.Context) error {
	rt := RuntimeFrom(c)

	email := c.String("email")
	if email == "" {
		email = c.Args().First()
	}
	if email == "" {
		return domain.ErrMissingArgument.WithDetails("email")
	}

	password := c.String("password")
	if password == "" {
		if !rt.Interactive {
			return domain.ErrMissingArgument.WithDetails("password (use --password or WILDWAVE_PASSWORD)")
		}
		pw, err := readline.Password("Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimSpace(string(pw))
	}

	session, err := rt.Session()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	ok, err := run(rt, "Signing in...", func() (bool, error) {
		return session.Login(ctx, email, password)
	})
	if !ok {
		return fmt.Errorf("login failed: %w", err)
	}

	st := session.State()
	name := email
	if st.User != nil && st.User.Name != "" {
		name = st.User.Name
	}
	fmt.Fprintf(rt.Stdout, "Logged in as %s\n", name)
	return nil
}

func logout(c *cli.Context) error {
	rt := RuntimeFrom(c)
	session, err := rt.Session()
	if err != nil {
		return err
	}
	session.Logout()
	fmt.Fprintln(rt.Stdout, "Logged out")
	return nil
}

func whoami(c *cli.Context) error {
	rt := RuntimeFrom(c)
	session, err := rt.Session()
	if err != nil {
		return err
	}
	if err := session.RequireAuth(); err != nil {
		return err
	}

	st := session.State()
	if st.User == nil {
		// Token held but the stored profile was lost.
		fmt.Fprintln(rt.Stdout, "Logged in (profile unavailable)")
		return nil
	}
	return rt.Print(st.User)
}
