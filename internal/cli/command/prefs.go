package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// PrefsCommand returns the display preferences subcommand group.
//
// Preferences last for the process, so they are mostly useful inside the
// shell.
func PrefsCommand() *cli.Command {
	return &cli.Command{
		Name:  "prefs",
		Usage: "Display preferences for this session",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show session state and preferences",
				Action: prefsShow,
			},
			{
				Name:   "dark-mode",
				Usage:  "Toggle the dark color theme",
				Action: prefsDarkMode,
			},
			{
				Name:   "sidebar",
				Usage:  "Toggle compact output (hides wide columns)",
				Action: prefsSidebar,
			},
		},
	}
}

func prefsShow(c *cli.Context) error {
	rt := RuntimeFrom(c)
	session, err := rt.Session()
	if err != nil {
		return err
	}
	return rt.Print(session.State())
}

func prefsDarkMode(c *cli.Context) error {
	rt := RuntimeFrom(c)
	session, err := rt.Session()
	if err != nil {
		return err
	}
	if session.ToggleDarkMode() {
		fmt.Fprintln(rt.Stdout, "Dark mode on")
	} else {
		fmt.Fprintln(rt.Stdout, "Dark mode off")
	}
	return nil
}

func prefsSidebar(c *cli.Context) error {
	rt := RuntimeFrom(c)
	session, err := rt.Session()
	if err != nil {
		return err
	}
	if session.ToggleSidebar() {
		fmt.Fprintln(rt.Stdout, "Sidebar collapsed: compact output")
	} else {
		fmt.Fprintln(rt.Stdout, "Sidebar expanded: full output")
	}
	return nil
}
