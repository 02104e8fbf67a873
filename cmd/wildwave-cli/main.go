package main

import (
	"os"

	"github.com/wildwave/safari-admin/internal/cli/command"
)

func main() {
	rt := command.NewRuntime()
	app := command.App(rt)

	err := app.Run(os.Args)
	if cerr := rt.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		command.PrintError(rt.Stderr, "%v", err)
		os.Exit(1)
	}
}
