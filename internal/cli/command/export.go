package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/report"
)

// exportFlags are shared by every export subcommand.
func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "Export format: csv, html (printable)",
			Value: "csv",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "Destination file, - for stdout (default <kind>-YYYY-MM-DD.<ext>)",
		},
	}
}

// writeReport renders a report built by build into the chosen file.
func writeReport(c *cli.Context, kind report.Kind, build func(printable bool) *report.Report) error {
	rt := RuntimeFrom(c)

	format := strings.ToLower(c.String("format"))
	if format != "csv" && format != "html" {
		return fmt.Errorf("unknown export format %q (want csv or html)", format)
	}
	rep := build(format == "html")

	path := c.String("file")
	if path == "" {
		path = report.FileName(kind, format, rt.Now())
	}

	var w io.Writer = rt.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	var err error
	if format == "html" {
		err = rep.WriteHTML(w)
	} else {
		err = rep.WriteCSV(w)
	}
	if err != nil {
		return err
	}

	if path != "-" {
		fmt.Fprintf(rt.Stdout, "Exported %d %s to %s\n", len(rep.Rows), kind, path)
	}
	return nil
}
