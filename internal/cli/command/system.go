package command

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Action: version,
	}
}

// MetricsCommand returns the client metrics command.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:   "metrics",
		Usage:  "Show API request metrics collected in this process",
		Hidden: true,
		Action: metrics,
	}
}

func version(c *cli.Context) error {
	return RuntimeFrom(c).Print(buildinfo.Get())
}

// metrics renders the registry in text exposition format and keeps only
// the wildwave series, which is what is useful from the shell.
func metrics(c *cli.Context) error {
	rt := RuntimeFrom(c)
	if rt.Metrics == nil {
		return fmt.Errorf("metrics are disabled")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rt.Metrics.Handler().ServeHTTP(rec, req)

	scanner := bufio.NewScanner(rec.Body)
	found := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "wildwave_client_") {
			fmt.Fprintln(rt.Stdout, line)
			found = true
		}
	}
	if !found {
		fmt.Fprintln(rt.Stdout, "No requests recorded yet")
	}
	return scanner.Err()
}
