package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/cli/output"
	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/report"
)

// DashboardCommand returns the dashboard command.
func DashboardCommand() *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"dash"},
		Usage:   "Show booking and revenue statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "trend",
				Usage: "Include monthly revenue and bookings by country",
			},
		},
		Action: dashboard,
	}
}

type kpi struct {
	Metric string `json:"metric" table:"METRIC"`
	Value  string `json:"value" table:"VALUE"`
	Change string `json:"change" table:"CHANGE"`
}

func dashboardKPIs(s *domain.DashboardStats) []kpi {
	return []kpi{
		{"Total Bookings", fmt.Sprint(s.TotalBookings), growth(s.BookingGrowth)},
		{"Total Revenue", report.Currency(s.TotalRevenue), growth(s.RevenueGrowth)},
		{"Active Tours", fmt.Sprint(s.ActiveTours), ""},
		{"Pending Payments", fmt.Sprint(s.PendingPayments), ""},
		{"Customers", fmt.Sprint(s.TotalCustomers), ""},
		{"Bookings Today", fmt.Sprint(s.TodayBookings), ""},
		{"Bookings This Week", fmt.Sprint(s.WeeklyBookings), ""},
		{"Bookings This Month", fmt.Sprint(s.MonthlyBookings), ""},
		{"Revenue Today", report.Currency(s.TodayRevenue), ""},
		{"Revenue This Week", report.Currency(s.WeeklyRevenue), ""},
		{"Revenue This Month", report.Currency(s.MonthlyRevenue), ""},
	}
}

func growth(pct float64) string {
	if pct == 0 {
		return ""
	}
	return fmt.Sprintf("%+.1f%%", pct)
}

func dashboard(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	stats, err := run(rt, "Loading dashboard...", func() (*domain.DashboardStats, error) {
		return client.GetDashboardStats(ctx)
	})
	if err != nil {
		return err
	}

	if rt.OutputFormat() != output.FormatTable {
		return rt.Print(stats)
	}

	if err := rt.Print(dashboardKPIs(stats)); err != nil {
		return err
	}

	fmt.Fprintln(rt.Stdout, "\nRecent Bookings")
	if len(stats.RecentBookings) == 0 {
		fmt.Fprintln(rt.Stdout, "No recent bookings")
	} else if err := rt.Print(normalizeBookings(stats.RecentBookings)); err != nil {
		return err
	}

	if !c.Bool("trend") {
		return nil
	}
	fmt.Fprintln(rt.Stdout, "\nRevenue by Month")
	if err := rt.Print(stats.RevenueData); err != nil {
		return err
	}
	fmt.Fprintln(rt.Stdout, "\nBookings by Country")
	return rt.Print(stats.CountryData)
}
