package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/cli/output"
	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/report"
)

// CustomersCommand returns the customers subcommand group.
func CustomersCommand() *cli.Command {
	searchFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Match name, email or country"}
	}
	return &cli.Command{
		Name:    "customers",
		Aliases: []string{"customer"},
		Usage:   "Customer records",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List customers",
				Flags:   []cli.Flag{searchFlag()},
				Action:  customersList,
			},
			{
				Name:   "export",
				Usage:  "Export customers as CSV or a printable report",
				Flags:  append(exportFlags(), searchFlag()),
				Action: customersExport,
			},
		},
	}
}

// PaymentsCommand returns the payments subcommand group.
func PaymentsCommand() *cli.Command {
	statusFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "status", Usage: "Filter by status: completed, pending, failed"}
	}
	return &cli.Command{
		Name:    "payments",
		Aliases: []string{"payment", "pay"},
		Usage:   "Payment transactions",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List payments with revenue totals",
				Flags:   []cli.Flag{statusFlag()},
				Action:  paymentsList,
			},
			{
				Name:   "export",
				Usage:  "Export payments as CSV or a printable report",
				Flags:  append(exportFlags(), statusFlag()),
				Action: paymentsExport,
			},
		},
	}
}

// FleetCommand returns the guides and vehicles views.
func FleetCommand() *cli.Command {
	return &cli.Command{
		Name:  "fleet",
		Usage: "Guides and vehicles",
		Subcommands: []*cli.Command{
			{
				Name:   "guides",
				Usage:  "List field guides",
				Action: fleetGuides,
			},
			{
				Name:   "vehicles",
				Usage:  "List vehicles",
				Action: fleetVehicles,
			},
		},
	}
}

func fetchCustomers(c *cli.Context) ([]domain.Customer, error) {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading customers...", func() ([]domain.Customer, error) {
		return client.GetCustomers(ctx)
	})
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(c.String("search")))
	if search == "" {
		return items, nil
	}
	var out []domain.Customer
	for _, cu := range items {
		for _, field := range []string{cu.Name, cu.Email, cu.Country} {
			if strings.Contains(strings.ToLower(field), search) {
				out = append(out, cu)
				break
			}
		}
	}
	return out, nil
}

func customersList(c *cli.Context) error {
	items, err := fetchCustomers(c)
	if err != nil {
		return err
	}
	return printList(RuntimeFrom(c), items, "customers")
}

func customersExport(c *cli.Context) error {
	items, err := fetchCustomers(c)
	if err != nil {
		return err
	}
	now := RuntimeFrom(c).Now()
	return writeReport(c, report.KindCustomers, func(bool) *report.Report {
		return report.Customers(items, now)
	})
}

func fetchPayments(c *cli.Context) ([]domain.Payment, error) {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading payments...", func() ([]domain.Payment, error) {
		return client.GetPayments(ctx)
	})
	if err != nil {
		return nil, err
	}

	status := strings.ToLower(strings.TrimSpace(c.String("status")))
	if status == "" || status == "all" {
		return items, nil
	}
	var out []domain.Payment
	for _, p := range items {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

// PaymentTotals sums payments by outcome.
type PaymentTotals struct {
	Revenue   float64 `json:"totalRevenue" table:"TOTAL REVENUE"`
	Completed int     `json:"completed" table:"COMPLETED"`
	Pending   int     `json:"pending" table:"PENDING"`
	Failed    int     `json:"failed" table:"FAILED"`
}

// SumPayments totals every listed amount and counts payments by status.
func SumPayments(payments []domain.Payment) PaymentTotals {
	var t PaymentTotals
	for _, p := range payments {
		t.Revenue += p.Amount
		switch p.Status {
		case domain.PaymentCompleted:
			t.Completed++
		case domain.PaymentPending:
			t.Pending++
		case domain.PaymentFailed:
			t.Failed++
		}
	}
	return t
}

func paymentsList(c *cli.Context) error {
	rt := RuntimeFrom(c)
	items, err := fetchPayments(c)
	if err != nil {
		return err
	}
	totals := SumPayments(items)

	if rt.OutputFormat() != output.FormatTable {
		if items == nil {
			items = []domain.Payment{}
		}
		return rt.Print(struct {
			Totals   PaymentTotals    `json:"totals" yaml:"totals"`
			Payments []domain.Payment `json:"payments" yaml:"payments"`
		}{totals, items})
	}

	if err := printList(rt, items, "payments"); err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "\nTotal revenue %s (%d completed, %d pending, %d failed)\n",
		report.Currency(totals.Revenue), totals.Completed, totals.Pending, totals.Failed)
	return nil
}

func paymentsExport(c *cli.Context) error {
	items, err := fetchPayments(c)
	if err != nil {
		return err
	}
	now := RuntimeFrom(c).Now()
	return writeReport(c, report.KindPayments, func(bool) *report.Report {
		return report.Payments(items, now)
	})
}

func fleetGuides(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading guides...", func() ([]domain.Guide, error) {
		return client.GetGuides(ctx)
	})
	if err != nil {
		return err
	}
	return printList(rt, items, "guides")
}

func fleetVehicles(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading vehicles...", func() ([]domain.Vehicle, error) {
		return client.GetVehicles(ctx)
	})
	if err != nil {
		return err
	}
	return printList(rt, items, "vehicles")
}
