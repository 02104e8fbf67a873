package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/cli/output"
	"github.com/wildwave/safari-admin/internal/core/domain"
)

// EnquiriesCommand returns the enquiries subcommand group.
func EnquiriesCommand() *cli.Command {
	return &cli.Command{
		Name:    "enquiries",
		Aliases: []string{"enquiry", "enq"},
		Usage:   "Customer enquiry management",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List enquiries",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "Filter by status: new, contacted, resolved"},
				},
				Action: enquiriesList,
			},
			{
				Name:      "status",
				Usage:     "Change an enquiry's status (new, contacted, resolved)",
				ArgsUsage: "ID STATUS",
				Action:    enquiriesStatus,
			},
		},
	}
}

// SupportCommand returns the support ticket view over enquiries.
func SupportCommand() *cli.Command {
	return &cli.Command{
		Name:  "support",
		Usage: "Support tickets (enquiries grouped as open, pending, resolved)",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "Show ticket counts and tickets",
				Action:  supportList,
			},
			{
				Name:      "show",
				Usage:     "Show one ticket with its message",
				ArgsUsage: "ID",
				Action:    supportShow,
			},
		},
	}
}

func fetchEnquiries(c *cli.Context) ([]domain.Enquiry, error) {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	return run(rt, "Loading enquiries...", func() ([]domain.Enquiry, error) {
		return client.GetEnquiries(ctx)
	})
}

func enquiriesList(c *cli.Context) error {
	items, err := fetchEnquiries(c)
	if err != nil {
		return err
	}
	if status := strings.ToLower(c.String("status")); status != "" && status != "all" {
		var filtered []domain.Enquiry
		for _, e := range items {
			if string(e.Status) == status {
				filtered = append(filtered, e)
			}
		}
		items = filtered
	}
	return printList(RuntimeFrom(c), items, "enquiries")
}

func enquiriesStatus(c *cli.Context) error {
	rt := RuntimeFrom(c)
	if c.NArg() < 2 {
		return domain.ErrMissingArgument.WithDetails("ID and STATUS")
	}
	id, err := idArg(c)
	if err != nil {
		return err
	}
	status := domain.EnquiryStatus(strings.ToLower(c.Args().Get(1)))

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	if _, err := run(rt, "Updating enquiry...", func() (*domain.Enquiry, error) {
		return client.UpdateEnquiryStatus(ctx, id, status)
	}); err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Enquiry %s marked %s\n", id, status)
	return nil
}

type supportView struct {
	Summary domain.TicketSummary `json:"summary" yaml:"summary"`
	Tickets []domain.Enquiry     `json:"tickets" yaml:"tickets"`
}

func supportList(c *cli.Context) error {
	rt := RuntimeFrom(c)
	items, err := fetchEnquiries(c)
	if err != nil {
		return err
	}
	summary := domain.SummarizeTickets(items)

	if rt.OutputFormat() != output.FormatTable {
		if items == nil {
			items = []domain.Enquiry{}
		}
		return rt.Print(supportView{Summary: summary, Tickets: items})
	}

	if err := rt.Print([]domain.TicketSummary{summary}); err != nil {
		return err
	}
	fmt.Fprintln(rt.Stdout)
	return printList(rt, items, "tickets")
}

func supportShow(c *cli.Context) error {
	rt := RuntimeFrom(c)
	id, err := idArg(c)
	if err != nil {
		return err
	}
	items, err := fetchEnquiries(c)
	if err != nil {
		return err
	}
	ticket, ok := findByID(items, id, func(e domain.Enquiry) domain.ID { return e.ID })
	if !ok {
		return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("ticket %s not found", id))
	}
	return rt.Print(ticket)
}
