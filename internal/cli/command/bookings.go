package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/cli/output"
	"github.com/wildwave/safari-admin/internal/core/domain"
	"github.com/wildwave/safari-admin/internal/report"
)

// BookingsCommand returns the bookings subcommand group.
func BookingsCommand() *cli.Command {
	return &cli.Command{
		Name:    "bookings",
		Aliases: []string{"booking", "bk"},
		Usage:   "Booking management",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List bookings",
				Flags:   bookingFilterFlags(),
				Action:  bookingsList,
			},
			{
				Name:      "status",
				Usage:     "Change a booking's status",
				ArgsUsage: "ID STATUS",
				Action:    bookingsStatus,
			},
			{
				Name:      "assign-guide",
				Usage:     "Assign a guide to a booking",
				ArgsUsage: "ID GUIDE",
				Action:    bookingsAssignGuide,
			},
			{
				Name:   "export",
				Usage:  "Export bookings as CSV or a printable report",
				Flags:  append(exportFlags(), bookingFilterFlags()...),
				Action: bookingsExport,
			},
		},
	}
}

func bookingFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"q"},
			Usage:   "Match customer, email, reference or package",
		},
		&cli.StringFlag{
			Name:  "status",
			Usage: "Filter by status: pending, confirmed, cancelled, completed",
		},
	}
}

// filterBookings applies the search text and status filter.
func filterBookings(bookings []domain.Booking, search, status string) []domain.Booking {
	search = strings.ToLower(strings.TrimSpace(search))
	status = strings.ToLower(strings.TrimSpace(status))
	if search == "" && (status == "" || status == "all") {
		return bookings
	}

	var out []domain.Booking
	for _, b := range bookings {
		if status != "" && status != "all" && string(b.Status) != status {
			continue
		}
		if search != "" && !bookingMatches(b, search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func bookingMatches(b domain.Booking, search string) bool {
	for _, field := range []string{b.DisplayCustomer(), b.Email, b.Ref, b.DisplayPackage()} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func fetchBookings(c *cli.Context) ([]domain.Booking, error) {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	bookings, err := run(rt, "Loading bookings...", func() ([]domain.Booking, error) {
		return client.GetBookings(ctx)
	})
	if err != nil {
		return nil, err
	}
	return filterBookings(bookings, c.String("search"), c.String("status")), nil
}

func bookingsList(c *cli.Context) error {
	rt := RuntimeFrom(c)
	bookings, err := fetchBookings(c)
	if err != nil {
		return err
	}
	if rt.OutputFormat() == output.FormatTable {
		bookings = normalizeBookings(bookings)
	}
	return printList(rt, bookings, "bookings")
}

// normalizeBookings fills the listing columns for table output.
func normalizeBookings(bookings []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, len(bookings))
	for i, b := range bookings {
		out[i] = b.Normalized()
	}
	return out
}

func bookingsStatus(c *cli.Context) error {
	rt := RuntimeFrom(c)
	if c.NArg() < 2 {
		return domain.ErrMissingArgument.WithDetails("ID and STATUS")
	}
	id, err := idArg(c)
	if err != nil {
		return err
	}
	status := domain.BookingStatus(strings.ToLower(c.Args().Get(1)))

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	if _, err := run(rt, "Updating booking...", func() (*domain.Booking, error) {
		return client.UpdateBookingStatus(ctx, id, status)
	}); err != nil {
		return err
	}

	fmt.Fprintf(rt.Stdout, "Booking %s marked %s\n", id, status)
	return nil
}

func bookingsAssignGuide(c *cli.Context) error {
	rt := RuntimeFrom(c)
	if c.NArg() < 2 {
		return domain.ErrMissingArgument.WithDetails("ID and GUIDE")
	}
	id, err := idArg(c)
	if err != nil {
		return err
	}
	guide := strings.Join(c.Args().Slice()[1:], " ")

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	if _, err := run(rt, "Assigning guide...", func() (*domain.Booking, error) {
		return client.AssignGuide(ctx, id, guide)
	}); err != nil {
		return err
	}

	fmt.Fprintf(rt.Stdout, "Assigned %s to booking %s\n", guide, id)
	return nil
}

func bookingsExport(c *cli.Context) error {
	bookings, err := fetchBookings(c)
	if err != nil {
		return err
	}
	now := RuntimeFrom(c).Now()
	return writeReport(c, report.KindBookings, func(printable bool) *report.Report {
		return report.Bookings(bookings, now, printable)
	})
}
