package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

// PublicCommand returns the unauthenticated site endpoints.
func PublicCommand() *cli.Command {
	return &cli.Command{
		Name:  "public",
		Usage: "Public website endpoints (no login required)",
		Subcommands: []*cli.Command{
			{
				Name:   "destinations",
				Usage:  "List published destinations",
				Action: publicDestinations,
			},
			{
				Name:   "blogs",
				Usage:  "List published blog posts",
				Action: publicBlogs,
			},
			{
				Name:   "contact",
				Usage:  "Show public contact details",
				Action: publicContact,
			},
			{
				Name:   "promotion",
				Usage:  "Show the active promotion",
				Action: publicPromotion,
			},
			{
				Name:  "book",
				Usage: "Submit a booking request",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Customer name", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Customer email", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "safari", Usage: "Safari package or type", Required: true},
					&cli.IntFlag{Name: "people", Usage: "Number of travellers", Value: 1},
					&cli.StringFlag{Name: "date", Usage: "Travel date (YYYY-MM-DD)", Required: true},
					&cli.Float64Flag{Name: "total", Usage: "Quoted total price"},
					&cli.StringFlag{Name: "message", Usage: "Notes for the team"},
				},
				Action: publicBook,
			},
			{
				Name:  "enquire",
				Usage: "Send an enquiry",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Your name", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Your email", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "subject", Usage: "Subject"},
					&cli.StringFlag{Name: "message", Usage: "Message", Required: true},
				},
				Action: publicEnquire,
			},
		},
	}
}

func publicDestinations(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.Client()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading destinations...", func() ([]domain.Destination, error) {
		return client.GetPublicDestinations(ctx)
	})
	if err != nil {
		return err
	}
	return printList(rt, items, "destinations")
}

func publicBlogs(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.Client()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading blog posts...", func() ([]domain.Blog, error) {
		return client.GetPublicBlogs(ctx)
	})
	if err != nil {
		return err
	}
	return printList(rt, items, "blog posts")
}

func publicContact(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.Client()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	settings, err := run(rt, "Loading contact details...", func() (*domain.ContactSettings, error) {
		return client.GetPublicContactSettings(ctx)
	})
	if err != nil {
		return err
	}
	return rt.Print(settings)
}

func publicPromotion(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.Client()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	promo, err := run(rt, "Loading promotion...", func() (*domain.Promotion, error) {
		return client.GetActivePromotion(ctx)
	})
	if err != nil {
		return err
	}
	if promo == nil || promo.ID.IsZero() {
		fmt.Fprintln(rt.Stdout, "No active promotion")
		return nil
	}
	return rt.Print(promo)
}

func publicBook(c *cli.Context) error {
	rt := RuntimeFrom(c)
	in := domain.PublicBookingRequest{
		CustomerName: c.String("name"),
		Email:        c.String("email"),
		Phone:        c.String("phone"),
		SafariType:   c.String("safari"),
		People:       c.Int("people"),
		Date:         c.String("date"),
		TotalPrice:   c.Float64("total"),
		Message:      c.String("message"),
	}

	client, err := rt.Client()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	booking, err := run(rt, "Submitting booking...", func() (*domain.Booking, error) {
		return client.SubmitBooking(ctx, in)
	})
	if err != nil {
		return err
	}
	ref := booking.Ref
	if ref == "" {
		ref = booking.ID.String()
	}
	fmt.Fprintf(rt.Stdout, "Booking received (%s)\n", ref)
	return nil
}

func publicEnquire(c *cli.Context) error {
	rt := RuntimeFrom(c)
	in := domain.PublicEnquiryRequest{
		Name:    c.String("name"),
		Email:   c.String("email"),
		Phone:   c.String("phone"),
		Subject: c.String("subject"),
		Message: c.String("message"),
	}

	client, err := rt.Client()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	if _, err := run(rt, "Sending enquiry...", func() (*domain.Enquiry, error) {
		return client.SubmitEnquiry(ctx, in)
	}); err != nil {
		return err
	}
	fmt.Fprintln(rt.Stdout, "Enquiry sent. The team will be in touch.")
	return nil
}
