package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

// PromotionsCommand returns the promotions subcommand group.
func PromotionsCommand() *cli.Command {
	return &cli.Command{
		Name:    "promotions",
		Aliases: []string{"promo"},
		Usage:   "Promotional banner management",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List promotions",
				Action:  promotionsList,
			},
			{
				Name:   "create",
				Usage:  "Create a promotion",
				Flags:  promotionFlags(true),
				Action: promotionsCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a promotion; unset flags keep their value",
				ArgsUsage: "ID",
				Flags:     promotionFlags(false),
				Action:    promotionsUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete promotions",
				ArgsUsage: "ID [ID...]",
				Flags:     []cli.Flag{forceFlag()},
				Action:    promotionsDelete,
			},
		},
	}
}

func promotionFlags(create bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Banner title", Required: create},
		&cli.StringFlag{Name: "description", Usage: "Banner text"},
		&cli.StringFlag{Name: "discount", Usage: "Discount label, e.g. \"20% OFF\""},
		&cli.StringFlag{Name: "button-text", Usage: "Call to action label"},
		&cli.StringFlag{Name: "button-link", Usage: "Call to action link"},
		&cli.BoolFlag{Name: "active", Usage: "Show the banner on the public site"},
	}
}

func applyPromotionFlags(c *cli.Context, in *domain.PromotionInput) {
	setString(c, "title", &in.Title)
	setString(c, "description", &in.Description)
	setString(c, "discount", &in.DiscountText)
	setString(c, "button-text", &in.ButtonText)
	setString(c, "button-link", &in.ButtonLink)
	setBool(c, "active", &in.Active)
}

func promotionsList(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading promotions...", func() ([]domain.Promotion, error) {
		return client.GetPromotions(ctx)
	})
	if err != nil {
		return err
	}
	return printList(rt, items, "promotions")
}

func promotionsCreate(c *cli.Context) error {
	rt := RuntimeFrom(c)
	var in domain.PromotionInput
	applyPromotionFlags(c, &in)

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	created, err := run(rt, "Creating promotion...", func() (*domain.Promotion, error) {
		return client.CreatePromotion(ctx, in)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Created promotion %s (%s)\n", created.ID, in.Title)
	return nil
}

func promotionsUpdate(c *cli.Context) error {
	rt := RuntimeFrom(c)
	id, err := idArg(c)
	if err != nil {
		return err
	}

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	_, err = run(rt, "Updating promotion...", func() (*domain.Promotion, error) {
		items, err := client.GetPromotions(ctx)
		if err != nil {
			return nil, err
		}
		current, ok := findByID(items, id, func(p domain.Promotion) domain.ID { return p.ID })
		if !ok {
			return nil, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("promotion %s not found", id))
		}
		in := current.InputFrom()
		applyPromotionFlags(c, &in)
		return client.UpdatePromotion(ctx, id, in)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Updated promotion %s\n", id)
	return nil
}

func promotionsDelete(c *cli.Context) error {
	client, err := RuntimeFrom(c).Client()
	if err != nil {
		return err
	}
	return deleteRecords(c, "promotion", func(ctx context.Context, id domain.ID) error {
		return client.DeletePromotion(ctx, id)
	})
}
