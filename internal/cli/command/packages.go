package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

// PackagesCommand returns the safari packages subcommand group.
func PackagesCommand() *cli.Command {
	return &cli.Command{
		Name:    "packages",
		Aliases: []string{"pkg"},
		Usage:   "Safari package management",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List safari packages",
				Action:  packagesList,
			},
			{
				Name:   "create",
				Usage:  "Create a safari package",
				Flags:  packageFlags(true),
				Action: packagesCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a safari package; unset flags keep their value",
				ArgsUsage: "ID",
				Flags:     packageFlags(false),
				Action:    packagesUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete safari packages",
				ArgsUsage: "ID [ID...]",
				Flags:     []cli.Flag{forceFlag()},
				Action:    packagesDelete,
			},
		},
	}
}

func packageFlags(create bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Package name", Required: create},
		&cli.StringFlag{Name: "duration", Usage: "Duration, e.g. \"7 Days\"", Required: create},
		&cli.Float64Flag{Name: "price", Usage: "Price per person", Required: create},
		&cli.StringFlag{Name: "tag", Usage: "Badge shown on the card, e.g. Best Seller"},
		&cli.StringFlag{Name: "type", Usage: "Package type, e.g. luxury"},
		&cli.StringFlag{Name: "image-url", Usage: "Image URL"},
		&cli.StringFlag{Name: "description", Usage: "Description"},
		&cli.StringFlag{Name: "description-file", Usage: "Read the description from a file"},
		&cli.StringFlag{Name: "itinerary", Usage: "Day-by-day itinerary"},
		&cli.StringFlag{Name: "itinerary-file", Usage: "Read the itinerary from a file"},
		&cli.StringFlag{Name: "includes", Usage: "What the price includes"},
		&cli.StringFlag{Name: "excludes", Usage: "What the price excludes"},
		&cli.BoolFlag{Name: "published", Usage: "Show on the public site"},
	}
}

func applyPackageFlags(c *cli.Context, in *domain.SafariPackageInput) error {
	setString(c, "name", &in.Name)
	setString(c, "duration", &in.Duration)
	setFloat(c, "price", &in.Price)
	setString(c, "tag", &in.Tag)
	setString(c, "type", &in.Type)
	setString(c, "image-url", &in.ImageURL)
	setString(c, "includes", &in.Includes)
	setString(c, "excludes", &in.Excludes)
	setBool(c, "published", &in.Published)
	if err := setText(c, "description", &in.Description); err != nil {
		return err
	}
	return setText(c, "itinerary", &in.Itinerary)
}

func packagesList(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading packages...", func() ([]domain.SafariPackage, error) {
		return client.GetPackages(ctx)
	})
	if err != nil {
		return err
	}
	return printList(rt, items, "packages")
}

func packagesCreate(c *cli.Context) error {
	rt := RuntimeFrom(c)
	var in domain.SafariPackageInput
	if err := applyPackageFlags(c, &in); err != nil {
		return err
	}

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	created, err := run(rt, "Creating package...", func() (*domain.SafariPackage, error) {
		return client.CreatePackage(ctx, in)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Created package %s (%s)\n", created.ID, in.Name)
	return nil
}

func packagesUpdate(c *cli.Context) error {
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

	_, err = run(rt, "Updating package...", func() (*domain.SafariPackage, error) {
		items, err := client.GetPackages(ctx)
		if err != nil {
			return nil, err
		}
		current, ok := findByID(items, id, func(p domain.SafariPackage) domain.ID { return p.ID })
		if !ok {
			return nil, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("package %s not found", id))
		}
		in := current.InputFrom()
		if err := applyPackageFlags(c, &in); err != nil {
			return nil, err
		}
		return client.UpdatePackage(ctx, id, in)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Updated package %s\n", id)
	return nil
}

func packagesDelete(c *cli.Context) error {
	client, err := RuntimeFrom(c).Client()
	if err != nil {
		return err
	}
	return deleteRecords(c, "package", func(ctx context.Context, id domain.ID) error {
		return client.DeletePackage(ctx, id)
	})
}
