package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

// DestinationsCommand returns the destinations subcommand group.
func DestinationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "destinations",
		Aliases: []string{"dest"},
		Usage:   "Destination catalog management",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List destinations",
				Action:  destinationsList,
			},
			{
				Name:   "create",
				Usage:  "Create a destination",
				Flags:  destinationFlags(true),
				Action: destinationsCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a destination; unset flags keep their value",
				ArgsUsage: "ID",
				Flags:     destinationFlags(false),
				Action:    destinationsUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete destinations",
				ArgsUsage: "ID [ID...]",
				Flags:     []cli.Flag{forceFlag()},
				Action:    destinationsDelete,
			},
			{
				Name:   "sync-images",
				Usage:  "Copy package images onto matching destinations",
				Action: destinationsSyncImages,
			},
		},
	}
}

func destinationFlags(create bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Destination name", Required: create},
		&cli.StringFlag{Name: "duration", Usage: "Duration, e.g. \"5 Days\"", Required: create},
		&cli.Float64Flag{Name: "price", Usage: "Price per person", Required: create},
		&cli.StringFlag{Name: "category", Usage: "Category"},
		&cli.StringFlag{Name: "status", Usage: "active or inactive"},
		&cli.StringFlag{Name: "image", Usage: "Image URL"},
		&cli.StringFlag{Name: "description", Usage: "Description"},
		&cli.StringFlag{Name: "description-file", Usage: "Read the description from a file"},
	}
}

func applyDestinationFlags(c *cli.Context, in *domain.DestinationInput) error {
	setString(c, "name", &in.Name)
	setString(c, "duration", &in.Duration)
	setFloat(c, "price", &in.Price)
	setString(c, "category", &in.Category)
	setString(c, "status", &in.Status)
	setString(c, "image", &in.Image)
	return setText(c, "description", &in.Description)
}

func destinationsList(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading destinations...", func() ([]domain.Destination, error) {
		return client.GetDestinations(ctx)
	})
	if err != nil {
		return err
	}
	return printList(rt, items, "destinations")
}

func destinationsCreate(c *cli.Context) error {
	rt := RuntimeFrom(c)
	var in domain.DestinationInput
	if err := applyDestinationFlags(c, &in); err != nil {
		return err
	}

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	created, err := run(rt, "Creating destination...", func() (*domain.Destination, error) {
		return client.CreateDestination(ctx, in)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Created destination %s (%s)\n", created.ID, in.Name)
	return nil
}

func destinationsUpdate(c *cli.Context) error {
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

	_, err = run(rt, "Updating destination...", func() (*domain.Destination, error) {
		items, err := client.GetDestinations(ctx)
		if err != nil {
			return nil, err
		}
		current, ok := findByID(items, id, func(d domain.Destination) domain.ID { return d.ID })
		if !ok {
			return nil, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("destination %s not found", id))
		}
		in := current.InputFrom()
		if err := applyDestinationFlags(c, &in); err != nil {
			return nil, err
		}
		return client.UpdateDestination(ctx, id, in)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Updated destination %s\n", id)
	return nil
}

func destinationsDelete(c *cli.Context) error {
	client, err := RuntimeFrom(c).Client()
	if err != nil {
		return err
	}
	return deleteRecords(c, "destination", func(ctx context.Context, id domain.ID) error {
		return client.DeleteDestination(ctx, id)
	})
}

func destinationsSyncImages(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	result, err := run(rt, "Syncing images...", func() (*domain.SyncImagesResult, error) {
		return client.SyncDestinationImages(ctx)
	})
	if err != nil {
		return err
	}
	return rt.Print(result)
}
