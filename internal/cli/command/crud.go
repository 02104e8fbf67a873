package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/cli/output"
	"github.com/wildwave/safari-admin/internal/core/domain"
)

// findByID returns the record whose ID matches id.
func findByID[T any](items []T, id domain.ID, idOf func(T) domain.ID) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func setString(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func setFloat(c *cli.Context, name string, dst *float64) {
	if c.IsSet(name) {
		*dst = c.Float64(name)
	}
}

func setBool(c *cli.Context, name string, dst *bool) {
	if c.IsSet(name) {
		*dst = c.Bool(name)
	}
}

// setText reads name, or the file named by name-file when that is set.
func setText(c *cli.Context, name string, dst *string) error {
	if path := c.String(name + "-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		*dst = string(data)
		return nil
	}
	setString(c, name, dst)
	return nil
}

// deleteRecords deletes every ID argument after one confirmation. Several
// deletions show a progress bar on interactive terminals.
func deleteRecords(c *cli.Context, noun string, del func(ctx context.Context, id domain.ID) error) error {
	rt := RuntimeFrom(c)
	if c.NArg() < 1 {
		return domain.ErrMissingArgument.WithDetails("ID")
	}

	ids := make([]domain.ID, 0, c.NArg())
	for _, arg := range c.Args().Slice() {
		id, err := domain.ParseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if _, err := rt.AuthedClient(); err != nil {
		return err
	}

	prompt := fmt.Sprintf("Delete %s %s?", noun, ids[0])
	if len(ids) > 1 {
		prompt = fmt.Sprintf("Delete %d %ss?", len(ids), noun)
	}
	if !confirm(c, prompt) {
		fmt.Fprintln(rt.Stdout, "Aborted")
		return nil
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	var bar *output.ProgressBar
	if len(ids) > 1 && rt.Interactive {
		bar = output.NewProgressBar(rt.Stderr, "Deleting", len(ids))
	}

	var errs []error
	for _, id := range ids {
		if err := del(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", noun, id, err))
		} else if bar == nil {
			fmt.Fprintf(rt.Stdout, "Deleted %s %s\n", noun, id)
		}
		if bar != nil {
			bar.Increment(1)
		}
	}
	if bar != nil {
		bar.Finish()
		fmt.Fprintf(rt.Stdout, "Deleted %d of %d %ss\n", len(ids)-len(errs), len(ids), noun)
	}
	return errors.Join(errs...)
}
