package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wildwave/safari-admin/internal/core/domain"
)

// BlogsCommand returns the blogs subcommand group.
func BlogsCommand() *cli.Command {
	return &cli.Command{
		Name:    "blogs",
		Aliases: []string{"blog"},
		Usage:   "Blog post management",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List blog posts",
				Action:  blogsList,
			},
			{
				Name:   "create",
				Usage:  "Create a blog post",
				Flags:  blogFlags(true),
				Action: blogsCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a blog post; unset flags keep their value",
				ArgsUsage: "ID",
				Flags:     blogFlags(false),
				Action:    blogsUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete blog posts",
				ArgsUsage: "ID [ID...]",
				Flags:     []cli.Flag{forceFlag()},
				Action:    blogsDelete,
			},
			{
				Name:      "publish",
				Usage:     "Publish a blog post",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					return blogsSetPublished(c, true)
				},
			},
			{
				Name:      "unpublish",
				Usage:     "Move a blog post back to draft",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					return blogsSetPublished(c, false)
				},
			},
		},
	}
}

func blogFlags(create bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Post title", Required: create},
		&cli.StringFlag{Name: "category", Usage: "Category"},
		&cli.StringFlag{Name: "excerpt", Usage: "Short summary"},
		&cli.StringFlag{Name: "content", Usage: "Post body"},
		&cli.StringFlag{Name: "content-file", Usage: "Read the post body from a file"},
		&cli.StringFlag{Name: "image-url", Usage: "Cover image URL"},
		&cli.StringFlag{Name: "read-time", Usage: "Reading time, e.g. \"5 min read\""},
		&cli.BoolFlag{Name: "published", Usage: "Publish immediately"},
	}
}

func applyBlogFlags(c *cli.Context, in *domain.BlogInput) error {
	setString(c, "title", &in.Title)
	setString(c, "category", &in.Category)
	setString(c, "excerpt", &in.Excerpt)
	setString(c, "image-url", &in.ImageURL)
	setString(c, "read-time", &in.ReadTime)
	setBool(c, "published", &in.Published)
	return setText(c, "content", &in.Content)
}

func blogsList(c *cli.Context) error {
	rt := RuntimeFrom(c)
	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	items, err := run(rt, "Loading blog posts...", func() ([]domain.Blog, error) {
		return client.GetBlogs(ctx)
	})
	if err != nil {
		return err
	}
	return printList(rt, items, "blog posts")
}

func blogsCreate(c *cli.Context) error {
	rt := RuntimeFrom(c)
	var in domain.BlogInput
	if err := applyBlogFlags(c, &in); err != nil {
		return err
	}

	client, err := rt.AuthedClient()
	if err != nil {
		return err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	created, err := run(rt, "Creating blog post...", func() (*domain.Blog, error) {
		return client.CreateBlog(ctx, in)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Stdout, "Created blog post %s (%s)\n", created.ID, in.Title)
	return nil
}

// updateBlog fetches the post, applies edit and sends the full body back.
func updateBlog(c *cli.Context, message string, edit func(*domain.BlogInput) error) (domain.ID, error) {
	rt := RuntimeFrom(c)
	id, err := idArg(c)
	if err != nil {
		return "", err
	}

	client, err := rt.AuthedClient()
	if err != nil {
		return "", err
	}

	ctx, cancel := rt.Context(c)
	defer cancel()

	_, err = run(rt, message, func() (*domain.Blog, error) {
		items, err := client.GetBlogs(ctx)
		if err != nil {
			return nil, err
		}
		current, ok := findByID(items, id, func(b domain.Blog) domain.ID { return b.ID })
		if !ok {
			return nil, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("blog post %s not found", id))
		}
		in := current.InputFrom()
		if err := edit(&in); err != nil {
			return nil, err
		}
		return client.UpdateBlog(ctx, id, in)
	})
	return id, err
}

func blogsUpdate(c *cli.Context) error {
	id, err := updateBlog(c, "Updating blog post...", func(in *domain.BlogInput) error {
		return applyBlogFlags(c, in)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(RuntimeFrom(c).Stdout, "Updated blog post %s\n", id)
	return nil
}

func blogsSetPublished(c *cli.Context, published bool) error {
	id, err := updateBlog(c, "Saving blog post...", func(in *domain.BlogInput) error {
		in.Published = published
		return nil
	})
	if err != nil {
		return err
	}
	state := "published"
	if !published {
		state = "moved to draft"
	}
	fmt.Fprintf(RuntimeFrom(c).Stdout, "Blog post %s %s\n", id, state)
	return nil
}

func blogsDelete(c *cli.Context) error {
	client, err := RuntimeFrom(c).Client()
	if err != nil {
		return err
	}
	return deleteRecords(c, "blog post", func(ctx context.Context, id domain.ID) error {
		return client.DeleteBlog(ctx, id)
	})
}
