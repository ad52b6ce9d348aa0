package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mickamy/pressroom/model"
)

func newSeedCommand(e *env) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample authors, magazines and articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := e.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if reset {
				if err := s.Reset(ctx); err != nil {
					return err
				}
				e.logger.Info("store reset")
			}
			return seed(ctx, newRepos(s.DB()), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "delete every row before seeding")
	return cmd
}

type sampleArticle struct {
	title    string
	author   int
	magazine int
}

var (
	sampleAuthors   = []string{"CYNDI MUSTAPHA", "GUEST WRITER"}
	sampleMagazines = [][2]string{{"MODERN MUSE", "Trending"}, {"VOGUE", "Fashion"}}
	sampleArticles  = []sampleArticle{
		{"Spring Trends", 0, 0},
		{"Summer Trends", 0, 0},
		{"Autumn Trends", 0, 0},
		{"A Guest Column", 1, 0},
		{"Runway Report", 0, 1},
	}
)

func seed(ctx context.Context, r repos, w io.Writer) error {
	authors := make([]*model.Author, len(sampleAuthors))
	for i, name := range sampleAuthors {
		a, err := r.authors.Create(ctx, name)
		if err != nil {
			return fmt.Errorf("create author: %w", err)
		}
		authors[i] = a
		_, _ = fmt.Fprintf(w, "author %d: %s\n", a.ID, a.Name)
	}

	magazines := make([]*model.Magazine, len(sampleMagazines))
	for i, m := range sampleMagazines {
		created, err := r.magazines.Create(ctx, m[0], m[1])
		if err != nil {
			return fmt.Errorf("create magazine: %w", err)
		}
		magazines[i] = created
		_, _ = fmt.Fprintf(w, "magazine %d: %s (%s)\n", created.ID, created.Name, created.Category)
	}

	for _, sa := range sampleArticles {
		a, err := r.articles.Create(ctx, sa.title, "Content for "+sa.title, authors[sa.author], magazines[sa.magazine])
		if err != nil {
			return fmt.Errorf("create article: %w", err)
		}
		_, _ = fmt.Fprintf(w, "article %d: %q by %s in %s\n", a.ID, a.Title, a.Author.Name, a.Magazine.Name)
	}
	return nil
}
