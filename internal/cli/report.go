package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
	"github.com/mickamy/pressroom/repo"
)

type repos struct {
	authors   *repo.AuthorRepository
	magazines *repo.MagazineRepository
	articles  *repo.ArticleRepository
}

func newRepos(db orm.Querier) repos {
	return repos{
		authors:   repo.NewAuthorRepository(db),
		magazines: repo.NewMagazineRepository(db),
		articles:  repo.NewArticleRepository(db),
	}
}

func newReportCommand(e *env) *cobra.Command {
	var page model.Page

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print every magazine and author with their relationships",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := e.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			r := newRepos(s.DB())
			w := cmd.OutOrStdout()
			if err := renderMagazines(cmd.Context(), w, r, page); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w)
			return renderAuthors(cmd.Context(), w, r, page)
		},
	}
	cmd.Flags().IntVar(&page.Limit, "limit", 0, "rows per table (0 for all)")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "rows to skip in each table")
	return cmd
}

func renderMagazines(ctx context.Context, w io.Writer, r repos, page model.Page) error {
	magazines, err := r.magazines.All(ctx, page)
	if err != nil {
		return err
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Magazine", "Category", "Titles", "Contributors", "Contributing"})
	for _, m := range magazines {
		titles, err := r.magazines.ArticleTitles(ctx, m.ID)
		if err != nil {
			return err
		}
		contributors, err := r.magazines.Contributors(ctx, m.ID)
		if err != nil {
			return err
		}
		contributing, err := r.magazines.ContributingAuthors(ctx, m.ID)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{
			m.ID, m.Name, m.Category,
			strings.Join(titles, "\n"), authorNames(contributors), authorNames(contributing),
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d magazines)\n", len(magazines))
	return nil
}

func renderAuthors(ctx context.Context, w io.Writer, r repos, page model.Page) error {
	authors, err := r.authors.All(ctx, page)
	if err != nil {
		return err
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Author", "Articles", "Magazines"})
	for _, a := range authors {
		articles, err := r.authors.Articles(ctx, a.ID)
		if err != nil {
			return err
		}
		magazines, err := r.authors.Magazines(ctx, a.ID)
		if err != nil {
			return err
		}
		names := make([]string, len(magazines))
		for i, m := range magazines {
			names[i] = m.Name
		}
		t.AppendRow(table.Row{a.ID, a.Name, len(articles), strings.Join(names, ", ")})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d authors)\n", len(authors))
	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func authorNames(authors []model.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}
