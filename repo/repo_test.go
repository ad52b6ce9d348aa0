package repo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mickamy/pressroom/internal/testutil"
	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
	"github.com/mickamy/pressroom/repo"
)

type fixture struct {
	db        *orm.DB
	authors   *repo.AuthorRepository
	magazines *repo.MagazineRepository
	articles  *repo.ArticleRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewStore(t).DB()
	return &fixture{
		db:        db,
		authors:   repo.NewAuthorRepository(db),
		magazines: repo.NewMagazineRepository(db),
		articles:  repo.NewArticleRepository(db),
	}
}

func (f *fixture) author(t *testing.T, name string) *model.Author {
	t.Helper()
	a, err := f.authors.Create(t.Context(), name)
	require.NoError(t, err)
	return a
}

func (f *fixture) magazine(t *testing.T, name, category string) *model.Magazine {
	t.Helper()
	m, err := f.magazines.Create(t.Context(), name, category)
	require.NoError(t, err)
	return m
}

func (f *fixture) article(t *testing.T, title string, a *model.Author, m *model.Magazine) *model.Article {
	t.Helper()
	art, err := f.articles.Create(t.Context(), title, "Content for "+title, a, m)
	require.NoError(t, err)
	return art
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	rows, err := f.db.QueryContext(t.Context(), "SELECT COUNT(*) FROM "+table)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()
	require.True(t, rows.Next())
	var n int
	require.NoError(t, rows.Scan(&n))
	return n
}

func ids[T any](items []T, id func(T) int64) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}

func authorID(a model.Author) int64     { return a.ID }
func magazineID(m model.Magazine) int64 { return m.ID }
