package model_test

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
)

func newMockDB(t *testing.T) (*orm.DB, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return orm.New(raw, orm.SQLite), mock
}

func TestTableNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "authors", model.AuthorsTable)
	assert.Equal(t, "magazines", model.MagazinesTable)
	assert.Equal(t, "articles", model.ArticlesTable)
	assert.Equal(t, "articles", orm.TableNameFor[model.ArticleSummary]())
}

func TestScanArticles(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT "id", "title", "content", "author_id", "magazine_id" FROM "articles" WHERE articles.magazine_id = ? ORDER BY articles.id`,
	)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author_id", "magazine_id"}).
			AddRow(1, "Title 1", "Content number one", 4, 9).
			AddRow(2, "Title 2", "Content number two", 5, 9))

	got, err := model.Articles(db).
		Scopes(model.PublishedIn(9), model.InsertionOrder(model.ArticlesTable)).
		All(t.Context())
	require.NoError(t, err)

	want := []model.Article{
		{ID: 1, Title: "Title 1", Content: "Content number one", AuthorID: 4, MagazineID: 9},
		{ID: 2, Title: "Title 2", Content: "Content number two", AuthorID: 5, MagazineID: 9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("articles mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScanIgnoresUnknownColumns(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "extra"}).AddRow(3, "ANYONE", "ignored"))

	got, err := model.Authors(db).Select("*").All(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []model.Author{{ID: 3, Name: "ANYONE"}}, got)
}

func TestAuthorsJoinArticles(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT DISTINCT "authors"."id", "authors"."name" FROM "authors" ` +
			`INNER JOIN "articles" ON "articles"."author_id" = "authors"."id" WHERE articles.magazine_id = ?`,
	)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "CYNDI MUSTAPHA"))

	got, err := model.Authors(db).Distinct().Join(model.JoinArticles).Scopes(model.PublishedIn(2)).All(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []model.Author{{ID: 1, Name: "CYNDI MUSTAPHA"}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleSummariesReadOnly(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)

	err := model.ArticleSummaries(db).Create(t.Context(), &model.ArticleSummary{Title: "Test Title"})
	require.ErrorIs(t, err, orm.ErrReadOnly)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageScopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page model.Page
		want string
	}{
		{name: "every row", page: model.Page{}, want: `SELECT "id", "name" FROM "authors" ORDER BY authors.id`},
		{name: "first page", page: model.Page{Limit: 2}, want: `SELECT "id", "name" FROM "authors" ORDER BY authors.id LIMIT 2 OFFSET 0`},
		{name: "second page", page: model.Page{Limit: 2, Offset: 2}, want: `SELECT "id", "name" FROM "authors" ORDER BY authors.id LIMIT 2 OFFSET 2`},
		{name: "negative offset", page: model.Page{Limit: 2, Offset: -1}, want: `SELECT "id", "name" FROM "authors" ORDER BY authors.id LIMIT 2 OFFSET 0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			mock.ExpectQuery("^" + regexp.QuoteMeta(tt.want) + "$").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

			_, err := model.Authors(db).Scopes(tt.page.Scopes(model.AuthorsTable)...).All(t.Context())
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
