package repo_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
	"github.com/mickamy/pressroom/repo"
)

func TestAuthorCreate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	a, err := f.authors.Create(t.Context(), "CYNDI MUSTAPHA")
	require.NoError(t, err)
	assert.Equal(t, "CYNDI MUSTAPHA", a.Name)
	assert.NotZero(t, a.ID)

	got, err := f.authors.FindByID(t.Context(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestAuthorCreateAssignsDistinctIDs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	seen := make(map[int64]bool)
	for _, name := range []string{"CYNDI MUSTAPHA", "ANYONE", "CYNDI MUSTAPHA"} {
		a := f.author(t, name)
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
}

func TestAuthorCreateRejectsInvalidName(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	for _, name := range []string{"", "A"} {
		a, err := f.authors.Create(t.Context(), name)
		assert.Nil(t, a)
		require.ErrorIs(t, err, model.ErrValidation, "name %q", name)
	}
	assert.Zero(t, f.count(t, "authors"))
}

func TestAuthorFindByIDMissing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.authors.FindByID(t.Context(), 404)
	var refErr *model.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "author", refErr.Entity)
	assert.Equal(t, int64(404), refErr.ID)
}

func TestAuthorArticles(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	author := f.author(t, "CYNDI MUSTAPHA")
	other := f.author(t, "ANYONE")
	muse := f.magazine(t, "MODERN MUSE", "Trending")
	vogue := f.magazine(t, "VOGUE", "Fashion")

	first := f.article(t, "Title 1", author, muse)
	f.article(t, "Elsewhere", other, muse)
	second := f.article(t, "Title 2", author, vogue)

	got, err := f.authors.Articles(t.Context(), author.ID)
	require.NoError(t, err)

	assert.Equal(t, []model.ArticleSummary{
		{ID: first.ID, Title: "Title 1", Content: "Content for Title 1", MagazineID: muse.ID},
		{ID: second.ID, Title: "Title 2", Content: "Content for Title 2", MagazineID: vogue.ID},
	}, got)
}

func TestAuthorArticlesEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	author := f.author(t, "CYNDI MUSTAPHA")

	got, err := f.authors.Articles(t.Context(), author.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAuthorMagazinesDistinct(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	author := f.author(t, "CYNDI MUSTAPHA")
	muse := f.magazine(t, "MODERN MUSE", "Trending")
	vogue := f.magazine(t, "VOGUE", "Fashion")
	f.magazine(t, "UNREAD", "Nothing")

	f.article(t, "Title 1", author, muse)
	f.article(t, "Title 2", author, muse)
	f.article(t, "Title 3", author, vogue)
	f.article(t, "Title 4", author, muse)

	got, err := f.authors.Magazines(t.Context(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Magazine{*muse, *vogue}, got)
	assert.Equal(t, []int64{muse.ID, vogue.ID}, ids(got, magazineID))
}

func TestAuthorCreateStorageError(t *testing.T) {
	t.Parallel()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	cause := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "authors" ("name") VALUES (?)`)).
		WithArgs("CYNDI MUSTAPHA").
		WillReturnError(cause)

	a, err := repo.NewAuthorRepository(orm.New(raw, orm.SQLite)).Create(t.Context(), "CYNDI MUSTAPHA")
	assert.Nil(t, a)
	require.ErrorIs(t, err, model.ErrStorage)
	require.ErrorIs(t, err, cause)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorCreateValidationTouchesNoStore(t *testing.T) {
	t.Parallel()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	_, err = repo.NewAuthorRepository(orm.New(raw, orm.SQLite)).Create(t.Context(), "A")
	require.ErrorIs(t, err, model.ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorCreatePostgresReturning(t *testing.T) {
	t.Parallel()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "authors" ("name") VALUES ($1) RETURNING "id"`)).
		WithArgs("CYNDI MUSTAPHA").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(17)))

	a, err := repo.NewAuthorRepository(orm.New(raw, orm.PostgreSQL)).Create(t.Context(), "CYNDI MUSTAPHA")
	require.NoError(t, err)
	assert.Equal(t, int64(17), a.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorAll(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	empty, err := f.authors.All(t.Context(), model.Page{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	first := f.author(t, "CYNDI MUSTAPHA")
	second := f.author(t, "ANYONE")

	got, err := f.authors.All(t.Context(), model.Page{})
	require.NoError(t, err)
	assert.Equal(t, []model.Author{*first, *second}, got)
}

func TestAuthorAllPaged(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var created []model.Author
	for _, name := range []string{"CYNDI MUSTAPHA", "ANYONE", "GUEST WRITER"} {
		created = append(created, *f.author(t, name))
	}

	first, err := f.authors.All(t.Context(), model.Page{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, created[:2], first)

	rest, err := f.authors.All(t.Context(), model.Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, created[2:], rest)
}
