package repo

import (
	"context"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
	"github.com/mickamy/pressroom/scope"
)

// AuthorRepository creates authors and answers questions about them.
type AuthorRepository struct {
	db orm.Querier
}

func NewAuthorRepository(db orm.Querier) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Create validates name and inserts a new author.
func (r *AuthorRepository) Create(ctx context.Context, name string) (*model.Author, error) {
	a := &model.Author{Name: name}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := model.Authors(r.db).Create(ctx, a); err != nil {
		return nil, storageErr("create author", err)
	}
	return a, nil
}

// FindByID loads an author and re-validates the stored row.
func (r *AuthorRepository) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	a, err := model.Authors(r.db).Scopes(model.ByID(model.AuthorsTable, id)).First(ctx)
	if err != nil {
		return nil, lookupErr("find author", "author", id, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// All lists authors in insertion order, one page at a time.
func (r *AuthorRepository) All(ctx context.Context, page model.Page) ([]model.Author, error) {
	authors, err := model.Authors(r.db).Scopes(page.Scopes(model.AuthorsTable)...).All(ctx)
	if err != nil {
		return nil, storageErr("list authors", err)
	}
	return authors, nil
}

// Articles lists the author's articles in insertion order.
func (r *AuthorRepository) Articles(ctx context.Context, authorID int64) ([]model.ArticleSummary, error) {
	articles, err := model.ArticleSummaries(r.db).
		Scopes(model.WrittenBy(authorID), model.InsertionOrder(model.ArticlesTable)).
		All(ctx)
	if err != nil {
		return nil, storageErr("list author articles", err)
	}
	return articles, nil
}

// Magazines lists each magazine the author has written for once,
// ordered by magazine id.
func (r *AuthorRepository) Magazines(ctx context.Context, authorID int64) ([]model.Magazine, error) {
	magazines, err := model.Magazines(r.db).
		Join(model.JoinArticles).
		Scopes(scope.Distinct(), model.WrittenBy(authorID), model.InsertionOrder(model.MagazinesTable)).
		All(ctx)
	if err != nil {
		return nil, storageErr("list author magazines", err)
	}
	return magazines, nil
}
