package repo

import (
	"context"
	"fmt"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
	"github.com/mickamy/pressroom/scope"
)

// MagazineRepository creates magazines and answers questions about them.
type MagazineRepository struct {
	db orm.Querier
}

func NewMagazineRepository(db orm.Querier) *MagazineRepository {
	return &MagazineRepository{db: db}
}

// Create validates name and category and inserts a new magazine.
func (r *MagazineRepository) Create(ctx context.Context, name, category string) (*model.Magazine, error) {
	m := &model.Magazine{Name: name, Category: category}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := model.Magazines(r.db).Create(ctx, m); err != nil {
		return nil, storageErr("create magazine", err)
	}
	return m, nil
}

// FindByID loads a magazine and re-validates the stored row.
func (r *MagazineRepository) FindByID(ctx context.Context, id int64) (*model.Magazine, error) {
	m, err := model.Magazines(r.db).Scopes(model.ByID(model.MagazinesTable, id)).First(ctx)
	if err != nil {
		return nil, lookupErr("find magazine", "magazine", id, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// All lists magazines in insertion order, one page at a time.
func (r *MagazineRepository) All(ctx context.Context, page model.Page) ([]model.Magazine, error) {
	magazines, err := model.Magazines(r.db).Scopes(page.Scopes(model.MagazinesTable)...).All(ctx)
	if err != nil {
		return nil, storageErr("list magazines", err)
	}
	return magazines, nil
}

// Articles lists the magazine's articles in insertion order. The Author
// and Magazine back-references are left nil.
func (r *MagazineRepository) Articles(ctx context.Context, magazineID int64) ([]model.Article, error) {
	articles, err := model.Articles(r.db).
		Scopes(model.PublishedIn(magazineID), model.InsertionOrder(model.ArticlesTable)).
		All(ctx)
	if err != nil {
		return nil, storageErr("list magazine articles", err)
	}
	return articles, nil
}

// Contributors lists every author with at least one article in the
// magazine, once each, ordered by author id.
func (r *MagazineRepository) Contributors(ctx context.Context, magazineID int64) ([]model.Author, error) {
	authors, err := model.Authors(r.db).
		Join(model.JoinArticles).
		Scopes(scope.Distinct(), model.PublishedIn(magazineID), model.InsertionOrder(model.AuthorsTable)).
		All(ctx)
	if err != nil {
		return nil, storageErr("list magazine contributors", err)
	}
	return authors, nil
}

// ArticleTitles lists the title of every article in the magazine in
// insertion order. Repeated titles are kept.
func (r *MagazineRepository) ArticleTitles(ctx context.Context, magazineID int64) ([]string, error) {
	q := model.Articles(r.db).Scopes(model.PublishedIn(magazineID), model.InsertionOrder(model.ArticlesTable))
	titles, err := orm.Pluck[string](ctx, q, "title")
	if err != nil {
		return nil, storageErr("list magazine article titles", err)
	}
	return titles, nil
}

// ContributingAuthors lists the authors with more than
// model.ContributingAuthorThreshold articles in the magazine.
func (r *MagazineRepository) ContributingAuthors(ctx context.Context, magazineID int64) ([]model.Author, error) {
	authors, err := model.Authors(r.db).
		Join(model.JoinArticles).
		Scopes(
			model.PublishedIn(magazineID),
			scope.GroupBy(model.AuthorsTable+".id", model.AuthorsTable+".name"),
			scope.Having(fmt.Sprintf("COUNT(%s.id) > ?", model.ArticlesTable), model.ContributingAuthorThreshold),
			model.InsertionOrder(model.AuthorsTable),
		).
		All(ctx)
	if err != nil {
		return nil, storageErr("list contributing authors", err)
	}
	return authors, nil
}
