package repo

import (
	"context"
	"errors"

	"github.com/mickamy/pressroom/model"
	"github.com/mickamy/pressroom/orm"
)

// ArticleRepository creates articles, the link between authors and magazines.
type ArticleRepository struct {
	db orm.Querier
}

func NewArticleRepository(db orm.Querier) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Create inserts an article written by author for magazine. Both must
// already be persisted. The returned article keeps the given pointers as
// its back-references.
//
// The existence checks and the INSERT share one transaction. When the
// repository already wraps a *orm.Tx they join the caller's transaction.
func (r *ArticleRepository) Create(
	ctx context.Context, title, content string, author *model.Author, magazine *model.Magazine,
) (*model.Article, error) {
	if !author.Persisted() {
		return nil, &model.ReferenceError{Entity: "author"}
	}
	if !magazine.Persisted() {
		return nil, &model.ReferenceError{Entity: "magazine"}
	}

	a := &model.Article{
		Title:      title,
		Content:    content,
		AuthorID:   author.ID,
		MagazineID: magazine.ID,
		Author:     author,
		Magazine:   magazine,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	err := orm.InTransaction(ctx, r.db, func(q orm.Querier) error {
		if err := ensureExists(ctx, model.Authors(q), model.AuthorsTable, "author", author.ID); err != nil {
			return err
		}
		if err := ensureExists(ctx, model.Magazines(q), model.MagazinesTable, "magazine", magazine.ID); err != nil {
			return err
		}
		return model.Articles(q).Create(ctx, a)
	})
	if err != nil {
		var refErr *model.ReferenceError
		if errors.As(err, &refErr) {
			return nil, refErr
		}
		var storeErr *model.StorageError
		if errors.As(err, &storeErr) {
			return nil, storeErr
		}
		return nil, storageErr("create article", err)
	}
	return a, nil
}

// FindByID loads an article together with its author and magazine.
func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*model.Article, error) {
	a, err := model.Articles(r.db).Scopes(model.ByID(model.ArticlesTable, id)).First(ctx)
	if err != nil {
		return nil, lookupErr("find article", "article", id, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	author, err := NewAuthorRepository(r.db).FindByID(ctx, a.AuthorID)
	if err != nil {
		return nil, err
	}
	magazine, err := NewMagazineRepository(r.db).FindByID(ctx, a.MagazineID)
	if err != nil {
		return nil, err
	}
	a.Author = author
	a.Magazine = magazine
	return &a, nil
}

func ensureExists[T any](ctx context.Context, q *orm.Query[T], table, entity string, id int64) error {
	ok, err := q.Scopes(model.ByID(table, id)).Exists(ctx)
	if err != nil {
		return storageErr("check "+entity, err)
	}
	if !ok {
		return &model.ReferenceError{Entity: entity, ID: id}
	}
	return nil
}
