package model

import (
	"database/sql"

	"github.com/mickamy/pressroom/orm"
	"github.com/mickamy/pressroom/scope"
)

// Table names, derived from the entity types.
var (
	AuthorsTable   = orm.TableNameFor[Author]()
	MagazinesTable = orm.TableNameFor[Magazine]()
	ArticlesTable  = orm.TableNameFor[Article]()
)

// JoinArticles is the join registered on Authors and Magazines.
const JoinArticles = "Articles"

var authorsColumns = []string{"id", "name"}

func scanAuthor(rows *sql.Rows) (Author, error) {
	var v Author
	dest, err := scanTargets(rows, map[string]any{
		"id":   &v.ID,
		"name": &v.Name,
	})
	if err != nil {
		return v, err
	}
	err = rows.Scan(dest...)
	return v, err //nolint:wrapcheck // pass through
}

func authorColumnValuePairs(v *Author, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "name"}, []any{v.ID, v.Name}
	}
	return []string{"name"}, []any{v.Name}
}

func setAuthorPK(v *Author, id int64) { v.ID = id }

// Authors returns a query over the authors table. The "Articles" join
// links each author to the articles they wrote.
func Authors(db orm.Querier) *orm.Query[Author] {
	q := orm.NewQuery[Author](db, AuthorsTable, authorsColumns, "id", scanAuthor, authorColumnValuePairs, setAuthorPK)
	q.RegisterJoin(JoinArticles, orm.JoinConfig{
		TargetTable:  ArticlesTable,
		TargetColumn: "author_id",
		SourceTable:  AuthorsTable,
		SourceColumn: "id",
	})
	return q
}

var magazinesColumns = []string{"id", "name", "category"}

func scanMagazine(rows *sql.Rows) (Magazine, error) {
	var v Magazine
	dest, err := scanTargets(rows, map[string]any{
		"id":       &v.ID,
		"name":     &v.Name,
		"category": &v.Category,
	})
	if err != nil {
		return v, err
	}
	err = rows.Scan(dest...)
	return v, err //nolint:wrapcheck // pass through
}

func magazineColumnValuePairs(v *Magazine, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "name", "category"}, []any{v.ID, v.Name, v.Category}
	}
	return []string{"name", "category"}, []any{v.Name, v.Category}
}

func setMagazinePK(v *Magazine, id int64) { v.ID = id }

// Magazines returns a query over the magazines table. The "Articles" join
// links each magazine to the articles it published.
func Magazines(db orm.Querier) *orm.Query[Magazine] {
	q := orm.NewQuery[Magazine](db, MagazinesTable, magazinesColumns, "id", scanMagazine, magazineColumnValuePairs, setMagazinePK)
	q.RegisterJoin(JoinArticles, orm.JoinConfig{
		TargetTable:  ArticlesTable,
		TargetColumn: "magazine_id",
		SourceTable:  MagazinesTable,
		SourceColumn: "id",
	})
	return q
}

var articlesColumns = []string{"id", "title", "content", "author_id", "magazine_id"}

func scanArticle(rows *sql.Rows) (Article, error) {
	var v Article
	dest, err := scanTargets(rows, map[string]any{
		"id":          &v.ID,
		"title":       &v.Title,
		"content":     &v.Content,
		"author_id":   &v.AuthorID,
		"magazine_id": &v.MagazineID,
	})
	if err != nil {
		return v, err
	}
	err = rows.Scan(dest...)
	return v, err //nolint:wrapcheck // pass through
}

func articleColumnValuePairs(v *Article, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "title", "content", "author_id", "magazine_id"},
			[]any{v.ID, v.Title, v.Content, v.AuthorID, v.MagazineID}
	}
	return []string{"title", "content", "author_id", "magazine_id"},
		[]any{v.Title, v.Content, v.AuthorID, v.MagazineID}
}

func setArticlePK(v *Article, id int64) { v.ID = id }

// Articles returns a query over the articles table.
func Articles(db orm.Querier) *orm.Query[Article] {
	return orm.NewQuery[Article](db, ArticlesTable, articlesColumns, "id", scanArticle, articleColumnValuePairs, setArticlePK)
}

var articleSummariesColumns = []string{"id", "title", "content", "magazine_id"}

func scanArticleSummary(rows *sql.Rows) (ArticleSummary, error) {
	var v ArticleSummary
	dest, err := scanTargets(rows, map[string]any{
		"id":          &v.ID,
		"title":       &v.Title,
		"content":     &v.Content,
		"magazine_id": &v.MagazineID,
	})
	if err != nil {
		return v, err
	}
	err = rows.Scan(dest...)
	return v, err //nolint:wrapcheck // pass through
}

// ArticleSummaries returns a read-only projection of the articles table.
func ArticleSummaries(db orm.Querier) *orm.Query[ArticleSummary] {
	return orm.NewQuery[ArticleSummary](
		db, orm.TableNameFor[ArticleSummary](), articleSummariesColumns, "id", scanArticleSummary, nil, nil,
	)
}

// scanTargets maps the result columns onto field pointers. Unknown columns
// are scanned into a throwaway value.
func scanTargets(rows *sql.Rows, fields map[string]any) ([]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err //nolint:wrapcheck // pass through
	}
	dest := make([]any, len(cols))
	for i, col := range cols {
		if p, ok := fields[col]; ok {
			dest[i] = p
		} else {
			dest[i] = new(any)
		}
	}
	return dest, nil
}

// WrittenBy restricts article rows to a single author.
func WrittenBy(authorID int64) scope.Scope {
	return scope.Where(ArticlesTable+".author_id = ?", authorID)
}

// PublishedIn restricts article rows to a single magazine.
func PublishedIn(magazineID int64) scope.Scope {
	return scope.Where(ArticlesTable+".magazine_id = ?", magazineID)
}

// InsertionOrder orders rows of table by primary key.
func InsertionOrder(table string) scope.Scope {
	return scope.OrderBy(table + ".id")
}

// ByID restricts rows of table to a single primary key.
func ByID(table string, id int64) scope.Scope {
	return scope.Where(table+".id = ?", id)
}

// Page selects a window of rows. A zero Limit selects every row.
type Page struct {
	Limit  int
	Offset int
}

// Scopes returns the insertion-order scopes for table, limited to the page.
func (p Page) Scopes(table string) scope.Scopes {
	ss := scope.Combine(InsertionOrder(table))
	if p.Limit <= 0 {
		return ss
	}
	return ss.Append(scope.Limit(p.Limit), scope.Offset(max(p.Offset, 0)))
}
