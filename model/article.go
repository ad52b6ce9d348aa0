package model

// Article links one Author to one Magazine. Inserting an article is the
// only way an author becomes related to a magazine.
type Article struct {
	ID         int64  `db:"id,primaryKey"`
	Title      string `db:"title"`
	Content    string `db:"content"`
	AuthorID   int64  `db:"author_id"`
	MagazineID int64  `db:"magazine_id"`

	Author   *Author   `db:"-"`
	Magazine *Magazine `db:"-"`
}

// Validate checks title and content. References are checked by the store.
func (a *Article) Validate() error {
	if err := checkLength("article", "title", a.Title, ArticleTitleMin, ArticleTitleMax); err != nil {
		return err
	}
	return checkLength("article", "content", a.Content, ArticleContentMin, 0)
}

// ArticleSummary is an article as listed for its author.
type ArticleSummary struct {
	ID         int64  `db:"id,primaryKey"`
	Title      string `db:"title"`
	Content    string `db:"content"`
	MagazineID int64  `db:"magazine_id"`
}

// TableName maps summaries onto the articles table.
func (ArticleSummary) TableName() string { return "articles" }

// ContributingAuthorThreshold is the number of articles an author must
// exceed in a magazine to count as a contributing author.
const ContributingAuthorThreshold = 2
