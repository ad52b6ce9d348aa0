package model

// Author writes articles. Authors are append-only once persisted.
type Author struct {
	ID   int64  `db:"id,primaryKey"`
	Name string `db:"name"`
}

// Validate checks the author's fields.
func (a *Author) Validate() error {
	return checkLength("author", "name", a.Name, AuthorNameMin, AuthorNameMax)
}

// Persisted reports whether the author has been assigned an identity.
func (a *Author) Persisted() bool { return a != nil && a.ID != 0 }
