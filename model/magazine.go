package model

// Magazine publishes articles under a single category.
type Magazine struct {
	ID       int64  `db:"id,primaryKey"`
	Name     string `db:"name"`
	Category string `db:"category"`
}

// Validate checks the magazine's fields.
func (m *Magazine) Validate() error {
	if err := checkLength("magazine", "name", m.Name, MagazineNameMin, MagazineNameMax); err != nil {
		return err
	}
	return checkLength("magazine", "category", m.Category, MagazineCategoryMin, MagazineCategoryMax)
}

// Persisted reports whether the magazine has been assigned an identity.
func (m *Magazine) Persisted() bool { return m != nil && m.ID != 0 }
