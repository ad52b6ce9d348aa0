package orm

import (
	"reflect"

	"github.com/mickamy/pressroom/internal/naming"
)

// TableNamer can be implemented by model structs to override the
// auto-derived table name.
type TableNamer interface {
	TableName() string
}

// ResolveTableName returns the table name for type T.
// If T implements TableNamer (value or pointer receiver), that name is used;
// otherwise fallback is returned.
func ResolveTableName[T any](fallback string) string {
	var zero T
	if tn, ok := any(&zero).(TableNamer); ok {
		return tn.TableName()
	}
	return fallback
}

// TableNameFor returns the table name for type T, falling back to the
// pluralized snake_case form of the type name ("Author" -> "authors").
func TableNameFor[T any]() string {
	return ResolveTableName[T](naming.TableName(reflect.TypeFor[T]().Name()))
}
