package orm

import "errors"

var (
	// ErrNotFound is returned by First when no row matches. Repositories
	// translate it into their own not-found error.
	ErrNotFound = errors.New("orm: not found")

	// ErrReadOnly is returned by Create on a projection query that was
	// built without column-value and primary-key funcs.
	ErrReadOnly = errors.New("orm: query is read-only")

	// ErrNoResult is returned when a COUNT or INSERT ... RETURNING
	// statement produces no row.
	ErrNoResult = errors.New("orm: statement returned no row")
)
