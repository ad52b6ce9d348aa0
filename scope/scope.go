package scope

import "strings"

// Applier is implemented by query builders to receive scope fragments.
// This interface lives in the scope package so that orm can import scope
// without creating circular dependencies.
type Applier interface {
	ApplyWhere(clause string, args []any)
	ApplyOrderBy(clause string)
	ApplyLimit(n int)
	ApplyOffset(n int)
	ApplyDistinct()
	ApplyGroupBy(clause string)
	ApplyHaving(clause string, args []any)
}

type scopeKind int

const (
	kindWhere scopeKind = iota
	kindOrderBy
	kindLimit
	kindOffset
	kindDistinct
	kindGroupBy
	kindHaving
)

// Scope represents a single query condition fragment.
// Scopes are immutable and safe to reuse across queries.
type Scope struct {
	kind   scopeKind
	clause string
	args   []any
	n      int
}

// Apply dispatches this Scope to the given Applier.
func (s Scope) Apply(a Applier) {
	switch s.kind {
	case kindWhere:
		a.ApplyWhere(s.clause, s.args)
	case kindOrderBy:
		a.ApplyOrderBy(s.clause)
	case kindLimit:
		a.ApplyLimit(s.n)
	case kindOffset:
		a.ApplyOffset(s.n)
	case kindDistinct:
		a.ApplyDistinct()
	case kindGroupBy:
		a.ApplyGroupBy(s.clause)
	case kindHaving:
		a.ApplyHaving(s.clause, s.args)
	}
}

// Where returns a Scope that adds a WHERE clause fragment.
//
//	scope.Where("articles.author_id = ?", authorID)
func Where(clause string, args ...any) Scope {
	return Scope{kind: kindWhere, clause: clause, args: args}
}

// OrderBy returns a Scope that sets the ORDER BY clause.
//
//	scope.OrderBy("articles.id")
func OrderBy(clause string) Scope {
	return Scope{kind: kindOrderBy, clause: clause}
}

// Limit returns a Scope that sets the LIMIT.
func Limit(n int) Scope {
	return Scope{kind: kindLimit, n: n}
}

// Offset returns a Scope that sets the OFFSET.
func Offset(n int) Scope {
	return Scope{kind: kindOffset, n: n}
}

// Distinct returns a Scope that turns the query into SELECT DISTINCT.
func Distinct() Scope {
	return Scope{kind: kindDistinct}
}

// GroupBy returns a Scope that groups rows by the given expressions.
//
//	scope.GroupBy("authors.id", "authors.name")
func GroupBy(columns ...string) Scope {
	return Scope{kind: kindGroupBy, clause: strings.Join(columns, ", ")}
}

// Having returns a Scope that filters groups.
//
//	scope.Having("COUNT(articles.id) > ?", 2)
func Having(clause string, args ...any) Scope {
	return Scope{kind: kindHaving, clause: clause, args: args}
}

// Scopes is a named slice of Scope, useful for conditionally building
// up a set of scopes.
type Scopes []Scope

// Append adds scopes and returns a new Scopes. The receiver is not modified.
func (ss Scopes) Append(scopes ...Scope) Scopes {
	return append(append(Scopes(nil), ss...), scopes...)
}

// Combine creates a Scopes from the given scopes.
//
//	scope.Combine(scope.OrderBy("authors.id")).Append(scope.Limit(20))
func Combine(scopes ...Scope) Scopes {
	return Scopes(scopes)
}
