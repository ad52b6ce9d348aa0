package orm

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mickamy/pressroom/scope"
)

// ScanFunc scans a single row into T.
type ScanFunc[T any] func(rows *sql.Rows) (T, error)

// ColumnValueFunc extracts column names and their values from a *T.
// When includesPK is false the primary key column is excluded (for INSERT
// with auto-increment).
type ColumnValueFunc[T any] func(t *T, includesPK bool) (columns []string, values []any)

// SetPKFunc sets the auto-generated primary key on *T after INSERT.
// May be nil when the primary key is not auto-generated.
type SetPKFunc[T any] func(t *T, id int64)

// JoinConfig holds the metadata needed to build a JOIN clause at runtime.
type JoinConfig struct {
	TargetTable  string
	TargetColumn string
	SourceTable  string
	SourceColumn string
}

// Query represents a pending query against a single table.
// All builder methods return a new Query; the receiver is never modified.
type Query[T any] struct {
	db          Querier
	table       string
	columns     []string
	pk          string
	scan        ScanFunc[T]
	colValPairs ColumnValueFunc[T]
	setPK       SetPKFunc[T]

	wheres   []whereClause
	havings  []whereClause
	orderBys []string
	groupBys []string
	joins    []string
	selects  *string
	distinct bool
	limit    *int
	offset   *int

	joinDefs map[string]JoinConfig
}

type whereClause struct {
	clause string
	args   []any
}

// NewQuery is called by table factory functions. colValPairs may be nil
// for read-only projections; Create then fails.
func NewQuery[T any](
	db Querier,
	table string,
	columns []string,
	pk string,
	scan ScanFunc[T],
	colValPairs ColumnValueFunc[T],
	setPK SetPKFunc[T],
) *Query[T] {
	return &Query[T]{
		db:          db,
		table:       table,
		columns:     columns,
		pk:          pk,
		scan:        scan,
		colValPairs: colValPairs,
		setPK:       setPK,
	}
}

// RegisterJoin registers a named join definition for use with Join.
func (q *Query[T]) RegisterJoin(name string, cfg JoinConfig) {
	if q.joinDefs == nil {
		q.joinDefs = make(map[string]JoinConfig)
	}
	q.joinDefs[name] = cfg
}

// Table returns the table the query reads from.
func (q *Query[T]) Table() string { return q.table }

// clone returns a shallow copy with slices copied to avoid aliasing.
func (q *Query[T]) clone() *Query[T] {
	q2 := *q
	q2.wheres = append([]whereClause(nil), q.wheres...)
	q2.havings = append([]whereClause(nil), q.havings...)
	q2.orderBys = append([]string(nil), q.orderBys...)
	q2.groupBys = append([]string(nil), q.groupBys...)
	q2.joins = append([]string(nil), q.joins...)
	return &q2
}

// --- Builder methods ---

func (q *Query[T]) Where(clause string, args ...any) *Query[T] {
	q2 := q.clone()
	q2.wheres = append(q2.wheres, whereClause{clause, args})
	return q2
}

func (q *Query[T]) OrderBy(clause string) *Query[T] {
	q2 := q.clone()
	q2.orderBys = append(q2.orderBys, clause)
	return q2
}

func (q *Query[T]) Limit(n int) *Query[T] {
	q2 := q.clone()
	q2.limit = &n
	return q2
}

func (q *Query[T]) Offset(n int) *Query[T] {
	q2 := q.clone()
	q2.offset = &n
	return q2
}

func (q *Query[T]) Select(columns string) *Query[T] {
	q2 := q.clone()
	q2.selects = &columns
	return q2
}

// Distinct turns the query into SELECT DISTINCT.
func (q *Query[T]) Distinct() *Query[T] {
	q2 := q.clone()
	q2.distinct = true
	return q2
}

// GroupBy appends a GROUP BY expression.
func (q *Query[T]) GroupBy(clause string) *Query[T] {
	q2 := q.clone()
	q2.groupBys = append(q2.groupBys, clause)
	return q2
}

// Having appends a HAVING condition. Conditions are joined with AND.
func (q *Query[T]) Having(clause string, args ...any) *Query[T] {
	q2 := q.clone()
	q2.havings = append(q2.havings, whereClause{clause, args})
	return q2
}

// Join adds an INNER JOIN for the named relation.
func (q *Query[T]) Join(name string) *Query[T] {
	return q.addJoin("INNER JOIN", name)
}

func (q *Query[T]) addJoin(joinType, name string) *Query[T] {
	cfg, ok := q.joinDefs[name]
	if !ok {
		return q
	}
	clause := fmt.Sprintf(
		"%s %s ON %s.%s = %s.%s",
		joinType,
		q.qi(cfg.TargetTable),
		q.qi(cfg.TargetTable), q.qi(cfg.TargetColumn),
		q.qi(cfg.SourceTable), q.qi(cfg.SourceColumn),
	)
	q2 := q.clone()
	q2.joins = append(q2.joins, clause)
	return q2
}

// Scopes applies the given scope.Scope values to the query.
func (q *Query[T]) Scopes(scopes ...scope.Scope) *Query[T] {
	q2 := q.clone()
	for _, s := range scopes {
		s.Apply(q2)
	}
	return q2
}

// --- scope.Applier implementation ---

func (q *Query[T]) ApplyWhere(clause string, args []any) {
	q.wheres = append(q.wheres, whereClause{clause, args})
}

func (q *Query[T]) ApplyOrderBy(clause string) {
	q.orderBys = append(q.orderBys, clause)
}

func (q *Query[T]) ApplyLimit(n int)  { q.limit = &n }
func (q *Query[T]) ApplyOffset(n int) { q.offset = &n }

func (q *Query[T]) ApplyDistinct() { q.distinct = true }

func (q *Query[T]) ApplyGroupBy(clause string) {
	q.groupBys = append(q.groupBys, clause)
}

func (q *Query[T]) ApplyHaving(clause string, args []any) {
	q.havings = append(q.havings, whereClause{clause, args})
}

var _ scope.Applier = (*Query[any])(nil)

// --- Terminal methods ---

// All executes a SELECT and returns all matching rows.
func (q *Query[T]) All(ctx context.Context) ([]T, error) {
	query, args := q.buildSelect()
	query = q.rewrite(query)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err //nolint:wrapcheck // pass through
	}
	defer func() { _ = rows.Close() }()

	var result []T
	for rows.Next() {
		item, err := q.scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err //nolint:wrapcheck // pass through
	}
	return result, nil
}

// First executes a SELECT with LIMIT 1 and returns the first row.
// Returns ErrNotFound if no rows match.
func (q *Query[T]) First(ctx context.Context) (T, error) {
	items, err := q.Limit(1).All(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(items) == 0 {
		var zero T
		return zero, ErrNotFound
	}
	return items[0], nil
}

// Count returns the number of rows the query would return.
// DISTINCT and GROUP BY queries are counted through a subquery.
func (q *Query[T]) Count(ctx context.Context) (int64, error) {
	query, args := q.buildCount()
	query = q.rewrite(query)

	var count int64
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err //nolint:wrapcheck // pass through
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err //nolint:wrapcheck // pass through
		}
		return 0, fmt.Errorf("%w: count on %s", ErrNoResult, q.table)
	}
	if err := rows.Scan(&count); err != nil {
		return 0, err //nolint:wrapcheck // pass through
	}
	return count, rows.Err() //nolint:wrapcheck // pass through
}

// Exists returns true if at least one row matches the current query conditions.
func (q *Query[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Limit(1).Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new row. If setPK is set, the primary key is populated
// via RETURNING (PostgreSQL) or LastInsertId (MySQL, SQLite).
func (q *Query[T]) Create(ctx context.Context, t *T) error {
	if q.colValPairs == nil {
		return fmt.Errorf("%w: %s", ErrReadOnly, q.table)
	}
	includesPK := q.setPK == nil
	columns, values := q.colValPairs(t, includesPK)

	query := q.rewrite(q.buildInsert(columns))

	d := q.db.dialect()
	if d.UseReturning() && q.setPK != nil {
		query += d.ReturningClause(q.pk)
		rows, err := q.db.QueryContext(ctx, query, values...)
		if err != nil {
			return err //nolint:wrapcheck // pass through
		}
		defer func() { _ = rows.Close() }()
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return err //nolint:wrapcheck // pass through
			}
			return fmt.Errorf("%w: insert into %s", ErrNoResult, q.table)
		}
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err //nolint:wrapcheck // pass through
		}
		q.setPK(t, id)
		return rows.Err() //nolint:wrapcheck // pass through
	}

	result, err := q.db.ExecContext(ctx, query, values...)
	if err != nil {
		return err //nolint:wrapcheck // pass through
	}

	if q.setPK != nil {
		id, err := result.LastInsertId()
		if err != nil {
			return err //nolint:wrapcheck // pass through
		}
		q.setPK(t, id)
	}
	return nil
}

// Pluck selects a single column from every matching row.
// Unqualified column names are qualified with the query's table.
func Pluck[V, T any](ctx context.Context, q *Query[T], column string) ([]V, error) {
	if !strings.Contains(column, ".") {
		column = q.qi(q.table) + "." + q.qi(column)
	}
	query, args := q.Select(column).buildSelect()
	query = q.rewrite(query)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err //nolint:wrapcheck // pass through
	}
	defer func() { _ = rows.Close() }()

	var result []V
	for rows.Next() {
		var v V
		if err := rows.Scan(&v); err != nil {
			return nil, err //nolint:wrapcheck // pass through
		}
		result = append(result, v)
	}
	return result, rows.Err() //nolint:wrapcheck // pass through
}

// --- SQL building ---

// qi quotes an identifier (table/column name) using the dialect.
func (q *Query[T]) qi(name string) string {
	return q.db.dialect().QuoteIdent(name)
}

// quoteColumns joins column names with dialect-aware quoting. Columns are
// qualified with the table name when the query joins other tables.
func (q *Query[T]) quoteColumns(cols []string, qualify bool) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		if qualify {
			quoted[i] = q.qi(q.table) + "." + q.qi(c)
		} else {
			quoted[i] = q.qi(c)
		}
	}
	return strings.Join(quoted, ", ")
}

func (q *Query[T]) buildSelect() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if q.distinct {
		b.WriteString("DISTINCT ")
	}

	if q.selects != nil {
		b.WriteString(*q.selects)
	} else {
		b.WriteString(q.quoteColumns(q.columns, len(q.joins) > 0))
	}

	b.WriteString(" FROM ")
	b.WriteString(q.qi(q.table))

	for _, j := range q.joins {
		b.WriteByte(' ')
		b.WriteString(j)
	}

	args := appendConditions(&b, " WHERE ", q.wheres)

	if len(q.groupBys) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(q.groupBys, ", "))
	}

	args = append(args, appendConditions(&b, " HAVING ", q.havings)...)

	if len(q.orderBys) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orderBys, ", "))
	}

	q.appendLimitOffset(&b)

	return b.String(), args
}

func (q *Query[T]) buildCount() (string, []any) {
	if q.distinct || len(q.groupBys) > 0 {
		inner, args := q.buildSelect()
		return "SELECT COUNT(*) FROM (" + inner + ") AS " + q.qi("counted"), args
	}

	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(q.qi(q.table))

	for _, j := range q.joins {
		b.WriteByte(' ')
		b.WriteString(j)
	}

	args := appendConditions(&b, " WHERE ", q.wheres)
	q.appendLimitOffset(&b)

	return b.String(), args
}

func (q *Query[T]) buildInsert(columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		q.qi(q.table),
		q.quoteColumns(columns, false),
		strings.Join(placeholders, ", "),
	)
}

func (q *Query[T]) appendLimitOffset(b *strings.Builder) {
	if q.limit != nil {
		fmt.Fprintf(b, " LIMIT %d", *q.limit)
	}
	if q.offset != nil {
		fmt.Fprintf(b, " OFFSET %d", *q.offset)
	}
}

// appendConditions writes keyword followed by the AND-joined clauses and
// returns their args in order. Nothing is written for an empty list.
func appendConditions(b *strings.Builder, keyword string, clauses []whereClause) []any {
	if len(clauses) == 0 {
		return nil
	}

	var args []any
	b.WriteString(keyword)
	for i, w := range clauses {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(w.clause)
		args = append(args, w.args...)
	}
	return args
}

// rewrite converts ? placeholders to dialect-specific placeholders.
// For MySQL and SQLite ? is kept. For PostgreSQL, ? becomes $1, $2, etc.
func (q *Query[T]) rewrite(query string) string {
	d := q.db.dialect()
	if d.Placeholder(1) == "?" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))
	idx := 1
	for i := range len(query) {
		if query[i] == '?' {
			b.WriteString(d.Placeholder(idx))
			idx++
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}
