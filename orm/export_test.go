package orm

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNoRowsFromTestQuerier is what TestQuerier.QueryContext returns unless
// QueryErr is set. TestQuerier never produces *sql.Rows.
var ErrNoRowsFromTestQuerier = errors.New("orm: test querier returns no rows")

// TestQuerier records the SQL text the query builder emits. Inserts
// receive sequential ids starting at 1.
type TestQuerier struct {
	D        Dialect
	QueryErr error
	Queries  []TestQuery

	lastID int64
}

// TestQuery is one recorded statement.
type TestQuery struct {
	SQL  string
	Args []any
}

func NewTestQuerier(d Dialect) *TestQuerier {
	return &TestQuerier{D: d}
}

func (tq *TestQuerier) QueryContext(_ context.Context, query string, args ...any) (*sql.Rows, error) {
	tq.record(query, args)
	if tq.QueryErr != nil {
		return nil, tq.QueryErr
	}
	return nil, ErrNoRowsFromTestQuerier
}

func (tq *TestQuerier) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	tq.record(query, args)
	tq.lastID++
	return insertResult(tq.lastID), nil
}

// LastQuery returns the statement recorded last. It panics when nothing
// was recorded.
func (tq *TestQuerier) LastQuery() TestQuery {
	return tq.Queries[len(tq.Queries)-1]
}

func (tq *TestQuerier) record(query string, args []any) {
	tq.Queries = append(tq.Queries, TestQuery{SQL: query, Args: args})
}

func (tq *TestQuerier) dialect() Dialect { return tq.D }

var _ Querier = (*TestQuerier)(nil)

type insertResult int64

func (r insertResult) LastInsertId() (int64, error) { return int64(r), nil }
func (insertResult) RowsAffected() (int64, error)   { return 1, nil }
