package orm

import (
	"context"
	"database/sql"
)

// Querier runs statements for a table query. Repositories hold a Querier so
// the same code works on a pooled *DB or inside a caller's *Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	dialect() Dialect
}

// Logger receives every statement before it is sent to the database.
type Logger interface {
	Log(ctx context.Context, query string, args ...any)
}

// session is the state shared by a DB and the transactions it starts.
type session struct {
	d      Dialect
	logger Logger
}

func (s session) dialect() Dialect { return s.d }

func (s session) log(ctx context.Context, query string, args []any) {
	if s.logger != nil {
		s.logger.Log(ctx, query, args...)
	}
}

// DB is a connection pool bound to one Dialect.
type DB struct {
	session
	raw *sql.DB
}

// New binds db to d. The caller keeps ownership of db until Close.
func New(db *sql.DB, d Dialect) *DB {
	return &DB{session: session{d: d}, raw: db}
}

// Debug returns a DB sharing the same pool that passes every statement to
// l. Transactions begun on the returned DB log as well.
func (db *DB) Debug(l Logger) *DB {
	return &DB{session: session{d: db.d, logger: l}, raw: db.raw}
}

// Dialect reports the Dialect the DB was bound to.
func (db *DB) Dialect() Dialect { return db.d }

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	db.log(ctx, query, args)
	return db.raw.QueryContext(ctx, query, args...) //nolint:wrapcheck // thin wrapper
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	db.log(ctx, query, args)
	return db.raw.ExecContext(ctx, query, args...) //nolint:wrapcheck // thin wrapper
}

// Begin starts a transaction on one pooled connection.
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	tx, err := db.raw.BeginTx(ctx, nil)
	if err != nil {
		return nil, err //nolint:wrapcheck // thin wrapper
	}
	return &Tx{session: db.session, raw: tx}, nil
}

// Transaction commits when fn returns nil and rolls back when fn returns an
// error or panics. A panic is re-raised after the rollback.
func (db *DB) Transaction(ctx context.Context, fn func(tx *Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the pool.
func (db *DB) Close() error { return db.raw.Close() } //nolint:wrapcheck // thin wrapper

// Tx is an open transaction. It satisfies Querier, so table queries built
// on it run inside the transaction.
type Tx struct {
	session
	raw *sql.Tx
}

func (tx *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	tx.log(ctx, query, args)
	return tx.raw.QueryContext(ctx, query, args...) //nolint:wrapcheck // thin wrapper
}

func (tx *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx.log(ctx, query, args)
	return tx.raw.ExecContext(ctx, query, args...) //nolint:wrapcheck // thin wrapper
}

func (tx *Tx) Commit() error   { return tx.raw.Commit() }   //nolint:wrapcheck // thin wrapper
func (tx *Tx) Rollback() error { return tx.raw.Rollback() } //nolint:wrapcheck // thin wrapper

// InTransaction runs fn in a new transaction when q is a *DB. Any other
// Querier, typically a *Tx owned by the caller, is passed to fn as is so
// the work joins the caller's transaction.
func InTransaction(ctx context.Context, q Querier, fn func(q Querier) error) error {
	db, ok := q.(*DB)
	if !ok {
		return fn(q)
	}
	return db.Transaction(ctx, func(tx *Tx) error { return fn(tx) })
}
