package exec

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/plancache"
	"github.com/froque/sqlast/translate"
)

// Driver executes statements against one database through its dialect.
// Safe for concurrent use.
type Driver struct {
	conn
	db *sql.DB
}

type conn struct {
	ex      execQuerier
	dialect *translate.Dialect
	cache   *plancache.Cache
}

// execQuerier is the subset of *sql.DB and *sql.Tx the executor needs.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Option configures a Driver.
type Option func(*Driver)

// WithPlanCache shares an externally owned plan cache across drivers.
func WithPlanCache(c *plancache.Cache) Option {
	return func(d *Driver) { d.conn.cache = c }
}

// Open opens a database for the dialect. The dialect name doubles as the
// database/sql driver name; see the drivers file for what is registered.
func Open(d *translate.Dialect, source string, opts ...Option) (*Driver, error) {
	db, err := sql.Open(d.Name(), source)
	if err != nil {
		return nil, fmt.Errorf("exec: open %s: %w", d.Name(), err)
	}
	return OpenDB(d, db, opts...), nil
}

// OpenDB wraps an existing database handle.
func OpenDB(d *translate.Dialect, db *sql.DB, opts ...Option) *Driver {
	drv := &Driver{
		conn: conn{ex: db, dialect: d},
		db:   db,
	}
	for _, opt := range opts {
		opt(drv)
	}
	if drv.conn.cache == nil {
		drv.conn.cache = plancache.New()
	}
	return drv
}

// DB returns the underlying database handle.
func (d *Driver) DB() *sql.DB { return d.db }

// Dialect returns the dialect the driver translates for.
func (d *Driver) Dialect() *translate.Dialect { return d.conn.dialect }

// PlanCache returns the driver's plan cache.
func (d *Driver) PlanCache() *plancache.Cache { return d.conn.cache }

// Close closes the underlying database handle.
func (d *Driver) Close() error { return d.db.Close() }

// Tx starts a transaction. Statements run through the transaction reuse the
// driver's dialect and plan cache.
func (d *Driver) Tx(ctx context.Context) (*Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with options.
func (d *Driver) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("exec: begin: %w", err)
	}
	return &Tx{
		conn: conn{ex: tx, dialect: d.conn.dialect, cache: d.conn.cache},
		tx:   tx,
	}, nil
}

// Tx is an open transaction.
type Tx struct {
	conn
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error { return t.tx.Commit() }

// Rollback aborts the transaction.
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// Translate renders the statement for the connection's dialect without
// executing it.
func (c conn) Translate(s ast.Statement) (*translate.Result, error) {
	return c.cache.Translate(c.dialect, s)
}

// Exec translates and executes a statement that returns no rows.
func (c conn) Exec(ctx context.Context, s ast.Statement) (sql.Result, error) {
	res, err := c.Translate(s)
	if err != nil {
		return nil, err
	}
	out, err := c.ex.ExecContext(ctx, res.SQL, res.Args()...)
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}
	return out, nil
}

// Query translates and executes a statement that returns rows. The caller
// owns the returned rows and must close them.
func (c conn) Query(ctx context.Context, s ast.Statement) (*sql.Rows, error) {
	res, err := c.Translate(s)
	if err != nil {
		return nil, err
	}
	rows, err := c.ex.QueryContext(ctx, res.SQL, res.Args()...)
	if err != nil {
		return nil, fmt.Errorf("exec: query: %w", err)
	}
	return rows, nil
}

// QueryRow translates and executes a statement expected to return at most
// one row.
func (c conn) QueryRow(ctx context.Context, s ast.Statement) (*sql.Row, error) {
	res, err := c.Translate(s)
	if err != nil {
		return nil, err
	}
	return c.ex.QueryRowContext(ctx, res.SQL, res.Args()...), nil
}
