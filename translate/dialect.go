package translate

import (
	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/dialect"
)

// Dialect pairs a capability set with the strategy table of rendering
// hooks for one target database. Values are immutable and safely shared
// across concurrent translations.
type Dialect struct {
	caps  *dialect.Set
	hooks hooks
}

// Name returns the dialect name.
func (d *Dialect) Name() string { return d.caps.Name() }

// Caps returns the capability set.
func (d *Dialect) Caps() *dialect.Set { return d.caps }

// hooks is the per-dialect strategy table. A nil function means the core
// translator's default rendering applies. Hooks write through the
// translator they are handed and must not retain it; they carry no state
// of their own.
type hooks struct {
	// placeholder returns the bind placeholder for the i-th parameter
	// (1-based), optionally named.
	placeholder func(i int, name string) string

	// limit renders the vendor LIMIT/OFFSET emulation of a rows-only
	// fetch. Default: LIMIT <count> OFFSET <offset>.
	limit func(t *Translator, offset, count *int64)

	// arrayConstructor renders an ordered group of expressions as a
	// single array value. Unset means the dialect has no array
	// constructor, regardless of what the capability table says.
	arrayConstructor func(t *Translator, exprs []ast.Expression) error

	// groupBySummarization renders a dialect-specific summarization
	// spelling when the native prefix form (ROLLUP(a, b)) is unavailable.
	groupBySummarization func(t *Translator, s *ast.Summarization) error

	// constantPartitionItem renders a provably-constant, non-literal
	// expression in place of a literal window partition key.
	constantPartitionItem func(t *Translator, lit *ast.Literal)

	// singleRowFromTable is the single-row table spelled into the FROM
	// clause when the dialect cannot select without one.
	singleRowFromTable string

	// searchCycleIgnorable marks the SEARCH/CYCLE clauses of recursive
	// CTEs as droppable ordering hints rather than hard requirements.
	searchCycleIgnorable bool

	// parenthesizedSetOperands marks the dialect as accepting a
	// parenthesized query as a set operation operand. Without it, set
	// operations chain left to right at equal precedence and operands
	// cannot carry their own ORDER BY or fetch.
	parenthesizedSetOperands bool
}

// ForSet assembles a Dialect for an externally built capability set, for
// example one configured through a dialect.Registry. The hook table is
// chosen by the set's dialect name; unknown names get ANSI defaults.
func ForSet(caps *dialect.Set) *Dialect {
	var h hooks
	switch caps.Name() {
	case dialect.Postgres:
		h = postgresHooks()
	case dialect.MySQL:
		h = mysqlHooks()
	case dialect.SQLite:
		h = sqliteHooks()
	default:
		h = hooks{parenthesizedSetOperands: true}
	}
	return &Dialect{caps: caps, hooks: h}
}

// Postgres returns the PostgreSQL dialect at a server version, using the
// shipped capability defaults.
func Postgres(v dialect.Version) (*Dialect, error) {
	caps, err := dialect.DefaultSet(dialect.Postgres, v)
	if err != nil {
		return nil, err
	}
	return &Dialect{caps: caps, hooks: postgresHooks()}, nil
}

// MySQL returns the MySQL dialect at a server version, using the shipped
// capability defaults.
func MySQL(v dialect.Version) (*Dialect, error) {
	caps, err := dialect.DefaultSet(dialect.MySQL, v)
	if err != nil {
		return nil, err
	}
	return &Dialect{caps: caps, hooks: mysqlHooks()}, nil
}

// SQLite returns the SQLite dialect at a library version, using the
// shipped capability defaults.
func SQLite(v dialect.Version) (*Dialect, error) {
	caps, err := dialect.DefaultSet(dialect.SQLite, v)
	if err != nil {
		return nil, err
	}
	return &Dialect{caps: caps, hooks: sqliteHooks()}, nil
}
