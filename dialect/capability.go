package dialect

import "fmt"

// Capability names a SQL feature a dialect may or may not support.
type Capability string

// Known capabilities. Each names one dialect-variable decision the
// translator asks about.
const (
	// OffsetFetchClause is the ANSI OFFSET n ROWS FETCH FIRST n ROWS syntax.
	OffsetFetchClause Capability = "offset-fetch-clause"
	// FetchClauseTies is the WITH TIES extension of the fetch clause.
	FetchClauseTies Capability = "fetch-clause-ties"
	// FetchClausePercent is the PERCENT extension of the fetch clause.
	FetchClausePercent Capability = "fetch-clause-percent"
	// LimitClause is vendor LIMIT/OFFSET row limiting.
	LimitClause Capability = "limit-clause"
	// RowValueComparison is a row-value constructor in ordinary comparisons.
	RowValueComparison Capability = "row-value-comparison"
	// RowValueInSubquery is a row-value constructor as the test of an
	// IN (subquery) predicate.
	RowValueInSubquery Capability = "row-value-in-subquery"
	// RowValueQuantified is a row-value constructor with quantified
	// predicates (= ANY, > ALL).
	RowValueQuantified Capability = "row-value-quantified"
	// ArrayConstructor is an ARRAY[...] or equivalent row constructor in
	// the select list.
	ArrayConstructor Capability = "array-constructor"
	// SummarizationNative is native ROLLUP/CUBE grouping.
	SummarizationNative Capability = "summarization"
	// WindowFunctions is OVER-clause window function support.
	WindowFunctions Capability = "window-functions"
	// LiteralPartitionKey is accepting a bare literal as a window
	// partition item.
	LiteralPartitionKey Capability = "literal-partition-key"
	// SelectWithoutFrom is selecting literals with no FROM clause.
	SelectWithoutFrom Capability = "select-without-from"
	// WithClauseSupport is non-recursive common table expressions.
	WithClauseSupport Capability = "with-clause"
	// RecursiveCTE is WITH RECURSIVE support.
	RecursiveCTE Capability = "recursive-cte"
	// CTESearchClause is the SEARCH clause of recursive CTEs.
	CTESearchClause Capability = "cte-search-clause"
	// CTECycleClause is the CYCLE clause of recursive CTEs.
	CTECycleClause Capability = "cte-cycle-clause"
)

// Known holds every capability the translator may query.
var Known = []Capability{
	OffsetFetchClause,
	FetchClauseTies,
	FetchClausePercent,
	LimitClause,
	RowValueComparison,
	RowValueInSubquery,
	RowValueQuantified,
	ArrayConstructor,
	SummarizationNative,
	WindowFunctions,
	LiteralPartitionKey,
	SelectWithoutFrom,
	WithClauseSupport,
	RecursiveCTE,
	CTESearchClause,
	CTECycleClause,
}

var known = func() map[Capability]struct{} {
	m := make(map[Capability]struct{}, len(Known))
	for _, c := range Known {
		m[c] = struct{}{}
	}
	return m
}()

// Gate is one capability entry of a dialect table: either unconditionally
// enabled/disabled, or enabled from MinVersion onward.
type Gate struct {
	Enabled    bool
	MinVersion *Version // nil: no version gating
}

// Table maps capabilities to gates for one dialect. Capabilities absent
// from a table are treated as disabled.
type Table map[Capability]Gate

// merge returns a copy of t with o's entries laid over it.
func (t Table) merge(o Table) Table {
	out := make(Table, len(t))
	for c, g := range t {
		out[c] = g
	}
	for c, g := range o {
		out[c] = g
	}
	return out
}

// Set is an immutable capability set for one configured database.
// Construct with NewSet or DefaultSet; safe for concurrent use.
type Set struct {
	name    string
	version Version
	gates   map[Capability]Gate
}

// NewSet builds a capability set for the given dialect name and server
// version from a table. Table keys must be known capabilities; known
// capabilities missing from the table are disabled.
func NewSet(name string, version Version, table Table) (*Set, error) {
	gates := make(map[Capability]Gate, len(known))
	for c := range known {
		gates[c] = Gate{}
	}
	for c, g := range table {
		if _, ok := known[c]; !ok {
			return nil, fmt.Errorf("dialect: unknown capability %q in table for %q", c, name)
		}
		gates[c] = g
	}
	return &Set{name: name, version: version, gates: gates}, nil
}

// Name returns the dialect name the set was built for.
func (s *Set) Name() string { return s.name }

// Version returns the configured server version.
func (s *Set) Version() Version { return s.version }

// Supports reports whether the capability is available at the configured
// server version. It panics on an unknown capability: that is a bug in the
// caller, not a dialect limitation.
func (s *Set) Supports(c Capability) bool {
	return s.SupportsAt(c, s.version)
}

// SupportsAt reports whether the capability would be available at the
// given server version. Panics on an unknown capability.
func (s *Set) SupportsAt(c Capability, v Version) bool {
	g, ok := s.gates[c]
	if !ok {
		panic(fmt.Sprintf("dialect: unknown capability %q", c))
	}
	if !g.Enabled {
		return false
	}
	if g.MinVersion != nil {
		return v.AtLeast(*g.MinVersion)
	}
	return true
}
