// Package translate renders an ast.Statement into SQL text for a target
// dialect.
//
// A Translator makes a single depth-first pass over the tree, accumulating
// SQL text and an ordered parameter list. Every dialect-variable decision
// is answered by the dialect's capability set plus a small strategy table
// of hook functions; the walk itself is dialect-independent. The governing
// rule at every decision point is: render native syntax when the dialect
// has it, emulate when that preserves result-set semantics, and fail with
// sqlast.UnsupportedConstructError otherwise. Emulations that would change
// semantics (dropping WITH TIES, approximating PERCENT, ignoring CYCLE
// detection) are never performed.
//
// A Translator is single-use and confined to one goroutine: construct one
// per statement with New, call Translate once, keep the Result. Dialect
// values are immutable and shared freely.
//
//	d, err := translate.MySQL(dialect.Version{Major: 8, Minor: 0, Patch: 23})
//	if err != nil { ... }
//	res, err := translate.New(d).Translate(stmt)
//
// Translation is pure: no I/O, no shared mutable state, deterministic
// output for a given (statement, dialect) pair.
package translate
