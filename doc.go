// Package sqlast turns typed SQL syntax trees into dialect-specific SQL text.
//
// The module is split into four layers:
//
//   - ast: the typed, immutable tree representation of a SQL statement
//     (statements, query parts, expressions, predicates).
//   - dialect: per-database capability sets and version gates, loaded from
//     configurable tables.
//   - translate: the single-pass translator that walks an ast.Statement and
//     produces SQL text plus an ordered parameter list, emulating constructs
//     the target dialect lacks whenever that is possible without changing
//     result-set semantics.
//   - exec: a thin database/sql adapter that prepares and executes a
//     translation result.
//
// The root package defines the error taxonomy shared by all layers.
//
// # Translating a statement
//
//	d, err := translate.Postgres(dialect.Version{Major: 14})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := translate.New(d).Translate(stmt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rows, err := db.QueryContext(ctx, res.SQL, res.Args()...)
//
// # Error model
//
// Translation is pure and deterministic; there are no transient errors.
// Two failure classes exist:
//
//   - UnsupportedConstructError: the statement requests a SQL feature the
//     target dialect can neither express natively nor emulate without
//     changing result semantics. Retrying cannot help.
//   - InvalidASTError: the input tree violates a structural invariant
//     (tuple arity mismatch, negative fetch count). This indicates a bug in
//     the code that built the tree, not a dialect limitation.
//
// Both carry sentinel errors (ErrUnsupported, ErrInvalidAST) so callers can
// classify failures with errors.Is without depending on concrete types.
package sqlast
