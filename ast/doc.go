// Package ast defines the typed tree representation of a SQL statement.
//
// Trees are produced by an upstream query compiler and consumed by the
// translate package, which renders them into dialect-specific SQL text.
// Nodes are plain structs grouped into four sealed families:
//
//   - Statement: Select, Insert, Update, Delete.
//   - QueryPart: a single select body (QuerySpec) or a set operation
//     combining two parts (SetOperation).
//   - Expression: literals, column references, tuples, function calls,
//     case expressions, subqueries, parameters.
//   - Predicate: comparisons, junctions, IN, EXISTS, BETWEEN, null checks.
//
// Trees are treated as immutable once handed to a translator: nothing in
// this module mutates a node after construction, and the same tree may be
// translated concurrently for different dialects. Ownership is strictly
// top-down; the only back-reference is the navigational parent pointer on
// QuerySpec, used to resolve correlated subqueries, which is never walked.
//
// Structural invariants (tuple arities, non-negative fetch values, set
// operation arity agreement) are trusted by construction and verified again
// at translation time; a violation there is a bug in the tree builder and
// surfaces as sqlast.InvalidASTError.
package ast
