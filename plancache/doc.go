// Package plancache memoizes translation results per dialect.
//
// Translating a statement is deterministic, so a statement that hashes to
// the same fingerprint on the same dialect and server version always yields
// the same SQL text and parameter list. The cache stores finished
// translate.Result values under that composite key and collapses concurrent
// translations of the same statement into a single run.
package plancache
