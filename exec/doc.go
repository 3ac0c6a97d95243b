// Package exec runs translated statements against database/sql.
//
// A Driver pairs a database handle with the translate.Dialect the database
// speaks. Statements are translated through a shared plan cache and executed
// with positional binding of the collected parameters. Statistics and slow
// statement logging follow the wrapped-driver pattern.
package exec
