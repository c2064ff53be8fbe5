// Package history stores finished validation runs in a local SQLite
// database so that two runs over the same site can be compared.
//
// Runs are keyed by the absolute site root. Saving a report whose digest
// matches the latest stored run for that root does not add a new row, so
// repeated runs over an unchanged tree leave a single entry.
package history
