// Package check implements the per-page checks.
//
// Each checker inspects one parsed page and records its results on the
// report it is given. Checkers never stop one another: every checker runs
// for every page that parsed, and a checker records at most one finding per
// condition it tests.
//
// # Checkers
//
//   - TagChecker: title, meta description, canonical link, h1 and Open Graph tags
//   - SchemaChecker: JSON-LD structured data blocks
//   - ContentChecker: visible word count and unresolved template placeholders
//   - LinkChecker: internal link resolution and link density
//
// Internal links are resolved against the site file system, never over the
// network.
package check
