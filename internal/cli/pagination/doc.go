// Package pagination provides the CLI side of paging and sorting.
//
// This package contains:
//   - PaginationParams: --page and --sort flag parsing and validation
//   - ParseSortExpression: maps "field[:order]" expressions to engine sort modes
//   - PaginationMeta: response metadata for a rendered page
//
// The page arithmetic itself lives in the engine's result pipeline; this
// package only validates what the user typed.
package pagination
