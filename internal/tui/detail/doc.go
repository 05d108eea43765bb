// Package detail renders the single-meal detail view: name, category, area,
// tags, word-wrapped instructions and links.
package detail
