// Package normalisers turns content pages into searchable text.
//
// The markdown subpackage splits a page into sections at its outline
// headings, the unit the local search index stores and ranks.
package normalisers
