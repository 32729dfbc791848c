// Package highlight composes independent byte annotators into one style
// overlay for a byte window.
//
// Highlighters are grouped into fixed stages. Stages always run in the same
// order (byte classes, search hits, pending edits, external diff markers,
// cursor) and a later span replaces an earlier one wherever they overlap, so
// the cursor wins every overlap.
package highlight
