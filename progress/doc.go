// Package progress keeps aggregated counters for one scheduling session so
// that drivers can report how far a run has come without walking the
// event journal.
package progress
