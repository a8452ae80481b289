// Package record turns one unit of input text into an immutable, indexable
// sequence of tokens.
//
// A TokenSequence supports three access forms through Get: a scalar Index
// (negative values count from the end), a contiguous Span with slice
// semantics, and a Keys list that resolves every contained key in order and
// returns the selected elements in the order of the keys, not of the
// underlying sequence. Pick exposes the same rules for any element type so
// that expression dialects can apply them to their own values.
package record
