package record

import "strings"

// Tokenize trims surrounding whitespace from line and splits it into tokens.
//
// With an empty sep the split is on runs of whitespace, so an empty line
// yields no tokens. Any other sep is a literal delimiter and consecutive
// delimiters produce empty tokens; an empty line yields one empty token.
func Tokenize(line, sep string) TokenSequence {
	line = strings.TrimSpace(line)
	if sep == "" {
		return NewTokenSequence(strings.Fields(line))
	}
	return NewTokenSequence(strings.Split(line, sep))
}

// Whole wraps text, untouched, as a single-token sequence.
func Whole(text string) TokenSequence {
	return NewTokenSequence([]string{text})
}
