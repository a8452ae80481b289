// Package render turns evaluation results into output text.
package render

import (
	"strings"

	"github.com/vk/pysgo/internal/errs"
)

// DefaultSeparator joins spread values when none is configured.
const DefaultSeparator = " "

// Formatter is the part of an engine the renderer needs.
type Formatter interface {
	Elements(v any) ([]any, error)
	Format(v any) (string, error)
}

// Render formats value. In spread mode value must be iterable; each element
// is formatted on its own and the results are joined with sep. The returned
// text never carries a trailing line break.
func Render(f Formatter, value any, spread bool, sep string) (string, error) {
	if !spread {
		return f.Format(value)
	}

	items, err := f.Elements(value)
	if err != nil {
		if errs.Kind(err) == nil {
			err = errs.Wrap(errs.ErrEvaluation, err)
		}
		return "", err
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s, err := f.Format(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

// DecodeSeparator expands the two-character escapes \n and \t in a
// separator given on the command line. An empty separator stays empty; the
// caller applies DefaultSeparator when none was configured.
func DecodeSeparator(raw string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(raw)
}
