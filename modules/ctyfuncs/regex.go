package ctyfuncs

import (
	"github.com/vk/pysgo/internal/engine/hcleval"
	"github.com/vk/pysgo/internal/registry"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Regex implements the registry.Module interface for regular expressions.
type Regex struct{}

// Register registers the "regex" library.
func (m *Regex) Register(r *registry.Registry) {
	register(r, "regex", "RE2 regular expressions.", hcleval.Library{
		"regex":        stdlib.RegexFunc,
		"regexall":     stdlib.RegexAllFunc,
		"regexreplace": stdlib.RegexReplaceFunc,
	})
}
