package ctyfuncs

import (
	"github.com/vk/pysgo/internal/engine/hcleval"
	"github.com/vk/pysgo/internal/registry"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Datetime implements the registry.Module interface for timestamp formatting.
type Datetime struct{}

// Register registers the "datetime" library.
func (m *Datetime) Register(r *registry.Registry) {
	register(r, "datetime", "RFC 3339 timestamp formatting.", hcleval.Library{
		"formatdate": stdlib.FormatDateFunc,
	})
}
