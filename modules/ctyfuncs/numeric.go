package ctyfuncs

import (
	"github.com/vk/pysgo/internal/engine/hcleval"
	"github.com/vk/pysgo/internal/registry"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Numeric implements the registry.Module interface for number functions.
type Numeric struct{}

// Register registers the "numeric" library.
func (m *Numeric) Register(r *registry.Registry) {
	register(r, "numeric", "Arithmetic beyond the operators.", hcleval.Library{
		"abs":      stdlib.AbsoluteFunc,
		"ceil":     stdlib.CeilFunc,
		"floor":    stdlib.FloorFunc,
		"int":      stdlib.IntFunc,
		"log":      stdlib.LogFunc,
		"max":      stdlib.MaxFunc,
		"min":      stdlib.MinFunc,
		"parseint": stdlib.ParseIntFunc,
		"pow":      stdlib.PowFunc,
		"signum":   stdlib.SignumFunc,
	})
}
