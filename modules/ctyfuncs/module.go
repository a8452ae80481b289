// Package ctyfuncs provides the importable function libraries of the hcl
// dialect, built from go-cty's standard function library.
package ctyfuncs

import (
	"github.com/vk/pysgo/internal/engine/hcleval"
	"github.com/vk/pysgo/internal/registry"
)

// Modules is every library in this package, in registration order.
func Modules() []registry.Module {
	return []registry.Module{
		&Strings{},
		&Numeric{},
		&Collections{},
		&Encoding{},
		&Regex{},
		&Datetime{},
	}
}

func register(r *registry.Registry, name, doc string, lib hcleval.Library) {
	exports := make([]registry.Export, 0, len(lib))
	for fnName, fn := range lib {
		exports = append(exports, registry.Export{Name: fnName, Value: fn})
	}
	r.RegisterModule(&registry.Definition{
		Name:    name,
		Doc:     doc,
		Value:   lib,
		Exports: registry.SortExports(exports),
	})
}
