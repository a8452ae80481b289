// Package pynative makes gpython's built-in native modules importable in the
// python dialect.
package pynative

import (
	"fmt"
	"strings"

	"github.com/go-python/gpython/py"
	"github.com/vk/pysgo/internal/registry"

	_ "github.com/go-python/gpython/math"
	_ "github.com/go-python/gpython/time"
)

// Module implements the registry.Module interface for one gpython module.
type Module struct {
	Name string
}

// Register looks the gpython module up and registers it with its public
// globals as exports.
func (m *Module) Register(r *registry.Registry) {
	mod, err := py.GetModule(m.Name)
	if err != nil {
		panic(fmt.Sprintf("pynative: gpython module %q is not linked in: %v", m.Name, err))
	}

	var exports []registry.Export
	for name, value := range mod.Globals {
		if strings.HasPrefix(name, "_") {
			continue
		}
		exports = append(exports, registry.Export{Name: name, Value: value})
	}

	r.RegisterModule(&registry.Definition{
		Name:    m.Name,
		Doc:     mod.Doc,
		Value:   mod,
		Exports: registry.SortExports(exports),
	})
}

// Modules returns the gpython modules importable from expressions.
func Modules() []registry.Module {
	return []registry.Module{
		&Module{Name: "math"},
		&Module{Name: "time"},
	}
}
