package app

import (
	"sort"

	"github.com/vk/pysgo/internal/engine"
	"github.com/vk/pysgo/internal/engine/hcleval"
	"github.com/vk/pysgo/internal/engine/pyeval"
	"github.com/vk/pysgo/internal/registry"
	"github.com/vk/pysgo/modules/ctyfuncs"
	"github.com/vk/pysgo/modules/env_vars"
	"github.com/vk/pysgo/modules/pynative"
)

// engines maps each dialect to its engine constructor.
var engines = map[string]func() engine.Engine{
	pyeval.Dialect:  func() engine.Engine { return pyeval.New() },
	hcleval.Dialect: func() engine.Engine { return hcleval.New() },
}

// coreModules is the definitive list of the modules compiled into the binary,
// per dialect.
var coreModules = map[string]func() []registry.Module{
	pyeval.Dialect: func() []registry.Module {
		return append(pynative.Modules(), &env_vars.Python{})
	},
	hcleval.Dialect: func() []registry.Module {
		return append(ctyfuncs.Modules(), &env_vars.HCL{})
	},
}

// Dialects returns the names of the available expression dialects, sorted.
func Dialects() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
