// Package env_vars makes the process environment importable as the "env"
// module, read-only, in both dialects.
package env_vars

import (
	"os"
	"strings"

	"github.com/go-python/gpython/py"
	"github.com/vk/pysgo/internal/engine/hcleval"
	"github.com/vk/pysgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Name is the import name of the module.
const Name = "env"

// snapshot returns the environment at registration time.
func snapshot() map[string]string {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	return envMap
}

// Python implements the registry.Module interface for the python dialect.
// Namespaced, env is a dict (env["HOME"]); flattened, the same dict is
// bound as environ.
type Python struct{}

// Register registers the "env" module.
func (m *Python) Register(r *registry.Registry) {
	environ := py.NewStringDict()
	for k, v := range snapshot() {
		environ[k] = py.String(v)
	}
	r.RegisterModule(&registry.Definition{
		Name:    Name,
		Doc:     "Process environment.",
		Value:   environ,
		Exports: []registry.Export{{Name: "environ", Value: environ}},
	})
}

// HCL implements the registry.Module interface for the hcl dialect.
type HCL struct{}

// Register registers the "env" library: getenv(name, [default]) and
// environ().
func (m *HCL) Register(r *registry.Registry) {
	env := snapshot()
	lib := hcleval.Library{
		"getenv":  getenvFunc(env),
		"environ": environFunc(env),
	}
	r.RegisterModule(&registry.Definition{
		Name:  Name,
		Doc:   "Process environment.",
		Value: lib,
		Exports: registry.SortExports([]registry.Export{
			{Name: "getenv", Value: lib["getenv"]},
			{Name: "environ", Value: lib["environ"]},
		}),
	})
}

func getenvFunc(env map[string]string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		VarParam: &function.Parameter{Name: "default", Type: cty.String},
		Type:     function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			if v, ok := env[args[0].AsString()]; ok {
				return cty.StringVal(v), nil
			}
			if len(args) > 1 {
				return args[1], nil
			}
			return cty.NullVal(cty.String), nil
		},
	})
}

func environFunc(env map[string]string) function.Function {
	return function.New(&function.Spec{
		Type: function.StaticReturnType(cty.Map(cty.String)),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			if len(env) == 0 {
				return cty.MapValEmpty(cty.String), nil
			}
			vals := make(map[string]cty.Value, len(env))
			for k, v := range env {
				vals[k] = cty.StringVal(v)
			}
			return cty.MapVal(vals), nil
		},
	})
}
