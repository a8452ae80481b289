package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/pysgo/internal/ctxlog"
)

// Module is the interface that every compiled-in module implements to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Export is one public top-level name of a module.
type Export struct {
	Name  string
	Value any
}

// Definition describes a loadable module: the value bound under its own name
// in namespaced mode, and the exports merged in flattened mode.
type Definition struct {
	Name    string
	Doc     string
	Value   any
	Exports []Export
}

// Registry holds the module definitions of a single application instance.
type Registry struct {
	dialect     string
	definitions map[string]*Definition
}

// New creates an empty Registry for the named dialect.
func New(dialect string) *Registry {
	return &Registry{
		dialect:     dialect,
		definitions: make(map[string]*Definition),
	}
}

// Dialect returns the dialect the registered modules belong to.
func (r *Registry) Dialect() string {
	return r.dialect
}

// RegisterModule stores def under def.Name. Registering the same name twice
// is a programming error and panics.
func (r *Registry) RegisterModule(def *Definition) {
	if _, exists := r.definitions[def.Name]; exists {
		panic(fmt.Sprintf("module with name '%s' already registered for dialect %s", def.Name, r.dialect))
	}
	slog.Debug("Registering module.", "dialect", r.dialect, "name", def.Name, "exports", len(def.Exports))
	r.definitions[def.Name] = def
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

// Names returns every registered module name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every definition is usable: it has a value, and its
// exports are uniquely named public identifiers.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var problems []string

	for _, name := range r.Names() {
		def := r.definitions[name]
		if def.Value == nil {
			problems = append(problems, fmt.Sprintf("module '%s': no module value", name))
		}
		seen := make(map[string]struct{}, len(def.Exports))
		for _, exp := range def.Exports {
			if exp.Name == "" || strings.HasPrefix(exp.Name, "_") {
				problems = append(problems, fmt.Sprintf("module '%s': export %q is not public", name, exp.Name))
			}
			if _, dup := seen[exp.Name]; dup {
				problems = append(problems, fmt.Sprintf("module '%s': export %q declared twice", name, exp.Name))
			}
			seen[exp.Name] = struct{}{}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	logger.Debug("Registry validated.", "dialect", r.dialect, "modules", len(r.definitions))
	return nil
}

// SortExports orders exports by name. Modules whose exports come from a Go
// map use it to make flattened imports deterministic.
func SortExports(exports []Export) []Export {
	sort.SliceStable(exports, func(i, j int) bool { return exports[i].Name < exports[j].Name })
	return exports
}
