// Package imports builds the imported symbol table of a run from the
// configured import targets.
package imports

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/pysgo/internal/binding"
	"github.com/vk/pysgo/internal/ctxlog"
	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/registry"
)

// Mode selects how a loaded module enters the symbol table.
type Mode int

const (
	// Flattened copies every public export of each module into the table;
	// on a name collision the later import wins.
	Flattened Mode = iota
	// Namespaced binds each module under its own name.
	Namespaced
)

func (m Mode) String() string {
	if m == Namespaced {
		return "namespaced"
	}
	return "flattened"
}

// Loader resolves import targets against a module registry.
type Loader struct {
	reg *registry.Registry
}

// NewLoader returns a Loader over reg.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{reg: reg}
}

// Load resolves targets in order and merges them into a new table according
// to mode. Every unresolvable target is reported; any of them fails the whole
// load with errs.ErrImportResolution.
func (l *Loader) Load(ctx context.Context, targets []string, mode Mode) (*binding.Table, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading imports.", "targets", targets, "mode", mode.String())

	var result *multierror.Error
	defs := make([]*registry.Definition, 0, len(targets))
	for _, target := range targets {
		def, ok := l.reg.Lookup(target)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("no module named %q in dialect %s", target, l.reg.Dialect()))
			continue
		}
		defs = append(defs, def)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errs.Wrap(errs.ErrImportResolution, err)
	}

	table := binding.NewTable()
	for _, def := range defs {
		switch mode {
		case Namespaced:
			table.Set(def.Name, def.Value)
		default:
			for _, exp := range def.Exports {
				if _, shadowed := table.Get(exp.Name); shadowed {
					logger.Debug("Import overrides earlier symbol.", "name", exp.Name, "module", def.Name)
				}
				table.Set(exp.Name, exp.Value)
			}
		}
		logger.Debug("Module imported.", "module", def.Name, "exports", len(def.Exports))
	}

	logger.Info("Imports loaded.", "modules", len(defs), "symbols", table.Len())
	return table, nil
}
