// Package hcleval is the hcl expression dialect: HCL native syntax
// expressions evaluated with cty values.
//
// The record is bound as args (a list of strings) and arg1..argN (strings).
// Imported modules are function libraries; flattened imports are called by
// bare name and namespaced imports as "module::name".
package hcleval

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/pysgo/internal/ctxlog"
	"github.com/vk/pysgo/internal/engine"
	"github.com/vk/pysgo/internal/errs"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Dialect is the name of this engine on the command line.
const Dialect = "hcl"

// Engine evaluates HCL expressions.
type Engine struct {
	base map[string]function.Function

	mu   sync.Mutex
	last *compiled
}

var _ engine.Engine = (*Engine)(nil)

// New returns an HCL engine.
func New() *Engine {
	return &Engine{base: baseFunctions()}
}

// Dialect implements engine.Engine.
func (e *Engine) Dialect() string {
	return Dialect
}

// Evaluate implements engine.Engine.
func (e *Engine) Evaluate(ctx context.Context, source string, scope engine.Scope) (engine.Value, error) {
	logger := ctxlog.FromContext(ctx)

	c, err := e.compile(source)
	if err != nil {
		return nil, err
	}

	evalCtx := &hcl.EvalContext{
		Variables: make(map[string]cty.Value),
		Functions: make(map[string]function.Function),
	}
	// Names past the end of the record are bound as unknown values. A result
	// that stays unknown depended on one of them.
	var unbound []error
	for _, name := range c.Variables() {
		v, err := scope.Resolve(name)
		if errors.Is(err, errs.ErrIndexOutOfRange) {
			unbound = append(unbound, err)
			evalCtx.Variables[name] = cty.DynamicVal
			continue
		}
		if err != nil {
			return nil, err
		}
		val, err := toCty(name, v)
		if err != nil {
			return nil, err
		}
		evalCtx.Variables[name] = val
	}
	for _, name := range c.Functions() {
		fn, err := e.function(name, scope)
		if err != nil {
			return nil, err
		}
		evalCtx.Functions[name] = fn
	}
	logger.Debug("Evaluating HCL expression.", "variables", len(evalCtx.Variables), "functions", len(evalCtx.Functions))

	val, diags := c.expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diagsError(diags)
	}
	if len(unbound) > 0 && !val.IsWhollyKnown() {
		return nil, unbound[0]
	}
	return val, nil
}

func (e *Engine) compile(source string) (*compiled, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last != nil && e.last.source == source {
		return e.last, nil
	}
	c, diags := parse(source)
	if diags.HasErrors() {
		return nil, errs.Wrap(errs.ErrEvaluation, diags)
	}
	e.last = c
	return c, nil
}

// function resolves a called name. Namespaced names look the namespace up as
// a Library; bare names prefer imported functions over the base environment.
func (e *Engine) function(name string, scope engine.Scope) (function.Function, error) {
	if ns, fnName, ok := cutNamespace(name); ok {
		v, err := scope.Resolve(ns)
		if err != nil {
			return function.Function{}, err
		}
		lib, ok := v.(Library)
		if !ok {
			return function.Function{}, errs.Wrapf(errs.ErrEvaluation, "%q is not a module", ns)
		}
		fn, ok := lib[fnName]
		if !ok {
			return function.Function{}, errs.Wrapf(errs.ErrUnknownName, "module %q has no function %q", ns, fnName)
		}
		return fn, nil
	}

	v, err := scope.Resolve(name)
	switch {
	case err == nil:
		fn, ok := v.(function.Function)
		if !ok {
			return function.Function{}, errs.Wrapf(errs.ErrEvaluation, "%q is not a function", name)
		}
		return fn, nil
	case errors.Is(err, errs.ErrUnknownName):
		if fn, ok := e.base[name]; ok {
			return fn, nil
		}
		return function.Function{}, err
	default:
		return function.Function{}, err
	}
}

func cutNamespace(name string) (ns, fn string, ok bool) {
	i := strings.LastIndex(name, "::")
	if i < 0 {
		return "", "", false
	}
	return name[:i], name[i+2:], true
}

// diagsError maps evaluation diagnostics onto the error kinds. Errors raised
// inside functions keep their kind.
func diagsError(diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if extra, ok := d.Extra.(hclsyntax.FunctionCallDiagExtra); ok {
			if kind := errs.Kind(extra.FunctionCallError()); kind != nil {
				return errs.Wrap(kind, diags)
			}
		}
		if d.Summary == "Invalid index" {
			return errs.Wrap(errs.ErrIndexOutOfRange, diags)
		}
	}
	return errs.Wrap(errs.ErrEvaluation, diags)
}

// Elements implements engine.Engine.
func (e *Engine) Elements(v engine.Value) ([]engine.Value, error) {
	val, err := asValue(v)
	if err != nil {
		return nil, err
	}
	items, err := elements(val)
	if err != nil {
		return nil, err
	}
	out := make([]engine.Value, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out, nil
}

// Format implements engine.Engine.
func (e *Engine) Format(v engine.Value) (string, error) {
	val, err := asValue(v)
	if err != nil {
		return "", err
	}
	return format(val)
}
