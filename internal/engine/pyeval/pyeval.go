// Package pyeval is the default expression dialect: Python expressions run on
// the gpython virtual machine.
//
// Every evaluation gets a fresh namespace holding only the names the compiled
// expression references and the scope can resolve. Everything else falls
// through to gpython's builtins, from which the functions that reach the host
// (files, stdin, dynamic code) are removed.
package pyeval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/go-python/gpython/builtin"
	"github.com/go-python/gpython/compile"
	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/vm"
	"github.com/vk/pysgo/internal/ctxlog"
	"github.com/vk/pysgo/internal/engine"
	"github.com/vk/pysgo/internal/errs"
)

// Dialect is the name of this engine on the command line.
const Dialect = "python"

// hostAccess lists builtins removed from the base environment.
var hostAccess = []string{"open", "input", "print", "eval", "exec", "compile", "__import__", "globals", "locals", "vars"}

var sandboxOnce sync.Once

func sandbox() {
	sandboxOnce.Do(func() {
		builtins, err := py.GetModule("builtins")
		if err != nil {
			panic(fmt.Sprintf("pyeval: builtins module missing: %v", err))
		}
		for _, name := range hostAccess {
			delete(builtins.Globals, name)
		}
	})
}

// Engine evaluates Python expressions. The most recently compiled expression
// is cached because the same source is evaluated once per record.
type Engine struct {
	mu         sync.Mutex
	lastSource string
	lastCode   *py.Code
}

var _ engine.Engine = (*Engine)(nil)

// New returns a Python engine.
func New() *Engine {
	sandbox()
	return &Engine{}
}

// Dialect implements engine.Engine.
func (e *Engine) Dialect() string {
	return Dialect
}

// Evaluate implements engine.Engine.
func (e *Engine) Evaluate(ctx context.Context, source string, scope engine.Scope) (engine.Value, error) {
	logger := ctxlog.FromContext(ctx)

	code, err := e.compile(source)
	if err != nil {
		return nil, classify(err, nil)
	}

	env := py.StringDict{}
	// Names past the end of the record stay unbound. They only fail if the
	// code actually loads them, which surfaces as a NameError.
	unbound := make(map[string]error)
	for _, name := range referencedNames(code) {
		v, err := scope.Resolve(name)
		if errors.Is(err, errs.ErrUnknownName) {
			// Left to builtins or attribute lookup.
			continue
		}
		if errors.Is(err, errs.ErrIndexOutOfRange) {
			unbound[name] = err
			continue
		}
		if err != nil {
			return nil, err
		}
		obj, err := toPy(v)
		if err != nil {
			return nil, errs.Wrap(errs.ErrEvaluation, err)
		}
		env[name] = obj
	}
	logger.Debug("Running Python expression.", "bound", len(env), "unbound", len(unbound))

	res, err := vm.Run(env, env, code, nil)
	if err != nil {
		return nil, classify(err, unbound)
	}
	return res, nil
}

func (e *Engine) compile(source string) (*py.Code, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastCode != nil && e.lastSource == source {
		return e.lastCode, nil
	}

	obj, err := compile.Compile(source, "<expression>", "eval", 0, true)
	if err != nil {
		return nil, err
	}
	code, ok := obj.(*py.Code)
	if !ok {
		return nil, fmt.Errorf("compile returned %T, not code", obj)
	}
	e.lastSource, e.lastCode = source, code
	return code, nil
}

// Elements implements engine.Engine using the Python iterator protocol.
func (e *Engine) Elements(v engine.Value) ([]engine.Value, error) {
	obj, ok := v.(py.Object)
	if !ok {
		return nil, errs.Wrapf(errs.ErrEvaluation, "not a Python value: %T", v)
	}
	var items []engine.Value
	err := py.Iterate(obj, func(item py.Object) bool {
		items = append(items, item)
		return false
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrEvaluation, err)
	}
	return items, nil
}

// Format implements engine.Engine with Python's str().
func (e *Engine) Format(v engine.Value) (string, error) {
	obj, ok := v.(py.Object)
	if !ok {
		return "", errs.Wrapf(errs.ErrEvaluation, "not a Python value: %T", v)
	}
	s, err := py.Str(obj)
	if err != nil {
		return "", errs.Wrap(errs.ErrEvaluation, err)
	}
	str, ok := s.(py.String)
	if !ok {
		return "", errs.Wrapf(errs.ErrEvaluation, "__str__ returned %s", s.Type().Name)
	}
	return string(str), nil
}

// referencedNames lists, once each, every name the code and its nested code
// objects (lambdas, comprehensions) load.
func referencedNames(code *py.Code) []string {
	seen := make(map[string]struct{})
	var names []string
	var walk func(c *py.Code)
	walk = func(c *py.Code) {
		for _, name := range c.Names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
		for _, k := range c.Consts {
			if inner, ok := k.(*py.Code); ok {
				walk(inner)
			}
		}
	}
	walk(code)
	return names
}

// classify maps a Python exception onto the error kinds. A NameError for one
// of the unbound names reports the resolver's error for that name.
func classify(err error, unbound map[string]error) error {
	switch {
	case py.IsException(py.IndexError, err):
		return errs.Wrap(errs.ErrIndexOutOfRange, err)
	case py.IsException(py.NameError, err):
		msg := err.Error()
		for name, cause := range unbound {
			if strings.Contains(msg, "'"+name+"'") {
				return cause
			}
		}
		return errs.Wrap(errs.ErrUnknownName, err)
	default:
		return errs.Wrap(errs.ErrEvaluation, err)
	}
}
