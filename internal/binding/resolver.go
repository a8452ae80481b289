// Package binding exposes the names an expression can see. A Resolver is an
// ordered chain of resolution rules rebuilt for every record:
//
//  1. "args" resolves to the whole token sequence,
//  2. "arg1".."argN" resolve to single tokens (1-based),
//  3. any other name is looked up in the imported symbol Table.
//
// The order is fixed. An imported symbol literally named "args" is therefore
// unreachable; positional names never collide with imports because every
// name shaped like argN is claimed by rule 2.
package binding

import (
	"regexp"
	"strconv"

	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/record"
)

// ArgsName is the name bound to the whole token sequence.
const ArgsName = "args"

// positional matches arg1, arg2, ... arg10 and beyond. arg0 and zero-padded
// suffixes are not positional.
var positional = regexp.MustCompile(`^arg([1-9][0-9]*)$`)

// rule is one link of the resolution chain. handled reports whether the rule
// claims name; once claimed, the rule's result (or error) is final.
type rule func(name string) (value any, handled bool, err error)

// Resolver is the read-only, name-keyed view an expression evaluates against.
type Resolver struct {
	seq     *record.TokenSequence
	imports *Table
	rules   []rule
}

// NewResolver binds seq and imports. A nil seq means no record is bound:
// "args" and positional names then resolve as unknown.
func NewResolver(seq *record.TokenSequence, imports *Table) *Resolver {
	r := &Resolver{seq: seq, imports: imports}
	if seq != nil {
		r.rules = append(r.rules, r.resolveArgs, r.resolvePositional)
	}
	r.rules = append(r.rules, r.resolveImport)
	return r
}

// Resolve walks the chain and returns the value bound to name. It fails with
// errs.ErrIndexOutOfRange for a positional name past the end of the record
// and errs.ErrUnknownName when no rule claims the name.
func (r *Resolver) Resolve(name string) (any, error) {
	for _, rl := range r.rules {
		v, handled, err := rl(name)
		if handled {
			return v, err
		}
	}
	return nil, errs.Wrapf(errs.ErrUnknownName, "%q", name)
}

// Has reports whether Resolve would succeed for name.
func (r *Resolver) Has(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Names lists every resolvable name: "args", then arg1..argN, then the
// imported names in import order.
func (r *Resolver) Names() []string {
	var names []string
	if r.seq != nil {
		names = append(names, ArgsName)
		for i := 1; i <= r.seq.Len(); i++ {
			names = append(names, PositionalName(i))
		}
	}
	for _, name := range r.imports.Names() {
		if r.seq != nil && (name == ArgsName || positional.MatchString(name)) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func (r *Resolver) resolveArgs(name string) (any, bool, error) {
	if name != ArgsName {
		return nil, false, nil
	}
	return *r.seq, true, nil
}

func (r *Resolver) resolvePositional(name string) (any, bool, error) {
	n, ok := PositionalIndex(name)
	if !ok {
		return nil, false, nil
	}
	tok, err := r.seq.At(n - 1)
	if err != nil {
		return nil, true, errs.Wrapf(errs.ErrIndexOutOfRange, "%s: record has %d tokens", name, r.seq.Len())
	}
	return tok, true, nil
}

func (r *Resolver) resolveImport(name string) (any, bool, error) {
	v, ok := r.imports.Get(name)
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// PositionalIndex returns the 1-based position encoded in name.
func PositionalIndex(name string) (int, bool) {
	m := positional.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// PositionalName returns the binding name of the 1-based position n.
func PositionalName(n int) string {
	return "arg" + strconv.Itoa(n)
}
