// Package engine defines the contract between the execution pipeline and an
// expression dialect. A dialect compiles and evaluates an expression against
// a Scope and knows how to iterate and format its own values.
package engine

import (
	"context"
	"strings"
)

// SpreadMarker prefixes an expression whose iterable result is printed as
// separate values.
const SpreadMarker = "*"

// Scope is the read-only set of names visible to an expression.
type Scope interface {
	Resolve(name string) (any, error)
	Has(name string) bool
	Names() []string
}

// Value is a dialect-specific result.
type Value = any

// Engine evaluates expressions of one dialect.
type Engine interface {
	// Dialect is the name used to select the engine on the command line.
	Dialect() string

	// Evaluate runs source against scope. Failures carry one of the errs kinds.
	Evaluate(ctx context.Context, source string, scope Scope) (Value, error)

	// Elements returns the items of an iterable value, in iteration order.
	Elements(v Value) ([]Value, error)

	// Format returns the standard textual form of a value.
	Format(v Value) (string, error)
}

// Expression is a user expression with its spread marker split off.
type Expression struct {
	Source string
	Spread bool
}

// ParseExpression strips a leading SpreadMarker and records it.
func ParseExpression(raw string) Expression {
	if src, ok := strings.CutPrefix(raw, SpreadMarker); ok {
		return Expression{Source: src, Spread: true}
	}
	return Expression{Source: raw}
}
