package hcleval

import (
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// compiled is a parsed expression together with the root variable names and
// function names it references. Analysis runs once, on first use.
type compiled struct {
	source string
	expr   hclsyntax.Expression

	analyzeOnce sync.Once
	variables   []string
	functions   []string
}

func parse(source string) (*compiled, hcl.Diagnostics) {
	expr, diags := hclsyntax.ParseExpression([]byte(source), "<expression>", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, diags
	}
	return &compiled{source: source, expr: expr}, nil
}

func (c *compiled) analyze() {
	c.analyzeOnce.Do(func() {
		c.variables, c.functions = extractReferencesAndFunctions(c.expr)
	})
}

// Variables returns the unique root names of the free variables, in order of
// first appearance.
func (c *compiled) Variables() []string {
	c.analyze()
	return c.variables
}

// Functions returns the unique names of all called functions, in order of
// first appearance. Namespaced calls keep their "ns::name" form.
func (c *compiled) Functions() []string {
	c.analyze()
	return c.functions
}

func extractReferencesAndFunctions(expr hclsyntax.Expression) ([]string, []string) {
	var variables []string
	seenVars := make(map[string]struct{})
	// Variables() leaves out names bound by for-expressions.
	for _, traversal := range expr.Variables() {
		root := traversal.RootName()
		if _, ok := seenVars[root]; ok {
			continue
		}
		seenVars[root] = struct{}{}
		variables = append(variables, root)
	}

	var functions []string
	seenFuncs := make(map[string]struct{})
	walkForFunctions(expr, func(name string) {
		if _, ok := seenFuncs[name]; ok {
			return
		}
		seenFuncs[name] = struct{}{}
		functions = append(functions, name)
	})
	return variables, functions
}

// walkForFunctions recursively walks the syntax tree and reports every
// function call name.
func walkForFunctions(expr hclsyntax.Expression, found func(string)) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		found(e.Name)
		for _, arg := range e.Args {
			walkForFunctions(arg, found)
		}
	case *hclsyntax.BinaryOpExpr:
		walkForFunctions(e.LHS, found)
		walkForFunctions(e.RHS, found)
	case *hclsyntax.ConditionalExpr:
		walkForFunctions(e.Condition, found)
		walkForFunctions(e.TrueResult, found)
		walkForFunctions(e.FalseResult, found)
	case *hclsyntax.UnaryOpExpr:
		walkForFunctions(e.Val, found)
	case *hclsyntax.TemplateExpr:
		for _, part := range e.Parts {
			walkForFunctions(part, found)
		}
	case *hclsyntax.TemplateWrapExpr:
		walkForFunctions(e.Wrapped, found)
	case *hclsyntax.TemplateJoinExpr:
		walkForFunctions(e.Tuple, found)
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			walkForFunctions(item, found)
		}
	case *hclsyntax.ObjectConsExpr:
		for _, item := range e.Items {
			walkForFunctions(item.KeyExpr, found)
			walkForFunctions(item.ValueExpr, found)
		}
	case *hclsyntax.ObjectConsKeyExpr:
		walkForFunctions(e.Wrapped, found)
	case *hclsyntax.ForExpr:
		walkForFunctions(e.CollExpr, found)
		walkForFunctions(e.KeyExpr, found)
		walkForFunctions(e.ValExpr, found)
		walkForFunctions(e.CondExpr, found)
	case *hclsyntax.IndexExpr:
		walkForFunctions(e.Collection, found)
		walkForFunctions(e.Key, found)
	case *hclsyntax.RelativeTraversalExpr:
		walkForFunctions(e.Source, found)
	case *hclsyntax.SplatExpr:
		walkForFunctions(e.Source, found)
		walkForFunctions(e.Each, found)
	case *hclsyntax.ParenthesesExpr:
		walkForFunctions(e.Expression, found)
	}
}
