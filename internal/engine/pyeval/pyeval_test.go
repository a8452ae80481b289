package pyeval

import (
	"context"
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"
	"github.com/vk/pysgo/internal/binding"
	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/record"
)

func scopeFor(line string, imports *binding.Table) *binding.Resolver {
	seq := record.Tokenize(line, "")
	return binding.NewResolver(&seq, imports)
}

func evalString(t *testing.T, e *Engine, source string, scope *binding.Resolver) string {
	t.Helper()
	v, err := e.Evaluate(context.Background(), source, scope)
	require.NoError(t, err)
	s, err := e.Format(v)
	require.NoError(t, err)
	return s
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		line   string
		source string
		want   string
	}{
		{name: "tokens are strings", line: "1 2", source: "arg1+arg2", want: "12"},
		{name: "explicit conversion", line: "1 2", source: "int(arg1)+int(arg2)", want: "3"},
		{name: "length of args", line: "a b c", source: "len(args)", want: "3"},
		{name: "negative index", line: "a b c", source: "args[-1]", want: "c"},
		{name: "slice", line: "a b c", source: "args[0:2]", want: "['a', 'b']"},
		{name: "stepped slice", line: "a b c d", source: "args[::2]", want: "['a', 'c']"},
		{name: "index list in key order", line: "a b c", source: "args[[2, 0, 0]]", want: "['c', 'a', 'a']"},
		{name: "index tuple", line: "a b c", source: "args[(1, -1)]", want: "['b', 'c']"},
		{name: "membership", line: "a b c", source: "'b' in args", want: "True"},
		{name: "comprehension", line: "a b c", source: "[t + t for t in args]", want: "['aa', 'bb', 'cc']"},
		{name: "args as string", line: "x y", source: "args", want: "['x', 'y']"},
		{name: "tenth positional", line: "0 1 2 3 4 5 6 7 8 9", source: "arg10", want: "9"},
		{name: "empty record", line: "", source: "len(args)", want: "0"},
		{name: "slice is a list", line: "a b c", source: "args[1:] + ['z']", want: "['b', 'c', 'z']"},
		{name: "concatenate with a list", line: "a b", source: "args + ['c']", want: "['a', 'b', 'c']"},
		{name: "list on the left", line: "a b", source: "['z'] + args", want: "['z', 'a', 'b']"},
		{name: "repeat", line: "a b", source: "args * 2", want: "['a', 'b', 'a', 'b']"},
		{name: "repeat reflected", line: "a", source: "2 * args", want: "['a', 'a']"},
		{name: "equals a list", line: "a b", source: "args == ['a', 'b']", want: "True"},
		{name: "differs from a list", line: "a b", source: "args != ['a', 'b']", want: "False"},
		{name: "index method", line: "a b c", source: "args.index('b')", want: "1"},
		{name: "count method", line: "a b a", source: "args.count('a')", want: "2"},
		{name: "copy method", line: "a b", source: "args.copy() + args[:1]", want: "['a', 'b', 'a']"},
		{name: "guarded positional past the end", line: "only", source: "arg2 if len(args) > 1 else arg1", want: "only"},
		{name: "guarded positional in range", line: "x y", source: "arg2 if len(args) > 1 else arg1", want: "y"},
		{name: "short circuit skips missing positional", line: "a", source: "len(args) > 5 and arg6", want: "False"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e := New()
			require.Equal(t, tc.want, evalString(t, e, tc.source, scopeFor(tc.line, nil)))
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		source string
		kind   error
	}{
		{name: "positional past the end", source: "arg4", kind: errs.ErrIndexOutOfRange},
		{name: "positional past the end inside an expression", source: "arg1 + arg9", kind: errs.ErrIndexOutOfRange},
		{name: "positional past the end in a taken branch", source: "arg5 if len(args) == 3 else arg1", kind: errs.ErrIndexOutOfRange},
		{name: "subscript past the end", source: "args[10]", kind: errs.ErrIndexOutOfRange},
		{name: "index list with a bad key", source: "args[[0, 7]]", kind: errs.ErrIndexOutOfRange},
		{name: "unknown name", source: "nope + 1", kind: errs.ErrUnknownName},
		{name: "host builtins are removed", source: "open('/etc/passwd')", kind: errs.ErrUnknownName},
		{name: "division by zero", source: "1/0", kind: errs.ErrEvaluation},
		{name: "string subscript", source: "args['x']", kind: errs.ErrEvaluation},
		{name: "index of a missing token", source: "args.index('q')", kind: errs.ErrEvaluation},
		{name: "syntax error", source: "1 +", kind: errs.ErrEvaluation},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New().Evaluate(context.Background(), tc.source, scopeFor("a b c", nil))
			require.Error(t, err)
			require.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestEvaluate_Imports(t *testing.T) {
	t.Parallel()

	imports := binding.NewTable()
	imports.Set("answer", py.Int(42))
	e := New()

	require.Equal(t, "43", evalString(t, e, "answer + 1", scopeFor("x", imports)))
	require.Equal(t, "43", evalString(t, e, "answer + 1", binding.NewResolver(nil, imports)), "imports stay visible without a record")
}

func TestEvaluate_CachedCodeRebindsPerRecord(t *testing.T) {
	t.Parallel()

	e := New()

	require.Equal(t, "a", evalString(t, e, "arg1", scopeFor("a b", nil)))
	require.Equal(t, "c", evalString(t, e, "arg1", scopeFor("c d", nil)))
}

func TestElements(t *testing.T) {
	t.Parallel()

	e := New()
	v, err := e.Evaluate(context.Background(), "args", scopeFor("a b c", nil))
	require.NoError(t, err)

	items, err := e.Elements(v)
	require.NoError(t, err)
	var got []string
	for _, item := range items {
		s, err := e.Format(item)
		require.NoError(t, err)
		got = append(got, s)
	}
	require.Equal(t, []string{"a", "b", "c"}, got)

	_, err = e.Elements(py.Int(3))
	require.ErrorIs(t, err, errs.ErrEvaluation)

	_, err = e.Format("not python")
	require.ErrorIs(t, err, errs.ErrEvaluation)
}
