package binding

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/record"
)

func newSeq(tokens ...string) *record.TokenSequence {
	seq := record.NewTokenSequence(tokens)
	return &seq
}

func TestResolver_Chain(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	imports := NewTable()
	imports.Set("pi", 3.14)
	imports.Set("args", "shadowed")
	imports.Set("arg1", "shadowed")
	r := NewResolver(newSeq("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"), imports)

	// --- Act & Assert ---
	v, err := r.Resolve("args")
	require.NoError(t, err)
	require.Equal(t, 11, v.(record.TokenSequence).Len(), "args wins over an import of the same name")

	v, err = r.Resolve("arg1")
	require.NoError(t, err)
	require.Equal(t, "a", v, "positional names win over imports")

	v, err = r.Resolve("arg11")
	require.NoError(t, err)
	require.Equal(t, "k", v, "multi-digit positions are supported")

	v, err = r.Resolve("pi")
	require.NoError(t, err)
	require.Equal(t, 3.14, v)
}

func TestResolver_Errors(t *testing.T) {
	t.Parallel()

	r := NewResolver(newSeq("a", "b"), NewTable())

	_, err := r.Resolve("arg3")
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	for _, name := range []string{"arg0", "arg01", "nope", "Arg1"} {
		_, err = r.Resolve(name)
		require.ErrorIs(t, err, errs.ErrUnknownName, name)
		require.False(t, r.Has(name), name)
	}
}

func TestResolver_NoRecord(t *testing.T) {
	t.Parallel()

	imports := NewTable()
	imports.Set("args", "imported")
	r := NewResolver(nil, imports)

	v, err := r.Resolve("args")
	require.NoError(t, err)
	require.Equal(t, "imported", v, "without a record only imports are visible")

	_, err = r.Resolve("arg1")
	require.ErrorIs(t, err, errs.ErrUnknownName)

	require.Equal(t, []string{"args"}, r.Names())
}

func TestResolver_Names(t *testing.T) {
	t.Parallel()

	imports := NewTable()
	imports.Set("sqrt", 1)
	imports.Set("args", 2)
	imports.Set("arg2", 3)
	imports.Set("pi", 4)
	r := NewResolver(newSeq("x", "y"), imports)

	require.Equal(t, []string{"args", "arg1", "arg2", "sqrt", "pi"}, r.Names())
}

func TestPositionalIndex(t *testing.T) {
	t.Parallel()

	n, ok := PositionalIndex("arg12")
	require.True(t, ok)
	require.Equal(t, 12, n)
	require.Equal(t, "arg12", PositionalName(n))

	_, ok = PositionalIndex("arg")
	require.False(t, ok)
	_, ok = PositionalIndex("arg1x")
	require.False(t, ok)
}

func TestTable_Order(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Set("b", 1)
	table.Set("a", 2)
	table.Set("b", 3)

	require.Equal(t, []string{"b", "a"}, table.Names(), "rebinding keeps the first position")
	v, ok := table.Get("b")
	require.True(t, ok)
	require.Equal(t, 3, v, "rebinding replaces the value")
	require.Equal(t, 2, table.Len())

	var empty *Table
	_, ok = empty.Get("x")
	require.False(t, ok)
	require.Empty(t, empty.Names())
}
