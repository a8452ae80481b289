package record

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/pysgo/internal/errs"
)

func TestTokenSequence_Get(t *testing.T) {
	t.Parallel()

	seq := NewTokenSequence([]string{"a", "b", "c", "d"})

	testCases := []struct {
		name string
		key  Key
		want any
	}{
		{name: "index", key: Index(1), want: "b"},
		{name: "negative index", key: Index(-1), want: "d"},
		{name: "span", key: Span{Start: Bound(1), Stop: Bound(3)}, want: NewTokenSequence([]string{"b", "c"})},
		{name: "open span", key: Span{Start: Bound(2)}, want: NewTokenSequence([]string{"c", "d"})},
		{name: "reversed span", key: Span{Step: Bound(-1)}, want: NewTokenSequence([]string{"d", "c", "b", "a"})},
		{name: "strided span", key: Span{Step: Bound(2)}, want: NewTokenSequence([]string{"a", "c"})},
		{name: "span past the end clamps", key: Span{Start: Bound(3), Stop: Bound(100)}, want: NewTokenSequence([]string{"d"})},
		{name: "empty span", key: Span{Start: Bound(3), Stop: Bound(1)}, want: NewTokenSequence([]string{})},
		{name: "keys in key order", key: Keys{Index(2), Index(0)}, want: []any{"c", "a"}},
		{name: "keys may repeat", key: Keys{Index(0), Index(0), Index(-1)}, want: []any{"a", "a", "d"}},
		{
			name: "nested keys and spans",
			key:  Keys{Index(3), Span{Stop: Bound(2)}, Keys{Index(1)}},
			want: []any{"d", NewTokenSequence([]string{"a", "b"}), []any{"b"}},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := seq.Get(tc.key)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTokenSequence_GetErrors(t *testing.T) {
	t.Parallel()

	seq := NewTokenSequence([]string{"a", "b"})

	_, err := seq.Get(Index(2))
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = seq.Get(Index(-3))
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = seq.Get(Keys{Index(0), Index(5)})
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange, "one bad key fails the whole lookup")

	_, err = seq.Get(Span{Step: Bound(0)})
	require.ErrorIs(t, err, errs.ErrEvaluation)

	_, err = seq.Get(nil)
	require.ErrorIs(t, err, errs.ErrEvaluation)
}

func TestTokenSequence_Immutable(t *testing.T) {
	t.Parallel()

	src := []string{"x", "y"}
	seq := NewTokenSequence(src)
	src[0] = "changed"

	tokens := seq.Tokens()
	tokens[1] = "changed"

	first, err := seq.At(0)
	require.NoError(t, err)
	require.Equal(t, "x", first)
	second, err := seq.At(1)
	require.NoError(t, err)
	require.Equal(t, "y", second)
}

func TestPick_Generic(t *testing.T) {
	t.Parallel()

	got, err := Pick([]int{10, 20, 30}, Keys{Index(-1), Span{Start: Bound(-2)}})
	require.NoError(t, err)
	require.Equal(t, []any{30, []int{20, 30}}, got)
}
