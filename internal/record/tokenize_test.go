package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		line string
		sep  string
		want []string
	}{
		{name: "whitespace runs", line: "  a \t b   c\n", want: []string{"a", "b", "c"}},
		{name: "empty line yields no tokens", line: "\n", want: []string{}},
		{name: "literal separator", line: "1,2,3\n", sep: ",", want: []string{"1", "2", "3"}},
		{name: "consecutive separators keep empty tokens", line: "a,,b", sep: ",", want: []string{"a", "", "b"}},
		{name: "empty line with separator yields one empty token", line: "\n", sep: ",", want: []string{""}},
		{name: "multi-character separator", line: "a::b", sep: "::", want: []string{"a", "b"}},
		{name: "surrounding whitespace is trimmed before splitting", line: "  x:y  \n", sep: ":", want: []string{"x", "y"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			seq := Tokenize(tc.line, tc.sep)
			require.Equal(t, tc.want, seq.Tokens())
			require.Equal(t, len(tc.want), seq.Len())
		})
	}
}

func TestWhole(t *testing.T) {
	t.Parallel()

	seq := Whole("hello\nworld\n")

	require.Equal(t, 1, seq.Len())
	tok, err := seq.At(0)
	require.NoError(t, err)
	require.Equal(t, "hello\nworld\n", tok)
}
