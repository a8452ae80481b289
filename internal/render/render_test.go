package render_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/render"
)

// plainFormatter treats []any as the only iterable and prints with %v.
type plainFormatter struct{}

func (plainFormatter) Elements(v any) ([]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%T is not iterable", v)
	}
	return items, nil
}

func (plainFormatter) Format(v any) (string, error) {
	if v == nil {
		return "", errors.New("cannot format nil")
	}
	return fmt.Sprint(v), nil
}

func TestRender(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		spread   bool
		sep      string
		expected string
	}{
		{name: "single value", value: 34, expected: "34"},
		{name: "list without spread stays one value", value: []any{"a", "b"}, expected: "[a b]"},
		{name: "spread with comma", value: []any{"a", "b", "c"}, spread: true, sep: ",", expected: "a,b,c"},
		{name: "spread with newline", value: []any{1, 2}, spread: true, sep: "\n", expected: "1\n2"},
		{name: "spread of empty", value: []any{}, spread: true, sep: ",", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := render.Render(plainFormatter{}, tc.value, tc.spread, tc.sep)
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
			if !tc.spread {
				require.False(t, strings.Contains(out, "\n"))
			}
		})
	}
}

func TestRender_SpreadOfNonIterableIsEvaluationError(t *testing.T) {
	_, err := render.Render(plainFormatter{}, 7, true, " ")
	require.ErrorIs(t, err, errs.ErrEvaluation)
}

func TestRender_FormatErrorPropagates(t *testing.T) {
	_, err := render.Render(plainFormatter{}, []any{"a", nil}, true, " ")
	require.Error(t, err)
}

func TestDecodeSeparator(t *testing.T) {
	require.Equal(t, "", render.DecodeSeparator(""), "an explicit empty separator joins with nothing")
	require.Equal(t, ",", render.DecodeSeparator(","))
	require.Equal(t, "\n", render.DecodeSeparator(`\n`))
	require.Equal(t, "\t|\n", render.DecodeSeparator(`\t|\n`))
}
