package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/pysgo/internal/config"
)

func ptr[T any](v T) *T { return &v }

func TestSettings_Merge(t *testing.T) {
	s := &config.Settings{
		Dialect: ptr("python"),
		Imports: []string{"math"},
		Sep:     ptr(","),
	}

	s.Merge(&config.Settings{
		Dialect:        ptr("hcl"),
		Imports:        []string{"strings"},
		RelativeImport: ptr(true),
	})
	s.Merge(nil)

	require.Equal(t, "hcl", *s.Dialect)
	require.Equal(t, []string{"math", "strings"}, s.Imports)
	require.Equal(t, ",", *s.Sep, "unset fields keep the earlier value")
	require.True(t, *s.RelativeImport)
	require.Nil(t, s.PrintSep)
}
