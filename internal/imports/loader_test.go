package imports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/registry"
)

func newRegistry() *registry.Registry {
	reg := registry.New("test")
	reg.RegisterModule(&registry.Definition{
		Name:  "alpha",
		Value: "alpha-module",
		Exports: []registry.Export{
			{Name: "shared", Value: "from-alpha"},
			{Name: "one", Value: 1},
		},
	})
	reg.RegisterModule(&registry.Definition{
		Name:  "beta",
		Value: "beta-module",
		Exports: []registry.Export{
			{Name: "two", Value: 2},
			{Name: "shared", Value: "from-beta"},
		},
	})
	return reg
}

func TestLoad_Flattened(t *testing.T) {
	t.Parallel()

	table, err := NewLoader(newRegistry()).Load(context.Background(), []string{"alpha", "beta"}, Flattened)

	require.NoError(t, err)
	require.Equal(t, []string{"shared", "one", "two"}, table.Names())
	v, _ := table.Get("shared")
	require.Equal(t, "from-beta", v, "later import wins on collision")
	_, ok := table.Get("alpha")
	require.False(t, ok, "module names are not bound when flattening")
}

func TestLoad_Namespaced(t *testing.T) {
	t.Parallel()

	table, err := NewLoader(newRegistry()).Load(context.Background(), []string{"beta", "alpha"}, Namespaced)

	require.NoError(t, err)
	require.Equal(t, []string{"beta", "alpha"}, table.Names())
	v, _ := table.Get("alpha")
	require.Equal(t, "alpha-module", v)
	_, ok := table.Get("shared")
	require.False(t, ok, "exports stay behind their module name")
}

func TestLoad_Unresolved(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(newRegistry()).Load(context.Background(), []string{"missing", "alpha", "gone"}, Flattened)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrImportResolution)
	require.Contains(t, err.Error(), `"missing"`)
	require.Contains(t, err.Error(), `"gone"`)
}

func TestLoad_NoTargets(t *testing.T) {
	t.Parallel()

	table, err := NewLoader(newRegistry()).Load(context.Background(), nil, Flattened)

	require.NoError(t, err)
	require.Zero(t, table.Len())
}
