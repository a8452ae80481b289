package env_vars

import (
	"context"
	"os"
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"
	"github.com/vk/pysgo/internal/engine/hcleval"
	"github.com/vk/pysgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func TestPython_Register(t *testing.T) {
	t.Parallel()

	r := registry.New("python")
	(&Python{}).Register(r)
	require.NoError(t, r.Validate(context.Background()))

	def, ok := r.Lookup(Name)
	require.True(t, ok)
	environ, ok := def.Value.(py.StringDict)
	require.True(t, ok)
	require.Equal(t, py.String(os.Getenv("PATH")), environ["PATH"])
	require.Equal(t, "environ", def.Exports[0].Name)
}

func TestHCL_Getenv(t *testing.T) {
	t.Parallel()

	r := registry.New("hcl")
	(&HCL{}).Register(r)
	require.NoError(t, r.Validate(context.Background()))

	def, ok := r.Lookup(Name)
	require.True(t, ok)
	getenv := def.Value.(hcleval.Library)["getenv"]

	got, err := getenv.Call([]cty.Value{cty.StringVal("PYSGO_SURELY_UNSET"), cty.StringVal("fallback")})
	require.NoError(t, err)
	require.Equal(t, cty.StringVal("fallback"), got)

	got, err = getenv.Call([]cty.Value{cty.StringVal("PYSGO_SURELY_UNSET")})
	require.NoError(t, err)
	require.True(t, got.IsNull())
}
