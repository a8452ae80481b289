package ctyfuncs

import (
	"github.com/vk/pysgo/internal/engine/hcleval"
	"github.com/vk/pysgo/internal/registry"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Collections implements the registry.Module interface for list, set and map
// functions.
type Collections struct{}

// Register registers the "collections" library.
func (m *Collections) Register(r *registry.Registry) {
	register(r, "collections", "List, set and map helpers.", hcleval.Library{
		"chunklist":   stdlib.ChunklistFunc,
		"coalesce":    stdlib.CoalesceFunc,
		"concat":      stdlib.ConcatFunc,
		"contains":    stdlib.ContainsFunc,
		"distinct":    stdlib.DistinctFunc,
		"element":     stdlib.ElementFunc,
		"flatten":     stdlib.FlattenFunc,
		"index":       stdlib.IndexFunc,
		"keys":        stdlib.KeysFunc,
		"length":      stdlib.LengthFunc,
		"lookup":      stdlib.LookupFunc,
		"merge":       stdlib.MergeFunc,
		"range":       stdlib.RangeFunc,
		"reverselist": stdlib.ReverseListFunc,
		"setunion":    stdlib.SetUnionFunc,
		"slice":       stdlib.SliceFunc,
		"sort":        stdlib.SortFunc,
		"values":      stdlib.ValuesFunc,
		"zipmap":      stdlib.ZipmapFunc,
	})
}
