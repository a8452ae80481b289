package ctyfuncs

import (
	"github.com/vk/pysgo/internal/engine/hcleval"
	"github.com/vk/pysgo/internal/registry"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Encoding implements the registry.Module interface for JSON and CSV codecs.
type Encoding struct{}

// Register registers the "encoding" library.
func (m *Encoding) Register(r *registry.Registry) {
	register(r, "encoding", "JSON and CSV decoding and encoding.", hcleval.Library{
		"csvdecode":  stdlib.CSVDecodeFunc,
		"jsondecode": stdlib.JSONDecodeFunc,
		"jsonencode": stdlib.JSONEncodeFunc,
	})
}
