// Package hcl_adapter reads settings files written in HCL.
package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/pysgo/internal/config"
	"github.com/vk/pysgo/internal/ctxlog"
	"github.com/vk/pysgo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot mirrors the attributes a settings file may set.
type fileRoot struct {
	Dialect        *string  `hcl:"dialect,optional"`
	Imports        []string `hcl:"imports,optional"`
	RelativeImport *bool    `hcl:"relative_import,optional"`
	Sep            *string  `hcl:"sep,optional"`
	PrintSep       *string  `hcl:"print_sep,optional"`
	LogLevel       *string  `hcl:"log_level,optional"`
	LogFormat      *string  `hcl:"log_format,optional"`
	Remain         hcl.Body `hcl:",remain"`
}

// Load parses every .hcl file under paths. Files are merged in discovery
// order, so a later file overrides an earlier one.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL settings loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered settings files.", "files", files)

	settings := &config.Settings{}
	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		if root.Remain != nil {
			if attrs, _ := root.Remain.JustAttributes(); len(attrs) > 0 {
				for name := range attrs {
					logger.Warn("Ignoring unknown settings attribute.", "file", file, "attribute", name)
				}
			}
		}

		settings.Merge(&config.Settings{
			Dialect:        root.Dialect,
			Imports:        root.Imports,
			RelativeImport: root.RelativeImport,
			Sep:            root.Sep,
			PrintSep:       root.PrintSep,
			LogLevel:       root.LogLevel,
			LogFormat:      root.LogFormat,
		})
		logger.Debug("Settings file loaded.", "file", file)
	}

	return settings, nil
}
