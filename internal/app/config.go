package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/pysgo/internal/engine/pyeval"
	"github.com/vk/pysgo/internal/imports"
	"github.com/vk/pysgo/internal/render"
)

// Mode is the input handling of a run.
type Mode int

const (
	// PerLine evaluates once per input line.
	PerLine Mode = iota
	// WholeInput evaluates once with all of the input as a single token.
	WholeInput
	// NoPipe evaluates once without reading input.
	NoPipe
)

func (m Mode) String() string {
	switch m {
	case WholeInput:
		return "whole-input"
	case NoPipe:
		return "no-pipe"
	default:
		return "per-line"
	}
}

// Config holds all the necessary configuration for an App instance to run.
// It is built once by NewConfig and not modified afterwards.
type Config struct {
	Expression     string
	Imports        []string
	RelativeImport bool
	Sep            string // empty splits on runs of whitespace
	PrintSep       string // used as given; empty joins with nothing
	NoPipe         bool
	NoSplit        bool

	Dialect   string
	LogLevel  string
	LogFormat string
}

// NewConfig validates cfg, fills in defaults and decodes the print separator.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Expression == "" {
		return nil, errors.New("an expression is required")
	}

	if cfg.Dialect == "" {
		cfg.Dialect = pyeval.Dialect
	}
	if _, ok := engines[cfg.Dialect]; !ok {
		return nil, fmt.Errorf("unknown dialect %q: must be one of %s", cfg.Dialect, strings.Join(Dialects(), ", "))
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "warn"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.PrintSep = render.DecodeSeparator(cfg.PrintSep)
	cfg.Imports = append([]string(nil), cfg.Imports...)
	return &cfg, nil
}

// Mode returns the input mode. NoPipe wins over NoSplit.
func (c *Config) Mode() Mode {
	switch {
	case c.NoPipe:
		return NoPipe
	case c.NoSplit:
		return WholeInput
	default:
		return PerLine
	}
}

// ImportMode returns how imports enter the symbol table.
func (c *Config) ImportMode() imports.Mode {
	if c.RelativeImport {
		return imports.Namespaced
	}
	return imports.Flattened
}
