package config

import "context"

// Loader is the interface for a format-specific settings loader.
type Loader interface {
	// Load reads every settings file found under paths, in order, and merges
	// them into one Settings value. Missing paths are not an error.
	Load(ctx context.Context, paths ...string) (*Settings, error)
}

// Settings holds defaults read from settings files. A nil field means the
// file did not set it.
type Settings struct {
	Dialect        *string
	Imports        []string
	RelativeImport *bool
	Sep            *string
	PrintSep       *string
	LogLevel       *string
	LogFormat      *string
}

// Merge overlays other onto s. Scalar fields set in other replace those in s;
// imports are appended in order.
func (s *Settings) Merge(other *Settings) {
	if other == nil {
		return
	}
	if other.Dialect != nil {
		s.Dialect = other.Dialect
	}
	s.Imports = append(s.Imports, other.Imports...)
	if other.RelativeImport != nil {
		s.RelativeImport = other.RelativeImport
	}
	if other.Sep != nil {
		s.Sep = other.Sep
	}
	if other.PrintSep != nil {
		s.PrintSep = other.PrintSep
	}
	if other.LogLevel != nil {
		s.LogLevel = other.LogLevel
	}
	if other.LogFormat != nil {
		s.LogFormat = other.LogFormat
	}
}
