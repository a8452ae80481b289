package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/pysgo/internal/binding"
	"github.com/vk/pysgo/internal/ctxlog"
	"github.com/vk/pysgo/internal/engine"
	"github.com/vk/pysgo/internal/imports"
	"github.com/vk/pysgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
	config *Config

	engine   engine.Engine
	registry *registry.Registry
	imports  *binding.Table
	expr     engine.Expression
}

// NewApp builds an App: it configures logging to logW, creates the dialect
// engine, registers the dialect's modules (or the given ones, for tests) and
// loads the configured imports. Any failure here happens before input is read.
func NewApp(ctx context.Context, in io.Reader, out, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	newEngine, ok := engines[cfg.Dialect]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", cfg.Dialect)
	}
	eng := newEngine()

	reg := registry.New(cfg.Dialect)
	if len(modules) == 0 {
		modules = coreModules[cfg.Dialect]()
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All modules registered.", "dialect", cfg.Dialect, "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}

	table, err := imports.NewLoader(reg).Load(ctx, cfg.Imports, cfg.ImportMode())
	if err != nil {
		return nil, err
	}

	return &App{
		in:       in,
		out:      out,
		logger:   logger,
		config:   cfg,
		engine:   eng,
		registry: reg,
		imports:  table,
		expr:     engine.ParseExpression(cfg.Expression),
	}, nil
}

// Registry returns the application's module registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Imports returns the imported symbol table. This is primarily for testing.
func (a *App) Imports() *binding.Table {
	return a.imports
}
