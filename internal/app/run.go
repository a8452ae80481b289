package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/pysgo/internal/binding"
	"github.com/vk/pysgo/internal/ctxlog"
	"github.com/vk/pysgo/internal/record"
	"github.com/vk/pysgo/internal/render"
)

// Run evaluates the expression in the configured mode. Records are processed
// strictly in order and each result line is flushed before the next record is
// read. The first failing record stops the run; lines already written stay
// written. A cancelled context ends the run quietly.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	mode := a.config.Mode()
	a.logger.Debug("App.Run method started.", "mode", mode.String(), "dialect", a.engine.Dialect(), "spread", a.expr.Spread)

	out := bufio.NewWriter(a.out)
	var err error
	switch mode {
	case NoPipe:
		err = a.evaluate(ctx, out, nil, 0)
	case WholeInput:
		err = a.runWholeInput(ctx, out)
	default:
		err = a.runPerLine(ctx, out)
	}

	if errors.Is(err, context.Canceled) {
		a.logger.Debug("Run interrupted.")
		return nil
	}
	a.logger.Debug("App.Run method finished.")
	return err
}

func (a *App) runWholeInput(ctx context.Context, out *bufio.Writer) error {
	data, err := io.ReadAll(a.in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	seq := record.Whole(string(data))
	return a.evaluate(ctx, out, &seq, 1)
}

func (a *App) runPerLine(ctx context.Context, out *bufio.Writer) error {
	reader := bufio.NewReader(a.in)
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read input: %w", readErr)
		}
		if line == "" && readErr != nil {
			a.logger.Debug("Input exhausted.", "records", n-1)
			return nil
		}

		seq := record.Tokenize(line, a.config.Sep)
		if err := a.evaluate(ctx, out, &seq, n); err != nil {
			return err
		}
		if readErr != nil {
			a.logger.Debug("Input exhausted.", "records", n)
			return nil
		}
	}
}

// evaluate runs the expression once against seq (nil when no record is
// bound) and writes one output line.
func (a *App) evaluate(ctx context.Context, out *bufio.Writer, seq *record.TokenSequence, n int) error {
	ctx = ctxlog.With(ctx, "record", n)
	logger := ctxlog.FromContext(ctx)

	scope := binding.NewResolver(seq, a.imports)
	value, err := a.engine.Evaluate(ctx, a.expr.Source, scope)
	if err != nil {
		return recordError(n, err)
	}
	text, err := render.Render(a.engine, value, a.expr.Spread, a.config.PrintSep)
	if err != nil {
		return recordError(n, err)
	}
	logger.Debug("Record evaluated.")

	if _, err := out.WriteString(text + "\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func recordError(n int, err error) error {
	if n == 0 {
		return err
	}
	return fmt.Errorf("record %d: %w", n, err)
}
