package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/pysgo/internal/app"
	"github.com/vk/pysgo/internal/cli"
	"github.com/vk/pysgo/internal/hcl_adapter"
)

// main is the entrypoint for the pys application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go exitOnInterrupt(interrupts, cancel, os.Exit)

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitOnInterrupt ends the process with status 0 on the first interrupt.
// Blocking stdin reads and a running expression never observe ctx, so the
// exit cannot wait for run to return. Every result line is flushed as it is
// written, so nothing is lost.
func exitOnInterrupt(interrupts <-chan os.Signal, cancel context.CancelFunc, exit func(int)) {
	if _, ok := <-interrupts; !ok {
		return
	}
	slog.Debug("Interrupted, exiting.")
	cancel()
	exit(0)
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, inR io.Reader, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(ctx, args, outW, hcl_adapter.NewLoader())
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	pysApp, err := app.NewApp(ctx, inR, outW, errW, appConfig)
	if err != nil {
		return err
	}
	return pysApp.Run(ctx)
}
