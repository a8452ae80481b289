package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/pysgo/internal/app"
	"github.com/vk/pysgo/internal/config"
	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/render"
)

// Version is reported by -V/--version.
const Version = "0.9.0"

// ConfigEnv names the environment variable holding the settings path used
// when --config is not given.
const ConfigEnv = "PYS_CONFIG"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error kind, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Settings files, if any, are read through loader and sit below the flags.
func Parse(ctx context.Context, args []string, output io.Writer, loader config.Loader) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("pys", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pys - awk inspired command line tool evaluating one expression per input line.

Usage:
  pys [options] EXPRESSION

Arguments:
  EXPRESSION
    Expression to evaluate. Each input line is split into tokens bound as
    args (the whole sequence) and arg1..argN. A leading '*' prints the
    elements of the result separated by the print separator.

Options:
`)
		flagSet.PrintDefaults()
	}

	var (
		importTargets                   stringList
		noPipe, relativeImport, noSplit bool
		sep, printSep, dialect, cfgPath string
		logLevel, logFormat             string
		showVersion                     bool
	)
	flagSet.Var(&importTargets, "i", "Module to import (repeatable, shorthand).")
	flagSet.Var(&importTargets, "import", "Module to import (repeatable).")
	flagSet.BoolVar(&noPipe, "n", false, "Don't read input (shorthand).")
	flagSet.BoolVar(&noPipe, "no-pipe", false, "Don't read input; evaluate once.")
	flagSet.BoolVar(&relativeImport, "relative-import", false, "Bind each import under its own name instead of merging its exports.")
	flagSet.BoolVar(&noSplit, "no-split", false, "Treat the whole input as a single argument.")
	flagSet.StringVar(&sep, "s", "", "Input token separator (shorthand).")
	flagSet.StringVar(&sep, "sep", "", "Input token separator. Default: runs of whitespace.")
	flagSet.StringVar(&printSep, "p", "", "Output separator for '*' expressions (shorthand).")
	flagSet.StringVar(&printSep, "print-sep", "", `Output separator for '*' expressions. "\n" is a newline. Default: " ".`)
	flagSet.StringVar(&dialect, "dialect", "", "Expression dialect: "+strings.Join(app.Dialects(), " or ")+". Default: python.")
	flagSet.StringVar(&cfgPath, "config", "", "Settings file or directory of .hcl files. Default: $"+ConfigEnv+".")
	flagSet.StringVar(&logLevel, "log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&logFormat, "log-format", "", "Log output format. Options: 'text' or 'json'.")
	flagSet.BoolVar(&showVersion, "V", false, "Print the version and exit (shorthand).")
	flagSet.BoolVar(&showVersion, "version", false, "Print the version and exit.")

	positional, err := parseInterspersed(flagSet, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		if errors.Is(err, errs.ErrMissingFlagValue) {
			return nil, false, &ExitError{Code: 2, Message: err.Error(), Err: errs.ErrMissingFlagValue}
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "positional", len(positional))

	if showVersion {
		fmt.Fprintf(output, "pys %s\n", Version)
		return nil, true, nil
	}

	if len(positional) == 0 {
		slog.Debug("No expression provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "an expression is required"}
	}
	if len(positional) > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q: quote the expression as a single argument", positional[1])}
	}

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })
	given := func(names ...string) bool {
		for _, n := range names {
			if set[n] {
				return true
			}
		}
		return false
	}

	if cfgPath == "" {
		cfgPath = os.Getenv(ConfigEnv)
	}
	settings := &config.Settings{}
	if cfgPath != "" && loader != nil {
		loaded, err := loader.Load(ctx, cfgPath)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("failed to load settings: %v", err), Err: err}
		}
		settings = loaded
	}

	cfg := app.Config{
		Expression:     positional[0],
		Imports:        append(append([]string(nil), settings.Imports...), importTargets...),
		RelativeImport: relativeImport,
		NoPipe:         noPipe,
		NoSplit:        noSplit,
	}
	cfg.Dialect = pick(dialect, given("dialect"), settings.Dialect)
	cfg.Sep = pick(sep, given("s", "sep"), settings.Sep)
	cfg.PrintSep = render.DefaultSeparator
	if given("p", "print-sep") || settings.PrintSep != nil {
		cfg.PrintSep = pick(printSep, given("p", "print-sep"), settings.PrintSep)
	}
	cfg.LogLevel = pick(logLevel, given("log-level"), settings.LogLevel)
	cfg.LogFormat = pick(logFormat, given("log-format"), settings.LogFormat)
	if !given("relative-import") && settings.RelativeImport != nil {
		cfg.RelativeImport = *settings.RelativeImport
	}

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "mode", appConfig.Mode().String(), "dialect", appConfig.Dialect)
	return appConfig, false, nil
}

// parseInterspersed parses flags appearing before and after positional
// arguments. Everything after "--" is positional.
func parseInterspersed(flagSet *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	rest := args
	for {
		if err := flagSet.Parse(rest); err != nil {
			if name, ok := danglingFlag(flagSet, rest); ok {
				return nil, errs.Wrapf(errs.ErrMissingFlagValue, "flag -%s needs a value", name)
			}
			return nil, err
		}
		remaining := flagSet.Args()
		consumed := len(rest) - len(remaining)
		if consumed > 0 && rest[consumed-1] == "--" {
			return append(positional, remaining...), nil
		}
		if len(remaining) == 0 {
			return positional, nil
		}
		positional = append(positional, remaining[0])
		rest = remaining[1:]
	}
}

// danglingFlag reports the value-taking flag that ends args with no value
// after it, such as the -s in "pys arg1 -s".
func danglingFlag(flagSet *flag.FlagSet, args []string) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	last := args[len(args)-1]
	if !strings.HasPrefix(last, "-") || last == "-" || last == "--" || strings.Contains(last, "=") {
		return "", false
	}
	name := strings.TrimLeft(last, "-")
	f := flagSet.Lookup(name)
	if f == nil {
		return "", false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return "", false
	}
	return name, true
}

// pick returns the flag value when the flag was given, else the settings
// value, else the flag's zero value.
func pick(flagValue string, flagGiven bool, setting *string) string {
	if flagGiven || setting == nil {
		return flagValue
	}
	return *setting
}
