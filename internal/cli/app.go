// Package cli implements the fnpipe command.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/validation"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitRuntime = 1
	ExitUsage   = 2
)

const usage = `Usage: fnpipe <command> [flags]

Commands:
  run       run a pipeline definition over numbers
  validate  check a pipeline definition and print its stages
  list      list the catalog functions
  version   print build information

Run "fnpipe <command> --help" for command flags.
`

// IO bundles the process streams.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type commandFunc func(ctx context.Context, streams IO, args []string) error

var commands = map[string]commandFunc{
	"run":      runCommand,
	"validate": validateCommand,
	"list":     listCommand,
	"version":  versionCommand,
}

// Run executes fnpipe with args (without the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, streams IO) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(streams.Stderr, usage)
		return ExitUsage
	}
	switch args[0] {
	case "-h", "--help", "help":
		_, _ = fmt.Fprint(streams.Stdout, usage)
		return ExitOK
	}

	cmd, ok := commands[args[0]]
	if !ok {
		_, _ = fmt.Fprintf(streams.Stderr, "fnpipe: unknown command %q\n\n%s", args[0], usage)
		return ExitUsage
	}

	err := cmd(ctx, streams, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, pflag.ErrHelp):
		return ExitOK
	}

	var uerr *usageError
	if stderrors.As(err, &uerr) {
		_, _ = fmt.Fprintf(streams.Stderr, "fnpipe %s: %v\n", args[0], uerr.err)
		return ExitUsage
	}
	writeError(streams.Stderr, formatOf(err), err)
	return exitCode(err)
}

// exitCode maps usage and definition errors to ExitUsage and everything
// else, including stage function errors, to ExitRuntime.
func exitCode(err error) int {
	if appErr, ok := errors.AsAppError(err); ok && errors.IsUsageCode(appErr.Code) {
		return ExitUsage
	}
	return ExitRuntime
}

// usageError marks flag and argument problems.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func formatOf(err error) string {
	var f *formattedError
	if stderrors.As(err, &f) {
		return f.format
	}
	return outputText
}

// formattedError carries the output format chosen by the command so
// errors are printed the same way as results.
type formattedError struct {
	format string
	err    error
}

func (e *formattedError) Error() string { return e.err.Error() }
func (e *formattedError) Unwrap() error { return e.err }

func withFormat(format string, err error) error {
	if err == nil {
		return nil
	}
	return &formattedError{format: format, err: err}
}

// newFlagSet creates a subcommand flag set with the shared --config flag.
func newFlagSet(name string, streams IO, configPath *string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(streams.Stdout)
	fs.SortFlags = false
	fs.StringVarP(configPath, "config", "c", "", "config file (default: ./fnpipe.yml or ./config/fnpipe.yml)")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(streams.Stdout, "Usage: fnpipe %s [flags]\n\nFlags:\n%s", name, fs.FlagUsages())
	}
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return err
		}
		return &usageError{err: err}
	}
	return nil
}

func checkOutput(format string) error {
	v := validation.New().OneOf("output", format, outputFormats)
	if err := v.Err(); err != nil {
		return &usageError{err: err}
	}
	return nil
}
