package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/nightconcept/subcmd/pkg/argparse"
)

// Runner drives a single command invocation: parse, handle, teardown, and
// classify the outcome into an exit code.
type Runner struct {
	cmd Command
	settings
}

// NewRunner returns a Runner for cmd.
func NewRunner(cmd Command, opts ...Option) *Runner {
	return &Runner{cmd: cmd, settings: newSettings(opts)}
}

// Command returns the command the runner drives.
func (r *Runner) Command() Command {
	return r.cmd
}

// ParseArgs parses tokens against the command's schema.
func (r *Runner) ParseArgs(tokens []string) (argparse.Arguments, error) {
	return argparse.Parse(r.cmd.Schema(), tokens)
}

// Run invokes the command with os.Args[1:] (or the WithArgs vector) for
// single-command programs. The exit code is returned to the caller; the
// process only terminates when the runner was built WithForceExit.
func (r *Runner) Run(ctx context.Context) int {
	code := r.Invoke(ctx, r.runArgs())
	if r.forceExit {
		r.exit(code)
	}
	return code
}

// Invoke runs the command with tokens and returns the exit code. Errors are
// reported on stderr; it never terminates the process.
func (r *Runner) Invoke(ctx context.Context, tokens []string) int {
	key := r.cmd.Key()

	args, err := r.ParseArgs(tokens)
	if err != nil {
		r.logger.Debug("argument parsing failed", "command", key, "error", err)
		return r.report(err, true)
	}

	r.logger.Debug("invoking command", "command", key, "args", args)
	result, err := r.handle(ctx, args)
	r.teardown(ctx)
	if err != nil {
		r.logger.Debug("command failed", "command", key, "error", err)
		return r.report(err, false)
	}

	r.logger.Debug("command completed", "command", key, "exit_code", result.Code())
	return result.Code()
}

// ShowHelp writes the command's help screen to stdout.
func (r *Runner) ShowHelp() {
	r.helpPrinter().Render(r.stdout, r.cmd)
}

func (r *Runner) handle(ctx context.Context, args argparse.Arguments) (result Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("command %s panicked: %v", r.cmd.Key(), p)
		}
	}()
	return r.cmd.Handle(ctx, args)
}

func (r *Runner) teardown(ctx context.Context) {
	td, ok := r.cmd.(TearDowner)
	if !ok {
		return
	}
	if err := td.Teardown(ctx); err != nil {
		r.logger.Warn("command teardown failed", "command", r.cmd.Key(), "error", err)
	}
}

// report prints err and returns exit code 1. The help screen is shown only
// for argument errors raised while parsing.
func (r *Runner) report(err error, fromParse bool) int {
	var argErr *argparse.ArgumentError
	if errors.As(err, &argErr) {
		_, _ = fmt.Fprintf(r.stderr, "Error: %s\n", argErr.Message)
		if fromParse {
			r.ShowHelp()
		}
		return 1
	}
	_, _ = fmt.Fprintf(r.stderr, "Error: %v\n", err)
	return 1
}
