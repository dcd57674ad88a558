// Package command defines the Command contract and the runner and
// dispatcher that turn a raw argument vector into a handled invocation and
// a process exit code.
package command

import (
	"context"
	"io"

	"github.com/nightconcept/subcmd/pkg/argparse"
)

// Command is one invocable unit of a program. Implementations usually embed
// Base and add Handle.
type Command interface {
	// Key is the subcommand name used for dispatch.
	Key() string

	// Description is the one-line summary shown in listings and help.
	Description() string

	// Schema returns the normalized argument schema.
	Schema() argparse.Schema

	// Handle runs the command with parsed arguments. A returned
	// *argparse.ArgumentError is reported like a parse error, minus the help screen.
	Handle(ctx context.Context, args argparse.Arguments) (Result, error)
}

// Helper is implemented by commands that render their own help screen
// instead of the default HelpPrinter output.
type Helper interface {
	Help(w io.Writer)
}

// TearDowner is implemented by commands that release resources after Handle
// returns.
type TearDowner interface {
	Teardown(ctx context.Context) error
}

// Factory constructs a Command. Dispatchers call each factory exactly once.
type Factory func() Command

// Result is the outcome of a completed handler. The zero value means the
// handler completed without choosing an exit code.
type Result struct {
	code     int
	explicit bool
}

// Completed reports success with the default exit code 0.
func Completed() Result {
	return Result{}
}

// ExitWith reports completion with an explicit exit code.
func ExitWith(code int) Result {
	return Result{code: code, explicit: true}
}

// Code returns the exit code for the result.
func (r Result) Code() int {
	if !r.explicit {
		return 0
	}
	return r.code
}

// Explicit reports whether the handler chose the exit code.
func (r Result) Explicit() bool {
	return r.explicit
}

// Base carries the declarative part of a command. Embed it and implement
// Handle to get a complete Command.
type Base struct {
	Name       string
	Summary    string
	Positional []argparse.Option
	Options    []argparse.Option

	normalized *argparse.Schema
}

// Key implements Command.
func (b *Base) Key() string {
	return b.Name
}

// Description implements Command.
func (b *Base) Description() string {
	return b.Summary
}

// Init normalizes the declared schema once and caches it. Calling it again
// returns the cached schema; edits to Positional or Options after the first
// call are ignored until Reset.
func (b *Base) Init() argparse.Schema {
	if b.normalized == nil {
		s := argparse.Schema{Positional: b.Positional, Options: b.Options}.Normalize()
		b.normalized = &s
	}
	return *b.normalized
}

// Schema implements Command.
func (b *Base) Schema() argparse.Schema {
	return b.Init()
}

// Reset drops the cached schema so the next Init picks up edits.
func (b *Base) Reset() {
	b.normalized = nil
}

// Teardown is a no-op.
func (b *Base) Teardown(context.Context) error {
	return nil
}
