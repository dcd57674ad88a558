package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
)

// Dispatcher routes the first token of an argument vector to one of a fixed
// set of commands.
type Dispatcher struct {
	commands []Command
	opts     []Option
	settings
}

// NewDispatcher constructs every command from factories, in order. It
// rejects nil commands, empty or duplicate keys, and invalid schemas so that
// lookups never depend on registration order.
func NewDispatcher(factories []Factory, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		commands: make([]Command, 0, len(factories)),
		opts:     opts,
		settings: newSettings(opts),
	}

	var errs []error
	seen := make(map[string]bool, len(factories))
	for i, factory := range factories {
		if factory == nil {
			errs = append(errs, fmt.Errorf("command factory %d is nil", i))
			continue
		}
		cmd := factory()
		if cmd == nil {
			errs = append(errs, fmt.Errorf("command factory %d returned nil", i))
			continue
		}
		key := cmd.Key()
		if key == "" {
			errs = append(errs, fmt.Errorf("command %d has an empty key", i))
			continue
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf("command already registered: %s", key))
			continue
		}
		seen[key] = true
		if err := cmd.Schema().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("command %s: %w", key, err))
			continue
		}
		d.commands = append(d.commands, cmd)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}
	return d, nil
}

// Commands returns the registered commands in registration order.
func (d *Dispatcher) Commands() []Command {
	return append([]Command(nil), d.commands...)
}

// Lookup returns the first command registered under key.
func (d *Dispatcher) Lookup(key string) (Command, bool) {
	for _, cmd := range d.commands {
		if cmd.Key() == key {
			return cmd, true
		}
	}
	return nil, false
}

// Run dispatches os.Args[1:] (or the WithArgs vector) and terminates the
// process with the resulting exit code.
func (d *Dispatcher) Run(ctx context.Context) {
	code, err := d.Dispatch(ctx, d.runArgs())
	if err != nil {
		_, _ = fmt.Fprintf(d.stderr, "Error running command: %v\n", err)
		code = 1
	}
	d.exit(code)
}

// Dispatch selects the subcommand named by args[0] and invokes it with the
// remaining tokens. Missing or unknown subcommands are user errors: they are
// reported with the subcommand listing and exit code 1, not returned as
// errors. The error return carries failures of the dispatch itself.
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) (code int, err error) {
	defer func() {
		if p := recover(); p != nil {
			code, err = 1, fmt.Errorf("dispatch panicked: %v", p)
		}
	}()

	if len(args) == 0 || args[0] == "" {
		_, _ = fmt.Fprintln(d.stderr, "Please provide a subcommand.")
		d.Help()
		return 1, nil
	}

	key := args[0]
	cmd, ok := d.Lookup(key)
	if !ok {
		_, _ = fmt.Fprintf(d.stderr, "Subcommand not found: %s\n", key)
		d.Help()
		return 1, nil
	}

	d.logger.Debug("dispatching subcommand", "command", key, "tokens", args[1:])
	return NewRunner(cmd, d.opts...).Invoke(ctx, args[1:]), nil
}

// Help writes the subcommand listing to stdout.
func (d *Dispatcher) Help() {
	keyColor := color.New(color.FgCyan).SprintFunc()

	_, _ = color.New(color.Bold).Fprintln(d.stdout, "Subcommands:")
	for _, cmd := range d.commands {
		_, _ = fmt.Fprintf(d.stdout, "  %s: %s\n", keyColor(cmd.Key()), cmd.Description())
	}
}
