package command

import (
	"bytes"
	"strings"

	"github.com/urfave/cli/v2"
)

// NewApp registers the commands built by factories on a urfave/cli App.
// urfave/cli handles the app-level help and version flags; each subcommand
// skips its flag parsing and hands the raw tokens to a Runner, so parsing,
// validation and error reporting match the Dispatcher exactly. Non-zero exit
// codes are returned as cli.ExitCoder errors.
func NewApp(name string, factories []Factory, opts ...Option) (*cli.App, error) {
	d, err := NewDispatcher(factories, append(opts[:len(opts):len(opts)], WithProgram(name))...)
	if err != nil {
		return nil, err
	}

	app := &cli.App{
		Name:            name,
		Usage:           "Run one of the registered subcommands",
		Writer:          d.stdout,
		ErrWriter:       d.stderr,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			code, err := d.Dispatch(c.Context, c.Args().Slice())
			return exitError(code, err)
		},
	}

	for _, cmd := range d.commands {
		app.Commands = append(app.Commands, d.cliCommand(cmd))
	}
	return app, nil
}

func (d *Dispatcher) cliCommand(cmd Command) *cli.Command {
	var help bytes.Buffer
	d.helpPrinter().Render(&help, cmd)

	return &cli.Command{
		Name:            cmd.Key(),
		Usage:           cmd.Description(),
		ArgsUsage:       PositionalUsage(cmd.Schema()),
		Description:     strings.TrimRight(help.String(), "\n"),
		SkipFlagParsing: true,
		HideHelp:        true,
		Action: func(c *cli.Context) error {
			code := NewRunner(cmd, d.opts...).Invoke(c.Context, c.Args().Slice())
			return exitError(code, nil)
		},
	}
}

func exitError(code int, err error) error {
	if err != nil {
		return cli.Exit("Error running command: "+err.Error(), 1)
	}
	if code != 0 {
		return cli.Exit("", code)
	}
	return nil
}
