// Package greet implements the 'greet' example command.
package greet

import (
	"context"
	"io"

	"github.com/fatih/color"

	"github.com/nightconcept/subcmd/pkg/argparse"
	"github.com/nightconcept/subcmd/pkg/command"
)

// Command says hello to a person, formally unless --informal is given.
type Command struct {
	command.Base
	out io.Writer
}

// GreetCmd returns a factory for the 'greet' command writing to out.
func GreetCmd(out io.Writer) command.Factory {
	return func() command.Command { return New(out) }
}

// New returns the 'greet' command writing its greeting to out.
func New(out io.Writer) *Command {
	return &Command{
		Base: command.Base{
			Name:    "greet",
			Summary: "say hello",
			Positional: []argparse.Option{
				{Key: "fname", Type: argparse.String, Description: "first name", Default: "Tom"},
				{Key: "lname", Type: argparse.String, Description: "last name", Default: "Tester"},
			},
			Options: []argparse.Option{
				{Key: "informal", Type: argparse.Boolean, Default: false, Description: "Informal?"},
			},
		},
		out: out,
	}
}

// Handle prints "hello <fname> <lname>", or "yo ..." when informal.
func (c *Command) Handle(_ context.Context, args argparse.Arguments) (command.Result, error) {
	greeting := "hello"
	if args.Bool("informal") {
		greeting = "yo"
	}

	_, err := color.New(color.FgGreen).Fprintf(c.out, "%s %s %s\n", greeting, args.String("fname"), args.String("lname"))
	return command.Completed(), err
}
