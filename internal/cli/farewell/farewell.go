// Package farewell implements the 'farewell' example command. Its argument
// schema is declared in TOML.
package farewell

import (
	"context"
	_ "embed"
	"io"
	"slices"

	"github.com/fatih/color"

	"github.com/nightconcept/subcmd/pkg/argparse"
	"github.com/nightconcept/subcmd/pkg/command"
)

//go:embed schema.toml
var schemaTOML string

var schema = argparse.MustDecodeSchema(schemaTOML)

// Command says goodbye.
type Command struct {
	command.Base
	out io.Writer
}

// FarewellCmd returns a factory for the 'farewell' command writing to out.
func FarewellCmd(out io.Writer) command.Factory {
	return func() command.Command { return New(out) }
}

// New returns the 'farewell' command writing to out. Each command gets its
// own copy of the decoded schema.
func New(out io.Writer) *Command {
	return &Command{
		Base: command.Base{
			Name:       "farewell",
			Summary:    "say goodbye",
			Positional: cloneOptions(schema.Positional),
			Options:    cloneOptions(schema.Options),
		},
		out: out,
	}
}

func cloneOptions(opts []argparse.Option) []argparse.Option {
	out := slices.Clone(opts)
	for i := range out {
		out[i].Choices = slices.Clone(out[i].Choices)
	}
	return out
}

func (c *Command) Handle(_ context.Context, args argparse.Arguments) (command.Result, error) {
	farewell := "goodbye"
	if args.Bool("informal") {
		farewell = "later"
	}

	_, err := color.New(color.FgYellow).Fprintf(c.out, "%s %s %s\n", farewell, args.String("fname"), args.String("lname"))
	return command.Completed(), err
}
