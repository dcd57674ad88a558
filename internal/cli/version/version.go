// Package version implements the 'version' command, which reports the
// build version and can check it against a semantic version constraint.
package version

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"

	"github.com/nightconcept/subcmd/pkg/argparse"
	"github.com/nightconcept/subcmd/pkg/command"
)

// ExitUnsatisfied is returned when the build version does not satisfy the
// --satisfies constraint.
const ExitUnsatisfied = 2

// Command prints the program version.
type Command struct {
	command.Base
	version string
	out     io.Writer
}

// VersionCmd returns a factory for the 'version' command reporting v on out.
func VersionCmd(v string, out io.Writer) command.Factory {
	return func() command.Command { return New(v, out) }
}

// New returns the 'version' command reporting v on out.
func New(v string, out io.Writer) *Command {
	return &Command{
		Base: command.Base{
			Name:    "version",
			Summary: "print the version, optionally checking a constraint",
			Options: []argparse.Option{
				{
					Key:         "satisfies",
					Alias:       "s",
					Description: "exit with status 2 unless the version satisfies this constraint (e.g. '>= 1.2, < 2')",
				},
				{Key: "verbose", Type: argparse.Boolean, Default: false, Description: "With --satisfies, also print the parsed semantic version"},
			},
		},
		version: v,
		out:     out,
	}
}

// Handle prints the version. With --satisfies the version must parse as
// semver, and the result is reported along with exit status ExitUnsatisfied
// on a mismatch.
func (c *Command) Handle(_ context.Context, args argparse.Arguments) (command.Result, error) {
	constraint := args.String("satisfies")
	if constraint == "" {
		_, err := fmt.Fprintln(c.out, c.version)
		return command.Completed(), err
	}

	current, err := parseVersion(c.version)
	if err != nil {
		return command.Completed(), err
	}
	if args.Bool("verbose") {
		_, _ = fmt.Fprintf(c.out, "Parsed current semantic version: %s\n", current.String())
	}

	constraints, err := semver.NewConstraint(constraint)
	if err != nil {
		return command.Completed(), argparse.NewArgumentError("Invalid version constraint: %s (%v)", constraint, err)
	}

	if ok, errs := constraints.Validate(current); !ok {
		_, _ = color.New(color.FgRed).Fprintf(c.out, "%s does not satisfy %s\n", c.version, constraint)
		for _, e := range errs {
			_, _ = fmt.Fprintf(c.out, "  %v\n", e)
		}
		return command.ExitWith(ExitUnsatisfied), nil
	}

	_, err = color.New(color.FgGreen).Fprintf(c.out, "%s satisfies %s\n", c.version, constraint)
	return command.Completed(), err
}

// parseVersion parses v with or without a leading 'v'.
func parseVersion(v string) (*semver.Version, error) {
	parsed, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return nil, fmt.Errorf("error parsing current version '%s': %w. Ensure version is like vX.Y.Z or X.Y.Z", v, err)
	}
	return parsed, nil
}
