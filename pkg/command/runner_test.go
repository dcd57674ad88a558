package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/subcmd/pkg/argparse"
	"github.com/nightconcept/subcmd/pkg/command"
)

func TestRunner_ParseArgs(t *testing.T) {
	t.Parallel()
	cmd := newMockCommand()
	cmd.Positional = []argparse.Option{{Key: "arg1"}, {Key: "arg2"}}

	runner := command.NewRunner(cmd)
	args, err := runner.ParseArgs([]string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, argparse.Arguments{"arg1": "a", "arg2": "b"}, args)
	assert.Same(t, cmd, runner.Command())
}

func TestRunner_Invoke(t *testing.T) {
	t.Parallel()

	t.Run("void result exits 0", func(t *testing.T) {
		t.Parallel()
		cmd := newMockCommand()
		var out output

		code := command.NewRunner(cmd, out.options()...).Invoke(context.Background(), nil)

		assert.Equal(t, 0, code)
		assert.Equal(t, []argparse.Arguments{{}}, cmd.calls)
		assert.Empty(t, out.stderr.String())
		assert.False(t, out.exited, "Invoke must never apply the exit code")
	})

	t.Run("explicit result is the exit code", func(t *testing.T) {
		t.Parallel()
		cmd := newMockCommand()
		cmd.result = command.ExitWith(42)
		var out output

		code := command.NewRunner(cmd, out.options()...).Invoke(context.Background(), []string{})

		assert.Equal(t, 42, code)
		assert.Len(t, cmd.calls, 1)
	})

	t.Run("handler error is reported verbatim", func(t *testing.T) {
		t.Parallel()
		cmd := newMockCommand()
		cmd.err = errors.New("Test error")
		var out output

		code := command.NewRunner(cmd, out.options()...).Invoke(context.Background(), nil)

		assert.Equal(t, 1, code)
		assert.Equal(t, "Error: Test error\n", out.stderr.String())
		assert.Empty(t, out.stdout.String(), "help is only shown for parse errors")
	})

	t.Run("argument error from handler skips help", func(t *testing.T) {
		t.Parallel()
		cmd := newMockCommand()
		cmd.err = argparse.NewArgumentError("Name %q is reserved", "root")
		var out output

		code := command.NewRunner(cmd, out.options()...).Invoke(context.Background(), nil)

		assert.Equal(t, 1, code)
		assert.Equal(t, "Error: Name \"root\" is reserved\n", out.stderr.String())
		assert.Empty(t, out.stdout.String())
	})

	t.Run("parse error shows help and skips handler", func(t *testing.T) {
		t.Parallel()
		cmd := newMockCommand()
		var out output

		code := command.NewRunner(cmd, out.options()...).Invoke(context.Background(), []string{"--invalid-arg"})

		assert.Equal(t, 1, code)
		assert.Equal(t, "Error: Invalid option key: --invalid-arg\n", out.stderr.String())
		assert.Contains(t, out.stdout.String(), "Usage: mock\n")
		assert.Empty(t, cmd.calls)
		assert.Zero(t, cmd.teardowns, "teardown runs only after the handler")
	})

	t.Run("panicking handler exits 1", func(t *testing.T) {
		t.Parallel()
		cmd := newMockCommand()
		cmd.panicWith = "boom"
		var out output

		code := command.NewRunner(cmd, out.options()...).Invoke(context.Background(), nil)

		assert.Equal(t, 1, code)
		assert.Equal(t, "Error: command mock panicked: boom\n", out.stderr.String())
		assert.Equal(t, 1, cmd.teardowns)
	})

	t.Run("teardown after handler", func(t *testing.T) {
		t.Parallel()
		cmd := newMockCommand()
		cmd.err = errors.New("fails anyway")
		var out output

		command.NewRunner(cmd, out.options()...).Invoke(context.Background(), nil)

		assert.Equal(t, 1, cmd.teardowns)
	})
}

func TestRunner_ProgramInHelp(t *testing.T) {
	t.Parallel()
	cmd := newMockCommand()
	cmd.Positional = []argparse.Option{{Key: "input"}}
	var out output

	opts := append(out.options(), command.WithProgram("tool"))
	code := command.NewRunner(cmd, opts...).Invoke(context.Background(), nil)

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: Missing positional arguments: input\n", out.stderr.String())
	assert.Contains(t, out.stdout.String(), "Usage: tool mock <input>\n")
}

// TestRunner_Run verifies the standalone mode used by single-command
// programs: the code is returned and only applied under force exit.
func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns code without exiting", func(t *testing.T) {
		t.Parallel()
		cmd := newMockCommand()
		cmd.Positional = []argparse.Option{{Key: "name"}}
		var out output

		opts := append(out.options(), command.WithArgs([]string{"Ann"}))
		code := command.NewRunner(cmd, opts...).Run(context.Background())

		assert.Equal(t, 0, code)
		assert.False(t, out.exited)
		assert.Equal(t, []argparse.Arguments{{"name": "Ann"}}, cmd.calls)
	})

	t.Run("force exit applies the code", func(t *testing.T) {
		t.Parallel()
		cmd := newMockCommand()
		cmd.result = command.ExitWith(7)
		var out output

		opts := append(out.options(), command.WithArgs([]string{}), command.WithForceExit(true))
		code := command.NewRunner(cmd, opts...).Run(context.Background())

		assert.Equal(t, 7, code)
		assert.True(t, out.exited)
		assert.Equal(t, 7, out.exitCode)
	})
}
