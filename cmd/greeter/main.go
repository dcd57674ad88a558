// Command greeter is the example program for the subcmd packages. It
// dispatches to the greet, farewell and version commands, either through the
// built-in dispatcher or through urfave/cli depending on greeter.toml.
//
// When the binary is invoked under the name of one of its commands (for
// example through a symlink called "greet"), that command runs standalone.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/subcmd/internal/cli/farewell"
	"github.com/nightconcept/subcmd/internal/cli/greet"
	versioncmd "github.com/nightconcept/subcmd/internal/cli/version"
	"github.com/nightconcept/subcmd/internal/core/config"
	"github.com/nightconcept/subcmd/internal/core/logging"
	"github.com/nightconcept/subcmd/pkg/command"
)

// version is the application version, set at build time.
var version = "dev"

// EnvConfigDir names the directory searched for greeter.toml. Defaults to
// the working directory.
const EnvConfigDir = "GREETER_CONFIG_DIR"

func main() {
	os.Exit(run(context.Background(), os.Args, os.Getenv, os.Stdout, os.Stderr, os.Exit))
}

// run is main with the process fundamentals passed in. It returns the exit
// code; exit is only called by standalone commands configured to force it.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer, exit func(int)) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dir := getenv(EnvConfigDir)
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(dir, getenv)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := slog.New(logging.NewTerminalHandler(stderr, cfg.Level()))
	logger.Debug("configuration loaded", "program", cfg.Program, "frontend", cfg.Frontend, "log_level", cfg.LogLevel)

	factories := []command.Factory{
		farewell.FarewellCmd(stdout),
		greet.GreetCmd(stdout),
		versioncmd.VersionCmd(version, stdout),
	}
	opts := []command.Option{
		command.WithStdout(stdout),
		command.WithStderr(stderr),
		command.WithLogger(logger),
		command.WithExit(exit),
		command.WithProgram(cfg.Program),
	}

	if len(args) > 0 {
		if code, ok := runStandalone(ctx, filepath.Base(args[0]), args[1:], factories, cfg, opts); ok {
			return code
		}
	}

	var tokens []string
	if len(args) > 1 {
		tokens = args[1:]
	}

	switch cfg.Frontend {
	case config.FrontendUrfave:
		return runApp(ctx, cfg.Program, tokens, factories, stderr, opts)
	default:
		return runDispatcher(ctx, tokens, factories, stderr, opts)
	}
}

// runStandalone runs the command whose key equals name, if there is one.
func runStandalone(ctx context.Context, name string, tokens []string, factories []command.Factory, cfg *config.Config, opts []command.Option) (int, bool) {
	for _, factory := range factories {
		cmd := factory()
		if cmd.Key() != name {
			continue
		}
		runner := command.NewRunner(cmd, append(opts,
			command.WithProgram(""),
			command.WithArgs(tokens),
			command.WithForceExit(cfg.ForceExit),
		)...)
		return runner.Run(ctx), true
	}
	return 0, false
}

func runDispatcher(ctx context.Context, tokens []string, factories []command.Factory, stderr io.Writer, opts []command.Option) int {
	d, err := command.NewDispatcher(factories, opts...)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	code, err := d.Dispatch(ctx, tokens)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error running command: %v\n", err)
		return 1
	}
	return code
}

func runApp(ctx context.Context, program string, tokens []string, factories []command.Factory, stderr io.Writer, opts []command.Option) int {
	app, err := command.NewApp(program, factories, opts...)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	app.Version = version
	app.ExitErrHandler = func(*cli.Context, error) {}

	err = app.RunContext(ctx, append([]string{program}, tokens...))
	if err == nil {
		return 0
	}

	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		if msg := coder.Error(); msg != "" {
			_, _ = fmt.Fprintln(stderr, msg)
		}
		return coder.ExitCode()
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
