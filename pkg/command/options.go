package command

import (
	"io"
	"log/slog"
	"os"
)

type settings struct {
	stdout    io.Writer
	stderr    io.Writer
	logger    *slog.Logger
	exit      func(code int)
	forceExit bool
	program   string
	args      []string
	footer    func(w io.Writer)
}

// Option configures a Runner or Dispatcher.
type Option func(*settings)

func newSettings(opts []Option) settings {
	s := settings{
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: slog.New(slog.DiscardHandler),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithStdout sets the writer for help screens and listings.
func WithStdout(w io.Writer) Option {
	return func(s *settings) { s.stdout = w }
}

// WithStderr sets the writer for error reports.
func WithStderr(w io.Writer) Option {
	return func(s *settings) { s.stderr = w }
}

// WithLogger sets the logger for debug output. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithExit replaces os.Exit as the function that applies the exit code.
func WithExit(exit func(code int)) Option {
	return func(s *settings) { s.exit = exit }
}

// WithForceExit makes a standalone Runner terminate the process after the
// command completes instead of returning the exit code to the caller.
func WithForceExit(force bool) Option {
	return func(s *settings) { s.forceExit = force }
}

// WithProgram sets the program name shown in usage lines.
func WithProgram(name string) Option {
	return func(s *settings) { s.program = name }
}

// WithArgs replaces os.Args[1:] as the argument vector used by Run.
func WithArgs(args []string) Option {
	return func(s *settings) { s.args = args }
}

// WithHelpFooter sets a footer written after every generated help screen.
func WithHelpFooter(footer func(w io.Writer)) Option {
	return func(s *settings) { s.footer = footer }
}

func (s settings) runArgs() []string {
	if s.args != nil {
		return s.args
	}
	if len(os.Args) < 2 {
		return []string{}
	}
	return os.Args[1:]
}

func (s settings) helpPrinter() HelpPrinter {
	return HelpPrinter{Program: s.program, Footer: s.footer}
}
