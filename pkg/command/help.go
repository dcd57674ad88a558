package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/nightconcept/subcmd/pkg/argparse"
)

// Describer is the part of a Command the help screen reads.
type Describer interface {
	Key() string
	Description() string
	Schema() argparse.Schema
}

// HelpPrinter renders a usage screen from a command's normalized schema.
type HelpPrinter struct {
	// Program prefixes the usage line, e.g. "greeter" in "Usage: greeter greet".
	Program string

	// Footer, if set, is written after the option list.
	Footer func(w io.Writer)
}

// Render writes the help screen for cmd to w. Commands implementing Helper
// render themselves; everything else goes through Print.
func (p HelpPrinter) Render(w io.Writer, cmd Describer) {
	if h, ok := cmd.(Helper); ok {
		h.Help(w)
		return
	}
	p.Print(w, cmd)
}

// Print writes the full help screen.
func (p HelpPrinter) Print(w io.Writer, cmd Describer) {
	schema := cmd.Schema().Normalize()

	p.printSignature(w, cmd.Key(), schema)
	_, _ = fmt.Fprintln(w, cmd.Description())
	_, _ = fmt.Fprintln(w)

	_, _ = color.New(color.Bold).Fprintln(w, "Options:")
	for _, pos := range schema.Positional {
		_, _ = fmt.Fprintf(w, "  <%s>: %s\n", pos.Key, pos.Description)
	}
	_, _ = fmt.Fprintln(w)
	for _, opt := range schema.Options {
		_, _ = fmt.Fprintln(w, OptionLine(opt))
	}
	_, _ = fmt.Fprintln(w)

	if p.Footer != nil {
		p.Footer(w)
	}
}

func (p HelpPrinter) printSignature(w io.Writer, key string, schema argparse.Schema) {
	_, _ = color.New(color.Bold).Fprint(w, "Usage:")
	_, _ = fmt.Fprintf(w, " %s\n", Signature(p.Program, key, schema))
}

// Signature builds "<program> <key> <pos1> ... --opt1 ..." with empty parts
// left out.
func Signature(program, key string, schema argparse.Schema) string {
	parts := make([]string, 0, 2+len(schema.Positional)+len(schema.Options))
	if program != "" {
		parts = append(parts, program)
	}
	parts = append(parts, key)
	parts = append(parts, PositionalUsage(schema))
	for _, opt := range schema.Options {
		parts = append(parts, "--"+opt.Key)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// PositionalUsage renders the positional list as "<a> <b>".
func PositionalUsage(schema argparse.Schema) string {
	names := make([]string, len(schema.Positional))
	for i, pos := range schema.Positional {
		names[i] = "<" + pos.Key + ">"
	}
	return strings.Join(names, " ")
}

// OptionLine renders one named option as shown in the help screen:
//
//	-o, --output: Output file {number} (default: 1) [choices: 1, 2]
//
// The type tag is omitted for string options.
func OptionLine(opt argparse.Option) string {
	var b strings.Builder
	b.WriteString("  ")
	if opt.Alias != "" {
		b.WriteString("-" + opt.Alias + ", ")
	}
	b.WriteString("--" + opt.Key + ": " + opt.Description)
	if opt.Type != argparse.String && opt.Type != 0 {
		b.WriteString(" {" + opt.Type.String() + "}")
	}
	if opt.HasDefault() {
		b.WriteString(" (default: " + argparse.FormatValue(opt.Default) + ")")
	}
	if len(opt.Choices) > 0 {
		b.WriteString(" [choices: " + argparse.JoinValues(opt.Choices) + "]")
	}
	return b.String()
}
