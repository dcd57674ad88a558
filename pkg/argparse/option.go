// Package argparse converts raw command-line tokens into a validated, typed
// argument mapping described by a declarative Schema.
package argparse

import (
	"fmt"
	"strings"
)

// OptionType governs how a raw token value is cast and validated.
// The zero value is "unset" and normalizes to String.
type OptionType int

const (
	String OptionType = iota + 1
	Number
	Boolean
)

// String returns the lowercase type name used in help output and TOML schemas.
func (t OptionType) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "unset"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t OptionType) MarshalText() ([]byte, error) {
	if t == 0 {
		return []byte{}, nil
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so option types can be
// declared by name ("string", "number", "boolean") in schema files.
func (t *OptionType) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "":
		*t = 0
	case "string":
		*t = String
	case "number":
		*t = Number
	case "boolean", "bool":
		*t = Boolean
	default:
		return fmt.Errorf("unknown option type %q", string(text))
	}
	return nil
}

// Option describes one positional argument or named option.
type Option struct {
	Key         string     `toml:"key"`
	Type        OptionType `toml:"type"`
	Alias       string     `toml:"alias"`       // single character, named options only
	Description string     `toml:"description"`
	Default     any        `toml:"default"`     // nil means no default
	Choices     []any      `toml:"choices"`
}

// HasDefault reports whether the option declares a default value.
// A positional without a default is required.
func (o Option) HasDefault() bool {
	return o.Default != nil
}

func (o Option) normalized() Option {
	if o.Type == 0 {
		o.Type = String
	}
	if o.Choices != nil {
		o.Choices = append([]any(nil), o.Choices...)
	}
	return o
}
