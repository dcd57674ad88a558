package argparse

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DecodeSchema reads a schema declared in TOML:
//
//	[[positional]]
//	key = "fname"
//	default = "Tom"
//
//	[[options]]
//	key = "informal"
//	alias = "i"
//	type = "boolean"
//	default = false
//
// Unknown keys are rejected and the decoded schema is validated.
func DecodeSchema(r io.Reader) (Schema, error) {
	var s Schema
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to decode schema: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Schema{}, fmt.Errorf("unknown schema fields: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return Schema{}, fmt.Errorf("invalid schema: %w", err)
	}
	return s, nil
}

// MustDecodeSchema is like DecodeSchema for schemas embedded in source code.
// It panics if the schema is invalid.
func MustDecodeSchema(text string) Schema {
	s, err := DecodeSchema(strings.NewReader(text))
	if err != nil {
		panic(err)
	}
	return s
}

// LoadSchema reads a TOML schema file from path.
func LoadSchema(path string) (Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to open schema file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	s, err := DecodeSchema(f)
	if err != nil {
		return Schema{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
