package argparse_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/subcmd/pkg/argparse"
)

func TestSchema_Normalize(t *testing.T) {
	t.Parallel()
	schema := argparse.Schema{
		Positional: []argparse.Option{{Key: "pos1", Description: "Positional argument 1"}},
		Options: []argparse.Option{
			{Key: "opt1"},
			{Key: "count", Type: argparse.Number, Description: "How many"},
		},
	}

	normalized := schema.Normalize()

	assert.Equal(t, argparse.String, normalized.Positional[0].Type)
	assert.Equal(t, "Positional argument 1", normalized.Positional[0].Description)
	assert.Equal(t, argparse.String, normalized.Options[0].Type)
	assert.Equal(t, "", normalized.Options[0].Description)
	assert.Equal(t, argparse.Number, normalized.Options[1].Type, "explicit type must win")

	assert.Equal(t, argparse.OptionType(0), schema.Options[0].Type, "Normalize must not mutate the receiver")
}

func TestSchema_NormalizeIdempotent(t *testing.T) {
	t.Parallel()
	schema := argparse.Schema{
		Positional: []argparse.Option{{Key: "a"}, {Key: "b", Default: "x"}},
		Options:    []argparse.Option{{Key: "c", Alias: "c", Choices: []any{"x", "y"}}},
	}

	once := schema.Normalize()
	twice := once.Normalize()
	assert.Equal(t, once, twice)
}

func TestSchema_NormalizeCopiesChoices(t *testing.T) {
	t.Parallel()
	choices := []any{"x", "y"}
	schema := argparse.Schema{Options: []argparse.Option{{Key: "c", Choices: choices}}}

	normalized := schema.Normalize()
	choices[0] = "changed"

	assert.Equal(t, "x", normalized.Options[0].Choices[0])
}

func TestSchema_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		schema  argparse.Schema
		wantErr string
	}{
		{
			name: "valid",
			schema: argparse.Schema{
				Positional: []argparse.Option{{Key: "input"}},
				Options: []argparse.Option{
					{Key: "verbose", Alias: "v", Type: argparse.Boolean, Default: false},
					{Key: "level", Type: argparse.Number, Default: 2, Choices: []any{1, 2, 3.5}},
					{Key: "input"},
				},
			},
		},
		{
			name:    "empty positional key",
			schema:  argparse.Schema{Positional: []argparse.Option{{Description: "nameless"}}},
			wantErr: "positional argument with empty key",
		},
		{
			name:    "duplicate positional key",
			schema:  argparse.Schema{Positional: []argparse.Option{{Key: "a"}, {Key: "a"}}},
			wantErr: "duplicate positional key: a",
		},
		{
			name:    "duplicate option key",
			schema:  argparse.Schema{Options: []argparse.Option{{Key: "a"}, {Key: "a"}}},
			wantErr: "duplicate option key: a",
		},
		{
			name: "duplicate alias",
			schema: argparse.Schema{Options: []argparse.Option{
				{Key: "verbose", Alias: "v"}, {Key: "version", Alias: "v"},
			}},
			wantErr: "duplicate option alias: v (used by verbose and version)",
		},
		{
			name:    "long alias",
			schema:  argparse.Schema{Options: []argparse.Option{{Key: "verbose", Alias: "vv"}}},
			wantErr: `alias for option verbose must be a single character, got "vv"`,
		},
		{
			name:    "positional alias",
			schema:  argparse.Schema{Positional: []argparse.Option{{Key: "input", Alias: "i"}}},
			wantErr: "positional argument input cannot have an alias",
		},
		{
			name:    "default type mismatch",
			schema:  argparse.Schema{Options: []argparse.Option{{Key: "n", Type: argparse.Number, Default: "ten"}}},
			wantErr: "default for n does not match type number: ten",
		},
		{
			name:    "choice type mismatch",
			schema:  argparse.Schema{Options: []argparse.Option{{Key: "c", Choices: []any{"red", 7}}}},
			wantErr: "choice for c does not match type string: 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.schema.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptionType_Text(t *testing.T) {
	t.Parallel()

	for _, typ := range []argparse.OptionType{argparse.String, argparse.Number, argparse.Boolean} {
		text, err := typ.MarshalText()
		require.NoError(t, err)

		var decoded argparse.OptionType
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, typ, decoded)
	}

	var typ argparse.OptionType
	assert.NoError(t, typ.UnmarshalText([]byte("bool")))
	assert.Equal(t, argparse.Boolean, typ)
	assert.EqualError(t, typ.UnmarshalText([]byte("array")), `unknown option type "array"`)
}

const greetSchemaTOML = `
[[positional]]
key = "fname"
description = "first name"
default = "Tom"

[[positional]]
key = "lname"
description = "last name"
default = "Tester"

[[options]]
key = "informal"
alias = "i"
type = "boolean"
default = false
description = "Informal?"

[[options]]
key = "times"
type = "number"
choices = [1, 2, 3]
`

func TestDecodeSchema(t *testing.T) {
	t.Parallel()
	schema, err := argparse.DecodeSchema(strings.NewReader(greetSchemaTOML))
	require.NoError(t, err)

	require.Len(t, schema.Positional, 2)
	require.Len(t, schema.Options, 2)
	assert.Equal(t, "fname", schema.Positional[0].Key)
	assert.Equal(t, "Tom", schema.Positional[0].Default)
	assert.Equal(t, argparse.OptionType(0), schema.Positional[0].Type)
	assert.Equal(t, argparse.Boolean, schema.Options[0].Type)
	assert.Equal(t, "i", schema.Options[0].Alias)
	assert.Equal(t, false, schema.Options[0].Default)

	args, err := argparse.Parse(schema, []string{"Ann", "-i", "--times", "2"})
	require.NoError(t, err)
	assert.Equal(t, argparse.Arguments{
		"fname":    "Ann",
		"lname":    "Tester",
		"informal": true,
		"times":    float64(2),
	}, args)

	_, err = argparse.Parse(schema, []string{"--times=4"})
	assert.EqualError(t, err, "Invalid choice for argument: times (4). Allowed choices are [1, 2, 3]")
}

func TestDecodeSchema_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		_, err := argparse.DecodeSchema(strings.NewReader("[[options]]\nkey = \"a\"\nshort = \"x\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown schema fields: options.short")
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		_, err := argparse.DecodeSchema(strings.NewReader("[[options]]\nkey = \"a\"\ntype = \"list\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode schema")
	})

	t.Run("invalid schema", func(t *testing.T) {
		t.Parallel()
		_, err := argparse.DecodeSchema(strings.NewReader("[[options]]\nkey = \"a\"\n[[options]]\nkey = \"a\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate option key: a")
	})

	t.Run("must decode panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { argparse.MustDecodeSchema("[[options]]\n") })
	})
}

func TestLoadSchema(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.toml")
	require.NoError(t, os.WriteFile(path, []byte(greetSchemaTOML), 0644))

	schema, err := argparse.LoadSchema(path)
	require.NoError(t, err)
	assert.Len(t, schema.Options, 2)

	_, err = argparse.LoadSchema(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open schema file")
}
