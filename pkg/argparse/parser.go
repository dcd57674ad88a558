package argparse

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Parser resolves tokens against a normalized schema in a single
// left-to-right pass with one token of lookahead.
type Parser struct {
	schema          Schema
	positionalIndex int
}

// NewParser returns a parser for schema. The schema is normalized first.
func NewParser(schema Schema) *Parser {
	return &Parser{schema: schema.Normalize()}
}

// Parse is a shorthand for NewParser(schema).Parse(tokens).
func Parse(schema Schema, tokens []string) (Arguments, error) {
	return NewParser(schema).Parse(tokens)
}

// Schema returns the normalized schema the parser works with.
func (p *Parser) Schema() Schema {
	return p.schema
}

// Parse converts tokens into typed arguments. Any mismatch with the schema is
// reported as an *ArgumentError.
func (p *Parser) Parse(tokens []string) (Arguments, error) {
	p.positionalIndex = 0
	matches := make(Arguments)

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		if isOptionKey(token) || isOptionAlias(token) {
			opt, raw, err := p.resolveNamed(token)
			if err != nil {
				return nil, err
			}
			if raw == nil {
				if opt.Type == Boolean {
					flag := ""
					raw = &flag
				} else {
					next, ok := valueToken(tokens, i+1)
					if !ok {
						return nil, errMissingValue(token)
					}
					raw = &next
					i++
				}
			}
			value := castValue(opt.Type, *raw)
			if err := validateValue(opt, value); err != nil {
				return nil, err
			}
			matches[opt.Key] = value
			continue
		}

		if p.positionalIndex >= len(p.schema.Positional) {
			return nil, errInvalidPositional(token)
		}
		opt := p.schema.Positional[p.positionalIndex]
		p.positionalIndex++

		value := castValue(opt.Type, token)
		if err := validateValue(opt, value); err != nil {
			return nil, err
		}
		matches[opt.Key] = value
	}

	unbound := p.schema.Positional[p.positionalIndex:]
	var missing []string
	for _, pos := range unbound {
		if !pos.HasDefault() {
			missing = append(missing, pos.Key)
		}
	}
	if len(missing) > 0 {
		return nil, errMissingPositionals(missing)
	}

	for _, pos := range unbound {
		if !matches.Has(pos.Key) {
			matches[pos.Key] = pos.Default
		}
	}
	for _, opt := range p.schema.Options {
		if opt.HasDefault() && !matches.Has(opt.Key) {
			matches[opt.Key] = opt.Default
		}
	}

	return matches, nil
}

// resolveNamed looks up the option a --key or -alias token refers to. The
// returned raw value is nil unless the token carries an inline "=value".
func (p *Parser) resolveNamed(token string) (Option, *string, error) {
	if isOptionKey(token) {
		name, raw := splitToken(token, 2)
		opt, ok := p.schema.optionByKey(name)
		if !ok {
			return Option{}, nil, errInvalidKey(token)
		}
		return opt, raw, nil
	}

	name, raw := splitToken(token, 1)
	opt, ok := p.schema.optionByAlias(name)
	if !ok {
		return Option{}, nil, errInvalidAlias(token)
	}
	return opt, raw, nil
}

func isOptionKey(token string) bool {
	return strings.HasPrefix(token, "--")
}

func isOptionAlias(token string) bool {
	return strings.HasPrefix(token, "-")
}

// splitToken strips the marker prefix and splits at the first "=".
func splitToken(token string, prefix int) (string, *string) {
	rest := token[prefix:]
	if idx := strings.IndexByte(rest, '='); idx >= 0 {
		value := rest[idx+1:]
		return rest[:idx], &value
	}
	return rest, nil
}

// valueToken returns tokens[i] when it can serve as an option value.
func valueToken(tokens []string, i int) (string, bool) {
	if i >= len(tokens) {
		return "", false
	}
	next := tokens[i]
	if next == "" || isOptionKey(next) || isOptionAlias(next) {
		return "", false
	}
	return next, true
}

// castValue never fails: values that cannot be cast are left for
// validateValue to reject so the error message shows the cast result.
func castValue(t OptionType, raw string) any {
	switch t {
	case Number:
		return parseNumber(raw)
	case Boolean:
		switch raw {
		case "true", "1", "":
			return true
		case "false", "0":
			return false
		}
		return raw
	default:
		return raw
	}
}

func parseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	// At most one sign.
	unsigned, sign := s, 1
	switch s[0] {
	case '-':
		unsigned, sign = s[1:], -1
	case '+':
		unsigned = s[1:]
	}
	switch strings.ToLower(unsigned) {
	case "infinity":
		if unsigned != "Infinity" {
			return math.NaN()
		}
		return math.Inf(sign)
	case "inf", "nan":
		return math.NaN()
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

func validateValue(opt Option, value any) error {
	if !isValidValue(opt.Type, value) {
		return errInvalidValue(opt.Key, value)
	}
	if len(opt.Choices) > 0 && !containsValue(opt.Choices, value) {
		return errInvalidChoice(opt.Key, value, opt.Choices)
	}
	return nil
}

func isValidValue(t OptionType, value any) bool {
	switch t {
	case Number:
		f, ok := value.(float64)
		return ok && !math.IsNaN(f)
	case Boolean:
		switch value.(type) {
		case nil, bool:
			return true
		}
		return false
	default:
		_, ok := value.(string)
		return ok
	}
}

func containsValue(choices []any, value any) bool {
	for _, c := range choices {
		if sameValue(c, value) {
			return true
		}
	}
	return false
}
