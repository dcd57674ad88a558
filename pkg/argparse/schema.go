package argparse

import (
	"errors"
	"fmt"
)

// Schema is the declarative list of arguments a command accepts. Positional
// and Options are independent key namespaces; the order of Positional defines
// binding order.
type Schema struct {
	Positional []Option `toml:"positional"`
	Options    []Option `toml:"options"`
}

// Normalize returns a copy of the schema with unset fields filled in.
// Explicit fields always win, and normalizing twice yields the same schema.
func (s Schema) Normalize() Schema {
	out := Schema{}
	if s.Positional != nil {
		out.Positional = make([]Option, len(s.Positional))
		for i, o := range s.Positional {
			out.Positional[i] = o.normalized()
		}
	}
	if s.Options != nil {
		out.Options = make([]Option, len(s.Options))
		for i, o := range s.Options {
			out.Options[i] = o.normalized()
		}
	}
	return out
}

// Validate checks the schema invariants: non-empty unique keys per list,
// unique single-character aliases, and defaults/choices matching the
// declared type. All violations are joined into one error.
func (s Schema) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(s.Positional))
	for _, p := range s.Positional {
		if p.Key == "" {
			errs = append(errs, errors.New("positional argument with empty key"))
			continue
		}
		if seen[p.Key] {
			errs = append(errs, fmt.Errorf("duplicate positional key: %s", p.Key))
		}
		seen[p.Key] = true
		if p.Alias != "" {
			errs = append(errs, fmt.Errorf("positional argument %s cannot have an alias", p.Key))
		}
		errs = append(errs, validateTyped(p)...)
	}

	seen = make(map[string]bool, len(s.Options))
	aliases := make(map[string]string, len(s.Options))
	for _, o := range s.Options {
		if o.Key == "" {
			errs = append(errs, errors.New("option with empty key"))
			continue
		}
		if seen[o.Key] {
			errs = append(errs, fmt.Errorf("duplicate option key: %s", o.Key))
		}
		seen[o.Key] = true
		if o.Alias != "" {
			if len([]rune(o.Alias)) != 1 {
				errs = append(errs, fmt.Errorf("alias for option %s must be a single character, got %q", o.Key, o.Alias))
			}
			if owner, dup := aliases[o.Alias]; dup {
				errs = append(errs, fmt.Errorf("duplicate option alias: %s (used by %s and %s)", o.Alias, owner, o.Key))
			} else {
				aliases[o.Alias] = o.Key
			}
		}
		errs = append(errs, validateTyped(o)...)
	}

	return errors.Join(errs...)
}

func validateTyped(o Option) []error {
	var errs []error
	typ := o.Type
	if typ == 0 {
		typ = String
	}
	if o.HasDefault() && !fitsType(typ, o.Default) {
		errs = append(errs, fmt.Errorf("default for %s does not match type %s: %v", o.Key, typ, o.Default))
	}
	for _, c := range o.Choices {
		if !fitsType(typ, c) {
			errs = append(errs, fmt.Errorf("choice for %s does not match type %s: %v", o.Key, typ, c))
		}
	}
	return errs
}

func fitsType(t OptionType, v any) bool {
	switch t {
	case Number:
		_, ok := toFloat(v)
		return ok
	case Boolean:
		_, ok := v.(bool)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}

func (s Schema) optionByKey(key string) (Option, bool) {
	for _, o := range s.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

func (s Schema) optionByAlias(alias string) (Option, bool) {
	for _, o := range s.Options {
		if o.Alias != "" && o.Alias == alias {
			return o, true
		}
	}
	return Option{}, false
}
