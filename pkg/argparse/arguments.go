package argparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Arguments maps argument keys to their typed values. Values are nil,
// string, float64 or bool; defaults are inserted exactly as declared.
type Arguments map[string]any

// Has reports whether key was supplied or defaulted.
func (a Arguments) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns the value for key formatted as text, or "" when absent.
func (a Arguments) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return FormatValue(v)
}

// Number returns the numeric value for key, or 0 when absent or not numeric.
func (a Arguments) Number(key string) float64 {
	f, _ := toFloat(a[key])
	return f
}

// Bool returns the boolean value for key, or false when absent.
func (a Arguments) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// FormatValue renders an argument value the way it appears in error and
// help messages.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	default:
		return fmt.Sprint(x)
	}
}

// JoinValues renders values separated by ", ".
func JoinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatValue(v)
	}
	return strings.Join(parts, ", ")
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

// sameValue compares a cast value with a declared choice. Numbers compare by
// value regardless of their Go type.
func sameValue(a, b any) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	return a == b
}
