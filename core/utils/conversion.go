package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ToString renders a scalar the way it appears in generated metadata.
// Floats use the shortest decimal form, so 3.0 becomes "3" and 1.5 stays "1.5".
// Whole numbers from 1e21 up switch to exponent form.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return cast.ToString(v)
		}
		if v == math.Trunc(v) {
			if math.Abs(v) < 1e21 {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return cast.ToString(v)
	default:
		return cast.ToString(v)
	}
}

// IsFalsy reports whether a field value counts as empty for substitution:
// nil, "", zero numbers, NaN and false.
func IsFalsy(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0 || math.IsNaN(v)
	case float32:
		return v == 0 || math.IsNaN(float64(v))
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return cast.ToInt64(v) == 0
	default:
		return false
	}
}

// ToInt converts val to int, returning 0 when it cannot be parsed.
func ToInt(val any) int {
	return cast.ToInt(val)
}

// ToBool handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	default:
		return cast.ToInt(v) == 1 || cast.ToBool(v)
	}
}

// ParseScalar types a raw text cell: numbers become float64, "true"/"false"
// become bool, anything else stays a string. Empty input yields nil.
func ParseScalar(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := cast.ToFloat64E(trimmed); err == nil && looksNumeric(trimmed) {
		return f
	}
	return raw
}

// looksNumeric rejects inputs cast would accept but a spreadsheet would not
// treat as a number, such as hex or octal literals.
func looksNumeric(s string) bool {
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == 'e', r == 'E':
		case (r == '-' || r == '+') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		default:
			return false
		}
	}
	return true
}
