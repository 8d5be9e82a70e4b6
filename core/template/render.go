package template

import (
	"math"
	"strconv"
	"strings"

	"nft-toolkit/core/utils"

	"github.com/spf13/cast"
)

// MaxTokens caps the number of tokens resolved in one string. Anything past
// the cap is copied verbatim.
const MaxTokens = 1000

const (
	TokenID        = "ID"
	TokenIDPlusOne = "IDPLUSONE"
	TokenNum       = "NUM"
	TokenYear      = "YEAR"
)

// Lookup returns the raw value of a lower-cased field name.
type Lookup func(name string) (any, bool)

// Context carries everything a token may resolve against.
type Context struct {
	// Index is the zero-based position of the current entry.
	Index int
	// Total is the number of entries in the collection.
	Total int
	// Lookup reads fields of the current entry. A nil Lookup resolves every
	// field token to "".
	Lookup Lookup
}

// FieldLookup adapts a field map to a Lookup.
func FieldLookup(fields map[string]any) Lookup {
	return func(name string) (any, bool) {
		v, ok := fields[name]
		return v, ok
	}
}

// ResolveField resolves every token of s for the entry at index out of total.
func ResolveField(s string, index, total int, fields map[string]any) string {
	return Render(s, Context{Index: index, Total: total, Lookup: FieldLookup(fields)})
}

// Render resolves the tokens of s against ctx.
func Render(s string, ctx Context) string {
	if strings.IndexByte(s, Delimiter) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	resolved := 0
	for _, span := range Parse(s) {
		if !span.IsToken {
			b.WriteString(span.Literal)
			continue
		}
		if resolved >= MaxTokens {
			b.WriteString(span.Raw)
			continue
		}
		b.WriteString(ctx.resolve(span.Token))
		resolved++
	}
	return b.String()
}

func (c Context) resolve(token string) string {
	switch strings.ToUpper(token) {
	case TokenID:
		return strconv.Itoa(c.Index)
	case TokenIDPlusOne:
		return strconv.Itoa(c.Index + 1)
	case TokenNum:
		return strconv.Itoa(c.Total)
	}

	name := strings.ToLower(token)
	if c.Lookup == nil {
		return ""
	}
	value, ok := c.Lookup(name)
	if !ok {
		return ""
	}
	// year 0 is a real year, so the era check runs before the falsy check
	if name == strings.ToLower(TokenYear) && value != nil && value != "" {
		return formatYear(value)
	}
	if utils.IsFalsy(value) {
		return ""
	}
	return utils.ToString(value)
}

// formatYear renders astronomical years with an era suffix. Values that are
// not numeric are returned as-is.
func formatYear(value any) string {
	year, err := cast.ToFloat64E(value)
	if err != nil {
		return utils.ToString(value)
	}
	if year < 0 {
		return utils.ToString(math.Abs(year)) + " BCE"
	}
	return utils.ToString(year) + " CE"
}
