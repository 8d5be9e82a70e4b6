package template

import "strings"

// Delimiter opens and closes a token.
const Delimiter = '$'

// Span is one piece of a parsed template string. Exactly one of Literal or
// Token is meaningful, as reported by IsToken.
type Span struct {
	Literal string
	Token   string
	// Raw is the source text of the span, delimiters included.
	Raw     string
	IsToken bool
}

// Parse splits s into literal and token spans, left to right.
// An opening delimiter with no closing partner starts a literal tail, and an
// empty pair "$$" stays literal.
func Parse(s string) []Span {
	var spans []Span
	rest := s
	for len(rest) > 0 {
		start := strings.IndexByte(rest, Delimiter)
		if start < 0 {
			spans = append(spans, literal(rest))
			break
		}
		end := strings.IndexByte(rest[start+1:], Delimiter)
		if end < 0 {
			spans = append(spans, literal(rest))
			break
		}
		end += start + 1

		// "$$" names nothing and is kept as written
		if end == start+1 {
			spans = append(spans, literal(rest[:end+1]))
			rest = rest[end+1:]
			continue
		}
		if start > 0 {
			spans = append(spans, literal(rest[:start]))
		}
		spans = append(spans, Span{
			Token:   rest[start+1 : end],
			Raw:     rest[start : end+1],
			IsToken: true,
		})
		rest = rest[end+1:]
	}
	return spans
}

// Tokens returns the distinct token names of s, upper-cased, in order of
// first appearance.
func Tokens(s string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, span := range Parse(s) {
		if !span.IsToken {
			continue
		}
		name := strings.ToUpper(span.Token)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func literal(s string) Span {
	return Span{Literal: s, Raw: s}
}
