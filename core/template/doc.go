// Package template resolves `$TOKEN$` placeholders in metadata template strings.
//
// A template string is split into literal and token spans by Parse, and
// rendered in a single pass by Render. Tokens are resolved exactly once:
// content produced by a resolved token is never scanned again.
//
// # Tokens
//
// Token names are matched case-insensitively:
//   - ID: zero-based index of the current entry
//   - IDPLUSONE: index + 1
//   - NUM: total number of entries
//   - YEAR: field "year", rendered as "44 BCE" for -44 and "500 CE" for 500
//   - anything else: the lower-cased field of the current entry
//
// Missing or falsy fields resolve to an empty string. A `$` without a closing
// partner is kept as literal text.
//
// # Usage
//
//	s := template.ResolveField("$NAME$ #$IDPLUSONE$", 2, 10, fields)
package template
