// Package utils provides scalar helpers shared by the template engine, the
// rarity analyzer and the CSV importer: rendering values as metadata strings,
// JavaScript-style falsiness, and typing of raw text cells.
package utils
