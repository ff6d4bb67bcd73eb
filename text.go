// Copyright © 2020 The Pea Authors under an MIT-style license.

package parsec

import (
	"strconv"
	"strings"
)

// Char returns a parser for the rune r.
func Char(r rune) Parser[rune, rune] {
	return Label(Satisfy(func(x rune) bool { return x == r }), quoteRune(r))
}

// AnyChar returns a parser for any rune.
func AnyChar() Parser[rune, rune] {
	return Any[rune]()
}

// OneOf returns a parser for any rune in rs.
func OneOf(rs string) Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return strings.ContainsRune(rs, r) })
}

// NoneOf returns a parser for any rune not in rs.
func NoneOf(rs string) Parser[rune, rune] {
	return Satisfy(func(r rune) bool { return !strings.ContainsRune(rs, r) })
}

// String returns a parser for the literal s.
//
// If s does not match, no input is consumed,
// so String can be an alternative of Either
// with other parsers that share a prefix.
func String(s string) Parser[string, rune] {
	chars := make([]Parser[rune, rune], 0, len(s))
	for _, r := range s {
		chars = append(chars, Char(r))
	}
	return Label(Attempt(AsString(Chain(chars...))), strconv.Quote(s))
}

// AsString returns a parser that converts the runes of p into a string.
func AsString(p Parser[[]rune, rune]) Parser[string, rune] {
	return Map(p, func(rs []rune) string { return string(rs) })
}
