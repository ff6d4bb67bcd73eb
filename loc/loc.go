// Copyright © 2020 The Pea Authors under an MIT-style license.

// Package loc has routines for tracking input positions.
package loc

import "fmt"

// TabWidth is the default distance between tab stops.
const TabWidth = 4

// A Pos is a zero-based line and column in the input.
type Pos struct {
	Line int
	Col  int
}

// String returns the position as it is shown to users,
// with one-based line and column numbers.
func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line+1, p.Col+1)
}

// Compare returns -1, 0, or 1 if p is before, equal to, or after q.
// Positions are ordered by line, then by column.
func (p Pos) Compare(q Pos) int {
	switch {
	case p.Line < q.Line:
		return -1
	case p.Line > q.Line:
		return 1
	case p.Col < q.Col:
		return -1
	case p.Col > q.Col:
		return 1
	default:
		return 0
	}
}

// Less returns whether p is before q.
func (p Pos) Less(q Pos) bool { return p.Compare(q) < 0 }

// Step returns the position following p after reading r.
//
// A newline moves to the first column of the next line.
// A tab moves to the next multiple of tab;
// if tab is not positive, TabWidth is used.
// Everything else moves one column to the right.
func Step(p Pos, r rune, tab int) Pos {
	if tab <= 0 {
		tab = TabWidth
	}
	switch r {
	case '\n':
		return Pos{Line: p.Line + 1}
	case '\t':
		return Pos{Line: p.Line, Col: (p.Col/tab + 1) * tab}
	default:
		return Pos{Line: p.Line, Col: p.Col + 1}
	}
}

// Onside returns whether p is onside of the reference position ref:
// either on the same line, or indented strictly further.
func Onside(p, ref Pos) bool {
	return p.Line == ref.Line || p.Col > ref.Col
}
