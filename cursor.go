// Copyright © 2020 The Pea Authors under an MIT-style license.

package parsec

import (
	"fmt"
	"strconv"

	"github.com/eaburns/parsec/loc"
)

// A Side is whether a position is onside or offside
// of the cursor's reference position.
type Side int

const (
	SideOnside Side = iota
	SideOffside
)

func (s Side) String() string {
	if s == SideOffside {
		return "offside"
	}
	return "onside"
}

// A Config configures a new Cursor.
type Config struct {
	// TabWidth is the distance between tab stops for text input.
	// If it is not positive, loc.TabWidth is used.
	TabWidth int
	// State is the initial user state.
	State interface{}
	// DefPos is the initial reference position for onside checks.
	DefPos loc.Pos
}

// source is the input shared by all cursors of a parse.
// It is never modified after construction.
type source[E any] struct {
	elems []E
	// next returns the position after consuming elems[i] at pos.
	next func(pos loc.Pos, i int) loc.Pos
	show func(E) string
}

// A Cursor is an immutable point in an input sequence of elements of type E.
//
// Cursors are passed and returned by value.
// Advancing a cursor returns a new cursor; the original is unchanged,
// so backtracking is just reusing an earlier cursor.
type Cursor[E any] struct {
	src    *source[E]
	index  int
	pos    loc.Pos
	defPos loc.Pos
	side   Side
	state  interface{}
}

// NewTextCursor returns a cursor at the beginning of text.
func NewTextCursor(text string, cfg Config) Cursor[rune] {
	src := &source[rune]{
		elems: []rune(text),
		show:  quoteRune,
	}
	src.next = func(pos loc.Pos, i int) loc.Pos {
		return loc.Step(pos, src.elems[i], cfg.TabWidth)
	}
	return newCursor(src, loc.Pos{}, cfg)
}

// NewTokenCursor returns a cursor at the beginning of a token sequence.
// The position of the cursor is always the position of the next token,
// as returned by posOf.
// At the end of the sequence it is the position of the last token.
func NewTokenCursor[E any](toks []E, posOf func(E) loc.Pos, cfg Config) Cursor[E] {
	src := &source[E]{
		elems: toks,
		show:  func(e E) string { return fmt.Sprint(e) },
	}
	src.next = func(pos loc.Pos, i int) loc.Pos {
		if i+1 < len(toks) {
			return posOf(toks[i+1])
		}
		return pos
	}
	var start loc.Pos
	if len(toks) > 0 {
		start = posOf(toks[0])
	}
	return newCursor(src, start, cfg)
}

func newCursor[E any](src *source[E], start loc.Pos, cfg Config) Cursor[E] {
	c := Cursor[E]{
		src:    src,
		pos:    start,
		defPos: cfg.DefPos,
		state:  cfg.State,
	}
	c.side = side(c.pos, c.defPos)
	return c
}

func side(pos, ref loc.Pos) Side {
	if loc.Onside(pos, ref) {
		return SideOnside
	}
	return SideOffside
}

const endOfStream = "end of stream"

func quoteRune(r rune) string { return strconv.Quote(string(r)) }

// Index returns the number of elements consumed before the cursor.
func (c Cursor[E]) Index() int { return c.index }

// Pos returns the cursor's position.
func (c Cursor[E]) Pos() loc.Pos { return c.pos }

// DefPos returns the reference position used for onside checks.
func (c Cursor[E]) DefPos() loc.Pos { return c.defPos }

// Side returns whether the cursor is onside of its reference position.
func (c Cursor[E]) Side() Side { return c.side }

// State returns the user state.
func (c Cursor[E]) State() interface{} { return c.state }

// Len returns the length of the entire input.
func (c Cursor[E]) Len() int {
	if c.src == nil {
		return 0
	}
	return len(c.src.elems)
}

// AtEnd returns whether all input has been consumed.
func (c Cursor[E]) AtEnd() bool { return c.index >= c.Len() }

// Peek returns the next element without consuming it.
// The second result is false if the cursor is at the end.
func (c Cursor[E]) Peek() (E, bool) {
	if c.AtEnd() {
		var zero E
		return zero, false
	}
	return c.src.elems[c.index], true
}

// Rest returns the unconsumed elements.
// The caller must not modify the returned slice.
func (c Cursor[E]) Rest() []E {
	if c.AtEnd() {
		return nil
	}
	return c.src.elems[c.index:]
}

// Show returns the string used to describe an element in error messages.
func (c Cursor[E]) Show(e E) string {
	if c.src == nil || c.src.show == nil {
		return fmt.Sprint(e)
	}
	return c.src.show(e)
}

// WithDefPos returns a copy of the cursor with the reference position set to pos.
func (c Cursor[E]) WithDefPos(pos loc.Pos) Cursor[E] {
	c.defPos = pos
	c.side = side(c.pos, c.defPos)
	return c
}

// WithState returns a copy of the cursor with the user state set to s.
func (c Cursor[E]) WithState(s interface{}) Cursor[E] {
	c.state = s
	return c
}

// Advance consumes one element.
//
// At the end of input the result is EmptyError
// with a TagSysUnexpected "end of stream" error.
// Otherwise it is ConsumedOK with the element and the advanced cursor.
func (c Cursor[E]) Advance() Result[E, E] {
	if c.AtEnd() {
		return Empty(ErrorReply[E, E](NewSysUnexpected(c.pos, endOfStream)))
	}
	e := c.src.elems[c.index]
	next := c
	next.pos = c.src.next(c.pos, c.index)
	next.index++
	next.side = side(next.pos, next.defPos)
	return Consumed(OKReply(e, next, nil))
}

// Equal returns whether two cursors are at the same point in the same input.
// The user state is not compared.
func (c Cursor[E]) Equal(d Cursor[E]) bool {
	return c.src == d.src &&
		c.index == d.index &&
		c.pos == d.pos &&
		c.defPos == d.defPos &&
		c.side == d.side
}

func (c Cursor[E]) String() string {
	return fmt.Sprintf("%d (%s)", c.index, c.pos)
}
