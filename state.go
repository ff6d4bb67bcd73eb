// Copyright © 2020 The Pea Authors under an MIT-style license.

package parsec

import "github.com/eaburns/parsec/loc"

// GetPos returns a parser that returns the current position.
func GetPos[E any]() Parser[loc.Pos, E] {
	return func(c Cursor[E]) Result[loc.Pos, E] {
		return Empty(OKReply(c.Pos(), c, nil))
	}
}

// GetIndex returns a parser that returns the number of elements consumed so far.
func GetIndex[E any]() Parser[int, E] {
	return func(c Cursor[E]) Result[int, E] {
		return Empty(OKReply(c.Index(), c, nil))
	}
}

// GetDefPos returns a parser that returns the reference position.
func GetDefPos[E any]() Parser[loc.Pos, E] {
	return func(c Cursor[E]) Result[loc.Pos, E] {
		return Empty(OKReply(c.DefPos(), c, nil))
	}
}

// SetDefPos returns a parser that sets the reference position.
func SetDefPos[E any](pos loc.Pos) Parser[struct{}, E] {
	return func(c Cursor[E]) Result[struct{}, E] {
		return Empty(OKReply(struct{}{}, c.WithDefPos(pos), nil))
	}
}

// Onside returns a parser that succeeds without consuming input
// if the cursor is onside of the reference position.
func Onside[E any]() Parser[struct{}, E] {
	return func(c Cursor[E]) Result[struct{}, E] {
		if c.Side() == SideOffside {
			return Empty(ErrorReply[struct{}, E](NewExpect(c.Pos(), "offside input", "onside input")))
		}
		return Empty(OKReply(struct{}{}, c, nil))
	}
}

// Indented returns a parser that runs p with the reference position
// set to the current position.
// The original reference position is restored afterwards.
func Indented[T, E any](p Parser[T, E]) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		r := p(c.WithDefPos(c.Pos()))
		if r.Reply.OK {
			r.Reply.State = r.Reply.State.WithDefPos(c.DefPos())
		}
		return r
	}
}

// GetState returns a parser that returns the user state.
func GetState[E any]() Parser[interface{}, E] {
	return func(c Cursor[E]) Result[interface{}, E] {
		return Empty(OKReply(c.State(), c, nil))
	}
}

// SetState returns a parser that sets the user state.
func SetState[E any](s interface{}) Parser[struct{}, E] {
	return func(c Cursor[E]) Result[struct{}, E] {
		return Empty(OKReply(struct{}{}, c.WithState(s), nil))
	}
}

// UpdateState returns a parser that replaces the user state with f applied to it.
func UpdateState[E any](f func(interface{}) interface{}) Parser[struct{}, E] {
	return func(c Cursor[E]) Result[struct{}, E] {
		return Empty(OKReply(struct{}{}, c.WithState(f(c.State())), nil))
	}
}
