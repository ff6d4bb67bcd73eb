// Copyright © 2020 The Pea Authors under an MIT-style license.

// Package parsec is a monadic parser-combinator library.
//
// A Parser is a function from an immutable Cursor to a Result.
// Every Result is one of four kinds:
// ConsumedOK, ConsumedError, EmptyOK, or EmptyError.
// Whether a parser consumed input decides backtracking:
// Either tries its second alternative only if the first failed
// without consuming input.
// Attempt turns a ConsumedError into an EmptyError,
// which allows arbitrary lookahead where it is needed.
//
// Parsers work over any element type E.
// Text parsers use E = rune and a cursor from NewTextCursor;
// parsers over already-tokenized input use a cursor from NewTokenCursor.
package parsec

import (
	"fmt"
	"sync"

	"github.com/eaburns/parsec/loc"
)

// A Parser consumes elements of type E and produces a value of type T.
type Parser[T, E any] func(Cursor[E]) Result[T, E]

// Parse runs p on the cursor.
func Parse[T, E any](p Parser[T, E], c Cursor[E]) Result[T, E] {
	return p(c)
}

// ParseString runs p on a text cursor at the beginning of text.
func ParseString[T any](p Parser[T, rune], text string) Result[T, rune] {
	return p(NewTextCursor(text, Config{}))
}

// ParseTokens runs p on a token cursor at the beginning of toks.
func ParseTokens[T, E any](p Parser[T, E], toks []E, posOf func(E) loc.Pos) Result[T, E] {
	return p(NewTokenCursor(toks, posOf, Config{}))
}

// Pure returns a parser that consumes nothing and returns v.
func Pure[T, E any](v T) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		return Empty(OKReply(v, c, nil))
	}
}

// Zero returns a parser that fails with a TagUnknown error without consuming input.
func Zero[T, E any]() Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		return Empty(ErrorReply[T, E](NewUnknown(c.Pos())))
	}
}

// Fail returns a parser that fails with a TagMessage error without consuming input.
func Fail[T, E any](msg string) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		return Empty(ErrorReply[T, E](NewMessage(c.Pos(), msg)))
	}
}

// Unexpected returns a parser that fails with a TagUnexpected error
// without consuming input.
func Unexpected[T, E any](msg string) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		return Empty(ErrorReply[T, E](NewUnexpected(c.Pos(), msg)))
	}
}

// Bind returns a parser that runs p, then the parser returned by f
// on p's value.
//
// Once p consumed input, the result is Consumed,
// and a failure of f's parser is a ConsumedError
// which cannot be backtracked by Either.
// Residual errors of a successful parser are merged
// into the result of a continuation that consumed nothing.
func Bind[A, B, E any](p Parser[A, E], f func(A) Parser[B, E]) Parser[B, E] {
	return func(c Cursor[E]) Result[B, E] {
		r := p(c)
		if !r.Reply.OK {
			return castErr[B](r)
		}
		q := f(r.Reply.Value)(r.Reply.State)
		if q.Consumed {
			return q
		}
		q.Consumed = r.Consumed
		q.Reply = q.Reply.withErr(Merge(r.Reply.Err, q.Reply.Err))
		return q
	}
}

// Map returns a parser that applies f to the value of p.
func Map[A, B, E any](p Parser[A, E], f func(A) B) Parser[B, E] {
	return func(c Cursor[E]) Result[B, E] {
		return MapResult(p(c), f)
	}
}

// Right returns a parser that runs p then q, returning the value of q.
func Right[A, B, E any](p Parser[A, E], q Parser[B, E]) Parser[B, E] {
	return Bind(p, func(A) Parser[B, E] { return q })
}

// Left returns a parser that runs p then q, returning the value of p.
func Left[A, B, E any](p Parser[A, E], q Parser[B, E]) Parser[A, E] {
	return Bind(p, func(a A) Parser[A, E] {
		return Map(q, func(B) A { return a })
	})
}

// Between returns a parser for open, then p, then close,
// returning the value of p.
func Between[O, C, T, E any](open Parser[O, E], close Parser[C, E], p Parser[T, E]) Parser[T, E] {
	return Right(open, Left(p, close))
}

// Either returns a parser that tries p, and if p fails
// without consuming input, tries q.
//
// If p consumed input, its result is returned whether or not it succeeded.
// If q also consumes nothing, p's error is merged into q's result.
func Either[T, E any](p, q Parser[T, E]) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		r := p(c)
		if r.Consumed || r.Reply.OK {
			return r
		}
		s := q(c)
		if s.Consumed {
			return s
		}
		s.Reply = s.Reply.withErr(Merge(r.Reply.Err, s.Reply.Err))
		return s
	}
}

// Attempt returns a parser that behaves like p,
// except that if p fails after consuming input,
// it reports the failure as if no input was consumed.
func Attempt[T, E any](p Parser[T, E]) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		r := p(c)
		if r.Consumed && !r.Reply.OK {
			r.Consumed = false
		}
		return r
	}
}

// Label returns a parser that behaves like p,
// except that if p does not consume input,
// its error expects name instead of any earlier labels.
func Label[T, E any](p Parser[T, E], name string) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		r := p(c)
		switch {
		case r.Consumed:
			return r
		case !r.Reply.OK:
			r.Reply = r.Reply.withErr(r.Reply.Err.withExpected(c.Pos(), name))
		case r.Reply.Err != nil && r.Reply.Err.Tag != TagUnknown:
			r.Reply = r.Reply.withErr(r.Reply.Err.withExpected(c.Pos(), name))
		}
		return r
	}
}

// Lazy returns a parser that calls f on first use and behaves like its result.
// It is used to define recursive grammars.
func Lazy[T, E any](f func() Parser[T, E]) Parser[T, E] {
	var once sync.Once
	var p Parser[T, E]
	return func(c Cursor[E]) Result[T, E] {
		once.Do(func() { p = f() })
		return p(c)
	}
}

// Satisfy returns a parser for a single element for which pred is true.
//
// If pred is false, the element is not consumed
// and the result is an EmptyError with a TagSysUnexpected error.
func Satisfy[E any](pred func(E) bool) Parser[E, E] {
	return func(c Cursor[E]) Result[E, E] {
		r := c.Advance()
		if !r.Reply.OK || pred(r.Reply.Value) {
			return r
		}
		return Empty(ErrorReply[E, E](NewSysUnexpected(c.Pos(), c.Show(r.Reply.Value))))
	}
}

// Any returns a parser for any single element.
func Any[E any]() Parser[E, E] {
	return func(c Cursor[E]) Result[E, E] { return c.Advance() }
}

// EOF returns a parser that succeeds only at the end of input.
func EOF[E any]() Parser[struct{}, E] {
	return func(c Cursor[E]) Result[struct{}, E] {
		if e, ok := c.Peek(); ok {
			return Empty(ErrorReply[struct{}, E](NewExpect(c.Pos(), c.Show(e), "end of input")))
		}
		return Empty(OKReply(struct{}{}, c, nil))
	}
}

// LookAhead returns a parser that runs p,
// but on success consumes nothing.
// Failures are returned unchanged.
func LookAhead[T, E any](p Parser[T, E]) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		r := p(c)
		if !r.Reply.OK {
			return r
		}
		return Empty(OKReply(r.Reply.Value, c, nil))
	}
}

// NotFollowedBy returns a parser that succeeds without consuming input
// if p fails, and fails without consuming input if p succeeds.
func NotFollowedBy[T, E any](p Parser[T, E]) Parser[struct{}, E] {
	return func(c Cursor[E]) Result[struct{}, E] {
		r := p(c)
		if r.Reply.OK {
			return Empty(ErrorReply[struct{}, E](NewUnexpected(c.Pos(), show(c, r.Reply.Value))))
		}
		return Empty(OKReply(struct{}{}, c, nil))
	}
}

// show formats a parsed value for an error message.
// Elements of the input are shown by the cursor;
// other values are formatted with fmt.
func show[T, E any](c Cursor[E], v T) string {
	switch v := interface{}(v).(type) {
	case E:
		return c.Show(v)
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

// Option returns a parser that runs p, or returns def
// if p fails without consuming input.
func Option[T, E any](def T, p Parser[T, E]) Parser[T, E] {
	return Either(p, Pure[T, E](def))
}

// Optional returns a parser that optionally runs p, discarding its value.
func Optional[T, E any](p Parser[T, E]) Parser[struct{}, E] {
	return Either(Map(p, func(T) struct{} { return struct{}{} }), Pure[struct{}, E](struct{}{}))
}
