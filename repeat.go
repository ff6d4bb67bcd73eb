// Copyright © 2020 The Pea Authors under an MIT-style license.

package parsec

// seq is the state of an unrolled chain of Binds.
// The combinators in this file loop over it
// instead of recursing, so stack depth does not grow
// with the number of repetitions or alternatives.
type seq[E any] struct {
	cur      Cursor[E]
	consumed bool
	err      *Error
}

// stepOK folds a successful result into the sequence and returns its value.
// A step that consumed input replaces the residual error;
// one that did not is merged into it.
func stepOK[T, E any](s *seq[E], r Result[T, E]) T {
	if r.Consumed {
		s.err = r.Reply.Err
	} else {
		s.err = Merge(s.err, r.Reply.Err)
	}
	s.consumed = s.consumed || r.Consumed
	s.cur = r.Reply.State
	return r.Reply.Value
}

// failed returns the result of the sequence when step r failed.
func failed[U, T, E any](s seq[E], r Result[T, E]) Result[U, E] {
	if r.Consumed {
		return castErr[U](r)
	}
	return Result[U, E]{Consumed: s.consumed, Reply: ErrorReply[U, E](Merge(s.err, r.Reply.Err))}
}

// done returns a successful result of the sequence.
func done[T, E any](s seq[E], v T) Result[T, E] {
	return Result[T, E]{Consumed: s.consumed, Reply: OKReply(v, s.cur, s.err)}
}

// stop returns a successful result of the sequence
// that ended because a step failed without consuming input, with error err.
func stop[T, E any](s seq[E], v T, err *Error) Result[T, E] {
	return Result[T, E]{Consumed: s.consumed, Reply: OKReply(v, s.cur, Merge(s.err, err))}
}

// Many returns a parser for zero or more p.
//
// Repetition ends when p fails without consuming input.
// If p fails after consuming input, so does Many.
// Repetition also ends when p succeeds without consuming input;
// that value is not included in the result.
func Many[T, E any](p Parser[T, E]) Parser[[]T, E] {
	return func(c Cursor[E]) Result[[]T, E] {
		return many(p, seq[E]{cur: c}, nil)
	}
}

// Many1 returns a parser for one or more p.
func Many1[T, E any](p Parser[T, E]) Parser[[]T, E] {
	return func(c Cursor[E]) Result[[]T, E] {
		s := seq[E]{cur: c}
		r := p(c)
		if !r.Reply.OK {
			return castErr[[]T](r)
		}
		x := stepOK(&s, r)
		return many(p, s, []T{x})
	}
}

func many[T, E any](p Parser[T, E], s seq[E], xs []T) Result[[]T, E] {
	for {
		r := p(s.cur)
		switch {
		case r.Consumed && r.Reply.OK:
			xs = append(xs, stepOK(&s, r))
		case r.Consumed:
			return castErr[[]T](r)
		default:
			return stop(s, xs, r.Reply.Err)
		}
	}
}

// SkipMany returns a parser for zero or more p, discarding the values.
func SkipMany[T, E any](p Parser[T, E]) Parser[struct{}, E] {
	return func(c Cursor[E]) Result[struct{}, E] {
		return skipMany(p, seq[E]{cur: c})
	}
}

// SkipMany1 returns a parser for one or more p, discarding the values.
func SkipMany1[T, E any](p Parser[T, E]) Parser[struct{}, E] {
	return func(c Cursor[E]) Result[struct{}, E] {
		s := seq[E]{cur: c}
		r := p(c)
		if !r.Reply.OK {
			return castErr[struct{}](r)
		}
		stepOK(&s, r)
		return skipMany(p, s)
	}
}

func skipMany[T, E any](p Parser[T, E], s seq[E]) Result[struct{}, E] {
	for {
		r := p(s.cur)
		switch {
		case r.Consumed && r.Reply.OK:
			stepOK(&s, r)
		case r.Consumed:
			return castErr[struct{}](r)
		default:
			return stop(s, struct{}{}, r.Reply.Err)
		}
	}
}

// Count returns a parser for exactly n p.
// If n is not positive, it returns an empty result without consuming input.
func Count[T, E any](n int, p Parser[T, E]) Parser[[]T, E] {
	return func(c Cursor[E]) Result[[]T, E] {
		s := seq[E]{cur: c}
		var xs []T
		for i := 0; i < n; i++ {
			r := p(s.cur)
			if !r.Reply.OK {
				return failed[[]T](s, r)
			}
			xs = append(xs, stepOK(&s, r))
		}
		return done(s, xs)
	}
}

// SepBy1 returns a parser for one or more p separated by sep.
func SepBy1[T, S, E any](p Parser[T, E], sep Parser[S, E]) Parser[[]T, E] {
	return Bind(p, func(x T) Parser[[]T, E] {
		return Map(Many(Right(sep, p)), func(xs []T) []T {
			return append([]T{x}, xs...)
		})
	})
}

// SepBy returns a parser for zero or more p separated by sep.
func SepBy[T, S, E any](p Parser[T, E], sep Parser[S, E]) Parser[[]T, E] {
	return Either(SepBy1(p, sep), Pure[[]T, E](nil))
}

// EndBy1 returns a parser for one or more p, each followed by sep.
func EndBy1[T, S, E any](p Parser[T, E], sep Parser[S, E]) Parser[[]T, E] {
	return Many1(Left(p, sep))
}

// EndBy returns a parser for zero or more p, each followed by sep.
func EndBy[T, S, E any](p Parser[T, E], sep Parser[S, E]) Parser[[]T, E] {
	return Many(Left(p, sep))
}

// SepEndBy1 returns a parser for one or more p separated by sep,
// optionally with a final sep.
func SepEndBy1[T, S, E any](p Parser[T, E], sep Parser[S, E]) Parser[[]T, E] {
	return func(c Cursor[E]) Result[[]T, E] {
		s := seq[E]{cur: c}
		r := p(c)
		if !r.Reply.OK {
			return castErr[[]T](r)
		}
		xs := []T{stepOK(&s, r)}
		for {
			d := sep(s.cur)
			if !d.Reply.OK {
				if d.Consumed {
					return castErr[[]T](d)
				}
				return stop(s, xs, d.Reply.Err)
			}
			stepOK(&s, d)
			r := p(s.cur)
			if !r.Reply.OK {
				if r.Consumed {
					return castErr[[]T](r)
				}
				return stop(s, xs, r.Reply.Err)
			}
			xs = append(xs, stepOK(&s, r))
			if !d.Consumed && !r.Consumed {
				return done(s, xs)
			}
		}
	}
}

// SepEndBy returns a parser for zero or more p separated by sep,
// optionally with a final sep.
func SepEndBy[T, S, E any](p Parser[T, E], sep Parser[S, E]) Parser[[]T, E] {
	return Either(SepEndBy1(p, sep), Pure[[]T, E](nil))
}

// ManyTill returns a parser for zero or more p, ended by end.
// The value of end is discarded.
func ManyTill[T, U, E any](p Parser[T, E], end Parser[U, E]) Parser[[]T, E] {
	return func(c Cursor[E]) Result[[]T, E] {
		s := seq[E]{cur: c}
		var xs []T
		for {
			r := end(s.cur)
			if r.Reply.OK {
				stepOK(&s, r)
				return done(s, xs)
			}
			if r.Consumed {
				return castErr[[]T](r)
			}
			endErr := r.Reply.Err
			q := p(s.cur)
			if !q.Reply.OK {
				if q.Consumed {
					return castErr[[]T](q)
				}
				return failed[[]T](s, Empty(ErrorReply[T, E](Merge(endErr, q.Reply.Err))))
			}
			if !q.Consumed {
				err := NewMessage(s.cur.Pos(), "repeated parser accepts empty input")
				return failed[[]T](s, Empty(ErrorReply[T, E](Merge(endErr, err))))
			}
			xs = append(xs, stepOK(&s, q))
		}
	}
}

// Choice returns a parser that tries each parser in order,
// as by a chain of Either.
// With no parsers, it fails with a TagUnknown error.
func Choice[T, E any](ps ...Parser[T, E]) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		var err *Error
		for _, p := range ps {
			r := p(c)
			if r.Consumed {
				return r
			}
			err = Merge(err, r.Reply.Err)
			if r.Reply.OK {
				r.Reply = r.Reply.withErr(err)
				return r
			}
		}
		if err == nil {
			err = NewUnknown(c.Pos())
		}
		return Empty(ErrorReply[T, E](err))
	}
}

// Chain returns a parser that runs each parser in sequence,
// as by a chain of Bind, and returns all of their values.
func Chain[T, E any](ps ...Parser[T, E]) Parser[[]T, E] {
	return func(c Cursor[E]) Result[[]T, E] {
		s := seq[E]{cur: c}
		xs := make([]T, 0, len(ps))
		for _, p := range ps {
			r := p(s.cur)
			if !r.Reply.OK {
				return failed[[]T](s, r)
			}
			xs = append(xs, stepOK(&s, r))
		}
		return done(s, xs)
	}
}

// ChainL1 returns a parser for one or more p separated by op,
// returning the left-associative application of the op functions
// to the p values.
func ChainL1[T, E any](p Parser[T, E], op Parser[func(T, T) T, E]) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		xs, fs, r := chain(p, op, c)
		if !r.Reply.OK {
			return r
		}
		x := xs[0]
		for i, f := range fs {
			x = f(x, xs[i+1])
		}
		r.Reply.Value = x
		return r
	}
}

// ChainL returns a parser like ChainL1, but that returns def
// if there are no p.
func ChainL[T, E any](p Parser[T, E], op Parser[func(T, T) T, E], def T) Parser[T, E] {
	return Option(def, ChainL1(p, op))
}

// ChainR1 returns a parser for one or more p separated by op,
// returning the right-associative application of the op functions
// to the p values.
func ChainR1[T, E any](p Parser[T, E], op Parser[func(T, T) T, E]) Parser[T, E] {
	return func(c Cursor[E]) Result[T, E] {
		xs, fs, r := chain(p, op, c)
		if !r.Reply.OK {
			return r
		}
		x := xs[len(xs)-1]
		for i := len(fs) - 1; i >= 0; i-- {
			x = fs[i](xs[i], x)
		}
		r.Reply.Value = x
		return r
	}
}

// ChainR returns a parser like ChainR1, but that returns def
// if there are no p.
func ChainR[T, E any](p Parser[T, E], op Parser[func(T, T) T, E], def T) Parser[T, E] {
	return Option(def, ChainR1(p, op))
}

// chain parses p (op p)* and returns the operands and operators.
// The value of the returned result is unset;
// if it failed, the slices are nil.
//
// An op followed by a failing p backtracks to before the op
// only if neither consumed input.
func chain[T, E any](p Parser[T, E], op Parser[func(T, T) T, E], c Cursor[E]) ([]T, []func(T, T) T, Result[T, E]) {
	s := seq[E]{cur: c}
	r := p(c)
	if !r.Reply.OK {
		return nil, nil, r
	}
	xs := []T{stepOK(&s, r)}
	var fs []func(T, T) T
	for {
		before := s
		d := op(s.cur)
		if !d.Reply.OK {
			if d.Consumed {
				return nil, nil, castErr[T](d)
			}
			var zero T
			return xs, fs, stop(s, zero, d.Reply.Err)
		}
		f := stepOK(&s, d)
		y := p(s.cur)
		if !y.Reply.OK {
			if !d.Consumed && !y.Consumed {
				var zero T
				return xs, fs, stop(before, zero, Merge(d.Reply.Err, y.Reply.Err))
			}
			return nil, nil, failed[T](s, y)
		}
		xs = append(xs, stepOK(&s, y))
		fs = append(fs, f)
		if !d.Consumed && !y.Consumed {
			var zero T
			return xs, fs, done(s, zero)
		}
	}
}
