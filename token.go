// Copyright © 2020 The Pea Authors under an MIT-style license.

package parsec

// Token returns a parser for a single token for which pred is true.
// Failures expect name.
func Token[E any](name string, pred func(E) bool) Parser[E, E] {
	return Label(Satisfy(pred), name)
}

// TokenMap returns a parser for a single token for which f returns true,
// returning the first result of f.
// Failures expect name.
func TokenMap[T, E any](name string, f func(E) (T, bool)) Parser[T, E] {
	return Label(func(c Cursor[E]) Result[T, E] {
		r := c.Advance()
		if !r.Reply.OK {
			return castErr[T](r)
		}
		v, ok := f(r.Reply.Value)
		if !ok {
			return Empty(ErrorReply[T, E](NewSysUnexpected(c.Pos(), c.Show(r.Reply.Value))))
		}
		return Consumed(OKReply(v, r.Reply.State, nil))
	}, name)
}
