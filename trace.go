// Copyright © 2020 The Pea Authors under an MIT-style license.

package parsec

import (
	"fmt"
	"io"

	"github.com/eaburns/pretty"
	"github.com/tliron/commonlog"
)

// Trace returns a parser that behaves like p
// and writes a line describing each of its results to w.
// If w is nil, nothing is written.
//
// Successful values are written with pretty.String;
// errors are written with their Error method.
func Trace[T, E any](name string, w io.Writer, p Parser[T, E]) Parser[T, E] {
	if w == nil {
		return p
	}
	return func(c Cursor[E]) Result[T, E] {
		r := p(c)
		fmt.Fprintln(w, traceLine(name, c, r))
		return r
	}
}

// TraceLog is like Trace, but writes each line
// to log at debug level.
// If log is nil, nothing is written.
func TraceLog[T, E any](name string, log commonlog.Logger, p Parser[T, E]) Parser[T, E] {
	if log == nil {
		return p
	}
	return func(c Cursor[E]) Result[T, E] {
		r := p(c)
		log.Debugf("%s", traceLine(name, c, r))
		return r
	}
}

func traceLine[T, E any](name string, c Cursor[E], r Result[T, E]) string {
	if r.Reply.OK {
		return fmt.Sprintf("%s: %s at %s -> %s: %s",
			name, r.Kind(), c.Pos(), r.Reply.State.Pos(), pretty.String(r.Reply.Value))
	}
	var msg string
	if r.Reply.Err != nil {
		msg = r.Reply.Err.Error()
	}
	return fmt.Sprintf("%s: %s at %s: %s", name, r.Kind(), c.Pos(), msg)
}
