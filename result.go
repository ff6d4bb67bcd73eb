// Copyright © 2020 The Pea Authors under an MIT-style license.

package parsec

// A Kind is the classification of a Result:
// whether the parser consumed input, and whether it succeeded.
type Kind int

const (
	EmptyOK Kind = iota
	EmptyError
	ConsumedOK
	ConsumedError
)

func (k Kind) String() string {
	switch k {
	case EmptyOK:
		return "EmptyOK"
	case EmptyError:
		return "EmptyError"
	case ConsumedOK:
		return "ConsumedOK"
	case ConsumedError:
		return "ConsumedError"
	default:
		return "Kind(?)"
	}
}

// A Reply is the outcome of a parser, independent of whether it consumed input.
type Reply[T, E any] struct {
	// OK is whether the parser succeeded.
	// If it is true, Value and State are set.
	OK    bool
	Value T
	State Cursor[E]
	// Err is the error if OK is false.
	// If OK is true, Err may describe why the parser stopped
	// where it did and is merged into later errors.
	Err *Error
}

// OKReply returns a successful reply.
func OKReply[T, E any](v T, s Cursor[E], err *Error) Reply[T, E] {
	return Reply[T, E]{OK: true, Value: v, State: s, Err: err}
}

// ErrorReply returns a failed reply.
func ErrorReply[T, E any](err *Error) Reply[T, E] {
	return Reply[T, E]{Err: err}
}

// MapReply returns the reply with f applied to its value, if it succeeded.
func MapReply[T, U, E any](r Reply[T, E], f func(T) U) Reply[U, E] {
	if !r.OK {
		return ErrorReply[U, E](r.Err)
	}
	return OKReply(f(r.Value), r.State, r.Err)
}

// withErr returns the reply with its error replaced.
func (r Reply[T, E]) withErr(err *Error) Reply[T, E] {
	r.Err = err
	return r
}

// A Result is the outcome of running a parser.
type Result[T, E any] struct {
	// Consumed is whether the parser advanced the cursor.
	Consumed bool
	Reply    Reply[T, E]
}

// Consumed returns a Result for a parser that consumed input.
func Consumed[T, E any](r Reply[T, E]) Result[T, E] {
	return Result[T, E]{Consumed: true, Reply: r}
}

// Empty returns a Result for a parser that consumed no input.
func Empty[T, E any](r Reply[T, E]) Result[T, E] {
	return Result[T, E]{Consumed: false, Reply: r}
}

// MapResult returns the result with f applied to its value, if it succeeded.
func MapResult[T, U, E any](r Result[T, E], f func(T) U) Result[U, E] {
	return Result[U, E]{Consumed: r.Consumed, Reply: MapReply(r.Reply, f)}
}

// castErr returns a failed result with the same consumption and error as r.
// It must only be called if r failed.
func castErr[U, T, E any](r Result[T, E]) Result[U, E] {
	return Result[U, E]{Consumed: r.Consumed, Reply: ErrorReply[U, E](r.Reply.Err)}
}

// Kind returns the classification of the result.
func (r Result[T, E]) Kind() Kind {
	switch {
	case r.Consumed && r.Reply.OK:
		return ConsumedOK
	case r.Consumed:
		return ConsumedError
	case r.Reply.OK:
		return EmptyOK
	default:
		return EmptyError
	}
}

// IsOK returns whether the parser succeeded.
func (r Result[T, E]) IsOK() bool { return r.Reply.OK }

// Value returns the parsed value, or the error if the parser failed.
func (r Result[T, E]) Value() (T, error) {
	if !r.Reply.OK {
		var zero T
		if r.Reply.Err == nil {
			return zero, NewUnknown(r.Reply.State.Pos())
		}
		return zero, r.Reply.Err
	}
	return r.Reply.Value, nil
}

// Get returns the parsed value and true,
// or the zero value and false if the parser failed.
func (r Result[T, E]) Get() (T, bool) {
	return r.Reply.Value, r.Reply.OK
}

// Rest returns the cursor after the parse.
// It is the zero Cursor if the parser failed.
func (r Result[T, E]) Rest() Cursor[E] { return r.Reply.State }

// Err returns the error of the result, or nil.
func (r Result[T, E]) Err() *Error { return r.Reply.Err }
