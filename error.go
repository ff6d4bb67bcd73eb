// Copyright © 2020 The Pea Authors under an MIT-style license.

package parsec

import (
	"io"
	"strings"

	"github.com/eaburns/parsec/loc"
	"github.com/eaburns/peggy/peg"
)

// A Tag classifies an Error.
// Tags are ordered; when two errors at the same position are merged,
// the one with the greater tag supplies the message.
type Tag int

const (
	// TagUnknown carries no information. It is the identity of Merge.
	TagUnknown Tag = iota
	// TagSysUnexpected is an unexpected input element, reported by primitives.
	TagSysUnexpected
	// TagUnexpected is an unexpected construct, reported by Unexpected.
	TagUnexpected
	// TagExpect is a failure annotated with what was expected, reported by Label.
	TagExpect
	// TagMessage is a free-form message, reported by Fail.
	TagMessage
)

func (t Tag) String() string {
	switch t {
	case TagUnknown:
		return "unknown"
	case TagSysUnexpected:
		return "sys-unexpected"
	case TagUnexpected:
		return "unexpected"
	case TagExpect:
		return "expect"
	case TagMessage:
		return "message"
	default:
		return "Tag(?)"
	}
}

// An Error describes why a parser failed.
//
// A nil *Error means no error information;
// Merge and the combinators treat it like a TagUnknown error.
type Error struct {
	Tag Tag
	Pos loc.Pos
	Msg string
	// Expected are labels of what would have been accepted at Pos.
	Expected []string
	// Inner is the error that this one was derived from, if any.
	Inner *Error
}

// NewUnknown returns an error with no information.
func NewUnknown(pos loc.Pos) *Error {
	return &Error{Tag: TagUnknown, Pos: pos}
}

// NewSysUnexpected returns an error for an unexpected input element.
func NewSysUnexpected(pos loc.Pos, msg string) *Error {
	return &Error{Tag: TagSysUnexpected, Pos: pos, Msg: msg}
}

// NewUnexpected returns an error for an unexpected construct.
func NewUnexpected(pos loc.Pos, msg string) *Error {
	return &Error{Tag: TagUnexpected, Pos: pos, Msg: msg}
}

// NewExpect returns an error that expected label at pos.
func NewExpect(pos loc.Pos, msg, label string) *Error {
	return &Error{Tag: TagExpect, Pos: pos, Msg: msg, Expected: []string{label}}
}

// NewMessage returns an error with a free-form message.
func NewMessage(pos loc.Pos, msg string) *Error {
	return &Error{Tag: TagMessage, Pos: pos, Msg: msg}
}

// Compare orders errors by tag, then by position.
func (e *Error) Compare(f *Error) int {
	switch {
	case e.Tag < f.Tag:
		return -1
	case e.Tag > f.Tag:
		return 1
	default:
		return e.Pos.Compare(f.Pos)
	}
}

// weight ranks how much an error says:
// nil, then TagUnknown, then no message, then a message.
func (e *Error) weight() int {
	switch {
	case e == nil:
		return 0
	case e.Tag == TagUnknown:
		return 1
	case e.Msg == "":
		return 2
	default:
		return 3
	}
}

// blank returns whether the error is missing or has no message.
func (e *Error) blank() bool { return e.weight() < 3 }

// Merge combines the errors of two failed alternatives.
//
// An error with a message is preferred to one without,
// which is preferred to a TagUnknown error, which is preferred to nil.
// Otherwise, errors at different positions yield the one further into the input.
// Errors at the same position yield an error with the tag, message,
// and inner error of the one with the greater tag (b on a tie),
// and the expected labels of a followed by those of b.
//
// Merge is associative and never modifies its arguments.
func Merge(a, b *Error) *Error {
	switch wa, wb := a.weight(), b.weight(); {
	case wa > wb:
		return a
	case wa < wb:
		return b
	case wa < 2:
		return b
	}
	switch a.Pos.Compare(b.Pos) {
	case 1:
		return a
	case -1:
		return b
	}
	dom := b
	if a.Tag > b.Tag {
		dom = a
	}
	var expected []string
	if len(a.Expected)+len(b.Expected) > 0 {
		expected = make([]string, 0, len(a.Expected)+len(b.Expected))
		expected = append(expected, a.Expected...)
		expected = append(expected, b.Expected...)
	}
	return &Error{
		Tag:      dom.Tag,
		Pos:      dom.Pos,
		Msg:      dom.Msg,
		Expected: expected,
		Inner:    dom.Inner,
	}
}

// withExpected returns a copy of e tagged TagExpect with the single label.
// The original is kept as the inner error.
func (e *Error) withExpected(pos loc.Pos, label string) *Error {
	if e == nil {
		return NewExpect(pos, "", label)
	}
	return &Error{
		Tag:      TagExpect,
		Pos:      e.Pos,
		Msg:      e.Msg,
		Expected: []string{label},
		Inner:    e,
	}
}

func (e *Error) Error() string {
	var s strings.Builder
	s.WriteString("error at (")
	s.WriteString(e.Pos.String())
	s.WriteString("): ")
	s.WriteString(e.Reason())
	if exp := e.ExpectedLabels(); len(exp) > 0 {
		s.WriteString(", expecting ")
		s.WriteString(orList(exp))
	}
	return s.String()
}

// EndOfInput returns whether the error was caused by reaching the end of input.
// An interactive reader can use it to ask for more input.
func (e *Error) EndOfInput() bool {
	return e != nil && e.Msg == endOfStream
}

// Reason returns the description of the error without position or labels.
func (e *Error) Reason() string {
	switch e.Tag {
	case TagSysUnexpected, TagUnexpected:
		return "unexpected " + e.Msg
	case TagExpect:
		if strings.TrimSpace(e.Msg) == "" {
			return "unexpected input"
		}
		return "unexpected " + e.Msg
	case TagMessage:
		return e.Msg
	default:
		return "unknown parse error"
	}
}

// ExpectedLabels returns the expected labels in order,
// without duplicates and without blank labels.
func (e *Error) ExpectedLabels() []string {
	var labels []string
	seen := make(map[string]bool)
	for _, l := range e.Expected {
		if strings.TrimSpace(l) == "" || seen[l] {
			continue
		}
		seen[l] = true
		labels = append(labels, l)
	}
	return labels
}

func orList(ss []string) string {
	switch len(ss) {
	case 0:
		return ""
	case 1:
		return ss[0]
	default:
		return strings.Join(ss[:len(ss)-1], ", ") + " or " + ss[len(ss)-1]
	}
}

// Tree returns the error and its chain of inner errors as a peg failure tree.
//
// Each node is named by its position and reason,
// and its Pos field is the zero-based column.
// Expected labels are leaf kids with Want set to the label.
func (e *Error) Tree() *peg.Fail {
	if e == nil {
		return nil
	}
	f := &peg.Fail{
		Name: e.Pos.String() + ": " + e.Reason(),
		Pos:  e.Pos.Col,
	}
	for _, l := range e.ExpectedLabels() {
		f.Kids = append(f.Kids, &peg.Fail{Pos: e.Pos.Col, Want: l})
	}
	if kid := e.Inner.Tree(); kid != nil {
		f.Kids = append(f.Kids, kid)
	}
	return f
}

// PrettyWrite writes the failure tree of the error to w.
func (e *Error) PrettyWrite(w io.Writer) {
	peg.PrettyWrite(w, e.Tree())
}
