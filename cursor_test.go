// Copyright © 2020 The Pea Authors under an MIT-style license.

package parsec

import (
	"testing"

	"github.com/eaburns/parsec/loc"
	"github.com/google/go-cmp/cmp"
)

func TestAdvance(t *testing.T) {
	c := text("a\tb\nc")
	var got []loc.Pos
	for !c.AtEnd() {
		r := c.Advance()
		if r.Kind() != ConsumedOK {
			t.Fatalf("at %d: got %s, want ConsumedOK", c.Index(), r.Kind())
		}
		c = r.Rest()
		got = append(got, c.Pos())
	}
	want := []loc.Pos{
		{Line: 0, Col: 1},
		{Line: 0, Col: 4},
		{Line: 0, Col: 5},
		{Line: 1, Col: 0},
		{Line: 1, Col: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("got %v, want %v\n%s", got, want, diff)
	}
	if c.Index() != 5 {
		t.Errorf("got index %d, want 5", c.Index())
	}

	r := c.Advance()
	if r.Kind() != EmptyError {
		t.Fatalf("got %s at end, want EmptyError", r.Kind())
	}
	wantErr := NewSysUnexpected(loc.Pos{Line: 1, Col: 1}, "end of stream")
	if diff := cmp.Diff(wantErr, r.Err()); diff != "" {
		t.Errorf("got %v, want %v\n%s", r.Err(), wantErr, diff)
	}
}

func TestAdvanceDoesNotModify(t *testing.T) {
	c := text("abc")
	r := c.Advance()
	if c.Index() != 0 || c.Pos() != (loc.Pos{}) {
		t.Errorf("original cursor moved to %v", c)
	}
	if r.Rest().Equal(c) {
		t.Errorf("advanced cursor %v equals original %v", r.Rest(), c)
	}
	// Advancing the same cursor twice gives equal cursors.
	if s := c.Advance(); !s.Rest().Equal(r.Rest()) {
		t.Errorf("got %v, want %v", s.Rest(), r.Rest())
	}
}

func TestPeekRest(t *testing.T) {
	c := text("xy")
	if e, ok := c.Peek(); !ok || e != 'x' {
		t.Errorf("got %q, %v, want 'x', true", e, ok)
	}
	if got := string(c.Rest()); got != "xy" {
		t.Errorf("got rest %q, want \"xy\"", got)
	}
	c = c.Advance().Rest().Advance().Rest()
	if _, ok := c.Peek(); ok {
		t.Errorf("got ok at end")
	}
	if got := c.Rest(); got != nil {
		t.Errorf("got rest %q at end, want nil", string(got))
	}
	if c.Len() != 2 {
		t.Errorf("got len %d, want 2", c.Len())
	}

	var zero Cursor[rune]
	if !zero.AtEnd() || zero.Len() != 0 {
		t.Errorf("zero cursor is not at end")
	}
}

func TestConfig(t *testing.T) {
	c := NewTextCursor("\tx", Config{
		TabWidth: 2,
		State:    "state",
		DefPos:   loc.Pos{Line: 1, Col: 3},
	})
	if c.State() != "state" {
		t.Errorf("got state %v, want \"state\"", c.State())
	}
	if c.DefPos() != (loc.Pos{Line: 1, Col: 3}) {
		t.Errorf("got def pos %v", c.DefPos())
	}
	if c.Side() != SideOffside {
		t.Errorf("got %s, want offside", c.Side())
	}
	c = c.Advance().Rest()
	if c.Pos() != (loc.Pos{Col: 2}) {
		t.Errorf("got pos %v, want column 2", c.Pos())
	}
	if c.State() != "state" {
		t.Errorf("got state %v after advance, want \"state\"", c.State())
	}
}

func TestWithDefPos(t *testing.T) {
	c := text("ab\n   c")
	for i := 0; i < 6; i++ {
		c = c.Advance().Rest()
	}
	// c is at line 1, column 3.
	tests := []struct {
		ref  loc.Pos
		want Side
	}{
		{loc.Pos{Line: 1, Col: 5}, SideOnside},
		{loc.Pos{Line: 0, Col: 2}, SideOnside},
		{loc.Pos{Line: 0, Col: 3}, SideOffside},
		{loc.Pos{Line: 0, Col: 4}, SideOffside},
	}
	for _, test := range tests {
		d := c.WithDefPos(test.ref)
		if d.Side() != test.want {
			t.Errorf("ref %v: got %s, want %s", test.ref, d.Side(), test.want)
		}
		if c.DefPos() != (loc.Pos{}) {
			t.Errorf("WithDefPos modified the original")
		}
	}
}

func TestCursorEqualIgnoresState(t *testing.T) {
	c := text("abc")
	if !c.WithState(1).Equal(c.WithState(2)) {
		t.Errorf("cursors differing only in state are not equal")
	}
	if c.Equal(text("abc")) {
		t.Errorf("cursors over different inputs are equal")
	}
	if c.Equal(c.WithDefPos(loc.Pos{Line: 1})) {
		t.Errorf("cursors with different reference positions are equal")
	}
}

func TestCursorString(t *testing.T) {
	c := text("a\nb").Advance().Rest().Advance().Rest()
	if got, want := c.String(), "2 (line 2, column 1)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := SideOffside.String(); got != "offside" {
		t.Errorf("got %q, want offside", got)
	}
	if got := SideOnside.String(); got != "onside" {
		t.Errorf("got %q, want onside", got)
	}
}
