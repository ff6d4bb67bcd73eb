// Copyright © 2020 The Pea Authors under an MIT-style license.

package loc

import "testing"

func TestStep(t *testing.T) {
	tests := []struct {
		pos  Pos
		r    rune
		tab  int
		want Pos
	}{
		{Pos{0, 0}, 'a', 0, Pos{0, 1}},
		{Pos{3, 7}, 'a', 0, Pos{3, 8}},
		{Pos{3, 7}, '\n', 0, Pos{4, 0}},
		{Pos{0, 0}, '\t', 0, Pos{0, 4}},
		{Pos{0, 3}, '\t', 0, Pos{0, 4}},
		{Pos{0, 4}, '\t', 0, Pos{0, 8}},
		{Pos{0, 5}, '\t', 8, Pos{0, 8}},
		{Pos{0, 1}, '\t', 2, Pos{0, 2}},
		{Pos{0, 0}, '☺', 0, Pos{0, 1}},
	}
	for _, test := range tests {
		if got := Step(test.pos, test.r, test.tab); got != test.want {
			t.Errorf("Step(%v, %q, %d)=%v, want %v", test.pos, test.r, test.tab, got, test.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		p, q Pos
		want int
	}{
		{Pos{0, 0}, Pos{0, 0}, 0},
		{Pos{0, 0}, Pos{0, 1}, -1},
		{Pos{0, 9}, Pos{1, 0}, -1},
		{Pos{2, 0}, Pos{1, 9}, 1},
		{Pos{1, 5}, Pos{1, 4}, 1},
	}
	for _, test := range tests {
		if got := test.p.Compare(test.q); got != test.want {
			t.Errorf("%v.Compare(%v)=%d, want %d", test.p, test.q, got, test.want)
		}
		if got := test.p.Less(test.q); got != (test.want < 0) {
			t.Errorf("%v.Less(%v)=%v, want %v", test.p, test.q, got, test.want < 0)
		}
	}
}

func TestOnside(t *testing.T) {
	ref := Pos{Line: 2, Col: 4}
	tests := []struct {
		pos  Pos
		want bool
	}{
		{Pos{2, 0}, true},
		{Pos{2, 9}, true},
		{Pos{3, 5}, true},
		{Pos{3, 4}, false},
		{Pos{5, 0}, false},
	}
	for _, test := range tests {
		if got := Onside(test.pos, ref); got != test.want {
			t.Errorf("Onside(%v, %v)=%v, want %v", test.pos, ref, got, test.want)
		}
	}
}

func TestString(t *testing.T) {
	if got, want := (Pos{Line: 0, Col: 0}).String(), "line 1, column 1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := (Pos{Line: 9, Col: 2}).String(), "line 10, column 3"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
