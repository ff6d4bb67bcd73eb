// Copyright © 2020 The Pea Authors under an MIT-style license.

package calc

import (
	"strings"
	"sync"
	"testing"

	"github.com/eaburns/parsec/loc"
	"github.com/eaburns/pretty"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

func at(line, col int) loc.Pos { return loc.Pos{Line: line, Col: col} }

func TestLex(t *testing.T) {
	toks, err := Lex("let x1 = 10 # ten\n\t(x1)")
	if err != nil {
		t.Fatalf("got error %v", err)
	}
	want := []Token{
		{Kind: Keyword, Text: "let", Pos: at(0, 0)},
		{Kind: Ident, Text: "x1", Pos: at(0, 4)},
		{Kind: Punct, Text: "=", Pos: at(0, 7)},
		{Kind: Number, Text: "10", Pos: at(0, 9)},
		{Kind: Punct, Text: "(", Pos: at(1, 4)},
		{Kind: Ident, Text: "x1", Pos: at(1, 5)},
		{Kind: Punct, Text: ")", Pos: at(1, 7)},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("got %s\n%s", pretty.String(toks), diff)
	}
}

func TestLexKeywordPrefix(t *testing.T) {
	toks, err := Lex("letter")
	if err != nil {
		t.Fatalf("got error %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != Ident || toks[0].Text != "letter" {
		t.Errorf("got %s, want one identifier", pretty.String(toks))
	}
}

func TestParse(t *testing.T) {
	stmts, err := Parse("1 + 2 * 3; let y = -x")
	if err != nil {
		t.Fatalf("got error %v", err)
	}
	want := []Stmt{
		{
			At: at(0, 0),
			X: Binary{
				At: at(0, 2),
				Op: "+",
				X:  Lit{At: at(0, 0), Value: 1},
				Y: Binary{
					At: at(0, 6),
					Op: "*",
					X:  Lit{At: at(0, 4), Value: 2},
					Y:  Lit{At: at(0, 8), Value: 3},
				},
			},
		},
		{
			At:   at(0, 11),
			Name: "y",
			X:    Unary{At: at(0, 19), Op: "-", X: Var{At: at(0, 20), Name: "x"}},
		},
	}
	if diff := cmp.Diff(want, stmts); diff != "" {
		t.Errorf("got %s\n%s", pretty.String(stmts), diff)
	}
}

func TestExec(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []int64
		err  string
	}{
		{name: "empty", src: "", want: nil},
		{name: "comment only", src: "# nothing\n", want: nil},
		{name: "precedence", src: "1 + 2 * 3", want: []int64{7}},
		{name: "parens", src: "(1 + 2) * 3", want: []int64{9}},
		{name: "left assoc", src: "10 - 3 - 2", want: []int64{5}},
		{name: "unary", src: "-2 * -3; --4", want: []int64{6, 4}},
		{name: "div mod", src: "7 % 3; 7 / 2", want: []int64{1, 3}},
		{name: "let", src: "let x = 6 * 7; x - 2", want: []int64{42, 40}},
		{name: "trailing semicolon", src: "let x = 1; let y = x + 1; y * 10;", want: []int64{1, 2, 20}},
		{name: "multi line", src: "let a = 2\n;\na * a * a", want: []int64{2, 8}},
		{
			name: "division by zero",
			src:  "1 / 0",
			err:  "error at (line 1, column 3): division by zero",
		},
		{
			name: "modulo by zero",
			src:  "let z = 0;\n5 % z",
			err:  "error at (line 2, column 3): division by zero",
		},
		{
			name: "undefined",
			src:  "y + 1",
			err:  "error at (line 1, column 1): y undefined",
		},
		{
			name: "missing operand",
			src:  "1 +",
			err:  `error at (line 1, column 3): unexpected end of stream, expecting "-", number, identifier or "("`,
		},
		{
			name: "missing name",
			src:  "let = 3",
			err:  `error at (line 1, column 5): unexpected "=", expecting identifier`,
		},
		{
			name: "bad character",
			src:  "1 $ 2",
			err:  `error at (line 1, column 3): unexpected "$", expecting number, identifier, operator or end of input`,
		},
		{
			name: "missing separator",
			src:  "1 2",
			err:  `error at (line 1, column 3): unexpected "2", expecting "*", "/", "%", "+", "-", ";" or end of input`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Env{}.Exec(test.src)
			switch {
			case test.err != "" && err == nil:
				t.Fatalf("got %v, want error %q", got, test.err)
			case test.err != "":
				if err.Error() != test.err {
					t.Errorf("got error %q, want %q", err.Error(), test.err)
				}
			case err != nil:
				t.Fatalf("got error %v", err)
			default:
				if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("got %v, want %v\n%s", got, test.want, diff)
				}
			}
		})
	}
}

func TestEnvPersists(t *testing.T) {
	env := Env{}
	if _, err := env.Exec("let n = 5"); err != nil {
		t.Fatalf("got error %v", err)
	}
	vs, err := env.Exec("n * n")
	if err != nil {
		t.Fatalf("got error %v", err)
	}
	if len(vs) != 1 || vs[0] != 25 {
		t.Errorf("got %v, want [25]", vs)
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1 +", true},
		{"(1 + 2", true},
		{"let x =", true},
		{"let", true},
		{"1 2", false},
		{"1 $", false},
		{") 1", false},
	}
	for _, test := range tests {
		_, err := Parse(test.src)
		if err == nil {
			t.Errorf("%q: got no error", test.src)
			continue
		}
		if got := Incomplete(err); got != test.want {
			t.Errorf("%q: got Incomplete %v, want %v (%v)", test.src, got, test.want, err)
		}
	}
	if Incomplete(&Error{Msg: "division by zero"}) {
		t.Errorf("got Incomplete for an evaluation error")
	}
}

func TestTracedParser(t *testing.T) {
	p := NewParser(commonlog.GetLogger("calc.test"))
	stmts, err := p.Parse("let x = 1; x + 2")
	if err != nil {
		t.Fatalf("got error %v", err)
	}
	plain, err := Parse("let x = 1; x + 2")
	if err != nil {
		t.Fatalf("got error %v", err)
	}
	if diff := cmp.Diff(plain, stmts); diff != "" {
		t.Errorf("traced parse differs:\n%s", diff)
	}
}

func TestConcurrentParse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vs, err := Env{}.Exec("let a = 3; (a + 1) * (a - 1)")
			if err != nil || len(vs) != 2 || vs[1] != 8 {
				t.Errorf("got %v, %v, want [3 8]", vs, err)
			}
		}()
	}
	wg.Wait()
}

func TestGrammar(t *testing.T) {
	g, err := ebnf.Parse("calc.ebnf", strings.NewReader(Grammar))
	if err != nil {
		t.Fatalf("failed to parse grammar: %v", err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatalf("failed to verify grammar: %v", err)
	}

	// Every literal of the grammar lexes as a single token.
	var lits []string
	var walk func(ebnf.Expression)
	walk = func(x ebnf.Expression) {
		switch x := x.(type) {
		case ebnf.Alternative:
			for _, y := range x {
				walk(y)
			}
		case ebnf.Sequence:
			for _, y := range x {
				walk(y)
			}
		case *ebnf.Group:
			walk(x.Body)
		case *ebnf.Option:
			walk(x.Body)
		case *ebnf.Repetition:
			walk(x.Body)
		case *ebnf.Token:
			lits = append(lits, x.String)
		}
	}
	for _, prod := range g {
		walk(prod.Expr)
	}
	if len(lits) == 0 {
		t.Fatal("no literals in grammar")
	}
	for _, lit := range lits {
		toks, err := Lex(lit)
		if err != nil {
			t.Errorf("%q: got error %v", lit, err)
			continue
		}
		if len(toks) != 1 || toks[0].Text != lit {
			t.Errorf("%q: got %s, want one token", lit, pretty.String(toks))
		}
	}
}
