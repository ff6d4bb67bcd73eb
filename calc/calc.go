// Copyright © 2020 The Pea Authors under an MIT-style license.

// Package calc is a small integer calculator language
// built on the parsec combinators.
//
// Source text is first lexed into tokens with a text parser,
// then the tokens are parsed into statements with a token parser.
//
//	let x = 6 * 7; x - 2 # comment
package calc

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/eaburns/parsec"
	"github.com/eaburns/parsec/loc"
	"github.com/tliron/commonlog"
)

// A Kind is the kind of a token.
type Kind int

const (
	Number Kind = iota
	Ident
	Keyword
	Punct
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Ident:
		return "identifier"
	case Keyword:
		return "keyword"
	case Punct:
		return "punctuation"
	default:
		return "Kind(?)"
	}
}

// A Token is a lexical token.
type Token struct {
	Kind Kind
	Text string
	Pos  loc.Pos
}

func (t Token) String() string { return strconv.Quote(t.Text) }

func tokenPos(t Token) loc.Pos { return t.Pos }

var keywords = map[string]bool{"let": true}

// Grammar is the EBNF grammar of the language, starting at Program.
// Space and comments from # to the end of a line may separate tokens.
const Grammar = `
Program    = [ Stmt { ";" Stmt } [ ";" ] ] .
Stmt       = Let | Expr .
Let        = "let" identifier "=" Expr .
Expr       = Term { ( "+" | "-" ) Term } .
Term       = Unary { ( "*" | "/" | "%" ) Unary } .
Unary      = "-" Unary | Primary .
Primary    = number | identifier | "(" Expr ")" .
identifier = letter { letter | digit } .
number     = digit { digit } .
letter     = "a" … "z" | "A" … "Z" | "_" .
digit      = "0" … "9" .
`

// An Expr is an expression.
type Expr interface {
	Pos() loc.Pos
}

// A Lit is an integer literal.
type Lit struct {
	At    loc.Pos
	Value int64
}

// A Var is a variable reference.
type Var struct {
	At   loc.Pos
	Name string
}

// A Unary is a unary operation.
type Unary struct {
	At loc.Pos
	Op string
	X  Expr
}

// A Binary is a binary operation.
// At is the position of the operator.
type Binary struct {
	At   loc.Pos
	Op   string
	X, Y Expr
}

func (x Lit) Pos() loc.Pos    { return x.At }
func (x Var) Pos() loc.Pos    { return x.At }
func (x Unary) Pos() loc.Pos  { return x.At }
func (x Binary) Pos() loc.Pos { return x.X.Pos() }

// A Stmt is a statement:
// either an expression, or a let binding if Name is non-empty.
type Stmt struct {
	At   loc.Pos
	Name string
	X    Expr
}

// A Parser parses calculator source.
// It is safe for concurrent use.
type Parser struct {
	lexer  parsec.Parser[[]Token, rune]
	parser parsec.Parser[[]Stmt, Token]
}

// NewParser returns a new Parser.
// If log is non-nil, tokens, expressions, and statements
// are traced to it at debug level.
func NewParser(log commonlog.Logger) *Parser {
	return &Parser{lexer: lex(log), parser: parse(log)}
}

var defaultParser = NewParser(nil)

// Lex returns the tokens of src.
func (p *Parser) Lex(src string) ([]Token, error) {
	return parsec.ParseString(p.lexer, src).Value()
}

// Parse returns the statements of src.
// Errors are of type *parsec.Error.
func (p *Parser) Parse(src string) ([]Stmt, error) {
	toks, err := p.Lex(src)
	if err != nil {
		return nil, err
	}
	return parsec.ParseTokens(p.parser, toks, tokenPos).Value()
}

// Lex returns the tokens of src.
func Lex(src string) ([]Token, error) { return defaultParser.Lex(src) }

// Parse returns the statements of src.
func Parse(src string) ([]Stmt, error) { return defaultParser.Parse(src) }

// Incomplete returns whether err is a parse error
// caused by src ending too early.
func Incomplete(err error) bool {
	perr, ok := err.(*parsec.Error)
	return ok && perr.EndOfInput()
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdent(r rune) bool { return isIdentStart(r) || unicode.IsDigit(r) }

func lex(log commonlog.Logger) parsec.Parser[[]Token, rune] {
	comment := parsec.Right(parsec.Char('#'), parsec.SkipMany(parsec.NoneOf("\n")))
	space := parsec.SkipMany(parsec.Label(parsec.Either(
		parsec.SkipMany1(parsec.Satisfy(unicode.IsSpace)),
		comment,
	), ""))

	number := parsec.Map(parsec.Label(parsec.AsString(parsec.Many1(parsec.Satisfy(unicode.IsDigit))), "number"),
		func(s string) Token { return Token{Kind: Number, Text: s} })
	ident := parsec.Label(parsec.Bind(parsec.Satisfy(isIdentStart), func(r rune) parsec.Parser[Token, rune] {
		return parsec.Map(parsec.AsString(parsec.Many(parsec.Satisfy(isIdent))), func(s string) Token {
			text := string(r) + s
			if keywords[text] {
				return Token{Kind: Keyword, Text: text}
			}
			return Token{Kind: Ident, Text: text}
		})
	}), "identifier")
	op := parsec.Map(parsec.Label(parsec.OneOf("+-*/%()=;"), "operator"),
		func(r rune) Token { return Token{Kind: Punct, Text: string(r)} })

	token := parsec.TraceLog("token", log, parsec.Bind(parsec.GetPos[rune](), func(pos loc.Pos) parsec.Parser[Token, rune] {
		return parsec.Map(parsec.Choice(number, ident, op), func(t Token) Token {
			t.Pos = pos
			return t
		})
	}))
	return parsec.Right(space, parsec.Left(parsec.Many(parsec.Left(token, space)), parsec.EOF[rune]()))
}

func punct(s string) parsec.Parser[Token, Token] {
	return parsec.Token(strconv.Quote(s), func(t Token) bool {
		return t.Kind == Punct && t.Text == s
	})
}

func keyword(s string) parsec.Parser[Token, Token] {
	return parsec.Token(strconv.Quote(s), func(t Token) bool {
		return t.Kind == Keyword && t.Text == s
	})
}

func binop(ops ...string) parsec.Parser[func(Expr, Expr) Expr, Token] {
	var ps []parsec.Parser[func(Expr, Expr) Expr, Token]
	for _, op := range ops {
		ps = append(ps, parsec.Map(punct(op), func(t Token) func(Expr, Expr) Expr {
			return func(x, y Expr) Expr { return Binary{At: t.Pos, Op: t.Text, X: x, Y: y} }
		}))
	}
	return parsec.Choice(ps...)
}

func parse(log commonlog.Logger) parsec.Parser[[]Stmt, Token] {
	var expr parsec.Parser[Expr, Token]
	lit := parsec.TokenMap("number", func(t Token) (Expr, bool) {
		if t.Kind != Number {
			return nil, false
		}
		n, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, false
		}
		return Lit{At: t.Pos, Value: n}, true
	})
	name := parsec.TokenMap("identifier", func(t Token) (string, bool) {
		return t.Text, t.Kind == Ident
	})
	ref := parsec.Bind(parsec.GetPos[Token](), func(pos loc.Pos) parsec.Parser[Expr, Token] {
		return parsec.Map(name, func(n string) Expr { return Var{At: pos, Name: n} })
	})
	paren := parsec.Between(punct("("), punct(")"),
		parsec.Lazy(func() parsec.Parser[Expr, Token] { return expr }))

	var unary parsec.Parser[Expr, Token]
	unary = parsec.Either(
		parsec.Bind(punct("-"), func(op Token) parsec.Parser[Expr, Token] {
			return parsec.Map(unary, func(x Expr) Expr { return Unary{At: op.Pos, Op: op.Text, X: x} })
		}),
		parsec.Choice(lit, ref, paren),
	)
	term := parsec.ChainL1(unary, binop("*", "/", "%"))
	expr = parsec.TraceLog("expr", log, parsec.ChainL1(term, binop("+", "-")))

	let := parsec.Bind(keyword("let"), func(kw Token) parsec.Parser[Stmt, Token] {
		return parsec.Bind(name, func(n string) parsec.Parser[Stmt, Token] {
			return parsec.Right(punct("="), parsec.Map(expr, func(x Expr) Stmt {
				return Stmt{At: kw.Pos, Name: n, X: x}
			}))
		})
	})
	exprStmt := parsec.Map(expr, func(x Expr) Stmt { return Stmt{At: x.Pos(), X: x} })
	stmt := parsec.TraceLog("stmt", log, parsec.Either(let, exprStmt))
	return parsec.Left(parsec.SepEndBy(stmt, punct(";")), parsec.EOF[Token]())
}

// An Error is an evaluation error.
type Error struct {
	Pos loc.Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("error at (%s): %s", e.Pos, e.Msg) }

// An Env holds the values of variables.
type Env map[string]int64

// Run evaluates the statements in order and returns their values.
// Let statements bind their name in env.
func (env Env) Run(stmts []Stmt) ([]int64, error) {
	var vs []int64
	for _, s := range stmts {
		v, err := env.Eval(s.X)
		if err != nil {
			return vs, err
		}
		if s.Name != "" {
			env[s.Name] = v
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// Eval returns the value of an expression.
func (env Env) Eval(x Expr) (int64, error) {
	switch x := x.(type) {
	case Lit:
		return x.Value, nil
	case Var:
		v, ok := env[x.Name]
		if !ok {
			return 0, &Error{Pos: x.At, Msg: x.Name + " undefined"}
		}
		return v, nil
	case Unary:
		v, err := env.Eval(x.X)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case Binary:
		a, err := env.Eval(x.X)
		if err != nil {
			return 0, err
		}
		b, err := env.Eval(x.Y)
		if err != nil {
			return 0, err
		}
		switch x.Op {
		case "+":
			return a + b, nil
		case "-":
			return a - b, nil
		case "*":
			return a * b, nil
		case "/", "%":
			if b == 0 {
				return 0, &Error{Pos: x.At, Msg: "division by zero"}
			}
			if x.Op == "/" {
				return a / b, nil
			}
			return a % b, nil
		}
		return 0, &Error{Pos: x.At, Msg: "unknown operator " + x.Op}
	default:
		panic(fmt.Sprintf("impossible expression type %T", x))
	}
}

// Exec parses and runs src in env.
func (env Env) Exec(src string) ([]int64, error) {
	stmts, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return env.Run(stmts)
}
