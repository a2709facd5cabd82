// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package parser implements the single pass of the compiler.  The parser
// fetches tokens from the lexer, one token of lookahead at a time, and while
// it recognises each production it resolves names in the symbol table, checks
// types, and drives the quadruple generator.  Syntax and semantic errors are
// recorded in the diagnostics sink and parsing continues; no diagnostic stops
// the pass.
package parser

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/quadc/quadc/internal/compiler/code"
	"github.com/quadc/quadc/internal/compiler/codegen"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/position"
	"github.com/quadc/quadc/internal/compiler/symbol"
)

// DefaultMaxRecursionDepth bounds the nesting of statements and expressions.
const DefaultMaxRecursionDepth = 1000

// Result is the output of a parse.
type Result struct {
	Quads   []code.Quad
	Strings []string
	Symbols *symbol.Table
}

// Option configures a parse.
type Option func(*parser) error

// EmitTokens logs every token read from the lexer.
func EmitTokens() Option {
	return func(p *parser) error {
		p.emitTokens = true
		return nil
	}
}

// MaxRecursionDepth sets the deepest nesting of statements and expressions
// accepted before the parse is abandoned.
func MaxRecursionDepth(n int) Option {
	return func(p *parser) error {
		if n <= 0 {
			return errors.Errorf("max recursion depth must be positive, got %d", n)
		}
		p.maxDepth = n
		return nil
	}
}

// Parse compiles the program named name read from input.  Diagnostics are
// appended to sink.  The returned error is non-nil only for failures of the
// compiler itself; a program with errors still yields a Result.
func Parse(name string, input io.Reader, sink *errors.ErrorList, opts ...Option) (r *Result, err error) {
	if sink == nil {
		return nil, errors.Errorf("no diagnostics sink for %q", name)
	}
	p := newParser(name, input, sink)
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	defer func() {
		if e := recover(); e != nil {
			a, ok := e.(abort)
			if !ok {
				panic(e)
			}
			quads, _ := p.g.Quads()
			r = &Result{Quads: quads, Strings: p.g.Strings(), Symbols: p.syms}
			err = errors.Wrapf(a.err, "parse of %q abandoned", name)
		}
	}()
	p.next()
	p.program()
	quads, err := p.g.Quads()
	return &Result{Quads: quads, Strings: p.g.Strings(), Symbols: p.syms}, err
}

// abort carries an internal compiler error out of the recursive descent.
type abort struct {
	err error
}

// frame is one enclosing loop or switch.
type frame struct {
	brk  codegen.Label
	cont codegen.Label
	loop bool // switches have no continue label
}

// function is the function whose body is being compiled.
type function struct {
	sym  *symbol.Symbol
	exit codegen.Label
}

// parser holds the state of one parse.
type parser struct {
	name string
	l    *Lexer
	tok  Token // Current token.
	errs *errors.ErrorList
	g    *codegen.Generator
	syms *symbol.Table

	fn     *function
	frames []frame

	consumed   int // Tokens read so far, to check loops make progress.
	depth      int
	maxDepth   int
	emitTokens bool
}

func newParser(name string, input io.Reader, sink *errors.ErrorList) *parser {
	return &parser{
		name:     name,
		l:        NewLexer(name, input, sink),
		errs:     sink,
		g:        codegen.New(),
		syms:     symbol.NewTable(),
		maxDepth: DefaultMaxRecursionDepth,
	}
}

// next advances to the next valid token.  Invalid tokens were reported by
// the lexer and are skipped.
func (p *parser) next() {
	for {
		p.tok = p.l.NextToken()
		p.consumed++
		if p.emitTokens {
			glog.Info(p.tok)
		}
		if p.tok.Kind != INVALID {
			break
		}
	}
	p.g.SetLine(p.tok.Pos.Line + 1)
}

// accept consumes the current token if it is of kind k.
func (p *parser) accept(k Kind) bool {
	if p.tok.Kind != k {
		return false
	}
	p.next()
	return true
}

// expect consumes the current token if it is of kind k.  Otherwise it
// reports lost when the current token can follow the missing one, keeping the
// current token, or wrong when it cannot, discarding it.
func (p *parser) expect(k Kind, lost, wrong errors.Code, follow kindSet) bool {
	if p.accept(k) {
		return true
	}
	if follow.has(p.tok.Kind) || structural.has(p.tok.Kind) {
		p.errs.AddExpected(lost, p.pos(), kindSpelling(k), p.tok.Spelling)
		return false
	}
	p.errs.AddExpected(wrong, p.pos(), kindSpelling(k), p.tok.Spelling)
	p.next()
	return false
}

// pos returns the position of the current token.
func (p *parser) pos() *position.Position {
	pos := p.tok.Pos
	return &pos
}

// errorf records a diagnostic at pos.
func (p *parser) errorf(code errors.Code, pos position.Position, found string) {
	glog.V(2).Infof("%s at %s near %q", code, pos, found)
	p.errs.Add(code, &pos, found)
}

// progress discards the current token if nothing was consumed since start.
// Every loop over a token sequence calls it so that the parse terminates.
func (p *parser) progress(start int) {
	if p.consumed == start && p.tok.Kind != EOF {
		glog.V(2).Infof("skipping %s", p.tok)
		p.next()
	}
}

// enter and leave bracket each recursive production.
func (p *parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		panic(abort{errors.Errorf("internal compiler error: nesting deeper than %d at %s", p.maxDepth, p.tok.Pos)})
	}
}

func (p *parser) leave() {
	p.depth--
}

// pushScope and popScope open and close a block scope.
func (p *parser) pushScope() {
	p.syms.Push()
}

func (p *parser) popScope() {
	if err := p.syms.Pop(); err != nil {
		panic(abort{err})
	}
}

// program = { segment } EOF .
func (p *parser) program() {
	for p.tok.Kind != EOF {
		start := p.consumed
		if !declFirst.has(p.tok.Kind) {
			p.errorf(errors.TypeWrong, p.tok.Pos, p.tok.Spelling)
			p.next()
			continue
		}
		p.segment()
		p.progress(start)
	}
	glog.V(1).Infof("%s: parsed %d tokens into %d quads", p.name, p.consumed, p.g.PC())
}

// kindSet is a set of token kinds.
type kindSet uint64

func setOf(ks ...Kind) (s kindSet) {
	for _, k := range ks {
		s |= 1 << uint(k)
	}
	return
}

func (s kindSet) has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

func (s kindSet) union(t kindSet) kindSet {
	return s | t
}

var (
	typeFirst  = setOf(INT, CHAR, VOID)
	declFirst  = typeFirst.union(setOf(EXTERN))
	exprFirst  = setOf(ID, INTLITERAL, CHARLITERAL, STRING, LPAREN, NOT, MINUS, AMP, MUL, INC, DEC)
	stmtFirst  = exprFirst.union(setOf(SEMICOLON, LCURLY, IF, SWITCH, WHILE, DO, FOR, BREAK, CONTINUE, RETURN))
	stmtFollow = stmtFirst.union(declFirst).union(setOf(RCURLY, ELSE, CASE, DEFAULT, EOF))
	exprFollow = setOf(SEMICOLON, RPAREN, RSQUARE, COMMA, COLON, RCURLY, EOF,
		PLUS, DIV, MOD, GT, GE, LT, LE, EQ, NE, AND, OR, ASSIGN)

	// Tokens that are never discarded by recovery: dropping one would
	// unbalance the block structure.
	structural = setOf(LCURLY, RCURLY, SEMICOLON, EOF)
)

// kindSpelling returns how a token kind is written in a program.
func kindSpelling(k Kind) string {
	switch k {
	case ID:
		return "identifier"
	case INTLITERAL:
		return "integer"
	case INT, CHAR, VOID:
		return "type"
	}
	for s, kw := range keywords {
		if kw == k {
			return "`" + s + "'"
		}
	}
	if s, ok := punctuation[k]; ok {
		return "`" + s + "'"
	}
	return fmt.Sprint(k)
}

var punctuation = map[Kind]string{
	LPAREN:    "(",
	RPAREN:    ")",
	LSQUARE:   "[",
	RSQUARE:   "]",
	LCURLY:    "{",
	RCURLY:    "}",
	COMMA:     ",",
	COLON:     ":",
	SEMICOLON: ";",
	ASSIGN:    "=",
}
