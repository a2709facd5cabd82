// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/position"
)

// List of keywords.  Keep this list sorted!
var keywords = map[string]Kind{
	"break":    BREAK,
	"case":     CASE,
	"char":     CHAR,
	"continue": CONTINUE,
	"default":  DEFAULT,
	"do":       DO,
	"else":     ELSE,
	"extern":   EXTERN,
	"for":      FOR,
	"if":       IF,
	"int":      INT,
	"return":   RETURN,
	"switch":   SWITCH,
	"void":     VOID,
	"while":    WHILE,
}

// Dictionary returns a list of all keywords of the language.
func Dictionary() (r []string) {
	for k := range keywords {
		r = append(r, k)
	}
	return
}

// A stateFn represents each state the scanner can be in.
type stateFn func(*Lexer) stateFn

// A Lexer holds the state of the scanner.  It runs in the caller's
// goroutine: each call to NextToken advances the state machine until a token
// is ready.
type Lexer struct {
	name  string            // Name of program.
	input *bufio.Reader     // Source program
	state stateFn           // Current state function of the lexer.
	errs  *errors.ErrorList // Diagnostics sink for lexical errors, may be nil.

	// The "read cursor" in the input.
	rune  rune // The current rune.
	width int  // Width in bytes.
	line  int  // The line position of the current rune.
	col   int  // The column position of the current rune.

	// The currently being lexed token.
	startcol int             // Starting column of the current token.
	text     strings.Builder // the text of the current token

	pending *Token // The token emitted by the last state, not yet returned.
	last    Token  // The EOF token, repeated once the input is exhausted.
}

// NewLexer creates a new scanner type that reads the input provided.  Lexical
// errors are recorded in errs, and also returned as INVALID tokens.
func NewLexer(name string, input io.Reader, errs *errors.ErrorList) *Lexer {
	l := &Lexer{
		name:  name,
		input: bufio.NewReader(input),
		state: lexProg,
		errs:  errs,
	}
	return l
}

// NextToken returns the next token in the input.  When no token is available
// to be returned it executes the next action in the state machine.  Each
// action emits at most one token.  After the input is exhausted every call
// returns the EOF token.
func (l *Lexer) NextToken() Token {
	for l.pending == nil {
		if l.state == nil {
			return l.last
		}
		l.state = l.state(l)
	}
	tok := *l.pending
	l.pending = nil
	if tok.Kind == EOF {
		l.last = tok
	}
	return tok
}

// emit passes a token to the client.
func (l *Lexer) emit(kind Kind) {
	pos := position.Position{Filename: l.name, Line: l.line, Startcol: l.startcol, Endcol: l.col - 1}
	glog.V(2).Infof("Emitting %v spelled %q at %v", kind, l.text.String(), pos)
	l.pending = &Token{Kind: kind, Spelling: l.text.String(), Pos: pos}
	// Reset the current token
	l.text.Reset()
	l.startcol = l.col
}

// Internal end of file value.
const eof rune = -1

// next returns the next rune in the input.  Read errors end the input.
func (l *Lexer) next() rune {
	var err error
	l.rune, l.width, err = l.input.ReadRune()
	if err != nil {
		if err != io.EOF {
			glog.Info(err)
		}
		l.width = 1
		l.rune = eof
	}
	return l.rune
}

// backup indicates that we haven't yet dealt with the next rune. Use when
// terminating tokens on unknown runes.
func (l *Lexer) backup() {
	l.width = 0
	if l.rune == eof {
		return
	}
	if err := l.input.UnreadRune(); err != nil {
		glog.Info(err)
	}
}

// stepCursor moves the read cursor.
func (l *Lexer) stepCursor() {
	if l.rune == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col += l.width
	}
}

// accept accepts the current rune and its position into the current token.
func (l *Lexer) accept() {
	l.text.WriteRune(l.rune)
	l.stepCursor()
}

// skip does not accept the current rune into the current token's text, but
// does accept its position into the token. Use only at the start or end of a
// token.
func (l *Lexer) skip() {
	l.stepCursor()
}

// ignore skips over the current rune, removing it from the text of the token,
// and resetting the start position of the current token. Use only between
// tokens.
func (l *Lexer) ignore() {
	l.stepCursor()
	l.startcol = l.col
}

// acceptRun accepts runes while valid holds, returning how many it took.
func (l *Lexer) acceptRun(valid func(rune) bool) (n int) {
	for valid(l.next()) {
		l.accept()
		n++
	}
	l.backup()
	return
}

// errorf records a lexical error, returns an error token and resets the
// scanner.
func (l *Lexer) errorf(code errors.Code) stateFn {
	pos := position.Position{
		Filename: l.name,
		Line:     l.line,
		Startcol: l.startcol,
		Endcol:   l.col - 1,
	}
	if l.errs != nil {
		l.errs.Add(code, &pos, l.text.String())
	}
	l.pending = &Token{
		Kind:     INVALID,
		Spelling: l.text.String(),
		Pos:      pos,
		Code:     code,
	}
	// Reset the current token
	l.text.Reset()
	l.startcol = l.col
	return lexProg
}

// pair emits two if the next rune is second, else one.
func (l *Lexer) pair(second rune, two, one Kind) {
	l.accept()
	if l.next() == second {
		l.accept()
		l.emit(two)
		return
	}
	l.backup()
	l.emit(one)
}

// State functions.

// lexProg starts lexing a program.
func lexProg(l *Lexer) stateFn {
	switch r := l.next(); {
	case isSpace(r):
		l.ignore()
	case r == '{':
		l.accept()
		l.emit(LCURLY)
	case r == '}':
		l.accept()
		l.emit(RCURLY)
	case r == '(':
		l.accept()
		l.emit(LPAREN)
	case r == ')':
		l.accept()
		l.emit(RPAREN)
	case r == '[':
		l.accept()
		l.emit(LSQUARE)
	case r == ']':
		l.accept()
		l.emit(RSQUARE)
	case r == ',':
		l.accept()
		l.emit(COMMA)
	case r == ':':
		l.accept()
		l.emit(COLON)
	case r == ';':
		l.accept()
		l.emit(SEMICOLON)
	case r == '+':
		l.pair('+', INC, PLUS)
	case r == '-':
		l.pair('-', DEC, MINUS)
	case r == '*':
		l.accept()
		l.emit(MUL)
	case r == '%':
		l.accept()
		l.emit(MOD)
	case r == '=':
		l.pair('=', EQ, ASSIGN)
	case r == '!':
		l.pair('=', NE, NOT)
	case r == '<':
		l.pair('=', LE, LT)
	case r == '>':
		l.pair('=', GE, GT)
	case r == '&':
		l.pair('&', AND, AMP)
	case r == '|':
		l.accept()
		if l.next() == '|' {
			l.accept()
			l.emit(OR)
			break
		}
		l.backup()
		return l.errorf(errors.OrNoPair)
	case r == '/':
		switch l.next() {
		case '/':
			return lexLineComment
		case '*':
			return lexBlockComment
		default:
			l.backup()
			l.rune = '/'
			l.width = 1
			l.accept()
			l.emit(DIV)
		}
	case r == '\'':
		return lexChar
	case r == '"':
		return lexQuotedString
	case isDigit(r):
		l.backup()
		return lexNumeric
	case isAlpha(r):
		return lexIdentifier
	case r == eof:
		l.skip()
		l.emit(EOF)
		// Stop the machine, we're done.
		return nil
	default:
		l.accept()
		return l.errorf(errors.TokenNoExist)
	}
	return lexProg
}

// Lex a comment that runs to the end of the line.
func lexLineComment(l *Lexer) stateFn {
	l.ignore()
	l.ignore()
Loop:
	for {
		switch l.next() {
		case '\n':
			l.ignore()
			break Loop
		case eof:
			break Loop
		default:
			l.ignore()
		}
	}
	return lexProg
}

// Lex a block comment.  An unterminated comment is reported once, and the
// input is then at its end.
func lexBlockComment(l *Lexer) stateFn {
	l.ignore()
	l.ignore()
	for {
		switch l.next() {
		case eof:
			return l.errorf(errors.CommentNoEnd)
		case '*':
			l.ignore()
			if l.next() == '/' {
				l.ignore()
				return lexProg
			}
			l.backup()
		default:
			l.ignore()
		}
	}
}

// Lex a decimal, hexadecimal or binary integer constant.
func lexNumeric(l *Lexer) stateFn {
	r := l.next()
	l.accept()
	if r == '0' {
		switch l.next() {
		case 'x', 'X':
			l.accept()
			if l.acceptRun(isHexDigit) == 0 {
				return l.errorf(errors.NumHexType)
			}
			l.emit(INTLITERAL)
			return lexProg
		case 'b', 'B':
			l.accept()
			if l.acceptRun(isBinDigit) == 0 {
				return l.errorf(errors.NumBinType)
			}
			l.emit(INTLITERAL)
			return lexProg
		default:
			l.backup()
		}
	}
	l.acceptRun(isDigit)
	l.emit(INTLITERAL)
	return lexProg
}

// Lex a character constant.  The text of the token is the decoded character.
func lexChar(l *Lexer) stateFn {
	l.skip() // Skip leading quote
	var c rune
	switch r := l.next(); r {
	case '\\':
		l.skip()
		r = l.next()
		if r == eof || r == '\n' {
			l.backup()
			return l.errorf(errors.CharNoRQuotation)
		}
		l.skip()
		c = unescape(r)
	case eof, '\n':
		l.backup()
		return l.errorf(errors.CharNoRQuotation)
	case '\'':
		l.skip()
		return l.errorf(errors.CharNoData)
	default:
		l.skip()
		c = r
	}
	if l.next() != '\'' {
		l.backup()
		return l.errorf(errors.CharNoRQuotation)
	}
	l.skip() // Skip trailing quote.
	l.text.WriteRune(c)
	l.emit(CHARLITERAL)
	return lexProg
}

// Lex a quoted string.  The text of a quoted string does not include the '"'
// quotes, and escapes are decoded.
func lexQuotedString(l *Lexer) stateFn {
	l.skip() // Skip leading quote
Loop:
	for {
		switch l.next() {
		case '\\':
			l.skip()
			switch r := l.next(); r {
			case eof:
				return l.errorf(errors.StrNoRQuotation)
			case '\n':
				// Line continuation.
				l.skip()
			default:
				l.skip()
				l.text.WriteRune(unescape(r))
			}
		case eof, '\n':
			l.backup()
			return l.errorf(errors.StrNoRQuotation)
		case '"':
			l.skip() // Skip trailing quote.
			break Loop
		default:
			l.accept()
		}
	}
	l.emit(STRING)
	return lexProg
}

// Lex an identifier, or keyword.
func lexIdentifier(l *Lexer) stateFn {
	l.accept()
	l.acceptRun(isAlnum)
	if r, ok := keywords[l.text.String()]; ok {
		l.emit(r)
	} else {
		l.emit(ID)
	}
	return lexProg
}

// unescape decodes the character after a backslash.  Unknown escapes stand
// for the character itself.
func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return r
	}
}

// Helper predicates.

// isAlpha reports whether r can start an identifier.
func isAlpha(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isAlnum reports whether r can continue an identifier.
func isAlnum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

// isDigit reports whether r is a decimal digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isBinDigit(r rune) bool {
	return r == '0' || r == '1'
}

// isSpace reports whether r is whitespace.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
