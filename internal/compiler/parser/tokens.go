// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package parser

import (
	"fmt"

	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/position"
)

// Kind enumerates the types of lexical tokens in a program.
type Kind int

const (
	EOF     Kind = iota
	INVALID      // A lexical error; the token's Code says which.
	ID

	// Type keywords.
	INT
	CHAR
	VOID
	EXTERN

	// Literals.
	INTLITERAL
	CHARLITERAL
	STRING

	// Operators.
	NOT
	AMP // & is only ever address-of.
	PLUS
	MINUS
	MUL
	DIV
	MOD
	INC
	DEC
	GT
	GE
	LT
	LE
	EQ
	NE
	AND
	OR

	// Punctuation.
	LPAREN
	RPAREN
	LSQUARE
	RSQUARE
	LCURLY
	RCURLY
	COMMA
	COLON
	SEMICOLON
	ASSIGN

	// Control keywords.
	IF
	ELSE
	SWITCH
	CASE
	DEFAULT
	WHILE
	DO
	FOR
	BREAK
	CONTINUE
	RETURN

	lastKind
)

var kindNames = map[Kind]string{
	EOF:         "EOF",
	INVALID:     "INVALID",
	ID:          "ID",
	INT:         "INT",
	CHAR:        "CHAR",
	VOID:        "VOID",
	EXTERN:      "EXTERN",
	INTLITERAL:  "INTLITERAL",
	CHARLITERAL: "CHARLITERAL",
	STRING:      "STRING",
	NOT:         "NOT",
	AMP:         "AMP",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	MUL:         "MUL",
	DIV:         "DIV",
	MOD:         "MOD",
	INC:         "INC",
	DEC:         "DEC",
	GT:          "GT",
	GE:          "GE",
	LT:          "LT",
	LE:          "LE",
	EQ:          "EQ",
	NE:          "NE",
	AND:         "AND",
	OR:          "OR",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LSQUARE:     "LSQUARE",
	RSQUARE:     "RSQUARE",
	LCURLY:      "LCURLY",
	RCURLY:      "RCURLY",
	COMMA:       "COMMA",
	COLON:       "COLON",
	SEMICOLON:   "SEMICOLON",
	ASSIGN:      "ASSIGN",
	IF:          "IF",
	ELSE:        "ELSE",
	SWITCH:      "SWITCH",
	CASE:        "CASE",
	DEFAULT:     "DEFAULT",
	WHILE:       "WHILE",
	DO:          "DO",
	FOR:         "FOR",
	BREAK:       "BREAK",
	CONTINUE:    "CONTINUE",
	RETURN:      "RETURN",
}

// String returns a readable name of the token Kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token describes a lexed Token from the input, containing its type, the
// original text of the Token, and its position in the input.  Character and
// string literals carry their decoded text.
type Token struct {
	Kind     Kind
	Spelling string
	Pos      position.Position
	Code     errors.Code // The lexical error, for INVALID tokens only.
}

// String returns a printable form of a Token.
func (t Token) String() string {
	if t.Kind == INVALID {
		return fmt.Sprintf("%s(%s,%q,%s)", t.Kind, t.Code, t.Spelling, t.Pos)
	}
	return fmt.Sprintf("%s(%q,%s)", t.Kind.String(), t.Spelling, t.Pos)
}
