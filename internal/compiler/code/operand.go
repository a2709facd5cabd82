// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package code

import (
	"fmt"
	"strconv"

	"github.com/quadc/quadc/internal/compiler/symbol"
	"github.com/quadc/quadc/internal/compiler/types"
)

// Operand is one of the address fields of a Quad.  The set of operand kinds
// is closed: Var, Func, Temp, Const, Str and Target.
type Operand interface {
	String() string
	operand()
}

// Var refers to a declared variable or parameter.
type Var struct {
	Sym *symbol.Symbol
}

// Func refers to a declared function.
type Func struct {
	Sym *symbol.Symbol
}

// Temp is a compiler generated temporary value.
type Temp struct {
	ID   int
	Type types.Type
}

// Const is an integer or character literal.
type Const struct {
	Value int64
	Type  types.Type
}

// Str is a string literal, stored in the object's string table at Index.
type Str struct {
	Index int
	Value string
}

// Target is the index of the quadruple a jump transfers control to.  A
// negative target has not been backpatched yet.
type Target int

func (Var) operand()    {}
func (Func) operand()   {}
func (Temp) operand()   {}
func (Const) operand()  {}
func (Str) operand()    {}
func (Target) operand() {}

func (v Var) String() string  { return v.Sym.Name }
func (f Func) String() string { return f.Sym.Name }
func (t Temp) String() string { return fmt.Sprintf("t%d", t.ID) }
func (s Str) String() string  { return strconv.Quote(s.Value) }

func (c Const) String() string {
	if types.Equals(c.Type, types.Char) {
		return strconv.QuoteRuneToASCII(rune(c.Value))
	}
	return strconv.FormatInt(c.Value, 10)
}

func (t Target) String() string {
	if t < 0 {
		return "@?"
	}
	return fmt.Sprintf("@%d", int(t))
}

// TypeOf returns the type of the value an operand denotes, or nil for jump
// targets.
func TypeOf(o Operand) types.Type {
	switch v := o.(type) {
	case Var:
		return v.Sym.Type
	case Func:
		return v.Sym.Type
	case Temp:
		return v.Type
	case Const:
		return v.Type
	case Str:
		return types.NewArray(types.Char, len(v.Value)+1)
	}
	return nil
}
