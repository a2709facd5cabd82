// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package parser

import (
	"github.com/quadc/quadc/internal/compiler/code"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/position"
	"github.com/quadc/quadc/internal/compiler/types"
)

// value describes the result of an analysed expression.
type value struct {
	op  code.Operand
	typ types.Type
	pos position.Position // source span of the expression

	lval bool // designates storage
	ind  bool // op holds the address of the storage, not its contents

	isConst bool // cval is known at compile time
	cval    int64
}

func constant(v int64, typ types.Type, pos position.Position) value {
	return value{op: code.Const{Value: v, Type: typ}, typ: typ, pos: pos, isConst: true, cval: v}
}

// degraded stands in for an expression that failed to check, so analysis
// can continue with a value of the expected type.
func degraded(pos position.Position) value {
	return constant(0, types.Int, pos)
}

// rvalue loads the contents of an indirect value and converts arrays to the
// address of their first element.
func (p *parser) rvalue(v value) value {
	switch {
	case v.ind:
		t := p.g.NewTemp(v.typ)
		p.g.Emit(code.Get, t, v.op, nil)
		v = value{op: t, typ: v.typ, pos: v.pos}
	case types.IsArray(v.typ):
		ptr := types.Decay(v.typ)
		t := p.g.NewTemp(ptr)
		p.g.Emit(code.Lea, t, v.op, nil)
		v = value{op: t, typ: ptr, pos: v.pos}
	default:
		v.lval = false
	}
	return v
}

// operand returns v as the operand of a computation.  Void values are
// reported.
func (p *parser) operand(v value) value {
	if types.IsVoid(v.typ) {
		p.errorf(errors.ExprIsVoid, v.pos, "")
		return degraded(v.pos)
	}
	return p.rvalue(v)
}

// scalar returns v as the operand of an arithmetic, comparison or logical
// operator.
func (p *parser) scalar(v value) value {
	v = p.operand(v)
	if !types.IsScalar(v.typ) {
		p.errorf(errors.ExprIsBase, v.pos, v.typ.String())
		v.typ = types.Int
		v.isConst = false
	}
	return v
}

// one is the increment of ++ and --.
var one = code.Const{Value: 1, Type: types.Int}

// fold evaluates a binary operator on two constants.  Division by zero does
// not fold.
func fold(op code.Opcode, a, b int64) (int64, bool) {
	var r int64
	switch op {
	case code.Add:
		r = a + b
	case code.Sub:
		r = a - b
	case code.Mul:
		r = a * b
	case code.Div:
		if b == 0 {
			return 0, false
		}
		r = a / b
	case code.Mod:
		if b == 0 {
			return 0, false
		}
		r = a % b
	case code.Gt:
		r = b2i(a > b)
	case code.Ge:
		r = b2i(a >= b)
	case code.Lt:
		r = b2i(a < b)
	case code.Le:
		r = b2i(a <= b)
	case code.Equ:
		r = b2i(a == b)
	case code.Ne:
		r = b2i(a != b)
	case code.And:
		r = b2i(a != 0 && b != 0)
	case code.Or:
		r = b2i(a != 0 || b != 0)
	default:
		return 0, false
	}
	return int64(int32(r)), true
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
