// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package parser

import (
	"unicode/utf8"

	"github.com/quadc/quadc/internal/compiler/code"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/position"
	"github.com/quadc/quadc/internal/compiler/types"
)

// expr = or [ "=" expr ] .
func (p *parser) expr() value {
	p.enter()
	defer p.leave()
	lhs := p.or()
	if p.tok.Kind != ASSIGN {
		return lhs
	}
	pos := p.tok.Pos
	p.next()
	rhs := p.operand(p.expr())
	return p.assign(lhs, rhs, pos)
}

// assign stores rhs in the location lhs designates.
func (p *parser) assign(lhs, rhs value, pos position.Position) value {
	switch {
	case !lhs.lval:
		p.errorf(errors.ExprNotLeftVal, pos, "=")
		return rhs
	case types.IsArray(lhs.typ):
		p.errorf(errors.ArrTypeErr, lhs.pos, lhs.typ.String())
		return rhs
	case !types.Assignable(lhs.typ, rhs.typ):
		p.errorf(errors.AssignTypeErr, pos, rhs.typ.String())
	}
	span := *position.Merge(&lhs.pos, &rhs.pos)
	if lhs.ind {
		p.g.Emit(code.Set, rhs.op, lhs.op, nil)
		return value{op: rhs.op, typ: lhs.typ, pos: span}
	}
	p.g.Emit(code.As, lhs.op, rhs.op, nil)
	return value{op: lhs.op, typ: lhs.typ, pos: span}
}

// or = and { "||" and } .
func (p *parser) or() value {
	lhs := p.and()
	for p.tok.Kind == OR {
		p.next()
		lhs = p.shortCircuit(code.Or, lhs, p.and)
	}
	return lhs
}

// and = cmp { "&&" cmp } .
func (p *parser) and() value {
	lhs := p.cmp()
	for p.tok.Kind == AND {
		p.next()
		lhs = p.shortCircuit(code.And, lhs, p.cmp)
	}
	return lhs
}

// shortCircuit emits a logical operator whose right operand is only
// evaluated when the left one does not decide the result:
//
//	AS t, 0; JF L, a; b; AND t, a, b; L:
//	AS t, 1; JT L, a; b; OR t, a, b; L:
func (p *parser) shortCircuit(op code.Opcode, lhs value, rhs func() value) value {
	a := p.scalar(lhs)
	t := p.g.NewTemp(types.Int)
	skip, jump := int64(0), code.Jf
	if op == code.Or {
		skip, jump = 1, code.Jt
	}
	p.g.Emit(code.As, t, code.Const{Value: skip, Type: types.Int}, nil)
	l := p.g.NewLabel()
	p.g.EmitJump(jump, l, a.op, nil)
	b := p.scalar(rhs())
	p.g.Emit(op, t, a.op, b.op)
	p.g.SetLabel(l)
	r := value{op: t, typ: types.Int, pos: *position.Merge(&a.pos, &b.pos)}
	if a.isConst && b.isConst {
		r.cval, r.isConst = fold(op, a.cval, b.cval)
	}
	return r
}

var relops = map[Kind]code.Opcode{
	GT: code.Gt,
	GE: code.Ge,
	LT: code.Lt,
	LE: code.Le,
	EQ: code.Equ,
	NE: code.Ne,
}

// cmp = alo { relop alo } .
func (p *parser) cmp() value {
	lhs := p.alo()
	for {
		op, ok := relops[p.tok.Kind]
		if !ok {
			return lhs
		}
		p.next()
		lhs = p.binary(op, lhs, p.alo)
	}
}

// alo = item { ("+"|"-") item } .
func (p *parser) alo() value {
	lhs := p.item()
	for {
		var op code.Opcode
		switch p.tok.Kind {
		case PLUS:
			op = code.Add
		case MINUS:
			op = code.Sub
		default:
			return lhs
		}
		p.next()
		lhs = p.binary(op, lhs, p.item)
	}
}

// item = factor { ("*"|"/"|"%") factor } .
func (p *parser) item() value {
	lhs := p.factor()
	for {
		var op code.Opcode
		switch p.tok.Kind {
		case MUL:
			op = code.Mul
		case DIV:
			op = code.Div
		case MOD:
			op = code.Mod
		default:
			return lhs
		}
		p.next()
		lhs = p.binary(op, lhs, p.factor)
	}
}

// binary emits op on two scalar operands into a new temporary.  The left
// operand is loaded before the right one is parsed.
func (p *parser) binary(op code.Opcode, lhs value, rhs func() value) value {
	a := p.scalar(lhs)
	b := p.scalar(rhs())
	t := p.g.NewTemp(types.Int)
	p.g.Emit(op, t, a.op, b.op)
	r := value{op: t, typ: types.Int, pos: *position.Merge(&a.pos, &b.pos)}
	if a.isConst && b.isConst {
		r.cval, r.isConst = fold(op, a.cval, b.cval)
	}
	return r
}

// factor = ( "!" | "-" | "&" | "*" | "++" | "--" ) factor | val .
func (p *parser) factor() value {
	p.enter()
	defer p.leave()
	pos := p.tok.Pos
	switch p.tok.Kind {
	case NOT, MINUS:
		op := code.Not
		if p.tok.Kind == MINUS {
			op = code.Neg
		}
		p.next()
		v := p.scalar(p.factor())
		t := p.g.NewTemp(types.Int)
		p.g.Emit(op, t, v.op, nil)
		r := value{op: t, typ: types.Int, pos: pos}
		if v.isConst {
			r.isConst = true
			if op == code.Neg {
				r.cval = int64(int32(-v.cval))
			} else {
				r.cval = b2i(v.cval == 0)
			}
		}
		return r
	case AMP:
		p.next()
		return p.addressOf(p.factor(), pos)
	case MUL:
		p.next()
		return p.deref(p.factor(), pos)
	case INC, DEC:
		op := code.Add
		if p.tok.Kind == DEC {
			op = code.Sub
		}
		p.next()
		v := p.factor()
		v.pos = pos
		return p.incdec(op, v, true)
	}
	return p.val()
}

// addressOf returns the address of the storage v designates.
func (p *parser) addressOf(v value, pos position.Position) value {
	v.pos = pos
	switch {
	case !v.lval:
		p.errorf(errors.ExprNotLeftVal, pos, "&")
		return p.rvalue(v)
	case types.IsAggregate(v.typ):
		p.errorf(errors.ExprIsBase, pos, v.typ.String())
		return p.rvalue(v)
	}
	ptr := types.NewPointer(v.typ)
	if v.ind {
		return value{op: v.op, typ: ptr, pos: pos}
	}
	t := p.g.NewTemp(ptr)
	p.g.Emit(code.Lea, t, v.op, nil)
	return value{op: t, typ: ptr, pos: pos}
}

// deref returns the storage the pointer v points to.
func (p *parser) deref(v value, pos position.Position) value {
	v.pos = pos
	v = p.operand(v)
	if !types.IsAggregate(v.typ) {
		p.errorf(errors.ExprNotBase, pos, v.typ.String())
		return v
	}
	return value{op: v.op, typ: types.Elem(v.typ), pos: pos, lval: true, ind: true}
}

// incdec adds or subtracts one from the storage v designates, yielding the
// new value when prefix is set, and the old one otherwise.
func (p *parser) incdec(op code.Opcode, v value, prefix bool) value {
	switch {
	case !v.lval:
		p.errorf(errors.ExprNotLeftVal, v.pos, "")
		return p.operand(v)
	case !types.IsScalar(v.typ):
		p.errorf(errors.ExprIsBase, v.pos, v.typ.String())
		return p.operand(v)
	}
	if v.ind {
		old := p.g.NewTemp(v.typ)
		p.g.Emit(code.Get, old, v.op, nil)
		updated := p.g.NewTemp(v.typ)
		p.g.Emit(op, updated, old, one)
		p.g.Emit(code.Set, updated, v.op, nil)
		if prefix {
			return value{op: updated, typ: v.typ, pos: v.pos}
		}
		return value{op: old, typ: v.typ, pos: v.pos}
	}
	if prefix {
		p.g.Emit(op, v.op, v.op, one)
		return value{op: v.op, typ: v.typ, pos: v.pos}
	}
	old := p.g.NewTemp(v.typ)
	p.g.Emit(code.As, old, v.op, nil)
	p.g.Emit(op, v.op, v.op, one)
	return value{op: old, typ: v.typ, pos: v.pos}
}

// val = elem [ "++" | "--" ] .
func (p *parser) val() value {
	v := p.elem()
	switch p.tok.Kind {
	case INC:
		p.next()
		return p.incdec(code.Add, v, false)
	case DEC:
		p.next()
		return p.incdec(code.Sub, v, false)
	}
	return v
}

// elem = ID [ "[" expr "]" | "(" [ expr { "," expr } ] ")" ] | "(" expr ")" | literal .
func (p *parser) elem() value {
	pos := p.tok.Pos
	switch p.tok.Kind {
	case ID:
		name := p.tok.Spelling
		p.next()
		switch p.tok.Kind {
		case LSQUARE:
			return p.index(p.variable(name, pos))
		case LPAREN:
			return p.call(name, pos)
		}
		return p.variable(name, pos)
	case LPAREN:
		p.next()
		v := p.expr()
		p.expect(RPAREN, errors.RparenLost, errors.RparenWrong, stmtFollow.union(exprFollow))
		v.pos = pos
		return v
	case INTLITERAL, CHARLITERAL, STRING:
		return p.literal()
	}
	p.expect(INTLITERAL, errors.LiteralLost, errors.LiteralWrong, exprFollow)
	return degraded(pos)
}

// variable resolves a variable reference.
func (p *parser) variable(name string, pos position.Position) value {
	sym := p.syms.Lookup(name)
	if sym == nil {
		p.errorf(errors.VarUnDec, pos, name)
		return value{op: p.g.NewTemp(types.Int), typ: types.Int, pos: pos, lval: true}
	}
	return value{op: code.Var{Sym: sym}, typ: sym.Type, pos: pos, lval: true}
}

// index lowers base[expr] to the address of the element.
func (p *parser) index(base value) value {
	p.next() // [
	i := p.scalar(p.expr())
	p.expect(RSQUARE, errors.RbrackLost, errors.RbrackWrong, stmtFollow.union(exprFollow))
	if !types.IsAggregate(base.typ) {
		// An undeclared base was reported already.
		if _, undeclared := base.op.(code.Temp); !undeclared {
			p.errorf(errors.ExprNotBase, base.pos, base.typ.String())
		}
		return degraded(base.pos)
	}
	elem := types.Elem(base.typ)
	ptr := types.NewPointer(elem)
	offset := i.op
	if size := elem.Size(); size != 1 {
		t := p.g.NewTemp(types.Int)
		p.g.Emit(code.Mul, t, i.op, code.Const{Value: int64(size), Type: types.Int})
		offset = t
	}
	b := p.rvalue(base)
	addr := p.g.NewTemp(ptr)
	p.g.Emit(code.Add, addr, b.op, offset)
	return value{op: addr, typ: elem, pos: base.pos, lval: true, ind: true}
}

// call = ID "(" [ expr { "," expr } ] ")" .  Arguments are all evaluated
// before the first ARG is emitted.
func (p *parser) call(name string, pos position.Position) value {
	p.next() // (
	var args []value
	if p.tok.Kind != RPAREN {
		for {
			start := p.consumed
			args = append(args, p.operand(p.expr()))
			if p.accept(COMMA) {
				continue
			}
			if exprFirst.has(p.tok.Kind) && p.consumed != start {
				p.errs.AddExpected(errors.CommaLost, p.pos(), "`,'", p.tok.Spelling)
				continue
			}
			break
		}
	}
	p.expect(RPAREN, errors.RparenLost, errors.RparenWrong, stmtFollow.union(exprFollow))

	fn := p.syms.LookupFunc(name)
	if fn == nil {
		p.errorf(errors.FunUnDec, pos, name)
		p.g.Emit(code.Nop, nil, nil, nil)
		return value{op: p.g.NewTemp(types.Int), typ: types.Int, pos: pos}
	}
	sig := fn.Signature()
	if len(args) != len(sig.Params) {
		p.errorf(errors.FunCallErr, pos, name)
	} else {
		for i, a := range args {
			if !types.Assignable(sig.Params[i], a.typ) {
				p.errorf(errors.FunCallErr, a.pos, a.typ.String())
				break
			}
		}
	}
	for _, a := range args {
		p.g.Emit(code.Arg, nil, a.op, nil)
	}
	if types.IsVoid(sig.Result) {
		p.g.Emit(code.Proc, nil, code.Func{Sym: fn}, nil)
		return value{typ: types.Void, pos: pos}
	}
	t := p.g.NewTemp(sig.Result)
	p.g.Emit(code.Call, t, code.Func{Sym: fn}, nil)
	return value{op: t, typ: sig.Result, pos: pos}
}

// literal = NUM | CHAR | STR .
func (p *parser) literal() value {
	tok := p.tok
	p.next()
	switch tok.Kind {
	case INTLITERAL:
		return constant(parseInt(tok.Spelling), types.Int, tok.Pos)
	case CHARLITERAL:
		c, _ := utf8.DecodeRuneInString(tok.Spelling)
		return constant(int64(c), types.Char, tok.Pos)
	}
	s := p.g.String(tok.Spelling)
	return value{op: s, typ: code.TypeOf(s), pos: tok.Pos}
}

// parseInt converts the spelling of an integer literal, wrapping to 32 bits.
func parseInt(s string) int64 {
	base := uint32(10)
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base, s = 16, s[2:]
		case 'b', 'B':
			base, s = 2, s[2:]
		}
	}
	var v uint32
	for _, r := range s {
		var d uint32
		switch {
		case r >= '0' && r <= '9':
			d = uint32(r - '0')
		case r >= 'a' && r <= 'f':
			d = uint32(r-'a') + 10
		case r >= 'A' && r <= 'F':
			d = uint32(r-'A') + 10
		}
		v = v*base + d
	}
	return int64(int32(v))
}
