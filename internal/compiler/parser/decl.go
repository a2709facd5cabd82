// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package parser

import (
	"strconv"

	"github.com/golang/glog"
	"github.com/quadc/quadc/internal/compiler/code"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/position"
	"github.com/quadc/quadc/internal/compiler/symbol"
	"github.com/quadc/quadc/internal/compiler/types"
)

// param is one declared function parameter.  Unnamed parameters have an
// empty name.
type param struct {
	name string
	typ  types.Type
	pos  position.Position
}

// typ = "int" | "char" | "void" .
func (p *parser) typ() types.Type {
	var t types.Type
	switch p.tok.Kind {
	case INT:
		t = types.Int
	case CHAR:
		t = types.Char
	case VOID:
		t = types.Void
	default:
		p.expect(INT, errors.TypeLost, errors.TypeWrong, setOf(ID, MUL))
		return types.Int
	}
	p.next()
	return t
}

// ident reads an identifier.
func (p *parser) ident() (string, position.Position, bool) {
	pos := p.tok.Pos
	if p.tok.Kind == ID {
		name := p.tok.Spelling
		p.next()
		return name, pos, true
	}
	p.expect(ID, errors.IDLost, errors.IDWrong, setOf(LPAREN, RPAREN, LSQUARE, ASSIGN, COMMA))
	return "", pos, false
}

// segment = [ "extern" ] type def .
// def     = "*" ID init deflist | ID ( "(" params ")" funtail | varrdef deflist ) .
func (p *parser) segment() {
	extern := p.accept(EXTERN)
	base := p.typ()
	if p.tok.Kind == MUL {
		p.defdata(base, extern)
		p.deflist(base, extern)
		return
	}
	name, pos, ok := p.ident()
	if ok && p.tok.Kind == LPAREN {
		p.function(name, pos, base, extern)
		return
	}
	p.varrdef(name, pos, ok, base, extern)
	p.deflist(base, extern)
}

// localdef = [ "extern" ] type ( defdata deflist | ID "(" params ")" ";" ) .
func (p *parser) localDef() {
	extern := p.accept(EXTERN)
	base := p.typ()
	if p.tok.Kind == MUL {
		p.defdata(base, extern)
		p.deflist(base, extern)
		return
	}
	name, pos, ok := p.ident()
	if ok && p.tok.Kind == LPAREN {
		params := p.params()
		p.declareFunc(name, pos, signature(base, params), extern, false)
		p.semicolon()
		return
	}
	p.varrdef(name, pos, ok, base, extern)
	p.deflist(base, extern)
}

// deflist = { "," defdata } ";" .
func (p *parser) deflist(base types.Type, extern bool) {
	for {
		if p.accept(COMMA) {
			p.defdata(base, extern)
			continue
		}
		if p.tok.Kind == ID || p.tok.Kind == MUL {
			p.errs.AddExpected(errors.CommaLost, p.pos(), "`,'", p.tok.Spelling)
			p.defdata(base, extern)
			continue
		}
		break
	}
	p.semicolon()
}

// defdata = "*" ID init | ID varrdef .
func (p *parser) defdata(base types.Type, extern bool) {
	if p.accept(MUL) {
		name, pos, ok := p.ident()
		p.declare(name, pos, ok, types.NewPointer(base), extern, true)
		return
	}
	name, pos, ok := p.ident()
	p.varrdef(name, pos, ok, base, extern)
}

// varrdef = "[" NUM "]" [ "=" expr ] | init .
func (p *parser) varrdef(name string, pos position.Position, ok bool, base types.Type, extern bool) {
	if p.tok.Kind == RSQUARE {
		p.errs.AddExpected(errors.LbrackLost, p.pos(), "`['", p.tok.Spelling)
	} else if !p.accept(LSQUARE) {
		p.declare(name, pos, ok, base, extern, true)
		return
	}
	n := 1
	lenPos := p.tok.Pos
	if p.tok.Kind == INTLITERAL {
		n = int(parseInt(p.tok.Spelling))
		p.next()
		if n <= 0 {
			p.errorf(errors.ArrayLenInvalid, lenPos, strconv.Itoa(n))
			n = 1
		}
	} else {
		p.expect(INTLITERAL, errors.NumLost, errors.NumWrong, setOf(RSQUARE))
	}
	p.expect(RSQUARE, errors.RbrackLost, errors.RbrackWrong, setOf(ASSIGN, COMMA))
	p.declare(name, pos, ok, types.NewArray(base, n), extern, false)
}

// declare enters a variable in the innermost scope, then compiles its
// initializer.  Initializers are allowed only when init is set and the
// variable is not extern.
func (p *parser) declare(name string, pos position.Position, ok bool, typ types.Type, extern, init bool) {
	if !ok {
		p.initializer(nil, extern, false)
		return
	}
	if e := types.Elem(typ); types.IsVoid(typ) || (types.IsArray(typ) && types.IsVoid(e)) {
		p.errorf(errors.VoidVar, pos, name)
		if types.IsArray(typ) {
			typ = types.NewArray(types.Int, typ.(*types.Array).Len)
		} else {
			typ = types.Int
		}
	}
	kind := symbol.LocalSymbol
	if p.syms.Global() {
		kind = symbol.GlobalSymbol
	}
	sym := symbol.NewSymbol(name, kind, typ, &pos)
	sym.Extern = extern
	if alt := p.syms.Insert(sym); alt != nil {
		if !p.redeclare(alt, sym) {
			p.errorf(errors.VarReDef, pos, name)
			p.initializer(nil, extern, false)
			return
		}
		sym = alt
	}
	glog.V(2).Infof("declare %s %s %s", kind, name, typ)
	p.initializer(sym, extern, init && !extern)
}

// redeclare merges a file scope extern declaration with another declaration
// of the same variable, reporting whether the two are compatible.
func (p *parser) redeclare(alt, sym *symbol.Symbol) bool {
	if sym.Kind != symbol.GlobalSymbol || !(alt.Extern || sym.Extern) || !types.Equals(alt.Type, sym.Type) {
		return false
	}
	if alt.Extern && !sym.Extern {
		alt.Extern = false
		alt.Pos = sym.Pos
		return true
	}
	return sym.Extern
}

// initializer compiles the optional "=" expr after a declarator and emits
// the variable's DEC, unless the declarator is extern.  sym is nil when the
// declarator was in error.
func (p *parser) initializer(sym *symbol.Symbol, extern, allowed bool) {
	switch p.tok.Kind {
	case ASSIGN:
		p.next()
	case INTLITERAL, CHARLITERAL, STRING:
		p.errs.AddExpected(errors.AssignLost, p.pos(), "`='", p.tok.Spelling)
	case EQ:
		p.errs.AddExpected(errors.AssignWrong, p.pos(), "`='", p.tok.Spelling)
		p.next()
	default:
		if sym != nil && !extern {
			p.g.Emit(code.Dec, code.Var{Sym: sym}, nil, nil)
		}
		return
	}
	pos := p.tok.Pos
	if sym == nil {
		p.g.Mute()
		p.expr()
		p.g.Unmute()
		return
	}
	if !allowed {
		p.errorf(errors.DecInitDeny, pos, sym.Name)
		p.g.Mute()
		p.expr()
		p.g.Unmute()
		if !extern {
			p.g.Emit(code.Dec, code.Var{Sym: sym}, nil, nil)
		}
		return
	}
	if sym.Kind == symbol.GlobalSymbol {
		p.globalInit(sym, pos)
		return
	}
	p.g.Emit(code.Dec, code.Var{Sym: sym}, nil, nil)
	v := p.operand(p.expr())
	if !types.Assignable(sym.Type, v.typ) {
		p.errorf(errors.VarInitErr, pos, v.typ.String())
	}
	p.g.Emit(code.As, code.Var{Sym: sym}, v.op, nil)
}

// globalInit folds the initializer of a file scope variable, which has no
// function to hold code, into its DEC.
func (p *parser) globalInit(sym *symbol.Symbol, pos position.Position) {
	p.g.Mute()
	v := p.expr()
	p.g.Unmute()
	dec := func(init code.Operand) {
		p.g.Emit(code.Dec, code.Var{Sym: sym}, init, nil)
	}
	if types.IsVoid(v.typ) {
		p.errorf(errors.ExprIsVoid, pos, "")
		dec(nil)
		return
	}
	if !types.Assignable(sym.Type, v.typ) {
		p.errorf(errors.VarInitErr, pos, v.typ.String())
		dec(nil)
		return
	}
	if s, ok := v.op.(code.Str); ok {
		dec(s)
		return
	}
	if !v.isConst || v.ind {
		p.errorf(errors.GlbInitErr, pos, sym.Name)
		dec(nil)
		return
	}
	dec(code.Const{Value: v.cval, Type: sym.Type})
}

// params = [ "void" ] | param { "," param } .
func (p *parser) params() []param {
	p.next() // (
	var r []param
	if p.accept(RPAREN) {
		return r
	}
	for {
		start := p.consumed
		if p.tok.Kind == VOID {
			p.next()
			if len(r) == 0 && p.accept(RPAREN) {
				return r
			}
			r = append(r, p.param(types.Void))
		} else {
			r = append(r, p.param(p.typ()))
		}
		if p.accept(COMMA) {
			continue
		}
		if typeFirst.has(p.tok.Kind) && p.consumed != start {
			p.errs.AddExpected(errors.CommaLost, p.pos(), "`,'", p.tok.Spelling)
			continue
		}
		if p.tok.Kind == ID {
			p.errs.AddExpected(errors.CommaWrong, p.pos(), "`,'", p.tok.Spelling)
			p.next()
			if p.accept(COMMA) {
				continue
			}
		}
		break
	}
	p.expect(RPAREN, errors.RparenLost, errors.RparenWrong, setOf(LCURLY, SEMICOLON))
	return r
}

// param = type ( "*" [ ID ] | [ ID ] [ "[" [ NUM ] "]" ] ) .  Array
// parameters are pointers.
func (p *parser) param(base types.Type) param {
	r := param{typ: base, pos: p.tok.Pos}
	if p.accept(MUL) {
		r.typ = types.NewPointer(base)
		if p.tok.Kind == ID {
			r.name, r.pos = p.tok.Spelling, p.tok.Pos
			p.next()
		}
		return r
	}
	if p.tok.Kind == ID {
		r.name, r.pos = p.tok.Spelling, p.tok.Pos
		p.next()
	}
	if p.accept(LSQUARE) {
		p.accept(INTLITERAL)
		p.expect(RSQUARE, errors.RbrackLost, errors.RbrackWrong, setOf(COMMA, RPAREN))
		r.typ = types.NewPointer(base)
	}
	if types.IsVoid(r.typ) {
		p.errorf(errors.VoidVar, r.pos, r.name)
		r.typ = types.Int
	}
	return r
}

func signature(result types.Type, params []param) *types.Func {
	f := &types.Func{Result: result}
	for _, prm := range params {
		f.Params = append(f.Params, prm.typ)
	}
	return f
}

// declareFunc enters a function declaration or definition in the function
// namespace, checking it against any earlier declaration of the name.
func (p *parser) declareFunc(name string, pos position.Position, sig *types.Func, extern, define bool) *symbol.Symbol {
	sym := symbol.NewSymbol(name, symbol.FuncSymbol, sig, &pos)
	sym.Extern = extern
	sym.Defined = define
	alt := p.syms.InsertFunc(sym)
	if alt == nil {
		return sym
	}
	old := alt.Signature()
	if len(old.Params) != len(sig.Params) {
		p.errorf(errors.FunDecErr, pos, name)
	} else {
		for i := range old.Params {
			if !types.Equals(old.Params[i], sig.Params[i]) {
				p.errorf(errors.FunDecConflict, pos, name)
				break
			}
		}
	}
	if !types.Equals(old.Result, sig.Result) {
		p.errorf(errors.FunRetConflict, pos, name)
	}
	if define {
		if alt.Defined {
			p.errorf(errors.FunReDef, pos, name)
		}
		alt.Type = sig
		alt.Pos = &pos
		alt.Defined = true
		alt.Extern = extern
	}
	return alt
}

// function compiles a function declaration or definition.
// funtail = block | ";" .
func (p *parser) function(name string, pos position.Position, result types.Type, extern bool) {
	params := p.params()
	sig := signature(result, params)
	if p.tok.Kind != LCURLY {
		p.declareFunc(name, pos, sig, extern, false)
		p.expect(SEMICOLON, errors.SemiconLost, errors.SemiconWrong, declFirst)
		return
	}
	if extern {
		p.errorf(errors.ExternFunDef, pos, name)
	}
	fn := p.declareFunc(name, pos, sig, extern, true)
	p.body(fn, params)
}

// body compiles a function body between its ENTRY and EXIT.  Parameters and
// the outermost locals share one scope.
func (p *parser) body(fn *symbol.Symbol, params []param) {
	p.pushScope()
	p.g.Emit(code.Entry, code.Func{Sym: fn}, nil, nil)
	for _, prm := range params {
		if prm.name == "" {
			continue
		}
		pos := prm.pos
		sym := symbol.NewSymbol(prm.name, symbol.ParamSymbol, prm.typ, &pos)
		if alt := p.syms.Insert(sym); alt != nil {
			p.errorf(errors.VarReDef, prm.pos, prm.name)
		}
	}
	p.fn = &function{sym: fn, exit: p.g.NewLabel()}
	p.block()
	p.g.SetLabel(p.fn.exit)
	p.g.Emit(code.Exit, code.Func{Sym: fn}, nil, nil)
	p.fn = nil
	p.frames = nil
	p.popScope()
}
