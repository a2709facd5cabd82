// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package parser

import (
	"github.com/quadc/quadc/internal/compiler/code"
	"github.com/quadc/quadc/internal/compiler/codegen"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/types"
)

// semicolon ends a statement or declaration.
func (p *parser) semicolon() {
	p.expect(SEMICOLON, errors.SemiconLost, errors.SemiconWrong, stmtFollow)
}

// lparen and rparen bracket the head of a control statement.
func (p *parser) lparen() {
	p.expect(LPAREN, errors.LparenLost, errors.LparenWrong, exprFirst.union(declFirst).union(setOf(RPAREN)))
}

func (p *parser) rparen() {
	p.expect(RPAREN, errors.RparenLost, errors.RparenWrong, stmtFollow)
}

// block = "{" { localdef | statement } "}" .  The caller owns the scope.
func (p *parser) block() {
	p.enter()
	defer p.leave()
	p.expect(LCURLY, errors.LbraceLost, errors.LbraceWrong, stmtFollow)
	for p.tok.Kind != RCURLY && p.tok.Kind != EOF {
		start := p.consumed
		p.blockItem()
		p.progress(start)
	}
	p.expect(RCURLY, errors.RbraceLost, errors.RbraceWrong, stmtFollow)
}

// blockItem = localdef | statement .
func (p *parser) blockItem() {
	if declFirst.has(p.tok.Kind) {
		p.localDef()
		return
	}
	p.statement()
}

// statement = [ expr ] ";" | block | while | dowhile | for | if | switch
//           | "break" ";" | "continue" ";" | "return" [ expr ] ";" .
func (p *parser) statement() {
	p.enter()
	defer p.leave()
	switch p.tok.Kind {
	case SEMICOLON:
		p.next()
	case LCURLY:
		p.pushScope()
		p.block()
		p.popScope()
	case WHILE:
		p.whileStmt()
	case DO:
		p.doStmt()
	case FOR:
		p.forStmt()
	case IF:
		p.ifStmt()
	case SWITCH:
		p.switchStmt()
	case BREAK:
		pos := p.tok.Pos
		p.next()
		if f := p.innermost(false); f != nil {
			p.g.EmitJump(code.Jmp, f.brk, nil, nil)
		} else {
			p.errorf(errors.BreakErr, pos, "break")
		}
		p.semicolon()
	case CONTINUE:
		pos := p.tok.Pos
		p.next()
		if f := p.innermost(true); f != nil {
			p.g.EmitJump(code.Jmp, f.cont, nil, nil)
		} else {
			p.errorf(errors.ContinueErr, pos, "continue")
		}
		p.semicolon()
	case RETURN:
		p.returnStmt()
	default:
		p.expr()
		p.semicolon()
	}
}

// innermost returns the closest enclosing frame, or the closest loop when
// loop is set.
func (p *parser) innermost(loop bool) *frame {
	for i := len(p.frames) - 1; i >= 0; i-- {
		if !loop || p.frames[i].loop {
			return &p.frames[i]
		}
	}
	return nil
}

// loopBody compiles the body of a construct that break and continue refer to.
func (p *parser) loopBody(f frame) {
	p.frames = append(p.frames, f)
	p.statement()
	p.frames = p.frames[:len(p.frames)-1]
}

// condition compiles the controlling expression of a branch or loop.
func (p *parser) condition() value {
	return p.operand(p.expr())
}

// while = "while" "(" expr ")" statement .
//
//	Lcond: c; JF Lexit, c; body; JMP Lcond; Lexit:
func (p *parser) whileStmt() {
	p.next()
	cond, exit := p.g.NewLabel(), p.g.NewLabel()
	p.g.SetLabel(cond)
	p.lparen()
	c := p.condition()
	p.rparen()
	p.g.EmitJump(code.Jf, exit, c.op, nil)
	p.loopBody(frame{brk: exit, cont: cond, loop: true})
	p.g.EmitJump(code.Jmp, cond, nil, nil)
	p.g.SetLabel(exit)
}

// dowhile = "do" statement "while" "(" expr ")" ";" .
//
//	Lbody: body; Lcont: c; JT Lbody, c; Lexit:
func (p *parser) doStmt() {
	p.next()
	body, cont, exit := p.g.NewLabel(), p.g.NewLabel(), p.g.NewLabel()
	p.g.SetLabel(body)
	p.loopBody(frame{brk: exit, cont: cont, loop: true})
	p.g.SetLabel(cont)
	p.expect(WHILE, errors.WhileLost, errors.WhileWrong, setOf(LPAREN))
	p.lparen()
	c := p.condition()
	p.rparen()
	p.g.EmitJump(code.Jt, body, c.op, nil)
	p.g.SetLabel(exit)
	p.semicolon()
}

// for = "for" "(" ( localdef | [ expr ] ";" ) [ expr ] ";" [ expr ] ")" statement .
//
//	init; Lcond: c; JF Lexit, c; JMP Lbody; Lstep: step; JMP Lcond;
//	Lbody: body; JMP Lstep; Lexit:
func (p *parser) forStmt() {
	p.next()
	p.pushScope()
	p.lparen()
	if declFirst.has(p.tok.Kind) {
		p.localDef()
	} else {
		if p.tok.Kind != SEMICOLON {
			p.expr()
		}
		p.semicolon()
	}
	cond, step, body, exit := p.g.NewLabel(), p.g.NewLabel(), p.g.NewLabel(), p.g.NewLabel()
	p.g.SetLabel(cond)
	if p.tok.Kind != SEMICOLON {
		c := p.condition()
		p.g.EmitJump(code.Jf, exit, c.op, nil)
	}
	p.semicolon()
	p.g.EmitJump(code.Jmp, body, nil, nil)
	p.g.SetLabel(step)
	if p.tok.Kind != RPAREN {
		p.expr()
	}
	p.g.EmitJump(code.Jmp, cond, nil, nil)
	p.rparen()
	p.g.SetLabel(body)
	p.loopBody(frame{brk: exit, cont: step, loop: true})
	p.g.EmitJump(code.Jmp, step, nil, nil)
	p.g.SetLabel(exit)
	p.popScope()
}

// if = "if" "(" expr ")" statement [ "else" statement ] .
//
//	c; JF Lelse, c; then; JMP Lend; Lelse: else; Lend:
func (p *parser) ifStmt() {
	p.next()
	p.lparen()
	c := p.condition()
	p.rparen()
	els := p.g.NewLabel()
	p.g.EmitJump(code.Jf, els, c.op, nil)
	p.statement()
	if !p.accept(ELSE) {
		p.g.SetLabel(els)
		return
	}
	end := p.g.NewLabel()
	p.g.EmitJump(code.Jmp, end, nil, nil)
	p.g.SetLabel(els)
	p.statement()
	p.g.SetLabel(end)
}

// switch = "switch" "(" expr ")" "{" { "case" literal ":" { localdef | statement } }
//          [ "default" ":" { localdef | statement } ] "}" .
//
// Each case tests the value with JNE to the next case's test; the end of a
// case's statements jumps over the next test into its statements.
func (p *parser) switchStmt() {
	p.next()
	p.lparen()
	c := p.scalar(p.expr())
	p.rparen()
	p.expect(LCURLY, errors.LbraceLost, errors.LbraceWrong, setOf(CASE, DEFAULT))
	exit := p.g.NewLabel()
	p.frames = append(p.frames, frame{brk: exit})
	p.pushScope()

	var (
		test    codegen.Label
		pending bool // test is waiting for the next case
		cases   bool // a case or default was seen
		sawDflt bool
		stray   bool // an item before the first case was reported
	)
	for p.tok.Kind != RCURLY && p.tok.Kind != EOF {
		start := p.consumed
		switch p.tok.Kind {
		case CASE:
			if sawDflt {
				p.errs.AddExpected(errors.RbraceWrong, p.pos(), "`}'", p.tok.Spelling)
			}
			p.next()
			k := p.caseLabel()
			p.expect(COLON, errors.ColonLost, errors.ColonWrong, stmtFollow)
			var body codegen.Label
			if cases {
				body = p.g.NewLabel()
				p.g.EmitJump(code.Jmp, body, nil, nil)
			}
			if pending {
				p.g.SetLabel(test)
			}
			test, pending = p.g.NewLabel(), true
			p.g.EmitJump(code.Jne, test, c.op, k.op)
			if cases {
				p.g.SetLabel(body)
			}
			cases = true
		case DEFAULT:
			p.next()
			p.expect(COLON, errors.ColonLost, errors.ColonWrong, stmtFollow)
			if pending {
				p.g.SetLabel(test)
				pending = false
			}
			cases, sawDflt = true, true
		default:
			if cases {
				p.blockItem()
				break
			}
			// Nothing before the first case is reachable.
			if !stray {
				p.errs.AddExpected(errors.RbraceWrong, p.pos(), "`case'", p.tok.Spelling)
				stray = true
			}
			p.g.Mute()
			p.blockItem()
			p.g.Unmute()
		}
		p.progress(start)
	}
	p.expect(RCURLY, errors.RbraceLost, errors.RbraceWrong, stmtFollow)
	if pending {
		p.g.SetLabel(test)
	}
	p.g.SetLabel(exit)
	p.popScope()
	p.frames = p.frames[:len(p.frames)-1]
}

// caseLabel reads the literal of a case.
func (p *parser) caseLabel() value {
	pos := p.tok.Pos
	switch p.tok.Kind {
	case INTLITERAL, CHARLITERAL:
		return p.literal()
	case STRING:
		v := p.literal()
		p.errorf(errors.ExprIsBase, pos, v.typ.String())
		return degraded(pos)
	}
	p.expect(INTLITERAL, errors.LiteralLost, errors.LiteralWrong, setOf(COLON))
	return degraded(pos)
}

// return = "return" [ expr ] ";" .  RET and RETV jump to the function's EXIT.
func (p *parser) returnStmt() {
	pos := p.tok.Pos
	p.next()
	result := p.fn.sym.Signature().Result
	if p.tok.Kind == SEMICOLON || !exprFirst.has(p.tok.Kind) {
		if !types.IsVoid(result) {
			p.errorf(errors.ReturnErr, pos, "return")
		}
		p.g.EmitJump(code.Ret, p.fn.exit, nil, nil)
		p.semicolon()
		return
	}
	v := p.operand(p.expr())
	if types.IsVoid(result) || !types.Assignable(result, v.typ) {
		p.errorf(errors.ReturnErr, v.pos, v.typ.String())
	}
	p.g.EmitJump(code.Retv, p.fn.exit, v.op, nil)
	p.semicolon()
}
