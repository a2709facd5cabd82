// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package codegen holds the mutable state of quadruple generation for one
// compilation: the instruction buffer, the temporary counter, the string
// table and the label table used to backpatch forward jumps.  The parser
// drives it; it performs no checking of its own.
package codegen

import (
	"github.com/golang/glog"
	"github.com/quadc/quadc/internal/compiler/code"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/types"
)

// Label is a placeholder for a jump target whose index is not known yet.
type Label int

type label struct {
	pc      int   // bound instruction index, or -1
	pending []int // indices of jumps waiting for pc
}

// Generator represents a quadruple generator.
type Generator struct {
	quads   []code.Quad
	strings []string
	labels  []label // Label table for recording jump destinations.
	temps   int
	muted   int
	line    int
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{}
}

// SetLine records the source line attached to subsequently emitted quadruples.
func (g *Generator) SetLine(line int) {
	g.line = line
}

// Mute suppresses emission until the matching Unmute.  Global initializers
// are evaluated muted, as there is no function to hold their code.
func (g *Generator) Mute() {
	g.muted++
}

// Unmute undoes one Mute.
func (g *Generator) Unmute() {
	g.muted--
}

// Muted reports whether emission is suppressed.
func (g *Generator) Muted() bool {
	return g.muted > 0
}

// PC returns the index the next emitted quadruple will have.
func (g *Generator) PC() int {
	return len(g.quads)
}

// Emit appends a quadruple and returns its index, or -1 when muted.
func (g *Generator) Emit(op code.Opcode, result, arg1, arg2 code.Operand) int {
	if g.Muted() {
		return -1
	}
	q := code.Quad{Op: op, Result: result, Arg1: arg1, Arg2: arg2, SourceLine: g.line}
	glog.V(2).Infof("emit %d: %s", len(g.quads), q)
	g.quads = append(g.quads, q)
	return len(g.quads) - 1
}

// NewTemp allocates a fresh temporary of type t.
func (g *Generator) NewTemp(t types.Type) code.Temp {
	r := code.Temp{ID: g.temps, Type: t}
	g.temps++
	return r
}

// String interns a string literal in the object's string table.
func (g *Generator) String(s string) code.Str {
	for i, v := range g.strings {
		if v == s {
			return code.Str{Index: i, Value: s}
		}
	}
	g.strings = append(g.strings, s)
	return code.Str{Index: len(g.strings) - 1, Value: s}
}

// NewLabel reserves a jump target placeholder.
func (g *Generator) NewLabel() Label {
	g.labels = append(g.labels, label{pc: -1})
	return Label(len(g.labels) - 1)
}

// SetLabel binds l to the next instruction, backpatching every jump already
// emitted to it.  A label binds once.
func (g *Generator) SetLabel(l Label) {
	lb := &g.labels[l]
	if lb.pc >= 0 {
		glog.Warningf("label %d bound twice", l)
		return
	}
	lb.pc = g.PC()
	for _, i := range lb.pending {
		g.quads[i].Result = code.Target(lb.pc)
	}
	lb.pending = nil
}

// EmitJump emits a jump to l.  If l is not bound yet the jump's index joins
// l's backpatch list and its target stays unresolved until SetLabel.
func (g *Generator) EmitJump(op code.Opcode, l Label, arg1, arg2 code.Operand) int {
	lb := &g.labels[l]
	i := g.Emit(op, code.Target(lb.pc), arg1, arg2)
	if i >= 0 && lb.pc < 0 {
		lb.pending = append(lb.pending, i)
	}
	return i
}

// Strings returns the string table.
func (g *Generator) Strings() []string {
	return g.strings
}

// Quads returns the generated sequence.  Every jump must have been
// resolved to an index inside the sequence; anything else is an internal
// compiler error.
func (g *Generator) Quads() ([]code.Quad, error) {
	for l, lb := range g.labels {
		if len(lb.pending) > 0 {
			return g.quads, errors.Errorf("internal compiler error: label %d never bound, %d jumps unresolved", l, len(lb.pending))
		}
	}
	for i, q := range g.quads {
		if t, ok := q.Target(); ok && (t < 0 || int(t) >= len(g.quads)) {
			return g.quads, errors.Errorf("internal compiler error: quad %d %s jumps outside the program", i, q)
		}
	}
	return g.quads, nil
}
