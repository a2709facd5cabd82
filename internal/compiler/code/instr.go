// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package code

import "strings"

// Quad is a three address instruction.  Unused fields are nil.
type Quad struct {
	Op         Opcode
	Result     Operand
	Arg1       Operand
	Arg2       Operand
	SourceLine int // Line number of the original source file, one-based numbering.
}

// debug print for instructions.
func (q Quad) String() string {
	var b strings.Builder
	b.WriteString(q.Op.String())
	sep := " "
	for _, o := range []Operand{q.Result, q.Arg1, q.Arg2} {
		if o == nil {
			continue
		}
		b.WriteString(sep)
		b.WriteString(o.String())
		sep = ", "
	}
	return b.String()
}

// Target returns the jump target of a jump instruction.
func (q Quad) Target() (Target, bool) {
	if !q.Op.IsJump() {
		return 0, false
	}
	t, ok := q.Result.(Target)
	return t, ok
}
