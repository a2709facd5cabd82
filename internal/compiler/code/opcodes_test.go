// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package code

import "testing"

func TestOpcodeHasString(t *testing.T) {
	for o := Nop; o < lastOpcode; o++ {
		if o.String() == "" || o.String() != opNames[o] {
			t.Errorf("opcode string not match.  Expected %s, received %s", opNames[o], o.String())
		}
	}
	if len(opNames) != int(lastOpcode) {
		t.Errorf("%d opcode names for %d opcodes", len(opNames), lastOpcode)
	}
}

func TestJumpOpcodes(t *testing.T) {
	jumps := map[Opcode]bool{Jmp: true, Jt: true, Jf: true, Jne: true, Ret: true, Retv: true}
	for o := Nop; o < lastOpcode; o++ {
		if o.IsJump() != jumps[o] {
			t.Errorf("%s.IsJump() = %v", o, o.IsJump())
		}
	}
}
