// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package codegen_test

import (
	"testing"

	"github.com/quadc/quadc/internal/compiler/code"
	"github.com/quadc/quadc/internal/compiler/codegen"
	"github.com/quadc/quadc/internal/compiler/types"
	"github.com/quadc/quadc/internal/testutil"
)

func TestForwardJumpIsBackpatched(t *testing.T) {
	g := codegen.New()
	l := g.NewLabel()
	cond := g.NewTemp(types.Int)
	j1 := g.EmitJump(code.Jf, l, cond, nil)
	j2 := g.EmitJump(code.Jmp, l, nil, nil)
	g.Emit(code.Nop, nil, nil, nil)
	g.SetLabel(l)
	g.Emit(code.Nop, nil, nil, nil)

	quads, err := g.Quads()
	testutil.FatalIfErr(t, err)
	for _, i := range []int{j1, j2} {
		if tgt, _ := quads[i].Target(); tgt != 3 {
			t.Errorf("quad %d target = %v, want @3", i, tgt)
		}
	}
}

func TestBackwardJumpResolvesImmediately(t *testing.T) {
	g := codegen.New()
	l := g.NewLabel()
	g.SetLabel(l)
	g.Emit(code.Nop, nil, nil, nil)
	i := g.EmitJump(code.Jmp, l, nil, nil)
	quads, err := g.Quads()
	testutil.FatalIfErr(t, err)
	testutil.ExpectNoDiff(t, "JMP @0", quads[i].String())
}

func TestUnboundLabelIsInternalError(t *testing.T) {
	g := codegen.New()
	l := g.NewLabel()
	g.EmitJump(code.Jmp, l, nil, nil)
	if _, err := g.Quads(); err == nil {
		t.Error("expected an error for an unresolved jump")
	}
}

func TestJumpPastEndIsInternalError(t *testing.T) {
	g := codegen.New()
	l := g.NewLabel()
	g.EmitJump(code.Jmp, l, nil, nil)
	g.SetLabel(l)
	if _, err := g.Quads(); err == nil {
		t.Error("expected an error for a jump past the last quad")
	}
}

func TestMute(t *testing.T) {
	g := codegen.New()
	g.Mute()
	if i := g.Emit(code.Add, g.NewTemp(types.Int), nil, nil); i != -1 {
		t.Errorf("muted Emit returned %d", i)
	}
	l := g.NewLabel()
	g.EmitJump(code.Jmp, l, nil, nil)
	g.Unmute()
	if g.PC() != 0 {
		t.Errorf("PC() = %d after muted emission", g.PC())
	}
	if _, err := g.Quads(); err != nil {
		t.Errorf("muted jump left a pending backpatch: %s", err)
	}
}

func TestTempsAndStrings(t *testing.T) {
	g := codegen.New()
	a := g.NewTemp(types.Int)
	b := g.NewTemp(types.Char)
	if a.ID == b.ID {
		t.Errorf("temps share id %d", a.ID)
	}
	s1 := g.String("x")
	s2 := g.String("y")
	s3 := g.String("x")
	if s1.Index != s3.Index || s1.Index == s2.Index {
		t.Errorf("string interning: %v %v %v", s1, s2, s3)
	}
	testutil.ExpectNoDiff(t, []string{"x", "y"}, g.Strings())
}
