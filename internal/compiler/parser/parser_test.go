// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package parser_test

import (
	"strings"
	"testing"

	"github.com/quadc/quadc/internal/compiler/code"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/parser"
	"github.com/quadc/quadc/internal/compiler/position"
	"github.com/quadc/quadc/internal/compiler/symbol"
	"github.com/quadc/quadc/internal/testutil"
)

func parse(t *testing.T, name, src string) (*parser.Result, errors.ErrorList) {
	t.Helper()
	var sink errors.ErrorList
	r, err := parser.Parse(name, strings.NewReader(src), &sink)
	testutil.FatalIfErr(t, err)
	return r, sink
}

func listing(r *parser.Result) []string {
	l := make([]string, 0, len(r.Quads))
	for _, q := range r.Quads {
		l = append(l, q.String())
	}
	return l
}

var codegenTests = []struct {
	name string
	src  string
	want []string
}{
	{"assign sum",
		"int main(){ int a; a = 1 + 2; return a; }",
		[]string{"ENTRY main", "DEC a", "ADD t0, 1, 2", "AS a, t0", "RETV @5, a", "EXIT main"}},
	{"while",
		"int f(int n){ int s; s = 0; while (n > 0) { s = s + n; n = n - 1; } return s; }",
		[]string{"ENTRY f", "DEC s", "AS s, 0", "GT t0, n, 0", "JF @10, t0", "ADD t1, s, n", "AS s, t1",
			"SUB t2, n, 1", "AS n, t2", "JMP @3", "RETV @11, s", "EXIT f"}},
	{"and",
		"int f(int a, int b){ return a && b; }",
		[]string{"ENTRY f", "AS t0, 0", "JF @4, a", "AND t0, a, b", "RETV @5, t0", "EXIT f"}},
	{"or",
		"int f(int a, int b){ return a || b; }",
		[]string{"ENTRY f", "AS t0, 1", "JT @4, a", "OR t0, a, b", "RETV @5, t0", "EXIT f"}},
	{"if else",
		"void g(int x){ if (x) x = 1; else x = 2; }",
		[]string{"ENTRY g", "JF @4, x", "AS x, 1", "JMP @5", "AS x, 2", "EXIT g"}},
	{"if",
		"void g(int x){ if (x) x = 1; }",
		[]string{"ENTRY g", "JF @3, x", "AS x, 1", "EXIT g"}},
	{"int array read",
		"int a[4]; int f(int i){ return a[i]; }",
		[]string{"DEC a", "ENTRY f", "MUL t0, i, 4", "LEA t1, a", "ADD t2, t1, t0", "GET t3, t2", "RETV @7, t3", "EXIT f"}},
	{"char array write",
		"char s[4]; void f(){ s[1] = 'x'; }",
		[]string{"DEC s", "ENTRY f", "LEA t0, s", "ADD t1, t0, 1", "SET 'x', t1", "EXIT f"}},
	{"pointer index",
		"char f(char *p){ return p[2]; }",
		[]string{"ENTRY f", "ADD t0, p, 2", "GET t1, t0", "RETV @4, t1", "EXIT f"}},
	{"call",
		"int add(int a, int b); int main(){ return add(1, 2); }",
		[]string{"ENTRY main", "ARG 1", "ARG 2", "CALL t0, add", "RETV @5, t0", "EXIT main"}},
	{"procedure",
		"void p(int x); void main(){ p(3); }",
		[]string{"ENTRY main", "ARG 3", "PROC p", "EXIT main"}},
	{"arguments before ARG",
		"int h(int a, int b); int main(){ return h(1 + 2, 3 * 4); }",
		[]string{"ENTRY main", "ADD t0, 1, 2", "MUL t1, 3, 4", "ARG t0", "ARG t1", "CALL t2, h", "RETV @7, t2", "EXIT main"}},
	{"switch",
		"int f(int x){ int r; switch (x) { case 1: r = 10; break; case 2: r = 20; default: r = 0; } return r; }",
		[]string{"ENTRY f", "DEC r", "JNE @6, x, 1", "AS r, 10", "JMP @9", "JMP @7", "JNE @8, x, 2",
			"AS r, 20", "AS r, 0", "RETV @10, r", "EXIT f"}},
	{"switch without default",
		"void f(int x){ switch (x) { case 'a': x = 1; } }",
		[]string{"ENTRY f", "JNE @3, x, 'a'", "AS x, 1", "EXIT f"}},
	{"for",
		"void f(){ int i; for (i = 0; i < 3; i++) ; }",
		[]string{"ENTRY f", "DEC i", "AS i, 0", "LT t0, i, 3", "JF @10, t0", "JMP @9", "AS t1, i", "ADD i, i, 1",
			"JMP @3", "JMP @6", "EXIT f"}},
	{"for continue",
		"void f(int n){ for (;;) { if (n) continue; break; } }",
		[]string{"ENTRY f", "JMP @3", "JMP @1", "JF @5, n", "JMP @2", "JMP @7", "JMP @2", "EXIT f"}},
	{"do while",
		"void f(int n){ do n = n - 1; while (n); }",
		[]string{"ENTRY f", "SUB t0, n, 1", "AS n, t0", "JT @1, n", "EXIT f"}},
	{"pointer",
		"void f(int *p){ *p = *p + 1; }",
		[]string{"ENTRY f", "GET t0, p", "ADD t1, t0, 1", "SET t1, p", "EXIT f"}},
	{"address of",
		"void f(){ int x; int *p; p = &x; }",
		[]string{"ENTRY f", "DEC x", "DEC p", "LEA t0, x", "AS p, t0", "EXIT f"}},
	{"address of element",
		"void f(){ char b[2]; char *p; p = &b[1]; }",
		[]string{"ENTRY f", "DEC b", "DEC p", "LEA t0, b", "ADD t1, t0, 1", "AS p, t1", "EXIT f"}},
	{"array decays",
		"void g(char *s); void f(){ char b[2]; g(b); }",
		[]string{"ENTRY f", "DEC b", "LEA t0, b", "ARG t0", "PROC g", "EXIT f"}},
	{"increments",
		"void f(int x){ int y; y = x++; y = --x; }",
		[]string{"ENTRY f", "DEC y", "AS t0, x", "ADD x, x, 1", "AS y, t0", "SUB x, x, 1", "AS y, x", "EXIT f"}},
	{"indirect increment",
		"void f(int *p){ (*p)++; }",
		[]string{"ENTRY f", "GET t0, p", "ADD t1, t0, 1", "SET t1, p", "EXIT f"}},
	{"unary",
		"int f(int x){ return -x + !x; }",
		[]string{"ENTRY f", "NEG t0, x", "NOT t1, x", "ADD t2, t0, t1", "RETV @5, t2", "EXIT f"}},
	{"local initializer",
		"int f(){ int a = 2 * 3; return a; }",
		[]string{"ENTRY f", "DEC a", "MUL t0, 2, 3", "AS a, t0", "RETV @5, a", "EXIT f"}},
	{"global initializers",
		"int g = 2 * 3 + 1; char c = 'a'; char *s = \"hi\"; int n;",
		[]string{"DEC g, 7", "DEC c, 'a'", "DEC s, \"hi\"", "DEC n"}},
	{"extern then definition",
		"extern int x; int x = 3;",
		[]string{"DEC x, 3"}},
	{"void return",
		"void f(int x){ if (x) return; x = 1; }",
		[]string{"ENTRY f", "JF @3, x", "RET @4", "AS x, 1", "EXIT f"}},
	{"chained assignment",
		"void f(){ int a; int b; a = b = 1; }",
		[]string{"ENTRY f", "DEC a", "DEC b", "AS b, 1", "AS a, b", "EXIT f"}},
	{"string argument",
		"void puts(char *s); void main(){ puts(\"hi\"); }",
		[]string{"ENTRY main", "LEA t0, \"hi\"", "ARG t0", "PROC puts", "EXIT main"}},
	{"and skips call",
		"int f(); void m(){ if (0 && f()) ; }",
		[]string{"ENTRY m", "AS t0, 0", "JF @5, 0", "CALL t1, f", "AND t0, 0, t1", "JF @6, t0", "EXIT m"}},
	{"left operand loaded first",
		"int a[2]; int g(); int f(){ return a[0] + g(); }",
		[]string{"DEC a", "ENTRY f", "MUL t0, 0, 4", "LEA t1, a", "ADD t2, t1, t0", "GET t3, t2", "CALL t4, g",
			"ADD t5, t3, t4", "RETV @9, t5", "EXIT f"}},
}

func TestCodegen(t *testing.T) {
	for _, tc := range codegenTests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, diags := parse(t, tc.name, tc.src)
			if len(diags) > 0 {
				t.Errorf("unexpected diagnostics: %s", diags)
			}
			testutil.ExpectNoDiff(t, tc.want, listing(r))
		})
	}
}

var diagnosticTests = []struct {
	name string
	src  string
	want []errors.Code
}{
	// Semantic errors.
	{"redeclared parameter count", "int f(int x){ return x; } int g(){ extern int f(int,int); return 0; }", []errors.Code{errors.FunDecErr}},
	{"break outside loop", "void h(){ break; }", []errors.Code{errors.BreakErr}},
	{"continue in switch", "void f(){ switch (1) { case 1: continue; } }", []errors.Code{errors.ContinueErr}},
	{"undeclared variable", "int main(){ a = 1; return 0; }", []errors.Code{errors.VarUnDec}},
	{"undeclared function", "int main(){ return f(); }", []errors.Code{errors.FunUnDec}},
	{"argument count", "int f(int a); int main(){ return f(1, 2); }", []errors.Code{errors.FunCallErr}},
	{"argument type", "int f(int *p); int main(){ return f(1); }", []errors.Code{errors.FunCallErr}},
	{"function redefined", "int f(){ return 0; } int f(){ return 1; }", []errors.Code{errors.FunReDef}},
	{"extern body", "extern int f(){ return 0; }", []errors.Code{errors.ExternFunDef}},
	{"extern initializer", "extern int x = 1;", []errors.Code{errors.DecInitDeny}},
	{"array initializer", "int a[3] = 1;", []errors.Code{errors.DecInitDeny}},
	{"zero length", "int a[0];", []errors.Code{errors.ArrayLenInvalid}},
	{"negative length", "int a[0xFFFFFFFF];", []errors.Code{errors.ArrayLenInvalid}},
	{"variable redefined", "int x; int x;", []errors.Code{errors.VarReDef}},
	{"local redefined", "void f(){ int x; char x; }", []errors.Code{errors.VarReDef}},
	{"parameter redefined", "void f(int x){ int x; }", []errors.Code{errors.VarReDef}},
	{"global not constant", "int g = 1; int h = g;", []errors.Code{errors.GlbInitErr}},
	{"initializer type", "int *p = 'c';", []errors.Code{errors.VarInitErr}},
	{"local initializer type", "void f(){ int *p; int x = p; }", []errors.Code{errors.VarInitErr}},
	{"void variable", "void v;", []errors.Code{errors.VoidVar}},
	{"void array", "void f(){ void a[2]; }", []errors.Code{errors.VoidVar}},
	{"void parameter", "void f(void x);", []errors.Code{errors.VoidVar}},
	{"literal target", "int main(){ 1 = 2; return 0; }", []errors.Code{errors.ExprNotLeftVal}},
	{"address of value", "void f(int x){ &(x + 1); }", []errors.Code{errors.ExprNotLeftVal}},
	{"increment value", "void f(int x){ (x + 1)++; }", []errors.Code{errors.ExprNotLeftVal}},
	{"assign pointer to int", "int main(){ int *p; int x; x = p; return 0; }", []errors.Code{errors.AssignTypeErr}},
	{"assign array", "int main(){ int a[2]; int b[2]; a = b; return 0; }", []errors.Code{errors.ArrTypeErr}},
	{"pointer arithmetic", "int main(){ int *p; return p + 1; }", []errors.Code{errors.ExprIsBase}},
	{"pointer increment", "void f(int *p){ p++; }", []errors.Code{errors.ExprIsBase}},
	{"address of array", "void f(){ int a[2]; int *p; p = &a; }", []errors.Code{errors.ExprIsBase}},
	{"string case", "void f(int x){ switch (x) { case \"a\": ; } }", []errors.Code{errors.ExprIsBase}},
	{"dereference int", "int main(){ int x; return *x; }", []errors.Code{errors.ExprNotBase}},
	{"index int", "int main(){ int x; return x[0]; }", []errors.Code{errors.ExprNotBase}},
	{"void operand", "void f(); int main(){ return f() + 1; }", []errors.Code{errors.ExprIsVoid}},
	{"void argument", "void f(); void g(int x); void main(){ g(f()); }", []errors.Code{errors.ExprIsVoid}},
	{"void condition", "void f(); void main(){ if (f()) ; }", []errors.Code{errors.ExprIsVoid}},
	{"value from void", "void f(){ return 1; }", []errors.Code{errors.ReturnErr}},
	{"bare return", "int f(){ return; }", []errors.Code{errors.ReturnErr}},
	{"return pointer as int", "int f(int *p){ return p; }", []errors.Code{errors.ReturnErr}},

	// Warnings.
	{"parameter types differ", "int f(int a); int f(char a){ return a; }", []errors.Code{errors.FunDecConflict}},
	{"return types differ", "int f(int a); char f(int a){ return a; }", []errors.Code{errors.FunRetConflict}},

	// Syntax errors.
	{"missing comma", "int main(){ int a b; return 0; }", []errors.Code{errors.CommaLost}},
	{"stray parameter name", "int f(int a b);", []errors.Code{errors.CommaWrong}},
	{"missing semicolon", "int main(){ int a; a = 1 return a; }", []errors.Code{errors.SemiconLost}},
	{"wrong semicolon", "int main(){ return 0 ) ; }", []errors.Code{errors.SemiconWrong}},
	{"missing rparen", "int main(){ if (1 { } return 0; }", []errors.Code{errors.RparenLost}},
	{"wrong rparen", "int main(){ if (1 ] ; return 0; }", []errors.Code{errors.RparenWrong}},
	{"missing lparen", "int main(){ while 1) ; return 0; }", []errors.Code{errors.LparenLost}},
	{"wrong lparen", "int main(){ if ] 1) ; return 0; }", []errors.Code{errors.LparenWrong}},
	{"missing rbrace", "int main(){ return 0;", []errors.Code{errors.RbraceLost}},
	{"case after default", "void f(int x){ switch (x) { default: ; case 1: ; } }", []errors.Code{errors.RbraceWrong}},
	{"statement before case", "void f(int x){ switch (x) { x = 1; x = 2; case 1: ; } }", []errors.Code{errors.RbraceWrong}},
	{"missing lbrace", "void f(int x){ switch (x) case 1: ; } }", []errors.Code{errors.LbraceLost}},
	{"wrong lbrace", "void f(int x){ switch (x) ] case 1: ; } }", []errors.Code{errors.LbraceWrong}},
	{"stray brace", "int main(){ return 0; } }", []errors.Code{errors.TypeWrong}},
	{"missing type", "extern x;", []errors.Code{errors.TypeLost}},
	{"missing identifier", "int = 3;", []errors.Code{errors.IDLost}},
	{"wrong identifier", "int 5;", []errors.Code{errors.IDWrong}},
	{"missing length", "int a[];", []errors.Code{errors.NumLost}},
	{"wrong length", "int a[x];", []errors.Code{errors.NumWrong}},
	{"missing lbrack", "int a];", []errors.Code{errors.LbrackLost, errors.NumLost}},
	{"missing rbrack", "int main(){ int a[2]; return a[1; }", []errors.Code{errors.RbrackLost}},
	{"wrong rbrack", "int a[2 3];", []errors.Code{errors.RbrackWrong}},
	{"missing operand", "int main(){ int a; a = ; return 0; }", []errors.Code{errors.LiteralLost}},
	{"wrong case label", "void f(int x){ switch (x) { case x: ; } }", []errors.Code{errors.LiteralWrong}},
	{"missing colon", "void f(int x){ switch (x) { case 1 x = 2; } }", []errors.Code{errors.ColonLost}},
	{"wrong colon", "void f(int x){ switch (x) { case 1 ] ; } }", []errors.Code{errors.ColonWrong}},
	{"missing while", "void f(int x){ do x = 1; (x); }", []errors.Code{errors.WhileLost}},
	{"wrong while", "void f(int x){ do ; until (x); }", []errors.Code{errors.WhileWrong}},
	{"missing assign", "int a 5;", []errors.Code{errors.AssignLost}},
	{"wrong assign", "int a == 5;", []errors.Code{errors.AssignWrong}},

	// Lexical errors pass through.
	{"unknown character", "int main(){ return 0 @; }", []errors.Code{errors.TokenNoExist}},
	{"unterminated comment", "int a; /* int b;", []errors.Code{errors.CommentNoEnd}},
}

func TestDiagnostics(t *testing.T) {
	for _, tc := range diagnosticTests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, diags := parse(t, tc.name, tc.src)
			if diff := testutil.Diff(tc.want, diags.Codes()); diff != "" {
				t.Errorf("-expected +received\n%s", diff)
				t.Logf("diagnostics: %s", diags)
			}
		})
	}
}

func TestErrorsStillEmitEntryAndExit(t *testing.T) {
	r, diags := parse(t, "break", "void h(){ break; }")
	testutil.ExpectNoDiff(t, []errors.Code{errors.BreakErr}, diags.Codes())
	testutil.ExpectNoDiff(t, []string{"ENTRY h", "EXIT h"}, listing(r))
}

func TestSwitchItemBeforeCaseEmitsNothing(t *testing.T) {
	r, diags := parse(t, "stray", "int f(int x){ int r; r = 0; switch (x) { r = 99; case 1: r = 1; } return r; }")
	testutil.ExpectNoDiff(t, []errors.Code{errors.RbraceWrong}, diags.Codes())
	want := []string{"ENTRY f", "DEC r", "AS r, 0", "JNE @5, x, 1", "AS r, 1", "RETV @6, r", "EXIT f"}
	testutil.ExpectNoDiff(t, want, listing(r))
}

func TestVariablesAndFunctionsDoNotCollide(t *testing.T) {
	_, diags := parse(t, "namespaces", "int f; int f(){ return f; }")
	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %s", diags)
	}
}

func TestDiagnosticSpansBinaryExpression(t *testing.T) {
	_, diags := parse(t, "span", "void g(int *p); void f(int a){ g(a + 1); }")
	if len(diags) != 1 || diags[0].Code != errors.FunCallErr {
		t.Fatalf("diagnostics: %s", diags)
	}
	want := position.Position{Filename: "span", Line: 0, Startcol: 33, Endcol: 37}
	testutil.ExpectNoDiff(t, want, diags[0].Pos)
}

func TestWarningsAreNotErrors(t *testing.T) {
	_, diags := parse(t, "warn", "int f(int a); char f(int a){ return a; }")
	if diags.HasErrors() {
		t.Errorf("warnings reported as errors: %s", diags)
	}
}

func TestBlockScoping(t *testing.T) {
	r, diags := parse(t, "scopes", "int x; int main(){ int x; { int x; x = 1; } x = 2; return x; }")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %s", diags)
	}
	var depths []int
	for _, q := range r.Quads {
		if q.Op != code.As {
			continue
		}
		v, ok := q.Result.(code.Var)
		if !ok {
			t.Fatalf("AS result %v is not a variable", q.Result)
		}
		depths = append(depths, v.Sym.Depth)
	}
	testutil.ExpectNoDiff(t, []int{2, 1}, depths)

	sym, ok := r.Symbols.Resolve("x")
	if !ok || sym.Kind != symbol.GlobalSymbol {
		t.Errorf("Resolve(x) after parse = %v, %v", sym, ok)
	}
	fn, ok := r.Symbols.Resolve("main")
	if !ok || fn.Kind != symbol.FuncSymbol || !fn.Defined {
		t.Errorf("Resolve(main) after parse = %v, %v", fn, ok)
	}
	if _, ok := r.Symbols.Resolve("y"); ok {
		t.Error("Resolve(y) found an undeclared name")
	}
}

func TestOuterVariableVisibleAfterInnerScope(t *testing.T) {
	_, diags := parse(t, "visible", "void f(){ { int y; y = 1; } y = 2; }")
	testutil.ExpectNoDiff(t, []errors.Code{errors.VarUnDec}, diags.Codes())
}

func TestStrings(t *testing.T) {
	r, _ := parse(t, "strings", "void puts(char *s); void main(){ puts(\"a\"); puts(\"b\"); puts(\"a\"); }")
	testutil.ExpectNoDiff(t, []string{"a", "b"}, r.Strings)
}

func TestJumpTargetsInBounds(t *testing.T) {
	for _, tc := range codegenTests {
		r, _ := parse(t, tc.name, tc.src)
		for i, q := range r.Quads {
			if tgt, ok := q.Target(); ok && (tgt < 0 || int(tgt) >= len(r.Quads)) {
				t.Errorf("%s: quad %d %s jumps outside the program", tc.name, i, q)
			}
		}
	}
}

func TestRecoveryTerminates(t *testing.T) {
	for _, src := range []string{
		"}}}}",
		"int main( { ) ] ; ",
		"void f(){ case default else ) ] : , }",
		"int a[[[[;",
		"int f(int, int, , ) { return ((((; }",
		"void f(){ switch (1) { case",
		"void f(){ for (",
		"extern extern extern",
		"int *",
	} {
		var sink errors.ErrorList
		if _, err := parser.Parse("garbage", strings.NewReader(src), &sink); err != nil {
			t.Errorf("%q: %s", src, err)
		}
		if !sink.HasErrors() {
			t.Errorf("%q: no diagnostics", src)
		}
	}
}

func TestMaxRecursionDepth(t *testing.T) {
	src := "int main(){ return " + strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50) + "; }"
	var sink errors.ErrorList
	_, err := parser.Parse("deep", strings.NewReader(src), &sink, parser.MaxRecursionDepth(20))
	if err == nil {
		t.Fatal("expected an error for nesting beyond the limit")
	}
	if len(sink) != 0 {
		t.Errorf("recursion limit reported as a diagnostic: %s", sink)
	}

	sink = nil
	_, err = parser.Parse("deep", strings.NewReader(src), &sink)
	testutil.FatalIfErr(t, err)
}

func TestOptions(t *testing.T) {
	var sink errors.ErrorList
	if _, err := parser.Parse("bad", strings.NewReader(""), &sink, parser.MaxRecursionDepth(0)); err == nil {
		t.Error("expected an error for a zero recursion depth")
	}
	if _, err := parser.Parse("nosink", strings.NewReader(""), nil); err == nil {
		t.Error("expected an error without a sink")
	}
	if _, err := parser.Parse("tokens", strings.NewReader("int a;"), &sink, parser.EmitTokens()); err != nil {
		t.Error(err)
	}
}
