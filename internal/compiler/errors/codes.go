// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package errors

// Category names the compiler stage that reported a diagnostic.
type Category int

const (
	Lex Category = iota
	Syntax
	Semantic
)

func (c Category) String() string {
	switch c {
	case Lex:
		return "lex"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	default:
		panic("unexpected category")
	}
}

// Severity separates diagnostics that fail a compilation from those that don't.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		panic("unexpected severity")
	}
}

// Code identifies one specific diagnostic.  The lexical, syntax and semantic
// taxonomies share the type but occupy disjoint ranges, so the stage that
// reports a code can be recovered from the code alone.
type Code int

// Lexical errors.
const (
	StrNoRQuotation Code = iota // string literal without a closing quote
	NumBinType                  // "0b" prefix without binary digits
	NumHexType                  // "0x" prefix without hex digits
	CharNoRQuotation            // character literal without a closing quote
	CharNoData                  // empty character literal
	OrNoPair                    // a single '|'
	CommentNoEnd                // unterminated block comment
	TokenNoExist                // no token starts with this character

	// Syntax errors, in lost/wrong pairs.  A lost token was missing and
	// has been assumed; a wrong token was present and has been discarded.
	TypeLost
	TypeWrong
	IDLost
	IDWrong
	NumLost
	NumWrong
	LiteralLost
	LiteralWrong
	CommaLost
	CommaWrong
	SemiconLost
	SemiconWrong
	AssignLost
	AssignWrong
	ColonLost
	ColonWrong
	WhileLost
	WhileWrong
	LparenLost
	LparenWrong
	RparenLost
	RparenWrong
	LbrackLost
	LbrackWrong
	RbrackLost
	RbrackWrong
	LbraceLost
	LbraceWrong
	RbraceLost
	RbraceWrong

	// Semantic errors.
	VarReDef
	FunReDef
	VarUnDec
	FunUnDec
	FunDecErr
	FunCallErr
	DecInitDeny
	ExternFunDef
	ArrayLenInvalid
	VarInitErr
	GlbInitErr
	VoidVar
	ExprNotLeftVal
	AssignTypeErr
	ExprIsBase
	ExprNotBase
	ArrTypeErr
	ExprIsVoid
	BreakErr
	ContinueErr
	ReturnErr

	// Semantic warnings.
	FunDecConflict
	FunRetConflict

	lastCode
)

var codeNames = map[Code]string{
	StrNoRQuotation:  "STR_NO_R_QUTION",
	NumBinType:       "NUM_BIN_TYPE",
	NumHexType:       "NUM_HEX_TYPE",
	CharNoRQuotation: "CHAR_NO_R_QUTION",
	CharNoData:       "CHAR_NO_DATA",
	OrNoPair:         "OR_NO_PAIR",
	CommentNoEnd:     "COMMENT_NO_END",
	TokenNoExist:     "TOKEN_NO_EXIST",
	TypeLost:         "TYPE_LOST",
	TypeWrong:        "TYPE_WRONG",
	IDLost:           "ID_LOST",
	IDWrong:          "ID_WRONG",
	NumLost:          "NUM_LOST",
	NumWrong:         "NUM_WRONG",
	LiteralLost:      "LITERAL_LOST",
	LiteralWrong:     "LITERAL_WRONG",
	CommaLost:        "COMMA_LOST",
	CommaWrong:       "COMMA_WRONG",
	SemiconLost:      "SEMICON_LOST",
	SemiconWrong:     "SEMICON_WRONG",
	AssignLost:       "ASSIGN_LOST",
	AssignWrong:      "ASSIGN_WRONG",
	ColonLost:        "COLON_LOST",
	ColonWrong:       "COLON_WRONG",
	WhileLost:        "WHILE_LOST",
	WhileWrong:       "WHILE_WRONG",
	LparenLost:       "LPAREN_LOST",
	LparenWrong:      "LPAREN_WRONG",
	RparenLost:       "RPAREN_LOST",
	RparenWrong:      "RPAREN_WRONG",
	LbrackLost:       "LBRACK_LOST",
	LbrackWrong:      "LBRACK_WRONG",
	RbrackLost:       "RBRACK_LOST",
	RbrackWrong:      "RBRACK_WRONG",
	LbraceLost:       "LBRACE_LOST",
	LbraceWrong:      "LBRACE_WRONG",
	RbraceLost:       "RBRACE_LOST",
	RbraceWrong:      "RBRACE_WRONG",
	VarReDef:         "VAR_RE_DEF",
	FunReDef:         "FUN_RE_DEF",
	VarUnDec:         "VAR_UN_DEC",
	FunUnDec:         "FUN_UN_DEC",
	FunDecErr:        "FUN_DEC_ERR",
	FunCallErr:       "FUN_CALL_ERR",
	DecInitDeny:      "DEC_INIT_DENY",
	ExternFunDef:     "EXTERN_FUN_DEF",
	ArrayLenInvalid:  "ARRAY_LEN_INVALID",
	VarInitErr:       "VAR_INIT_ERR",
	GlbInitErr:       "GLB_INIT_ERR",
	VoidVar:          "VOID_VAR",
	ExprNotLeftVal:   "EXPR_NOT_LEFT_VAL",
	AssignTypeErr:    "ASSIGN_TYPE_ERR",
	ExprIsBase:       "EXPR_IS_BASE",
	ExprNotBase:      "EXPR_NOT_BASE",
	ArrTypeErr:       "ARR_TYPE_ERR",
	ExprIsVoid:       "EXPR_IS_VOID",
	BreakErr:         "BREAK_ERR",
	ContinueErr:      "CONTINUE_ERR",
	ReturnErr:        "RETURN_ERR",
	FunDecConflict:   "FUN_DEC_CONFLICT",
	FunRetConflict:   "FUN_RET_CONFLICT",
}

var codeMessages = map[Code]string{
	StrNoRQuotation:  "string literal is missing its closing quote",
	NumBinType:       "binary literal has no digits",
	NumHexType:       "hexadecimal literal has no digits",
	CharNoRQuotation: "character literal is missing its closing quote",
	CharNoData:       "character literal is empty",
	OrNoPair:         "`|' must be written `||'",
	CommentNoEnd:     "block comment is not terminated",
	TokenNoExist:     "unexpected input",
	TypeLost:         "missing type",
	TypeWrong:        "expected a type",
	IDLost:           "missing identifier",
	IDWrong:          "expected an identifier",
	NumLost:          "missing array length",
	NumWrong:         "expected an integer array length",
	LiteralLost:      "missing literal",
	LiteralWrong:     "expected a literal",
	CommaLost:        "missing `,'",
	CommaWrong:       "expected `,'",
	SemiconLost:      "missing `;'",
	SemiconWrong:     "expected `;'",
	AssignLost:       "missing `='",
	AssignWrong:      "expected `='",
	ColonLost:        "missing `:'",
	ColonWrong:       "expected `:'",
	WhileLost:        "missing `while'",
	WhileWrong:       "expected `while'",
	LparenLost:       "missing `('",
	LparenWrong:      "expected `('",
	RparenLost:       "missing `)'",
	RparenWrong:      "expected `)'",
	LbrackLost:       "missing `['",
	LbrackWrong:      "expected `['",
	RbrackLost:       "missing `]'",
	RbrackWrong:      "expected `]'",
	LbraceLost:       "missing `{'",
	LbraceWrong:      "expected `{'",
	RbraceLost:       "missing `}'",
	RbraceWrong:      "expected `}'",
	VarReDef:         "variable redefined in this scope",
	FunReDef:         "function body defined more than once",
	VarUnDec:         "variable not declared",
	FunUnDec:         "function not declared",
	FunDecErr:        "function declaration does not match its previous declaration",
	FunCallErr:       "arguments do not match the function parameters",
	DecInitDeny:      "declaration may not have an initializer",
	ExternFunDef:     "extern function may not have a body",
	ArrayLenInvalid:  "array length must be a positive constant",
	VarInitErr:       "initializer type does not match the variable type",
	GlbInitErr:       "global initializer is not a constant",
	VoidVar:          "variable may not have type void",
	ExprNotLeftVal:   "expression is not assignable",
	AssignTypeErr:    "assignment type mismatch",
	ExprIsBase:       "expression is an array or pointer where a scalar is required",
	ExprNotBase:      "expression is a scalar where an array or pointer is required",
	ArrTypeErr:       "invalid operation on an array",
	ExprIsVoid:       "void value used in an expression",
	BreakErr:         "break is not inside a loop or switch",
	ContinueErr:      "continue is not inside a loop",
	ReturnErr:        "return value does not match the function result type",
	FunDecConflict:   "function parameter types conflict with a previous declaration",
	FunRetConflict:   "function result type conflicts with a previous declaration",
}

func (c Code) String() string {
	return codeNames[c]
}

// Message returns a human readable description of the code.
func (c Code) Message() string {
	return codeMessages[c]
}

// Category returns the stage that reports this code.
func (c Code) Category() Category {
	switch {
	case c <= TokenNoExist:
		return Lex
	case c <= RbraceWrong:
		return Syntax
	default:
		return Semantic
	}
}

// Severity returns whether this code fails the compilation.
func (c Code) Severity() Severity {
	switch c {
	case FunDecConflict, FunRetConflict:
		return Warning
	default:
		return Error
	}
}
