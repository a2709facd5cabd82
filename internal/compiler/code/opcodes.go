// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package code contains the quadruple instructions emitted by the compiler.
package code

type Opcode int

const (
	Nop   Opcode = iota // Placeholder; marks degraded code generated after an error.
	Dec                 // Declare Result; Arg1 optionally holds a constant initial value.
	Entry               // Function entry; Result is the function.
	Exit                // Function exit; Result is the function.
	As                  // Result = Arg1
	Add                 // Result = Arg1 + Arg2
	Sub                 // Result = Arg1 - Arg2
	Mul                 // Result = Arg1 * Arg2
	Div                 // Result = Arg1 / Arg2
	Mod                 // Result = Arg1 % Arg2
	Neg                 // Result = -Arg1
	Gt                  // Result = Arg1 > Arg2
	Ge                  // Result = Arg1 >= Arg2
	Lt                  // Result = Arg1 < Arg2
	Le                  // Result = Arg1 <= Arg2
	Equ                 // Result = Arg1 == Arg2
	Ne                  // Result = Arg1 != Arg2
	Not                 // Result = !Arg1
	And                 // Result = Arg1 && Arg2
	Or                  // Result = Arg1 || Arg2
	Lea                 // Result = &Arg1
	Set                 // *Arg1 = Result
	Get                 // Result = *Arg1
	Jmp                 // goto Result
	Jt                  // if Arg1 goto Result
	Jf                  // if !Arg1 goto Result
	Jne                 // if Arg1 != Arg2 goto Result
	Arg                 // Pass Arg1 to the next call.
	Proc                // Call Arg1, discarding any result.
	Call                // Result = Arg1()
	Ret                 // Return; Result is the function's exit.
	Retv                // Return Arg1; Result is the function's exit.

	lastOpcode
)

var opNames = map[Opcode]string{
	Nop:   "NOP",
	Dec:   "DEC",
	Entry: "ENTRY",
	Exit:  "EXIT",
	As:    "AS",
	Add:   "ADD",
	Sub:   "SUB",
	Mul:   "MUL",
	Div:   "DIV",
	Mod:   "MOD",
	Neg:   "NEG",
	Gt:    "GT",
	Ge:    "GE",
	Lt:    "LT",
	Le:    "LE",
	Equ:   "EQU",
	Ne:    "NE",
	Not:   "NOT",
	And:   "AND",
	Or:    "OR",
	Lea:   "LEA",
	Set:   "SET",
	Get:   "GET",
	Jmp:   "JMP",
	Jt:    "JT",
	Jf:    "JF",
	Jne:   "JNE",
	Arg:   "ARG",
	Proc:  "PROC",
	Call:  "CALL",
	Ret:   "RET",
	Retv:  "RETV",
}

func (o Opcode) String() string {
	return opNames[o]
}

// IsJump reports whether the instruction's Result is a jump target.
func (o Opcode) IsJump() bool {
	switch o {
	case Jmp, Jt, Jf, Jne, Ret, Retv:
		return true
	}
	return false
}
