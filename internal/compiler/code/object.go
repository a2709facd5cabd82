// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package code

import (
	"fmt"
	"strings"

	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/symbol"
)

// Object is the result of compiling one program: the quadruples, the static
// strings they refer to, the diagnostics found along the way, and the file
// scope symbol table for lookups by later tools.
type Object struct {
	Name        string
	Quads       []Quad
	Strings     []string
	Diagnostics errors.ErrorList
	Symbols     *symbol.Table
}

// String lists the quadruples one per line, prefixed by their index.
func (o *Object) String() string {
	var b strings.Builder
	for i, q := range o.Quads {
		fmt.Fprintf(&b, "%4d  %s\n", i, q)
	}
	return b.String()
}

// Count returns the number of quadruples with opcode op.
func (o *Object) Count(op Opcode) int {
	n := 0
	for _, q := range o.Quads {
		if q.Op == op {
			n++
		}
	}
	return n
}
