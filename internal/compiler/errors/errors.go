// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package errors holds the diagnostics produced while compiling a program.
// Diagnostics are user facing and never stop a compilation; failures of the
// compiler itself are ordinary Go errors built with Errorf and Wrapf.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/quadc/quadc/internal/compiler/position"
)

// Diagnostic is one lexical, syntax or semantic finding at a source position.
type Diagnostic struct {
	Code     Code
	Pos      position.Position
	Expected string // Optional context: what the compiler was looking for.
	Found    string // Optional context: the spelling or name found instead.
}

// Severity is shorthand for d.Code.Severity().
func (d *Diagnostic) Severity() Severity {
	return d.Code.Severity()
}

// Category is shorthand for d.Code.Category().
func (d *Diagnostic) Category() Category {
	return d.Code.Category()
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s %s: %s", d.Pos, d.Category(), d.Severity(), d.Code, d.Code.Message())
	if d.Expected != "" {
		fmt.Fprintf(&b, ", expecting %s", d.Expected)
	}
	if d.Found != "" {
		fmt.Fprintf(&b, " near `%s'", d.Found)
	}
	return b.String()
}

// ErrorList is the diagnostics sink for one compilation.  It is append only:
// entries keep the order they were reported in.
type ErrorList []*Diagnostic

// Add appends a diagnostic at a position.  found is optional context, usually
// the offending spelling or identifier.
func (p *ErrorList) Add(code Code, pos *position.Position, found string) {
	p.AddExpected(code, pos, "", found)
}

// AddExpected appends a diagnostic that also records what was expected.
func (p *ErrorList) AddExpected(code Code, pos *position.Position, expected, found string) {
	d := &Diagnostic{Code: code, Expected: expected, Found: found}
	if pos != nil {
		d.Pos = *pos
	}
	*p = append(*p, d)
}

// Append puts an ErrorList on the end of this ErrorList.
func (p *ErrorList) Append(l ErrorList) {
	*p = append(*p, l...)
}

// HasErrors reports whether any diagnostic has error severity.
func (p ErrorList) HasErrors() bool {
	for _, d := range p {
		if d.Severity() == Error {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics of the given severity, in order.
func (p ErrorList) Filter(s Severity) ErrorList {
	var r ErrorList
	for _, d := range p {
		if d.Severity() == s {
			r = append(r, d)
		}
	}
	return r
}

// Codes returns the code of each diagnostic, in order.
func (p ErrorList) Codes() []Code {
	r := make([]Code, 0, len(p))
	for _, d := range p {
		r = append(r, d.Code)
	}
	return r
}

// Err returns the error-severity diagnostics as an error, or nil if there
// are none.  Warnings never make Err non-nil.
func (p ErrorList) Err() error {
	if e := p.Filter(Error); len(e) > 0 {
		return e
	}
	return nil
}

// ErrorList implements the error interface.
func (p ErrorList) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	var r string
	for _, e := range p {
		r += fmt.Sprintf("%s\n", e)
	}
	return r[:len(r)-1]
}

// Errorf builds an internal compiler error.
func Errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Wrapf annotates an internal compiler error with context.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
