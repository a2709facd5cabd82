// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package types describes the types of the source language: the scalars int
// and char, void, single pointers, fixed length arrays, and function
// signatures.
package types

import (
	"fmt"
	"strings"
)

// Type represents a type in the source language.  The set of
// implementations is closed.
type Type interface {
	// Size returns the storage size of a value of this type, in bytes.
	Size() int
	String() string
	isType()
}

// BasicKind enumerates the builtin types.
type BasicKind int

const (
	VoidKind BasicKind = iota
	CharKind
	IntKind
)

// Basic is a builtin type.
type Basic struct {
	Kind BasicKind
}

// Builtin types.
var (
	Void = &Basic{VoidKind}
	Char = &Basic{CharKind}
	Int  = &Basic{IntKind}
)

func (*Basic) isType() {}

func (b *Basic) Size() int {
	switch b.Kind {
	case CharKind:
		return 1
	case IntKind:
		return 4
	default:
		return 0
	}
}

func (b *Basic) String() string {
	switch b.Kind {
	case VoidKind:
		return "void"
	case CharKind:
		return "char"
	case IntKind:
		return "int"
	default:
		panic(fmt.Sprintf("unexpected basic kind %d", b.Kind))
	}
}

// Pointer is the type of an address of an Elem.
type Pointer struct {
	Elem Type
}

// NewPointer returns the pointer type to elem.
func NewPointer(elem Type) *Pointer {
	return &Pointer{elem}
}

func (*Pointer) isType() {}

func (*Pointer) Size() int { return 4 }

func (p *Pointer) String() string {
	return p.Elem.String() + "*"
}

// Array is a fixed length sequence of Elem.
type Array struct {
	Elem Type
	Len  int
}

// NewArray returns the array type of n elements of elem.
func NewArray(elem Type, n int) *Array {
	return &Array{elem, n}
}

func (*Array) isType() {}

func (a *Array) Size() int {
	return a.Elem.Size() * a.Len
}

func (a *Array) String() string {
	return fmt.Sprintf("%s[%d]", a.Elem, a.Len)
}

// Func is a function signature.
type Func struct {
	Params []Type
	Result Type
}

func (*Func) isType() {}

func (*Func) Size() int { return 0 }

func (f *Func) String() string {
	p := make([]string, 0, len(f.Params))
	for _, t := range f.Params {
		p = append(p, t.String())
	}
	return fmt.Sprintf("%s(%s)", f.Result, strings.Join(p, ","))
}

// Equals reports whether two types are structurally identical.
func Equals(a, b Type) bool {
	switch x := a.(type) {
	case *Basic:
		y, ok := b.(*Basic)
		return ok && x.Kind == y.Kind
	case *Pointer:
		y, ok := b.(*Pointer)
		return ok && Equals(x.Elem, y.Elem)
	case *Array:
		y, ok := b.(*Array)
		return ok && x.Len == y.Len && Equals(x.Elem, y.Elem)
	case *Func:
		y, ok := b.(*Func)
		if !ok || len(x.Params) != len(y.Params) || !Equals(x.Result, y.Result) {
			return false
		}
		for i := range x.Params {
			if !Equals(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsVoid reports whether t is void.
func IsVoid(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.Kind == VoidKind
}

// IsScalar reports whether t is int or char, the only types arithmetic
// applies to.
func IsScalar(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.Kind != VoidKind
}

// IsAggregate reports whether t is an array or a pointer, the types that can
// be dereferenced and indexed.
func IsAggregate(t Type) bool {
	switch t.(type) {
	case *Pointer, *Array:
		return true
	}
	return false
}

// IsArray reports whether t is an array.
func IsArray(t Type) bool {
	_, ok := t.(*Array)
	return ok
}

// Elem returns the element type of a pointer or array, or nil.
func Elem(t Type) Type {
	switch x := t.(type) {
	case *Pointer:
		return x.Elem
	case *Array:
		return x.Elem
	}
	return nil
}

// Decay converts an array type to the pointer to its first element.  Other
// types are returned unchanged.
func Decay(t Type) Type {
	if a, ok := t.(*Array); ok {
		return NewPointer(a.Elem)
	}
	return t
}

// Assignable reports whether a value of type src may be stored in a location
// of type dst.  Scalars convert freely between each other; pointers accept
// pointers and arrays of the same element type, or anything when either side
// points to void.  Arrays are never assignable.
func Assignable(dst, src Type) bool {
	switch d := dst.(type) {
	case *Basic:
		return IsScalar(d) && IsScalar(src)
	case *Pointer:
		e := Elem(src)
		if e == nil {
			return false
		}
		return IsVoid(d.Elem) || IsVoid(e) || Equals(d.Elem, e)
	}
	return false
}
