// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package symbol implements the symbol table: a stack of nested variable
// scopes, plus the single namespace of functions.
package symbol

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/golang/glog"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/position"
	"github.com/quadc/quadc/internal/compiler/types"
)

// Kind enumerates the storage kind of a Symbol.
type Kind int

const (
	GlobalSymbol Kind = iota // Variables declared at file scope
	LocalSymbol              // Variables declared in a function body
	ParamSymbol              // Function parameters
	FuncSymbol               // Functions

	endSymbol
)

func (k Kind) String() string {
	switch k {
	case GlobalSymbol:
		return "global"
	case LocalSymbol:
		return "local"
	case ParamSymbol:
		return "parameter"
	case FuncSymbol:
		return "function"
	default:
		panic("unexpected symbol kind")
	}
}

// Symbol describes a named program object.
type Symbol struct {
	Name    string             // identifier name
	Kind    Kind               // storage kind of program object
	Type    types.Type         // object's type; *types.Func for functions
	Pos     *position.Position // Source file position of declaration
	Extern  bool               // Declared with extern
	Defined bool               // Functions only: a body has been seen
	Depth   int                // Scope depth of declaration, 0 for file scope
}

// NewSymbol creates a record of a given symbol kind, named name, found at pos.
func NewSymbol(name string, kind Kind, typ types.Type, pos *position.Position) *Symbol {
	return &Symbol{Name: name, Kind: kind, Type: typ, Pos: pos}
}

// Signature returns the function type of a function symbol, or nil.
func (s *Symbol) Signature() *types.Func {
	f, _ := s.Type.(*types.Func)
	return f
}

func (s *Symbol) String() string {
	return s.Name
}

// Scope maintains a record of the identifiers declared in the current program
// scope, and a link to the parent scope.
type Scope struct {
	Parent  *Scope
	Symbols map[string]*Symbol
}

// NewScope creates a new scope within the parent scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent, make(map[string]*Symbol)}
}

// Insert attempts to insert a symbol into the scope.  If the scope already
// contains an object alt with the same name, the scope is unchanged and the
// function returns alt.  Otherwise the symbol is inserted, and returns nil.
func (s *Scope) Insert(sym *Symbol) (alt *Symbol) {
	if alt = s.Symbols[sym.Name]; alt == nil {
		s.Symbols[sym.Name] = sym
	}
	return
}

// Lookup returns the symbol with the given name if it is found in this or any
// parent scope, otherwise nil.
func (s *Scope) Lookup(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if sym := scope.Symbols[name]; sym != nil {
			return sym
		}
	}
	return nil
}

// String prints the current scope and all parents to a string, recursing up to
// the root scope.  This method is only used for debugging.
func (s *Scope) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scope %p {", s)
	if s != nil {
		fmt.Fprintln(&buf)
		names := make([]string, 0, len(s.Symbols))
		for name := range s.Symbols {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sym := s.Symbols[name]
			fmt.Fprintf(&buf, "\t%q: %s %s\n", name, sym.Kind, sym.Type)
		}
		if s.Parent != nil {
			fmt.Fprintf(&buf, "%s", s.Parent.String())
		}
	}
	fmt.Fprintf(&buf, "}\n")
	return buf.String()
}

// Table is the symbol table of one compilation.  Variables live in a stack of
// scopes opened and closed with Push and Pop; functions live in one file-wide
// namespace, so a function declared inside a block names the same function as
// one declared at file scope.
type Table struct {
	scope *Scope
	depth int
	funcs *Scope
}

// NewTable creates a table holding only the empty file scope.
func NewTable() *Table {
	return &Table{scope: NewScope(nil), funcs: NewScope(nil)}
}

// Push opens a new innermost scope.
func (t *Table) Push() {
	t.scope = NewScope(t.scope)
	t.depth++
	glog.V(2).Infof("push scope, depth %d", t.depth)
}

// Pop closes the innermost scope, discarding the symbols declared in it.
// Popping the file scope is an internal compiler error.
func (t *Table) Pop() error {
	if t.scope.Parent == nil {
		return errors.Errorf("internal compiler error: scope stack underflow")
	}
	t.scope = t.scope.Parent
	t.depth--
	glog.V(2).Infof("pop scope, depth %d", t.depth)
	return nil
}

// Global reports whether the innermost scope is the file scope.
func (t *Table) Global() bool {
	return t.depth == 0
}

// Insert declares a variable in the innermost scope.  If the name is already
// declared in that scope the table is unchanged and the existing symbol is
// returned.
func (t *Table) Insert(sym *Symbol) (alt *Symbol) {
	sym.Depth = t.depth
	return t.scope.Insert(sym)
}

// Lookup returns the innermost visible variable named name, or nil.
func (t *Table) Lookup(name string) *Symbol {
	return t.scope.Lookup(name)
}

// InsertFunc declares a function.  If a function of that name exists it is
// returned and the table is unchanged.
func (t *Table) InsertFunc(sym *Symbol) (alt *Symbol) {
	return t.funcs.Insert(sym)
}

// LookupFunc returns the function named name, or nil.
func (t *Table) LookupFunc(name string) *Symbol {
	return t.funcs.Lookup(name)
}

// Resolve returns the declaration that name refers to at the current point
// of the compilation: the innermost visible variable, else the function.
func (t *Table) Resolve(name string) (*Symbol, bool) {
	if sym := t.Lookup(name); sym != nil {
		return sym, true
	}
	if sym := t.LookupFunc(name); sym != nil {
		return sym, true
	}
	return nil, false
}

// Funcs returns every declared function, sorted by name.
func (t *Table) Funcs() []*Symbol {
	r := make([]*Symbol, 0, len(t.funcs.Symbols))
	for _, sym := range t.funcs.Symbols {
		r = append(r, sym)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Name < r[j].Name })
	return r
}

func (t *Table) String() string {
	return t.scope.String()
}
