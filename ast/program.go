package ast

import "github.com/danielcastelluccio/barelyc/token"

// Constant is a compile-time literal bound to a global symbol.
type Constant struct {
	Name  string
	Type  string
	Value token.Token
}

// Structure is a user-defined aggregate type. Fields preserves
// insertion order, which fixes in-memory field layout.
type Structure struct {
	Name   string
	Fields *OrderedMap
}

// Function is a top-level function: its signature, its linear
// instruction stream, and the locals discovered while parsing it.
//
// Parameters preserves declaration order. Callers push arguments last
// first, so the first declared parameter is pushed last and is on top
// of the stack at the call site, nearest the return address. Locals
// preserves first-Declare order, which fixes stack-frame slot order.
//
// A Function with a non-nil Accessor is one of the three synthesized
// structure accessor/mutator routines (§4.4): it carries a signature for
// the type checker and caller-side code generator, but no Instructions -
// its body is emitted directly as assembly by the code generator.
type Function struct {
	Name         string
	Parameters   *OrderedMap
	Returns      []string
	Instructions []Instruction
	Locals       []string

	Accessor *Accessor
}

// AccessorKind distinguishes the three synthesized per-field routines.
type AccessorKind int

const (
	// AccessorRead is "S->F": given *S, copies the field by value.
	AccessorRead AccessorKind = iota

	// AccessorAddress is "*S->F": given *S, returns the field's address.
	AccessorAddress

	// AccessorWrite is "S<-F": given (*S, T), stores T into the field.
	AccessorWrite
)

// Accessor identifies which structure field a synthesized Function
// reads, addresses or writes.
type Accessor struct {
	Structure string
	Field     string
	Kind      AccessorKind
}

// Program is the frozen, ordered model built by the parser: every
// Constant, Structure and Function declared across all concatenated
// source files, in declaration order within each category.
type Program struct {
	Constants  []*Constant
	Structures []*Structure
	Functions  []*Function
}

// FindStructure returns the structure with the given name, if any.
func (p *Program) FindStructure(name string) (*Structure, bool) {
	for _, s := range p.Structures {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// FindFunction returns the function with the given name, if any.
func (p *Program) FindFunction(name string) (*Function, bool) {
	for _, f := range p.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FindConstant returns the constant with the given name, if any.
func (p *Program) FindConstant(name string) (*Constant, bool) {
	for _, c := range p.Constants {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
