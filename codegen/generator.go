// Package codegen turns a type-checked ast.Program into FASM x86-64
// assembly text: a fixed prelude, the hand-rolled print/length routines,
// one routine per synthesized structure accessor, one routine per
// user-declared function, and a trailing data/constants segment.
//
// This plays the role the teacher's compiler/generator.go pairing
// played for emitting one fixed assembly snippet per RPN operator,
// generalized to a stack-frame calling convention shared by every
// routine the generator emits, user-written or synthesized.
package codegen

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/danielcastelluccio/barelyc/ast"
	"github.com/danielcastelluccio/barelyc/stack"
)

// Generator holds the state threaded through one compilation: the
// program being translated, and the string literals interned while
// translating it.
type Generator struct {
	prog *ast.Program
	log  *logrus.Logger

	dataIDs *stack.Counter
	strings []internedString
}

type internedString struct {
	label string
	value string
}

// New returns a Generator for prog.
func New(prog *ast.Program, log *logrus.Logger) *Generator {
	if log == nil {
		log = logrus.New()
	}
	return &Generator{prog: prog, log: log, dataIDs: stack.NewCounter()}
}

// Generate produces the complete FASM source for the program: prelude,
// built-in routines, synthesized structure accessors, user functions,
// and the data/constants segment.
func (g *Generator) Generate() (string, error) {
	var out strings.Builder
	out.WriteString(prelude())
	out.WriteString(printIntegerRoutine())
	out.WriteString(printStringRoutine())
	out.WriteString(lengthRoutine())

	for _, fn := range g.prog.Functions {
		if fn.Accessor == nil {
			continue
		}
		code, err := genAccessor(fn, g.prog)
		if err != nil {
			return "", err
		}
		out.WriteString(code)
	}

	for _, fn := range g.prog.Functions {
		if fn.Accessor != nil {
			continue
		}
		code, err := g.function(fn)
		if err != nil {
			return "", err
		}
		out.WriteString(code)
	}

	segment, err := g.dataSegment()
	if err != nil {
		return "", err
	}
	out.WriteString(segment)

	g.log.WithFields(logrus.Fields{
		"functions": len(g.prog.Functions),
		"constants": len(g.prog.Constants),
		"strings":   len(g.strings),
	}).Debug("code generation complete")

	return out.String(), nil
}

// internString assigns src a fresh data-segment label, records it for
// later emission, and returns the label. Identical literals occurring
// more than once each get their own label - the teacher's constants map
// dedupes by value, but string literals here may contain NUL-unsafe
// bytes that are simplest to keep independently addressable.
func (g *Generator) internString(value string) string {
	id := g.dataIDs.Next()
	label := fmt.Sprintf("_str_%d", id)
	g.strings = append(g.strings, internedString{label: label, value: value})
	return label
}
