// Package types implements the type checker of §4.3: a per-function
// simulation of the operand stack the code generator will later realize
// in actual machine registers and stack slots, walking the same linear
// instruction stream the parser produced.
//
// This plays the role the teacher's compiler.go/generator.go pairing
// played for validating RPN token sequences before emission, generalized
// from a single implicit numeric stack to a typed stack with a
// structure-aware compatibility rule (ast.Compatible).
package types

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/danielcastelluccio/barelyc/ast"
	"github.com/danielcastelluccio/barelyc/stack"
)

// Checker walks every function's instruction stream once, failing fast
// on the first incompatible operand.
type Checker struct {
	prog      *ast.Program
	functions map[string]*ast.Function
	constants map[string]string
	log       *logrus.Logger
}

// New builds a Checker for prog. The function table includes every
// user-declared function, every synthesized structure accessor, and the
// built-in pseudo-ops the code generator emits inline (§4.4).
func New(prog *ast.Program, log *logrus.Logger) *Checker {
	if log == nil {
		log = logrus.New()
	}

	functions := make(map[string]*ast.Function, len(prog.Functions))
	for _, fn := range prog.Functions {
		functions[fn.Name] = fn
	}
	for name, fn := range builtins() {
		if _, exists := functions[name]; !exists {
			functions[name] = fn
		}
	}

	constants := make(map[string]string, len(prog.Constants))
	for _, c := range prog.Constants {
		constants[c.Name] = c.Type
	}

	return &Checker{prog: prog, functions: functions, constants: constants, log: log}
}

// Check type-checks every user-declared function. Synthesized structure
// accessors carry no Instructions - the code generator emits their
// bodies directly - so there is nothing here to walk for them.
func (c *Checker) Check() error {
	for _, fn := range c.prog.Functions {
		if fn.Accessor != nil {
			continue
		}
		if err := c.checkFunction(fn); err != nil {
			return err
		}
	}

	c.log.WithField("functions", len(c.prog.Functions)).Debug("type check complete")
	return nil
}

// checkFunction simulates fn's operand stack, starting empty, against
// the instruction-effect table of §4.3; the name environment is seeded
// with fn's parameters.
func (c *Checker) checkFunction(fn *ast.Function) error {
	env := make(map[string]string, fn.Parameters.Len()+len(fn.Locals))
	for _, name := range fn.Parameters.Keys() {
		typ, _ := fn.Parameters.Get(name)
		env[name] = typ
	}

	ts := stack.New()

	for _, instr := range fn.Instructions {
		switch instr.Kind {
		case ast.Integer:
			ts.Push("integer")

		case ast.Boolean:
			ts.Push("boolean")

		case ast.String:
			// A string literal's type is an untyped pointer: spec §4.3
			// gives its push-type as the bare pointer sigil, with no
			// declared pointee.
			ts.Push("*any")

		case ast.Long:
			ts.Push("long")

		case ast.Retrieve:
			typ, ok := env[instr.Name]
			if !ok {
				typ, ok = c.constants[instr.Name]
			}
			if !ok {
				return fmt.Errorf("function %s: reference to undeclared name %q", fn.Name, instr.Name)
			}
			ts.Push(typ)

		case ast.Declare:
			env[instr.Name] = instr.DeclType

		case ast.Assign:
			wanted, ok := env[instr.Name]
			if !ok {
				return fmt.Errorf("function %s: assignment to undeclared name %q", fn.Name, instr.Name)
			}
			given, err := ts.Pop()
			if err != nil {
				return fmt.Errorf("function %s: assignment to %s: %w", fn.Name, instr.Name, err)
			}
			ok, err = ast.Compatible(given, wanted, c.prog)
			if err != nil {
				return fmt.Errorf("function %s: assignment to %s: %w", fn.Name, instr.Name, err)
			}
			if !ok {
				return fmt.Errorf("function %s: assignment to %s: expected %s, got %s", fn.Name, instr.Name, wanted, given)
			}

		case ast.Invoke:
			if err := c.checkInvoke(fn, instr.Name, ts); err != nil {
				return err
			}

		case ast.Pointer:
			given, err := ts.Pop()
			if err != nil {
				return fmt.Errorf("function %s: address-of: %w", fn.Name, err)
			}
			ts.Push(ast.PointerTo(given))

		case ast.Return:
			for i := len(fn.Returns) - 1; i >= 0; i-- {
				wanted := fn.Returns[i]
				given, err := ts.Pop()
				if err != nil {
					return fmt.Errorf("function %s: return: %w", fn.Name, err)
				}
				ok, err := ast.Compatible(given, wanted, c.prog)
				if err != nil {
					return fmt.Errorf("function %s: return: %w", fn.Name, err)
				}
				if !ok {
					return fmt.Errorf("function %s: return value %d: expected %s, got %s", fn.Name, i, wanted, given)
				}
			}
			if !ts.Empty() {
				return fmt.Errorf("function %s: operand stack not empty at return (%d leftover value(s))", fn.Name, ts.Len())
			}

		case ast.ConditionalJump:
			given, err := ts.Pop()
			if err != nil {
				return fmt.Errorf("function %s: conditional jump: %w", fn.Name, err)
			}
			if given != "boolean" {
				return fmt.Errorf("function %s: conditional jump: expected boolean, got %s", fn.Name, given)
			}

		case ast.Target, ast.Jump:
			// no stack effect

		default:
			return fmt.Errorf("function %s: unhandled instruction kind %q", fn.Name, instr.Kind)
		}
	}

	if !ts.Empty() {
		return fmt.Errorf("function %s: operand stack not empty at end of function (%d leftover value(s))", fn.Name, ts.Len())
	}

	return nil
}

// checkInvoke applies the Invoke rule: for each declared parameter of
// the target function, in order, pop and check the top of the operand
// stack; then push each declared return type, in order.
//
// "@cast_T" is the one special case (§4.3): it pops a single value
// unchecked and pushes T, regardless of what T's declared size is.
func (c *Checker) checkInvoke(caller *ast.Function, name string, ts *stack.Stack) error {
	if target, ok := castTarget(name); ok {
		if _, err := ts.Pop(); err != nil {
			return fmt.Errorf("function %s: call to %s: %w", caller.Name, name, err)
		}
		ts.Push(target)
		return nil
	}

	target, ok := c.functions[name]
	if !ok {
		return fmt.Errorf("function %s: call to undeclared function %q", caller.Name, name)
	}

	for _, pname := range target.Parameters.Keys() {
		wanted, _ := target.Parameters.Get(pname)
		given, err := ts.Pop()
		if err != nil {
			return fmt.Errorf("function %s: call to %s: argument %s: %w", caller.Name, name, pname, err)
		}
		ok, err := ast.Compatible(given, wanted, c.prog)
		if err != nil {
			return fmt.Errorf("function %s: call to %s: argument %s: %w", caller.Name, name, pname, err)
		}
		if !ok {
			return fmt.Errorf("function %s: call to %s: argument %s: expected %s, got %s", caller.Name, name, pname, wanted, given)
		}
	}

	for _, rt := range target.Returns {
		ts.Push(rt)
	}

	return nil
}

// castTarget recognizes the "@cast_T" invoke-name pattern and extracts T.
func castTarget(name string) (string, bool) {
	const prefix = "@cast_"
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return "", false
	}
	return name[len(prefix):], true
}
