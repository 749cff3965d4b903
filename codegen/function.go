package codegen

import (
	"fmt"
	"strings"

	"github.com/danielcastelluccio/barelyc/ast"
)

// localSlot records where a declared local lives relative to rbp, and
// its declared type.
type localSlot struct {
	offset int // bytes below rbp where the slot starts (positive number)
	size   int
	typ    string
}

// layoutLocals assigns each of fn's locals a frame slot, in
// declaration order, sizes rounded up to 8 (§4.4 "Local i ... Sizes are
// rounded up to 8").
func layoutLocals(fn *ast.Function, prog *ast.Program) (map[string]localSlot, int, error) {
	declTypes := make(map[string]string, len(fn.Locals))
	for _, instr := range fn.Instructions {
		if instr.Kind != ast.Declare {
			continue
		}
		if _, ok := declTypes[instr.Name]; !ok {
			declTypes[instr.Name] = instr.DeclType
		}
	}

	slots := make(map[string]localSlot, len(fn.Locals))
	offset := 0
	for _, name := range fn.Locals {
		typ := declTypes[name]
		sz, err := ast.Size(typ, prog)
		if err != nil {
			return nil, 0, fmt.Errorf("local %s: %w", name, err)
		}
		rounded := ast.RoundUp8(sz)
		offset += rounded
		slots[name] = localSlot{offset: offset, size: sz, typ: typ}
	}
	return slots, offset, nil
}

// paramOffset returns the byte offset of parameter name within the
// argument area (unrounded cumulative sum of earlier parameters' sizes,
// §4.4 Retrieve) and its declared size.
func paramOffset(fn *ast.Function, name string, prog *ast.Program) (int, int, error) {
	loc := 0
	for _, p := range fn.Parameters.Keys() {
		typ, _ := fn.Parameters.Get(p)
		sz, err := ast.Size(typ, prog)
		if err != nil {
			return 0, 0, err
		}
		if p == name {
			return loc, sz, nil
		}
		loc += sz
	}
	return 0, 0, fmt.Errorf("parameter %q not found", name)
}

// function compiles one user-declared function's body into FASM text,
// following the stack-frame convention and return-value shuffle of
// §4.4.
func (g *Generator) function(fn *ast.Function) (string, error) {
	locals, localsSize, err := layoutLocals(fn, g.prog)
	if err != nil {
		return "", fmt.Errorf("function %s: %w", fn.Name, err)
	}
	params, err := paramsSize(fn, g.prog)
	if err != nil {
		return "", fmt.Errorf("function %s: %w", fn.Name, err)
	}

	var out strings.Builder
	out.WriteString(escapeName(fn.Name) + ":\n")
	out.WriteString("        push rbp\n")
	out.WriteString("        mov rbp, rsp\n")
	fmt.Fprintf(&out, "        sub rsp, %d\n", localsSize+16)

	for idx, instr := range fn.Instructions {
		wantsAddress := idx+1 < len(fn.Instructions) && fn.Instructions[idx+1].Kind == ast.Pointer

		code, err := g.instruction(fn, instr, locals, params, wantsAddress)
		if err != nil {
			return "", fmt.Errorf("function %s: %w", fn.Name, err)
		}
		out.WriteString(code)
	}

	// A function falling off the end without an explicit Return
	// (possible for a () -> () function) still needs the uniform
	// epilogue.
	if len(fn.Instructions) == 0 || fn.Instructions[len(fn.Instructions)-1].Kind != ast.Return {
		out.WriteString(returnShuffle(params, 0))
	}

	out.WriteString("\n")
	return out.String(), nil
}

// instruction translates one IR instruction at call site fn.
func (g *Generator) instruction(fn *ast.Function, instr ast.Instruction, locals map[string]localSlot, params int, wantsAddress bool) (string, error) {
	switch instr.Kind {
	case ast.Integer:
		return fmt.Sprintf("        push %d\n", instr.IntValue), nil

	case ast.Boolean:
		v := 0
		if instr.BoolValue {
			v = 1
		}
		return fmt.Sprintf("        push %d\n", v), nil

	case ast.String:
		label := g.internString(instr.StrValue)
		return fmt.Sprintf("        push %s\n", label), nil

	case ast.Long:
		return fmt.Sprintf("        push %d\n        push %d\n", instr.LongB, instr.LongA), nil

	case ast.Retrieve:
		return g.retrieve(fn, instr.Name, locals, wantsAddress)

	case ast.Declare:
		// Locals are laid out once up front by layoutLocals; nothing to
		// emit at the declaration site itself.
		return "", nil

	case ast.Assign:
		return g.assign(instr.Name, locals)

	case ast.Invoke:
		return g.invoke(instr.Name, wantsAddress)

	case ast.Pointer:
		// The address-of effect was already applied to the preceding
		// Retrieve/Invoke.
		return "", nil

	case ast.Return:
		return g.returnInstr(fn)

	case ast.Target:
		return fmt.Sprintf("target_%d:\n", instr.TargetID), nil

	case ast.Jump:
		return fmt.Sprintf("        jmp target_%d\n", instr.TargetID), nil

	case ast.ConditionalJump:
		want := 0
		if instr.WantsTrue {
			want = 1
		}
		return fmt.Sprintf("        pop rax\n        cmp rax, %d\n        je target_%d\n", want, instr.TargetID), nil
	}

	return "", fmt.Errorf("unhandled instruction kind %q", instr.Kind)
}

// retrieve translates Retrieve(n), dispatching on whether n is a
// parameter, a local, or a constant (§4.4 Retrieve).
func (g *Generator) retrieve(fn *ast.Function, name string, locals map[string]localSlot, wantsAddress bool) (string, error) {
	if _, isParam := fn.Parameters.Get(name); isParam {
		loc, size, err := paramOffset(fn, name, g.prog)
		if err != nil {
			return "", err
		}
		base := fmt.Sprintf("rbp+%d", 16+loc)
		if wantsAddress {
			return fmt.Sprintf("        lea rax, [%s]\n        push rax\n", base), nil
		}
		rounded := ast.RoundUp8(size)
		return fmt.Sprintf("        sub rsp, %d\n", rounded) + copyChunks(size, base, "rsp"), nil
	}

	if slot, isLocal := locals[name]; isLocal {
		base := fmt.Sprintf("rbp-%d", slot.offset)
		if wantsAddress {
			return fmt.Sprintf("        lea rax, [%s]\n        push rax\n", base), nil
		}
		rounded := ast.RoundUp8(slot.size)
		return fmt.Sprintf("        sub rsp, %d\n", rounded) + copyChunks(slot.size, base, "rsp"), nil
	}

	constant, ok := g.prog.FindConstant(name)
	if !ok {
		return "", fmt.Errorf("reference to undeclared name %q", name)
	}
	label := "_" + escapeName(constant.Name)
	size, err := ast.Size(constant.Type, g.prog)
	if err != nil {
		return "", err
	}
	if wantsAddress {
		return fmt.Sprintf("        lea rax, [%s]\n        push rax\n", label), nil
	}
	rounded := ast.RoundUp8(size)
	return fmt.Sprintf("        sub rsp, %d\n", rounded) + copyChunks(size, label, "rsp"), nil
}

// assign translates Assign(n): the value sits at the top of the
// operand stack; copy it into n's frame slot, then drop it (§4.4
// Assign).
func (g *Generator) assign(name string, locals map[string]localSlot) (string, error) {
	slot, ok := locals[name]
	if !ok {
		return "", fmt.Errorf("assignment to undeclared local %q", name)
	}
	base := fmt.Sprintf("rbp-%d", slot.offset)
	out := copyChunks(slot.size, "rsp", base)
	out += fmt.Sprintf("        add rsp, %d\n", ast.RoundUp8(slot.size))
	return out, nil
}

// invoke translates Invoke(f): the built-in pseudo-ops are inlined, a
// cast emits nothing, a field-accessor call under an address marker is
// rewritten to its address-returning sibling, and everything else is a
// plain call (§4.4 Invoke).
func (g *Generator) invoke(name string, wantsAddress bool) (string, error) {
	if _, ok := castTarget(name); ok {
		return "", nil
	}

	if gen, ok := pseudoOps[name]; ok {
		return gen(), nil
	}

	target := name
	if wantsAddress && strings.Contains(name, "->") && !strings.HasPrefix(name, "*") {
		target = "*" + name
	}

	return fmt.Sprintf("        call %s\n", escapeName(target)), nil
}

// returnInstr translates Return: the declared return values already
// sit contiguous at the top of the stack; hand off to the shared
// shuffle.
func (g *Generator) returnInstr(fn *ast.Function) (string, error) {
	params, err := paramsSize(fn, g.prog)
	if err != nil {
		return "", err
	}
	returnSize, err := ast.SizeAll(fn.Returns, g.prog)
	if err != nil {
		return "", err
	}
	return returnShuffle(params, ast.RoundUp8(returnSize)), nil
}

// castTarget recognizes the "@cast_T" invoke-name pattern and extracts
// T. Mirrors types.castTarget; duplicated here rather than exported
// across packages to keep the type checker and code generator
// independently readable.
func castTarget(name string) (string, bool) {
	const prefix = "@cast_"
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return "", false
	}
	return name[len(prefix):], true
}
