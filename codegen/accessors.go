package codegen

import (
	"fmt"

	"github.com/danielcastelluccio/barelyc/ast"
)

// fieldLayout computes each field's byte offset within s, in
// declaration order (§3 "Field insertion order = field layout order in
// memory").
func fieldLayout(s *ast.Structure, prog *ast.Program) (map[string]int, error) {
	offsets := make(map[string]int, s.Fields.Len())
	offset := 0
	for _, field := range s.Fields.Keys() {
		offsets[field] = offset
		typ, _ := s.Fields.Get(field)
		sz, err := ast.Size(typ, prog)
		if err != nil {
			return nil, err
		}
		offset += sz
	}
	return offsets, nil
}

// genAccessor emits one of the three synthetic per-field routines
// (§4.4 "Synthesized structure operations"). Like every other callable
// routine it follows the uniform calling convention, so caller-side
// code generated from an ordinary Invoke IR instruction does not need
// to know whether the callee is user-written or synthesized.
func genAccessor(fn *ast.Function, prog *ast.Program) (string, error) {
	s, ok := prog.FindStructure(fn.Accessor.Structure)
	if !ok {
		return "", fmt.Errorf("accessor %s: unknown structure %q", fn.Name, fn.Accessor.Structure)
	}
	offsets, err := fieldLayout(s, prog)
	if err != nil {
		return "", err
	}
	off := offsets[fn.Accessor.Field]

	fieldType, _ := s.Fields.Get(fn.Accessor.Field)
	fieldSize, err := ast.Size(fieldType, prog)
	if err != nil {
		return "", err
	}

	params, err := paramsSize(fn, prog)
	if err != nil {
		return "", err
	}

	out := escapeName(fn.Name) + ":\n"
	out += "        push rbp\n"
	out += "        mov rbp, rsp\n"
	out += "        sub rsp, 16\n"

	// The structure pointer is held in rbx for the copies, since
	// copyChunks moves data through rax.
	switch fn.Accessor.Kind {
	case ast.AccessorRead:
		rounded := ast.RoundUp8(fieldSize)
		out += "        mov rbx, [rbp+16]\n"
		out += fmt.Sprintf("        sub rsp, %d\n", rounded)
		out += copyChunks(fieldSize, fmt.Sprintf("rbx+%d", off), "rsp")
		out += returnShuffle(params, rounded)

	case ast.AccessorAddress:
		out += "        mov rax, [rbp+16]\n"
		out += fmt.Sprintf("        lea rbx, [rax+%d]\n", off)
		out += "        sub rsp, 8\n"
		out += "        mov [rsp], rbx\n"
		out += returnShuffle(params, 8)

	case ast.AccessorWrite:
		out += "        mov rbx, [rbp+16]\n"
		out += copyChunks(fieldSize, "rbp+24", fmt.Sprintf("rbx+%d", off))
		out += returnShuffle(params, 0)
	}

	return out + "\n", nil
}

// paramsSize sums the unrounded byte sizes of fn's declared parameters,
// in order - the total size of the argument area the caller reserved,
// and the value the Retrieve and return-shuffle offset arithmetic is
// built on (§4.4).
func paramsSize(fn *ast.Function, prog *ast.Program) (int, error) {
	total := 0
	for _, name := range fn.Parameters.Keys() {
		typ, _ := fn.Parameters.Get(name)
		sz, err := ast.Size(typ, prog)
		if err != nil {
			return 0, err
		}
		total += sz
	}
	return total, nil
}
