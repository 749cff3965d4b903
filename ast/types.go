package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// IsPointer reports whether typ is a pointer type "*X".
func IsPointer(typ string) bool {
	return strings.HasPrefix(typ, "*")
}

// Pointee returns X for a pointer type "*X".
func Pointee(typ string) string {
	return strings.TrimPrefix(typ, "*")
}

// PointerTo returns "*X" for a type X.
func PointerTo(typ string) string {
	return "*" + typ
}

// Size returns the size in bytes of typ, recursing into structure
// fields when typ names a user-defined structure.
//
// boolean is sized at 8 bytes here, matching every other value in this
// design (spec §3 flags this as provisional; a future refinement to 1
// byte only has to change this one function).
func Size(typ string, prog *Program) (int, error) {
	return sizeWithTrail(typ, prog, nil)
}

func sizeWithTrail(typ string, prog *Program, trail []string) (int, error) {
	switch {
	case typ == "integer":
		return 8, nil
	case typ == "boolean":
		return 8, nil
	case typ == "any":
		return 8, nil
	case typ == "long":
		// The 128-bit pair pushed by a NumberSplit literal; two 8-byte
		// halves (see GLOSSARY: "NumberSplit literal").
		return 16, nil
	case strings.HasPrefix(typ, "any_"):
		n, err := strconv.Atoi(strings.TrimPrefix(typ, "any_"))
		if err != nil {
			return 0, fmt.Errorf("invalid any_N type %q", typ)
		}
		return n, nil
	case IsPointer(typ):
		return 8, nil
	}

	for _, t := range trail {
		if t == typ {
			return 0, fmt.Errorf("structure %q is recursively defined via itself by value", typ)
		}
	}

	structure, ok := prog.FindStructure(typ)
	if !ok {
		return 0, fmt.Errorf("unknown type %q", typ)
	}

	trail = append(trail, typ)
	total := 0
	for _, field := range structure.Fields.Keys() {
		fieldType, _ := structure.Fields.Get(field)
		sz, err := sizeWithTrail(fieldType, prog, trail)
		if err != nil {
			return 0, err
		}
		total += sz
	}
	return total, nil
}

// SizeAll sums Size over a list of type names, in order.
func SizeAll(types []string, prog *Program) (int, error) {
	total := 0
	for _, t := range types {
		sz, err := Size(t, prog)
		if err != nil {
			return 0, err
		}
		total += sz
	}
	return total, nil
}

// RoundUp8 rounds n up to the next multiple of 8.
func RoundUp8(n int) int {
	if n%8 == 0 {
		return n
	}
	return n + (8 - n%8)
}

// Compatible implements the assignment/argument/return compatibility
// rule of §4.3: wanted == given, or wanted == "any", or wanted ==
// "any_N" and size(given) == N.
func Compatible(given, wanted string, prog *Program) (bool, error) {
	if wanted == given {
		return true, nil
	}
	if wanted == "any" {
		return true, nil
	}
	if strings.HasPrefix(wanted, "any_") {
		n, err := strconv.Atoi(strings.TrimPrefix(wanted, "any_"))
		if err != nil {
			return false, fmt.Errorf("invalid any_N type %q", wanted)
		}
		sz, err := Size(given, prog)
		if err != nil {
			return false, err
		}
		return sz == n, nil
	}
	return false, nil
}
