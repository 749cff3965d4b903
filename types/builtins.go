package types

import "github.com/danielcastelluccio/barelyc/ast"

// builtins registers the signatures of every function the code
// generator implements directly as hand-written assembly rather than
// compiling from an IR body: print_integer, the two syscall-backed
// routines kept from the original prototype (@print renamed to
// @print_string per SPEC_FULL.md, to disambiguate the two print
// primitives), and the inline arithmetic/comparison/cast pseudo-ops of
// §4.4's Invoke translation.
//
// print_integer is spelled without the "@" the rest of its section uses
// because §8's worked end-to-end example calls it that way from source;
// everything else here keeps the "@" the prototype used for a
// compiler-provided symbol.
//
// Signatures for the pseudo-ops are an Open Question in the
// specification ("implemented inline (two pops, compute, push)"); the
// choices made here are recorded, with rationale, in DESIGN.md.
func builtins() map[string]*ast.Function {
	mk := func(name string, params [][2]string, returns []string) *ast.Function {
		pm := ast.NewOrderedMap()
		for _, p := range params {
			pm.Set(p[0], p[1])
		}
		return &ast.Function{Name: name, Parameters: pm, Returns: returns}
	}

	out := map[string]*ast.Function{
		"print_integer": mk("print_integer", [][2]string{{"value", "integer"}}, nil),
		"@print_string": mk("@print_string", [][2]string{{"buffer", "*any"}, {"length", "integer"}}, nil),
		"@length":       mk("@length", [][2]string{{"buffer", "*any"}}, []string{"integer"}),
		"@syscall3":     mk("@syscall3", [][2]string{{"number", "integer"}, {"a", "integer"}, {"b", "integer"}, {"c", "integer"}}, []string{"integer"}),

		"+":    mk("+", [][2]string{{"a", "integer"}, {"b", "integer"}}, []string{"integer"}),
		"-":    mk("-", [][2]string{{"a", "integer"}, {"b", "integer"}}, []string{"integer"}),
		"*1":   mk("*1", [][2]string{{"a", "integer"}, {"b", "integer"}}, []string{"integer"}),
		">":    mk(">", [][2]string{{"a", "integer"}, {"b", "integer"}}, []string{"boolean"}),
		"=":    mk("=", [][2]string{{"a", "integer"}, {"b", "integer"}}, []string{"boolean"}),
		"=1":   mk("=1", [][2]string{{"a", "any_1"}, {"b", "any_1"}}, []string{"boolean"}),
		"!":    mk("!", [][2]string{{"a", "boolean"}}, []string{"boolean"}),
		"byte": mk("byte", [][2]string{{"value", "integer"}}, []string{"any_1"}),
	}

	return out
}
