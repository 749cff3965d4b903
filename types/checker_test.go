package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielcastelluccio/barelyc/lexer"
	"github.com/danielcastelluccio/barelyc/parser"
	"github.com/danielcastelluccio/barelyc/stack"
	"github.com/danielcastelluccio/barelyc/token"
)

func check(t *testing.T, src string) error {
	t.Helper()

	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	prog, err := parser.New(toks, stack.NewCounter(), nil).Parse()
	require.NoError(t, err)

	return New(prog, nil).Check()
}

func TestWellTypedFunctionPasses(t *testing.T) {
	err := check(t, `function add(a integer, b integer) : (integer) { return +(a, b); }`)
	assert.NoError(t, err)
}

func TestArgumentTypeMismatchFails(t *testing.T) {
	err := check(t, `
		function take(flag boolean) : () { return; }
		function main() : () { take(1); }
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "main")
	assert.Contains(t, err.Error(), "take")
	assert.Contains(t, err.Error(), "expected boolean, got integer")
}

func TestAssignmentTypeMismatchFails(t *testing.T) {
	err := check(t, `function main() : () { variable x : boolean = 1; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected boolean, got integer")
}

func TestConditionalJumpRequiresBoolean(t *testing.T) {
	err := check(t, `function main() : () { if 1 { } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conditional jump")
}

func TestReturnArityMismatchFails(t *testing.T) {
	err := check(t, `function pair() : (integer integer) { return 1; }`)
	require.Error(t, err)
}

func TestStackNotEmptyAtReturnFails(t *testing.T) {
	err := check(t, `function main() : () { 1; return; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")
}

func TestUndeclaredNameFails(t *testing.T) {
	err := check(t, `function main() : () { return missing; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared")
}

func TestAnyParameterAcceptsAnything(t *testing.T) {
	err := check(t, `
		constant msg : *integer = "hi";
		function take(p any) : () { return; }
		function main() : () { take(msg); take(1); take(true); }
	`)
	assert.NoError(t, err)
}

func TestAnyNParameterChecksSize(t *testing.T) {
	err := check(t, `
		function take(p any_8) : () { return; }
		function main() : () { take(1); }
	`)
	assert.NoError(t, err)
}

func TestCastIsUnchecked(t *testing.T) {
	err := check(t, `function main() : () { variable x : boolean = @cast_boolean(1); }`)
	assert.NoError(t, err)
}

func TestStructureAccessorsAreTypeChecked(t *testing.T) {
	err := check(t, `
		structure Point { x integer; y integer; }
		function main() : () {
			variable p : *Point = @cast_*Point(0);
			variable x : integer = Point->x(p);
		}
	`)
	assert.NoError(t, err)
}

func TestPointerInstructionPromotesType(t *testing.T) {
	err := check(t, `function main() : () { variable x : integer = 0; variable p : *integer = &(x); }`)
	assert.NoError(t, err)
}

func TestUndeclaredFunctionFails(t *testing.T) {
	err := check(t, `function main() : () { nope(); }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared function")
}

func TestCastTargetHelper(t *testing.T) {
	target, ok := castTarget("@cast_integer")
	require.True(t, ok)
	assert.Equal(t, "integer", target)

	_, ok = castTarget("@cast_")
	assert.False(t, ok)

	_, ok = castTarget("add")
	assert.False(t, ok)
}

func TestBuiltinsCoverPseudoOps(t *testing.T) {
	b := builtins()
	for _, name := range []string{"+", "-", "*1", ">", "=", "=1", "!", "byte", "@syscall3", "print_integer", "@print_string", "@length"} {
		_, ok := b[name]
		assert.True(t, ok, "missing builtin %s", name)
	}
}
