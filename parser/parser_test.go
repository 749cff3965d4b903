package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielcastelluccio/barelyc/ast"
	"github.com/danielcastelluccio/barelyc/lexer"
	"github.com/danielcastelluccio/barelyc/stack"
	"github.com/danielcastelluccio/barelyc/token"
)

func parse(t *testing.T, src string) *ast.Program {
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

	prog, err := New(toks, stack.NewCounter(), nil).Parse()
	require.NoError(t, err)
	return prog
}

func TestParseSimpleFunction(t *testing.T) {
	prog := parse(t, `function add(a integer, b integer) : (integer) { return a; }`)

	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Parameters.Keys())
	assert.Equal(t, []string{"integer"}, fn.Returns)

	require.Len(t, fn.Instructions, 2)
	assert.Equal(t, ast.Retrieve, fn.Instructions[0].Kind)
	assert.Equal(t, "a", fn.Instructions[0].Name)
	assert.Equal(t, ast.Return, fn.Instructions[1].Kind)
}

// §8 Testable Property 2: argument order.
func TestInvokeArgumentOrderIsReversed(t *testing.T) {
	prog := parse(t, `function main() : () { g(1, 2, 3); }`)

	fn := prog.Functions[0]
	require.Len(t, fn.Instructions, 4)
	assert.Equal(t, ast.Integer, fn.Instructions[0].Kind)
	assert.EqualValues(t, 3, fn.Instructions[0].IntValue)
	assert.EqualValues(t, 2, fn.Instructions[1].IntValue)
	assert.EqualValues(t, 1, fn.Instructions[2].IntValue)
	assert.Equal(t, ast.Invoke, fn.Instructions[3].Kind)
	assert.Equal(t, "g", fn.Instructions[3].Name)
}

func TestAddressOfEmitsPointerNotInvoke(t *testing.T) {
	prog := parse(t, `function main() : () { variable p : *integer = &(x); }`)

	fn := prog.Functions[0]
	var kinds []ast.Kind
	for _, i := range fn.Instructions {
		kinds = append(kinds, i.Kind)
	}
	assert.Contains(t, kinds, ast.Pointer)
	for _, i := range fn.Instructions {
		assert.NotEqual(t, "&", i.Name)
	}
}

func TestVariableDeclarationAndAssignment(t *testing.T) {
	prog := parse(t, `function main() : () { variable x : integer = 5; x = 6; }`)

	fn := prog.Functions[0]
	assert.Equal(t, []string{"x"}, fn.Locals)

	require.Len(t, fn.Instructions, 5)
	assert.Equal(t, ast.Declare, fn.Instructions[0].Kind)
	assert.Equal(t, "integer", fn.Instructions[0].DeclType)
	assert.Equal(t, ast.Integer, fn.Instructions[1].Kind)
	assert.Equal(t, ast.Assign, fn.Instructions[2].Kind)
	assert.Equal(t, ast.Integer, fn.Instructions[3].Kind)
	assert.Equal(t, ast.Assign, fn.Instructions[4].Kind)
}

func TestIfEmitsConditionalJumpAndTarget(t *testing.T) {
	prog := parse(t, `function main() : () { if flag() { x(); } }`)

	fn := prog.Functions[0]
	var cj, tgt int
	for _, i := range fn.Instructions {
		if i.Kind == ast.ConditionalJump {
			cj++
			assert.False(t, i.WantsTrue)
		}
		if i.Kind == ast.Target {
			tgt++
		}
	}
	assert.Equal(t, 1, cj)
	assert.Equal(t, 1, tgt)
}

// §8 Testable Property 7: one back-edge jmp, one forward-edge
// conditional jump per while loop.
func TestWhileEmitsOneBackEdgeAndOneConditionalJump(t *testing.T) {
	prog := parse(t, `function main() : () { while cond() { body(); } }`)

	fn := prog.Functions[0]
	var jumps, condJumps, targets int
	for _, i := range fn.Instructions {
		switch i.Kind {
		case ast.Jump:
			jumps++
		case ast.ConditionalJump:
			condJumps++
		case ast.Target:
			targets++
		}
	}
	assert.Equal(t, 1, jumps)
	assert.Equal(t, 1, condJumps)
	assert.Equal(t, 2, targets)

	// Target(loop) must be the first instruction.
	assert.Equal(t, ast.Target, fn.Instructions[0].Kind)
}

func TestStructureSynthesizesThreeFunctionsPerField(t *testing.T) {
	prog := parse(t, `structure Point { x integer; y integer; }`)

	require.Len(t, prog.Structures, 1)
	assert.Equal(t, []string{"x", "y"}, prog.Structures[0].Fields.Keys())

	require.Len(t, prog.Functions, 6)

	names := make(map[string]*ast.Function, 6)
	for _, f := range prog.Functions {
		names[f.Name] = f
	}

	read, ok := names["Point->x"]
	require.True(t, ok)
	assert.Equal(t, []string{"integer"}, read.Returns)
	assert.Equal(t, ast.AccessorRead, read.Accessor.Kind)

	addr, ok := names["*Point->x"]
	require.True(t, ok)
	assert.Equal(t, []string{"*integer"}, addr.Returns)
	assert.Equal(t, ast.AccessorAddress, addr.Accessor.Kind)

	write, ok := names["Point<-y"]
	require.True(t, ok)
	assert.Empty(t, write.Returns)
	assert.Equal(t, []string{"self", "value"}, write.Parameters.Keys())
	assert.Equal(t, ast.AccessorWrite, write.Accessor.Kind)
}

func TestConstantDeclaration(t *testing.T) {
	prog := parse(t, `constant greeting : *integer = "hi";`)

	require.Len(t, prog.Constants, 1)
	c := prog.Constants[0]
	assert.Equal(t, "greeting", c.Name)
	assert.Equal(t, "*integer", c.Type)
	assert.Equal(t, token.STRING, c.Value.Type)
	assert.Equal(t, "hi", c.Value.Literal)
}

func TestReturnWithMultipleValues(t *testing.T) {
	prog := parse(t, `function pair() : (integer integer) { return 1, 2; }`)

	fn := prog.Functions[0]
	require.Len(t, fn.Instructions, 3)
	assert.Equal(t, ast.Integer, fn.Instructions[0].Kind)
	assert.Equal(t, ast.Integer, fn.Instructions[1].Kind)
	assert.Equal(t, ast.Return, fn.Instructions[2].Kind)
}
