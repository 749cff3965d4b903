package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielcastelluccio/barelyc/lexer"
	"github.com/danielcastelluccio/barelyc/parser"
	"github.com/danielcastelluccio/barelyc/stack"
	"github.com/danielcastelluccio/barelyc/token"
)

func compile(t *testing.T, src string) string {
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

	out, err := New(prog, nil).Generate()
	require.NoError(t, err)
	return out
}

func TestPreludeAndBuiltinsAlwaysPresent(t *testing.T) {
	out := compile(t, `function main() : () { }`)

	assert.Contains(t, out, "format ELF64 executable")
	assert.Contains(t, out, "entry start")
	assert.Contains(t, out, "print_integer:")
	assert.Contains(t, out, "@print_string:")
	assert.Contains(t, out, "@length:")
}

func TestUserFunctionGetsLabelAndFrame(t *testing.T) {
	out := compile(t, `function add(a integer, b integer) : (integer) { return +(a, b); }`)

	assert.Contains(t, out, "add:\n")
	assert.Contains(t, out, "push rbp\n")
	assert.Contains(t, out, "mov rbp, rsp\n")
	assert.Contains(t, out, "call ")
}

func TestInlinePseudoOpsHaveNoCallOrFrame(t *testing.T) {
	out := compile(t, `function add(a integer, b integer) : (integer) { return +(a, b); }`)

	assert.Contains(t, out, "add rax, rbx\n")
	assert.NotContains(t, out, "call +\n")
}

func TestStructureSynthesizesThreeAccessorsPerField(t *testing.T) {
	out := compile(t, `
structure point {
	x integer;
	y integer;
}
function main() : () { }
`)

	assert.Contains(t, out, escapeName("point->x")+":")
	assert.Contains(t, out, escapeName("*point->x")+":")
	assert.Contains(t, out, escapeName("point<-x")+":")
	assert.Contains(t, out, escapeName("point->y")+":")
}

func TestConditionalJumpAndTargetLabelsMatch(t *testing.T) {
	out := compile(t, `
function choose(a boolean) : (integer) {
	if a {
		return +(1, 1);
	}
	return 0;
}
`)

	assert.Contains(t, out, "je target_0\n")
	assert.Contains(t, out, "\ntarget_0:\n")
}

func TestStringLiteralInternedAsDataLabel(t *testing.T) {
	out := compile(t, `
function main() : () {
	variable message : *any = "hello";
}
`)

	assert.Contains(t, out, `db "hello", 0`)
	assert.Contains(t, out, "segment readable writeable")
}

func TestConstantEmittedAsQword(t *testing.T) {
	out := compile(t, `constant limit : integer = 10; function main() : () { }`)

	assert.Contains(t, out, "_limit: dq 10")
}

func TestNumberSplitConstantEmittedAsTwoQwords(t *testing.T) {
	out := compile(t, `constant big : long = 12_34; function main() : () { }`)

	assert.Contains(t, out, "_big: dq 12\n        dq 34\n")
}

func TestNonMultipleOfEightFieldUsesSmallerChunks(t *testing.T) {
	out := compile(t, `
structure flags {
	on any_1;
}
function main() : () { }
`)

	assert.True(t, strings.Contains(out, "byte ["))
}

func TestReturnShuffleCapturesFrameBeforeCopy(t *testing.T) {
	shuffle := returnShuffle(16, 8)
	lines := strings.Split(strings.TrimRight(shuffle, "\n"), "\n")

	require.True(t, len(lines) >= 2)
	assert.Contains(t, lines[0], "mov r14, [rbp]")
	assert.Contains(t, lines[1], "mov r15, [rbp+8]")
	assert.Contains(t, shuffle, "mov rbp, r14")
	assert.Contains(t, shuffle, "jmp r15")
}

func TestEscapeNamePunctuation(t *testing.T) {
	assert.Equal(t, "point4562x", escapeName("point->x"))
	assert.Equal(t, "_42point4562x", escapeName("*point->x"))
}
