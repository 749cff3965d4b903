package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danielcastelluccio/barelyc/ast"
	"github.com/danielcastelluccio/barelyc/token"
)

// dataSegment emits the readable data segment of §4.4 items 5 and 6:
// one NUL-terminated `db` entry per interned string literal, followed
// by one `dq` entry per declared Constant.
func (g *Generator) dataSegment() (string, error) {
	var out strings.Builder
	out.WriteString("segment readable writeable\n\n")

	// Constants are rendered first so that the string blobs they intern
	// are among the strings written below.
	var constants strings.Builder
	for _, c := range g.prog.Constants {
		line, err := g.constantLine(c)
		if err != nil {
			return "", fmt.Errorf("constant %s: %w", c.Name, err)
		}
		constants.WriteString(line)
	}

	for _, s := range g.strings {
		fmt.Fprintf(&out, "%s: db %s, 0\n", s.label, escapeASCIZ(s.value))
	}

	out.WriteString(constants.String())

	return out.String(), nil
}

// constantLine renders a Constant's value_token as one or more `dq`
// directives at its label: the literal itself for integer/boolean
// tokens, the address of a freshly interned string blob for a string
// token, or the two halves of a NumberSplit literal laid out low-word
// first, matching the order `ast.Long`'s two pushes leave on the stack
// (Retrieve's chunked copy reads this blob byte-for-byte).
func (g *Generator) constantLine(c *ast.Constant) (string, error) {
	label := "_" + escapeName(c.Name)

	switch c.Value.Type {
	case token.INTEGER:
		return fmt.Sprintf("%s: dq %d\n", label, c.Value.Integer), nil
	case token.BOOLEAN:
		v := 0
		if c.Value.Boolean {
			v = 1
		}
		return fmt.Sprintf("%s: dq %d\n", label, v), nil
	case token.STRING:
		return fmt.Sprintf("%s: dq %s\n", label, g.internString(c.Value.Literal)), nil
	case token.NUMBER_SPLIT:
		return fmt.Sprintf("%s: dq %d\n        dq %d\n", label, c.Value.SplitA, c.Value.SplitB), nil
	default:
		return "", fmt.Errorf("unsupported constant literal kind %q", c.Value.Type)
	}
}

// escapeASCIZ renders s as a FASM db-directive string literal. The
// source language's lexer collects everything between a pair of quotes
// verbatim (§4.1), and FASM copies quoted text byte for byte, so the
// literal is split around the bytes a quoted FASM string cannot hold -
// the quote itself and control characters such as newline - and each of
// those is emitted as its decimal byte value.
func escapeASCIZ(s string) string {
	var parts []string
	run := ""
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '"' || c < 0x20 {
			if run != "" {
				parts = append(parts, `"`+run+`"`)
				run = ""
			}
			parts = append(parts, strconv.Itoa(int(c)))
			continue
		}
		run += s[i : i+1]
	}
	if run != "" || len(parts) == 0 {
		parts = append(parts, `"`+run+`"`)
	}
	return strings.Join(parts, ", ")
}
