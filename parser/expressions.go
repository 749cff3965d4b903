package parser

import (
	"fmt"

	"github.com/danielcastelluccio/barelyc/ast"
	"github.com/danielcastelluccio/barelyc/token"
)

// addressOfNames are the pseudo-function spellings that mean "address
// of the single argument" instead of an ordinary call (§4.2
// Address-of).
var addressOfNames = map[string]bool{"&": true, "ptr": true}

// parseExpression parses one atomic form or invocation: a literal, a
// bare name (Retrieve), or name(args...).
func (p *Parser) parseExpression() ([]ast.Instruction, error) {
	tok := p.peek()

	switch tok.Type {
	case token.NAME:
		p.advance()
		if p.peek().Type == token.OPEN_PAREN {
			return p.parseInvoke(tok.Literal)
		}
		return []ast.Instruction{ast.NewRetrieve(tok.Literal)}, nil

	case token.STRING:
		p.advance()
		return []ast.Instruction{ast.NewString(tok.Literal)}, nil

	case token.INTEGER:
		p.advance()
		return []ast.Instruction{ast.NewInteger(tok.Integer)}, nil

	case token.BOOLEAN:
		p.advance()
		return []ast.Instruction{ast.NewBoolean(tok.Boolean)}, nil

	case token.NUMBER_SPLIT:
		p.advance()
		return []ast.Instruction{ast.NewLong(tok.SplitA, tok.SplitB)}, nil
	}

	return nil, fmt.Errorf("expected an expression, found %s %q", tok.Type, tok.Literal)
}

// parseInvoke reads the "(args...)" of a call already positioned at the
// opening parenthesis, lowering argument order per §4.2: the last
// argument's instructions are pushed first, the first argument's last,
// so the first declared parameter ends up on top of the operand stack.
//
// The pseudo-function "&" (or "ptr") is not a call at all: it emits
// Pointer instead of Invoke, promoting the preceding value to an
// address (§4.2 Address-of).
func (p *Parser) parseInvoke(name string) ([]ast.Instruction, error) {
	p.advance() // OPEN_PAREN

	var args [][]ast.Instruction
	for p.peek().Type != token.CLOSE_PAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, fmt.Errorf("call to %s: argument: %w", name, err)
		}
		args = append(args, arg)

		if p.peek().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(token.CLOSE_PAREN); err != nil {
		return nil, fmt.Errorf("call to %s: %w", name, err)
	}

	var out []ast.Instruction
	for i := len(args) - 1; i >= 0; i-- {
		out = append(out, args[i]...)
	}

	if addressOfNames[name] {
		out = append(out, ast.NewPointerOp())
	} else {
		out = append(out, ast.NewInvoke(name))
	}

	return out, nil
}
