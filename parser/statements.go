package parser

import (
	"fmt"

	"github.com/danielcastelluccio/barelyc/ast"
	"github.com/danielcastelluccio/barelyc/token"
)

// parseBlock consumes a brace-delimited statement sequence. The current
// token must be OPEN_BRACE; the matching CLOSE_BRACE is consumed too.
func (p *Parser) parseBlock() ([]ast.Instruction, error) {
	if _, err := p.expect(token.OPEN_BRACE); err != nil {
		return nil, err
	}

	var out []ast.Instruction
	for {
		switch p.peek().Type {
		case token.CLOSE_BRACE:
			p.advance()
			return out, nil
		case token.EOF:
			return nil, fmt.Errorf("unexpected end of input inside block")
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt...)
	}
}

// parseStatement dispatches on the leading token of a single statement.
func (p *Parser) parseStatement() ([]ast.Instruction, error) {
	tok := p.peek()

	switch {
	case tok.Type == token.KEYWORD && tok.Literal == "return":
		return p.parseReturn()
	case tok.Type == token.KEYWORD && tok.Literal == "variable":
		return p.parseVariableDecl()
	case tok.Type == token.KEYWORD && tok.Literal == "if":
		return p.parseIf()
	case tok.Type == token.KEYWORD && tok.Literal == "while":
		return p.parseWhile()
	case tok.Type == token.NAME && isOperator(p.peekAt(1), "="):
		return p.parseAssignStatement()
	}

	instrs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return instrs, nil
}

// parseReturn reads `return expr, expr, ...;`.
func (p *Parser) parseReturn() ([]ast.Instruction, error) {
	p.advance() // "return"

	var out []ast.Instruction
	for p.peek().Type != token.SEMICOLON {
		e, err := p.parseExpression()
		if err != nil {
			return nil, fmt.Errorf("return statement: %w", err)
		}
		out = append(out, e...)

		if p.peek().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, fmt.Errorf("return statement: %w", err)
	}

	out = append(out, ast.NewReturnOp())
	return out, nil
}

// parseVariableDecl reads `variable name : type;` or
// `variable name : type = expr;`.
func (p *Parser) parseVariableDecl() ([]ast.Instruction, error) {
	p.advance() // "variable"

	name, err := p.expect(token.NAME)
	if err != nil {
		return nil, fmt.Errorf("variable declaration: %w", err)
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, fmt.Errorf("variable %s: %w", name.Literal, err)
	}
	vtype, err := p.expect(token.NAME)
	if err != nil {
		return nil, fmt.Errorf("variable %s: %w", name.Literal, err)
	}

	out := []ast.Instruction{ast.NewDeclare(name.Literal, vtype.Literal)}

	if isOperator(p.peek(), "=") {
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, fmt.Errorf("variable %s initializer: %w", name.Literal, err)
		}
		out = append(out, e...)
		out = append(out, ast.NewAssign(name.Literal))
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, fmt.Errorf("variable %s: %w", name.Literal, err)
	}

	return out, nil
}

// parseAssignStatement reads `name = expr;`.
func (p *Parser) parseAssignStatement() ([]ast.Instruction, error) {
	name := p.advance() // NAME
	p.advance()         // "="

	e, err := p.parseExpression()
	if err != nil {
		return nil, fmt.Errorf("assignment to %s: %w", name.Literal, err)
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, fmt.Errorf("assignment to %s: %w", name.Literal, err)
	}

	return append(e, ast.NewAssign(name.Literal)), nil
}

// parseIf reads `if expr { ... }`.
func (p *Parser) parseIf() ([]ast.Instruction, error) {
	p.advance() // "if"
	exitID := p.jumpIDs.Next()

	cond, err := p.parseExpression()
	if err != nil {
		return nil, fmt.Errorf("if condition: %w", err)
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, fmt.Errorf("if body: %w", err)
	}

	out := append([]ast.Instruction{}, cond...)
	out = append(out, ast.NewConditionalJump(false, exitID))
	out = append(out, body...)
	out = append(out, ast.NewTarget(exitID))
	return out, nil
}

// parseWhile reads `while expr { ... }`.
func (p *Parser) parseWhile() ([]ast.Instruction, error) {
	p.advance() // "while"
	loopID := p.jumpIDs.Next()
	exitID := p.jumpIDs.Next()

	out := []ast.Instruction{ast.NewTarget(loopID)}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, fmt.Errorf("while condition: %w", err)
	}
	out = append(out, cond...)
	out = append(out, ast.NewConditionalJump(false, exitID))

	body, err := p.parseBlock()
	if err != nil {
		return nil, fmt.Errorf("while body: %w", err)
	}
	out = append(out, body...)
	out = append(out, ast.NewJump(loopID))
	out = append(out, ast.NewTarget(exitID))
	return out, nil
}
