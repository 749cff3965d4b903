// Package parser implements the recursive-descent parser described in
// §4.2: an explicit integer cursor over the token stream, one function
// per grammar production, building the ast.Program model.
//
// The statement grammar (return/variable/if/while/assignment/invocation)
// only occurs inside a brace-delimited body - a function body, an if
// body, or a while body - so, unlike the original Python prototype's
// single flat top-level loop, the top level here only ever dispatches on
// function/structure/constant and recurses into parseBlock for bodies.
package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/danielcastelluccio/barelyc/ast"
	"github.com/danielcastelluccio/barelyc/stack"
	"github.com/danielcastelluccio/barelyc/token"
)

// Parser holds the token stream and cursor.
type Parser struct {
	tokens []token.Token
	pos    int

	jumpIDs *stack.Counter
	log     *logrus.Logger
}

// New creates a Parser over a complete token stream (the concatenation
// of every source file's tokens, in file order) and a jump-id counter
// scoped to the entire compilation.
func New(tokens []token.Token, jumpIDs *stack.Counter, log *logrus.Logger) *Parser {
	if log == nil {
		log = logrus.New()
	}
	return &Parser{tokens: tokens, jumpIDs: jumpIDs, log: log}
}

// Parse consumes the whole token stream, returning the frozen program
// model.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}

	for p.peek().Type != token.EOF {
		tok := p.peek()

		switch {
		case tok.Type == token.KEYWORD && tok.Literal == "function":
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			prog.Functions = append(prog.Functions, fn)

		case tok.Type == token.KEYWORD && tok.Literal == "structure":
			structure, accessors, err := p.parseStructure()
			if err != nil {
				return nil, err
			}
			prog.Structures = append(prog.Structures, structure)
			prog.Functions = append(prog.Functions, accessors...)

		case tok.Type == token.KEYWORD && tok.Literal == "constant":
			constant, err := p.parseConstant()
			if err != nil {
				return nil, err
			}
			prog.Constants = append(prog.Constants, constant)

		default:
			return nil, fmt.Errorf("unexpected top-level token %s %q", tok.Type, tok.Literal)
		}
	}

	for _, fn := range prog.Functions {
		attachLocals(fn)
	}

	p.log.WithFields(logrus.Fields{
		"functions":  len(prog.Functions),
		"structures": len(prog.Structures),
		"constants":  len(prog.Constants),
	}).Debug("parse complete")

	return prog, nil
}

// attachLocals is the locals post-pass of §4.2: every Declare name not
// yet in Locals is appended, in first-Declare order.
func attachLocals(fn *ast.Function) {
	seen := make(map[string]bool, len(fn.Locals))
	for _, n := range fn.Locals {
		seen[n] = true
	}
	for _, instr := range fn.Instructions {
		if instr.Kind != ast.Declare {
			continue
		}
		if seen[instr.Name] {
			continue
		}
		seen[instr.Name] = true
		fn.Locals = append(fn.Locals, instr.Name)
	}
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[i]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the next token, requiring it to have the given type.
func (p *Parser) expect(t token.Type) (token.Token, error) {
	tok := p.peek()
	if tok.Type != t {
		return tok, fmt.Errorf("expected %s, found %s %q", t, tok.Type, tok.Literal)
	}
	return p.advance(), nil
}

// expectKeyword consumes the next token, requiring it to be the named
// keyword.
func (p *Parser) expectKeyword(word string) error {
	tok := p.peek()
	if tok.Type != token.KEYWORD || tok.Literal != word {
		return fmt.Errorf("expected keyword %q, found %s %q", word, tok.Type, tok.Literal)
	}
	p.advance()
	return nil
}

// isOperator reports whether tok is a Name token carrying the given
// punctuation operator - "=" has no dedicated token type, since '='
// is not one of the scanner's delimiter characters (§4.1).
func isOperator(tok token.Token, op string) bool {
	return tok.Type == token.NAME && tok.Literal == op
}
