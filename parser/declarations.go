package parser

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/danielcastelluccio/barelyc/ast"
	"github.com/danielcastelluccio/barelyc/token"
)

// parseFunction reads `function Name(p1 t1, ...) : (r1 r2 ...) { ... }`.
func (p *Parser) parseFunction() (*ast.Function, error) {
	if err := p.expectKeyword("function"); err != nil {
		return nil, err
	}

	name, err := p.expect(token.NAME)
	if err != nil {
		return nil, fmt.Errorf("function declaration: %w", err)
	}

	if _, err := p.expect(token.OPEN_PAREN); err != nil {
		return nil, fmt.Errorf("function %s: %w", name.Literal, err)
	}

	params := ast.NewOrderedMap()
	for p.peek().Type != token.CLOSE_PAREN {
		pname, err := p.expect(token.NAME)
		if err != nil {
			return nil, fmt.Errorf("function %s: parameter name: %w", name.Literal, err)
		}
		ptype, err := p.expect(token.NAME)
		if err != nil {
			return nil, fmt.Errorf("function %s: parameter %s: type: %w", name.Literal, pname.Literal, err)
		}
		params.Set(pname.Literal, ptype.Literal)

		if p.peek().Type == token.COMMA {
			p.advance()
		}
	}
	p.advance() // CLOSE_PAREN

	if _, err := p.expect(token.COLON); err != nil {
		return nil, fmt.Errorf("function %s: %w", name.Literal, err)
	}
	if _, err := p.expect(token.OPEN_PAREN); err != nil {
		return nil, fmt.Errorf("function %s: %w", name.Literal, err)
	}

	var returns []string
	for p.peek().Type != token.CLOSE_PAREN {
		rtype, err := p.expect(token.NAME)
		if err != nil {
			return nil, fmt.Errorf("function %s: return type: %w", name.Literal, err)
		}
		returns = append(returns, rtype.Literal)

		if p.peek().Type == token.COMMA {
			p.advance()
		}
	}
	p.advance() // CLOSE_PAREN

	body, err := p.parseBlock()
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", name.Literal, err)
	}

	return &ast.Function{
		Name:         name.Literal,
		Parameters:   params,
		Returns:      returns,
		Instructions: body,
	}, nil
}

// parseStructure reads `structure Name { field type; ... }` and
// synthesizes its three accessor/mutator functions per field (§4.4).
func (p *Parser) parseStructure() (*ast.Structure, []*ast.Function, error) {
	if err := p.expectKeyword("structure"); err != nil {
		return nil, nil, err
	}

	name, err := p.expect(token.NAME)
	if err != nil {
		return nil, nil, fmt.Errorf("structure declaration: %w", err)
	}

	if _, err := p.expect(token.OPEN_BRACE); err != nil {
		return nil, nil, fmt.Errorf("structure %s: %w", name.Literal, err)
	}

	fields := ast.NewOrderedMap()
	for p.peek().Type != token.CLOSE_BRACE {
		fname, err := p.expect(token.NAME)
		if err != nil {
			return nil, nil, fmt.Errorf("structure %s: field name: %w", name.Literal, err)
		}
		ftype, err := p.expect(token.NAME)
		if err != nil {
			return nil, nil, fmt.Errorf("structure %s: field %s: type: %w", name.Literal, fname.Literal, err)
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, nil, fmt.Errorf("structure %s: field %s: %w", name.Literal, fname.Literal, err)
		}
		fields.Set(fname.Literal, ftype.Literal)
	}
	p.advance() // CLOSE_BRACE

	structure := &ast.Structure{Name: name.Literal, Fields: fields}
	return structure, synthesizeAccessors(structure), nil
}

// synthesizeAccessors builds the three synthetic functions per field:
// S->F (read), *S->F (address-of field), S<-F (write). The per-field
// list is order-preserving, since accessor labels must come out in
// field declaration order.
func synthesizeAccessors(s *ast.Structure) []*ast.Function {
	return lo.FlatMap(s.Fields.Keys(), func(field string, _ int) []*ast.Function {
		fieldType, _ := s.Fields.Get(field)
		self := ast.PointerTo(s.Name)

		readParams := ast.NewOrderedMap()
		readParams.Set("self", self)

		addrParams := ast.NewOrderedMap()
		addrParams.Set("self", self)

		writeParams := ast.NewOrderedMap()
		writeParams.Set("self", self)
		writeParams.Set("value", fieldType)

		return []*ast.Function{
			{
				Name:       s.Name + "->" + field,
				Parameters: readParams,
				Returns:    []string{fieldType},
				Accessor:   &ast.Accessor{Structure: s.Name, Field: field, Kind: ast.AccessorRead},
			},
			{
				Name:       "*" + s.Name + "->" + field,
				Parameters: addrParams,
				Returns:    []string{ast.PointerTo(fieldType)},
				Accessor:   &ast.Accessor{Structure: s.Name, Field: field, Kind: ast.AccessorAddress},
			},
			{
				Name:       s.Name + "<-" + field,
				Parameters: writeParams,
				Returns:    nil,
				Accessor:   &ast.Accessor{Structure: s.Name, Field: field, Kind: ast.AccessorWrite},
			},
		}
	})
}

// parseConstant reads `constant Name : type = literal;`.
func (p *Parser) parseConstant() (*ast.Constant, error) {
	if err := p.expectKeyword("constant"); err != nil {
		return nil, err
	}

	name, err := p.expect(token.NAME)
	if err != nil {
		return nil, fmt.Errorf("constant declaration: %w", err)
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, fmt.Errorf("constant %s: %w", name.Literal, err)
	}
	ctype, err := p.expect(token.NAME)
	if err != nil {
		return nil, fmt.Errorf("constant %s: %w", name.Literal, err)
	}

	eq := p.advance()
	if !isOperator(eq, "=") {
		return nil, fmt.Errorf("constant %s: expected '=', found %s %q", name.Literal, eq.Type, eq.Literal)
	}

	value := p.advance()
	switch value.Type {
	case token.STRING, token.INTEGER, token.BOOLEAN, token.NUMBER_SPLIT:
		// ok
	default:
		return nil, fmt.Errorf("constant %s: expected a literal value, found %s %q", name.Literal, value.Type, value.Literal)
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, fmt.Errorf("constant %s: %w", name.Literal, err)
	}

	return &ast.Constant{Name: name.Literal, Type: ctype.Literal, Value: value}, nil
}
