package parser

import (
	"fmt"
	"strings"
)

// Parser parses permission declarations into an AST
type Parser struct {
	lexer   *Lexer
	current *Token
	peek    *Token
	errors  []string
}

// NewParser creates a new Parser
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{
		lexer:  lexer,
		errors: []string{},
	}

	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()

	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	tok, err := p.lexer.NextToken()
	if err != nil {
		p.errors = append(p.errors, err.Error())
		p.peek = &Token{Type: TOKEN_EOF}
	} else {
		p.peek = tok
	}
}

// currentTokenIs checks if the current token is of the given type
func (p *Parser) currentTokenIs(t TokenType) bool {
	return p.current != nil && p.current.Type == t
}

// peekTokenIs checks if the peek token is of the given type
func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peek != nil && p.peek.Type == t
}

// expectPeek checks if the next token is of the expected type and advances
func (p *Parser) expectPeek(t TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

// peekError adds an error for unexpected peek token
func (p *Parser) peekError(t TokenType) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead at %d:%d",
		tokenNames[t], tokenNames[p.peek.Type], p.peek.Line, p.peek.Column)
	p.errors = append(p.errors, msg)
}

// Parse parses the entire declaration set
func (p *Parser) Parse() (*DeclarationsAST, error) {
	decls := &DeclarationsAST{
		Modules:    []*ModuleAST{},
		Aggregates: []*AggregateAST{},
	}

	for !p.currentTokenIs(TOKEN_EOF) {
		switch {
		case p.currentTokenIs(TOKEN_MODULE):
			module := p.parseModule()
			if module != nil {
				decls.Modules = append(decls.Modules, module)
			}
			// A successful parse leaves current on the closing '}'; a failed
			// one leaves it wherever parsing stopped. Advance either way.
			p.nextToken()
		case p.currentTokenIs(TOKEN_AGGREGATE):
			aggregate := p.parseAggregate()
			if aggregate != nil {
				decls.Aggregates = append(decls.Aggregates, aggregate)
			}
			p.nextToken()
		default:
			p.errors = append(p.errors, fmt.Sprintf("unexpected token %s at %d:%d, expected 'module' or 'aggregate'",
				tokenNames[p.current.Type], p.current.Line, p.current.Column))
			p.nextToken()
		}
	}

	if len(p.errors) > 0 {
		return nil, fmt.Errorf("parse errors:\n%s", strings.Join(p.errors, "\n"))
	}

	return decls, nil
}

// parseModule parses a module declaration
func (p *Parser) parseModule() *ModuleAST {
	module := &ModuleAST{
		Permissions: []*PermissionAST{},
	}

	// Expect identifier (module name)
	if !p.expectPeek(TOKEN_IDENTIFIER) {
		return nil
	}
	module.Name = p.current.Value

	// Optional display name
	if p.peekTokenIs(TOKEN_STRING) {
		p.nextToken()
		module.DisplayName = p.current.Value
	}

	// Expect {
	if !p.expectPeek(TOKEN_LBRACE) {
		return nil
	}

	// Parse module body
	p.nextToken()
	for !p.currentTokenIs(TOKEN_RBRACE) && !p.currentTokenIs(TOKEN_EOF) {
		switch {
		case p.currentTokenIs(TOKEN_PERMISSION):
			permission := p.parsePermission("")
			if permission != nil {
				module.Permissions = append(module.Permissions, permission)
			}
		case p.currentTokenIs(TOKEN_REGION):
			permissions := p.parseRegion()
			module.Permissions = append(module.Permissions, permissions...)
		default:
			p.errors = append(p.errors, fmt.Sprintf("unexpected token %s at %d:%d, expected 'permission' or 'region'",
				tokenNames[p.current.Type], p.current.Line, p.current.Column))
		}
		p.nextToken()
	}

	if p.currentTokenIs(TOKEN_EOF) {
		p.errors = append(p.errors, fmt.Sprintf("module %s: missing closing '}'", module.Name))
		return nil
	}

	return module
}

// parseRegion parses a region block and returns its permissions with the
// region label attached
func (p *Parser) parseRegion() []*PermissionAST {
	// Expect string (region label)
	if !p.expectPeek(TOKEN_STRING) {
		return nil
	}
	label := p.current.Value

	// Expect {
	if !p.expectPeek(TOKEN_LBRACE) {
		return nil
	}

	permissions := []*PermissionAST{}
	p.nextToken()
	for !p.currentTokenIs(TOKEN_RBRACE) && !p.currentTokenIs(TOKEN_EOF) {
		if p.currentTokenIs(TOKEN_PERMISSION) {
			permission := p.parsePermission(label)
			if permission != nil {
				permissions = append(permissions, permission)
			}
		} else {
			p.errors = append(p.errors, fmt.Sprintf("unexpected token %s at %d:%d, expected 'permission'",
				tokenNames[p.current.Type], p.current.Line, p.current.Column))
		}
		p.nextToken()
	}

	if p.currentTokenIs(TOKEN_EOF) {
		p.errors = append(p.errors, fmt.Sprintf("region %q: missing closing '}'", label))
	}

	return permissions
}

// parsePermission parses a permission declaration
func (p *Parser) parsePermission(region string) *PermissionAST {
	// Expect identifier (member name)
	if !p.expectPeek(TOKEN_IDENTIFIER) {
		return nil
	}
	permission := &PermissionAST{
		Name:   p.current.Value,
		Region: region,
	}

	// Optional description
	if p.peekTokenIs(TOKEN_STRING) {
		p.nextToken()
		permission.Description = p.current.Value
	}

	return permission
}

// parseAggregate parses an aggregate declaration
func (p *Parser) parseAggregate() *AggregateAST {
	aggregate := &AggregateAST{
		Refs: []*RefAST{},
	}

	// Expect identifier (aggregate name)
	if !p.expectPeek(TOKEN_IDENTIFIER) {
		return nil
	}
	aggregate.Name = p.current.Value

	// Optional display name
	if p.peekTokenIs(TOKEN_STRING) {
		p.nextToken()
		aggregate.DisplayName = p.current.Value
	}

	// Expect {
	if !p.expectPeek(TOKEN_LBRACE) {
		return nil
	}

	// Parse aggregate body
	p.nextToken()
	for !p.currentTokenIs(TOKEN_RBRACE) && !p.currentTokenIs(TOKEN_EOF) {
		if p.currentTokenIs(TOKEN_REF) {
			ref := p.parseRef()
			if ref != nil {
				aggregate.Refs = append(aggregate.Refs, ref)
			}
		} else {
			p.errors = append(p.errors, fmt.Sprintf("unexpected token %s at %d:%d, expected 'ref'",
				tokenNames[p.current.Type], p.current.Line, p.current.Column))
		}
		p.nextToken()
	}

	if p.currentTokenIs(TOKEN_EOF) {
		p.errors = append(p.errors, fmt.Sprintf("aggregate %s: missing closing '}'", aggregate.Name))
		return nil
	}

	return aggregate
}

// parseRef parses a "ref Module.Member" declaration
func (p *Parser) parseRef() *RefAST {
	// Expect identifier (module name)
	if !p.expectPeek(TOKEN_IDENTIFIER) {
		return nil
	}
	module := p.current.Value

	// Expect .
	if !p.expectPeek(TOKEN_DOT) {
		return nil
	}

	// Expect identifier (member name)
	if !p.expectPeek(TOKEN_IDENTIFIER) {
		return nil
	}

	return &RefAST{
		Module: module,
		Member: p.current.Value,
	}
}
