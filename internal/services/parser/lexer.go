package parser

import (
	"fmt"
	"unicode"
)

// TokenType represents the type of a token
type TokenType int

const (
	TOKEN_ILLEGAL TokenType = iota
	TOKEN_EOF

	// Identifiers and literals
	TOKEN_IDENTIFIER
	TOKEN_STRING // String literals (quoted)

	// Keywords
	TOKEN_MODULE
	TOKEN_AGGREGATE
	TOKEN_REGION
	TOKEN_PERMISSION
	TOKEN_REF

	// Delimiters
	TOKEN_LBRACE
	TOKEN_RBRACE
	TOKEN_DOT
)

var tokenNames = map[TokenType]string{
	TOKEN_ILLEGAL:    "ILLEGAL",
	TOKEN_EOF:        "EOF",
	TOKEN_IDENTIFIER: "IDENTIFIER",
	TOKEN_STRING:     "STRING",
	TOKEN_MODULE:     "module",
	TOKEN_AGGREGATE:  "aggregate",
	TOKEN_REGION:     "region",
	TOKEN_PERMISSION: "permission",
	TOKEN_REF:        "ref",
	TOKEN_LBRACE:     "{",
	TOKEN_RBRACE:     "}",
	TOKEN_DOT:        ".",
}

var keywords = map[string]TokenType{
	"module":     TOKEN_MODULE,
	"aggregate":  TOKEN_AGGREGATE,
	"region":     TOKEN_REGION,
	"permission": TOKEN_PERMISSION,
	"ref":        TOKEN_REF,
}

// Token represents a lexical token
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}

// String returns a string representation of the token
func (t *Token) String() string {
	typeName := tokenNames[t.Type]
	if typeName == "" {
		typeName = fmt.Sprintf("UNKNOWN(%d)", t.Type)
	}
	return fmt.Sprintf("%s(%s) at %d:%d", typeName, t.Value, t.Line, t.Column)
}

// Lexer performs lexical analysis of permission declaration files
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

// NewLexer creates a new Lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment skips single-line comments starting with //
func (l *Lexer) skipComment() {
	if l.ch == '/' && l.peekChar() == '/' {
		// Skip until end of line
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString reads a string literal enclosed in quotes
func (l *Lexer) readString() string {
	position := l.position + 1 // Skip opening quote
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
	}
	return l.input[position:l.position]
}

// NextToken returns the next token
func (l *Lexer) NextToken() (*Token, error) {
	// Skip whitespace and comments in a loop
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			l.skipComment()
		} else {
			break
		}
	}

	var tok *Token
	line := l.line
	column := l.column

	switch l.ch {
	case '{':
		tok = &Token{Type: TOKEN_LBRACE, Value: "{", Line: line, Column: column}
		l.readChar()
	case '}':
		tok = &Token{Type: TOKEN_RBRACE, Value: "}", Line: line, Column: column}
		l.readChar()
	case '.':
		tok = &Token{Type: TOKEN_DOT, Value: ".", Line: line, Column: column}
		l.readChar()
	case '"':
		value := l.readString()
		if l.ch == 0 {
			return nil, fmt.Errorf("unterminated string literal at %d:%d", line, column)
		}
		tok = &Token{Type: TOKEN_STRING, Value: value, Line: line, Column: column}
		l.readChar() // Skip closing quote
	case 0:
		tok = &Token{Type: TOKEN_EOF, Value: "", Line: line, Column: column}
	default:
		if isLetter(l.ch) || l.ch == '_' {
			value := l.readIdentifier()
			tokenType := TOKEN_IDENTIFIER
			if kw, ok := keywords[value]; ok {
				tokenType = kw
			}
			tok = &Token{Type: tokenType, Value: value, Line: line, Column: column}
			return tok, nil
		}
		return nil, fmt.Errorf("illegal character '%c' at %d:%d", l.ch, line, column)
	}

	return tok, nil
}

// isLetter checks if a character is a letter
func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

// isDigit checks if a character is a digit
func isDigit(ch byte) bool {
	return unicode.IsDigit(rune(ch))
}
