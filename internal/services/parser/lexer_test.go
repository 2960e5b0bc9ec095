package parser

import "testing"

func TestLexer_NextToken_Keywords(t *testing.T) {
	input := `module aggregate region permission ref`

	expected := []TokenType{
		TOKEN_MODULE,
		TOKEN_AGGREGATE,
		TOKEN_REGION,
		TOKEN_PERMISSION,
		TOKEN_REF,
		TOKEN_EOF,
	}

	l := NewLexer(input)
	for i, want := range expected {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if tok.Type != want {
			t.Errorf("token %d: type = %s, want %s", i, tokenNames[tok.Type], tokenNames[want])
		}
	}
}

func TestLexer_NextToken_ModuleDeclaration(t *testing.T) {
	input := `module Administration "Administration" {
  permission RolesEdit "Roles: Access to edit/modify Roles."
}`

	expected := []struct {
		tokenType TokenType
		value     string
	}{
		{TOKEN_MODULE, "module"},
		{TOKEN_IDENTIFIER, "Administration"},
		{TOKEN_STRING, "Administration"},
		{TOKEN_LBRACE, "{"},
		{TOKEN_PERMISSION, "permission"},
		{TOKEN_IDENTIFIER, "RolesEdit"},
		{TOKEN_STRING, "Roles: Access to edit/modify Roles."},
		{TOKEN_RBRACE, "}"},
		{TOKEN_EOF, ""},
	}

	l := NewLexer(input)
	for i, want := range expected {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if tok.Type != want.tokenType {
			t.Errorf("token %d: type = %s, want %s", i, tokenNames[tok.Type], tokenNames[want.tokenType])
		}
		if tok.Value != want.value {
			t.Errorf("token %d: value = %q, want %q", i, tok.Value, want.value)
		}
	}
}

func TestLexer_NextToken_RefWithDot(t *testing.T) {
	input := `ref SupportedPerson.Delete`

	expected := []struct {
		tokenType TokenType
		value     string
	}{
		{TOKEN_REF, "ref"},
		{TOKEN_IDENTIFIER, "SupportedPerson"},
		{TOKEN_DOT, "."},
		{TOKEN_IDENTIFIER, "Delete"},
		{TOKEN_EOF, ""},
	}

	l := NewLexer(input)
	for i, want := range expected {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if tok.Type != want.tokenType || tok.Value != want.value {
			t.Errorf("token %d: got %s(%q), want %s(%q)",
				i, tokenNames[tok.Type], tok.Value, tokenNames[want.tokenType], want.value)
		}
	}
}

func TestLexer_NextToken_SkipsComments(t *testing.T) {
	input := `// leading comment
module Administration { // trailing comment
}`

	expected := []TokenType{
		TOKEN_MODULE,
		TOKEN_IDENTIFIER,
		TOKEN_LBRACE,
		TOKEN_RBRACE,
		TOKEN_EOF,
	}

	l := NewLexer(input)
	for i, want := range expected {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if tok.Type != want {
			t.Errorf("token %d: type = %s, want %s", i, tokenNames[tok.Type], tokenNames[want])
		}
	}
}

func TestLexer_NextToken_UnderscoreIdentifier(t *testing.T) {
	l := NewLexer("_internal")
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != TOKEN_IDENTIFIER || tok.Value != "_internal" {
		t.Errorf("got %s(%q), want IDENTIFIER(_internal)", tokenNames[tok.Type], tok.Value)
	}
}

func TestLexer_NextToken_IllegalCharacter(t *testing.T) {
	l := NewLexer("module @")
	if _, err := l.NextToken(); err != nil {
		t.Fatalf("unexpected error on keyword: %v", err)
	}
	if _, err := l.NextToken(); err == nil {
		t.Error("NextToken() = nil error, want error for illegal character")
	}
}

func TestLexer_NextToken_UnterminatedString(t *testing.T) {
	l := NewLexer(`"never closed`)
	if _, err := l.NextToken(); err == nil {
		t.Error("NextToken() = nil error, want error for unterminated string")
	}
}

func TestLexer_NextToken_TracksLineNumbers(t *testing.T) {
	input := "module A {\npermission B\n}"

	l := NewLexer(input)
	var tokens []*Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}

	// "permission" is the fourth token and starts on line 2
	if tokens[3].Line != 2 {
		t.Errorf("permission token line = %d, want 2", tokens[3].Line)
	}
}
