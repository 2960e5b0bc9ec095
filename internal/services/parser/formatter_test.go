package parser

import "testing"

func TestFormatter_Format_BasicModule(t *testing.T) {
	decls := &DeclarationsAST{
		Modules: []*ModuleAST{
			{
				Name:        "Administration",
				DisplayName: "Administration",
				Permissions: []*PermissionAST{
					{Name: "RolesEdit", Description: "Roles: Access to edit/modify Roles."},
				},
			},
		},
	}

	f := NewFormatter()
	result := f.Format(decls)

	expected := `module Administration "Administration" {
  permission RolesEdit "Roles: Access to edit/modify Roles."
}
`

	if result != expected {
		t.Errorf("formatted declaration mismatch:\ngot:\n%s\n\nwant:\n%s", result, expected)
	}
}

func TestFormatter_Format_Regions(t *testing.T) {
	decls := &DeclarationsAST{
		Modules: []*ModuleAST{
			{
				Name:        "Administration",
				DisplayName: "Administration",
				Permissions: []*PermissionAST{
					{Name: "RolesView", Description: "Roles: read-only access.", Region: "Roles"},
					{Name: "RolesEdit", Description: "Roles: edit access.", Region: "Roles"},
					{Name: "LanguagesEdit", Description: "Languages: edit translations."},
				},
			},
		},
	}

	f := NewFormatter()
	result := f.Format(decls)

	expected := `module Administration "Administration" {
  region "Roles" {
    permission RolesView "Roles: read-only access."
    permission RolesEdit "Roles: edit access."
  }
  permission LanguagesEdit "Languages: edit translations."
}
`

	if result != expected {
		t.Errorf("formatted declaration mismatch:\ngot:\n%s\n\nwant:\n%s", result, expected)
	}
}

func TestFormatter_Format_Aggregate(t *testing.T) {
	decls := &DeclarationsAST{
		Modules: []*ModuleAST{
			{Name: "SupportedPerson"},
		},
		Aggregates: []*AggregateAST{
			{
				Name:        "General",
				DisplayName: "General",
				Refs: []*RefAST{
					{Module: "SupportedPerson", Member: "Delete"},
					{Module: "Administration", Member: "RolesEdit"},
				},
			},
		},
	}

	f := NewFormatter()
	result := f.Format(decls)

	expected := `module SupportedPerson "SupportedPerson" {
}

aggregate General "General" {
  ref SupportedPerson.Delete
  ref Administration.RolesEdit
}
`

	if result != expected {
		t.Errorf("formatted declaration mismatch:\ngot:\n%s\n\nwant:\n%s", result, expected)
	}
}

func TestFormatter_Format_RoundTrip(t *testing.T) {
	input := `module Administration "Administration" {
  region "Roles" {
    permission RolesEdit "Roles: Access to edit/modify Roles."
  }
  permission UsersView "Users: read-only access."
}

aggregate General "General" {
  ref Administration.RolesEdit
}
`

	p := NewParser(NewLexer(input))
	decls, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	f := NewFormatter()
	if got := f.Format(decls); got != input {
		t.Errorf("canonical input did not round-trip:\ngot:\n%s\n\nwant:\n%s", got, input)
	}
}

func TestFormatter_Format_RoundTrip_Backslashes(t *testing.T) {
	// String literals carry no escape sequences, so a backslash in a
	// description must survive format/parse cycles verbatim.
	input := `module Reports "Reports" {
  permission Export "Export to a UNC share such as \\fileserver\reports."
}
`

	p := NewParser(NewLexer(input))
	decls, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	f := NewFormatter()
	first := f.Format(decls)
	if first != input {
		t.Fatalf("backslash description did not round-trip:\ngot:\n%s\n\nwant:\n%s", first, input)
	}

	// A second cycle must be a fixed point, not double the backslashes
	p2 := NewParser(NewLexer(first))
	decls2, err := p2.Parse()
	if err != nil {
		t.Fatalf("Parse() of formatted output returned error: %v", err)
	}
	if second := f.Format(decls2); second != first {
		t.Errorf("formatting is not a fixed point:\nfirst:\n%s\n\nsecond:\n%s", first, second)
	}
}

func TestFormatter_Format_PermissionWithoutDescription(t *testing.T) {
	decls := &DeclarationsAST{
		Modules: []*ModuleAST{
			{
				Name:        "SupportedPerson",
				Permissions: []*PermissionAST{{Name: "Edit"}},
			},
		},
	}

	f := NewFormatter()
	expected := `module SupportedPerson "SupportedPerson" {
  permission Edit
}
`
	if got := f.Format(decls); got != expected {
		t.Errorf("formatted declaration mismatch:\ngot:\n%s\n\nwant:\n%s", got, expected)
	}
}
