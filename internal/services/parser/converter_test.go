package parser

import (
	"testing"

	"github.com/awata/permgen/internal/entities"
)

func TestASTToRegistry(t *testing.T) {
	decls := &DeclarationsAST{
		Modules: []*ModuleAST{
			{
				Name:        "Administration",
				DisplayName: "Administration",
				Permissions: []*PermissionAST{
					{Name: "RolesEdit", Description: "Roles: Access to edit/modify Roles.", Region: "Roles"},
					{Name: "UsersView", Description: "Users: read-only access."},
				},
			},
		},
		Aggregates: []*AggregateAST{
			{
				Name: "General",
				Refs: []*RefAST{
					{Module: "Administration", Member: "RolesEdit"},
				},
			},
		},
	}

	registry := ASTToRegistry(decls)

	if len(registry.Modules) != 1 {
		t.Fatalf("modules = %d, want 1", len(registry.Modules))
	}
	module := registry.Modules[0]
	if module.Name != "Administration" || module.DisplayName != "Administration" {
		t.Errorf("module = %s (%s), want Administration (Administration)", module.Name, module.DisplayName)
	}
	if len(module.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(module.Entries))
	}

	entry := module.Entries[0]
	if entry.MemberName != "RolesEdit" || entry.RegionLabel != "Roles" {
		t.Errorf("entry 0 = %s (region %q), want RolesEdit (region Roles)", entry.MemberName, entry.RegionLabel)
	}
	if got := module.Value(entry); got != "Administration:RolesEdit" {
		t.Errorf("derived value = %q, want %q", got, "Administration:RolesEdit")
	}

	if len(registry.Aggregates) != 1 {
		t.Fatalf("aggregates = %d, want 1", len(registry.Aggregates))
	}
	aggregate := registry.Aggregates[0]
	if aggregate.Refs[0].Module != "Administration" || aggregate.Refs[0].Member != "RolesEdit" {
		t.Errorf("ref = %s, want Administration.RolesEdit", aggregate.Refs[0].Qualified())
	}
}

func TestASTToRegistry_DisplayNameFallback(t *testing.T) {
	decls := &DeclarationsAST{
		Modules:    []*ModuleAST{{Name: "SupportedPerson"}},
		Aggregates: []*AggregateAST{{Name: "General"}},
	}

	registry := ASTToRegistry(decls)

	if got := registry.Modules[0].DisplayName; got != "SupportedPerson" {
		t.Errorf("module display name = %q, want fallback to name", got)
	}
	if got := registry.Aggregates[0].DisplayName; got != "General" {
		t.Errorf("aggregate display name = %q, want fallback to name", got)
	}
}

func TestAppend_AccumulatesAcrossFiles(t *testing.T) {
	registry := entities.NewRegistry()

	Append(registry, &DeclarationsAST{
		Modules: []*ModuleAST{{Name: "SupportedPerson"}},
	})
	Append(registry, &DeclarationsAST{
		Modules:    []*ModuleAST{{Name: "Administration"}},
		Aggregates: []*AggregateAST{{Name: "General"}},
	})

	if len(registry.Modules) != 2 || len(registry.Aggregates) != 1 {
		t.Fatalf("registry = %d modules, %d aggregates; want 2 and 1",
			len(registry.Modules), len(registry.Aggregates))
	}
	// Discovery order across files must be preserved
	if registry.Modules[0].Name != "SupportedPerson" || registry.Modules[1].Name != "Administration" {
		t.Errorf("module order = [%s, %s], want [SupportedPerson, Administration]",
			registry.Modules[0].Name, registry.Modules[1].Name)
	}
}
