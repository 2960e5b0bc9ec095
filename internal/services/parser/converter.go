package parser

import (
	"github.com/awata/permgen/internal/entities"
)

// Append converts a parsed declaration set and appends it to a registry.
// Declarations from several source files accumulate into one registry in
// discovery order; semantic validation happens on the registry afterwards,
// not here.
func Append(registry *entities.Registry, decls *DeclarationsAST) {
	for _, m := range decls.Modules {
		registry.AddModule(astToModule(m))
	}
	for _, a := range decls.Aggregates {
		registry.AddAggregate(astToAggregate(a))
	}
}

// ASTToRegistry converts a single declaration set into a fresh registry
func ASTToRegistry(decls *DeclarationsAST) *entities.Registry {
	registry := entities.NewRegistry()
	Append(registry, decls)
	return registry
}

// astToModule converts a module AST node into a PermissionModule
func astToModule(m *ModuleAST) *entities.PermissionModule {
	module := &entities.PermissionModule{
		Name:        m.Name,
		DisplayName: m.DisplayName,
		Entries:     make([]*entities.PermissionEntry, 0, len(m.Permissions)),
	}
	if module.DisplayName == "" {
		module.DisplayName = m.Name
	}

	for _, perm := range m.Permissions {
		module.Entries = append(module.Entries, &entities.PermissionEntry{
			MemberName:  perm.Name,
			Description: perm.Description,
			RegionLabel: perm.Region,
		})
	}

	return module
}

// astToAggregate converts an aggregate AST node into an AggregateModule
func astToAggregate(a *AggregateAST) *entities.AggregateModule {
	aggregate := &entities.AggregateModule{
		Name:        a.Name,
		DisplayName: a.DisplayName,
		Refs:        make([]*entities.AggregateRef, 0, len(a.Refs)),
	}
	if aggregate.DisplayName == "" {
		aggregate.DisplayName = a.Name
	}

	for _, ref := range a.Refs {
		aggregate.Refs = append(aggregate.Refs, &entities.AggregateRef{
			Module: ref.Module,
			Member: ref.Member,
		})
	}

	return aggregate
}
