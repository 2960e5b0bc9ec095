package parser

// DeclarationsAST represents one parsed set of permission declarations
type DeclarationsAST struct {
	Modules    []*ModuleAST
	Aggregates []*AggregateAST
}

// ModuleAST represents a module declaration in the AST
type ModuleAST struct {
	Name        string
	DisplayName string           // quoted display name, empty when omitted
	Permissions []*PermissionAST // declaration order, regions flattened
}

// PermissionAST represents a permission declaration in the AST
type PermissionAST struct {
	Name        string
	Description string // quoted description, empty when omitted
	Region      string // enclosing region label, empty outside regions
}

// AggregateAST represents an aggregate declaration in the AST
type AggregateAST struct {
	Name        string
	DisplayName string
	Refs        []*RefAST
}

// RefAST represents a "ref Module.Member" declaration in the AST
type RefAST struct {
	Module string
	Member string
}
