package parser

import (
	"fmt"
	"strings"
)

// Formatter re-emits canonical declaration text from an AST
type Formatter struct {
	indent string
}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{
		indent: "  ",
	}
}

// Format generates a canonical declaration string from an AST
func (f *Formatter) Format(decls *DeclarationsAST) string {
	var sb strings.Builder

	blocks := 0
	for _, module := range decls.Modules {
		if blocks > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.formatModule(module))
		blocks++
	}
	for _, aggregate := range decls.Aggregates {
		if blocks > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.formatAggregate(aggregate))
		blocks++
	}

	return sb.String()
}

// formatModule generates declaration text for a module. Contiguous
// permissions sharing a region label are grouped back into one region block.
func (f *Formatter) formatModule(module *ModuleAST) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("module %s %s {\n", module.Name, quoted(displayName(module.Name, module.DisplayName))))

	openRegion := ""
	for _, perm := range module.Permissions {
		if perm.Region != openRegion {
			if openRegion != "" {
				sb.WriteString(f.indent)
				sb.WriteString("}\n")
			}
			if perm.Region != "" {
				sb.WriteString(f.indent)
				sb.WriteString(fmt.Sprintf("region %s {\n", quoted(perm.Region)))
			}
			openRegion = perm.Region
		}

		if perm.Region != "" {
			sb.WriteString(f.indent)
		}
		sb.WriteString(f.indent)
		sb.WriteString(f.formatPermission(perm))
		sb.WriteString("\n")
	}
	if openRegion != "" {
		sb.WriteString(f.indent)
		sb.WriteString("}\n")
	}

	sb.WriteString("}\n")

	return sb.String()
}

// formatPermission generates declaration text for a permission
func (f *Formatter) formatPermission(perm *PermissionAST) string {
	if perm.Description == "" {
		return fmt.Sprintf("permission %s", perm.Name)
	}
	return fmt.Sprintf("permission %s %s", perm.Name, quoted(perm.Description))
}

// formatAggregate generates declaration text for an aggregate
func (f *Formatter) formatAggregate(aggregate *AggregateAST) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("aggregate %s %s {\n", aggregate.Name, quoted(displayName(aggregate.Name, aggregate.DisplayName))))
	for _, ref := range aggregate.Refs {
		sb.WriteString(f.indent)
		sb.WriteString(fmt.Sprintf("ref %s.%s\n", ref.Module, ref.Member))
	}
	sb.WriteString("}\n")

	return sb.String()
}

// quoted wraps s in double quotes verbatim. The declaration syntax has no
// escape sequences: the lexer reads string literals as raw text up to the
// next quote, so re-emitting the raw text is the only form that parses back
// to the same value.
func quoted(s string) string {
	return `"` + s + `"`
}

// displayName falls back to the declared name when no display name was given
func displayName(name, display string) string {
	if display == "" {
		return name
	}
	return display
}
