// Package emitter renders permission modules as client-side TypeScript
// sources. Output is fully deterministic: identical input always renders
// byte-identical text, so reruns of the generator can be diffed or
// verified in CI.
package emitter

import (
	"fmt"
	"strings"

	"github.com/awata/permgen/internal/entities"
)

// TypeScript renders permission modules as TypeScript namespace files
type TypeScript struct {
	rootNamespace string
	indent        string
}

// NewTypeScript creates a TypeScript emitter. Generated namespaces have
// the form "<rootNamespace>.PermissionKeys.<Module>"; rootNamespace
// defaults to "App" when empty.
func NewTypeScript(rootNamespace string) *TypeScript {
	if rootNamespace == "" {
		rootNamespace = "App"
	}
	return &TypeScript{
		rootNamespace: rootNamespace,
		indent:        "    ",
	}
}

// FileName returns the output file name for a module name
func (ts *TypeScript) FileName(moduleName string) string {
	return moduleName + ".ts"
}

// Namespace returns the fully qualified namespace for a module name
func (ts *TypeScript) Namespace(moduleName string) string {
	return ts.rootNamespace + ".PermissionKeys." + moduleName
}

// EmitModule renders one source module: a file header, a single namespace
// block, and one exported string constant per entry carrying the entry's
// description as a doc comment. Contiguous entries sharing a region label
// are wrapped in region markers.
func (ts *TypeScript) EmitModule(m *entities.PermissionModule) string {
	var blocks []string

	open := ""
	for _, e := range m.Entries {
		if e.RegionLabel != open {
			if open != "" {
				blocks = append(blocks, ts.indent+"//#endregion "+open)
			}
			if e.RegionLabel != "" {
				blocks = append(blocks, ts.indent+"//#region "+e.RegionLabel)
			}
			open = e.RegionLabel
		}
		blocks = append(blocks, ts.constant(e.Description, e.MemberName, fmt.Sprintf("%q", m.Value(e))))
	}
	if open != "" {
		blocks = append(blocks, ts.indent+"//#endregion "+open)
	}

	return ts.file(m.Name, m.DisplayName, blocks)
}

// EmitAggregate renders an aggregate module. Its constants alias the
// constants of the source modules instead of repeating literal values, so
// the generated files carry each key exactly once. Every ref must resolve;
// validation runs before emission, so a failure here means the registry
// was never validated.
func (ts *TypeScript) EmitAggregate(registry *entities.Registry, a *entities.AggregateModule) (string, error) {
	var blocks []string

	for _, ref := range a.Refs {
		module, entry := registry.Resolve(ref)
		if entry == nil {
			return "", &entities.ValidationError{
				Kind:   entities.ErrUndefinedReference,
				Module: a.Name,
				Member: ref.Member,
				Detail: fmt.Sprintf("reference %s does not resolve to a declared permission", ref.Qualified()),
			}
		}
		alias := ts.Namespace(module.Name) + "." + entry.MemberName
		blocks = append(blocks, ts.constant(entry.Description, ref.Member, alias))
	}

	return ts.file(a.Name, a.DisplayName, blocks), nil
}

// constant renders one exported constant with an optional doc comment
func (ts *TypeScript) constant(description, member, value string) string {
	var sb strings.Builder
	if description != "" {
		sb.WriteString(ts.indent)
		sb.WriteString("/** ")
		sb.WriteString(description)
		sb.WriteString(" */\n")
	}
	sb.WriteString(ts.indent)
	sb.WriteString(fmt.Sprintf("export const %s = %s;", member, value))
	return sb.String()
}

// file assembles the header, namespace block, and constant blocks
func (ts *TypeScript) file(name, displayName string, blocks []string) string {
	var sb strings.Builder

	sb.WriteString("// <auto-generated>\n")
	sb.WriteString(fmt.Sprintf("// Permission keys for the %s module (%q).\n", name, displayName))
	sb.WriteString("// Generated by permgen from the server-side permission declarations.\n")
	sb.WriteString("// Do not edit; changes are overwritten on the next run.\n")
	sb.WriteString("// </auto-generated>\n")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("namespace %s {\n", ts.Namespace(name)))
	if len(blocks) > 0 {
		sb.WriteString(strings.Join(blocks, "\n\n"))
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	return sb.String()
}
