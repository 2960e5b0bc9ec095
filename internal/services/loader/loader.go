// Package loader materializes permission registries from declaration
// sources. Two input forms are supported: a directory of .perm declaration
// files, and a single YAML manifest. Both produce the same registry shape;
// semantic validation happens on the registry, not here.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/awata/permgen/internal/entities"
	"github.com/awata/permgen/internal/services/parser"
)

// Recognized source formats.
const (
	FormatDSL  = "dsl"
	FormatYAML = "yaml"
)

// Load reads permission declarations from source in the given format.
// For FormatDSL, source is a directory of .perm files; for FormatYAML it
// is a manifest file path.
func Load(source string, format string) (*entities.Registry, error) {
	switch format {
	case FormatDSL:
		return LoadDir(source)
	case FormatYAML:
		return LoadYAML(source)
	default:
		return nil, fmt.Errorf("unknown source format %q (want %q or %q)", format, FormatDSL, FormatYAML)
	}
}

// LoadDir parses every .perm file in dir, in sorted file-name order, and
// accumulates the declarations into one registry. Declaration order within
// a file is preserved, so together file order and declaration order define
// the discovery order used for emission.
func LoadDir(dir string) (*entities.Registry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	registry := entities.NewRegistry()
	found := false
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".perm") {
			continue
		}
		found = true

		path := filepath.Join(dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		decls, err := ParseDeclarations(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", de.Name(), err)
		}
		parser.Append(registry, decls)
	}

	if !found {
		return nil, fmt.Errorf("no .perm files found in %s", dir)
	}

	return registry, nil
}

// ParseDeclarations runs the lexer and parser over one declaration source
func ParseDeclarations(input string) (*parser.DeclarationsAST, error) {
	p := parser.NewParser(parser.NewLexer(input))
	decls, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse declarations: %w", err)
	}
	return decls, nil
}
