package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "administration.perm", `
module Administration "Administration" {
  permission RolesEdit "Roles: Access to edit/modify Roles."
}`)
	writeFile(t, dir, "general.perm", `
aggregate General "General" {
  ref Administration.RolesEdit
}`)
	writeFile(t, dir, "notes.txt", "not a declaration file")

	registry, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() returned error: %v", err)
	}

	if len(registry.Modules) != 1 {
		t.Fatalf("modules = %d, want 1", len(registry.Modules))
	}
	if registry.Modules[0].Name != "Administration" {
		t.Errorf("module = %q, want Administration", registry.Modules[0].Name)
	}
	if len(registry.Aggregates) != 1 {
		t.Fatalf("aggregates = %d, want 1", len(registry.Aggregates))
	}
}

func TestLoadDir_SortedFileOrder(t *testing.T) {
	dir := t.TempDir()
	// File names deliberately out of creation order; discovery order must
	// follow sorted file names.
	writeFile(t, dir, "20_supported_person.perm", `module SupportedPerson { permission Edit }`)
	writeFile(t, dir, "10_administration.perm", `module Administration { permission RolesEdit }`)

	registry, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() returned error: %v", err)
	}

	if len(registry.Modules) != 2 {
		t.Fatalf("modules = %d, want 2", len(registry.Modules))
	}
	if registry.Modules[0].Name != "Administration" || registry.Modules[1].Name != "SupportedPerson" {
		t.Errorf("module order = [%s, %s], want [Administration, SupportedPerson]",
			registry.Modules[0].Name, registry.Modules[1].Name)
	}
}

func TestLoadDir_NoDeclarationFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "nothing here")

	if _, err := LoadDir(dir); err == nil {
		t.Error("LoadDir() = nil error, want error for directory without .perm files")
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("LoadDir() = nil error, want error for missing directory")
	}
}

func TestLoadDir_ParseErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.perm", `module {`)

	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("LoadDir() = nil error, want parse error")
	}
	if got := err.Error(); !strings.Contains(got, "broken.perm") {
		t.Errorf("error %q should name the offending file", got)
	}
}

func TestLoad_UnknownFormat(t *testing.T) {
	if _, err := Load(t.TempDir(), "toml"); err == nil {
		t.Error("Load() = nil error, want error for unknown format")
	}
}
