package entities

import "unicode"

// PermissionEntry represents one permission identifier within a module.
// The key value is never stored on the entry; it is always derived from
// the owning module so client and server cannot drift apart.
type PermissionEntry struct {
	MemberName  string // export name in generated output, unique within the module
	Description string // human-readable text, used as documentation and UI label
	RegionLabel string // optional grouping tag for display, does not affect the value
}

// PermissionModule is a named logical grouping of permission entries.
// Modules are discovered once per generation run and immutable thereafter.
type PermissionModule struct {
	Name        string // unique across the run, identifier-safe
	DisplayName string // human-readable name for UI
	Entries     []*PermissionEntry
}

// Value returns the permission key for an entry of this module.
// The key is always "<module>:<member>".
func (m *PermissionModule) Value(e *PermissionEntry) string {
	return m.Name + ":" + e.MemberName
}

// GetEntry returns the entry with the given member name, or nil.
func (m *PermissionModule) GetEntry(member string) *PermissionEntry {
	for _, e := range m.Entries {
		if e.MemberName == member {
			return e
		}
	}
	return nil
}

// IsValidIdentifier reports whether s can be used as an export name in the
// generated output: it must start with a letter or underscore and contain
// only letters, digits, and underscores.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
