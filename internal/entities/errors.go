package entities

import (
	"errors"
	"fmt"
)

// Validation error kinds. Every validation failure wraps exactly one of
// these, so callers can classify failures with errors.Is.
var (
	// ErrDuplicateKey indicates two entries resolve to the same permission
	// key value, or a name is declared twice at the same scope.
	ErrDuplicateKey = errors.New("duplicate permission key")

	// ErrInvalidIdentifier indicates a module or member name cannot be used
	// as an export identifier in the generated output.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrUndefinedReference indicates an aggregate references a permission
	// that no source module defines.
	ErrUndefinedReference = errors.New("undefined permission reference")
)

// ValidationError reports a single validation failure together with the
// module and member it was detected on.
type ValidationError struct {
	Kind   error  // one of ErrDuplicateKey, ErrInvalidIdentifier, ErrUndefinedReference
	Module string // module name, empty when not tied to a module
	Member string // member name, empty when not tied to an entry
	Detail string
}

// Error returns a human-readable description of the failure.
func (e *ValidationError) Error() string {
	switch {
	case e.Module != "" && e.Member != "":
		return fmt.Sprintf("%v: module %s, member %s: %s", e.Kind, e.Module, e.Member, e.Detail)
	case e.Module != "":
		return fmt.Sprintf("%v: module %s: %s", e.Kind, e.Module, e.Detail)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
}

// Unwrap exposes the error kind for errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}
