package entities

import (
	"errors"
	"fmt"
)

// Registry holds every module discovered in one generation run. It is the
// explicit registration structure the generator works from: source modules
// and aggregates are kept in discovery order, and aggregates are always
// emitted after all source modules so their references resolve against
// output that already exists.
type Registry struct {
	Modules    []*PermissionModule
	Aggregates []*AggregateModule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		Modules:    []*PermissionModule{},
		Aggregates: []*AggregateModule{},
	}
}

// AddModule appends a source module in discovery order.
func (r *Registry) AddModule(m *PermissionModule) {
	r.Modules = append(r.Modules, m)
}

// AddAggregate appends an aggregate module in discovery order.
func (r *Registry) AddAggregate(a *AggregateModule) {
	r.Aggregates = append(r.Aggregates, a)
}

// GetModule returns the source module with the given name, or nil.
func (r *Registry) GetModule(name string) *PermissionModule {
	for _, m := range r.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Resolve returns the source module and entry an aggregate ref points at,
// or nil, nil when the reference does not exist.
func (r *Registry) Resolve(ref *AggregateRef) (*PermissionModule, *PermissionEntry) {
	module := r.GetModule(ref.Module)
	if module == nil {
		return nil, nil
	}
	entry := module.GetEntry(ref.Member)
	if entry == nil {
		return nil, nil
	}
	return module, entry
}

// Validate runs the full pre-emission validation pass: module and member
// names must be usable as export identifiers, key values must be unique
// across all source modules, and every aggregate ref must resolve to a
// defined entry. All failures are collected and returned together; any
// error means no output may be written.
func (r *Registry) Validate() error {
	var errs []error

	moduleNames := make(map[string]bool)
	for _, m := range r.Modules {
		if !IsValidIdentifier(m.Name) {
			errs = append(errs, &ValidationError{
				Kind:   ErrInvalidIdentifier,
				Module: m.Name,
				Detail: fmt.Sprintf("module name %q is not a valid identifier", m.Name),
			})
		}
		if moduleNames[m.Name] {
			errs = append(errs, &ValidationError{
				Kind:   ErrDuplicateKey,
				Module: m.Name,
				Detail: fmt.Sprintf("module %q is declared more than once", m.Name),
			})
		}
		moduleNames[m.Name] = true
	}

	// value -> owning module, for duplicate detection across all modules
	values := make(map[string]string)
	for _, m := range r.Modules {
		members := make(map[string]bool)
		for _, e := range m.Entries {
			if !IsValidIdentifier(e.MemberName) {
				errs = append(errs, &ValidationError{
					Kind:   ErrInvalidIdentifier,
					Module: m.Name,
					Member: e.MemberName,
					Detail: fmt.Sprintf("member name %q is not a valid identifier", e.MemberName),
				})
				continue
			}
			if members[e.MemberName] {
				errs = append(errs, &ValidationError{
					Kind:   ErrDuplicateKey,
					Module: m.Name,
					Member: e.MemberName,
					Detail: fmt.Sprintf("member %q is declared more than once", e.MemberName),
				})
				continue
			}
			members[e.MemberName] = true

			value := m.Value(e)
			if owner, ok := values[value]; ok {
				errs = append(errs, &ValidationError{
					Kind:   ErrDuplicateKey,
					Module: m.Name,
					Member: e.MemberName,
					Detail: fmt.Sprintf("value %q already declared by module %s", value, owner),
				})
				continue
			}
			values[value] = m.Name
		}
	}

	for _, a := range r.Aggregates {
		if !IsValidIdentifier(a.Name) {
			errs = append(errs, &ValidationError{
				Kind:   ErrInvalidIdentifier,
				Module: a.Name,
				Detail: fmt.Sprintf("aggregate name %q is not a valid identifier", a.Name),
			})
		}
		if moduleNames[a.Name] {
			errs = append(errs, &ValidationError{
				Kind:   ErrDuplicateKey,
				Module: a.Name,
				Detail: fmt.Sprintf("aggregate %q conflicts with another module", a.Name),
			})
		}
		moduleNames[a.Name] = true

		members := make(map[string]bool)
		for _, ref := range a.Refs {
			if members[ref.Member] {
				errs = append(errs, &ValidationError{
					Kind:   ErrDuplicateKey,
					Module: a.Name,
					Member: ref.Member,
					Detail: fmt.Sprintf("member %q is referenced more than once", ref.Member),
				})
				continue
			}
			members[ref.Member] = true

			if _, entry := r.Resolve(ref); entry == nil {
				errs = append(errs, &ValidationError{
					Kind:   ErrUndefinedReference,
					Module: a.Name,
					Member: ref.Member,
					Detail: fmt.Sprintf("reference %s does not resolve to a declared permission", ref.Qualified()),
				})
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
