package entities

// AggregateRef references a permission entry defined in another module.
type AggregateRef struct {
	Module string // source module name
	Member string // source member name
}

// Qualified returns the "<module>.<member>" form used in declarations
// and error messages.
func (r *AggregateRef) Qualified() string {
	return r.Module + "." + r.Member
}

// AggregateModule is a synthetic module whose entries re-export keys
// already defined by other modules. Its output aliases the source
// constants instead of repeating their literal values, and it is always
// emitted after every source module it references.
type AggregateModule struct {
	Name        string
	DisplayName string
	Refs        []*AggregateRef
}
