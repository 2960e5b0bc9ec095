package entities

import (
	"time"

	"github.com/google/uuid"
)

// KeyRecord is the flattened row shape published to the application's
// permission registry table.
type KeyRecord struct {
	Value       string // "<module>:<member>", primary key
	Module      string
	Member      string
	Description string
	Region      string
}

// SyncRun records one publication of the registry to the database.
type SyncRun struct {
	ID          uuid.UUID
	StartedAt   time.Time
	CompletedAt time.Time
	ModuleCount int
	KeyCount    int
}

// Records flattens every source module into key records, in emission
// order. Aggregates are excluded: their entries alias values that already
// appear here, and the table keys on value.
func (r *Registry) Records() []KeyRecord {
	var records []KeyRecord
	for _, m := range r.Modules {
		for _, e := range m.Entries {
			records = append(records, KeyRecord{
				Value:       m.Value(e),
				Module:      m.Name,
				Member:      e.MemberName,
				Description: e.Description,
				Region:      e.RegionLabel,
			})
		}
	}
	return records
}
