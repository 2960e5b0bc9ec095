package repositories

import (
	"context"

	"github.com/awata/permgen/internal/entities"
)

// PermissionRepository defines data access for the published permission
// registry. The web application's permission dialog reads from these
// tables, so they must always mirror the declarations exactly.
type PermissionRepository interface {
	// Replace atomically replaces all published keys with the given
	// records and stores the sync run alongside them. Either everything
	// is replaced or nothing is.
	Replace(ctx context.Context, records []entities.KeyRecord, run *entities.SyncRun) error

	// ListKeys returns every published key ordered by value.
	ListKeys(ctx context.Context) ([]entities.KeyRecord, error)

	// LastRun returns the most recent sync run, or nil when no sync has
	// ever been performed.
	LastRun(ctx context.Context) (*entities.SyncRun, error)
}
