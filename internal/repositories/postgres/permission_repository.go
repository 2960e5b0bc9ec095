package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awata/permgen/internal/entities"
	"github.com/awata/permgen/internal/repositories"
)

// PostgresPermissionRepository implements PermissionRepository using PostgreSQL
type PostgresPermissionRepository struct {
	db *sql.DB
}

// NewPostgresPermissionRepository creates a new PostgreSQL permission repository
func NewPostgresPermissionRepository(db *sql.DB) repositories.PermissionRepository {
	return &PostgresPermissionRepository{db: db}
}

// Replace replaces the published permission keys in one transaction
func (r *PostgresPermissionRepository) Replace(ctx context.Context, records []entities.KeyRecord, run *entities.SyncRun) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM permission_keys`); err != nil {
		return fmt.Errorf("failed to clear permission keys: %w", err)
	}

	insert := `
		INSERT INTO permission_keys (value, module, member, description, region)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, insert, rec.Value, rec.Module, rec.Member, rec.Description, rec.Region); err != nil {
			return fmt.Errorf("failed to insert key %s: %w", rec.Value, err)
		}
	}

	runInsert := `
		INSERT INTO sync_runs (id, started_at, completed_at, module_count, key_count)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, runInsert, run.ID, run.StartedAt, run.CompletedAt, run.ModuleCount, run.KeyCount); err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sync: %w", err)
	}
	return nil
}

// ListKeys returns every published key ordered by value
func (r *PostgresPermissionRepository) ListKeys(ctx context.Context) ([]entities.KeyRecord, error) {
	query := `
		SELECT value, module, member, description, region
		FROM permission_keys
		ORDER BY value
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list permission keys: %w", err)
	}
	defer rows.Close()

	var records []entities.KeyRecord
	for rows.Next() {
		var rec entities.KeyRecord
		if err := rows.Scan(&rec.Value, &rec.Module, &rec.Member, &rec.Description, &rec.Region); err != nil {
			return nil, fmt.Errorf("failed to scan permission key: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate permission keys: %w", err)
	}

	return records, nil
}

// LastRun returns the most recent sync run, or nil when none exists
func (r *PostgresPermissionRepository) LastRun(ctx context.Context) (*entities.SyncRun, error) {
	query := `
		SELECT id, started_at, completed_at, module_count, key_count
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT 1
	`
	var run entities.SyncRun
	err := r.db.QueryRowContext(ctx, query).Scan(&run.ID, &run.StartedAt, &run.CompletedAt, &run.ModuleCount, &run.KeyCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync run: %w", err)
	}

	return &run, nil
}
