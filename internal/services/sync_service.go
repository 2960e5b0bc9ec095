package services

import (
	"context"
	"fmt"
	"time"

	"github.com/awata/permgen/internal/entities"
	"github.com/awata/permgen/internal/repositories"
	"github.com/google/uuid"
)

// SyncService publishes a validated permission registry to the
// application's database so the permission dialog always enumerates
// exactly the declared keys.
type SyncService struct {
	repo repositories.PermissionRepository
}

// NewSyncService creates a new SyncService
func NewSyncService(repo repositories.PermissionRepository) *SyncService {
	return &SyncService{
		repo: repo,
	}
}

// Sync validates the registry and replaces the published keys with its
// flattened records. Validation errors abort before the database is
// touched, mirroring the file generator's all-or-nothing behavior.
func (s *SyncService) Sync(ctx context.Context, registry *entities.Registry) (*entities.SyncRun, error) {
	started := time.Now().UTC()

	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	records := registry.Records()
	run := &entities.SyncRun{
		ID:          uuid.New(),
		StartedAt:   started,
		CompletedAt: time.Now().UTC(),
		ModuleCount: len(registry.Modules),
		KeyCount:    len(records),
	}

	if err := s.repo.Replace(ctx, records, run); err != nil {
		return nil, fmt.Errorf("failed to publish permission keys: %w", err)
	}

	return run, nil
}
