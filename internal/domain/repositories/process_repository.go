package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// ProcessFilters represents filter options for listing processes
type ProcessFilters struct {
	Status *entities.ProcessStatus
	Search string // matched against name, description
	Limit  int
	Offset int
}

// ProcessStats aggregates process counters for an organization
type ProcessStats struct {
	Total             int64
	Draft             int64
	Active            int64
	Archived          int64
	AverageEfficiency int
}

// ProcessRepository defines tenant-scoped access to derived processes
type ProcessRepository interface {
	// Create persists a new process
	Create(ctx context.Context, process *entities.Process) error

	// FindByID retrieves a process by id within an organization
	FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.Process, error)

	// FindByTranscription retrieves the process derived from a transcription
	FindByTranscription(ctx context.Context, organizationID, transcriptionID uuid.UUID) (*entities.Process, error)

	// List retrieves processes ordered by creation time
	List(ctx context.Context, organizationID uuid.UUID, filters ProcessFilters) ([]*entities.Process, int64, error)

	// Update saves an existing process
	Update(ctx context.Context, process *entities.Process) error

	// Delete removes a process
	Delete(ctx context.Context, organizationID, id uuid.UUID) error

	// Stats aggregates process counters for the dashboard
	Stats(ctx context.Context, organizationID uuid.UUID) (*ProcessStats, error)
}
