package process

import (
	"context"
	"errors"

	"github.com/google/uuid"

	apperrors "github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
)

// Service handles process business logic. Processes are created by the call
// coordinator's derivation path; this service only reads and curates them.
type Service struct {
	processes repositories.ProcessRepository
}

// NewService creates a new process service
func NewService(processes repositories.ProcessRepository) *Service {
	return &Service{processes: processes}
}

// Get retrieves a process by ID within an organization
func (s *Service) Get(ctx context.Context, organizationID, processID uuid.UUID) (*entities.Process, error) {
	process, err := s.processes.FindByID(ctx, organizationID, processID)
	if err != nil {
		if errors.Is(err, entities.ErrProcessNotFound) {
			return nil, apperrors.ErrNotFound("Process")
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return process, nil
}

// List retrieves processes with filters
func (s *Service) List(ctx context.Context, organizationID uuid.UUID, filters repositories.ProcessFilters) ([]*entities.Process, int64, error) {
	processes, total, err := s.processes.List(ctx, organizationID, filters)
	if err != nil {
		return nil, 0, apperrors.ErrDBQueryFailed(err)
	}
	return processes, total, nil
}

// UpdateInput represents the curated fields of a process
type UpdateInput struct {
	OrganizationID uuid.UUID
	ProcessID      uuid.UUID
	Name           *string
	Description    *string
	Status         *entities.ProcessStatus
}

// Update saves the curated fields of an existing process
func (s *Service) Update(ctx context.Context, input UpdateInput) (*entities.Process, error) {
	process, err := s.Get(ctx, input.OrganizationID, input.ProcessID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		process.Name = *input.Name
	}
	if input.Description != nil {
		process.Description = input.Description
	}
	if input.Status != nil {
		switch *input.Status {
		case entities.ProcessStatusDraft, entities.ProcessStatusActive, entities.ProcessStatusArchived:
			process.Status = *input.Status
		default:
			return nil, apperrors.ErrValidation("status must be draft, active or archived")
		}
	}

	if err := s.processes.Update(ctx, process); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return process, nil
}

// Delete removes a process
func (s *Service) Delete(ctx context.Context, organizationID, processID uuid.UUID) error {
	if _, err := s.Get(ctx, organizationID, processID); err != nil {
		return err
	}
	if err := s.processes.Delete(ctx, organizationID, processID); err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}
	return nil
}

// Stats aggregates process counters for the dashboard
func (s *Service) Stats(ctx context.Context, organizationID uuid.UUID) (*repositories.ProcessStats, error) {
	stats, err := s.processes.Stats(ctx, organizationID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return stats, nil
}
