package organization

import (
	"context"
	"errors"

	"github.com/google/uuid"

	apperrors "github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
)

// Service exposes read access to the session's organization. Organizations
// are provisioned out of band; the dashboard only reads their settings.
type Service struct {
	organizations repositories.OrganizationRepository
}

// NewService creates a new organization service
func NewService(organizations repositories.OrganizationRepository) *Service {
	return &Service{organizations: organizations}
}

// Get retrieves an organization by ID
func (s *Service) Get(ctx context.Context, organizationID uuid.UUID) (*entities.Organization, error) {
	org, err := s.organizations.FindByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, entities.ErrOrganizationNotFound) {
			return nil, apperrors.ErrNotFound("Organization")
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return org, nil
}
