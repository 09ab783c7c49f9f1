package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// OrganizationRepository defines access to organizations
type OrganizationRepository interface {
	// FindByID retrieves an organization by id
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error)

	// FindBySlug retrieves an organization by slug
	FindBySlug(ctx context.Context, slug string) (*entities.Organization, error)
}

// ProfileRepository defines access to dashboard user profiles
type ProfileRepository interface {
	// FindByID retrieves a profile by id
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)

	// FindByEmail retrieves a profile by email
	FindByEmail(ctx context.Context, email string) (*entities.Profile, error)
}
