package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// ContactFilters represents filter options for listing contacts
type ContactFilters struct {
	Status *entities.ContactStatus
	Search string // matched against name, email
	Limit  int
	Offset int
}

// ContactRepository defines tenant-scoped access to contacts
type ContactRepository interface {
	// Create persists a new contact
	Create(ctx context.Context, contact *entities.Contact) error

	// FindByID retrieves a contact by id within an organization
	FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.Contact, error)

	// List retrieves contacts ordered by creation time
	List(ctx context.Context, organizationID uuid.UUID, filters ContactFilters) ([]*entities.Contact, int64, error)

	// Update saves an existing contact
	Update(ctx context.Context, contact *entities.Contact) error

	// Delete removes a contact
	Delete(ctx context.Context, organizationID, id uuid.UUID) error

	// CountActive counts active contacts for the dashboard
	CountActive(ctx context.Context, organizationID uuid.UUID) (int64, error)
}
