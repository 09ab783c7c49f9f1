package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// ActivityRepository defines tenant-scoped access to the activity feed
type ActivityRepository interface {
	// Create persists a new activity entry
	Create(ctx context.Context, activity *entities.Activity) error

	// ListRecent retrieves the most recent activities for an organization
	ListRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]*entities.Activity, error)
}
