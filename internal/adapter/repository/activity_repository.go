package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
)

// activityRepository implements the ActivityRepository interface
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) repositories.ActivityRepository {
	return &activityRepository{db: db}
}

// Create persists a new activity entry
func (r *activityRepository) Create(ctx context.Context, activity *entities.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListRecent retrieves the most recent activities for an organization
func (r *activityRepository) ListRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]*entities.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	var activities []*entities.Activity
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
