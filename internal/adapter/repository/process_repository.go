package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
)

// processRepository implements the ProcessRepository interface
type processRepository struct {
	db *gorm.DB
}

// NewProcessRepository creates a new process repository
func NewProcessRepository(db *gorm.DB) repositories.ProcessRepository {
	return &processRepository{db: db}
}

// Create persists a new process
func (r *processRepository) Create(ctx context.Context, process *entities.Process) error {
	return r.db.WithContext(ctx).Create(process).Error
}

// FindByID retrieves a process by id within an organization
func (r *processRepository) FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.Process, error) {
	var process entities.Process
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&process).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrProcessNotFound
		}
		return nil, err
	}
	return &process, nil
}

// FindByTranscription retrieves the process derived from a transcription
func (r *processRepository) FindByTranscription(ctx context.Context, organizationID, transcriptionID uuid.UUID) (*entities.Process, error) {
	var process entities.Process
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND transcription_id = ?", organizationID, transcriptionID).
		First(&process).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrProcessNotFound
		}
		return nil, err
	}
	return &process, nil
}

// List retrieves processes ordered by creation time
func (r *processRepository) List(ctx context.Context, organizationID uuid.UUID, filters repositories.ProcessFilters) ([]*entities.Process, int64, error) {
	var processes []*entities.Process
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Process{}).
		Where("organization_id = ?", organizationID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	if err := query.Find(&processes).Error; err != nil {
		return nil, 0, err
	}
	return processes, total, nil
}

// Update saves an existing process
func (r *processRepository) Update(ctx context.Context, process *entities.Process) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", process.ID, process.OrganizationID).
		Save(process).Error
}

// Delete removes a process
func (r *processRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Delete(&entities.Process{}).Error
}

// Stats aggregates process counters for the dashboard
func (r *processRepository) Stats(ctx context.Context, organizationID uuid.UUID) (*repositories.ProcessStats, error) {
	stats := &repositories.ProcessStats{}

	type statusCount struct {
		Status entities.ProcessStatus
		Count  int64
	}
	var counts []statusCount
	err := r.db.WithContext(ctx).
		Model(&entities.Process{}).
		Select("status, count(*) as count").
		Where("organization_id = ?", organizationID).
		Group("status").
		Find(&counts).Error
	if err != nil {
		return nil, err
	}

	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case entities.ProcessStatusDraft:
			stats.Draft = c.Count
		case entities.ProcessStatusActive:
			stats.Active = c.Count
		case entities.ProcessStatusArchived:
			stats.Archived = c.Count
		}
	}

	var avg struct {
		Avg *float64
	}
	err = r.db.WithContext(ctx).
		Model(&entities.Process{}).
		Select("avg(efficiency_score) as avg").
		Where("organization_id = ? AND efficiency_score IS NOT NULL", organizationID).
		Find(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg.Avg != nil {
		stats.AverageEfficiency = int(*avg.Avg + 0.5)
	}

	return stats, nil
}
