package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
)

// scheduledCallRepository implements the ScheduledCallRepository interface
type scheduledCallRepository struct {
	db *gorm.DB
}

// NewScheduledCallRepository creates a new scheduled call repository
func NewScheduledCallRepository(db *gorm.DB) repositories.ScheduledCallRepository {
	return &scheduledCallRepository{db: db}
}

// Create persists a new scheduled call
func (r *scheduledCallRepository) Create(ctx context.Context, call *entities.ScheduledCall) error {
	return r.db.WithContext(ctx).Create(call).Error
}

// FindByID retrieves a call by id within an organization
func (r *scheduledCallRepository) FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.ScheduledCall, error) {
	var call entities.ScheduledCall
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&call).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrCallNotFound
		}
		return nil, err
	}
	return &call, nil
}

// FindByCorrelation locates the call a webhook event refers to
func (r *scheduledCallRepository) FindByCorrelation(ctx context.Context, callID string) (*entities.ScheduledCall, error) {
	var call entities.ScheduledCall
	err := r.db.WithContext(ctx).
		Where("correlation_id = ?", callID).
		First(&call).Error
	if err == nil {
		return &call, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Compat fallback for providers that echo their own identifiers instead
	// of the correlation id.
	err = r.db.WithContext(ctx).
		Where("agent_id = ? OR bot_connection_url LIKE ?", callID, "%"+callID+"%").
		First(&call).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrCallNotFound
		}
		return nil, err
	}
	return &call, nil
}

// List retrieves calls with their contact preloaded
func (r *scheduledCallRepository) List(ctx context.Context, organizationID uuid.UUID, filters repositories.CallFilters) ([]*entities.ScheduledCall, int64, error) {
	var calls []*entities.ScheduledCall
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.ScheduledCall{}).
		Where("organization_id = ?", organizationID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.From != nil {
		query = query.Where("scheduled_date >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("scheduled_date <= ?", *filters.To)
	}
	if filters.Search != "" {
		query = query.Where("notes ILIKE ?", fmt.Sprintf("%%%s%%", filters.Search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "scheduled_date DESC"
	if filters.SortOrder == "asc" {
		order = "scheduled_date ASC"
	}
	query = query.Preload("Contact").Order(order)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	if err := query.Find(&calls).Error; err != nil {
		return nil, 0, err
	}
	return calls, total, nil
}

// Update saves caller-editable fields of an existing call
func (r *scheduledCallRepository) Update(ctx context.Context, call *entities.ScheduledCall) error {
	return r.db.WithContext(ctx).
		Model(&entities.ScheduledCall{}).
		Where("id = ? AND organization_id = ?", call.ID, call.OrganizationID).
		Updates(map[string]interface{}{
			"scheduled_date": call.ScheduledDate,
			"notes":          call.Notes,
			"updated_at":     time.Now().UTC(),
		}).Error
}

// Delete removes a call
func (r *scheduledCallRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Delete(&entities.ScheduledCall{}).Error
}

// MarkEmailSent records a successful notification send
func (r *scheduledCallRepository) MarkEmailSent(ctx context.Context, organizationID, id uuid.UUID, emailID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.ScheduledCall{}).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Updates(map[string]interface{}{
			"email_sent": true,
			"email_id":   emailID,
			"updated_at": time.Now().UTC(),
		}).Error
}

// Start transitions scheduled → in_progress. The status guard in the WHERE
// clause makes duplicate or late deliveries a no-op.
func (r *scheduledCallRepository) Start(ctx context.Context, organizationID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.ScheduledCall{}).
		Where("id = ? AND organization_id = ? AND status = ?", id, organizationID, entities.CallStatusScheduled).
		Updates(map[string]interface{}{
			"status":     entities.CallStatusInProgress,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Finish transitions any non-terminal status to completed or cancelled
func (r *scheduledCallRepository) Finish(ctx context.Context, organizationID, id uuid.UUID, status entities.CallStatus, durationMinutes *int) (bool, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if durationMinutes != nil {
		updates["duration_minutes"] = *durationMinutes
	}

	result := r.db.WithContext(ctx).
		Model(&entities.ScheduledCall{}).
		Where("id = ? AND organization_id = ? AND status NOT IN ?", id, organizationID,
			[]entities.CallStatus{entities.CallStatusCompleted, entities.CallStatusCancelled}).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AttachTranscription records the transcription reference on the call
func (r *scheduledCallRepository) AttachTranscription(ctx context.Context, organizationID, id uuid.UUID, data entities.TranscriptionData) error {
	return r.db.WithContext(ctx).
		Model(&entities.ScheduledCall{}).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Updates(map[string]interface{}{
			"transcription_data": &data,
			"updated_at":         time.Now().UTC(),
		}).Error
}

// LinkProcess sets process_id only if it is currently null
func (r *scheduledCallRepository) LinkProcess(ctx context.Context, organizationID, id, processID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.ScheduledCall{}).
		Where("id = ? AND organization_id = ? AND process_id IS NULL", id, organizationID).
		Updates(map[string]interface{}{
			"process_id": processID,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Stats aggregates call counters for the dashboard
func (r *scheduledCallRepository) Stats(ctx context.Context, organizationID uuid.UUID) (*repositories.CallStats, error) {
	stats := &repositories.CallStats{}

	type statusCount struct {
		Status entities.CallStatus
		Count  int64
	}
	var counts []statusCount
	err := r.db.WithContext(ctx).
		Model(&entities.ScheduledCall{}).
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
		case entities.CallStatusScheduled:
			stats.Scheduled = c.Count
		case entities.CallStatusInProgress:
			stats.InProgress = c.Count
		case entities.CallStatusCompleted:
			stats.Completed = c.Count
		case entities.CallStatusCancelled:
			stats.Cancelled = c.Count
		}
	}

	err = r.db.WithContext(ctx).
		Model(&entities.ScheduledCall{}).
		Where("organization_id = ? AND status = ? AND scheduled_date > ?",
			organizationID, entities.CallStatusScheduled, time.Now().UTC()).
		Count(&stats.Upcoming).Error
	if err != nil {
		return nil, err
	}

	var avg struct {
		Avg *float64
	}
	err = r.db.WithContext(ctx).
		Model(&entities.ScheduledCall{}).
		Select("avg(duration_minutes) as avg").
		Where("organization_id = ? AND status = ? AND duration_minutes IS NOT NULL",
			organizationID, entities.CallStatusCompleted).
		Find(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg.Avg != nil {
		stats.AverageDuration = int(*avg.Avg + 0.5)
	}

	return stats, nil
}
