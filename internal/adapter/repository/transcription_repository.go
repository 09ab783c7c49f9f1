package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
)

// transcriptionRepository implements the TranscriptionRepository interface
type transcriptionRepository struct {
	db *gorm.DB
}

// NewTranscriptionRepository creates a new transcription repository
func NewTranscriptionRepository(db *gorm.DB) repositories.TranscriptionRepository {
	return &transcriptionRepository{db: db}
}

// Create persists a new transcription
func (r *transcriptionRepository) Create(ctx context.Context, transcription *entities.Transcription) error {
	return r.db.WithContext(ctx).Create(transcription).Error
}

// FindByID retrieves a transcription by id within an organization
func (r *transcriptionRepository) FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.Transcription, error) {
	var transcription entities.Transcription
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&transcription).Error
	if err != nil {
		return nil, err
	}
	return &transcription, nil
}

// List retrieves transcriptions ordered by creation time
func (r *transcriptionRepository) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*entities.Transcription, error) {
	var transcriptions []*entities.Transcription
	query := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&transcriptions).Error; err != nil {
		return nil, err
	}
	return transcriptions, nil
}
