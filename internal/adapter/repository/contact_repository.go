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

// contactRepository implements the ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) repositories.ContactRepository {
	return &contactRepository{db: db}
}

// Create persists a new contact
func (r *contactRepository) Create(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// FindByID retrieves a contact by id within an organization
func (r *contactRepository) FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.Contact, error) {
	var contact entities.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// List retrieves contacts ordered by creation time
func (r *contactRepository) List(ctx context.Context, organizationID uuid.UUID, filters repositories.ContactFilters) ([]*entities.Contact, int64, error) {
	var contacts []*entities.Contact
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Contact{}).
		Where("organization_id = ?", organizationID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	if err := query.Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// Update saves an existing contact
func (r *contactRepository) Update(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", contact.ID, contact.OrganizationID).
		Save(contact).Error
}

// Delete removes a contact
func (r *contactRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Delete(&entities.Contact{}).Error
}

// CountActive counts active contacts for the dashboard
func (r *contactRepository) CountActive(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Contact{}).
		Where("organization_id = ? AND status = ?", organizationID, entities.ContactStatusActive).
		Count(&count).Error
	return count, err
}
