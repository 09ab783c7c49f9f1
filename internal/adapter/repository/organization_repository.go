package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
)

// organizationRepository implements the OrganizationRepository interface
type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) repositories.OrganizationRepository {
	return &organizationRepository{db: db}
}

// FindByID retrieves an organization by id
func (r *organizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error) {
	var org entities.Organization
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// FindBySlug retrieves an organization by slug
func (r *organizationRepository) FindBySlug(ctx context.Context, slug string) (*entities.Organization, error) {
	var org entities.Organization
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// profileRepository implements the ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) repositories.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByID retrieves a profile by id
func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByEmail retrieves a profile by email
func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
