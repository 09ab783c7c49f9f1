package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
)

// Service handles contact business logic
type Service struct {
	contacts   repositories.ContactRepository
	activities repositories.ActivityRepository
	logger     *zap.Logger
}

// NewService creates a new contact service
func NewService(
	contacts repositories.ContactRepository,
	activities repositories.ActivityRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		contacts:   contacts,
		activities: activities,
		logger:     logger,
	}
}

// CreateInput represents input for creating a contact
type CreateInput struct {
	OrganizationID uuid.UUID
	ProfileID      uuid.UUID
	Name           string
	Email          string
	Phone          *string
	Company        *string
	Notes          *string
}

// Create persists a new contact and records a feed entry
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Contact, error) {
	if input.Name == "" {
		return nil, apperrors.ErrValidation("name is required")
	}
	if input.Email == "" {
		return nil, apperrors.ErrValidation("email is required")
	}

	contact := &entities.Contact{
		ID:             uuid.New(),
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Company:        input.Company,
		Notes:          input.Notes,
		Status:         entities.ContactStatusActive,
		CreatedBy:      input.ProfileID,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	// Best-effort feed entry
	activity := &entities.Activity{
		OrganizationID: input.OrganizationID,
		UserID:         &input.ProfileID,
		ActivityType:   entities.ActivityContactAdded,
		Title:          fmt.Sprintf("Contacto agregado: %s", contact.Name),
	}
	if b, err := json.Marshal(map[string]string{"contact_id": contact.ID.String()}); err == nil {
		activity.Metadata = datatypes.JSON(b)
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record contact activity",
			zap.String("contact_id", contact.ID.String()),
			zap.Error(err))
	}

	return contact, nil
}

// Get retrieves a contact by ID within an organization
func (s *Service) Get(ctx context.Context, organizationID, contactID uuid.UUID) (*entities.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, organizationID, contactID)
	if err != nil {
		if errors.Is(err, entities.ErrContactNotFound) {
			return nil, apperrors.ErrNotFound("Contact")
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return contact, nil
}

// List retrieves contacts with filters
func (s *Service) List(ctx context.Context, organizationID uuid.UUID, filters repositories.ContactFilters) ([]*entities.Contact, int64, error) {
	contacts, total, err := s.contacts.List(ctx, organizationID, filters)
	if err != nil {
		return nil, 0, apperrors.ErrDBQueryFailed(err)
	}
	return contacts, total, nil
}

// UpdateInput represents the editable fields of a contact
type UpdateInput struct {
	OrganizationID uuid.UUID
	ContactID      uuid.UUID
	Name           *string
	Email          *string
	Phone          *string
	Company        *string
	Notes          *string
	Status         *entities.ContactStatus
}

// Update saves the editable fields of an existing contact
func (s *Service) Update(ctx context.Context, input UpdateInput) (*entities.Contact, error) {
	contact, err := s.Get(ctx, input.OrganizationID, input.ContactID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Email != nil {
		contact.Email = *input.Email
	}
	if input.Phone != nil {
		contact.Phone = input.Phone
	}
	if input.Company != nil {
		contact.Company = input.Company
	}
	if input.Notes != nil {
		contact.Notes = input.Notes
	}
	if input.Status != nil {
		if *input.Status != entities.ContactStatusActive && *input.Status != entities.ContactStatusInactive {
			return nil, apperrors.ErrValidation("status must be active or inactive")
		}
		contact.Status = *input.Status
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return contact, nil
}

// Delete removes a contact
func (s *Service) Delete(ctx context.Context, organizationID, contactID uuid.UUID) error {
	if _, err := s.Get(ctx, organizationID, contactID); err != nil {
		return err
	}
	if err := s.contacts.Delete(ctx, organizationID, contactID); err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}
	return nil
}
