package organization

import (
	"encoding/json"
	"time"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// OrganizationResponse represents an organization in responses
type OrganizationResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Slug                 string          `json:"slug"`
	Settings             json.RawMessage `json:"settings,omitempty"`
	NotificationCCEmails []string        `json:"notification_cc_emails"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// FromEntity converts an organization entity to its response shape
func FromEntity(o *entities.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:                   o.ID.String(),
		Name:                 o.Name,
		Slug:                 o.Slug,
		Settings:             json.RawMessage(o.Settings),
		NotificationCCEmails: o.NotificationCCEmails(),
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}
