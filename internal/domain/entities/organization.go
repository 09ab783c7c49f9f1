package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Organization is the tenant boundary. Every persisted row belongs to exactly
// one organization and every query filters on it.
type Organization struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Slug      string         `json:"slug" gorm:"type:varchar(100);unique;not null"`
	Settings  datatypes.JSON `json:"settings,omitempty" gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}

// NotificationCCEmails returns the organization-configured CC addresses for
// scheduling notifications, read from settings
func (o *Organization) NotificationCCEmails() []string {
	if len(o.Settings) == 0 {
		return nil
	}
	var settings struct {
		NotificationCCEmails []string `json:"notification_cc_emails"`
	}
	if err := json.Unmarshal(o.Settings, &settings); err != nil {
		return nil
	}
	return settings.NotificationCCEmails
}
