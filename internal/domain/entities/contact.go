package entities

import (
	"time"

	"github.com/google/uuid"
)

// ContactStatus represents whether a contact can be scheduled
type ContactStatus string

const (
	ContactStatusActive   ContactStatus = "active"
	ContactStatusInactive ContactStatus = "inactive"
)

// Contact is a tenant-scoped person record
type Contact struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID uuid.UUID     `json:"organization_id" gorm:"type:uuid;not null;index"`
	Name           string        `json:"name" gorm:"type:varchar(255);not null"`
	Email          string        `json:"email" gorm:"type:varchar(255);not null"`
	Phone          *string       `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Company        *string       `json:"company,omitempty" gorm:"type:varchar(255)"`
	Status         ContactStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	Notes          *string       `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy      uuid.UUID     `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// IsActive reports whether the contact can be scheduled for calls
func (c *Contact) IsActive() bool {
	return c.Status == ContactStatusActive
}
