package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProfileRole represents the role of a dashboard user
type ProfileRole string

const (
	ProfileRoleAdmin ProfileRole = "admin"
	ProfileRoleUser  ProfileRole = "user"
)

// Profile is a dashboard user belonging to one organization
type Profile struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID uuid.UUID   `json:"organization_id" gorm:"type:uuid;not null;index"`
	Email          string      `json:"email" gorm:"type:varchar(255);unique;not null"`
	FullName       *string     `json:"full_name,omitempty" gorm:"type:varchar(255)"`
	AvatarURL      *string     `json:"avatar_url,omitempty" gorm:"type:text"`
	Role           ProfileRole `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt      time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
