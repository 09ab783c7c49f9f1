package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Transcription holds the raw content of a finished call. The coordinator
// reads it to derive a Process but never mutates it as part of derivation.
type Transcription struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID uuid.UUID      `json:"organization_id" gorm:"type:uuid;not null;index"`
	CallID         *string        `json:"call_id,omitempty" gorm:"type:varchar(255);index"`
	Content        string         `json:"content" gorm:"type:text;not null"`
	Metadata       datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	Processed      bool           `json:"processed" gorm:"default:false"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Transcription
func (Transcription) TableName() string {
	return "transcriptions"
}
