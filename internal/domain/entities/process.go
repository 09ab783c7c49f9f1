package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProcessStatus represents the state of a derived process record
type ProcessStatus string

const (
	ProcessStatusDraft    ProcessStatus = "draft"
	ProcessStatusActive   ProcessStatus = "active"
	ProcessStatusArchived ProcessStatus = "archived"
)

// Process is a derived artifact produced once per successfully transcribed
// call: a mapped business process with its diagram and improvement suggestions.
type Process struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID  uuid.UUID      `json:"organization_id" gorm:"type:uuid;not null;index"`
	Name            string         `json:"name" gorm:"type:varchar(255);not null"`
	Description     *string        `json:"description,omitempty" gorm:"type:text"`
	Status          ProcessStatus  `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	EfficiencyScore *int           `json:"efficiency_score,omitempty"`
	DiagramData     datatypes.JSON `json:"diagram_data,omitempty" gorm:"type:jsonb"`
	ImprovementsData datatypes.JSON `json:"improvements_data,omitempty" gorm:"type:jsonb"`
	TranscriptionID *uuid.UUID     `json:"transcription_id,omitempty" gorm:"type:uuid;index"`
	CreatedBy       uuid.UUID      `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Process
func (Process) TableName() string {
	return "processes"
}
