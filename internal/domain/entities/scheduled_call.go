package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CallStatus represents the lifecycle state of a scheduled call
type CallStatus string

const (
	CallStatusScheduled  CallStatus = "scheduled"
	CallStatusInProgress CallStatus = "in_progress"
	CallStatusCompleted  CallStatus = "completed"
	CallStatusCancelled  CallStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed from s
func (s CallStatus) IsTerminal() bool {
	return s == CallStatusCompleted || s == CallStatusCancelled
}

// TranscriptionData is the transcription reference attached to a call
type TranscriptionData struct {
	TranscriptionID uuid.UUID `json:"transcription_id"`
	Content         string    `json:"content"`
	ProcessedAt     time.Time `json:"processed_at"`
}

// ScheduledCall is an AI interview call scheduled against a contact.
// OrganizationID is immutable after creation; status only moves forward
// through the lifecycle, except into cancelled which is reachable from any
// non-terminal state.
type ScheduledCall struct {
	ID               uuid.UUID          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID   uuid.UUID          `json:"organization_id" gorm:"type:uuid;not null;index"`
	ContactID        uuid.UUID          `json:"contact_id" gorm:"type:uuid;not null;index"`
	Contact          *Contact           `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
	ProcessID        *uuid.UUID         `json:"process_id,omitempty" gorm:"type:uuid;index"`
	ScheduledDate    time.Time          `json:"scheduled_date" gorm:"not null;index"`
	Status           CallStatus         `json:"status" gorm:"type:varchar(20);not null;default:'scheduled';index"`
	DurationMinutes  *int               `json:"duration_minutes,omitempty"`
	Notes            *string            `json:"notes,omitempty" gorm:"type:text"`
	EmailSent        bool               `json:"email_sent" gorm:"default:false"`
	EmailID          *string            `json:"email_id,omitempty" gorm:"type:varchar(255)"`
	AgentID          *string            `json:"agent_id,omitempty" gorm:"type:varchar(255);index"`
	BotConnectionURL *string            `json:"bot_connection_url,omitempty" gorm:"type:text"`
	CorrelationID    string             `json:"correlation_id" gorm:"type:varchar(64);uniqueIndex"`
	Transcription    *TranscriptionData `json:"transcription_data,omitempty" gorm:"column:transcription_data;type:jsonb;serializer:json"`
	CreatedBy        uuid.UUID          `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt        time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ScheduledCall
func (ScheduledCall) TableName() string {
	return "scheduled_calls"
}

// NewScheduledCall creates a scheduled call with a fresh correlation id. The
// correlation id is generated here, at scheduling time, and round-tripped
// through the agent provider so webhook events can be matched without
// inspecting connection URLs.
func NewScheduledCall(organizationID, contactID, createdBy uuid.UUID, scheduledDate time.Time) *ScheduledCall {
	return &ScheduledCall{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		ContactID:      contactID,
		Status:         CallStatusScheduled,
		ScheduledDate:  scheduledDate,
		CorrelationID:  uuid.NewString(),
		CreatedBy:      createdBy,
	}
}

// CanStart reports whether a call_started event may move the call forward.
// A call already in_progress or later stays where it is.
func (c *ScheduledCall) CanStart() bool {
	return c.Status == CallStatusScheduled
}

// Start moves the call to in_progress
func (c *ScheduledCall) Start() {
	c.Status = CallStatusInProgress
}

// End applies a call_ended event: completed when the provider reports a
// completed call, cancelled otherwise. Duration, when present, is recorded in
// minutes; a missing duration leaves the field untouched. No-op on terminal
// calls so duplicate deliveries cannot move the status backward.
func (c *ScheduledCall) End(providerStatus string, durationSeconds *int) {
	if c.Status.IsTerminal() {
		return
	}
	if providerStatus == "completed" {
		c.Status = CallStatusCompleted
	} else {
		c.Status = CallStatusCancelled
	}
	if durationSeconds != nil {
		minutes := MinutesFromSeconds(*durationSeconds)
		c.DurationMinutes = &minutes
	}
}

// AttachTranscription records the transcription reference on the call
func (c *ScheduledCall) AttachTranscription(transcriptionID uuid.UUID, content string) {
	c.Transcription = &TranscriptionData{
		TranscriptionID: transcriptionID,
		Content:         content,
		ProcessedAt:     time.Now().UTC(),
	}
}

// HasProcess reports whether a process has already been derived for this call
func (c *ScheduledCall) HasProcess() bool {
	return c.ProcessID != nil
}

// MinutesFromSeconds converts a duration in seconds to minutes, round half up
func MinutesFromSeconds(seconds int) int {
	return int(math.Round(float64(seconds) / 60.0))
}
