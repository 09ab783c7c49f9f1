package call

import (
	"time"

	"github.com/ceadash/cea-dashboard/internal/adapter/dto/contact"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// CallResponse represents a scheduled call in responses
type CallResponse struct {
	ID               string                       `json:"id"`
	ContactID        string                       `json:"contact_id"`
	Contact          *contact.ContactResponse     `json:"contact,omitempty"`
	ProcessID        *string                      `json:"process_id,omitempty"`
	ScheduledDate    time.Time                    `json:"scheduled_date"`
	Status           string                       `json:"status"`
	DurationMinutes  *int                         `json:"duration_minutes,omitempty"`
	Notes            *string                      `json:"notes,omitempty"`
	EmailSent        bool                         `json:"email_sent"`
	EmailID          *string                      `json:"email_id,omitempty"`
	AgentID          *string                      `json:"agent_id,omitempty"`
	BotConnectionURL *string                      `json:"bot_connection_url,omitempty"`
	Transcription    *entities.TranscriptionData  `json:"transcription_data,omitempty"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// FromEntity converts a scheduled call entity to its response shape
func FromEntity(c *entities.ScheduledCall) *CallResponse {
	resp := &CallResponse{
		ID:               c.ID.String(),
		ContactID:        c.ContactID.String(),
		ScheduledDate:    c.ScheduledDate,
		Status:           string(c.Status),
		DurationMinutes:  c.DurationMinutes,
		Notes:            c.Notes,
		EmailSent:        c.EmailSent,
		EmailID:          c.EmailID,
		AgentID:          c.AgentID,
		BotConnectionURL: c.BotConnectionURL,
		Transcription:    c.Transcription,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.ProcessID != nil {
		id := c.ProcessID.String()
		resp.ProcessID = &id
	}
	if c.Contact != nil {
		resp.Contact = contact.FromEntity(c.Contact)
	}
	return resp
}

// ScheduleResponse represents the response after scheduling a call
type ScheduleResponse struct {
	Call    *CallResponse `json:"call"`
	Status  string        `json:"status"`
	EmailID string        `json:"email_id,omitempty"`
}

// CallListResponse represents a paginated list of calls
type CallListResponse struct {
	Calls      []*CallResponse `json:"calls"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// StatsResponse represents aggregated call counters
type StatsResponse struct {
	Total           int64 `json:"total"`
	Scheduled       int64 `json:"scheduled"`
	InProgress      int64 `json:"in_progress"`
	Completed       int64 `json:"completed"`
	Cancelled       int64 `json:"cancelled"`
	Upcoming        int64 `json:"upcoming"`
	AverageDuration int   `json:"average_duration_minutes"`
}
