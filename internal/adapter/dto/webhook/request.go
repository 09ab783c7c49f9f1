package webhook

import (
	"time"

	"github.com/ceadash/cea-dashboard/internal/usecase/call"
)

// EventRequest is the raw provider webhook payload
type EventRequest struct {
	EventType string    `json:"event_type"`
	CallID    string    `json:"call_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      EventData `json:"data"`
}

// EventData carries the event-specific fields
type EventData struct {
	AgentID       string                 `json:"agent_id,omitempty"`
	Status        string                 `json:"status,omitempty"`
	Duration      *int                   `json:"duration,omitempty"`
	Transcription string                 `json:"transcription,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// ToEvent normalizes the provider payload into a lifecycle event
func (r *EventRequest) ToEvent() call.Event {
	return call.Event{
		Type:            r.EventType,
		CallID:          r.CallID,
		AgentID:         r.Data.AgentID,
		Timestamp:       r.Timestamp,
		Status:          r.Data.Status,
		DurationSeconds: r.Data.Duration,
		Transcript:      r.Data.Transcription,
		Metadata:        r.Data.Metadata,
	}
}
