package process

import (
	"encoding/json"
	"time"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// ProcessResponse represents a derived process in responses
type ProcessResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	Status          string          `json:"status"`
	EfficiencyScore *int            `json:"efficiency_score,omitempty"`
	DiagramData     json.RawMessage `json:"diagram_data,omitempty"`
	Improvements    json.RawMessage `json:"improvements_data,omitempty"`
	TranscriptionID *string         `json:"transcription_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FromEntity converts a process entity to its response shape
func FromEntity(p *entities.Process) *ProcessResponse {
	resp := &ProcessResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Description:     p.Description,
		Status:          string(p.Status),
		EfficiencyScore: p.EfficiencyScore,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if len(p.DiagramData) > 0 {
		resp.DiagramData = json.RawMessage(p.DiagramData)
	}
	if len(p.ImprovementsData) > 0 {
		resp.Improvements = json.RawMessage(p.ImprovementsData)
	}
	if p.TranscriptionID != nil {
		id := p.TranscriptionID.String()
		resp.TranscriptionID = &id
	}
	return resp
}

// ProcessListResponse represents a paginated list of processes
type ProcessListResponse struct {
	Processes  []*ProcessResponse `json:"processes"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ProcessStatsResponse represents aggregated process counters
type ProcessStatsResponse struct {
	Total             int64 `json:"total"`
	Draft             int64 `json:"draft"`
	Active            int64 `json:"active"`
	Archived          int64 `json:"archived"`
	AverageEfficiency int   `json:"average_efficiency"`
}
