package call

import (
	"time"
)

// ScheduleRequest represents the request to schedule an interview call
type ScheduleRequest struct {
	ContactID         string    `json:"contact_id" validate:"required,uuid"`
	ScheduledDate     time.Time `json:"scheduled_date" validate:"required"`
	DurationMinutes   int       `json:"duration_minutes" validate:"omitempty,min=5,max=120"`
	ProcessType       string    `json:"process_type" validate:"required,min=1,max=100"`
	Industry          string    `json:"industry" validate:"required,min=1,max=100"`
	Objectives        []string  `json:"objectives,omitempty"`
	SpecificQuestions []string  `json:"specific_questions,omitempty"`
	Language          string    `json:"language,omitempty" validate:"omitempty,len=2"`
	Notes             *string   `json:"notes,omitempty"`
}

// UpdateCallRequest represents the request to update a scheduled call
type UpdateCallRequest struct {
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// ListCallsRequest represents query parameters for listing calls
type ListCallsRequest struct {
	Status    *string    `query:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	From      *time.Time `query:"from"`
	To        *time.Time `query:"to"`
	Search    string     `query:"search"`
	Page      int        `query:"page" validate:"omitempty,min=1"`
	PageSize  int        `query:"page_size" validate:"omitempty,min=1,max=100"`
	SortOrder string     `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}
