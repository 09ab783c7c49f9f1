package process

// UpdateProcessRequest represents the request to update a process
type UpdateProcessRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=draft active archived"`
}

// ListProcessesRequest represents query parameters for listing processes
type ListProcessesRequest struct {
	Status   *string `query:"status" validate:"omitempty,oneof=draft active archived"`
	Search   string  `query:"search"`
	Page     int     `query:"page" validate:"omitempty,min=1"`
	PageSize int     `query:"page_size" validate:"omitempty,min=1,max=100"`
}
