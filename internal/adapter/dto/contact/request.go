package contact

// CreateContactRequest represents the request to create a contact
type CreateContactRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=255"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=255"`
	Notes   *string `json:"notes,omitempty"`
}

// UpdateContactRequest represents the request to update a contact
type UpdateContactRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=255"`
	Notes   *string `json:"notes,omitempty"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// ListContactsRequest represents query parameters for listing contacts
type ListContactsRequest struct {
	Status   *string `query:"status" validate:"omitempty,oneof=active inactive"`
	Search   string  `query:"search"`
	Page     int     `query:"page" validate:"omitempty,min=1"`
	PageSize int     `query:"page_size" validate:"omitempty,min=1,max=100"`
}
