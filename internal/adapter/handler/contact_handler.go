package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ceadash/cea-dashboard/errors"
	contactdto "github.com/ceadash/cea-dashboard/internal/adapter/dto/contact"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/http/middleware"
	contactusecase "github.com/ceadash/cea-dashboard/internal/usecase/contact"
)

// ContactHandler exposes the contact CRUD endpoints
type ContactHandler struct {
	svc    *contactusecase.Service
	logger *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(svc *contactusecase.Service, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, logger: logger}
}

// Create handles POST /v1/contacts
func (h *ContactHandler) Create(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req contactdto.CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	contact, err := h.svc.Create(c.Request().Context(), contactusecase.CreateInput{
		OrganizationID: session.OrganizationID,
		ProfileID:      session.ProfileID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Notes:          req.Notes,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, contactdto.FromEntity(contact))
}

// Get handles GET /v1/contacts/:id
func (h *ContactHandler) Get(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	contact, err := h.svc.Get(c.Request().Context(), session.OrganizationID, contactID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, contactdto.FromEntity(contact))
}

// List handles GET /v1/contacts
func (h *ContactHandler) List(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req contactdto.ListContactsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	limit, offset := pagination(c)
	filters := repositories.ContactFilters{
		Search: req.Search,
		Limit:  limit,
		Offset: offset,
	}
	if req.Status != nil {
		status := entities.ContactStatus(*req.Status)
		filters.Status = &status
	}

	contacts, total, err := h.svc.List(c.Request().Context(), session.OrganizationID, filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	responses := make([]*contactdto.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, contactdto.FromEntity(contact))
	}

	page := queryInt(c, "page", 1)
	return HandleSuccess(h.logger, c, contactdto.ContactListResponse{
		Contacts:   responses,
		Total:      total,
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages(total, limit),
	})
}

// Update handles PUT /v1/contacts/:id
func (h *ContactHandler) Update(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	var req contactdto.UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	input := contactusecase.UpdateInput{
		OrganizationID: session.OrganizationID,
		ContactID:      contactID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Notes:          req.Notes,
	}
	if req.Status != nil {
		status := entities.ContactStatus(*req.Status)
		input.Status = &status
	}

	contact, err := h.svc.Update(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, contactdto.FromEntity(contact))
}

// Delete handles DELETE /v1/contacts/:id
func (h *ContactHandler) Delete(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	if err := h.svc.Delete(c.Request().Context(), session.OrganizationID, contactID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"status": "deleted"})
}
