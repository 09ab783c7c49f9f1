package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ceadash/cea-dashboard/errors"
	organizationdto "github.com/ceadash/cea-dashboard/internal/adapter/dto/organization"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/http/middleware"
	organizationusecase "github.com/ceadash/cea-dashboard/internal/usecase/organization"
)

// OrganizationHandler exposes the session organization's settings
type OrganizationHandler struct {
	svc    *organizationusecase.Service
	logger *zap.Logger
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(svc *organizationusecase.Service, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{svc: svc, logger: logger}
}

// Get handles GET /v1/organization. The organization is always the session's
// own; there is no cross-tenant lookup.
func (h *OrganizationHandler) Get(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	org, err := h.svc.Get(c.Request().Context(), session.OrganizationID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, organizationdto.FromEntity(org))
}
