package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ceadash/cea-dashboard/errors"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/http/middleware"
	statsusecase "github.com/ceadash/cea-dashboard/internal/usecase/stats"
)

// StatsHandler exposes the dashboard stats endpoints
type StatsHandler struct {
	svc    *statsusecase.Service
	logger *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(svc *statsusecase.Service, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, logger: logger}
}

// Dashboard handles GET /v1/stats
func (h *StatsHandler) Dashboard(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	dashboard, err := h.svc.Dashboard(c.Request().Context(), session.OrganizationID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dashboard)
}

// RecentActivity handles GET /v1/stats/activity
func (h *StatsHandler) RecentActivity(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	limit := queryInt(c, "limit", 20)
	activities, err := h.svc.RecentActivity(c.Request().Context(), session.OrganizationID, limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, activities)
}
