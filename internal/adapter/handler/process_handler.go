package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ceadash/cea-dashboard/errors"
	processdto "github.com/ceadash/cea-dashboard/internal/adapter/dto/process"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/http/middleware"
	processusecase "github.com/ceadash/cea-dashboard/internal/usecase/process"
)

// ProcessHandler exposes the derived-process endpoints
type ProcessHandler struct {
	svc    *processusecase.Service
	logger *zap.Logger
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(svc *processusecase.Service, logger *zap.Logger) *ProcessHandler {
	return &ProcessHandler{svc: svc, logger: logger}
}

// Get handles GET /v1/processes/:id
func (h *ProcessHandler) Get(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	processID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	process, err := h.svc.Get(c.Request().Context(), session.OrganizationID, processID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, processdto.FromEntity(process))
}

// List handles GET /v1/processes
func (h *ProcessHandler) List(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req processdto.ListProcessesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	limit, offset := pagination(c)
	filters := repositories.ProcessFilters{
		Search: req.Search,
		Limit:  limit,
		Offset: offset,
	}
	if req.Status != nil {
		status := entities.ProcessStatus(*req.Status)
		filters.Status = &status
	}

	processes, total, err := h.svc.List(c.Request().Context(), session.OrganizationID, filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	responses := make([]*processdto.ProcessResponse, 0, len(processes))
	for _, process := range processes {
		responses = append(responses, processdto.FromEntity(process))
	}

	page := queryInt(c, "page", 1)
	return HandleSuccess(h.logger, c, processdto.ProcessListResponse{
		Processes:  responses,
		Total:      total,
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages(total, limit),
	})
}

// Update handles PUT /v1/processes/:id
func (h *ProcessHandler) Update(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	processID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	var req processdto.UpdateProcessRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	input := processusecase.UpdateInput{
		OrganizationID: session.OrganizationID,
		ProcessID:      processID,
		Name:           req.Name,
		Description:    req.Description,
	}
	if req.Status != nil {
		status := entities.ProcessStatus(*req.Status)
		input.Status = &status
	}

	process, err := h.svc.Update(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, processdto.FromEntity(process))
}

// Delete handles DELETE /v1/processes/:id
func (h *ProcessHandler) Delete(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	processID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	if err := h.svc.Delete(c.Request().Context(), session.OrganizationID, processID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"status": "deleted"})
}

// Stats handles GET /v1/processes/stats
func (h *ProcessHandler) Stats(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	stats, err := h.svc.Stats(c.Request().Context(), session.OrganizationID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, processdto.ProcessStatsResponse{
		Total:             stats.Total,
		Draft:             stats.Draft,
		Active:            stats.Active,
		Archived:          stats.Archived,
		AverageEfficiency: stats.AverageEfficiency,
	})
}
