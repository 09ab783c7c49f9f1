package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ceadash/cea-dashboard/errors"
	calldto "github.com/ceadash/cea-dashboard/internal/adapter/dto/call"
	"github.com/ceadash/cea-dashboard/internal/domain/entities"
	"github.com/ceadash/cea-dashboard/internal/domain/repositories"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/http/middleware"
	callusecase "github.com/ceadash/cea-dashboard/internal/usecase/call"
)

// CallHandler exposes the scheduled-call endpoints
type CallHandler struct {
	svc    callusecase.Service
	logger *zap.Logger
}

// NewCallHandler creates a new call handler
func NewCallHandler(svc callusecase.Service, logger *zap.Logger) *CallHandler {
	return &CallHandler{svc: svc, logger: logger}
}

// Schedule handles POST /v1/calls
func (h *CallHandler) Schedule(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req calldto.ScheduleRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	contactID, err := uuid.Parse(req.ContactID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("contact_id must be a valid uuid"))
	}

	out, err := h.svc.Schedule(c.Request().Context(), callusecase.ScheduleInput{
		OrganizationID:    session.OrganizationID,
		ProfileID:         session.ProfileID,
		ContactID:         contactID,
		ScheduledDate:     req.ScheduledDate,
		DurationMinutes:   req.DurationMinutes,
		ProcessType:       req.ProcessType,
		Industry:          req.Industry,
		Objectives:        req.Objectives,
		SpecificQuestions: req.SpecificQuestions,
		Language:          req.Language,
		Notes:             req.Notes,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, calldto.ScheduleResponse{
		Call:    calldto.FromEntity(out.Call),
		Status:  out.Status,
		EmailID: out.EmailID,
	})
}

// Get handles GET /v1/calls/:id
func (h *CallHandler) Get(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	callID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	callRecord, err := h.svc.GetCall(c.Request().Context(), session.OrganizationID, callID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, calldto.FromEntity(callRecord))
}

// List handles GET /v1/calls
func (h *CallHandler) List(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req calldto.ListCallsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	limit, offset := pagination(c)
	filters := repositories.CallFilters{
		From:      req.From,
		To:        req.To,
		Search:    req.Search,
		Limit:     limit,
		Offset:    offset,
		SortOrder: req.SortOrder,
	}
	if req.Status != nil {
		status := entities.CallStatus(*req.Status)
		filters.Status = &status
	}

	calls, total, err := h.svc.ListCalls(c.Request().Context(), session.OrganizationID, filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	responses := make([]*calldto.CallResponse, 0, len(calls))
	for _, callRecord := range calls {
		responses = append(responses, calldto.FromEntity(callRecord))
	}

	page := queryInt(c, "page", 1)
	return HandleSuccess(h.logger, c, calldto.CallListResponse{
		Calls:      responses,
		Total:      total,
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages(total, limit),
	})
}

// Update handles PUT /v1/calls/:id
func (h *CallHandler) Update(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	callID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	var req calldto.UpdateCallRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	callRecord, err := h.svc.UpdateCall(c.Request().Context(), callusecase.UpdateInput{
		OrganizationID: session.OrganizationID,
		CallID:         callID,
		ScheduledDate:  req.ScheduledDate,
		Notes:          req.Notes,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, calldto.FromEntity(callRecord))
}

// Cancel handles POST /v1/calls/:id/cancel
func (h *CallHandler) Cancel(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	callID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	if err := h.svc.CancelCall(c.Request().Context(), session.OrganizationID, callID, session.ProfileID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"status": "cancelled"})
}

// Delete handles DELETE /v1/calls/:id
func (h *CallHandler) Delete(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	callID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("id must be a valid uuid"))
	}

	if err := h.svc.DeleteCall(c.Request().Context(), session.OrganizationID, callID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"status": "deleted"})
}

// Stats handles GET /v1/calls/stats
func (h *CallHandler) Stats(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	stats, err := h.svc.Stats(c.Request().Context(), session.OrganizationID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, calldto.StatsResponse{
		Total:           stats.Total,
		Scheduled:       stats.Scheduled,
		InProgress:      stats.InProgress,
		Completed:       stats.Completed,
		Cancelled:       stats.Cancelled,
		Upcoming:        stats.Upcoming,
		AverageDuration: stats.AverageDuration,
	})
}
