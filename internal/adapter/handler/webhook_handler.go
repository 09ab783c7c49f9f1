package handler

import (
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ceadash/cea-dashboard/errors"
	webhookdto "github.com/ceadash/cea-dashboard/internal/adapter/dto/webhook"
	callusecase "github.com/ceadash/cea-dashboard/internal/usecase/call"
	"github.com/ceadash/cea-dashboard/pkg/agent"
)

// SignatureHeader carries the provider's HMAC over the raw request body
const SignatureHeader = "x-elevenlabs-signature"

// WebhookHandler ingests call-lifecycle webhooks from the agent provider.
// Since the provider retries on non-2xx responses, nearly everything is
// acknowledged with 200: only a bad signature (401) and an unreadable or
// unparseable body (500) are refused.
type WebhookHandler struct {
	svc    callusecase.Service
	secret string
	logger *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(svc callusecase.Service, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, secret: secret, logger: logger}
}

// HandleEvent receives a provider lifecycle event
func (h *WebhookHandler) HandleEvent(c echo.Context) error {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("webhook handler panic", zap.Any("panic", r))
			_ = c.JSON(http.StatusOK, map[string]string{"status": "acknowledged"})
		}
	}()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	// Signature check runs over the raw body, before parsing
	if h.secret != "" {
		signature := c.Request().Header.Get(SignatureHeader)
		if !agent.VerifyHMAC(h.secret, body, signature) {
			h.logger.Warn("webhook signature mismatch",
				zap.String("provider", c.Param("provider")))
			return HandleError(h.logger, c, errors.ErrWebhookAuth())
		}
	}

	var req webhookdto.EventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	if err := h.svc.HandleEvent(c.Request().Context(), req.ToEvent()); err != nil {
		var appErr errors.AppError
		if stdErrors.As(err, &appErr) && appErr.Code == errors.ErrorCode_UNMATCHED_CALL {
			// Retrying can never succeed for an unknown call
			return c.JSON(http.StatusOK, map[string]string{"status": "unmatched"})
		}
		h.logger.Error("webhook processing failed",
			zap.String("event_type", req.EventType),
			zap.String("call_id", req.CallID),
			zap.Error(err))
		return c.JSON(http.StatusOK, map[string]string{"status": "acknowledged"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "processed"})
}

// Health answers the provider's endpoint verification probe
func (h *WebhookHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": c.Param("provider"),
	})
}
