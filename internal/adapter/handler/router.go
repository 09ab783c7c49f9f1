package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ceadash/cea-dashboard/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	callHandler    *CallHandler
	contactHandler *ContactHandler
	processHandler *ProcessHandler
	statsHandler   *StatsHandler
	webhookHandler *WebhookHandler
	orgHandler     *OrganizationHandler
	authMW         echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	callHandler *CallHandler,
	contactHandler *ContactHandler,
	processHandler *ProcessHandler,
	statsHandler *StatsHandler,
	webhookHandler *WebhookHandler,
	orgHandler *OrganizationHandler,
	authMW echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:            cfg,
		callHandler:    callHandler,
		contactHandler: contactHandler,
		processHandler: processHandler,
		statsHandler:   statsHandler,
		webhookHandler: webhookHandler,
		orgHandler:     orgHandler,
		authMW:         authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Provider webhooks are authenticated by signature, not session
	e.POST("/webhook/:provider", rt.webhookHandler.HandleEvent)
	e.GET("/webhook/:provider", rt.webhookHandler.Health)

	// API v1 group, session-scoped
	v1 := e.Group("/v1", rt.authMW)

	v1.GET("/organization", rt.orgHandler.Get)

	rt.setupCallRoutes(v1)
	rt.setupContactRoutes(v1)
	rt.setupProcessRoutes(v1)
	rt.setupStatsRoutes(v1)
}

// setupCallRoutes configures scheduled-call routes
func (rt *Router) setupCallRoutes(g *echo.Group) {
	calls := g.Group("/calls")
	calls.POST("", rt.callHandler.Schedule)
	calls.GET("", rt.callHandler.List)
	calls.GET("/stats", rt.callHandler.Stats)
	calls.GET("/:id", rt.callHandler.Get)
	calls.PUT("/:id", rt.callHandler.Update)
	calls.POST("/:id/cancel", rt.callHandler.Cancel)
	calls.DELETE("/:id", rt.callHandler.Delete)
}

// setupContactRoutes configures contact routes
func (rt *Router) setupContactRoutes(g *echo.Group) {
	contacts := g.Group("/contacts")
	contacts.POST("", rt.contactHandler.Create)
	contacts.GET("", rt.contactHandler.List)
	contacts.GET("/:id", rt.contactHandler.Get)
	contacts.PUT("/:id", rt.contactHandler.Update)
	contacts.DELETE("/:id", rt.contactHandler.Delete)
}

// setupProcessRoutes configures process routes
func (rt *Router) setupProcessRoutes(g *echo.Group) {
	processes := g.Group("/processes")
	processes.GET("", rt.processHandler.List)
	processes.GET("/stats", rt.processHandler.Stats)
	processes.GET("/:id", rt.processHandler.Get)
	processes.PUT("/:id", rt.processHandler.Update)
	processes.DELETE("/:id", rt.processHandler.Delete)
}

// setupStatsRoutes configures dashboard stats routes
func (rt *Router) setupStatsRoutes(g *echo.Group) {
	stats := g.Group("/stats")
	stats.GET("", rt.statsHandler.Dashboard)
	stats.GET("/activity", rt.statsHandler.RecentActivity)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
