package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/ceadash/cea-dashboard/pkg/validator"

	"github.com/ceadash/cea-dashboard/internal/adapter/handler"
	"github.com/ceadash/cea-dashboard/internal/adapter/repository"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/cache"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/database"
	"github.com/ceadash/cea-dashboard/internal/infrastructure/identity"
	httpmw "github.com/ceadash/cea-dashboard/internal/infrastructure/http/middleware"
	callusecase "github.com/ceadash/cea-dashboard/internal/usecase/call"
	contactusecase "github.com/ceadash/cea-dashboard/internal/usecase/contact"
	organizationusecase "github.com/ceadash/cea-dashboard/internal/usecase/organization"
	processusecase "github.com/ceadash/cea-dashboard/internal/usecase/process"
	statsusecase "github.com/ceadash/cea-dashboard/internal/usecase/stats"
	"github.com/ceadash/cea-dashboard/pkg/agent"
	"github.com/ceadash/cea-dashboard/pkg/config"
	"github.com/ceadash/cea-dashboard/pkg/email"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize stats cache store
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		log.Println("📦 Redis disabled, using in-memory stats cache")
		store = cache.NewMemoryStore()
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	callRepo := repository.NewScheduledCallRepository(db)
	contactRepo := repository.NewContactRepository(db)
	transcriptionRepo := repository.NewTranscriptionRepository(db)
	processRepo := repository.NewProcessRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize external clients
	log.Println("🤖 Initializing agent provider...")
	agentClient := agent.NewElevenLabsClient(&cfg.ElevenLabs)
	emailClient := email.NewResendClient(&cfg.Email)
	if cfg.Email.APIKey == "" {
		log.Println("⚠️  RESEND_API_KEY not set, notification emails will be simulated")
	}

	// Initialize services
	log.Println("✨ Initializing services...")
	coordinator := callusecase.NewCoordinator(
		callRepo,
		contactRepo,
		transcriptionRepo,
		processRepo,
		activityRepo,
		organizationRepo,
		agentClient,
		emailClient,
		logger,
		cfg.ElevenLabs.ProvisionTimeout,
	)
	contactService := contactusecase.NewService(contactRepo, activityRepo, logger)
	processService := processusecase.NewService(processRepo)
	organizationService := organizationusecase.NewService(organizationRepo)
	statsService := statsusecase.NewService(callRepo, processRepo, contactRepo, activityRepo, store, logger)

	// Initialize identity provider
	var provider identity.Provider
	if cfg.Demo.Enabled {
		log.Println("⚠️  Demo mode enabled, all requests resolve to the demo identity")
		demoProvider, err := identity.NewDemoProvider(&cfg.Demo)
		if err != nil {
			log.Fatalf("Failed to initialize demo identity: %v", err)
		}
		provider = demoProvider
	} else {
		provider = identity.NewJWTProvider(&cfg.JWT)
	}
	authMW := httpmw.EchoAuth(provider)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	callHandler := handler.NewCallHandler(coordinator, logger)
	contactHandler := handler.NewContactHandler(contactService, logger)
	processHandler := handler.NewProcessHandler(processService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)
	webhookHandler := handler.NewWebhookHandler(coordinator, cfg.ElevenLabs.WebhookSecret, logger)
	organizationHandler := handler.NewOrganizationHandler(organizationService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, callHandler, contactHandler, processHandler, statsHandler, webhookHandler, organizationHandler, authMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
