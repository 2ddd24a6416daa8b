package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "smartbook/api/swagger" // swagger docs
	"smartbook/internal/config"
	"smartbook/internal/database"
	"smartbook/internal/handler"
	"smartbook/internal/logger"
	"smartbook/internal/middleware"
	"smartbook/internal/report"
	"smartbook/internal/repository"
	"smartbook/internal/service"
	"smartbook/internal/types"
	"smartbook/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           SmartBook City Tax API
// @version         1.0
// @description     Imposta di soggiorno calculation, tax rule management and municipality reporting.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.NewConnection(cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("database connection failed", "error", err)
	}
	appLogger.Infow("connected to postgres", "host", cfg.Postgres.Host, "dbname", cfg.Postgres.DBName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(cfg.CORS.AllowedOrigins, appLogger)
	go wsHub.Run(ctx)

	auth := middleware.NewAuthenticator(cfg.Auth, cfg.Deployment.Mode == types.ModeProduction)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	taxRuleRepo := repository.NewTaxRuleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	calcRepo := repository.NewTaxCalculationRepository(db)

	property := report.Property{Name: cfg.Report.PropertyName, FacilityCode: cfg.Report.FacilityCode}

	userService := service.NewUserService(userRepo, auditRepo, auth, appLogger)
	auditService := service.NewAuditService(auditRepo)
	taxRuleService := service.NewTaxRuleService(taxRuleRepo, calcRepo, auditRepo, txManager, wsHub, cfg.Cache.RuleTTL, appLogger)
	bookingService := service.NewBookingService(bookingRepo, guestRepo, auditRepo, appLogger)
	calculationService := service.NewTaxCalculationService(bookingRepo, guestRepo, calcRepo, auditRepo, taxRuleService, txManager, wsHub, appLogger)
	reportService := service.NewTaxReportService(bookingRepo, auditRepo, taxRuleService, property, appLogger)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService, auth)
	auditHandler := handler.NewAuditHandler(auditService, auth)
	taxRuleHandler := handler.NewTaxRuleHandler(taxRuleService, auth)
	bookingHandler := handler.NewBookingHandler(bookingService, calculationService, auth)
	reportHandler := handler.NewTaxReportHandler(reportService, auth)

	if cfg.Deployment.Mode == types.ModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(appLogger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Request-ID"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, auth, c)
	})

	// API Routing
	api := router.Group("")
	userHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)
	taxRuleHandler.RegisterRoutes(api)
	bookingHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infow("server listening", "address", cfg.Server.Address, "mode", cfg.Deployment.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	appLogger.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("graceful shutdown failed", "error", err)
	}
}
