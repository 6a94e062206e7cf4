package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	billingapp "github.com/telops/backend/internal/application/billing"
	catalogapp "github.com/telops/backend/internal/application/catalog"
	complianceapp "github.com/telops/backend/internal/application/compliance"
	identityapp "github.com/telops/backend/internal/application/identity"
	partnerapp "github.com/telops/backend/internal/application/partner"
	reportingapp "github.com/telops/backend/internal/application/reporting"
	salesapp "github.com/telops/backend/internal/application/sales"
	"github.com/telops/backend/internal/infrastructure/auth"
	"github.com/telops/backend/internal/infrastructure/config"
	"github.com/telops/backend/internal/infrastructure/event"
	"github.com/telops/backend/internal/infrastructure/logger"
	"github.com/telops/backend/internal/infrastructure/persistence"
	"github.com/telops/backend/internal/interfaces/http/middleware"
	"github.com/telops/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting telops backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	articleRepo := persistence.NewGormArticleRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	flagRepo := persistence.NewGormFlagRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Token blacklist: Redis when reachable, otherwise an in-process
	// fallback that still revokes tokens for this instance
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, log)

	// Application services
	articleService := catalogapp.NewArticleService(articleRepo)
	clientService := partnerapp.NewClientService(clientRepo, saleRepo)
	saleService := salesapp.NewSaleService(saleRepo, clientRepo, uow)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo)
	flagService := complianceapp.NewFlagService(flagRepo)
	scanService := complianceapp.NewScanService(saleRepo, flagRepo, scanConfigFrom(cfg.Compliance), log)
	reportService := reportingapp.NewReportService(reportRepo)

	// Initialize event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Sale completed -> invoice opened
	saleCompletedHandler := billingapp.NewSaleCompletedHandler(invoiceService, log)
	eventBus.Subscribe(saleCompletedHandler)

	log.Info("Event handlers registered",
		zap.Strings("sale_completed_events", saleCompletedHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	saleService.SetEventPublisher(eventBus)
	articleService.SetEventPublisher(eventBus)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Dependencies{
		Logger:         log,
		Database:       db,
		JWTService:     jwtService,
		Blacklist:      blacklist,
		AuthService:    authService,
		UserService:    userService,
		ArticleService: articleService,
		ClientService:  clientService,
		SaleService:    saleService,
		InvoiceService: invoiceService,
		FlagService:    flagService,
		ScanService:    scanService,
		ReportService:  reportService,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
	})

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// scanConfigFrom maps compliance tuning from the config file onto the
// scan service's rule parameters.
func scanConfigFrom(cfg config.ComplianceConfig) complianceapp.ScanConfig {
	sc := complianceapp.DefaultScanConfig()
	if cfg.WindowDays > 0 {
		sc.WindowDays = cfg.WindowDays
	}
	if cfg.SpikeFloor > 0 {
		sc.SpikeFloor = decimal.NewFromInt(cfg.SpikeFloor)
	}
	if cfg.SpikeMultiplier > 0 {
		sc.SpikeMultiplier = decimal.NewFromInt(cfg.SpikeMultiplier)
	}
	if cfg.BusinessHourStart > 0 {
		sc.BusinessHourStart = cfg.BusinessHourStart
	}
	if cfg.BusinessHourEnd > 0 {
		sc.BusinessHourEnd = cfg.BusinessHourEnd
	}
	if cfg.RapidEditWindow > 0 {
		sc.RapidEditWindow = cfg.RapidEditWindow
	}
	return sc
}
