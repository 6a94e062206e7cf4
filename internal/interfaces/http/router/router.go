package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/telops/backend/internal/application/billing"
	catalogapp "github.com/telops/backend/internal/application/catalog"
	complianceapp "github.com/telops/backend/internal/application/compliance"
	identityapp "github.com/telops/backend/internal/application/identity"
	partnerapp "github.com/telops/backend/internal/application/partner"
	reportingapp "github.com/telops/backend/internal/application/reporting"
	salesapp "github.com/telops/backend/internal/application/sales"
	"github.com/telops/backend/internal/infrastructure/auth"
	"github.com/telops/backend/internal/infrastructure/logger"
	"github.com/telops/backend/internal/infrastructure/persistence"
	"github.com/telops/backend/internal/interfaces/http/handler"
	"github.com/telops/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the router needs to build the route table.
type Dependencies struct {
	Logger     *zap.Logger
	Database   *persistence.Database
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist

	AuthService    *identityapp.AuthService
	UserService    *identityapp.UserService
	ArticleService *catalogapp.ArticleService
	ClientService  *partnerapp.ClientService
	SaleService    *salesapp.SaleService
	InvoiceService *billingapp.InvoiceService
	FlagService    *complianceapp.FlagService
	ScanService    *complianceapp.ScanService
	ReportService  *reportingapp.ReportService

	CORS middleware.CORSConfig
}

// New builds the gin engine with all routes and middleware wired.
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.CORSWithConfig(deps.CORS),
	)

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	articleHandler := handler.NewArticleHandler(deps.ArticleService)
	clientHandler := handler.NewClientHandler(deps.ClientService)
	saleHandler := handler.NewSaleHandler(deps.SaleService)
	invoiceHandler := handler.NewInvoiceHandler(deps.InvoiceService)
	flagHandler := handler.NewFlagHandler(deps.FlagService, deps.ScanService)
	reportHandler := handler.NewReportHandler(deps.ReportService)
	healthHandler := handler.NewHealthHandler(deps.Database)

	engine.GET("/health", healthHandler.Check)

	v1 := engine.Group("/api/v1")

	// Public endpoints
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/refresh", authHandler.Refresh)

	// Everything below requires a valid access token
	authed := v1.Group("")
	authed.Use(middleware.Auth(middleware.AuthConfig{
		JWTService: deps.JWTService,
		Blacklist:  deps.Blacklist,
		Logger:     deps.Logger,
	}))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/auth/change-password", authHandler.ChangePassword)

	users := authed.Group("/users", middleware.RequireUserManager())
	{
		users.POST("", userHandler.Create)
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.POST("/:id/activate", userHandler.Activate)
		users.POST("/:id/deactivate", userHandler.Deactivate)
		users.POST("/:id/reset-password", userHandler.ResetPassword)
		users.DELETE("/:id", userHandler.Delete)
	}

	articles := authed.Group("/articles")
	{
		articles.GET("", articleHandler.List)
		articles.GET("/:id", articleHandler.Get)
		articles.GET("/code/:code", articleHandler.GetByCode)

		manage := articles.Group("", middleware.RequireCatalogManager())
		{
			manage.POST("", articleHandler.Create)
			manage.PUT("/:id", articleHandler.Update)
			manage.POST("/:id/stock", articleHandler.AdjustStock)
			manage.DELETE("/:id", articleHandler.Delete)
		}
	}

	clients := authed.Group("/clients")
	{
		clients.POST("", clientHandler.Create)
		clients.GET("", clientHandler.List)
		clients.GET("/:id", clientHandler.Get)
		clients.PUT("/:id", clientHandler.Update)
		clients.DELETE("/:id", clientHandler.Delete)
	}

	sales := authed.Group("/sales")
	{
		sales.POST("", saleHandler.Create)
		sales.GET("", saleHandler.List)
		sales.GET("/:id", saleHandler.Get)
		sales.GET("/reference/:reference", saleHandler.GetByReference)
		sales.POST("/:id/items", saleHandler.AddItem)
		sales.DELETE("/:id/items/:itemId", saleHandler.RemoveItem)
		sales.POST("/:id/cancel", saleHandler.Cancel)
		sales.DELETE("/:id", saleHandler.Delete)

		validate := sales.Group("", middleware.RequireSaleValidator())
		{
			validate.POST("/:id/validate", saleHandler.Validate)
			validate.POST("/:id/complete", saleHandler.Complete)
		}
	}

	invoices := authed.Group("/invoices")
	{
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.GET("/sale/:saleId", invoiceHandler.GetBySale)
		invoices.POST("/:id/payments", invoiceHandler.RecordPayment)
		invoices.PUT("/:id/due-date", invoiceHandler.SetDueDate)
	}

	flags := authed.Group("/flags")
	{
		flags.GET("", flagHandler.List)
		flags.GET("/:id", flagHandler.Get)
		flags.GET("/sale/:saleId", flagHandler.ListBySale)

		review := flags.Group("", middleware.RequireFlagReviewer())
		{
			review.POST("/scan", flagHandler.Scan)
			review.POST("/:id/review", flagHandler.Review)
			review.POST("/:id/resolve", flagHandler.Resolve)
		}
	}

	reports := authed.Group("/reports")
	{
		reports.POST("", reportHandler.Create)
		reports.GET("", reportHandler.List)
		reports.GET("/:id", reportHandler.Get)
		reports.PUT("/:id", reportHandler.Update)
		reports.DELETE("/:id", reportHandler.Delete)
	}

	return engine
}
