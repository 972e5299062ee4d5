// Package router wires services, handlers and middleware into the HTTP API.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"fintrack/internal/budget"
	"fintrack/internal/clock"
	"fintrack/internal/currency"
	_ "fintrack/internal/docs" // swagger document
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/report"
	"fintrack/internal/services"
)

// Options configures the router. An empty OwnerPasswordHash leaves the API
// open and does not register /auth/token.
type Options struct {
	DisplayCurrency   string
	OwnerPasswordHash string
	JWTSecret         string
	JWTExpiration     time.Duration
	Clock             clock.Clock
	Swagger           bool
	RequestLogging    bool
}

// App is the assembled API.
type App struct {
	Engine     *gin.Engine
	Categories services.CategoryServicer
}

// New builds the API on top of db and table.
func New(db *gorm.DB, table *currency.Table, opts Options) *App {
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}

	// Services
	evaluator := budget.NewEvaluator(table, clk)
	aggregator := report.NewAggregator(table, evaluator)
	loader := services.NewSnapshotLoader(db, table.Base().Code)

	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, table, loader)
	budgetService := services.NewBudgetService(db, table)
	settingsService := services.NewSettingsService(db, table, opts.DisplayCurrency)
	analyticsService := services.NewAnalyticsService(loader, aggregator, evaluator, clk)
	auditService := services.NewAuditService(db)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, settingsService, auditService, table)
	budgetHandler := handlers.NewBudgetHandler(budgetService, analyticsService, auditService)
	reportHandler := handlers.NewReportHandler(analyticsService, settingsService, table)
	currencyHandler := handlers.NewCurrencyHandler(table, settingsService, auditService)
	auditHandler := handlers.NewAuditHandler(auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	if opts.RequestLogging {
		router.Use(middleware.RequestLogging())
	}
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	protected := v1.Group("/")
	if opts.OwnerPasswordHash != "" {
		authHandler := handlers.NewAuthHandler(opts.OwnerPasswordHash, opts.JWTSecret, opts.JWTExpiration)
		v1.POST("/auth/token", authHandler.CreateToken)
		protected.Use(middleware.AuthMiddleware(opts.JWTSecret))
	}

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/export.xlsx", transactionHandler.ExportTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/status", budgetHandler.GetBudgetStatuses)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	protected.GET("/dashboard", reportHandler.GetDashboard)

	reports := protected.Group("/reports")
	reports.GET("", reportHandler.GetReport)
	reports.GET("/export.xlsx", reportHandler.ExportReport)
	reports.GET("/charts/monthly.png", reportHandler.GetMonthlyChart)
	reports.GET("/charts/expenses.png", reportHandler.GetExpenseChart)

	currencies := protected.Group("/currencies")
	currencies.GET("", currencyHandler.ListCurrencies)
	currencies.GET("/convert", currencyHandler.Convert)
	currencies.GET("/format", currencyHandler.Format)

	protected.GET("/settings", currencyHandler.GetSettings)
	protected.PUT("/settings", currencyHandler.UpdateSettings)

	protected.GET("/audit-logs", auditHandler.ListAuditLogs)

	return &App{Engine: router, Categories: categoryService}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
