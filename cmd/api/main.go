package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"grana/internal/config"
	"grana/internal/database"
	"grana/internal/handlers"
	"grana/internal/logger"
	"grana/internal/middleware"
	"grana/internal/services"
	"grana/internal/validator"
)

// @title           Grana API
// @version         1.0
// @description     Grana is a personal finance ledger: settled transactions, scheduled payables in fixed payment windows, and the derived monthly views built from them.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Service key for extractor intake routes.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)
	payableService := services.NewPayableService(db)
	summaryService := services.NewSummaryService(transactionService, payableService)
	budgetService := services.NewBudgetService(db)
	goalService := services.NewGoalService(db)
	debtService := services.NewDebtService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	payableHandler := handlers.NewPayableHandler(payableService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	debtHandler := handlers.NewDebtHandler(debtService, auditService)
	intakeHandler := handlers.NewIntakeHandler(userService, transactionService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Intake routes, authenticated by service key instead of user token
	intake := v1.Group("/intake")
	intake.Use(middleware.IntakeAuthMiddleware(appConfig.IntakeServiceKey))
	intake.POST("/transactions", intakeHandler.SubmitBatch)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Payable routes
	payables := protected.Group("/payables")
	payables.POST("", payableHandler.CreatePayable)
	payables.GET("/:id", payableHandler.GetPayable)
	payables.POST("/:id/settle", payableHandler.SettlePayable)
	payables.GET("/month/:month", payableHandler.ListMonthWindows)

	// Summary routes
	summaries := protected.Group("/summaries")
	summaries.GET("/month", summaryHandler.GetMonthSummary)
	summaries.GET("/projected", summaryHandler.GetProjectedSummary)
	summaries.GET("/budget-rule", summaryHandler.GetBudgetRule)
	summaries.GET("/cash-flow", summaryHandler.GetCashFlow)
	summaries.GET("/planning-grid", summaryHandler.GetPlanningGrid)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/status/:month", budgetHandler.GetBudgetStatus)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.ListGoals)
	goals.POST("/:id/save", goalHandler.AddSaved)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Debt routes
	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.ListDebts)
	debts.POST("/:id/payments", debtHandler.RecordPayment)
	debts.DELETE("/:id", debtHandler.DeleteDebt)

	log.Infof("Starting Grana backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
